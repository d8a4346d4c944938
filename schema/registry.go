package schema

import "github.com/shyptr/gqlc/errors"

// builtinScalars is the fixed scalar set every registry starts with
// (spec.md §3.3: "built-ins: String, Int, Float, Boolean").
var builtinScalars = []string{"String", "Int", "Float", "Boolean"}

// Registry holds every declared server-side and client-side definition,
// name-keyed for O(1) cross-reference during resolution (spec.md §4.3).
type Registry struct {
	Scalars    *OrderedMap[*Scalar]
	Enums      *OrderedMap[*EnumDef]
	Inputs     *OrderedMap[*InputType]
	Objects    *OrderedMap[*ObjectType]
	Interfaces *OrderedMap[*Interface]
	Unions     *OrderedMap[*Union]

	ServerDirectives *OrderedMap[*ServerDirective]
	ClientDirectives *OrderedMap[*ClientDirective]

	Fragments  *OrderedMap[*Fragment]
	Operations []*Operation

	Queries       *OrderedMap[*FieldDef[ObjectFieldSpec]]
	Mutations     *OrderedMap[*FieldDef[ObjectFieldSpec]]
	Subscriptions *OrderedMap[*FieldDef[ObjectFieldSpec]]

	// names tracks every type-level name (scalar/enum/input/object/
	// interface/union) in one namespace, since the SDL dialect shares a
	// single namespace across those six kinds (spec.md §4.3, rule
	// "name-already-defined").
	names map[string]bool
	// directiveNames is the separate directive namespace; server and
	// client directive names never collide with type names or each other.
	directiveNames map[string]bool
}

// NewRegistry returns a Registry pre-populated with the built-in scalars.
func NewRegistry() *Registry {
	r := &Registry{
		Scalars:          NewOrderedMap[*Scalar](),
		Enums:            NewOrderedMap[*EnumDef](),
		Inputs:           NewOrderedMap[*InputType](),
		Objects:          NewOrderedMap[*ObjectType](),
		Interfaces:       NewOrderedMap[*Interface](),
		Unions:           NewOrderedMap[*Union](),
		ServerDirectives: NewOrderedMap[*ServerDirective](),
		ClientDirectives: NewOrderedMap[*ClientDirective](),
		Fragments:        NewOrderedMap[*Fragment](),
		Queries:          NewOrderedMap[*FieldDef[ObjectFieldSpec]](),
		Mutations:        NewOrderedMap[*FieldDef[ObjectFieldSpec]](),
		Subscriptions:    NewOrderedMap[*FieldDef[ObjectFieldSpec]](),
		names:            make(map[string]bool),
		directiveNames:   make(map[string]bool),
	}
	for _, name := range builtinScalars {
		r.Scalars.Set(name, &Scalar{Name: name})
		r.names[name] = true
	}
	return r
}

// declareName registers name in the shared type namespace, failing if it
// is already taken by any scalar/enum/input/object/interface/union.
func (r *Registry) declareName(name string, loc errors.Location, file string) *errors.GraphQLError {
	if r.names[name] {
		return errors.New("type %q is already defined", name).
			WithLocation(loc).WithFile(file).WithRule(errors.NameAlreadyDefined)
	}
	r.names[name] = true
	return nil
}

// declareDirectiveName registers name in the directive namespace.
func (r *Registry) declareDirectiveName(name string, loc errors.Location, file string) *errors.GraphQLError {
	if r.directiveNames[name] {
		return errors.New("directive %q is already defined", name).
			WithLocation(loc).WithFile(file).WithRule(errors.NameAlreadyDefined)
	}
	r.directiveNames[name] = true
	return nil
}

// ResolveObjectTypeSpec looks up name across every ObjectTypeSpec-capable
// kind (object, interface, scalar, enum, union).
func (r *Registry) ResolveObjectTypeSpec(name string) (ObjectTypeSpec, bool) {
	if v, ok := r.Objects.Get(name); ok {
		return v, true
	}
	if v, ok := r.Interfaces.Get(name); ok {
		return v, true
	}
	if v, ok := r.Scalars.Get(name); ok {
		return v, true
	}
	if v, ok := r.Enums.Get(name); ok {
		return v, true
	}
	if v, ok := r.Unions.Get(name); ok {
		return v, true
	}
	return nil, false
}

// ResolveInputTypeSpec looks up name across every InputTypeSpec-capable
// kind (input, scalar, enum).
func (r *Registry) ResolveInputTypeSpec(name string) (InputTypeSpec, bool) {
	if v, ok := r.Inputs.Get(name); ok {
		return v, true
	}
	if v, ok := r.Scalars.Get(name); ok {
		return v, true
	}
	if v, ok := r.Enums.Get(name); ok {
		return v, true
	}
	return nil, false
}
