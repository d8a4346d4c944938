package schema

import (
	"github.com/shyptr/gqlc/ast"
	"github.com/shyptr/gqlc/errors"
)

// ResolveServer runs the two-pass resolution of every server file against
// a fresh registry: pass one registers a shell for each declared name
// (catching duplicate-name collisions before any cross-reference is
// attempted), pass two fills in every field, argument, implements clause,
// union member and directive location, then root-object fields are routed
// into the registry's Queries/Mutations/Subscriptions tables (spec.md
// §4.3).
func ResolveServer(files []*ast.ServerFile) (*Registry, *errors.GraphQLError) {
	r := NewRegistry()

	type extendJob struct {
		file string
		def  *ast.ExtendTypeDefinition
	}
	var extends []extendJob

	// Pass 1: shells. Scalars and enums need no further pass since they
	// reference nothing else; object/interface/input/union/directive get
	// an empty shell now and are filled in pass 2 so forward references
	// (a field of type B declared before B itself) resolve correctly.
	for _, file := range files {
		for _, def := range file.Definitions {
			switch d := def.(type) {
			case *ast.ScalarDefinition:
				if err := r.declareName(d.Name.Value, d.Loc, file.Path); err != nil {
					return nil, err
				}
				r.Scalars.Set(d.Name.Value, &Scalar{Name: d.Name.Value})
			case *ast.EnumDefinition:
				if err := r.declareName(d.Name.Value, d.Loc, file.Path); err != nil {
					return nil, err
				}
				values := make([]string, len(d.Values))
				for i, v := range d.Values {
					values[i] = v.Value
				}
				r.Enums.Set(d.Name.Value, &EnumDef{Name: d.Name.Value, Values: values})
			case *ast.ObjectDefinition:
				if err := r.declareName(d.Name.Value, d.Loc, file.Path); err != nil {
					return nil, err
				}
				r.Objects.Set(d.Name.Value, &ObjectType{
					Name: d.Name.Value, Fields: NewOrderedMap[*FieldDef[ObjectFieldSpec]](),
					Implements: NewOrderedMap[*Interface](),
				})
			case *ast.InterfaceDefinition:
				if err := r.declareName(d.Name.Value, d.Loc, file.Path); err != nil {
					return nil, err
				}
				r.Interfaces.Set(d.Name.Value, &Interface{
					Name: d.Name.Value, Fields: NewOrderedMap[*FieldDef[ObjectFieldSpec]](),
				})
			case *ast.InputObjectDefinition:
				if err := r.declareName(d.Name.Value, d.Loc, file.Path); err != nil {
					return nil, err
				}
				r.Inputs.Set(d.Name.Value, &InputType{
					Name: d.Name.Value, Fields: NewOrderedMap[*FieldDef[InputFieldSpec]](),
				})
			case *ast.UnionDefinition:
				if err := r.declareName(d.Name.Value, d.Loc, file.Path); err != nil {
					return nil, err
				}
				r.Unions.Set(d.Name.Value, &Union{Name: d.Name.Value, Items: NewOrderedMap[*ObjectType]()})
			case *ast.DirectiveDefinition:
				if err := r.declareDirectiveName(d.Name.Value, d.Loc, file.Path); err != nil {
					return nil, err
				}
				r.ServerDirectives.Set(d.Name.Value, &ServerDirective{Name: d.Name.Value})
			case *ast.ExtendTypeDefinition:
				extends = append(extends, extendJob{file: file.Path, def: d})
			}
		}
	}

	// Pass 2: cross-reference fill-in.
	for _, file := range files {
		for _, def := range file.Definitions {
			switch d := def.(type) {
			case *ast.ObjectDefinition:
				obj, _ := r.Objects.Get(d.Name.Value)
				if err := r.fillImplements(obj, d.Implements, file.Path); err != nil {
					return nil, err
				}
				if err := r.fillObjectFields(obj.Fields, d.Fields, file.Path); err != nil {
					return nil, err
				}
			case *ast.InterfaceDefinition:
				iface, _ := r.Interfaces.Get(d.Name.Value)
				if err := r.fillObjectFields(iface.Fields, d.Fields, file.Path); err != nil {
					return nil, err
				}
			case *ast.InputObjectDefinition:
				input, _ := r.Inputs.Get(d.Name.Value)
				if err := r.fillInputFields(input.Fields, d.Fields, file.Path); err != nil {
					return nil, err
				}
			case *ast.UnionDefinition:
				union, _ := r.Unions.Get(d.Name.Value)
				for _, member := range d.Members {
					obj, ok := r.Objects.Get(member.Value)
					if !ok {
						return nil, unknownType(member.Value, member.Loc, file.Path)
					}
					union.Items.Set(member.Value, obj)
				}
			case *ast.DirectiveDefinition:
				if err := validateDirectiveLocations(d.Locations, ast.ServerDirectiveLocations, d.Loc, file.Path); err != nil {
					return nil, err
				}
				dir, _ := r.ServerDirectives.Get(d.Name.Value)
				args := NewOrderedMap[*FieldDef[InputFieldSpec]]()
				if err := r.fillInputFields(args, d.Arguments, file.Path); err != nil {
					return nil, err
				}
				dir.Arguments = args
				dir.Locations = d.Locations
			}
		}
	}

	// Extend-node merging happens after every object/interface has its own
	// fields filled, so field-already-exists can be checked against the
	// complete base set.
	for _, job := range extends {
		target, ok := r.Objects.Get(job.def.Object.Name.Value)
		if !ok {
			return nil, unknownType(job.def.Object.Name.Value, job.def.Object.Loc, job.file)
		}
		if err := r.fillObjectFields(target.Fields, job.def.Object.Fields, job.file); err != nil {
			return nil, err
		}
	}

	// Route root object types into the dedicated operation tables.
	if q, ok := r.Objects.Get("Query"); ok {
		r.Queries = q.Fields
	}
	if m, ok := r.Objects.Get("Mutation"); ok {
		r.Mutations = m.Fields
	}
	if s, ok := r.Objects.Get("Subscription"); ok {
		r.Subscriptions = s.Fields
	}

	return r, nil
}

func unknownType(name string, loc errors.Location, file string) *errors.GraphQLError {
	return errors.New("unknown type %q", name).WithLocation(loc).WithFile(file).WithRule(errors.UnknownType)
}

// validateDirectiveLocations rejects a directive definition naming a
// location outside allowed — the SDL and operation dialects each validate
// against their own location set (spec.md §9).
func validateDirectiveLocations(locs []ast.DirectiveLocation, allowed map[ast.DirectiveLocation]bool, loc errors.Location, file string) *errors.GraphQLError {
	for _, l := range locs {
		if !allowed[l] {
			return errors.New("directive location %q is not valid here", l).
				WithLocation(loc).WithFile(file).WithRule(errors.UnknownType)
		}
	}
	return nil
}

func (r *Registry) fillImplements(obj *ObjectType, names []*ast.Name, file string) *errors.GraphQLError {
	for _, n := range names {
		iface, ok := r.Interfaces.Get(n.Value)
		if !ok {
			return unknownType(n.Value, n.Loc, file)
		}
		obj.Implements.Set(n.Value, iface)
	}
	return nil
}

// fillObjectFields resolves each raw field definition into the target
// ordered map, rejecting a field name already present (a name repeated
// within one body, or an extend-type field the base type already has).
func (r *Registry) fillObjectFields(into *OrderedMap[*FieldDef[ObjectFieldSpec]], fields []*ast.FieldDefinition, file string) *errors.GraphQLError {
	for _, f := range fields {
		if into.Has(f.Name.Value) {
			return errors.New("field %q already exists", f.Name.Value).
				WithLocation(f.Loc).WithFile(file).WithRule(errors.FieldAlreadyExists)
		}
		fd, err := r.resolveObjectField(f, file)
		if err != nil {
			return err
		}
		into.Set(f.Name.Value, fd)
	}
	return nil
}

func (r *Registry) resolveObjectField(f *ast.FieldDefinition, file string) (*FieldDef[ObjectFieldSpec], *errors.GraphQLError) {
	directives, err := r.resolveServerDirectives(f.Directives, file)
	if err != nil {
		return nil, err
	}
	nonCallable, nullable, err := r.resolveNonCallableObjectSpec(f.Type, directives, file)
	if err != nil {
		return nil, err
	}
	if len(f.Arguments) == 0 {
		return &FieldDef[ObjectFieldSpec]{Name: f.Name.Value, Spec: nonCallable, Nullable: nullable}, nil
	}
	args := NewOrderedMap[*FieldDef[InputFieldSpec]]()
	if err := r.fillInputFields(args, f.Arguments, file); err != nil {
		return nil, err
	}
	return &FieldDef[ObjectFieldSpec]{
		Name: f.Name.Value,
		Spec: &CallableFieldSpec{ReturnType: nonCallable, Arguments: args, Directives: directives},
		Nullable: nullable,
	}, nil
}

// resolveNonCallableObjectSpec resolves a Type node (named or list) into
// its literal/array spec and reports the declaration's own (outer)
// nullability.
func (r *Registry) resolveNonCallableObjectSpec(t ast.Type, directives []*ServerDirectiveInvocation, file string) (NonCallableObjectFieldSpec, bool, *errors.GraphQLError) {
	switch tt := t.(type) {
	case *ast.NamedType:
		spec, ok := r.ResolveObjectTypeSpec(tt.Name.Value)
		if !ok {
			return nil, false, unknownType(tt.Name.Value, tt.Loc, file)
		}
		return &LiteralObjectFieldSpec{Type: spec, Directives: directives}, tt.Nullable, nil
	case *ast.ListType:
		spec, ok := r.ResolveObjectTypeSpec(tt.Element.Name.Value)
		if !ok {
			return nil, false, unknownType(tt.Element.Name.Value, tt.Element.Loc, file)
		}
		return &ArrayObjectFieldSpec{Type: spec, InnerNullable: tt.Element.Nullable, Directives: directives}, tt.Nullable, nil
	default:
		return nil, false, errors.New("unrecognized type node").WithFile(file)
	}
}

func (r *Registry) resolveNonCallableInputSpec(t ast.Type, file string) (InputTypeSpec, bool, bool, *errors.GraphQLError) {
	switch tt := t.(type) {
	case *ast.NamedType:
		spec, ok := r.ResolveInputTypeSpec(tt.Name.Value)
		if !ok {
			return nil, false, false, unknownType(tt.Name.Value, tt.Loc, file)
		}
		return spec, tt.Nullable, false, nil
	case *ast.ListType:
		spec, ok := r.ResolveInputTypeSpec(tt.Element.Name.Value)
		if !ok {
			return nil, false, false, unknownType(tt.Element.Name.Value, tt.Element.Loc, file)
		}
		return spec, tt.Nullable, true, nil
	default:
		return nil, false, false, errors.New("unrecognized type node").WithFile(file)
	}
}

// fillInputFields resolves each raw input-value definition (input-object
// field, callable argument, or directive argument) into the target
// ordered map.
func (r *Registry) fillInputFields(into *OrderedMap[*FieldDef[InputFieldSpec]], defs []*ast.InputValueDefinition, file string) *errors.GraphQLError {
	for _, d := range defs {
		if into.Has(d.Name.Value) {
			return errors.New("field %q already exists", d.Name.Value).
				WithLocation(d.Loc).WithFile(file).WithRule(errors.FieldAlreadyExists)
		}
		directives, err := r.resolveClientDirectives(d.Directives, file)
		if err != nil {
			return err
		}
		spec, nullable, isList, err := r.resolveNonCallableInputSpec(d.Type, file)
		if err != nil {
			return err
		}
		var fieldSpec InputFieldSpec
		if isList {
			// The grammar's default-value slot only ever spells a scalar
			// literal (spec.md §3.2 InputValueDefinition), never an array
			// literal, so a list-typed field's default is always nil.
			fieldSpec = &ArrayInputFieldSpec{Type: spec, InnerNullable: innerNullable(d.Type), Directives: directives}
		} else {
			literal := &LiteralInputFieldSpec{Type: spec, Directives: directives}
			if d.DefaultValue != nil {
				resolved, err := resolveLiteral(d.DefaultValue, spec, file)
				if err != nil {
					return err
				}
				literal.DefaultValue = &resolved
			}
			fieldSpec = literal
		}
		into.Set(d.Name.Value, &FieldDef[InputFieldSpec]{Name: d.Name.Value, Spec: fieldSpec, Nullable: nullable})
	}
	return nil
}

func innerNullable(t ast.Type) bool {
	if lt, ok := t.(*ast.ListType); ok {
		return lt.Element.Nullable
	}
	return true
}

func (r *Registry) resolveServerDirectives(invocations []*ast.DirectiveInvocation, file string) ([]*ServerDirectiveInvocation, *errors.GraphQLError) {
	var out []*ServerDirectiveInvocation
	for _, inv := range invocations {
		dir, ok := r.ServerDirectives.Get(inv.Name.Value)
		if !ok {
			return nil, unknownType(inv.Name.Value, inv.Loc, file)
		}
		args, err := r.resolveServerDirectiveArguments(dir, inv.Arguments, file)
		if err != nil {
			return nil, err
		}
		out = append(out, &ServerDirectiveInvocation{Directive: dir, Arguments: args})
	}
	return out, nil
}

func (r *Registry) resolveServerDirectiveArguments(dir *ServerDirective, args []*ast.Argument, file string) ([]DirectiveInvocationArgument, *errors.GraphQLError) {
	var out []DirectiveInvocationArgument
	for _, a := range args {
		decl, ok := dir.Arguments.Get(a.Name.Value)
		if !ok {
			return nil, errors.New("unknown argument %q", a.Name.Value).
				WithLocation(a.Loc).WithFile(file).WithRule(errors.UnknownArgument)
		}
		lit, ok := a.Value.(*ast.Literal)
		if !ok {
			return nil, errors.New("directive argument %q must be a literal", a.Name.Value).
				WithLocation(a.Loc).WithFile(file).WithRule(errors.ArgumentTypeMismatch)
		}
		spec := argInputTypeSpec(decl.Spec)
		resolved, err := resolveLiteral(lit, spec, file)
		if err != nil {
			return nil, err
		}
		out = append(out, DirectiveInvocationArgument{Name: a.Name.Value, Value: &ArgumentLiteralValue{Value: resolved}})
	}
	return out, nil
}

func argInputTypeSpec(spec InputFieldSpec) InputTypeSpec {
	switch s := spec.(type) {
	case *LiteralInputFieldSpec:
		return s.Type
	case *ArrayInputFieldSpec:
		return s.Type
	default:
		return nil
	}
}
