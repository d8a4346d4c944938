package schema

import (
	"strings"

	"github.com/shyptr/gqlc/ast"
	"github.com/shyptr/gqlc/errors"
)

// ResolveClient runs the two-pass resolution of every client file against
// an already server-resolved registry (spec.md §4.5). Pass one registers a
// shell fragment/directive for every declared name and binds each
// fragment's declared root type; operation names are checked for
// collisions but operations carry no shell since nothing can forward-
// reference an operation. Pass two fills in directive argument lists,
// resolves every fragment body (so a fragment spreading one declared later
// in the file still finds a registered shell), then resolves every
// operation body, computing its two hashes and its transitive used-
// fragments closure (§4.6).
func ResolveClient(r *Registry, files []*ast.ClientFile) *errors.GraphQLError {
	type fragmentJob struct {
		file string
		def  *ast.FragmentDefinition
		root ObjectTypeSpec
	}
	type operationJob struct {
		file string
		def  *ast.OperationDefinition
	}

	var fragmentJobs []fragmentJob
	var operationJobs []operationJob
	operationNames := map[string]bool{}

	// Pass 1: shells.
	for _, file := range files {
		for _, def := range file.Definitions {
			switch d := def.(type) {
			case *ast.FragmentDefinition:
				if r.Fragments.Has(d.Name.Value) {
					return nameAlreadyDefined(d.Name.Value, d.Loc, file.Path)
				}
				root, ok := r.ResolveObjectTypeSpec(d.TypeName.Value)
				if !ok {
					return unknownType(d.TypeName.Value, d.TypeName.Loc, file.Path)
				}
				r.Fragments.Set(d.Name.Value, &Fragment{
					Name: d.Name.Value, RootType: root, SourceText: d.SourceText,
				})
				fragmentJobs = append(fragmentJobs, fragmentJob{file: file.Path, def: d, root: root})
			case *ast.DirectiveDefinition:
				if err := r.declareDirectiveName(d.Name.Value, d.Loc, file.Path); err != nil {
					return err
				}
				r.ClientDirectives.Set(d.Name.Value, &ClientDirective{Name: d.Name.Value})
			case *ast.OperationDefinition:
				if d.Name != nil {
					if operationNames[d.Name.Value] {
						return nameAlreadyDefined(d.Name.Value, d.Loc, file.Path)
					}
					operationNames[d.Name.Value] = true
				}
				operationJobs = append(operationJobs, operationJob{file: file.Path, def: d})
			}
		}
	}

	// Pass 2, step a: directive argument lists. Directives may be invoked
	// by any operation/fragment/field below, so their own argument
	// declarations must be complete first.
	for _, file := range files {
		for _, def := range file.Definitions {
			d, ok := def.(*ast.DirectiveDefinition)
			if !ok {
				continue
			}
			if err := validateDirectiveLocations(d.Locations, ast.ClientDirectiveLocations, d.Loc, file.Path); err != nil {
				return err
			}
			dir, _ := r.ClientDirectives.Get(d.Name.Value)
			args := NewOrderedMap[*FieldDef[InputFieldSpec]]()
			if err := r.fillInputFields(args, d.Arguments, file.Path); err != nil {
				return err
			}
			dir.Arguments = args
			dir.Locations = d.Locations
		}
	}

	// Pass 2, step b: every fragment body, spec only (hashes come after
	// every fragment's Spec exists, so a fragment that spreads one
	// declared later in the file can still read its final shape).
	for _, job := range fragmentJobs {
		cr := &clientResolver{registry: r, file: job.file, parameters: NewOrderedMap[*FieldDef[InputFieldSpec]]()}
		spec, err := cr.resolveFragmentSpec(job.root, job.def.Selections)
		if err != nil {
			return err
		}
		fragment, _ := r.Fragments.Get(job.def.Name.Value)
		fragment.Spec = spec
	}
	for _, job := range fragmentJobs {
		fragment, _ := r.Fragments.Get(job.def.Name.Value)
		fragment.Hash = hashFragmentSpecClosure(fragment.Spec)
	}

	// Pass 2, step c: every operation body.
	for _, job := range operationJobs {
		root, err := operationRootType(r, job.def, job.file)
		if err != nil {
			return err
		}
		cr := &clientResolver{registry: r, file: job.file, parameters: NewOrderedMap[*FieldDef[InputFieldSpec]]()}
		if err := r.fillInputFields(cr.parameters, job.def.Parameters, job.file); err != nil {
			return err
		}
		spec, err := cr.resolveFragmentSpec(root, job.def.Selections)
		if err != nil {
			return err
		}
		directives, err := r.resolveClientDirectives(job.def.Directives, job.file)
		if err != nil {
			return err
		}
		name := ""
		if job.def.Name != nil {
			name = job.def.Name.Value
		}
		kind := operationKind(job.def.Kind)
		op := &Operation{
			Kind:           kind,
			Name:           name,
			Parameters:     cr.parameters,
			Spec:           spec,
			Directives:     directives,
			SourceText:     job.def.SourceText,
			ParametersHash: hashOperationParameters(kind, name, cr.parameters),
			FragmentHash:   hashFragmentSpecClosure(spec),
			UsedFragments:  usedFragmentNames(spec),
		}
		r.Operations = append(r.Operations, op)
	}

	return nil
}

func nameAlreadyDefined(name string, loc errors.Location, file string) *errors.GraphQLError {
	return errors.New("%q is already defined", name).
		WithLocation(loc).WithFile(file).WithRule(errors.NameAlreadyDefined)
}

func operationKind(k ast.OperationKind) OperationKind {
	switch k {
	case ast.Mutation:
		return Mutation
	case ast.Subscription:
		return Subscription
	default:
		return Query
	}
}

func operationRootType(r *Registry, def *ast.OperationDefinition, file string) (ObjectTypeSpec, *errors.GraphQLError) {
	rootName := "Query"
	switch def.Kind {
	case ast.Mutation:
		rootName = "Mutation"
	case ast.Subscription:
		rootName = "Subscription"
	}
	obj, ok := r.Objects.Get(rootName)
	if !ok {
		return nil, errors.New("schema declares no %s root type", rootName).
			WithLocation(def.Loc).WithFile(file).WithRule(errors.UnknownType)
	}
	return obj, nil
}

// resolveClientDirectives mirrors resolveServerDirectives (resolve_server.go)
// against the client directive namespace.
func (r *Registry) resolveClientDirectives(invocations []*ast.DirectiveInvocation, file string) ([]*ClientDirectiveInvocation, *errors.GraphQLError) {
	var out []*ClientDirectiveInvocation
	for _, inv := range invocations {
		dir, ok := r.ClientDirectives.Get(inv.Name.Value)
		if !ok {
			return nil, unknownType(inv.Name.Value, inv.Loc, file)
		}
		args, err := r.resolveClientDirectiveArguments(dir, inv.Arguments, file)
		if err != nil {
			return nil, err
		}
		out = append(out, &ClientDirectiveInvocation{Directive: dir, Arguments: args})
	}
	return out, nil
}

// resolveClientDirectiveArguments mirrors resolveServerDirectiveArguments
// (resolve_server.go) against a *ClientDirective's own argument
// declarations.
func (r *Registry) resolveClientDirectiveArguments(dir *ClientDirective, args []*ast.Argument, file string) ([]DirectiveInvocationArgument, *errors.GraphQLError) {
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

// clientResolver carries the per-document-body context a selection-set
// resolution pass needs: the registry to look names up in, the source
// file for error tagging, and (for an operation body, empty for a
// fragment body) the declared parameter list variable references bind
// against.
type clientResolver struct {
	registry   *Registry
	file       string
	parameters *OrderedMap[*FieldDef[InputFieldSpec]]
}

// resolveFragmentSpec resolves sels against root, dispatching on whether
// root is object-like (object/interface) or a union (spec.md §4.5).
func (cr *clientResolver) resolveFragmentSpec(root ObjectTypeSpec, sels []ast.Selection) (FragmentSpec, *errors.GraphQLError) {
	switch t := root.(type) {
	case *ObjectType:
		selections, err := cr.resolveObjectSelections(t.Fields, t, sels)
		if err != nil {
			return nil, err
		}
		return &ObjectFragmentSpec{Root: t, Selections: selections}, nil
	case *Interface:
		selections, err := cr.resolveObjectSelections(t.Fields, t, sels)
		if err != nil {
			return nil, err
		}
		return &ObjectFragmentSpec{Root: t, Selections: selections}, nil
	case *Union:
		selections, err := cr.resolveUnionSelections(t, sels)
		if err != nil {
			return nil, err
		}
		return &UnionFragmentSpec{Root: t, Selections: selections}, nil
	default:
		return nil, errors.New("type %q cannot root a selection set", root.TypeName()).WithFile(cr.file)
	}
}

func isLeafType(t ObjectTypeSpec) bool {
	switch t.(type) {
	case *Scalar, *EnumDef:
		return true
	}
	return false
}

func nonCallableType(spec NonCallableObjectFieldSpec) ObjectTypeSpec {
	switch s := spec.(type) {
	case *LiteralObjectFieldSpec:
		return s.Type
	case *ArrayObjectFieldSpec:
		return s.Type
	}
	return nil
}

// resolveObjectSelections resolves sels against an object or interface
// context: plain field selections look the name up in fields; spreads
// must reference a compatible fragment; conditional spreads are forbidden
// outside union contexts (spec.md §4.5).
func (cr *clientResolver) resolveObjectSelections(fields *OrderedMap[*FieldDef[ObjectFieldSpec]], context ObjectTypeSpec, sels []ast.Selection) ([]Selection, *errors.GraphQLError) {
	var out []Selection
	for _, sel := range sels {
		switch s := sel.(type) {
		case *ast.FieldSelection:
			resolved, err := cr.resolveFieldSelection(fields, s)
			if err != nil {
				return nil, err
			}
			out = append(out, resolved)
		case *ast.FragmentSpreadSelection:
			frag, ok := cr.registry.Fragments.Get(s.Name.Value)
			if !ok {
				return nil, errors.New("unknown fragment %q", s.Name.Value).
					WithLocation(s.Loc).WithFile(cr.file).WithRule(errors.UnknownType)
			}
			if err := cr.checkObjectSpreadCompatible(context, frag, s.Loc); err != nil {
				return nil, err
			}
			out = append(out, &SpreadSelection{Fragment: frag})
		case *ast.ConditionalSpreadSelection:
			return nil, errors.New("conditional spreads are only allowed inside union contexts").
				WithLocation(s.Loc).WithFile(cr.file).WithRule(errors.IncompatibleFragmentType)
		}
	}
	return out, nil
}

func (cr *clientResolver) resolveFieldSelection(fields *OrderedMap[*FieldDef[ObjectFieldSpec]], s *ast.FieldSelection) (Selection, *errors.GraphQLError) {
	alias := ""
	if s.Alias != nil {
		alias = s.Alias.Value
	}
	if s.Name.Value == "__typename" {
		if len(s.Selections) > 0 {
			return nil, errors.New("__typename cannot carry a selection set").
				WithLocation(s.Loc).WithFile(cr.file).WithRule(errors.UnknownField)
		}
		return &TypenameField{Alias: alias}, nil
	}

	fd, ok := fields.Get(s.Name.Value)
	if !ok {
		return nil, errors.New("unknown field %q", s.Name.Value).
			WithLocation(s.Name.Loc).WithFile(cr.file).WithRule(errors.UnknownField)
	}
	directives, err := cr.registry.resolveClientDirectives(s.Directives, cr.file)
	if err != nil {
		return nil, err
	}

	var argMap *OrderedMap[*FieldDef[InputFieldSpec]]
	var returnSpec NonCallableObjectFieldSpec
	if callable, ok := fd.Spec.(*CallableFieldSpec); ok {
		argMap = callable.Arguments
		returnSpec = callable.ReturnType
	} else {
		argMap = NewOrderedMap[*FieldDef[InputFieldSpec]]()
		returnSpec = fd.Spec.(NonCallableObjectFieldSpec)
	}
	args, err := cr.resolveArguments(argMap, s.Arguments, s.Loc)
	if err != nil {
		return nil, err
	}

	typeSpec := nonCallableType(returnSpec)
	var nested FragmentSpec
	if isLeafType(typeSpec) {
		if len(s.Selections) > 0 {
			return nil, errors.New("field %q has a scalar/enum type and cannot carry a selection set", s.Name.Value).
				WithLocation(s.Loc).WithFile(cr.file).WithRule(errors.UnknownField)
		}
	} else {
		if len(s.Selections) == 0 {
			return nil, errors.New("field %q has an object/interface/union type and must carry a selection set", s.Name.Value).
				WithLocation(s.Loc).WithFile(cr.file).WithRule(errors.UnknownField)
		}
		nested, err = cr.resolveFragmentSpec(typeSpec, s.Selections)
		if err != nil {
			return nil, err
		}
	}
	return &FieldSelection{Alias: alias, Field: fd, Arguments: args, Directives: directives, Nested: nested}, nil
}

// resolveUnionSelections resolves sels against a union context: only
// __typename, fragment spreads and conditional spreads are legal; a plain
// field selection is rejected since unions declare no fields of their own
// (spec.md §4.5).
func (cr *clientResolver) resolveUnionSelections(union *Union, sels []ast.Selection) ([]Selection, *errors.GraphQLError) {
	var out []Selection
	for _, sel := range sels {
		switch s := sel.(type) {
		case *ast.FieldSelection:
			if s.Name.Value != "__typename" {
				return nil, errors.New("field %q cannot be selected directly on union %q", s.Name.Value, union.Name).
					WithLocation(s.Name.Loc).WithFile(cr.file).WithRule(errors.UnknownField)
			}
			alias := ""
			if s.Alias != nil {
				alias = s.Alias.Value
			}
			out = append(out, &TypenameField{Alias: alias})
		case *ast.FragmentSpreadSelection:
			frag, ok := cr.registry.Fragments.Get(s.Name.Value)
			if !ok {
				return nil, errors.New("unknown fragment %q", s.Name.Value).
					WithLocation(s.Loc).WithFile(cr.file).WithRule(errors.UnknownType)
			}
			if err := cr.checkUnionSpreadCompatible(union, frag, s.Loc); err != nil {
				return nil, err
			}
			out = append(out, &SpreadSelection{Fragment: frag})
		case *ast.ConditionalSpreadSelection:
			resolved, err := cr.resolveConditionalSpread(union, s)
			if err != nil {
				return nil, err
			}
			out = append(out, resolved)
		}
	}
	return out, nil
}

func (cr *clientResolver) resolveConditionalSpread(union *Union, s *ast.ConditionalSpreadSelection) (Selection, *errors.GraphQLError) {
	if obj, ok := union.Items.Get(s.TypeName.Value); ok {
		selections, err := cr.resolveObjectSelections(obj.Fields, obj, s.Selections)
		if err != nil {
			return nil, err
		}
		return &ObjectConditionalSpreadSelection{Type: obj, Nested: &ObjectFragmentSpec{Root: obj, Selections: selections}}, nil
	}
	if subUnion, ok := cr.registry.Unions.Get(s.TypeName.Value); ok {
		for _, name := range subUnion.Items.Keys() {
			if !union.Items.Has(name) {
				return nil, errors.New("union %q is not a subset of %q", subUnion.Name, union.Name).
					WithLocation(s.Loc).WithFile(cr.file).WithRule(errors.UnknownConditionalType)
			}
		}
		selections, err := cr.resolveUnionSelections(subUnion, s.Selections)
		if err != nil {
			return nil, err
		}
		return &UnionConditionalSpreadSelection{Type: subUnion, Nested: &UnionFragmentSpec{Root: subUnion, Selections: selections}}, nil
	}
	return nil, errors.New("unknown conditional type %q", s.TypeName.Value).
		WithLocation(s.TypeName.Loc).WithFile(cr.file).WithRule(errors.UnknownConditionalType)
}

func (cr *clientResolver) checkObjectSpreadCompatible(context ObjectTypeSpec, frag *Fragment, loc errors.Location) *errors.GraphQLError {
	switch c := context.(type) {
	case *ObjectType:
		switch root := frag.RootType.(type) {
		case *ObjectType:
			if root.Name == c.Name {
				return nil
			}
		case *Interface:
			if c.Implements.Has(root.Name) {
				return nil
			}
		}
	case *Interface:
		if root, ok := frag.RootType.(*Interface); ok && root.Name == c.Name {
			return nil
		}
	}
	return errors.New("fragment %q cannot be spread on type %q", frag.Name, context.TypeName()).
		WithLocation(loc).WithFile(cr.file).WithRule(errors.IncompatibleFragmentType)
}

func (cr *clientResolver) checkUnionSpreadCompatible(union *Union, frag *Fragment, loc errors.Location) *errors.GraphQLError {
	switch root := frag.RootType.(type) {
	case *Union:
		if root.Name == union.Name {
			return nil
		}
	case *Interface:
		allImplement := true
		union.Items.Range(func(_ string, obj *ObjectType) {
			if !obj.Implements.Has(root.Name) {
				allImplement = false
			}
		})
		if allImplement {
			return nil
		}
	}
	return errors.New("fragment %q cannot be spread inside union %q", frag.Name, union.Name).
		WithLocation(loc).WithFile(cr.file).WithRule(errors.IncompatibleFragmentType)
}

// resolveArguments binds each AST argument against argMap, then checks
// that every non-nullable, no-default declared argument was supplied
// (spec.md §3.4 invariant, §4.5 missing-argument). callLoc is the
// enclosing field selection's own location, used for the missing-argument
// error since an absent argument has no token of its own to point at.
func (cr *clientResolver) resolveArguments(argMap *OrderedMap[*FieldDef[InputFieldSpec]], astArgs []*ast.Argument, callLoc errors.Location) ([]ResolvedArgument, *errors.GraphQLError) {
	var out []ResolvedArgument
	provided := map[string]bool{}
	for _, a := range astArgs {
		decl, ok := argMap.Get(a.Name.Value)
		if !ok {
			return nil, errors.New("unknown argument %q", a.Name.Value).
				WithLocation(a.Loc).WithFile(cr.file).WithRule(errors.UnknownArgument)
		}
		provided[a.Name.Value] = true
		value, err := cr.resolveArgumentValue(decl, a)
		if err != nil {
			return nil, err
		}
		out = append(out, ResolvedArgument{Name: a.Name.Value, Value: value, DeclaredType: decl})
	}
	for _, name := range argMap.Keys() {
		if provided[name] {
			continue
		}
		decl, _ := argMap.Get(name)
		if isRequiredArgument(decl) {
			return nil, errors.New("missing required argument %q", name).
				WithLocation(callLoc).WithFile(cr.file).WithRule(errors.MissingArgument)
		}
	}
	if out == nil {
		out = []ResolvedArgument{}
	}
	return out, nil
}

func isRequiredArgument(decl *FieldDef[InputFieldSpec]) bool {
	if decl.Nullable {
		return false
	}
	return !hasDefaultValue(decl.Spec)
}

func hasDefaultValue(spec InputFieldSpec) bool {
	switch s := spec.(type) {
	case *LiteralInputFieldSpec:
		return s.DefaultValue != nil
	case *ArrayInputFieldSpec:
		return s.DefaultValue != nil
	}
	return false
}

// resolveArgumentValue binds one argument's value: a `$name` variable
// reference against the enclosing operation's parameters, or a literal
// checked against decl's declared type.
func (cr *clientResolver) resolveArgumentValue(decl *FieldDef[InputFieldSpec], a *ast.Argument) (ArgumentValue, *errors.GraphQLError) {
	if ref, ok := a.Value.(*ast.Name); ok && strings.HasPrefix(ref.Value, "$") {
		paramName := strings.TrimPrefix(ref.Value, "$")
		param, ok := cr.parameters.Get(paramName)
		if !ok {
			return nil, errors.New("%q does not reference a declared operation parameter", ref.Value).
				WithLocation(a.Loc).WithFile(cr.file).WithRule(errors.ArgumentTypeMismatch)
		}
		if !compatibleInputSpec(decl, param) {
			return nil, errors.New("variable %q is not compatible with argument %q", ref.Value, a.Name.Value).
				WithLocation(a.Loc).WithFile(cr.file).WithRule(errors.ArgumentTypeMismatch)
		}
		return &ArgumentRefValue{ParameterName: paramName}, nil
	}
	lit, ok := a.Value.(*ast.Literal)
	if !ok {
		return nil, errors.New("argument %q must be a literal or a variable reference", a.Name.Value).
			WithLocation(a.Loc).WithFile(cr.file).WithRule(errors.ArgumentTypeMismatch)
	}
	spec, isArray := inputSpecType(decl.Spec)
	if spec == nil || isArray {
		return nil, errors.New("argument %q does not accept a literal value", a.Name.Value).
			WithLocation(a.Loc).WithFile(cr.file).WithRule(errors.ArgumentTypeMismatch)
	}
	resolved, err := resolveLiteral(lit, spec, cr.file)
	if err != nil {
		return nil, err
	}
	return &ArgumentLiteralValue{Value: resolved}, nil
}

func inputSpecType(spec InputFieldSpec) (InputTypeSpec, bool) {
	switch s := spec.(type) {
	case *LiteralInputFieldSpec:
		return s.Type, false
	case *ArrayInputFieldSpec:
		return s.Type, true
	}
	return nil, false
}

// compatibleInputSpec checks a field argument's declaration against the
// operation parameter a `$name` reference binds to: same underlying type
// name, same array-ness, and the parameter may not be more nullable than
// the argument slot unless it carries a default (spec.md §4.5).
func compatibleInputSpec(argDecl, paramDecl *FieldDef[InputFieldSpec]) bool {
	argType, argArray := inputSpecType(argDecl.Spec)
	paramType, paramArray := inputSpecType(paramDecl.Spec)
	if argType == nil || paramType == nil || argType.TypeName() != paramType.TypeName() || argArray != paramArray {
		return false
	}
	if !argDecl.Nullable && paramDecl.Nullable && !hasDefaultValue(paramDecl.Spec) {
		return false
	}
	return true
}
