package jsonschema

import (
	"fmt"
	"io"

	"github.com/shyptr/gqlc/schema"
)

// Decode parses a document produced by Encode back into a Program,
// reconstructing every cross-reference by name through a fresh type
// registry rather than copying values (spec.md §4.8: "Both emitter and
// reader treat $ref cross-references symbolically by name, reconstructing
// shared identities through the type registry"). Decode is used only by
// the test harness and by tools that want to round-trip a schema; nothing
// in the core compile pipeline depends on it.
func Decode(r io.Reader) (*schema.Program, error) {
	doc, err := decodeDocument(r)
	if err != nil {
		return nil, err
	}

	reg := schema.NewRegistry()

	if err := decodeServerSchema(reg, doc.field("server")); err != nil {
		return nil, err
	}
	if err := decodeClientSchema(reg, doc.field("client")); err != nil {
		return nil, err
	}

	return &schema.Program{Server: reg.ServerSchema(), Client: reg.ClientSchema()}, nil
}

// decodeServerSchema runs the same shell-then-fill two-pass shape the live
// resolver uses (spec.md §4.3), except every cross-reference here is
// already known by name (nothing needs forward-reference tolerance beyond
// "has every shell been created yet").
func decodeServerSchema(reg *schema.Registry, doc *node) error {
	// Pass 1: shells. Scalars are terminal (built-ins are already present;
	// re-declaring them here is a harmless overwrite with an equal value).
	for _, n := range doc.field("scalars").items() {
		name := n.asString()
		reg.Scalars.Set(name, &schema.Scalar{Name: name})
	}
	for _, e := range doc.field("enums").items() {
		name := e.field("name").asString()
		var values []string
		for _, v := range e.field("values").items() {
			values = append(values, v.asString())
		}
		reg.Enums.Set(name, &schema.EnumDef{Name: name, Values: values})
	}
	for _, o := range doc.field("objects").items() {
		name := o.field("name").asString()
		reg.Objects.Set(name, &schema.ObjectType{
			Name: name, Fields: schema.NewOrderedMap[*schema.FieldDef[schema.ObjectFieldSpec]](),
			Implements: schema.NewOrderedMap[*schema.Interface](),
		})
	}
	for _, o := range doc.field("interfaces").items() {
		name := o.field("name").asString()
		reg.Interfaces.Set(name, &schema.Interface{
			Name: name, Fields: schema.NewOrderedMap[*schema.FieldDef[schema.ObjectFieldSpec]](),
		})
	}
	for _, o := range doc.field("inputs").items() {
		name := o.field("name").asString()
		reg.Inputs.Set(name, &schema.InputType{
			Name: name, Fields: schema.NewOrderedMap[*schema.FieldDef[schema.InputFieldSpec]](),
		})
	}
	for _, o := range doc.field("unions").items() {
		name := o.field("name").asString()
		reg.Unions.Set(name, &schema.Union{Name: name, Items: schema.NewOrderedMap[*schema.ObjectType]()})
	}
	for _, d := range doc.field("directives").items() {
		name := d.field("name").asString()
		reg.ServerDirectives.Set(name, &schema.ServerDirective{Name: name})
	}

	// Pass 2: fill in cross-references.
	for _, o := range doc.field("objects").items() {
		target, _ := reg.Objects.Get(o.field("name").asString())
		var implErr error
		o.field("implements").each(func(key string, ref *node) {
			if implErr != nil {
				return
			}
			iface, ok := reg.Interfaces.Get(refName(ref))
			if !ok {
				implErr = fmt.Errorf("jsonschema: unknown interface %q implemented by %q", refName(ref), o.field("name").asString())
				return
			}
			target.Implements.Set(key, iface)
		})
		if implErr != nil {
			return implErr
		}
		if err := decodeObjectFieldDefMap(reg, target.Fields, o.field("fields")); err != nil {
			return err
		}
	}
	for _, o := range doc.field("interfaces").items() {
		target, _ := reg.Interfaces.Get(o.field("name").asString())
		if err := decodeObjectFieldDefMap(reg, target.Fields, o.field("fields")); err != nil {
			return err
		}
	}
	for _, o := range doc.field("inputs").items() {
		target, _ := reg.Inputs.Get(o.field("name").asString())
		if err := decodeInputFieldDefMap(reg, target.Fields, o.field("fields")); err != nil {
			return err
		}
	}
	for _, o := range doc.field("unions").items() {
		target, _ := reg.Unions.Get(o.field("name").asString())
		var itemErr error
		o.field("items").each(func(key string, ref *node) {
			if itemErr != nil {
				return
			}
			member, ok := reg.Objects.Get(refName(ref))
			if !ok {
				itemErr = fmt.Errorf("jsonschema: unknown object %q in union %q", refName(ref), o.field("name").asString())
				return
			}
			target.Items.Set(key, member)
		})
		if itemErr != nil {
			return itemErr
		}
	}
	for _, d := range doc.field("directives").items() {
		target, _ := reg.ServerDirectives.Get(d.field("name").asString())
		args := schema.NewOrderedMap[*schema.FieldDef[schema.InputFieldSpec]]()
		if err := decodeInputFieldDefMap(reg, args, d.field("arguments")); err != nil {
			return err
		}
		target.Arguments = args
		target.Locations = decodeLocations(d.field("locations"))
	}

	if q, ok := reg.Objects.Get("Query"); ok {
		reg.Queries = q.Fields
	}
	if m, ok := reg.Objects.Get("Mutation"); ok {
		reg.Mutations = m.Fields
	}
	if s, ok := reg.Objects.Get("Subscription"); ok {
		reg.Subscriptions = s.Fields
	}
	return nil
}

func refName(ref *node) string {
	return ref.field("name").asString()
}

func decodeLocations(raw *node) []schema.DirectiveLocation {
	items := raw.items()
	out := make([]schema.DirectiveLocation, 0, len(items))
	for _, v := range items {
		out = append(out, schema.DirectiveLocation(v.asString()))
	}
	return out
}

func decodeObjectTypeSpecRef(reg *schema.Registry, ref *node) (schema.ObjectTypeSpec, error) {
	name := refName(ref)
	spec, ok := reg.ResolveObjectTypeSpec(name)
	if !ok {
		return nil, fmt.Errorf("jsonschema: unknown type %q", name)
	}
	return spec, nil
}

func decodeInputTypeSpecRef(reg *schema.Registry, ref *node) (schema.InputTypeSpec, error) {
	name := refName(ref)
	spec, ok := reg.ResolveInputTypeSpec(name)
	if !ok {
		return nil, fmt.Errorf("jsonschema: unknown input type %q", name)
	}
	return spec, nil
}

func decodeObjectFieldDefMap(reg *schema.Registry, into *schema.OrderedMap[*schema.FieldDef[schema.ObjectFieldSpec]], doc *node) error {
	var outerErr error
	doc.each(func(name string, raw *node) {
		if outerErr != nil {
			return
		}
		def, err := decodeObjectFieldSpec(reg, raw)
		if err != nil {
			outerErr = err
			return
		}
		def.Name = name
		into.Set(name, def)
	})
	return outerErr
}

func decodeObjectFieldSpec(reg *schema.Registry, doc *node) (*schema.FieldDef[schema.ObjectFieldSpec], error) {
	invocations, err := decodeServerDirectiveInvocations(reg, doc.field("invocations"))
	if err != nil {
		return nil, err
	}
	switch doc.field("_type").asString() {
	case "literal":
		t, err := decodeObjectTypeSpecRef(reg, doc.field("type"))
		if err != nil {
			return nil, err
		}
		return &schema.FieldDef[schema.ObjectFieldSpec]{
			Nullable: doc.field("nullable").asBool(),
			Spec:     &schema.LiteralObjectFieldSpec{Type: t, Directives: invocations},
		}, nil
	case "array":
		t, err := decodeObjectTypeSpecRef(reg, doc.field("type"))
		if err != nil {
			return nil, err
		}
		return &schema.FieldDef[schema.ObjectFieldSpec]{
			Nullable: doc.field("nullable").asBool(),
			Spec: &schema.ArrayObjectFieldSpec{
				Type: t, InnerNullable: doc.field("innerNullable").asBool(), Directives: invocations,
			},
		}, nil
	case "callable":
		ret, err := decodeNonCallableFieldSpec(reg, doc.field("returnType"))
		if err != nil {
			return nil, err
		}
		args := schema.NewOrderedMap[*schema.FieldDef[schema.InputFieldSpec]]()
		if err := decodeInputFieldDefMap(reg, args, doc.field("arguments")); err != nil {
			return nil, err
		}
		return &schema.FieldDef[schema.ObjectFieldSpec]{
			Nullable: doc.field("nullable").asBool(),
			Spec:     &schema.CallableFieldSpec{ReturnType: ret, Arguments: args, Directives: invocations},
		}, nil
	default:
		return nil, fmt.Errorf("jsonschema: unknown object field spec _type %q", doc.field("_type").asString())
	}
}

func decodeNonCallableFieldSpec(reg *schema.Registry, doc *node) (schema.NonCallableObjectFieldSpec, error) {
	t, err := decodeObjectTypeSpecRef(reg, doc.field("type"))
	if err != nil {
		return nil, err
	}
	switch doc.field("_type").asString() {
	case "literal":
		return &schema.LiteralObjectFieldSpec{Type: t}, nil
	case "array":
		return &schema.ArrayObjectFieldSpec{Type: t, InnerNullable: doc.field("innerNullable").asBool()}, nil
	default:
		return nil, fmt.Errorf("jsonschema: unknown return type _type %q", doc.field("_type").asString())
	}
}

func decodeInputFieldDefMap(reg *schema.Registry, into *schema.OrderedMap[*schema.FieldDef[schema.InputFieldSpec]], doc *node) error {
	var outerErr error
	doc.each(func(name string, raw *node) {
		if outerErr != nil {
			return
		}
		def, err := decodeInputFieldSpec(reg, raw)
		if err != nil {
			outerErr = err
			return
		}
		def.Name = name
		into.Set(name, def)
	})
	return outerErr
}

func decodeInputFieldSpec(reg *schema.Registry, doc *node) (*schema.FieldDef[schema.InputFieldSpec], error) {
	directives, err := decodeClientDirectiveInvocations(reg, doc.field("directives"))
	if err != nil {
		return nil, err
	}
	t, err := decodeInputTypeSpecRef(reg, doc.field("type"))
	if err != nil {
		return nil, err
	}
	switch doc.field("_type").asString() {
	case "literal":
		var def *schema.Literal
		if raw := doc.field("defaultValue"); !raw.isNull() {
			lit := decodeLiteral(raw)
			def = &lit
		}
		return &schema.FieldDef[schema.InputFieldSpec]{
			Nullable: doc.field("nullable").asBool(),
			Spec:     &schema.LiteralInputFieldSpec{Type: t, DefaultValue: def, Directives: directives},
		}, nil
	case "array":
		var def *schema.ArrayLiteral
		if raw := doc.field("defaultValue"); !raw.isNull() {
			lit := decodeArrayLiteral(raw)
			def = &lit
		}
		return &schema.FieldDef[schema.InputFieldSpec]{
			Nullable: doc.field("nullable").asBool(),
			Spec: &schema.ArrayInputFieldSpec{
				Type: t, InnerNullable: doc.field("innerNullable").asBool(), DefaultValue: def, Directives: directives,
			},
		}, nil
	default:
		return nil, fmt.Errorf("jsonschema: unknown input field spec _type %q", doc.field("_type").asString())
	}
}

func literalKindFromTag(tag string) schema.LiteralKind {
	switch tag {
	case "int":
		return schema.LitInt
	case "float":
		return schema.LitFloat
	case "bool":
		return schema.LitBool
	case "enum":
		return schema.LitEnum
	default:
		return schema.LitString
	}
}

func decodeLiteral(doc *node) schema.Literal {
	kind := literalKindFromTag(doc.field("kind").asString())
	lit := schema.Literal{Kind: kind}
	value := doc.field("value")
	switch kind {
	case schema.LitInt:
		lit.Int = value.asInt64()
	case schema.LitFloat:
		lit.Float = value.asFloat64()
	case schema.LitBool:
		lit.Bool = value.asBool()
	default:
		lit.Str = value.asString()
	}
	return lit
}

func decodeArrayLiteral(doc *node) schema.ArrayLiteral {
	kind := literalKindFromTag(doc.field("elementKind").asString())
	items := doc.field("values").items()
	values := make([]schema.Literal, 0, len(items))
	for _, raw := range items {
		values = append(values, decodeLiteral(raw))
	}
	return schema.ArrayLiteral{ElementKind: kind, Values: values}
}

func decodeArgumentValue(doc *node) schema.ArgumentValue {
	switch doc.field("_type").asString() {
	case "literal":
		return &schema.ArgumentLiteralValue{Value: decodeLiteral(doc.field("literal"))}
	case "ref":
		return &schema.ArgumentRefValue{ParameterName: doc.field("name").asString()}
	default:
		return nil
	}
}

func decodeDirectiveInvocationArguments(raw *node) []schema.DirectiveInvocationArgument {
	items := raw.items()
	out := make([]schema.DirectiveInvocationArgument, 0, len(items))
	for _, v := range items {
		out = append(out, schema.DirectiveInvocationArgument{
			Name: v.field("name").asString(), Value: decodeArgumentValue(v.field("value")),
		})
	}
	return out
}

func decodeServerDirectiveInvocations(reg *schema.Registry, raw *node) ([]*schema.ServerDirectiveInvocation, error) {
	items := raw.items()
	out := make([]*schema.ServerDirectiveInvocation, 0, len(items))
	for _, v := range items {
		dirName := v.field("directive").asString()
		dir, ok := reg.ServerDirectives.Get(dirName)
		if !ok {
			return nil, fmt.Errorf("jsonschema: unknown server directive %q", dirName)
		}
		out = append(out, &schema.ServerDirectiveInvocation{
			Directive: dir, Arguments: decodeDirectiveInvocationArguments(v.field("arguments")),
		})
	}
	return out, nil
}

func decodeClientDirectiveInvocations(reg *schema.Registry, raw *node) ([]*schema.ClientDirectiveInvocation, error) {
	items := raw.items()
	out := make([]*schema.ClientDirectiveInvocation, 0, len(items))
	for _, v := range items {
		dirName := v.field("directive").asString()
		dir, ok := reg.ClientDirectives.Get(dirName)
		if !ok {
			return nil, fmt.Errorf("jsonschema: unknown client directive %q", dirName)
		}
		out = append(out, &schema.ClientDirectiveInvocation{
			Directive: dir, Arguments: decodeDirectiveInvocationArguments(v.field("arguments")),
		})
	}
	return out, nil
}

// decodeClientSchema fills in fragments and operations. Fragment shells
// (name, root type) are created first so a fragment spreading another one
// declared later in the map still resolves to the same shared pointer
// (spec.md §3.5).
func decodeClientSchema(reg *schema.Registry, doc *node) error {
	fragDoc := doc.field("fragments")
	var fragErr error
	fragDoc.each(func(name string, f *node) {
		if fragErr != nil {
			return
		}
		specDoc := f.field("spec")
		root, err := decodeObjectTypeSpecRef(reg, specDoc.field("type"))
		if err != nil {
			fragErr = err
			return
		}
		reg.Fragments.Set(name, &schema.Fragment{
			Name: name, RootType: root, SourceText: f.field("sourceText").asString(), Hash: f.field("hash").asString(),
		})
	})
	if fragErr != nil {
		return fragErr
	}

	for _, d := range doc.field("directives").items() {
		args := schema.NewOrderedMap[*schema.FieldDef[schema.InputFieldSpec]]()
		if err := decodeInputFieldDefMap(reg, args, d.field("arguments")); err != nil {
			return err
		}
		name := d.field("name").asString()
		reg.ClientDirectives.Set(name, &schema.ClientDirective{
			Name: name, Arguments: args, Locations: decodeLocations(d.field("locations")),
		})
	}

	fragDoc.each(func(name string, f *node) {
		if fragErr != nil {
			return
		}
		fragment, _ := reg.Fragments.Get(name)
		spec, err := decodeFragmentSpec(reg, f.field("spec"))
		if err != nil {
			fragErr = err
			return
		}
		fragment.Spec = spec
	})
	if fragErr != nil {
		return fragErr
	}

	for _, op := range doc.field("operations").items() {
		params := schema.NewOrderedMap[*schema.FieldDef[schema.InputFieldSpec]]()
		if err := decodeInputFieldDefMap(reg, params, op.field("parameters")); err != nil {
			return err
		}
		spec, err := decodeFragmentSpec(reg, op.field("fragmentSpec"))
		if err != nil {
			return err
		}
		directives, err := decodeClientDirectiveInvocations(reg, op.field("directives"))
		if err != nil {
			return err
		}
		var used []string
		for _, v := range op.field("usedFragments").items() {
			used = append(used, v.asString())
		}
		reg.Operations = append(reg.Operations, &schema.Operation{
			Kind:           operationKindFromString(op.field("type").asString()),
			Name:           op.field("name").asString(),
			Parameters:     params,
			Spec:           spec,
			Directives:     directives,
			SourceText:     op.field("sourceText").asString(),
			ParametersHash: op.field("parametersHash").asString(),
			FragmentHash:   op.field("fragmentSpecHash").asString(),
			UsedFragments:  used,
		})
	}
	return nil
}

func operationKindFromString(s string) schema.OperationKind {
	switch s {
	case "mutation":
		return schema.Mutation
	case "subscription":
		return schema.Subscription
	default:
		return schema.Query
	}
}

func decodeFragmentSpec(reg *schema.Registry, doc *node) (schema.FragmentSpec, error) {
	root, err := decodeObjectTypeSpecRef(reg, doc.field("type"))
	if err != nil {
		return nil, err
	}
	selections, err := decodeSelections(reg, root, doc.field("selections"))
	if err != nil {
		return nil, err
	}
	switch doc.field("_type").asString() {
	case "object", "interface":
		return &schema.ObjectFragmentSpec{Root: root, Selections: selections}, nil
	case "union":
		union, ok := root.(*schema.Union)
		if !ok {
			return nil, fmt.Errorf("jsonschema: union fragment spec root %q is not a union", root.TypeName())
		}
		return &schema.UnionFragmentSpec{Root: union, Selections: selections}, nil
	default:
		return nil, fmt.Errorf("jsonschema: unknown fragment spec _type %q", doc.field("_type").asString())
	}
}

// decodeSelections decodes every selection in doc against context: the
// object/interface/union the enclosing fragment spec is rooted at, needed
// to look a FieldSelection's bare name back up against the one Fields map
// it was actually resolved against (spec.md §3.3).
func decodeSelections(reg *schema.Registry, context schema.ObjectTypeSpec, doc *node) ([]schema.Selection, error) {
	items := doc.items()
	out := make([]schema.Selection, 0, len(items))
	for _, v := range items {
		sel, err := decodeSelection(reg, context, v)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}

func decodeSelection(reg *schema.Registry, context schema.ObjectTypeSpec, doc *node) (schema.Selection, error) {
	switch doc.field("_type").asString() {
	case "TypenameField":
		return &schema.TypenameField{Alias: doc.field("alias").asString()}, nil
	case "SpreadSelection":
		fragName := doc.field("fragment").asString()
		frag, ok := reg.Fragments.Get(fragName)
		if !ok {
			return nil, fmt.Errorf("jsonschema: unknown fragment %q", fragName)
		}
		return &schema.SpreadSelection{Fragment: frag}, nil
	case "FieldSelection":
		fieldDef, err := decodeFieldSelectionField(context, doc)
		if err != nil {
			return nil, err
		}
		args, err := decodeResolvedArguments(doc.field("arguments"), fieldDef)
		if err != nil {
			return nil, err
		}
		var nested schema.FragmentSpec
		if nestedDoc := doc.field("nestedSelection"); !nestedDoc.isNull() {
			nested, err = decodeFragmentSpec(reg, nestedDoc)
			if err != nil {
				return nil, err
			}
		}
		directives, err := decodeClientDirectiveInvocations(reg, doc.field("directives"))
		if err != nil {
			return nil, err
		}
		return &schema.FieldSelection{
			Alias: doc.field("alias").asString(), Field: fieldDef, Arguments: args,
			Directives: directives, Nested: nested,
		}, nil
	case "ObjectConditionalSpreadSelection":
		t, err := decodeObjectTypeSpecRef(reg, doc.field("type"))
		if err != nil {
			return nil, err
		}
		objType, ok := t.(*schema.ObjectType)
		if !ok {
			return nil, fmt.Errorf("jsonschema: conditional spread type %q is not an object", t.TypeName())
		}
		sels, err := decodeSelections(reg, objType, doc.field("selections"))
		if err != nil {
			return nil, err
		}
		return &schema.ObjectConditionalSpreadSelection{
			Type: objType, Nested: &schema.ObjectFragmentSpec{Root: objType, Selections: sels},
		}, nil
	case "UnionConditionalSpreadSelection":
		t, err := decodeObjectTypeSpecRef(reg, doc.field("type"))
		if err != nil {
			return nil, err
		}
		union, ok := t.(*schema.Union)
		if !ok {
			return nil, fmt.Errorf("jsonschema: conditional spread type %q is not a union", t.TypeName())
		}
		sels, err := decodeSelections(reg, union, doc.field("selections"))
		if err != nil {
			return nil, err
		}
		return &schema.UnionConditionalSpreadSelection{
			Type: union, Nested: &schema.UnionFragmentSpec{Root: union, Selections: sels},
		}, nil
	default:
		return nil, fmt.Errorf("jsonschema: unknown selection _type %q", doc.field("_type").asString())
	}
}

// decodeFieldSelectionField re-derives the FieldDef a FieldSelection
// points to, by looking its bare name up against context's own Fields map
// — the object or interface the enclosing fragment spec is actually rooted
// at, mirroring how schema.resolveFieldSelection looked it up in the first
// place (schema/resolve_client.go).
func decodeFieldSelectionField(context schema.ObjectTypeSpec, doc *node) (*schema.FieldDef[schema.ObjectFieldSpec], error) {
	name := doc.field("name").asString()
	var fields *schema.OrderedMap[*schema.FieldDef[schema.ObjectFieldSpec]]
	switch t := context.(type) {
	case *schema.ObjectType:
		fields = t.Fields
	case *schema.Interface:
		fields = t.Fields
	default:
		return nil, fmt.Errorf("jsonschema: selection context %q cannot own fields", context.TypeName())
	}
	if def, ok := fields.Get(name); ok {
		return def, nil
	}
	return nil, fmt.Errorf("jsonschema: unknown selected field %q on %q", name, context.TypeName())
}

func decodeResolvedArguments(doc *node, field *schema.FieldDef[schema.ObjectFieldSpec]) ([]schema.ResolvedArgument, error) {
	var declared *schema.OrderedMap[*schema.FieldDef[schema.InputFieldSpec]]
	if callable, ok := field.Spec.(*schema.CallableFieldSpec); ok {
		declared = callable.Arguments
	}
	items := doc.items()
	out := make([]schema.ResolvedArgument, 0, len(items))
	for _, v := range items {
		name := v.field("name").asString()
		var declType *schema.FieldDef[schema.InputFieldSpec]
		if declared != nil {
			declType, _ = declared.Get(name)
		}
		out = append(out, schema.ResolvedArgument{
			Name: name, Value: decodeArgumentValue(v.field("value")), DeclaredType: declType,
		})
	}
	return out, nil
}
