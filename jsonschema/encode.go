// Package jsonschema implements the canonical JSON serializer and reader
// for a resolved Program (spec.md §4.8, §6.2): the emitter walks the
// resolved schema and writes a canonical JSON document via a streaming
// writer; the reader performs the inverse, reconstructing shared
// identities through a fresh type registry rather than allocating a copy
// per reference.
package jsonschema

import (
	"io"

	"github.com/botobag/artemis/jsonwriter"

	"github.com/shyptr/gqlc/schema"
)

// Encode writes prog's canonical JSON representation to w: a top-level
// object with "server" and "client" keys (spec.md §6.2). Encode is pure —
// equal schemas produce byte-equal JSON (spec.md §8.1 property 8) — since
// every OrderedMap preserves source discovery order and nothing here
// consults map iteration order.
func Encode(w io.Writer, prog *schema.Program) error {
	s := jsonwriter.NewStream(w)
	top := newObj(s)
	top.field("server")
	encodeServerSchema(s, prog.Server)
	top.field("client")
	encodeClientSchema(s, prog.Client)
	top.close()
	return s.Flush()
}

func encodeServerSchema(s *jsonwriter.Stream, ss *schema.ServerSchema) {
	o := newObj(s)

	o.field("objects")
	objArr := newArr(s)
	for _, name := range ss.Objects.Keys() {
		t, _ := ss.Objects.Get(name)
		objArr.next()
		encodeObjectType(s, t)
	}
	objArr.close()

	o.field("interfaces")
	ifaceArr := newArr(s)
	for _, name := range ss.Interfaces.Keys() {
		t, _ := ss.Interfaces.Get(name)
		ifaceArr.next()
		encodeInterface(s, t)
	}
	ifaceArr.close()

	o.field("inputs")
	inputArr := newArr(s)
	for _, name := range ss.Inputs.Keys() {
		t, _ := ss.Inputs.Get(name)
		inputArr.next()
		encodeInputType(s, t)
	}
	inputArr.close()

	o.field("scalars")
	scalarArr := newArr(s)
	for _, name := range ss.Scalars.Keys() {
		scalarArr.next()
		s.WriteString(name)
	}
	scalarArr.close()

	o.field("enums")
	enumArr := newArr(s)
	for _, name := range ss.Enums.Keys() {
		e, _ := ss.Enums.Get(name)
		enumArr.next()
		encodeEnum(s, e)
	}
	enumArr.close()

	o.field("unions")
	unionArr := newArr(s)
	for _, name := range ss.Unions.Keys() {
		u, _ := ss.Unions.Get(name)
		unionArr.next()
		encodeUnion(s, u)
	}
	unionArr.close()

	o.field("directives")
	dirArr := newArr(s)
	for _, name := range ss.Directives.Keys() {
		d, _ := ss.Directives.Get(name)
		dirArr.next()
		encodeServerDirective(s, d)
	}
	dirArr.close()

	o.close()
}

// objectTypeSpecRef writes the sibling-pair cross-reference form spec.md
// §6.2 mandates: `{"_type": TAG, "name": …, "$ref": "#/server/<bucket>/<name>"}`.
func objectTypeSpecRef(s *jsonwriter.Stream, spec schema.ObjectTypeSpec) {
	tag, bucket := objectTypeSpecTag(spec)
	o := newObj(s)
	o.field("_type")
	s.WriteString(tag)
	o.field("name")
	s.WriteString(spec.TypeName())
	o.field("$ref")
	s.WriteString("#/server/" + bucket + "/" + spec.TypeName())
	o.close()
}

func objectTypeSpecTag(spec schema.ObjectTypeSpec) (tag, bucket string) {
	switch spec.(type) {
	case *schema.ObjectType:
		return "ObjectType", "objects"
	case *schema.Interface:
		return "InterfaceType", "interfaces"
	case *schema.Scalar:
		return "Scalar", "scalars"
	case *schema.EnumDef:
		return "Enum", "enums"
	case *schema.Union:
		return "Union", "unions"
	default:
		return "", ""
	}
}

func inputTypeSpecRef(s *jsonwriter.Stream, spec schema.InputTypeSpec) {
	var tag, bucket string
	switch spec.(type) {
	case *schema.InputType:
		tag, bucket = "InputType", "inputs"
	case *schema.Scalar:
		tag, bucket = "Scalar", "scalars"
	case *schema.EnumDef:
		tag, bucket = "Enum", "enums"
	}
	o := newObj(s)
	o.field("_type")
	s.WriteString(tag)
	o.field("name")
	s.WriteString(spec.TypeName())
	o.field("$ref")
	s.WriteString("#/server/" + bucket + "/" + spec.TypeName())
	o.close()
}

func encodeEnum(s *jsonwriter.Stream, e *schema.EnumDef) {
	o := newObj(s)
	o.field("name")
	s.WriteString(e.Name)
	o.field("values")
	values := newArr(s)
	for _, v := range e.Values {
		values.next()
		s.WriteString(v)
	}
	values.close()
	o.close()
}

func encodeInputType(s *jsonwriter.Stream, t *schema.InputType) {
	o := newObj(s)
	o.field("name")
	s.WriteString(t.Name)
	o.field("fields")
	encodeInputFieldDefMap(s, t.Fields)
	o.close()
}

func encodeInterface(s *jsonwriter.Stream, t *schema.Interface) {
	o := newObj(s)
	o.field("name")
	s.WriteString(t.Name)
	o.field("fields")
	encodeObjectFieldDefMap(s, t.Fields)
	o.close()
}

func encodeObjectType(s *jsonwriter.Stream, t *schema.ObjectType) {
	o := newObj(s)
	o.field("name")
	s.WriteString(t.Name)
	o.field("fields")
	encodeObjectFieldDefMap(s, t.Fields)
	o.field("implements")
	impl := newObj(s)
	for _, name := range t.Implements.Keys() {
		iface, _ := t.Implements.Get(name)
		impl.field(name)
		objectTypeSpecRef(s, iface)
	}
	impl.close()
	o.close()
}

func encodeUnion(s *jsonwriter.Stream, u *schema.Union) {
	o := newObj(s)
	o.field("name")
	s.WriteString(u.Name)
	o.field("items")
	items := newObj(s)
	for _, name := range u.Items.Keys() {
		item, _ := u.Items.Get(name)
		items.field(name)
		objectTypeSpecRef(s, item)
	}
	items.close()
	o.close()
}

func encodeServerDirective(s *jsonwriter.Stream, d *schema.ServerDirective) {
	o := newObj(s)
	o.field("name")
	s.WriteString(d.Name)
	o.field("arguments")
	encodeInputFieldDefMap(s, d.Arguments)
	o.field("locations")
	locs := newArr(s)
	for _, l := range d.Locations {
		locs.next()
		s.WriteString(string(l))
	}
	locs.close()
	o.close()
}

func encodeClientDirective(s *jsonwriter.Stream, d *schema.ClientDirective) {
	o := newObj(s)
	o.field("name")
	s.WriteString(d.Name)
	o.field("arguments")
	encodeInputFieldDefMap(s, d.Arguments)
	o.field("locations")
	locs := newArr(s)
	for _, l := range d.Locations {
		locs.next()
		s.WriteString(string(l))
	}
	locs.close()
	o.close()
}

func encodeObjectFieldDefMap(s *jsonwriter.Stream, fields *schema.OrderedMap[*schema.FieldDef[schema.ObjectFieldSpec]]) {
	o := newObj(s)
	for _, name := range fields.Keys() {
		def, _ := fields.Get(name)
		o.field(name)
		encodeObjectFieldSpec(s, def)
	}
	o.close()
}

func encodeInputFieldDefMap(s *jsonwriter.Stream, fields *schema.OrderedMap[*schema.FieldDef[schema.InputFieldSpec]]) {
	o := newObj(s)
	for _, name := range fields.Keys() {
		def, _ := fields.Get(name)
		o.field(name)
		encodeInputFieldSpec(s, def)
	}
	o.close()
}

func encodeObjectFieldSpec(s *jsonwriter.Stream, def *schema.FieldDef[schema.ObjectFieldSpec]) {
	o := newObj(s)
	switch spec := def.Spec.(type) {
	case *schema.LiteralObjectFieldSpec:
		o.field("_type")
		s.WriteString("literal")
		o.field("nullable")
		s.WriteBool(def.Nullable)
		o.field("type")
		objectTypeSpecRef(s, spec.Type)
		o.field("invocations")
		encodeServerDirectiveInvocations(s, spec.Directives)
	case *schema.ArrayObjectFieldSpec:
		o.field("_type")
		s.WriteString("array")
		o.field("nullable")
		s.WriteBool(def.Nullable)
		o.field("innerNullable")
		s.WriteBool(spec.InnerNullable)
		o.field("type")
		objectTypeSpecRef(s, spec.Type)
		o.field("invocations")
		encodeServerDirectiveInvocations(s, spec.Directives)
	case *schema.CallableFieldSpec:
		o.field("_type")
		s.WriteString("callable")
		o.field("nullable")
		s.WriteBool(def.Nullable)
		o.field("returnType")
		encodeNonCallableFieldSpec(s, spec.ReturnType)
		o.field("arguments")
		encodeInputFieldDefMap(s, spec.Arguments)
		o.field("invocations")
		encodeServerDirectiveInvocations(s, spec.Directives)
	}
	o.close()
}

// encodeNonCallableFieldSpec writes a CallableFieldSpec's ReturnType: the
// same literal/array shape as encodeObjectFieldSpec's "type" branch, minus
// the "nullable" key since a return type carries no FieldDef of its own.
func encodeNonCallableFieldSpec(s *jsonwriter.Stream, spec schema.NonCallableObjectFieldSpec) {
	o := newObj(s)
	switch spec := spec.(type) {
	case *schema.LiteralObjectFieldSpec:
		o.field("_type")
		s.WriteString("literal")
		o.field("type")
		objectTypeSpecRef(s, spec.Type)
	case *schema.ArrayObjectFieldSpec:
		o.field("_type")
		s.WriteString("array")
		o.field("innerNullable")
		s.WriteBool(spec.InnerNullable)
		o.field("type")
		objectTypeSpecRef(s, spec.Type)
	}
	o.close()
}

func encodeInputFieldSpec(s *jsonwriter.Stream, def *schema.FieldDef[schema.InputFieldSpec]) {
	o := newObj(s)
	switch spec := def.Spec.(type) {
	case *schema.LiteralInputFieldSpec:
		o.field("_type")
		s.WriteString("literal")
		o.field("nullable")
		s.WriteBool(def.Nullable)
		o.field("type")
		inputTypeSpecRef(s, spec.Type)
		if spec.DefaultValue != nil {
			o.field("defaultValue")
			encodeLiteral(s, *spec.DefaultValue)
		}
		o.field("directives")
		encodeClientDirectiveInvocations(s, spec.Directives)
	case *schema.ArrayInputFieldSpec:
		o.field("_type")
		s.WriteString("array")
		o.field("nullable")
		s.WriteBool(def.Nullable)
		o.field("innerNullable")
		s.WriteBool(spec.InnerNullable)
		o.field("type")
		inputTypeSpecRef(s, spec.Type)
		if spec.DefaultValue != nil {
			o.field("defaultValue")
			encodeArrayLiteral(s, *spec.DefaultValue)
		}
		o.field("directives")
		encodeClientDirectiveInvocations(s, spec.Directives)
	}
	o.close()
}

func literalKindTag(k schema.LiteralKind) string {
	switch k {
	case schema.LitInt:
		return "int"
	case schema.LitFloat:
		return "float"
	case schema.LitString:
		return "string"
	case schema.LitBool:
		return "bool"
	case schema.LitEnum:
		return "enum"
	default:
		return ""
	}
}

func encodeLiteral(s *jsonwriter.Stream, lit schema.Literal) {
	o := newObj(s)
	o.field("kind")
	s.WriteString(literalKindTag(lit.Kind))
	o.field("value")
	switch lit.Kind {
	case schema.LitInt:
		s.WriteInt64(lit.Int)
	case schema.LitFloat:
		s.WriteFloat64(lit.Float)
	case schema.LitBool:
		s.WriteBool(lit.Bool)
	default: // string, enum
		s.WriteString(lit.Str)
	}
	o.close()
}

func encodeArrayLiteral(s *jsonwriter.Stream, arr schema.ArrayLiteral) {
	o := newObj(s)
	o.field("elementKind")
	s.WriteString(literalKindTag(arr.ElementKind))
	o.field("values")
	values := newArr(s)
	for _, v := range arr.Values {
		values.next()
		encodeLiteral(s, v)
	}
	values.close()
	o.close()
}

func encodeArgumentValue(s *jsonwriter.Stream, v schema.ArgumentValue) {
	o := newObj(s)
	switch a := v.(type) {
	case *schema.ArgumentLiteralValue:
		o.field("_type")
		s.WriteString("literal")
		o.field("literal")
		encodeLiteral(s, a.Value)
	case *schema.ArgumentRefValue:
		o.field("_type")
		s.WriteString("ref")
		o.field("name")
		s.WriteString(a.ParameterName)
	}
	o.close()
}

func encodeDirectiveInvocationArguments(s *jsonwriter.Stream, args []schema.DirectiveInvocationArgument) {
	a := newArr(s)
	for _, arg := range args {
		a.next()
		o := newObj(s)
		o.field("name")
		s.WriteString(arg.Name)
		o.field("value")
		encodeArgumentValue(s, arg.Value)
		o.close()
	}
	a.close()
}

func encodeServerDirectiveInvocations(s *jsonwriter.Stream, invocations []*schema.ServerDirectiveInvocation) {
	a := newArr(s)
	for _, inv := range invocations {
		a.next()
		o := newObj(s)
		o.field("directive")
		s.WriteString(inv.Directive.Name)
		o.field("arguments")
		encodeDirectiveInvocationArguments(s, inv.Arguments)
		o.close()
	}
	a.close()
}

func encodeClientDirectiveInvocations(s *jsonwriter.Stream, invocations []*schema.ClientDirectiveInvocation) {
	a := newArr(s)
	for _, inv := range invocations {
		a.next()
		o := newObj(s)
		o.field("directive")
		s.WriteString(inv.Directive.Name)
		o.field("arguments")
		encodeDirectiveInvocationArguments(s, inv.Arguments)
		o.close()
	}
	a.close()
}

func encodeClientSchema(s *jsonwriter.Stream, cs *schema.ClientSchema) {
	o := newObj(s)

	o.field("fragments")
	frags := newObj(s)
	for _, name := range cs.Fragments.Keys() {
		f, _ := cs.Fragments.Get(name)
		frags.field(name)
		encodeFragment(s, f)
	}
	frags.close()

	o.field("operations")
	ops := newArr(s)
	for _, op := range cs.Operations {
		ops.next()
		encodeOperation(s, op)
	}
	ops.close()

	o.field("directives")
	dirs := newArr(s)
	for _, name := range cs.Directives.Keys() {
		d, _ := cs.Directives.Get(name)
		dirs.next()
		encodeClientDirective(s, d)
	}
	dirs.close()

	o.close()
}

func encodeFragment(s *jsonwriter.Stream, f *schema.Fragment) {
	o := newObj(s)
	o.field("sourceText")
	s.WriteString(f.SourceText)
	o.field("hash")
	s.WriteString(f.Hash)
	o.field("spec")
	encodeFragmentSpec(s, f.Spec)
	o.close()
}

func operationKindString(k schema.OperationKind) string {
	switch k {
	case schema.Mutation:
		return "mutation"
	case schema.Subscription:
		return "subscription"
	default:
		return "query"
	}
}

func encodeOperation(s *jsonwriter.Stream, op *schema.Operation) {
	o := newObj(s)
	o.field("name")
	s.WriteString(op.Name)
	o.field("type")
	s.WriteString(operationKindString(op.Kind))
	o.field("parameters")
	encodeInputFieldDefMap(s, op.Parameters)
	o.field("fragmentSpec")
	encodeFragmentSpec(s, op.Spec)
	o.field("directives")
	encodeClientDirectiveInvocations(s, op.Directives)
	o.field("sourceText")
	s.WriteString(op.SourceText)
	o.field("parametersHash")
	s.WriteString(op.ParametersHash)
	o.field("fragmentSpecHash")
	s.WriteString(op.FragmentHash)
	o.field("usedFragments")
	used := newArr(s)
	for _, name := range op.UsedFragments {
		used.next()
		s.WriteString(name)
	}
	used.close()
	o.close()
}

func encodeFragmentSpec(s *jsonwriter.Stream, spec schema.FragmentSpec) {
	o := newObj(s)
	switch sp := spec.(type) {
	case *schema.ObjectFragmentSpec:
		if _, ok := sp.Root.(*schema.Interface); ok {
			o.field("_type")
			s.WriteString("interface")
		} else {
			o.field("_type")
			s.WriteString("object")
		}
		o.field("type")
		objectTypeSpecRef(s, sp.Root)
		o.field("selections")
		encodeSelections(s, sp.Selections)
	case *schema.UnionFragmentSpec:
		o.field("_type")
		s.WriteString("union")
		o.field("type")
		objectTypeSpecRef(s, sp.Root)
		o.field("selections")
		encodeSelections(s, sp.Selections)
	}
	o.close()
}

func encodeSelections(s *jsonwriter.Stream, sels []schema.Selection) {
	a := newArr(s)
	for _, sel := range sels {
		a.next()
		encodeSelection(s, sel)
	}
	a.close()
}

func encodeSelection(s *jsonwriter.Stream, sel schema.Selection) {
	o := newObj(s)
	switch sv := sel.(type) {
	case *schema.TypenameField:
		o.field("_type")
		s.WriteString("TypenameField")
		o.field("alias")
		s.WriteString(sv.Alias)
	case *schema.SpreadSelection:
		o.field("_type")
		s.WriteString("SpreadSelection")
		o.field("fragment")
		s.WriteString(sv.Fragment.Name)
	case *schema.FieldSelection:
		o.field("_type")
		s.WriteString("FieldSelection")
		o.field("name")
		s.WriteString(sv.Field.Name)
		o.field("alias")
		s.WriteString(sv.Alias)
		o.field("arguments")
		encodeResolvedArguments(s, sv.Arguments)
		o.field("directives")
		encodeClientDirectiveInvocations(s, sv.Directives)
		o.field("nestedSelection")
		if sv.Nested != nil {
			encodeFragmentSpec(s, sv.Nested)
		} else {
			s.WriteNil()
		}
	case *schema.ObjectConditionalSpreadSelection:
		o.field("_type")
		s.WriteString("ObjectConditionalSpreadSelection")
		o.field("type")
		objectTypeSpecRef(s, sv.Type)
		o.field("selections")
		encodeSelections(s, selectionsOfSpec(sv.Nested))
	case *schema.UnionConditionalSpreadSelection:
		o.field("_type")
		s.WriteString("UnionConditionalSpreadSelection")
		o.field("type")
		objectTypeSpecRef(s, sv.Type)
		o.field("selections")
		encodeSelections(s, selectionsOfSpec(sv.Nested))
	}
	o.close()
}

func selectionsOfSpec(spec schema.FragmentSpec) []schema.Selection {
	switch s := spec.(type) {
	case *schema.ObjectFragmentSpec:
		return s.Selections
	case *schema.UnionFragmentSpec:
		return s.Selections
	default:
		return nil
	}
}

func encodeResolvedArguments(s *jsonwriter.Stream, args []schema.ResolvedArgument) {
	a := newArr(s)
	for _, arg := range args {
		a.next()
		o := newObj(s)
		o.field("name")
		s.WriteString(arg.Name)
		o.field("value")
		encodeArgumentValue(s, arg.Value)
		o.close()
	}
	a.close()
}
