package schema

// Visitor is a generic, single-threaded depth-first walker over a
// ClientSchema, exposing one optional callback per semantic-AST variant
// (spec.md §4.7). A nil callback is simply skipped; every callback fires
// in source discovery order. The schema it walks is treated as immutable,
// so a single Visitor value is reentrant-safe across repeated calls.
type Visitor struct {
	Fragment         func(*Fragment)
	Operation        func(*Operation)
	FragmentSpec     func(FragmentSpec)
	Selection        func(Selection)
	FieldSelection   func(*FieldSelection)
	TypenameField    func(*TypenameField)
	Spread           func(*SpreadSelection)
	ObjectConditional func(*ObjectConditionalSpreadSelection)
	UnionConditional func(*UnionConditionalSpreadSelection)
	ObjectTypeSpec   func(ObjectTypeSpec)
	InputTypeSpec    func(InputTypeSpec)
}

// WalkClientSchema visits every fragment and operation registered in r, in
// the order they were resolved.
func (v *Visitor) WalkClientSchema(r *Registry) {
	for _, name := range r.Fragments.Keys() {
		f, _ := r.Fragments.Get(name)
		v.visitFragment(f)
	}
	for _, op := range r.Operations {
		v.visitOperation(op)
	}
}

func (v *Visitor) visitFragment(f *Fragment) {
	if v.Fragment != nil {
		v.Fragment(f)
	}
	v.visitObjectTypeSpec(f.RootType)
	v.visitFragmentSpec(f.Spec)
}

func (v *Visitor) visitOperation(op *Operation) {
	if v.Operation != nil {
		v.Operation(op)
	}
	for _, name := range op.Parameters.Keys() {
		def, _ := op.Parameters.Get(name)
		v.visitInputFieldSpec(def.Spec)
	}
	v.visitFragmentSpec(op.Spec)
}

func (v *Visitor) visitFragmentSpec(spec FragmentSpec) {
	if spec == nil {
		return
	}
	if v.FragmentSpec != nil {
		v.FragmentSpec(spec)
	}
	switch s := spec.(type) {
	case *ObjectFragmentSpec:
		v.visitObjectTypeSpec(s.Root)
		for _, sel := range s.Selections {
			v.visitSelection(sel)
		}
	case *UnionFragmentSpec:
		v.visitObjectTypeSpec(s.Root)
		for _, sel := range s.Selections {
			v.visitSelection(sel)
		}
	}
}

func (v *Visitor) visitSelection(sel Selection) {
	if v.Selection != nil {
		v.Selection(sel)
	}
	switch s := sel.(type) {
	case *FieldSelection:
		if v.FieldSelection != nil {
			v.FieldSelection(s)
		}
		v.visitObjectFieldSpec(s.Field.Spec)
		if s.Nested != nil {
			v.visitFragmentSpec(s.Nested)
		}
	case *TypenameField:
		if v.TypenameField != nil {
			v.TypenameField(s)
		}
	case *SpreadSelection:
		if v.Spread != nil {
			v.Spread(s)
		}
	case *ObjectConditionalSpreadSelection:
		if v.ObjectConditional != nil {
			v.ObjectConditional(s)
		}
		v.visitObjectTypeSpec(s.Type)
		v.visitFragmentSpec(s.Nested)
	case *UnionConditionalSpreadSelection:
		if v.UnionConditional != nil {
			v.UnionConditional(s)
		}
		v.visitObjectTypeSpec(s.Type)
		v.visitFragmentSpec(s.Nested)
	}
}

func (v *Visitor) visitObjectFieldSpec(spec ObjectFieldSpec) {
	switch s := spec.(type) {
	case *LiteralObjectFieldSpec:
		v.visitObjectTypeSpec(s.Type)
	case *ArrayObjectFieldSpec:
		v.visitObjectTypeSpec(s.Type)
	case *CallableFieldSpec:
		v.visitObjectFieldSpec(s.ReturnType)
		for _, name := range s.Arguments.Keys() {
			def, _ := s.Arguments.Get(name)
			v.visitInputFieldSpec(def.Spec)
		}
	}
}

func (v *Visitor) visitInputFieldSpec(spec InputFieldSpec) {
	switch s := spec.(type) {
	case *LiteralInputFieldSpec:
		v.visitInputTypeSpec(s.Type)
	case *ArrayInputFieldSpec:
		v.visitInputTypeSpec(s.Type)
	}
}

func (v *Visitor) visitObjectTypeSpec(spec ObjectTypeSpec) {
	if spec == nil {
		return
	}
	if v.ObjectTypeSpec != nil {
		v.ObjectTypeSpec(spec)
	}
	if obj, ok := spec.(*ObjectType); ok {
		for _, name := range obj.Implements.Keys() {
			iface, _ := obj.Implements.Get(name)
			v.visitObjectTypeSpec(iface)
		}
	}
	if union, ok := spec.(*Union); ok {
		for _, name := range union.Items.Keys() {
			item, _ := union.Items.Get(name)
			v.visitObjectTypeSpec(item)
		}
	}
}

func (v *Visitor) visitInputTypeSpec(spec InputTypeSpec) {
	if spec == nil {
		return
	}
	if v.InputTypeSpec != nil {
		v.InputTypeSpec(spec)
	}
}
