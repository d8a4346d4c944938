// Package schema implements the type registry, two-pass resolver,
// selection validator, deterministic hasher and visitor that turn raw AST
// into a cross-referenced semantic schema (spec.md §3.3, §4.3-§4.7).
package schema

import "github.com/shyptr/gqlc/ast"

// DirectiveLocation names a place in the SDL or operation grammar where a
// directive may be invoked (spec.md §3.2, §9). Both dialects share one
// lexical representation (the unqualified enum name emitted in §6.2's
// JSON), so the schema package reuses ast's type rather than declaring a
// parallel one.
type DirectiveLocation = ast.DirectiveLocation

// Scalar is a built-in or user-declared scalar type. The built-in set is
// {String, Int, Float, Boolean}; they carry no fields and participate as
// singletons (spec.md §9).
type Scalar struct {
	Name string
}

func (s *Scalar) TypeName() string    { return s.Name }
func (s *Scalar) isObjectTypeSpec()   {}
func (s *Scalar) isInputTypeSpec()    {}

// EnumDef is a declared enum and its terminal value set.
type EnumDef struct {
	Name   string
	Values []string
}

func (e *EnumDef) TypeName() string  { return e.Name }
func (e *EnumDef) isObjectTypeSpec() {}
func (e *EnumDef) isInputTypeSpec()  {}

// InputType is a declared input object: an ordered map of its own field
// definitions.
type InputType struct {
	Name   string
	Fields *OrderedMap[*FieldDef[InputFieldSpec]]
}

func (i *InputType) TypeName() string { return i.Name }
func (i *InputType) isInputTypeSpec() {}

// Interface is a declared interface: an ordered map of field definitions
// that implementing objects must provide.
type Interface struct {
	Name   string
	Fields *OrderedMap[*FieldDef[ObjectFieldSpec]]
}

func (i *Interface) TypeName() string  { return i.Name }
func (i *Interface) isObjectTypeSpec() {}

// ObjectType is a declared object type: its own fields plus the interfaces
// it implements, each entry keyed by the interface's own name.
type ObjectType struct {
	Name       string
	Fields     *OrderedMap[*FieldDef[ObjectFieldSpec]]
	Implements *OrderedMap[*Interface]
}

func (o *ObjectType) TypeName() string  { return o.Name }
func (o *ObjectType) isObjectTypeSpec() {}

// Union is a declared union: an ordered map of its member object types.
// Unions of unions are not represented directly; they surface only as a
// UnionConditionalSpreadSelection inside a parent union (spec.md §3.4).
type Union struct {
	Name  string
	Items *OrderedMap[*ObjectType]
}

func (u *Union) TypeName() string  { return u.Name }
func (u *Union) isObjectTypeSpec() {}

// ObjectTypeSpec is the sum `object | interface | scalar | enum | union`
// (spec.md §3.3).
type ObjectTypeSpec interface {
	TypeName() string
	isObjectTypeSpec()
}

// InputTypeSpec is the sum `input | scalar | enum` (spec.md §3.3).
type InputTypeSpec interface {
	TypeName() string
	isInputTypeSpec()
}

var (
	_ ObjectTypeSpec = (*ObjectType)(nil)
	_ ObjectTypeSpec = (*Interface)(nil)
	_ ObjectTypeSpec = (*Scalar)(nil)
	_ ObjectTypeSpec = (*EnumDef)(nil)
	_ ObjectTypeSpec = (*Union)(nil)
	_ InputTypeSpec  = (*InputType)(nil)
	_ InputTypeSpec  = (*Scalar)(nil)
	_ InputTypeSpec  = (*EnumDef)(nil)
)

// LiteralKind tags the variant of a resolved constant value.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitBool
	LitEnum
)

// Literal is a resolved default-value (or argument) constant, checked
// against its declared type at resolution time (spec.md §4.4).
type Literal struct {
	Kind  LiteralKind
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// ArrayLiteral is a resolved array default value: a parallel array literal
// whose elements were each checked against the declared element type.
type ArrayLiteral struct {
	ElementKind LiteralKind
	Values      []Literal
}

// DirectiveInvocationArgument is a single resolved argument to a directive
// invocation: either a literal or an operation-parameter reference.
type DirectiveInvocationArgument struct {
	Name  string
	Value ArgumentValue
}

// ServerDirectiveInvocation is a resolved `@name(args…)` application
// carried on an SDL-side field definition.
type ServerDirectiveInvocation struct {
	Directive *ServerDirective
	Arguments []DirectiveInvocationArgument
}

// ClientDirectiveInvocation is a resolved `@name(args…)` application
// carried on an operation, a field selection or an input value definition.
// Directives written on fragment definitions and spreads are parsed but not
// kept in the resolved schema.
type ClientDirectiveInvocation struct {
	Directive *ClientDirective
	Arguments []DirectiveInvocationArgument
}

// ObjectFieldSpec is the sum `literal | array | callable` for fields on
// objects and interfaces (spec.md §3.3).
type ObjectFieldSpec interface {
	isObjectFieldSpec()
}

// NonCallableObjectFieldSpec is the `literal | array` subset, used both
// standalone and as a CallableFieldSpec's return type (so a callable field
// cannot itself return a callable).
type NonCallableObjectFieldSpec interface {
	ObjectFieldSpec
	isNonCallableObjectFieldSpec()
}

// LiteralObjectFieldSpec is a plain, non-list typed field.
type LiteralObjectFieldSpec struct {
	Type       ObjectTypeSpec
	Directives []*ServerDirectiveInvocation
}

func (*LiteralObjectFieldSpec) isObjectFieldSpec()           {}
func (*LiteralObjectFieldSpec) isNonCallableObjectFieldSpec() {}

// ArrayObjectFieldSpec is a list-typed field. InnerNullable mirrors the
// element named-type's own `!` flag; the field definition's own Nullable
// flag (on the enclosing FieldDef) tracks whether the list itself may be
// null.
type ArrayObjectFieldSpec struct {
	Type          ObjectTypeSpec
	InnerNullable bool
	Directives    []*ServerDirectiveInvocation
}

func (*ArrayObjectFieldSpec) isObjectFieldSpec()           {}
func (*ArrayObjectFieldSpec) isNonCallableObjectFieldSpec() {}

// CallableFieldSpec is a field declared with an argument list. ReturnType
// is restricted to the non-callable subset so arguments cannot nest.
type CallableFieldSpec struct {
	ReturnType NonCallableObjectFieldSpec
	Arguments  *OrderedMap[*FieldDef[InputFieldSpec]]
	Directives []*ServerDirectiveInvocation
}

func (*CallableFieldSpec) isObjectFieldSpec() {}

var (
	_ NonCallableObjectFieldSpec = (*LiteralObjectFieldSpec)(nil)
	_ NonCallableObjectFieldSpec = (*ArrayObjectFieldSpec)(nil)
	_ ObjectFieldSpec            = (*CallableFieldSpec)(nil)
)

// InputFieldSpec is the sum `literal | array` for fields on input objects
// and for callable-field / operation arguments (spec.md §3.3).
type InputFieldSpec interface {
	isInputFieldSpec()
}

// LiteralInputFieldSpec is a plain, non-list typed input field.
type LiteralInputFieldSpec struct {
	Type         InputTypeSpec
	DefaultValue *Literal
	Directives   []*ClientDirectiveInvocation
}

func (*LiteralInputFieldSpec) isInputFieldSpec() {}

// ArrayInputFieldSpec is a list-typed input field.
type ArrayInputFieldSpec struct {
	Type          InputTypeSpec
	InnerNullable bool
	DefaultValue  *ArrayLiteral
	Directives    []*ClientDirectiveInvocation
}

func (*ArrayInputFieldSpec) isInputFieldSpec() {}

var (
	_ InputFieldSpec = (*LiteralInputFieldSpec)(nil)
	_ InputFieldSpec = (*ArrayInputFieldSpec)(nil)
)

// FieldDef wraps a field or argument's name, its sum-typed spec, and the
// field's own (outer) nullability — whether the declaration itself, as
// opposed to a list's elements, carries a trailing `!`.
type FieldDef[S any] struct {
	Name     string
	Spec     S
	Nullable bool
}

// ServerDirective is a directive declared in the SDL dialect.
type ServerDirective struct {
	Name      string
	Arguments *OrderedMap[*FieldDef[InputFieldSpec]]
	Locations []DirectiveLocation
}

// ClientDirective is a directive declared in the operation dialect.
type ClientDirective struct {
	Name      string
	Arguments *OrderedMap[*FieldDef[InputFieldSpec]]
	Locations []DirectiveLocation
}
