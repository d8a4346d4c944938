// Package ast holds the raw, untyped parse tree produced by the file
// parsers (spec.md §3.2): one node type per grammar production, shared
// between the server (SDL) and client (operation) dialects where the
// grammar itself is shared.
package ast

import "github.com/shyptr/gqlc/errors"

// Node is implemented by every AST node; it exposes the source location the
// node was parsed from.
type Node interface {
	Location() errors.Location
}

// Name is a bare identifier occurrence: a type name, field name, argument
// name, alias, enum value, or directive name.
type Name struct {
	Value string
	Loc   errors.Location
}

func (n *Name) Location() errors.Location { return n.Loc }

// LiteralKind tags the variant of a Literal.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	BooleanLiteral
	EnumLiteral
)

// Literal is a tagged union over the five kinds of constant value the
// grammar accepts: int, float, string, boolean, or a bare identifier
// standing for an enum value. Value holds the token's lexeme for every kind;
// a BooleanLiteral also carries the parsed bool in Bool.
type Literal struct {
	Kind  LiteralKind
	Value string
	Bool  bool
	Loc   errors.Location
}

func (l *Literal) Location() errors.Location { return l.Loc }

// Type is a sum of named type and list type (spec.md §3.2). Both flavors
// default Nullable to true; a trailing `!` in the source flips it false.
type Type interface {
	Node
	isType()
	String() string
}

// NamedType references a type by name, e.g. `String`, `User`, `Int!`.
type NamedType struct {
	Name     *Name
	Nullable bool
	Loc      errors.Location
}

func (t *NamedType) Location() errors.Location { return t.Loc }
func (t *NamedType) isType()                   {}
func (t *NamedType) String() string {
	if t.Nullable {
		return t.Name.Value
	}
	return t.Name.Value + "!"
}

// ListType wraps an element type, e.g. `[User]`, `[Int!]!`.
type ListType struct {
	Element  *NamedType
	Nullable bool
	Loc      errors.Location
}

func (t *ListType) Location() errors.Location { return t.Loc }
func (t *ListType) isType()                   {}
func (t *ListType) String() string {
	s := "[" + t.Element.String() + "]"
	if !t.Nullable {
		s += "!"
	}
	return s
}

var _ Type = (*NamedType)(nil)
var _ Type = (*ListType)(nil)

// Argument is a single `name: value` pair inside a call or directive
// invocation. Value is either a Literal or a Name standing for a variable
// reference (`$foo`).
type Argument struct {
	Name  *Name
	Value Node
	Loc   errors.Location
}

func (a *Argument) Location() errors.Location { return a.Loc }

// InputValueDefinition is a field or argument declaration: a name, a type,
// an optional default-value literal, and any directive invocations carried
// on the declaration itself.
type InputValueDefinition struct {
	Name         *Name
	Type         Type
	DefaultValue *Literal
	Directives   []*DirectiveInvocation
	Loc          errors.Location
}

func (d *InputValueDefinition) Location() errors.Location { return d.Loc }

// DirectiveInvocation is a `@name(args…)` application on a definition,
// field, operation or fragment.
type DirectiveInvocation struct {
	Name      *Name
	Arguments []*Argument
	Loc       errors.Location
}

func (d *DirectiveInvocation) Location() errors.Location { return d.Loc }

// DirectiveLocation names one syntactic position a directive may be
// declared to apply to. The SDL-side and operation-side sets overlap but
// are not identical (spec.md §9); validity is checked as simple set
// membership against whichever table applies to where the directive was
// declared.
type DirectiveLocation string

const (
	LocSchema              DirectiveLocation = "SCHEMA"
	LocScalar              DirectiveLocation = "SCALAR"
	LocObject              DirectiveLocation = "OBJECT"
	LocFieldDefinition     DirectiveLocation = "FIELD_DEFINITION"
	LocArgumentDefinition  DirectiveLocation = "ARGUMENT_DEFINITION"
	LocInterface           DirectiveLocation = "INTERFACE"
	LocUnion               DirectiveLocation = "UNION"
	LocEnum                DirectiveLocation = "ENUM"
	LocEnumValue           DirectiveLocation = "ENUM_VALUE"
	LocInputObject         DirectiveLocation = "INPUT_OBJECT"
	LocInputFieldDef       DirectiveLocation = "INPUT_FIELD_DEFINITION"
	LocQuery               DirectiveLocation = "QUERY"
	LocMutation            DirectiveLocation = "MUTATION"
	LocSubscription        DirectiveLocation = "SUBSCRIPTION"
	LocField               DirectiveLocation = "FIELD"
	LocFragmentDefinition  DirectiveLocation = "FRAGMENT_DEFINITION"
	LocFragmentSpread      DirectiveLocation = "FRAGMENT_SPREAD"
	LocInlineFragment      DirectiveLocation = "INLINE_FRAGMENT"
	LocVariableDefinition  DirectiveLocation = "VARIABLE_DEFINITION"
)

// ServerDirectiveLocations is the valid location set for a directive
// declared against the SDL dialect.
var ServerDirectiveLocations = map[DirectiveLocation]bool{
	LocSchema: true, LocScalar: true, LocObject: true, LocFieldDefinition: true,
	LocArgumentDefinition: true, LocInterface: true, LocUnion: true, LocEnum: true,
	LocEnumValue: true, LocInputObject: true, LocInputFieldDef: true,
}

// ClientDirectiveLocations is the valid location set for a directive
// declared against the operation dialect.
var ClientDirectiveLocations = map[DirectiveLocation]bool{
	LocQuery: true, LocMutation: true, LocSubscription: true, LocField: true,
	LocFragmentDefinition: true, LocFragmentSpread: true, LocInlineFragment: true,
	LocVariableDefinition: true,
}

// DirectiveDefinition declares a directive and the locations it may be
// invoked from. The same node shape serves both dialects; which location
// set is checked against depends on which file the definition was parsed
// from.
type DirectiveDefinition struct {
	Name      *Name
	Arguments []*InputValueDefinition
	Locations []DirectiveLocation
	Loc       errors.Location
}

func (d *DirectiveDefinition) Location() errors.Location { return d.Loc }
