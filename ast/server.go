package ast

import "github.com/shyptr/gqlc/errors"

// Definition is implemented by every top-level node a server file yields:
// scalar, enum, union, object, input-object, interface, directive, and
// extend-type (spec.md §3.2).
type Definition interface {
	Node
	isServerDefinition()
}

// ScalarDefinition declares a custom scalar: `scalar DateTime`.
type ScalarDefinition struct {
	Name *Name
	Loc  errors.Location
}

func (d *ScalarDefinition) Location() errors.Location { return d.Loc }
func (d *ScalarDefinition) isServerDefinition()        {}

// EnumDefinition declares an enum and its value set:
// `enum Color { RED GREEN BLUE }`.
type EnumDefinition struct {
	Name   *Name
	Values []*Name
	Loc    errors.Location
}

func (d *EnumDefinition) Location() errors.Location { return d.Loc }
func (d *EnumDefinition) isServerDefinition()        {}

// UnionDefinition declares a union as a `|`-separated list of member object
// type names: `union SearchResult = Photo | Article`.
type UnionDefinition struct {
	Name    *Name
	Members []*Name
	Loc     errors.Location
}

func (d *UnionDefinition) Location() errors.Location { return d.Loc }
func (d *UnionDefinition) isServerDefinition()        {}

// FieldDefinition is one field inside an object, interface, or extend-type
// body: a name, an optional argument list, a type, and any directive
// invocations.
type FieldDefinition struct {
	Name       *Name
	Arguments  []*InputValueDefinition
	Type       Type
	Directives []*DirectiveInvocation
	Loc        errors.Location
}

func (f *FieldDefinition) Location() errors.Location { return f.Loc }

// ObjectDefinition declares an object type, optionally implementing one or
// more interfaces: `type User implements Node { id: ID! }`.
type ObjectDefinition struct {
	Name       *Name
	Implements []*Name
	Fields     []*FieldDefinition
	Loc        errors.Location
}

func (d *ObjectDefinition) Location() errors.Location { return d.Loc }
func (d *ObjectDefinition) isServerDefinition()        {}

// InterfaceDefinition declares an interface: `interface Node { id: ID! }`.
type InterfaceDefinition struct {
	Name   *Name
	Fields []*FieldDefinition
	Loc    errors.Location
}

func (d *InterfaceDefinition) Location() errors.Location { return d.Loc }
func (d *InterfaceDefinition) isServerDefinition()        {}

// InputObjectDefinition declares an input type: `input CreateUser { name: String! }`.
type InputObjectDefinition struct {
	Name   *Name
	Fields []*InputValueDefinition
	Loc    errors.Location
}

func (d *InputObjectDefinition) Location() errors.Location { return d.Loc }
func (d *InputObjectDefinition) isServerDefinition()        {}

// ExtendTypeDefinition wraps an object body to be merged into a
// previously-declared object: `extend type Query { me: User }`.
type ExtendTypeDefinition struct {
	Object *ObjectDefinition
	Loc    errors.Location
}

func (d *ExtendTypeDefinition) Location() errors.Location { return d.Loc }
func (d *ExtendTypeDefinition) isServerDefinition()        {}

func (d *DirectiveDefinition) isServerDefinition() {}

var _ Definition = (*ScalarDefinition)(nil)
var _ Definition = (*EnumDefinition)(nil)
var _ Definition = (*UnionDefinition)(nil)
var _ Definition = (*ObjectDefinition)(nil)
var _ Definition = (*InterfaceDefinition)(nil)
var _ Definition = (*InputObjectDefinition)(nil)
var _ Definition = (*ExtendTypeDefinition)(nil)
var _ Definition = (*DirectiveDefinition)(nil)

// ServerFile is the ordered sequence of definitions a server source file
// yields.
type ServerFile struct {
	Path        string
	Definitions []Definition
}
