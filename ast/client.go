package ast

import "github.com/shyptr/gqlc/errors"

// OperationKind distinguishes the three root operation kinds the client
// dialect accepts.
type OperationKind string

const (
	Query        OperationKind = "query"
	Mutation     OperationKind = "mutation"
	Subscription OperationKind = "subscription"
)

// ClientDefinition is implemented by every top-level node a client file
// yields: an operation, a fragment, or a directive definition.
type ClientDefinition interface {
	Node
	isClientDefinition()
}

// OperationDefinition is a `query`/`mutation`/`subscription` document,
// with an optional parameter list and a selection-set body.
type OperationDefinition struct {
	Kind       OperationKind
	Name       *Name
	Parameters []*InputValueDefinition
	Selections []Selection
	Directives []*DirectiveInvocation
	SourceText string
	Loc        errors.Location
}

func (o *OperationDefinition) Location() errors.Location { return o.Loc }
func (o *OperationDefinition) isClientDefinition()        {}

// FragmentDefinition is a named, reusable selection set bound to a
// declared type: `fragment F on User { id }`.
type FragmentDefinition struct {
	Name       *Name
	TypeName   *Name
	Selections []Selection
	Directives []*DirectiveInvocation
	SourceText string
	Loc        errors.Location
}

func (f *FragmentDefinition) Location() errors.Location { return f.Loc }
func (f *FragmentDefinition) isClientDefinition()        {}

func (d *DirectiveDefinition) isClientDefinition() {}

var _ ClientDefinition = (*OperationDefinition)(nil)
var _ ClientDefinition = (*FragmentDefinition)(nil)
var _ ClientDefinition = (*DirectiveDefinition)(nil)

// Selection is a sum of the three things that can appear inside a
// selection set: a field, a fragment spread, or a conditional
// (`on TypeName`) spread (spec.md §3.2).
type Selection interface {
	Node
	isSelection()
}

// FieldSelection selects one field, optionally aliased, optionally called
// with arguments, optionally followed by a nested selection set.
type FieldSelection struct {
	Alias      *Name
	Name       *Name
	Arguments  []*Argument
	Directives []*DirectiveInvocation
	Selections []Selection
	Loc        errors.Location
}

func (f *FieldSelection) Location() errors.Location { return f.Loc }
func (f *FieldSelection) isSelection()               {}

// FragmentSpreadSelection is `... Name`: the unconditional inclusion of a
// named fragment's selections.
type FragmentSpreadSelection struct {
	Name       *Name
	Directives []*DirectiveInvocation
	Loc        errors.Location
}

func (s *FragmentSpreadSelection) Location() errors.Location { return s.Loc }
func (s *FragmentSpreadSelection) isSelection()               {}

// ConditionalSpreadSelection is `... on TypeName { … }`: an inline
// fragment restricted, in this dialect, to union contexts.
type ConditionalSpreadSelection struct {
	TypeName   *Name
	Selections []Selection
	Directives []*DirectiveInvocation
	Loc        errors.Location
}

func (s *ConditionalSpreadSelection) Location() errors.Location { return s.Loc }
func (s *ConditionalSpreadSelection) isSelection()               {}

var _ Selection = (*FieldSelection)(nil)
var _ Selection = (*FragmentSpreadSelection)(nil)
var _ Selection = (*ConditionalSpreadSelection)(nil)

// ClientFile is the ordered sequence of definitions a client source file
// yields.
type ClientFile struct {
	Path        string
	Definitions []ClientDefinition
}
