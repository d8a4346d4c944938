// Package errors defines the single error taxonomy shared by the lexer,
// parsers and resolver (spec.md §7). Every error carries the location and
// source file of the token that triggered it; none is raised without that
// context.
package errors

import (
	"fmt"
	"math"
)

// unsetColumn is the sentinel a freshly constructed Location carries before
// its first Advance: "before the first character". The first Advance turns
// it into column zero.
const unsetColumn = math.MaxUint32

// Location is a (line, start column, end column) triple. Columns are
// inclusive character indices counted from zero.
type Location struct {
	Line        int    `json:"line"`
	StartColumn uint32 `json:"startColumn"`
	EndColumn   uint32 `json:"endColumn"`
}

// NewLocation returns a Location positioned before the first character of
// line 0, matching the sentinel described in spec.md §3.1.
func NewLocation() Location {
	return Location{Line: 0, StartColumn: unsetColumn, EndColumn: unsetColumn}
}

// Advance moves the end column forward by one, collapsing the start column
// onto it — the shape a fresh single-character token's location takes.
func (l Location) Advance() Location {
	if l.EndColumn == unsetColumn {
		l.EndColumn = 0
	} else {
		l.EndColumn++
	}
	l.StartColumn = l.EndColumn
	return l
}

// Extend moves the end column forward by one without touching the start —
// the shape a complex token's location takes as the lexer keeps accepting
// characters into its buffer.
func (l Location) Extend() Location {
	l.EndColumn++
	return l
}

// Collapse pulls the start column up to the end column, without advancing
// either — the position the cursor sits at right after a token is
// committed, ready for the next one to start from.
func (l Location) Collapse() Location {
	l.StartColumn = l.EndColumn
	return l
}

// NewLine resets the column state to "before first character" on the next
// line.
func (l Location) NewLine() Location {
	return Location{Line: l.Line + 1, StartColumn: unsetColumn, EndColumn: unsetColumn}
}

// Span returns a location covering from l's start column through the end
// column of end, used when a multi-character token is committed.
func (l Location) Span(end Location) Location {
	return Location{Line: l.Line, StartColumn: l.StartColumn, EndColumn: end.EndColumn}
}

// Before reports whether l begins strictly earlier in the source than o.
func (l Location) Before(o Location) bool {
	return l.Line < o.Line || (l.Line == o.Line && l.StartColumn < o.StartColumn)
}

// Unset reports whether l is still the "before first character" sentinel
// NewLocation/NewLine produce — a location no token was ever committed to,
// which a caller formatting a diagnostic must not treat as a real column.
func (l Location) Unset() bool {
	return l.StartColumn == unsetColumn || l.EndColumn == unsetColumn
}

// Kind names one entry of the taxonomy in spec.md §7. It is carried on
// GraphQLError.Rule for diagnostics and tests; callers that need to branch
// on error class compare against these constants.
type Kind string

const (
	LexerError               Kind = "lexer-error"
	WrongTokenType           Kind = "wrong-token-type"
	WrongTokenLexeme         Kind = "wrong-token-lexeme"
	IdentifierIsKeyword      Kind = "identifier-is-keyword"
	UnexpectedIdentifier     Kind = "unexpected-identifier"
	EOF                      Kind = "eof"
	UnknownType              Kind = "unknown-type"
	NameAlreadyDefined       Kind = "name-already-defined"
	FieldAlreadyExists       Kind = "field-already-exists"
	OperationAlreadyDefined  Kind = "operation-already-defined"
	UnknownField             Kind = "unknown-field"
	UnknownArgument          Kind = "unknown-argument"
	MissingArgument          Kind = "missing-argument"
	ArgumentTypeMismatch     Kind = "argument-type-mismatch"
	InvalidEnumValue         Kind = "invalid-enum-value"
	IncompatibleFragmentType Kind = "incompatible-fragment-type"
	UnknownConditionalType   Kind = "unknown-conditional-type"
	LiteralOnNonScalar       Kind = "literal-on-non-scalar"
)

// GraphQLError is the single error type produced anywhere in the pipeline.
type GraphQLError struct {
	Message   string     `json:"message"`
	Rule      Kind       `json:"rule,omitempty"`
	Locations []Location `json:"locations,omitempty"`
	File      string     `json:"file,omitempty"`
}

func (err *GraphQLError) Error() string {
	if err == nil {
		return "<nil>"
	}
	str := fmt.Sprintf("gqlc: %s", err.Message)
	if err.File != "" {
		str += fmt.Sprintf(" (%s)", err.File)
	}
	for _, loc := range err.Locations {
		str += fmt.Sprintf(" [%d:%d-%d]", loc.Line, loc.StartColumn, loc.EndColumn)
	}
	return str
}

// New constructs an untyped GraphQLError. Prefer the Kind-specific
// constructors in the lexer/parser/schema packages where one exists.
func New(format string, args ...interface{}) *GraphQLError {
	return &GraphQLError{Message: fmt.Sprintf(format, args...)}
}

// WithLocation attaches loc and returns err for chaining.
func (err *GraphQLError) WithLocation(loc Location) *GraphQLError {
	err.Locations = append(err.Locations, loc)
	return err
}

// WithFile attaches the source file path and returns err for chaining.
func (err *GraphQLError) WithFile(file string) *GraphQLError {
	err.File = file
	return err
}

// WithRule tags err with its taxonomy Kind and returns err for chaining.
func (err *GraphQLError) WithRule(kind Kind) *GraphQLError {
	err.Rule = kind
	return err
}

// MultiError aggregates several GraphQLErrors into one error value. The
// compiler and the CLI do not produce one: they stop at the first error.
type MultiError []*GraphQLError

func (m MultiError) Error() string {
	var res string
	for _, err := range m {
		res += err.Error() + "\n"
	}
	return res
}

var _ error = (*GraphQLError)(nil)
var _ error = (MultiError)(nil)
