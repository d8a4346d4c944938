package parser

import (
	"github.com/shyptr/gqlc/errors"
	"github.com/shyptr/gqlc/token"
)

// wrongType reports that the current token's kind didn't match what the
// grammar production required.
func (p *Base) wrongType(expected token.Kind) *errors.GraphQLError {
	cur := p.current()
	return errors.New("Expected %s, found %q.", expected, cur.Lexeme).
		WithLocation(cur.Location).
		WithFile(p.file).
		WithRule(errors.WrongTokenType)
}

// wrongLexeme reports that the current token's lexeme didn't match the
// specific text the grammar required at this position (e.g. the `on`
// keyword inside a fragment definition).
func (p *Base) wrongLexeme(expected string) *errors.GraphQLError {
	cur := p.current()
	return errors.New("Expected %q, found %q.", expected, cur.Lexeme).
		WithLocation(cur.Location).
		WithFile(p.file).
		WithRule(errors.WrongTokenLexeme)
}

// identifierIsKeyword reports that a name was required where the grammar
// forbids one of the reserved identifiers.
func (p *Base) identifierIsKeyword(name string) *errors.GraphQLError {
	cur := p.current()
	return errors.New("%q is a reserved identifier and cannot be used as a name here.", name).
		WithLocation(cur.Location).
		WithFile(p.file).
		WithRule(errors.IdentifierIsKeyword)
}

// unexpectedIdentifier reports that an identifier was found where the
// grammar's top-level dispatch recognized none of its expected lead words.
func (p *Base) unexpectedIdentifier(name string) *errors.GraphQLError {
	cur := p.current()
	return errors.New("Unexpected %q.", name).
		WithLocation(cur.Location).
		WithFile(p.file).
		WithRule(errors.UnexpectedIdentifier)
}

// eof reports that the token stream ended where the grammar required more
// input.
func (p *Base) eof() *errors.GraphQLError {
	return errors.New("Unexpected end of file.").
		WithLocation(p.current().Location).
		WithFile(p.file).
		WithRule(errors.EOF)
}
