// Package parser implements the two-layer file parser: a shared BaseParser
// of primitives (spec.md §4.2), and the server/client dialects built on it.
package parser

import (
	"strconv"
	"strings"

	"github.com/shyptr/gqlc/ast"
	"github.com/shyptr/gqlc/errors"
	"github.com/shyptr/gqlc/token"
)

// keywords is the set of identifiers forbidden as type names (spec.md
// §4.2). parseNameNode(true) rejects any of these with identifier-is-keyword.
var keywords = map[string]bool{
	"type":      true,
	"query":     true,
	"input":     true,
	"extend":    true,
	"directive": true,
}

// Base holds the primitives shared by the server and client file parsers:
// cursor management over a token stream, and the grammar fragments common
// to both dialects (names, types, literals, input-value definitions,
// argument lists, directive invocations).
type Base struct {
	file   string
	tokens []token.Token
	pos    int
}

// NewBase returns a Base positioned at the start of tokens, tagging any
// error raised while parsing with file.
func NewBase(file string, tokens []token.Token) *Base {
	return &Base{file: file, tokens: tokens}
}

// current returns the token under the cursor, or a synthetic EOF token once
// the stream is exhausted.
func (p *Base) current() token.Token {
	if p.pos >= len(p.tokens) {
		loc := errors.NewLocation()
		if len(p.tokens) > 0 {
			loc = p.tokens[len(p.tokens)-1].Location
		}
		return token.Token{Kind: token.EOF, Location: loc}
	}
	return p.tokens[p.pos]
}

// lookahead returns the token one past the cursor, or a synthetic EOF
// token if none remains.
func (p *Base) lookahead() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos+1]
}

// position returns the cursor's current index into the token stream, for
// callers that want to capture a span's start before parsing it.
func (p *Base) position() int {
	return p.pos
}

// sourceTextSince reconstructs the source text covering tokens[start:p.pos]
// by rejoining their lexemes with single spaces — the same canonical form
// spec.md §8.1's lexer round-trip property describes. Exact original
// whitespace is not preserved, only token order and content.
func (p *Base) sourceTextSince(start int) string {
	var b strings.Builder
	for i := start; i < p.pos && i < len(p.tokens); i++ {
		if i > start {
			b.WriteByte(' ')
		}
		b.WriteString(p.tokens[i].Lexeme)
	}
	return b.String()
}

// advance returns the current token and moves the cursor past it.
func (p *Base) advance() token.Token {
	cur := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return cur
}

// isAhead reports whether the current token has the given kind.
func (p *Base) isAhead(kind token.Kind) bool {
	return p.current().Kind == kind
}

// isAheadLexeme reports whether the current token is an identifier whose
// lexeme equals text.
func (p *Base) isAheadLexeme(text string) bool {
	cur := p.current()
	return cur.Kind == token.IDENT && cur.Lexeme == text
}

// consume requires the current token to have kind, advancing past it; it
// fails with wrong-token-type otherwise.
func (p *Base) consume(kind token.Kind) (token.Token, *errors.GraphQLError) {
	if !p.isAhead(kind) {
		return token.Token{}, p.wrongType(kind)
	}
	return p.advance(), nil
}

// consumeIf advances past the current token and returns (token, true) if
// it has kind, otherwise leaves the cursor untouched and returns (zero,
// false).
func (p *Base) consumeIf(kind token.Kind) (token.Token, bool) {
	if !p.isAhead(kind) {
		return token.Token{}, false
	}
	return p.advance(), true
}

// consumeIdentifierByLexeme requires the current token to be an identifier
// whose lexeme exactly matches text (e.g. the `on` keyword inside a
// fragment definition), advancing past it; it fails with
// wrong-token-lexeme otherwise.
func (p *Base) consumeIdentifierByLexeme(text string) (token.Token, *errors.GraphQLError) {
	if !p.isAheadLexeme(text) {
		return token.Token{}, p.wrongLexeme(text)
	}
	return p.advance(), nil
}

// parseNameNode consumes an identifier token as a Name node. If
// raiseOnKeyword is set and the identifier is one of the reserved words in
// §4.2's keyword set, it fails with identifier-is-keyword instead.
func (p *Base) parseNameNode(raiseOnKeyword bool) (*ast.Name, *errors.GraphQLError) {
	cur := p.current()
	if cur.Kind != token.IDENT {
		return nil, p.wrongType(token.IDENT)
	}
	if raiseOnKeyword && keywords[cur.Lexeme] {
		return nil, p.identifierIsKeyword(cur.Lexeme)
	}
	p.advance()
	return &ast.Name{Value: cur.Lexeme, Loc: cur.Location}, nil
}

// parseTypeNode parses a named or list type, applying a trailing `!` to
// whichever it produced (spec.md §3.2).
func (p *Base) parseTypeNode() (ast.Type, *errors.GraphQLError) {
	loc := p.current().Location
	if _, ok := p.consumeIf(token.BRACKET_L); ok {
		elem, err := p.parseNameTypeNode()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.BRACKET_R); err != nil {
			return nil, err
		}
		list := &ast.ListType{Element: elem, Nullable: true, Loc: loc}
		if _, ok := p.consumeIf(token.BANG); ok {
			list.Nullable = false
		}
		return list, nil
	}
	return p.parseNameTypeNode()
}

// parseNameTypeNode parses a bare named type with its own trailing `!`.
func (p *Base) parseNameTypeNode() (*ast.NamedType, *errors.GraphQLError) {
	loc := p.current().Location
	name, err := p.parseNameNode(false)
	if err != nil {
		return nil, err
	}
	named := &ast.NamedType{Name: name, Nullable: true, Loc: loc}
	if _, ok := p.consumeIf(token.BANG); ok {
		named.Nullable = false
	}
	return named, nil
}

// parseLiteralNode accepts exactly one complex token as a constant value:
// integer, float (integer parse attempted first), string, boolean, or
// enum-value (a bare identifier). A SPREAD token here is an error (spec.md
// §4.2).
func (p *Base) parseLiteralNode() (*ast.Literal, *errors.GraphQLError) {
	cur := p.current()
	switch cur.Kind {
	case token.NUMBER:
		p.advance()
		if _, err := strconv.ParseInt(cur.Lexeme, 10, 64); err == nil {
			return &ast.Literal{Kind: ast.IntLiteral, Value: cur.Lexeme, Loc: cur.Location}, nil
		}
		return &ast.Literal{Kind: ast.FloatLiteral, Value: cur.Lexeme, Loc: cur.Location}, nil
	case token.STRING:
		p.advance()
		return &ast.Literal{Kind: ast.StringLiteral, Value: cur.Lexeme, Loc: cur.Location}, nil
	case token.BOOLEAN:
		p.advance()
		return &ast.Literal{Kind: ast.BooleanLiteral, Value: cur.Lexeme, Bool: cur.Lexeme == "true", Loc: cur.Location}, nil
	case token.IDENT:
		p.advance()
		return &ast.Literal{Kind: ast.EnumLiteral, Value: cur.Lexeme, Loc: cur.Location}, nil
	default:
		return nil, p.wrongType(token.NUMBER)
	}
}

// parseInputValueDefinition parses `name: Type (= literal)? directives*`.
func (p *Base) parseInputValueDefinition() (*ast.InputValueDefinition, *errors.GraphQLError) {
	loc := p.current().Location
	name, err := p.parseNameNode(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.COLON); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeNode()
	if err != nil {
		return nil, err
	}
	var def *ast.Literal
	if _, ok := p.consumeIf(token.EQUALS); ok {
		def, err = p.parseLiteralNode()
		if err != nil {
			return nil, err
		}
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	return &ast.InputValueDefinition{Name: name, Type: typ, DefaultValue: def, Directives: directives, Loc: loc}, nil
}

// parseInputValueDefinitionList parses a parenthesized list of input value
// definitions: `( InputValueDefinition* )`; an empty `()` is accepted.
func (p *Base) parseInputValueDefinitionList() ([]*ast.InputValueDefinition, *errors.GraphQLError) {
	if _, err := p.consume(token.PAREN_L); err != nil {
		return nil, err
	}
	var defs []*ast.InputValueDefinition
	for !p.isAhead(token.PAREN_R) {
		if p.isAhead(token.EOF) {
			return nil, p.eof()
		}
		if _, ok := p.consumeIf(token.COMMA); ok {
			continue
		}
		def, err := p.parseInputValueDefinition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	if _, err := p.consume(token.PAREN_R); err != nil {
		return nil, err
	}
	return defs, nil
}

// parseArguments parses a parenthesized list of `name: value` pairs (an
// empty `()` is accepted), where value is a literal or a `$name` variable
// reference (parsed as a bare Name).
func (p *Base) parseArguments() ([]*ast.Argument, *errors.GraphQLError) {
	if _, err := p.consume(token.PAREN_L); err != nil {
		return nil, err
	}
	var args []*ast.Argument
	for !p.isAhead(token.PAREN_R) {
		if p.isAhead(token.EOF) {
			return nil, p.eof()
		}
		if _, ok := p.consumeIf(token.COMMA); ok {
			continue
		}
		loc := p.current().Location
		name, err := p.parseNameNode(false)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.COLON); err != nil {
			return nil, err
		}
		value, err := p.parseArgumentValue()
		if err != nil {
			return nil, err
		}
		args = append(args, &ast.Argument{Name: name, Value: value, Loc: loc})
	}
	if _, err := p.consume(token.PAREN_R); err != nil {
		return nil, err
	}
	return args, nil
}

// parseArgumentValue parses the value half of an argument: either a `$name`
// variable reference (returned as a bare *ast.Name) or a literal.
func (p *Base) parseArgumentValue() (ast.Node, *errors.GraphQLError) {
	cur := p.current()
	if cur.Kind == token.IDENT && strings.HasPrefix(cur.Lexeme, "$") {
		p.advance()
		return &ast.Name{Value: cur.Lexeme, Loc: cur.Location}, nil
	}
	return p.parseLiteralNode()
}

// parseDirectives parses zero or more `@name(args…)` invocations.
func (p *Base) parseDirectives() ([]*ast.DirectiveInvocation, *errors.GraphQLError) {
	var directives []*ast.DirectiveInvocation
	for p.isAhead(token.AT) {
		d, err := p.parseDirectiveInvocation()
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
	}
	return directives, nil
}

// parseDirectiveInvocation parses a single `@name(args…)?`.
func (p *Base) parseDirectiveInvocation() (*ast.DirectiveInvocation, *errors.GraphQLError) {
	loc := p.current().Location
	if _, err := p.consume(token.AT); err != nil {
		return nil, err
	}
	name, err := p.parseNameNode(false)
	if err != nil {
		return nil, err
	}
	var args []*ast.Argument
	if p.isAhead(token.PAREN_L) {
		args, err = p.parseArguments()
		if err != nil {
			return nil, err
		}
	}
	return &ast.DirectiveInvocation{Name: name, Arguments: args, Loc: loc}, nil
}

// parseDirectiveLocationList parses a `|`-separated list of bare location
// identifiers following `on` in a directive definition.
func (p *Base) parseDirectiveLocationList() ([]ast.DirectiveLocation, *errors.GraphQLError) {
	var locs []ast.DirectiveLocation
	for {
		name, err := p.parseNameNode(false)
		if err != nil {
			return nil, err
		}
		locs = append(locs, ast.DirectiveLocation(name.Value))
		if _, ok := p.consumeIf(token.PIPE); !ok {
			break
		}
	}
	return locs, nil
}

// parseDirectiveDefinition parses `directive @name(args…) on LOC | LOC`.
func (p *Base) parseDirectiveDefinition() (*ast.DirectiveDefinition, *errors.GraphQLError) {
	loc := p.current().Location
	if _, err := p.consume(token.AT); err != nil {
		return nil, err
	}
	name, err := p.parseNameNode(false)
	if err != nil {
		return nil, err
	}
	var args []*ast.InputValueDefinition
	if p.isAhead(token.PAREN_L) {
		args, err = p.parseInputValueDefinitionList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consumeIdentifierByLexeme("on"); err != nil {
		return nil, err
	}
	locs, err := p.parseDirectiveLocationList()
	if err != nil {
		return nil, err
	}
	return &ast.DirectiveDefinition{Name: name, Arguments: args, Locations: locs, Loc: loc}, nil
}
