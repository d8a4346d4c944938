package parser

import (
	"strings"

	"github.com/shyptr/gqlc/ast"
	"github.com/shyptr/gqlc/errors"
	"github.com/shyptr/gqlc/lexer"
	"github.com/shyptr/gqlc/token"
)

// ParseClientSource lexes and parses a single operation-document source
// file (spec.md §4.2, client parser).
func ParseClientSource(file, src string) (*ast.ClientFile, *errors.GraphQLError) {
	tokens, err := lexer.Tokenize(file, src)
	if err != nil {
		return nil, err
	}
	return ParseClientTokens(file, tokens)
}

// ParseClientTokens parses an already-lexed client token stream.
func ParseClientTokens(file string, tokens []token.Token) (*ast.ClientFile, *errors.GraphQLError) {
	p := NewBase(file, tokens)
	out := &ast.ClientFile{Path: file}
	for !p.isAhead(token.EOF) {
		def, err := p.parseClientDefinition()
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, def)
	}
	return out, nil
}

// parseClientDefinition dispatches by lead identifier: fragment, directive,
// otherwise an operation (mutation/query/subscription).
func (p *Base) parseClientDefinition() (ast.ClientDefinition, *errors.GraphQLError) {
	cur := p.current()
	if cur.Kind != token.IDENT {
		return nil, p.wrongType(token.IDENT)
	}
	switch cur.Lexeme {
	case "fragment":
		return p.parseFragmentDefinition()
	case "directive":
		p.advance()
		return p.parseDirectiveDefinition()
	case "query":
		return p.parseOperationDefinition(ast.Query)
	case "mutation":
		return p.parseOperationDefinition(ast.Mutation)
	case "subscription":
		return p.parseOperationDefinition(ast.Subscription)
	default:
		return nil, p.unexpectedIdentifier(cur.Lexeme)
	}
}

// parseFragmentDefinition parses `fragment Name on TypeName directives* { selections }`.
func (p *Base) parseFragmentDefinition() (*ast.FragmentDefinition, *errors.GraphQLError) {
	start := p.position()
	loc := p.current().Location
	p.advance() // "fragment"
	name, err := p.parseNameNode(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.consumeIdentifierByLexeme("on"); err != nil {
		return nil, err
	}
	typeName, err := p.parseNameNode(false)
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	selections, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return &ast.FragmentDefinition{
		Name: name, TypeName: typeName, Directives: directives, Selections: selections,
		SourceText: p.sourceTextSince(start), Loc: loc,
	}, nil
}

// parseOperationDefinition parses `kind Name? (params)? directives* { selections }`.
func (p *Base) parseOperationDefinition(kind ast.OperationKind) (*ast.OperationDefinition, *errors.GraphQLError) {
	start := p.position()
	loc := p.current().Location
	p.advance() // leading keyword
	op := &ast.OperationDefinition{Kind: kind, Loc: loc}
	if p.isAhead(token.IDENT) {
		name, err := p.parseNameNode(false)
		if err != nil {
			return nil, err
		}
		op.Name = name
	}
	if p.isAhead(token.PAREN_L) {
		params, err := p.parseInputValueDefinitionList()
		if err != nil {
			return nil, err
		}
		// A parameter is declared as `$name`; it is stored under the bare
		// name, which is what argument references are resolved against.
		for _, param := range params {
			param.Name.Value = strings.TrimPrefix(param.Name.Value, "$")
		}
		op.Parameters = params
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	op.Directives = directives
	selections, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	op.Selections = selections
	op.SourceText = p.sourceTextSince(start)
	return op, nil
}

// parseSelectionSet parses `{ Selection* }`; an empty `{}` is accepted.
func (p *Base) parseSelectionSet() ([]ast.Selection, *errors.GraphQLError) {
	if _, err := p.consume(token.BRACE_L); err != nil {
		return nil, err
	}
	var selections []ast.Selection
	for !p.isAhead(token.BRACE_R) {
		if p.isAhead(token.EOF) {
			return nil, p.eof()
		}
		if _, ok := p.consumeIf(token.COMMA); ok {
			continue
		}
		sel, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}
	if _, err := p.consume(token.BRACE_R); err != nil {
		return nil, err
	}
	return selections, nil
}

// parseSelection dispatches on whether the selection opens with a spread:
// `... Name` (fragment spread), `... on TypeName { … }` (conditional
// spread), or otherwise a field selection.
func (p *Base) parseSelection() (ast.Selection, *errors.GraphQLError) {
	if p.isAhead(token.SPREAD) {
		return p.parseSpreadSelection()
	}
	return p.parseFieldSelection()
}

func (p *Base) parseSpreadSelection() (ast.Selection, *errors.GraphQLError) {
	loc := p.current().Location
	spread, err := p.consume(token.SPREAD)
	if err != nil {
		return nil, err
	}
	if spread.Lexeme != "..." {
		return nil, p.wrongLexeme("...")
	}
	if p.isAheadLexeme("on") {
		p.advance()
		typeName, err := p.parseNameNode(false)
		if err != nil {
			return nil, err
		}
		directives, err := p.parseDirectives()
		if err != nil {
			return nil, err
		}
		selections, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalSpreadSelection{
			TypeName: typeName, Directives: directives, Selections: selections, Loc: loc,
		}, nil
	}
	name, err := p.parseNameNode(false)
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	return &ast.FragmentSpreadSelection{Name: name, Directives: directives, Loc: loc}, nil
}

// parseFieldSelection parses `alias: name (args)? directives* { selections }?`.
// The alias precedes the colon; a field with no colon has no alias.
func (p *Base) parseFieldSelection() (*ast.FieldSelection, *errors.GraphQLError) {
	loc := p.current().Location
	first, err := p.parseNameNode(false)
	if err != nil {
		return nil, err
	}
	field := &ast.FieldSelection{Name: first, Loc: loc}
	if _, ok := p.consumeIf(token.COLON); ok {
		field.Alias = first
		name, err := p.parseNameNode(false)
		if err != nil {
			return nil, err
		}
		field.Name = name
	}
	if p.isAhead(token.PAREN_L) {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		field.Arguments = args
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	field.Directives = directives
	if p.isAhead(token.BRACE_L) {
		selections, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		field.Selections = selections
	}
	return field, nil
}
