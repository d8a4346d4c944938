package parser

import (
	"github.com/shyptr/gqlc/ast"
	"github.com/shyptr/gqlc/errors"
	"github.com/shyptr/gqlc/lexer"
	"github.com/shyptr/gqlc/token"
)

// ParseServerSource lexes and parses a single SDL source file into its
// sequence of definitions (spec.md §4.2, server parser).
func ParseServerSource(file, src string) (*ast.ServerFile, *errors.GraphQLError) {
	tokens, err := lexer.Tokenize(file, src)
	if err != nil {
		return nil, err
	}
	return ParseServerTokens(file, tokens)
}

// ParseServerTokens parses an already-lexed SDL token stream.
func ParseServerTokens(file string, tokens []token.Token) (*ast.ServerFile, *errors.GraphQLError) {
	p := NewBase(file, tokens)
	out := &ast.ServerFile{Path: file}
	for !p.isAhead(token.EOF) {
		def, err := p.parseServerDefinition()
		if err != nil {
			return nil, err
		}
		out.Definitions = append(out.Definitions, def)
	}
	return out, nil
}

// parseServerDefinition dispatches by lead identifier: scalar, union, enum,
// interface, type, directive, input, extend.
func (p *Base) parseServerDefinition() (ast.Definition, *errors.GraphQLError) {
	cur := p.current()
	if cur.Kind != token.IDENT {
		return nil, p.wrongType(token.IDENT)
	}
	switch cur.Lexeme {
	case "scalar":
		return p.parseScalarDefinition()
	case "union":
		return p.parseUnionDefinition()
	case "enum":
		return p.parseEnumDefinition()
	case "interface":
		return p.parseInterfaceDefinition()
	case "type":
		return p.parseObjectDefinition()
	case "directive":
		p.advance()
		return p.parseDirectiveDefinition()
	case "input":
		return p.parseInputObjectDefinition()
	case "extend":
		return p.parseExtendDefinition()
	default:
		return nil, p.unexpectedIdentifier(cur.Lexeme)
	}
}

func (p *Base) parseScalarDefinition() (*ast.ScalarDefinition, *errors.GraphQLError) {
	loc := p.current().Location
	p.advance() // "scalar"
	name, err := p.parseNameNode(true)
	if err != nil {
		return nil, err
	}
	return &ast.ScalarDefinition{Name: name, Loc: loc}, nil
}

func (p *Base) parseUnionDefinition() (*ast.UnionDefinition, *errors.GraphQLError) {
	loc := p.current().Location
	p.advance() // "union"
	name, err := p.parseNameNode(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.EQUALS); err != nil {
		return nil, err
	}
	var members []*ast.Name
	for {
		member, err := p.parseNameNode(false)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
		if _, ok := p.consumeIf(token.PIPE); !ok {
			break
		}
	}
	return &ast.UnionDefinition{Name: name, Members: members, Loc: loc}, nil
}

func (p *Base) parseEnumDefinition() (*ast.EnumDefinition, *errors.GraphQLError) {
	loc := p.current().Location
	p.advance() // "enum"
	name, err := p.parseNameNode(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.BRACE_L); err != nil {
		return nil, err
	}
	var values []*ast.Name
	for !p.isAhead(token.BRACE_R) {
		if p.isAhead(token.EOF) {
			return nil, p.eof()
		}
		if _, ok := p.consumeIf(token.COMMA); ok {
			continue
		}
		value, err := p.parseNameNode(false)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	if _, err := p.consume(token.BRACE_R); err != nil {
		return nil, err
	}
	return &ast.EnumDefinition{Name: name, Values: values, Loc: loc}, nil
}

func (p *Base) parseInterfaceDefinition() (*ast.InterfaceDefinition, *errors.GraphQLError) {
	loc := p.current().Location
	p.advance() // "interface"
	name, err := p.parseNameNode(true)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseFieldDefinitionBlock()
	if err != nil {
		return nil, err
	}
	return &ast.InterfaceDefinition{Name: name, Fields: fields, Loc: loc}, nil
}

func (p *Base) parseObjectDefinition() (*ast.ObjectDefinition, *errors.GraphQLError) {
	loc := p.current().Location
	p.advance() // "type"
	name, err := p.parseNameNode(true)
	if err != nil {
		return nil, err
	}
	var implements []*ast.Name
	if p.isAheadLexeme("implements") {
		p.advance()
		for {
			iface, err := p.parseNameNode(false)
			if err != nil {
				return nil, err
			}
			implements = append(implements, iface)
			if _, ok := p.consumeIf(token.COMMA); !ok {
				break
			}
		}
	}
	fields, err := p.parseFieldDefinitionBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ObjectDefinition{Name: name, Implements: implements, Fields: fields, Loc: loc}, nil
}

func (p *Base) parseInputObjectDefinition() (*ast.InputObjectDefinition, *errors.GraphQLError) {
	loc := p.current().Location
	p.advance() // "input"
	name, err := p.parseNameNode(true)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.BRACE_L); err != nil {
		return nil, err
	}
	var fields []*ast.InputValueDefinition
	for !p.isAhead(token.BRACE_R) {
		if p.isAhead(token.EOF) {
			return nil, p.eof()
		}
		if _, ok := p.consumeIf(token.COMMA); ok {
			continue
		}
		field, err := p.parseInputValueDefinition()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if _, err := p.consume(token.BRACE_R); err != nil {
		return nil, err
	}
	return &ast.InputObjectDefinition{Name: name, Fields: fields, Loc: loc}, nil
}

func (p *Base) parseExtendDefinition() (*ast.ExtendTypeDefinition, *errors.GraphQLError) {
	loc := p.current().Location
	p.advance() // "extend"
	if _, err := p.consumeIdentifierByLexeme("type"); err != nil {
		return nil, err
	}
	name, err := p.parseNameNode(true)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseFieldDefinitionBlock()
	if err != nil {
		return nil, err
	}
	object := &ast.ObjectDefinition{Name: name, Fields: fields, Loc: loc}
	return &ast.ExtendTypeDefinition{Object: object, Loc: loc}, nil
}

// parseFieldDefinitionBlock parses the `{ FieldDefinition* }` body shared
// by object, interface, and extend-type definitions.
func (p *Base) parseFieldDefinitionBlock() ([]*ast.FieldDefinition, *errors.GraphQLError) {
	if _, err := p.consume(token.BRACE_L); err != nil {
		return nil, err
	}
	var fields []*ast.FieldDefinition
	for !p.isAhead(token.BRACE_R) {
		if p.isAhead(token.EOF) {
			return nil, p.eof()
		}
		if _, ok := p.consumeIf(token.COMMA); ok {
			continue
		}
		field, err := p.parseFieldDefinition()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if _, err := p.consume(token.BRACE_R); err != nil {
		return nil, err
	}
	return fields, nil
}

// parseFieldDefinition parses `name (args)? : Type directives*`.
func (p *Base) parseFieldDefinition() (*ast.FieldDefinition, *errors.GraphQLError) {
	loc := p.current().Location
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
	if _, err := p.consume(token.COLON); err != nil {
		return nil, err
	}
	typ, err := p.parseTypeNode()
	if err != nil {
		return nil, err
	}
	directives, err := p.parseDirectives()
	if err != nil {
		return nil, err
	}
	return &ast.FieldDefinition{Name: name, Arguments: args, Type: typ, Directives: directives, Loc: loc}, nil
}
