// Package lexer implements the single-pass character-stream tokenizer
// shared by the server (SDL) and client (operation) parsers (spec.md §4.1).
package lexer

import (
	"strings"
	"unicode"

	"github.com/shyptr/gqlc/errors"
	"github.com/shyptr/gqlc/token"
)

// Lexer turns GraphQL source text into a flat token stream. It holds no
// dialect knowledge — the same lexer feeds both the server and client
// parsers.
type Lexer struct {
	file   string
	src    []rune
	loc    errors.Location
	buf    strings.Builder
	kind   token.Kind
	active bool
	tokens []token.Token
}

// New returns a Lexer positioned at the start of src. file is attached to
// any error raised while scanning, for diagnostics.
func New(file, src string) *Lexer {
	return &Lexer{file: file, src: []rune(src), loc: errors.NewLocation()}
}

// Tokenize lexes file's entire contents and returns its token stream, or
// the first lexer error encountered.
func Tokenize(file, src string) ([]token.Token, *errors.GraphQLError) {
	return New(file, src).Run()
}

// Run scans every character of the source and returns the resulting token
// stream.
func (l *Lexer) Run() ([]token.Token, *errors.GraphQLError) {
	for _, c := range l.src {
		if err := l.feed(c); err != nil {
			return nil, err
		}
	}
	if err := l.commit(); err != nil {
		return nil, err
	}
	return l.tokens, nil
}

func (l *Lexer) feed(c rune) *errors.GraphQLError {
	if c == '\n' {
		if err := l.commit(); err != nil {
			return err
		}
		l.loc = l.loc.NewLine()
		return nil
	}
	if l.active {
		if continues(l.kind, l.buf.String(), c) {
			l.buf.WriteRune(c)
			l.loc = l.loc.Extend()
			return nil
		}
		// The closing quote of a STRING is consumed by the token itself,
		// not reprocessed as the start of a new one (spec.md §4.1).
		if l.kind == token.STRING && c == '"' {
			l.loc = l.loc.Extend()
			return l.commit()
		}
		if err := l.commit(); err != nil {
			return err
		}
	}
	return l.feedNew(c)
}

// feedNew classifies c as the start of a new token. The character it
// rejected a continuation for is reprocessed here, exactly as if it had
// arrived fresh.
func (l *Lexer) feedNew(c rune) *errors.GraphQLError {
	l.loc = l.loc.Advance()
	if c == ' ' {
		return nil
	}

	kind, complex, ok := classify(c)
	if !ok {
		return errors.New("Cannot determine token type for char: %q", c).
			WithLocation(l.loc).
			WithFile(l.file).
			WithRule(errors.LexerError)
	}
	if !complex {
		l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: string(c), Location: l.loc})
		return nil
	}

	l.kind = kind
	l.active = true
	l.buf.Reset()
	if kind != token.STRING {
		l.buf.WriteRune(c)
	}
	return nil
}

// commit closes out the active complex token, if any, appending it to the
// token stream and resetting the cursor for the next one.
func (l *Lexer) commit() *errors.GraphQLError {
	if !l.active {
		return nil
	}
	kind := l.kind
	lexeme := l.buf.String()
	if kind == token.IDENT && (lexeme == "true" || lexeme == "false") {
		kind = token.BOOLEAN
	}
	if kind == token.SPREAD && lexeme != "..." {
		return errors.New("Cannot determine token type for char: %q", '.').
			WithLocation(l.loc).
			WithFile(l.file).
			WithRule(errors.LexerError)
	}
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: lexeme, Location: l.loc})
	l.active = false
	l.buf.Reset()
	l.loc = l.loc.Collapse()
	return nil
}

// classify reports the token kind a character beginning a new token
// introduces, whether that kind is a complex (buffer-accumulating) one, and
// whether c was recognized at all.
func classify(c rune) (kind token.Kind, complex bool, ok bool) {
	switch {
	case unicode.IsLetter(c) || c == '_':
		return token.IDENT, true, true
	case unicode.IsDigit(c):
		return token.NUMBER, true, true
	case c == '"':
		return token.STRING, true, true
	case c == '.':
		return token.SPREAD, true, true
	case c == '$':
		return token.IDENT, true, true
	}
	if k, ok := token.SimpleKind(c); ok {
		return k, false, true
	}
	return 0, false, false
}

// continues reports whether c extends the active complex token whose kind
// is kind and whose buffer so far is buf.
func continues(kind token.Kind, buf string, c rune) bool {
	switch kind {
	case token.STRING:
		return c != '"'
	case token.SPREAD:
		return c == '.' && len(buf) < 3
	case token.NUMBER:
		return numberContinues(buf, c)
	case token.IDENT, token.BOOLEAN:
		return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '-'
	}
	return false
}

// numberContinues implements the NUMBER continuation rule (spec.md §4.1):
// digits are always accepted until an `f` suffix has been seen; a `.` is
// accepted iff the buffer has no `.` yet and ends in a digit; an `f` is
// accepted iff the buffer ends in a digit and has no previous `f`.
func numberContinues(buf string, c rune) bool {
	last := rune(buf[len(buf)-1])
	if last == 'f' {
		return false
	}
	if unicode.IsDigit(c) {
		return true
	}
	lastIsDigit := unicode.IsDigit(last)
	if c == '.' {
		return lastIsDigit && !strings.ContainsRune(buf, '.')
	}
	if c == 'f' {
		return lastIsDigit
	}
	return false
}
