package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlc/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func lexemes(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Lexeme
	}
	return out
}

func TestTokenizeSimpleTokens(t *testing.T) {
	tokens, err := Tokenize("t.graphql", `={}()!;:,|[]@`)
	require.Nil(t, err)
	assert.Equal(t, []token.Kind{
		token.EQUALS, token.BRACE_L, token.BRACE_R, token.PAREN_L, token.PAREN_R,
		token.BANG, token.SEMI, token.COLON, token.COMMA, token.PIPE,
		token.BRACKET_L, token.BRACKET_R, token.AT,
	}, kinds(tokens))
}

func TestTokenizeIdentifierAndKeywords(t *testing.T) {
	tokens, err := Tokenize("t.graphql", `type User_1 on-call`)
	require.Nil(t, err)
	assert.Equal(t, []token.Kind{token.IDENT, token.IDENT, token.IDENT}, kinds(tokens))
	assert.Equal(t, []string{"type", "User_1", "on-call"}, lexemes(tokens))
}

func TestTokenizeBooleanNormalization(t *testing.T) {
	tokens, err := Tokenize("t.graphql", `true false truest`)
	require.Nil(t, err)
	assert.Equal(t, []token.Kind{token.BOOLEAN, token.BOOLEAN, token.IDENT}, kinds(tokens))
	assert.Equal(t, []string{"true", "false", "truest"}, lexemes(tokens))
}

func TestTokenizeVariableMarker(t *testing.T) {
	tokens, err := Tokenize("t.graphql", `$userId`)
	require.Nil(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.IDENT, tokens[0].Kind)
	assert.Equal(t, "$userId", tokens[0].Lexeme)
}

func TestTokenizeString(t *testing.T) {
	tokens, err := Tokenize("t.graphql", `"hello world"`)
	require.Nil(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.STRING, tokens[0].Kind)
	assert.Equal(t, "hello world", tokens[0].Lexeme)
}

func TestTokenizeStringFollowedByMoreTokens(t *testing.T) {
	tokens, err := Tokenize("t.graphql", `"hello" world`)
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.STRING, tokens[0].Kind)
	assert.Equal(t, "hello", tokens[0].Lexeme)
	assert.Equal(t, token.IDENT, tokens[1].Kind)
	assert.Equal(t, "world", tokens[1].Lexeme)
}

func TestTokenizeSpreadRejectsFourDots(t *testing.T) {
	_, err := Tokenize("t.graphql", `....`)
	require.NotNil(t, err)
	assert.EqualValues(t, "lexer-error", err.Rule)
}

func TestTokenizeNumberRejectsSecondPoint(t *testing.T) {
	// The second "." cannot extend the NUMBER (one point per number), and a
	// lone "." is not a valid SPREAD either, so this is a lexer error.
	_, err := Tokenize("t.graphql", `1.2.3`)
	require.NotNil(t, err)
	assert.EqualValues(t, "lexer-error", err.Rule)
}

func TestTokenizeSpread(t *testing.T) {
	tokens, err := Tokenize("t.graphql", `...Name`)
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, token.SPREAD, tokens[0].Kind)
	assert.Equal(t, "...", tokens[0].Lexeme)
	assert.Equal(t, token.IDENT, tokens[1].Kind)
}

func TestTokenizeNumberContinuation(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{"12a", []string{"12", "a"}},
		{"1.2", []string{"1.2"}},
		{"1.2f", []string{"1.2f"}},
		{"1.2ff", []string{"1.2f", "f"}},
		{"2.0ff", []string{"2.0f", "f"}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			tokens, err := Tokenize("t.graphql", tc.src)
			require.Nil(t, err)
			assert.Equal(t, tc.want, lexemes(tokens))
		})
	}
}

func TestTokenizeNewlineTracksLocation(t *testing.T) {
	tokens, err := Tokenize("t.graphql", "type\nUser")
	require.Nil(t, err)
	require.Len(t, tokens, 2)
	assert.Equal(t, 0, tokens[0].Location.Line)
	assert.Equal(t, 1, tokens[1].Location.Line)
}

func TestTokenizeUnrecognizedCharacter(t *testing.T) {
	_, err := Tokenize("t.graphql", `a ? b`)
	require.NotNil(t, err)
	assert.EqualValues(t, "lexer-error", err.Rule)
}

func TestTokenizeEndOfInputCommitsPending(t *testing.T) {
	tokens, err := Tokenize("t.graphql", `foo`)
	require.Nil(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "foo", tokens[0].Lexeme)
}
