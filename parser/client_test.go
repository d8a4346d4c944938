package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlc/ast"
)

func TestParseClientSourceSimpleQuery(t *testing.T) {
	file, err := ParseClientSource("t.graphql", `query Q { user { name } }`)
	require.Nil(t, err)
	require.Len(t, file.Definitions, 1)

	op, ok := file.Definitions[0].(*ast.OperationDefinition)
	require.True(t, ok)
	assert.Equal(t, ast.Query, op.Kind)
	assert.Equal(t, "Q", op.Name.Value)
	require.Len(t, op.Selections, 1)

	user, ok := op.Selections[0].(*ast.FieldSelection)
	require.True(t, ok)
	assert.Nil(t, user.Alias)
	assert.Equal(t, "user", user.Name.Value)
	require.Len(t, user.Selections, 1)
}

func TestParseClientSourceAliasAndArguments(t *testing.T) {
	file, err := ParseClientSource("t.graphql", `query Q($id: Int!) { u: user(id: $id) { name } }`)
	require.Nil(t, err)
	op := file.Definitions[0].(*ast.OperationDefinition)
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "id", op.Parameters[0].Name.Value)

	field := op.Selections[0].(*ast.FieldSelection)
	require.NotNil(t, field.Alias)
	assert.Equal(t, "u", field.Alias.Value)
	assert.Equal(t, "user", field.Name.Value)
	require.Len(t, field.Arguments, 1)
	assert.Equal(t, "id", field.Arguments[0].Name.Value)
	ref, ok := field.Arguments[0].Value.(*ast.Name)
	require.True(t, ok)
	assert.Equal(t, "$id", ref.Value)
}

func TestParseClientSourceFragmentSpreadOnInterface(t *testing.T) {
	file, err := ParseClientSource("t.graphql", `
fragment F on Node { id }
query Q { user { ... F, name } }
`)
	require.Nil(t, err)
	require.Len(t, file.Definitions, 2)

	fragment, ok := file.Definitions[0].(*ast.FragmentDefinition)
	require.True(t, ok)
	assert.Equal(t, "F", fragment.Name.Value)
	assert.Equal(t, "Node", fragment.TypeName.Value)

	op := file.Definitions[1].(*ast.OperationDefinition)
	user := op.Selections[0].(*ast.FieldSelection)
	require.Len(t, user.Selections, 2)
	spread, ok := user.Selections[0].(*ast.FragmentSpreadSelection)
	require.True(t, ok)
	assert.Equal(t, "F", spread.Name.Value)
}

func TestParseClientSourceConditionalSpreadInUnion(t *testing.T) {
	file, err := ParseClientSource("t.graphql", `
query Q { result { ... on Photo { id } } }
`)
	require.Nil(t, err)
	op := file.Definitions[0].(*ast.OperationDefinition)
	result := op.Selections[0].(*ast.FieldSelection)
	cond, ok := result.Selections[0].(*ast.ConditionalSpreadSelection)
	require.True(t, ok)
	assert.Equal(t, "Photo", cond.TypeName.Value)
	require.Len(t, cond.Selections, 1)
}

func TestParseClientSourceTypenameSelection(t *testing.T) {
	file, err := ParseClientSource("t.graphql", `query Q { __typename }`)
	require.Nil(t, err)
	op := file.Definitions[0].(*ast.OperationDefinition)
	field := op.Selections[0].(*ast.FieldSelection)
	assert.Equal(t, "__typename", field.Name.Value)
}

func TestParseClientSourceDirectiveInvocationOnField(t *testing.T) {
	file, err := ParseClientSource("t.graphql", `query Q { user @include(if: $cond) { name } }`)
	require.Nil(t, err)
	op := file.Definitions[0].(*ast.OperationDefinition)
	field := op.Selections[0].(*ast.FieldSelection)
	require.Len(t, field.Directives, 1)
	assert.Equal(t, "include", field.Directives[0].Name.Value)
}

func TestParseClientSourceMissingClosingBraceIsEOFError(t *testing.T) {
	_, err := ParseClientSource("t.graphql", `query Q { user { name }`)
	require.NotNil(t, err)
	assert.EqualValues(t, "eof", err.Rule)
}

func TestParseClientSourceDanglingConditionalSpreadIsError(t *testing.T) {
	_, err := ParseClientSource("t.graphql", `query Q { user { ... on } }`)
	require.NotNil(t, err)
}
