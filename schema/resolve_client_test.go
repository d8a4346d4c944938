package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlc/ast"
	"github.com/shyptr/gqlc/errors"
	"github.com/shyptr/gqlc/parser"
)

const baseSchema = `
interface Node { id: Int! }
type User implements Node { id: Int!, name: String }
type Photo implements Node { id: Int!, url: String }
union SearchResult = User | Photo
type Query { user(id: Int!): User, search: SearchResult }
`

func mustResolveServer(t *testing.T, src string) *Registry {
	t.Helper()
	file, err := parser.ParseServerSource("t.graphql", src)
	require.Nil(t, err)
	reg, rerr := ResolveServer([]*ast.ServerFile{file})
	require.Nil(t, rerr)
	return reg
}

func resolveClientSrc(t *testing.T, reg *Registry, src string) *errors.GraphQLError {
	t.Helper()
	file, err := parser.ParseClientSource("t.graphql", src)
	require.Nil(t, err)
	return ResolveClient(reg, []*ast.ClientFile{file})
}

func TestResolveClientFragmentSpreadOnInterfaceCompatible(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
fragment F on Node { id }
query Q { user(id: 1) { ... F, name } }
`)
	require.Nil(t, err)
	require.Len(t, reg.Operations, 1)
	assert.Equal(t, []string{"F"}, reg.Operations[0].UsedFragments)
}

func TestResolveClientFragmentSpreadIncompatibleType(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
fragment F on Photo { id }
query Q { user(id: 1) { ... F } }
`)
	require.NotNil(t, err)
	assert.Equal(t, errors.IncompatibleFragmentType, err.Rule)
}

func TestResolveClientConditionalSpreadOnUnion(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
query Q { search { ... on User { name } ... on Photo { url } } }
`)
	require.Nil(t, err)
}

func TestResolveClientConditionalSpreadOutsideUnionRejected(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
query Q { user(id: 1) { ... on User { name } } }
`)
	require.NotNil(t, err)
	assert.Equal(t, errors.IncompatibleFragmentType, err.Rule)
}

func TestResolveClientUnknownFieldOnUnion(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
query Q { search { name } }
`)
	require.NotNil(t, err)
	assert.Equal(t, errors.UnknownField, err.Rule)
}

func TestResolveClientUnknownField(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
query Q { user(id: 1) { nope } }
`)
	require.NotNil(t, err)
	assert.Equal(t, errors.UnknownField, err.Rule)
}

func TestResolveClientMissingRequiredArgument(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
query Q { user { id } }
`)
	require.NotNil(t, err)
	assert.Equal(t, errors.MissingArgument, err.Rule)
}

func TestResolveClientVariableReferenceCompatible(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
query Q($uid: Int!) { user(id: $uid) { id } }
`)
	require.Nil(t, err)
}

func TestResolveClientVariableReferenceIncompatibleNullability(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
query Q($uid: Int) { user(id: $uid) { id } }
`)
	require.NotNil(t, err)
	assert.Equal(t, errors.ArgumentTypeMismatch, err.Rule)
}

func TestResolveClientTypenameCannotCarrySelectionSet(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
query Q { user(id: 1) { __typename { id } } }
`)
	require.NotNil(t, err)
}

func TestResolveClientDuplicateOperationName(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
query Q { user(id: 1) { id } }
query Q { user(id: 2) { id } }
`)
	require.NotNil(t, err)
	assert.Equal(t, errors.NameAlreadyDefined, err.Rule)
}

func TestResolveClientDirectiveRejectsInvalidLocation(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	err := resolveClientSrc(t, reg, `
directive @cached on FIELD_DEFINITION
query Q { user(id: 1) { id } }
`)
	require.NotNil(t, err)
	assert.Equal(t, errors.UnknownType, err.Rule)
}

func TestResolveClientSubUnionConditionalSpread(t *testing.T) {
	reg := mustResolveServer(t, baseSchema+"\nunion UserOnly = User")
	err := resolveClientSrc(t, reg, `
query Q { search { ... on UserOnly { ... on User { name } } } }
`)
	require.Nil(t, err)
}

func TestResolveClientSubUnionConditionalSpreadRejectsNonSubset(t *testing.T) {
	reg := mustResolveServer(t, baseSchema+"\ntype Extra { id: Int! }\nunion ExtraOnly = Extra")
	err := resolveClientSrc(t, reg, `
query Q { search { ... on ExtraOnly { ... on Extra { id } } } }
`)
	require.NotNil(t, err)
	assert.Equal(t, errors.UnknownConditionalType, err.Rule)
}
