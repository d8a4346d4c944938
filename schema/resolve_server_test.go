package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlc/ast"
	"github.com/shyptr/gqlc/errors"
	"github.com/shyptr/gqlc/parser"
)

func mustParseServer(t *testing.T, src string) []*ast.ServerFile {
	t.Helper()
	file, err := parser.ParseServerSource("t.graphql", src)
	require.Nil(t, err)
	return []*ast.ServerFile{file}
}

func TestResolveServerMutualReferencesShareIdentity(t *testing.T) {
	reg, err := ResolveServer(mustParseServer(t, `type A { b: B! } type B { a: A }`))
	require.Nil(t, err)

	a, _ := reg.Objects.Get("A")
	b, _ := reg.Objects.Get("B")
	bField, _ := a.Fields.Get("b")
	bSpec := bField.Spec.(*LiteralObjectFieldSpec)
	assert.Same(t, b, bSpec.Type)

	aField, _ := b.Fields.Get("a")
	aSpec := aField.Spec.(*LiteralObjectFieldSpec)
	assert.Same(t, a, aSpec.Type)
}

func TestResolveServerDuplicateNameAcrossKinds(t *testing.T) {
	_, err := ResolveServer(mustParseServer(t, `type Foo { a: Int } scalar Foo`))
	require.NotNil(t, err)
	assert.Equal(t, errors.NameAlreadyDefined, err.Rule)
}

func TestResolveServerUnknownFieldType(t *testing.T) {
	_, err := ResolveServer(mustParseServer(t, `type A { b: Nope }`))
	require.NotNil(t, err)
	assert.Equal(t, errors.UnknownType, err.Rule)
}

func TestResolveServerExtendMergesFields(t *testing.T) {
	reg, err := ResolveServer(mustParseServer(t, `
type Query { a: Int }
extend type Query { b: String! }
`))
	require.Nil(t, err)

	q, ok := reg.Objects.Get("Query")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, q.Fields.Keys())
	assert.Same(t, q.Fields, reg.Queries)
}

func TestResolveServerExtendFieldAlreadyExists(t *testing.T) {
	_, err := ResolveServer(mustParseServer(t, `
type Query { a: Int }
extend type Query { a: String! }
`))
	require.NotNil(t, err)
	assert.Equal(t, errors.FieldAlreadyExists, err.Rule)
}

func TestResolveServerUnionMembersResolveToSharedObjects(t *testing.T) {
	reg, err := ResolveServer(mustParseServer(t, `
type Photo { id: Int! }
type Article { id: Int! }
union SearchResult = Photo | Article
`))
	require.Nil(t, err)

	photo, _ := reg.Objects.Get("Photo")
	union, ok := reg.Unions.Get("SearchResult")
	require.True(t, ok)
	member, ok := union.Items.Get("Photo")
	require.True(t, ok)
	assert.Same(t, photo, member)
}

func TestResolveServerInterfaceImplementation(t *testing.T) {
	reg, err := ResolveServer(mustParseServer(t, `
interface Node { id: Int! }
type User implements Node { id: Int!, name: String }
`))
	require.Nil(t, err)

	user, _ := reg.Objects.Get("User")
	node, ok := reg.Interfaces.Get("Node")
	require.True(t, ok)
	impl, ok := user.Implements.Get("Node")
	require.True(t, ok)
	assert.Same(t, node, impl)
}

func TestResolveServerDirectiveRejectsInvalidLocation(t *testing.T) {
	_, err := ResolveServer(mustParseServer(t, `
directive @onlyFields on FIELD
`))
	require.NotNil(t, err)
	assert.Equal(t, errors.UnknownType, err.Rule)
}

func TestResolveServerDirectiveAcceptsValidLocation(t *testing.T) {
	reg, err := ResolveServer(mustParseServer(t, `
directive @cached(ttl: Int = 60) on FIELD_DEFINITION
`))
	require.Nil(t, err)
	dir, ok := reg.ServerDirectives.Get("cached")
	require.True(t, ok)
	require.Len(t, dir.Locations, 1)
	assert.Equal(t, ast.LocFieldDefinition, dir.Locations[0])
}

func TestResolveServerListFieldTracksInnerNullability(t *testing.T) {
	reg, err := ResolveServer(mustParseServer(t, `
type User { id: Int! }
type Query { users: [User!]! , maybe: [User] }
`))
	require.Nil(t, err)
	q, _ := reg.Objects.Get("Query")

	usersField, _ := q.Fields.Get("users")
	assert.False(t, usersField.Nullable)
	usersSpec := usersField.Spec.(*ArrayObjectFieldSpec)
	assert.False(t, usersSpec.InnerNullable)

	maybeField, _ := q.Fields.Get("maybe")
	assert.True(t, maybeField.Nullable)
	maybeSpec := maybeField.Spec.(*ArrayObjectFieldSpec)
	assert.True(t, maybeSpec.InnerNullable)
}

func TestResolveServerInputDefaultValue(t *testing.T) {
	reg, err := ResolveServer(mustParseServer(t, `
input Filter { limit: Int = 10 }
`))
	require.Nil(t, err)
	input, _ := reg.Inputs.Get("Filter")
	limit, _ := input.Fields.Get("limit")
	spec := limit.Spec.(*LiteralInputFieldSpec)
	require.NotNil(t, spec.DefaultValue)
	assert.EqualValues(t, 10, spec.DefaultValue.Int)
}
