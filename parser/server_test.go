package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlc/ast"
)

func TestParseServerSourceObjectAndScalar(t *testing.T) {
	file, err := ParseServerSource("t.graphql", `
scalar DateTime
type A { b: B! }
type B { a: A }
`)
	require.Nil(t, err)
	require.Len(t, file.Definitions, 3)

	scalar, ok := file.Definitions[0].(*ast.ScalarDefinition)
	require.True(t, ok)
	assert.Equal(t, "DateTime", scalar.Name.Value)

	a, ok := file.Definitions[1].(*ast.ObjectDefinition)
	require.True(t, ok)
	assert.Equal(t, "A", a.Name.Value)
	require.Len(t, a.Fields, 1)
	assert.Equal(t, "b", a.Fields[0].Name.Value)
	bType, ok := a.Fields[0].Type.(*ast.NamedType)
	require.True(t, ok)
	assert.Equal(t, "B", bType.Name.Value)
	assert.False(t, bType.Nullable)
}

func TestParseServerSourceInterfaceAndImplements(t *testing.T) {
	file, err := ParseServerSource("t.graphql", `
interface Node { id: ID! }
type User implements Node { id: ID!, name: String }
`)
	require.Nil(t, err)
	require.Len(t, file.Definitions, 2)

	user, ok := file.Definitions[1].(*ast.ObjectDefinition)
	require.True(t, ok)
	require.Len(t, user.Implements, 1)
	assert.Equal(t, "Node", user.Implements[0].Value)
	require.Len(t, user.Fields, 2)
}

func TestParseServerSourceUnionAndEnum(t *testing.T) {
	file, err := ParseServerSource("t.graphql", `
enum Color { RED GREEN BLUE }
type Photo { id: ID! }
type Article { id: ID! }
union SearchResult = Photo | Article
`)
	require.Nil(t, err)
	require.Len(t, file.Definitions, 4)

	enum, ok := file.Definitions[0].(*ast.EnumDefinition)
	require.True(t, ok)
	assert.Len(t, enum.Values, 3)

	union, ok := file.Definitions[3].(*ast.UnionDefinition)
	require.True(t, ok)
	require.Len(t, union.Members, 2)
	assert.Equal(t, "Photo", union.Members[0].Value)
	assert.Equal(t, "Article", union.Members[1].Value)
}

func TestParseServerSourceExtend(t *testing.T) {
	file, err := ParseServerSource("t.graphql", `
type Query { a: Int }
extend type Query { b: String! }
`)
	require.Nil(t, err)
	require.Len(t, file.Definitions, 2)

	extend, ok := file.Definitions[1].(*ast.ExtendTypeDefinition)
	require.True(t, ok)
	assert.Equal(t, "Query", extend.Object.Name.Value)
	require.Len(t, extend.Object.Fields, 1)
	assert.Equal(t, "b", extend.Object.Fields[0].Name.Value)
}

func TestParseServerSourceInputWithDefault(t *testing.T) {
	file, err := ParseServerSource("t.graphql", `
input CreateUser { name: String!, age: Int = 18 }
`)
	require.Nil(t, err)
	input, ok := file.Definitions[0].(*ast.InputObjectDefinition)
	require.True(t, ok)
	require.Len(t, input.Fields, 2)
	require.NotNil(t, input.Fields[1].DefaultValue)
	assert.Equal(t, ast.IntLiteral, input.Fields[1].DefaultValue.Kind)
	assert.Equal(t, "18", input.Fields[1].DefaultValue.Value)
}

func TestParseServerSourceDirectiveDefinition(t *testing.T) {
	file, err := ParseServerSource("t.graphql", `
directive @deprecated(reason: String) on FIELD_DEFINITION | ENUM_VALUE
`)
	require.Nil(t, err)
	dir, ok := file.Definitions[0].(*ast.DirectiveDefinition)
	require.True(t, ok)
	assert.Equal(t, "deprecated", dir.Name.Value)
	require.Len(t, dir.Arguments, 1)
	require.Len(t, dir.Locations, 2)
	assert.Equal(t, ast.LocFieldDefinition, dir.Locations[0])
	assert.Equal(t, ast.LocEnumValue, dir.Locations[1])
}

func TestParseServerSourceFieldDirectiveInvocation(t *testing.T) {
	file, err := ParseServerSource("t.graphql", `
type User { name: String @deprecated(reason: "unused") }
`)
	require.Nil(t, err)
	obj, ok := file.Definitions[0].(*ast.ObjectDefinition)
	require.True(t, ok)
	require.Len(t, obj.Fields[0].Directives, 1)
	assert.Equal(t, "deprecated", obj.Fields[0].Directives[0].Name.Value)
	require.Len(t, obj.Fields[0].Directives[0].Arguments, 1)
}

func TestParseServerSourceKeywordAsTypeNameRejected(t *testing.T) {
	_, err := ParseServerSource("t.graphql", `type type { a: Int }`)
	require.NotNil(t, err)
	assert.EqualValues(t, "identifier-is-keyword", err.Rule)
}

func TestDirectiveArgumentDefaultRoundTrip(t *testing.T) {
	file, err := ParseServerSource("t.graphql", `
directive @cached(ttl: Int = 60, reason: String) on FIELD_DEFINITION
type User { name: String @cached(ttl: 30) }
`)
	require.Nil(t, err)

	dir, ok := file.Definitions[0].(*ast.DirectiveDefinition)
	require.True(t, ok)
	require.Len(t, dir.Arguments, 2)
	ttl := dir.Arguments[0]
	assert.Equal(t, "ttl", ttl.Name.Value)
	require.NotNil(t, ttl.DefaultValue)
	assert.Equal(t, ast.IntLiteral, ttl.DefaultValue.Kind)
	assert.Equal(t, "60", ttl.DefaultValue.Value)
	assert.Nil(t, dir.Arguments[1].DefaultValue)

	obj, ok := file.Definitions[1].(*ast.ObjectDefinition)
	require.True(t, ok)
	invocation := obj.Fields[0].Directives[0]
	assert.Equal(t, "cached", invocation.Name.Value)
	require.Len(t, invocation.Arguments, 1)
	assert.Equal(t, "ttl", invocation.Arguments[0].Name.Value)
	lit, ok := invocation.Arguments[0].Value.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "30", lit.Value)
}

func TestParseServerSourceUnknownLeadIdentifier(t *testing.T) {
	_, err := ParseServerSource("t.graphql", `notAKeyword Foo { a: Int }`)
	require.NotNil(t, err)
	assert.EqualValues(t, "unexpected-identifier", err.Rule)
}
