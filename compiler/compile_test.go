package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlc/errors"
	"github.com/shyptr/gqlc/schema"
)

func TestCompileMutualReferences(t *testing.T) {
	prog, err := Compile([]SourceFile{
		{Path: "schema.graphql", Src: `type A { b: B! } type B { a: A }`},
	}, nil)
	require.Nil(t, err)

	a, ok := prog.Server.Objects.Get("A")
	require.True(t, ok)
	b, ok := prog.Server.Objects.Get("B")
	require.True(t, ok)

	bField, _ := a.Fields.Get("b")
	bSpec, ok := bField.Spec.(*schema.LiteralObjectFieldSpec)
	require.True(t, ok)
	assert.Same(t, b, bSpec.Type)

	aField, _ := b.Fields.Get("a")
	aSpec, ok := aField.Spec.(*schema.LiteralObjectFieldSpec)
	require.True(t, ok)
	assert.Same(t, a, aSpec.Type)
}

func TestCompileOperationAgainstSchema(t *testing.T) {
	prog, err := Compile([]SourceFile{
		{Path: "schema.graphql", Src: `
interface Node { id: Int! }
type User implements Node { id: Int!, name: String }
type Query { user: User }
`},
	}, []SourceFile{
		{Path: "ops.graphql", Src: `
fragment F on Node { id }
query Q { user { ... F, name } }
`},
	})
	require.Nil(t, err)
	require.Len(t, prog.Client.Operations, 1)

	op := prog.Client.Operations[0]
	assert.Equal(t, []string{"F"}, op.UsedFragments)
}

func TestCompileStopsAtFirstError(t *testing.T) {
	_, err := Compile([]SourceFile{
		{Path: "bad.graphql", Src: `type A { b: Unknown }`},
	}, nil)
	require.NotNil(t, err)
	assert.Equal(t, errors.UnknownType, err.Rule)
}
