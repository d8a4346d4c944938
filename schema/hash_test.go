package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlc/ast"
	"github.com/shyptr/gqlc/parser"
)

func mustResolveClient(t *testing.T, reg *Registry, src string) *Registry {
	t.Helper()
	file, err := parser.ParseClientSource("t.graphql", src)
	require.Nil(t, err)
	rerr := ResolveClient(reg, []*ast.ClientFile{file})
	require.Nil(t, rerr)
	return reg
}

func TestOperationParametersHashStableUnderReordering(t *testing.T) {
	reg1 := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg1, `query Q($a: Int!, $b: String) { user(id: $a) { id } }`)

	reg2 := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg2, `query Q($b: String, $a: Int!) { user(id: $a) { id } }`)

	require.Len(t, reg1.Operations, 1)
	require.Len(t, reg2.Operations, 1)
	assert.Equal(t, reg1.Operations[0].ParametersHash, reg2.Operations[0].ParametersHash)
}

func TestOperationParametersHashChangesWithDefaultValue(t *testing.T) {
	reg1 := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg1, `query Q($a: Int = 1) { user(id: 1) { id } }`)

	reg2 := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg2, `query Q($a: Int = 2) { user(id: 1) { id } }`)

	assert.NotEqual(t, reg1.Operations[0].ParametersHash, reg2.Operations[0].ParametersHash)
}

func TestOperationFragmentHashStableUnderSelectionReordering(t *testing.T) {
	reg1 := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg1, `query Q { user(id: 1) { id, name } }`)

	reg2 := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg2, `query Q { user(id: 1) { name, id } }`)

	assert.Equal(t, reg1.Operations[0].FragmentHash, reg2.Operations[0].FragmentHash)
}

func TestOperationFragmentHashDiffersOnAlias(t *testing.T) {
	reg1 := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg1, `query Q { user(id: 1) { id } }`)

	reg2 := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg2, `query Q { user(id: 1) { uid: id } }`)

	assert.NotEqual(t, reg1.Operations[0].FragmentHash, reg2.Operations[0].FragmentHash)
}

func TestOperationFragmentHashIncludesTransitiveFragmentClosure(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg, `
fragment Inner on Node { id }
fragment Outer on Node { ... Inner }
query Q { user(id: 1) { ... Outer } }
`)
	require.Len(t, reg.Operations, 1)
	op := reg.Operations[0]
	assert.Equal(t, []string{"Outer", "Inner"}, op.UsedFragments)

	outer, ok := reg.Fragments.Get("Outer")
	require.True(t, ok)
	inner, ok := reg.Fragments.Get("Inner")
	require.True(t, ok)
	assert.NotEqual(t, inner.Hash, outer.Hash)

	reg2 := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg2, `
fragment Inner on Node { id, name }
fragment Outer on Node { ... Inner }
query Q { user(id: 1) { ... Outer } }
`)
	op2 := reg2.Operations[0]
	outer2, _ := reg2.Fragments.Get("Outer")

	// Inner's content change ripples through Outer's hash and the
	// operation's FragmentHash even though neither spreads Inner's fields
	// directly.
	assert.NotEqual(t, outer.Hash, outer2.Hash)
	assert.NotEqual(t, op.FragmentHash, op2.FragmentHash)
}

func TestFragmentHashSameContentSameHash(t *testing.T) {
	reg1 := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg1, `fragment F on Node { id }`)
	f1, _ := reg1.Fragments.Get("F")

	reg2 := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg2, `fragment F on Node { id }`)
	f2, _ := reg2.Fragments.Get("F")

	assert.Equal(t, f1.Hash, f2.Hash)
}

func TestFragmentHashDiffersOnRootType(t *testing.T) {
	reg := mustResolveServer(t, baseSchema)
	mustResolveClient(t, reg, `
fragment OnUser on User { id }
fragment OnPhoto on Photo { id }
`)
	onUser, _ := reg.Fragments.Get("OnUser")
	onPhoto, _ := reg.Fragments.Get("OnPhoto")
	assert.NotEqual(t, onUser.Hash, onPhoto.Hash)
}

func TestOperationKindParticipatesInParametersHash(t *testing.T) {
	// Same name and body in both registries, so only the kind differs.
	reg1 := mustResolveServer(t, baseSchema+"\ntype Mutation { user(id: Int!): User }")
	mustResolveClient(t, reg1, `query Q { user(id: 1) { id } }`)

	reg2 := mustResolveServer(t, baseSchema+"\ntype Mutation { user(id: Int!): User }")
	mustResolveClient(t, reg2, `mutation Q { user(id: 1) { id } }`)

	require.Len(t, reg1.Operations, 1)
	require.Len(t, reg2.Operations, 1)
	assert.NotEqual(t, reg1.Operations[0].ParametersHash, reg2.Operations[0].ParametersHash)
}
