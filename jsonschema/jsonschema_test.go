package jsonschema_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/shyptr/gqlc/compiler"
	"github.com/shyptr/gqlc/jsonschema"
	"github.com/shyptr/gqlc/schema"
)

// compareOpts sidesteps the unexported fields cmp can't otherwise see
// (schema.OrderedMap's internal keys/values), exporting them through
// Range() in a custom Transformer instead, and leaves Fragment.RootType
// out of the comparison (a decoded program is structurally, not pointer,
// equal to the one it was encoded from — see DESIGN.md).
func orderedMapTransformer[V any]() cmp.Option {
	return cmp.Transformer("OrderedMap", func(m *schema.OrderedMap[V]) map[string]V {
		if m == nil {
			return nil
		}
		out := make(map[string]V, m.Len())
		m.Range(func(k string, v V) { out[k] = v })
		return out
	})
}

func compareOpts() cmp.Options {
	return cmp.Options{
		orderedMapTransformer[*schema.Scalar](),
		orderedMapTransformer[*schema.EnumDef](),
		orderedMapTransformer[*schema.InputType](),
		orderedMapTransformer[*schema.ObjectType](),
		orderedMapTransformer[*schema.Interface](),
		orderedMapTransformer[*schema.Union](),
		orderedMapTransformer[*schema.ServerDirective](),
		orderedMapTransformer[*schema.ClientDirective](),
		orderedMapTransformer[*schema.Fragment](),
		orderedMapTransformer[*schema.FieldDef[schema.ObjectFieldSpec]](),
		orderedMapTransformer[*schema.FieldDef[schema.InputFieldSpec]](),
		cmpopts.IgnoreFields(schema.Fragment{}, "RootType"),
		cmpopts.EquateEmpty(),
	}
}

func mustCompile(t *testing.T, serverSrc, clientSrc string) *schema.Program {
	t.Helper()
	var client []compiler.SourceFile
	if clientSrc != "" {
		client = []compiler.SourceFile{{Path: "ops.graphql", Src: clientSrc}}
	}
	prog, err := compiler.Compile([]compiler.SourceFile{{Path: "schema.graphql", Src: serverSrc}}, client)
	require.Nil(t, err)
	return prog
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	prog := mustCompile(t, `
interface Node { id: Int! }
type User implements Node { id: Int!, name: String }
type Query { user(id: Int!): User, users: [User!]! }
enum Role { ADMIN, MEMBER }
input Filter { role: Role = ADMIN, limit: Int = 10 }
directive @cached(ttl: Int = 60) on FIELD_DEFINITION
`, `
fragment Basic on Node { id }
query GetUser($id: Int!) { user(id: $id) { ... Basic, name } }
`)

	var buf bytes.Buffer
	require.NoError(t, jsonschema.Encode(&buf, prog))

	decoded, err := jsonschema.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	if diff := cmp.Diff(prog, decoded, compareOpts()...); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	prog := mustCompile(t, `type A { b: B } type B { a: A }`, "")

	var first, second bytes.Buffer
	require.NoError(t, jsonschema.Encode(&first, prog))
	require.NoError(t, jsonschema.Encode(&second, prog))

	require.Equal(t, first.String(), second.String())
}

func TestEncodeShapeHasCrossReferenceSiblingPair(t *testing.T) {
	prog := mustCompile(t, `type A { b: B } type B { a: A }`, "")

	var buf bytes.Buffer
	require.NoError(t, jsonschema.Encode(&buf, prog))

	out := buf.String()
	require.Contains(t, out, `"$ref":"#/server/objects/B"`)
	require.Contains(t, out, `"_type":"ObjectType"`)
}

func TestDecodePreservesFieldOrder(t *testing.T) {
	prog := mustCompile(t, `type Query { z: Int, a: Int, m: Int }`, "")

	var buf bytes.Buffer
	require.NoError(t, jsonschema.Encode(&buf, prog))

	decoded, err := jsonschema.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	q, ok := decoded.Server.Objects.Get("Query")
	require.True(t, ok)
	require.Equal(t, []string{"z", "a", "m"}, q.Fields.Keys())
}
