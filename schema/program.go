package schema

// ServerSchema is the read-only view over a registry's SDL-declared
// surface: every named type, every directive, and the three root
// operation tables (spec.md §3.3, §4.3).
type ServerSchema struct {
	Scalars    *OrderedMap[*Scalar]
	Enums      *OrderedMap[*EnumDef]
	Inputs     *OrderedMap[*InputType]
	Objects    *OrderedMap[*ObjectType]
	Interfaces *OrderedMap[*Interface]
	Unions     *OrderedMap[*Union]
	Directives *OrderedMap[*ServerDirective]

	Queries       *OrderedMap[*FieldDef[ObjectFieldSpec]]
	Mutations     *OrderedMap[*FieldDef[ObjectFieldSpec]]
	Subscriptions *OrderedMap[*FieldDef[ObjectFieldSpec]]
}

// ClientSchema is the read-only view over a registry's operation-dialect
// surface: every named fragment, every client directive, and every parsed
// operation (spec.md §3.4, §4.5).
type ClientSchema struct {
	Fragments  *OrderedMap[*Fragment]
	Directives *OrderedMap[*ClientDirective]
	Operations []*Operation
}

// ServerSchema returns the server-side view of a resolved registry.
func (r *Registry) ServerSchema() *ServerSchema {
	return &ServerSchema{
		Scalars: r.Scalars, Enums: r.Enums, Inputs: r.Inputs, Objects: r.Objects,
		Interfaces: r.Interfaces, Unions: r.Unions, Directives: r.ServerDirectives,
		Queries: r.Queries, Mutations: r.Mutations, Subscriptions: r.Subscriptions,
	}
}

// ClientSchema returns the client-side view of a resolved registry.
func (r *Registry) ClientSchema() *ClientSchema {
	return &ClientSchema{
		Fragments: r.Fragments, Directives: r.ClientDirectives, Operations: r.Operations,
	}
}

// Program pairs a server schema with the client schema resolved against
// it: the top-level value a caller gets back from compiling a full
// (server-source-list, client-source-list) pair (spec.md §5).
type Program struct {
	Server *ServerSchema
	Client *ClientSchema
}

// ServerUseSet is the set of server-declared names reachable from a
// client schema: which object, interface, scalar, enum, union, query,
// mutation and subscription names the operations and fragments actually
// exercise. Grounded on the `uses/uses.*` reachability pass of the
// compiler this project learns its shape from, which a tool can consult
// to report dead schema surface or to generate a minimal server stub.
type ServerUseSet struct {
	Objects       map[string]bool
	Interfaces    map[string]bool
	Scalars       map[string]bool
	Enums         map[string]bool
	Unions        map[string]bool
	Inputs        map[string]bool
	Queries       map[string]bool
	Mutations     map[string]bool
	Subscriptions map[string]bool
}

// NewServerUseSet returns an empty ServerUseSet with every table
// allocated.
func NewServerUseSet() *ServerUseSet {
	return &ServerUseSet{
		Objects: map[string]bool{}, Interfaces: map[string]bool{}, Scalars: map[string]bool{},
		Enums: map[string]bool{}, Unions: map[string]bool{}, Inputs: map[string]bool{},
		Queries: map[string]bool{}, Mutations: map[string]bool{}, Subscriptions: map[string]bool{},
	}
}

// ComputeServerUseSet walks every fragment and operation in client via a
// Visitor and records which server-declared names they reach, including
// input types reached transitively through callable-field arguments and
// operation parameters. The three root-operation tables are recorded by
// matching each operation's resolved root type back against the server
// schema's own Query/Mutation/Subscription object.
func ComputeServerUseSet(client *ClientSchema, server *ServerSchema) *ServerUseSet {
	use := NewServerUseSet()

	v := &Visitor{
		ObjectTypeSpec: func(spec ObjectTypeSpec) {
			switch t := spec.(type) {
			case *ObjectType:
				use.Objects[t.Name] = true
			case *Interface:
				use.Interfaces[t.Name] = true
			case *Scalar:
				use.Scalars[t.Name] = true
			case *EnumDef:
				use.Enums[t.Name] = true
			case *Union:
				use.Unions[t.Name] = true
			}
		},
		InputTypeSpec: func(spec InputTypeSpec) {
			switch t := spec.(type) {
			case *InputType:
				use.Inputs[t.Name] = true
			case *Scalar:
				use.Scalars[t.Name] = true
			case *EnumDef:
				use.Enums[t.Name] = true
			}
		},
	}
	for _, name := range client.Fragments.Keys() {
		f, _ := client.Fragments.Get(name)
		v.visitFragment(f)
	}
	for _, op := range client.Operations {
		v.visitOperation(op)

		var rootName string
		switch op.Kind {
		case Mutation:
			rootName = "Mutation"
		case Subscription:
			rootName = "Subscription"
		default:
			rootName = "Query"
		}
		var root ObjectTypeSpec
		switch s := op.Spec.(type) {
		case *ObjectFragmentSpec:
			root = s.Root
		case *UnionFragmentSpec:
			root = s.Root
		}
		if root != nil && root.TypeName() == rootName {
			recordRootUse(op, use)
		}
	}
	return use
}

// recordRootUse records, for a single operation resolved against a root
// object, which of that root's own top-level fields it selects, under
// the table matching the operation's kind.
func recordRootUse(op *Operation, use *ServerUseSet) {
	obj, ok := op.Spec.(*ObjectFragmentSpec)
	if !ok {
		return
	}
	table := use.Queries
	switch op.Kind {
	case Mutation:
		table = use.Mutations
	case Subscription:
		table = use.Subscriptions
	}
	for _, sel := range obj.Selections {
		if fs, ok := sel.(*FieldSelection); ok {
			table[fs.Field.Name] = true
		}
	}
}
