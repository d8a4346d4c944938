package schema

// ArgumentValue is the sum `literal | variable-reference` an argument
// resolves to once bound against the enclosing operation's parameters
// (spec.md §3.4).
type ArgumentValue interface {
	isArgumentValue()
}

// ArgumentLiteralValue is an argument bound to an inline constant.
type ArgumentLiteralValue struct {
	Value Literal
}

func (*ArgumentLiteralValue) isArgumentValue() {}

// ArgumentRefValue is an argument bound to one of the operation's own
// declared parameters, by name.
type ArgumentRefValue struct {
	ParameterName string
}

func (*ArgumentRefValue) isArgumentValue() {}

// ResolvedArgument is a field-selection argument after binding: its bound
// value plus the callable's own declaration for that argument, so a
// reference value can later be checked for type compatibility against the
// operation parameter it names (spec.md §3.3 FieldSelectionArgument).
type ResolvedArgument struct {
	Name         string
	Value        ArgumentValue
	DeclaredType *FieldDef[InputFieldSpec]
}

// TypenameField models the built-in `__typename` meta-field, which every
// object/interface/union context accepts without a declaration (spec.md
// §4.5).
type TypenameField struct {
	Alias string
}

// FieldSelection is a resolved selection of a declared field, possibly
// aliased, with its arguments bound and (if the field's type is itself
// object-like) a nested selection spec.
type FieldSelection struct {
	Alias      string
	Field      *FieldDef[ObjectFieldSpec]
	Arguments  []ResolvedArgument
	Directives []*ClientDirectiveInvocation
	Nested     FragmentSpec // nil for scalar/enum leaf fields
}

// SpreadSelection is a resolved named-fragment spread: the fragment it
// refers to, already checked for type compatibility with its context.
type SpreadSelection struct {
	Fragment *Fragment
}

// ObjectConditionalSpreadSelection is a resolved `... on TypeName { … }`
// inside a union context, where TypeName names one of the union's member
// object types. Conditional spreads in object or interface contexts are
// rejected during resolution.
type ObjectConditionalSpreadSelection struct {
	Type   *ObjectType
	Nested FragmentSpec
}

// UnionConditionalSpreadSelection is a resolved `... on TypeName { … }`
// inside a union context, where TypeName names a sub-union whose every
// member also belongs to the enclosing union (spec.md §3.3, §4.5).
type UnionConditionalSpreadSelection struct {
	Type   *Union
	Nested FragmentSpec
}

// Selection is the sum of every resolved selection kind a selection set
// may contain (spec.md §3.4).
type Selection interface {
	isSelection()
}

func (*TypenameField) isSelection()                    {}
func (*FieldSelection) isSelection()                   {}
func (*SpreadSelection) isSelection()                  {}
func (*ObjectConditionalSpreadSelection) isSelection() {}
func (*UnionConditionalSpreadSelection) isSelection()  {}

// FragmentSpec is the sum of the shapes a selection set's meaning can
// take once bound to its root type: a plain object/interface selection
// set, or a union's set of conditional member selections (spec.md §3.4,
// "object fragment spec" vs "union fragment spec").
type FragmentSpec interface {
	isFragmentSpec()
}

// ObjectFragmentSpec is the selection set resolved against an object or
// interface root type.
type ObjectFragmentSpec struct {
	Root       ObjectTypeSpec // *ObjectType or *Interface
	Selections []Selection
}

func (*ObjectFragmentSpec) isFragmentSpec() {}

// UnionFragmentSpec is the selection set resolved against a union root
// type: every top-level selection is __typename, a compatible fragment
// spread, or a conditional spread onto one of the union's members or onto
// a sub-union of it; plain fields are rejected.
type UnionFragmentSpec struct {
	Root       *Union
	Selections []Selection
}

func (*UnionFragmentSpec) isFragmentSpec() {}

// Fragment is a named fragment after resolution: its declared root type,
// resolved body, source text (for re-emission) and content hash (spec.md
// §4.6). RootType is bound in pass 1 (before any selection is resolved),
// so fragment-spread compatibility checks (§4.5) never need a fragment's
// body to be fully resolved first.
type Fragment struct {
	Name       string
	RootType   ObjectTypeSpec
	Spec       FragmentSpec
	SourceText string
	Hash       string
}

// Operation is a resolved query/mutation/subscription: its bound
// parameter list, resolved body, directive invocations, source text and
// the two hashes used to detect client/server drift (spec.md §4.6).
type Operation struct {
	Kind           OperationKind
	Name           string
	Parameters     *OrderedMap[*FieldDef[InputFieldSpec]]
	Spec           FragmentSpec
	Directives     []*ClientDirectiveInvocation
	SourceText     string
	ParametersHash string
	FragmentHash   string
	UsedFragments  []string
}

// OperationKind mirrors ast.OperationKind in the resolved domain so the
// schema package does not need to import ast for this one enum.
type OperationKind int

const (
	Query OperationKind = iota
	Mutation
	Subscription
)
