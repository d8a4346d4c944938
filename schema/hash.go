package schema

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// hashString is the "platform string-hash" spec.md §4.6 calls for applied
// to a constructed hash-input buffer: FNV-1a over the buffer's bytes,
// printed as lowercase hex. Nothing in the example pack depends on a
// dedicated hashing library, so this is a deliberate stdlib fallback
// (documented in DESIGN.md).
func hashString(s string) string {
	h := fnv.New64a()
	h.Write([]byte(s))
	return fmt.Sprintf("%016x", h.Sum64())
}

// sortedConcat implements the "for a sequence, sort the serialized
// elements in descending lexicographic order, then concatenate" rule.
func sortedConcat(elems []string) string {
	sorted := append([]string(nil), elems...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	return strings.Join(sorted, "")
}

// sortedConcatByKey implements the "for a map, sort keys in descending
// lexicographic order and concatenate serialize(v_i) for each value" rule.
// The key itself is never embedded in the output: wherever a name is
// semantically significant (an argument reference, a parameter's own
// declaration) the relevant serialize* function already embeds it
// directly, so two differently-named entries with identical values always
// serialize identically here — by construction that can only happen when
// no surviving reference distinguishes them.
func sortedConcatByKey(keys []string, serialize func(key string) string) string {
	sorted := append([]string(nil), keys...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	var b strings.Builder
	for _, k := range sorted {
		b.WriteString(serialize(k))
	}
	return b.String()
}

// serializeLiteral implements the "Argument literal" rule: `"l"` plus a
// tag for the literal kind and the textual value, with an `"e"` prefix for
// enum values.
func serializeLiteral(lit Literal) string {
	switch lit.Kind {
	case LitInt:
		return fmt.Sprintf("li%d", lit.Int)
	case LitFloat:
		return fmt.Sprintf("lf%g", lit.Float)
	case LitString:
		return "ls" + lit.Str
	case LitBool:
		return fmt.Sprintf("lb%t", lit.Bool)
	case LitEnum:
		return "le" + lit.Str
	default:
		return "l?"
	}
}

func serializeArrayLiteral(arr ArrayLiteral) string {
	elems := make([]string, len(arr.Values))
	for i, v := range arr.Values {
		elems[i] = serializeLiteral(v)
	}
	return "la" + sortedConcat(elems)
}

// serializeArgumentValue implements the "Argument literal" / "Argument
// reference" rules.
func serializeArgumentValue(v ArgumentValue) string {
	switch a := v.(type) {
	case *ArgumentLiteralValue:
		return serializeLiteral(a.Value)
	case *ArgumentRefValue:
		return "r" + a.ParameterName
	default:
		return ""
	}
}

// serializeArguments hashes a field selection's bound arguments as a map
// keyed by argument name.
func serializeArguments(args []ResolvedArgument) string {
	keys := make([]string, len(args))
	byName := make(map[string]ArgumentValue, len(args))
	for i, a := range args {
		keys[i] = a.Name
		byName[a.Name] = a.Value
	}
	return sortedConcatByKey(keys, func(key string) string {
		return serializeArgumentValue(byName[key])
	})
}

// serializeSelection implements the per-variant rules for a single
// resolved Selection.
func serializeSelection(sel Selection) string {
	switch s := sel.(type) {
	case *FieldSelection:
		aliasPart := ""
		if s.Alias != "" && s.Alias != s.Field.Name {
			aliasPart = s.Alias
		}
		child := ""
		if s.Nested != nil {
			child = serializeFragmentSpec(s.Nested)
		}
		return "f" + s.Field.Name + aliasPart + serializeArguments(s.Arguments) + child
	case *TypenameField:
		return "t" + s.Alias
	case *SpreadSelection:
		return "s" + s.Fragment.Name
	case *ObjectConditionalSpreadSelection:
		return "oc" + s.Type.Name + serializeFragmentSpec(s.Nested)
	case *UnionConditionalSpreadSelection:
		// spec.md §4.6 defines the tag scheme for object conditional
		// spreads but is silent on union conditional spreads (a sub-union
		// restricted to a parent union, spec.md §3.3); "uc" extends the
		// same pattern symmetrically.
		return "uc" + s.Type.Name + serializeFragmentSpec(s.Nested)
	default:
		return ""
	}
}

// serializeFragmentSpec implements the "Object fragment spec" / "Union
// fragment spec" rules.
func serializeFragmentSpec(spec FragmentSpec) string {
	switch s := spec.(type) {
	case *ObjectFragmentSpec:
		tag := "ob"
		if _, ok := s.Root.(*Interface); ok {
			tag = "oi"
		}
		elems := make([]string, len(s.Selections))
		for i, sel := range s.Selections {
			elems[i] = serializeSelection(sel)
		}
		return tag + s.Root.TypeName() + sortedConcat(elems)
	case *UnionFragmentSpec:
		elems := make([]string, len(s.Selections))
		for i, sel := range s.Selections {
			elems[i] = serializeSelection(sel)
		}
		return "u" + s.Root.Name + sortedConcat(elems)
	default:
		return ""
	}
}

// serializeInputFieldDef implements the "Input field spec (for
// parameters)" rule: `"l<nullable>"` or `"a<nullable>"` prefix, the referenced type
// name, then the default value (if any) serialized the same way a literal
// argument would be. The parameter's own name is deliberately NOT part of
// this serialization — wherever a parameter's name carries meaning, it is
// already captured by the "r"+name tag an ArgumentRefValue contributes at
// its use site, so the parameter-definition hash only needs to capture
// each parameter's type shape (spec.md §8.1 property 5: stable under
// reordering of parameter declarations).
func serializeInputFieldDef(def *FieldDef[InputFieldSpec]) string {
	switch spec := def.Spec.(type) {
	case *LiteralInputFieldSpec:
		s := fmt.Sprintf("l%t%s", def.Nullable, spec.Type.TypeName())
		if spec.DefaultValue != nil {
			s += serializeLiteral(*spec.DefaultValue)
		}
		return s
	case *ArrayInputFieldSpec:
		s := fmt.Sprintf("a%t%s", def.Nullable, spec.Type.TypeName())
		if spec.DefaultValue != nil {
			s += serializeArrayLiteral(*spec.DefaultValue)
		}
		return s
	default:
		return ""
	}
}

func kindName(k OperationKind) string {
	switch k {
	case Mutation:
		return "mutation"
	case Subscription:
		return "subscription"
	default:
		return "query"
	}
}

// hashOperationParameters implements "Operation hash seed = kind_name +
// operation.name + sorted param-defs".
func hashOperationParameters(kind OperationKind, name string, params *OrderedMap[*FieldDef[InputFieldSpec]]) string {
	keys := params.Keys()
	sortedDefs := sortedConcatByKey(keys, func(key string) string {
		def, _ := params.Get(key)
		return serializeInputFieldDef(def)
	})
	return hashString(kindName(kind) + name + sortedDefs)
}

// transitiveFragments returns, in breadth-first discovery order, every
// fragment transitively reachable from spec's own spread selections, each
// appearing exactly once even if spread multiple times (spec.md §4.6).
func transitiveFragments(spec FragmentSpec) []*Fragment {
	seen := map[string]bool{}
	var order []*Fragment
	queue := directSpreads(spec)
	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		order = append(order, f)
		queue = append(queue, directSpreads(f.Spec)...)
	}
	return order
}

// directSpreads collects the fragments directly spread (not through a
// further spread) anywhere within spec's selection tree, including inside
// nested field selections and conditional spreads.
func directSpreads(spec FragmentSpec) []*Fragment {
	var out []*Fragment
	var walkSelections func([]Selection)
	walkSelections = func(sels []Selection) {
		for _, sel := range sels {
			switch s := sel.(type) {
			case *SpreadSelection:
				out = append(out, s.Fragment)
			case *FieldSelection:
				if s.Nested != nil {
					walkSelections(selectionsOf(s.Nested))
				}
			case *ObjectConditionalSpreadSelection:
				walkSelections(selectionsOf(s.Nested))
			case *UnionConditionalSpreadSelection:
				walkSelections(selectionsOf(s.Nested))
			}
		}
	}
	walkSelections(selectionsOf(spec))
	return out
}

func selectionsOf(spec FragmentSpec) []Selection {
	switch s := spec.(type) {
	case *ObjectFragmentSpec:
		return s.Selections
	case *UnionFragmentSpec:
		return s.Selections
	default:
		return nil
	}
}

// hashFragmentSpecClosure computes the content hash shared by both
// Fragment.Hash and Operation.FragmentHash: spec's own serialization,
// followed by the hash-inputs of every transitively spread fragment in
// breadth-first order, each contributing exactly once (spec.md §4.6).
func hashFragmentSpecClosure(spec FragmentSpec) string {
	var b strings.Builder
	b.WriteString(serializeFragmentSpec(spec))
	for _, f := range transitiveFragments(spec) {
		b.WriteString(serializeFragmentSpec(f.Spec))
	}
	return hashString(b.String())
}

// usedFragmentNames returns the names of every fragment transitively
// spread from spec, in breadth-first discovery order, for populating
// Operation.UsedFragments.
func usedFragmentNames(spec FragmentSpec) []string {
	fragments := transitiveFragments(spec)
	names := make([]string, len(fragments))
	for i, f := range fragments {
		names[i] = f.Name
	}
	return names
}
