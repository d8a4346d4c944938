package jsonschema

import (
	"encoding/json"
	"fmt"
	"io"
)

// node is a parsed JSON value that keeps object key order, unlike
// encoding/json's map[string]interface{} (spec.md §5: "schema-map
// insertions and emitted JSON keys preserve source discovery order").
// Decode needs that order preserved on the way back in, since the
// OrderedMap each field/implements/items/arguments/fragments table decodes
// into is itself order-sensitive.
type node struct {
	kind   nodeKind
	str    string
	num    float64
	boolean bool
	array  []*node
	// object preserves insertion order in keys; values mirrors it by index.
	keys   []string
	values []*node
}

type nodeKind int

const (
	kindNull nodeKind = iota
	kindString
	kindNumber
	kindBool
	kindArray
	kindObject
)

// parseNode decodes a single JSON value from dec, preserving object key
// order via the token stream instead of encoding/json's unordered map.
func parseNode(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseNodeFromToken(dec, tok)
}

func parseNodeFromToken(dec *json.Decoder, tok json.Token) (*node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			n := &node{kind: kindObject}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("jsonschema: expected object key, got %v", keyTok)
				}
				val, err := parseNode(dec)
				if err != nil {
					return nil, err
				}
				n.keys = append(n.keys, key)
				n.values = append(n.values, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return n, nil
		case '[':
			n := &node{kind: kindArray}
			for dec.More() {
				val, err := parseNode(dec)
				if err != nil {
					return nil, err
				}
				n.array = append(n.array, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return n, nil
		default:
			return nil, fmt.Errorf("jsonschema: unexpected delimiter %v", t)
		}
	case string:
		return &node{kind: kindString, str: t}, nil
	case float64:
		return &node{kind: kindNumber, num: t}, nil
	case bool:
		return &node{kind: kindBool, boolean: t}, nil
	case nil:
		return &node{kind: kindNull}, nil
	default:
		return nil, fmt.Errorf("jsonschema: unexpected token %v", tok)
	}
}

// decodeDocument reads exactly one top-level JSON value from r.
func decodeDocument(r io.Reader) (*node, error) {
	dec := json.NewDecoder(r)
	return parseNode(dec)
}

func (n *node) isNull() bool {
	return n == nil || n.kind == kindNull
}

func (n *node) field(key string) *node {
	if n == nil || n.kind != kindObject {
		return nil
	}
	for i, k := range n.keys {
		if k == key {
			return n.values[i]
		}
	}
	return nil
}

// each visits an object's entries in source order.
func (n *node) each(fn func(key string, val *node)) {
	if n == nil || n.kind != kindObject {
		return
	}
	for i, k := range n.keys {
		fn(k, n.values[i])
	}
}

func (n *node) items() []*node {
	if n == nil || n.kind != kindArray {
		return nil
	}
	return n.array
}

func (n *node) asString() string {
	if n == nil {
		return ""
	}
	return n.str
}

func (n *node) asBool() bool {
	if n == nil {
		return false
	}
	return n.boolean
}

func (n *node) asInt64() int64 {
	if n == nil {
		return 0
	}
	return int64(n.num)
}

func (n *node) asFloat64() float64 {
	if n == nil {
		return 0
	}
	return n.num
}
