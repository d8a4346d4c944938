package jsonschema

import "github.com/botobag/artemis/jsonwriter"

// obj and arr add comma bookkeeping on top of jsonwriter.Stream's bare
// Write{Object,Array}{Start,End} primitives (spec.md §4.8: "a streaming
// writer"; grounded on the manual WriteMore-before-next-field style
// botobag-artemis/graphql/executor/result_marshaler.go uses throughout).
type obj struct {
	s     *jsonwriter.Stream
	wrote bool
}

func newObj(s *jsonwriter.Stream) *obj {
	s.WriteObjectStart()
	return &obj{s: s}
}

// field writes the separating comma (if this isn't the first field) and
// the field name, leaving the caller to write the value.
func (o *obj) field(name string) {
	if o.wrote {
		o.s.WriteMore()
	}
	o.wrote = true
	o.s.WriteObjectField(name)
}

func (o *obj) close() {
	o.s.WriteObjectEnd()
}

type arr struct {
	s     *jsonwriter.Stream
	wrote bool
}

func newArr(s *jsonwriter.Stream) *arr {
	s.WriteArrayStart()
	return &arr{s: s}
}

// next writes the separating comma (if this isn't the first element);
// the caller writes the element value immediately after.
func (a *arr) next() {
	if a.wrote {
		a.s.WriteMore()
	}
	a.wrote = true
}

func (a *arr) close() {
	a.s.WriteArrayEnd()
}
