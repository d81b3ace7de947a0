package stream

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/mcncl/xmljson/internal/errors"
)

type pendingOpen int

const (
	pendingNone pendingOpen = iota
	pendingObject
	pendingArray
)

// sinkScope tracks one materialized container in the output
type sinkScope struct {
	isArray   bool
	members   int
	afterName bool
}

// JSONTarget writes the token stream as JSON text through a jsoniter
// stream. Container opens are deferred by one token so that empty
// containers come out as {} and [] even in indented mode, and commas
// are placed by counting members per open container since the
// underlying stream is not self-delimiting.
type JSONTarget struct {
	stream  *jsoniter.Stream
	stack   []sinkScope
	pending pendingOpen
}

// NewJSONTarget creates a JSON writing target. With pretty set, output
// is indented with two spaces per level; otherwise it is compact.
func NewJSONTarget(w io.Writer, pretty bool) *JSONTarget {
	indent := 0
	if pretty {
		indent = 2
	}
	cfg := jsoniter.Config{IndentionStep: indent}.Froze()
	return &JSONTarget{stream: jsoniter.NewStream(cfg, w, 512)}
}

// flushPending materializes a deferred container open. The open is a
// value in its enclosing container, so the separator comes first.
func (t *JSONTarget) flushPending() {
	switch t.pending {
	case pendingObject:
		t.valueSeparator()
		t.stream.WriteObjectStart()
		t.stack = append(t.stack, sinkScope{})
	case pendingArray:
		t.valueSeparator()
		t.stream.WriteArrayStart()
		t.stack = append(t.stack, sinkScope{isArray: true})
	}
	t.pending = pendingNone
}

// valueSeparator prepares the stream for a value token. In an array a
// value is a new member; in an object the separator was already placed
// with the field name.
func (t *JSONTarget) valueSeparator() {
	if len(t.stack) == 0 {
		return
	}
	top := &t.stack[len(t.stack)-1]
	if top.isArray {
		if top.members > 0 {
			t.stream.WriteMore()
		}
		top.members++
	} else {
		top.afterName = false
	}
}

// Name writes a field name
func (t *JSONTarget) Name(name string) error {
	t.flushPending()
	top := &t.stack[len(t.stack)-1]
	if top.members > 0 {
		t.stream.WriteMore()
	}
	top.members++
	top.afterName = true
	t.stream.WriteObjectField(name)
	return t.err()
}

// Value writes a scalar value
func (t *JSONTarget) Value(value Value) error {
	t.flushPending()
	t.valueSeparator()
	switch value.Kind {
	case ValueNull:
		t.stream.WriteNil()
	case ValueString:
		t.stream.WriteString(value.Str)
	case ValueNumber:
		t.stream.WriteRaw(value.Str)
	case ValueBool:
		t.stream.WriteBool(value.Bool)
	}
	return t.err()
}

// StartObject opens an object. The write is deferred until the first
// member token arrives.
func (t *JSONTarget) StartObject() error {
	t.flushPending()
	t.pending = pendingObject
	return t.err()
}

// EndObject closes the current object
func (t *JSONTarget) EndObject() error {
	if t.pending == pendingObject {
		t.valueSeparator()
		t.stream.WriteEmptyObject()
		t.pending = pendingNone
	} else {
		t.stack = t.stack[:len(t.stack)-1]
		t.stream.WriteObjectEnd()
	}
	return t.err()
}

// StartArray opens an array. The write is deferred until the first
// member token arrives.
func (t *JSONTarget) StartArray() error {
	t.flushPending()
	t.pending = pendingArray
	return t.err()
}

// EndArray closes the current array
func (t *JSONTarget) EndArray() error {
	if t.pending == pendingArray {
		t.valueSeparator()
		t.stream.WriteEmptyArray()
		t.pending = pendingNone
	} else {
		t.stack = t.stack[:len(t.stack)-1]
		t.stream.WriteArrayEnd()
	}
	return t.err()
}

// Flush writes buffered output to the underlying writer
func (t *JSONTarget) Flush() error {
	if err := t.stream.Flush(); err != nil {
		return errors.NewSinkError("failed to flush JSON output", err)
	}
	return nil
}

// Close flushes remaining output. The underlying writer is not closed;
// it is owned by the caller.
func (t *JSONTarget) Close() error {
	return t.Flush()
}

func (t *JSONTarget) err() error {
	if t.stream.Error != nil {
		return errors.NewSinkError("failed to write JSON output", t.stream.Error)
	}
	return nil
}
