package stream

import "regexp"

// jsonNumber matches exactly the JSON number grammar, so converted
// literals can be emitted verbatim
var jsonNumber = regexp.MustCompile(`^-?(?:0|[1-9][0-9]*)(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?$`)

// AutoPrimitive converts string values that read as JSON numbers or
// booleans into real numbers and booleans. All other tokens pass
// through untouched; field names are never converted.
type AutoPrimitive struct {
	out Target
}

// NewAutoPrimitive wraps target with primitive conversion
func NewAutoPrimitive(target Target) *AutoPrimitive {
	return &AutoPrimitive{out: target}
}

// Value converts eligible string values and forwards the result
func (p *AutoPrimitive) Value(value Value) error {
	if value.Kind == ValueString {
		switch {
		case value.Str == "true":
			value = Bool(true)
		case value.Str == "false":
			value = Bool(false)
		case jsonNumber.MatchString(value.Str):
			value = Number(value.Str)
		}
	}
	return p.out.Value(value)
}

// Name forwards a field name
func (p *AutoPrimitive) Name(name string) error {
	return p.out.Name(name)
}

// StartObject forwards an object open
func (p *AutoPrimitive) StartObject() error {
	return p.out.StartObject()
}

// EndObject forwards an object close
func (p *AutoPrimitive) EndObject() error {
	return p.out.EndObject()
}

// StartArray forwards an array open
func (p *AutoPrimitive) StartArray() error {
	return p.out.StartArray()
}

// EndArray forwards an array close
func (p *AutoPrimitive) EndArray() error {
	return p.out.EndArray()
}

// Flush flushes the wrapped target
func (p *AutoPrimitive) Flush() error {
	return p.out.Flush()
}

// Close closes the wrapped target
func (p *AutoPrimitive) Close() error {
	return p.out.Close()
}
