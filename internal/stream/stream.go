package stream

// ValueKind discriminates JSON scalar values
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueString
	ValueNumber
	ValueBool
)

// Value is a JSON scalar. Number values carry the literal text so that
// precision is never lost between layers.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
}

// Null returns the JSON null value
func Null() Value {
	return Value{Kind: ValueNull}
}

// String returns a JSON string value
func String(s string) Value {
	return Value{Kind: ValueString, Str: s}
}

// Number returns a JSON number value holding the given literal
func Number(literal string) Value {
	return Value{Kind: ValueNumber, Str: literal}
}

// Bool returns a JSON boolean value
func Bool(b bool) Value {
	return Value{Kind: ValueBool, Bool: b}
}

// TokenKind identifies one token in a JSON token stream
type TokenKind int

const (
	TokenNone TokenKind = iota
	TokenStartObject
	TokenEndObject
	TokenStartArray
	TokenEndArray
	TokenName
	TokenValue
)

// String returns a readable token kind name
func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "none"
	case TokenStartObject:
		return "start object"
	case TokenEndObject:
		return "end object"
	case TokenStartArray:
		return "start array"
	case TokenEndArray:
		return "end array"
	case TokenName:
		return "name"
	case TokenValue:
		return "value"
	}
	return "unknown"
}

// Token is one recorded JSON stream token. Name is set for TokenName
// tokens, Value for TokenValue tokens.
type Token struct {
	Kind  TokenKind
	Name  string
	Value Value
}

// Target consumes a JSON token stream. Callers must produce a
// well-formed sequence: every Name is followed by exactly one value or
// container open before the next Name or close at the same depth, and
// container opens and closes nest properly. Targets may assume this
// holds and are not required to diagnose violations.
type Target interface {
	Name(name string) error
	Value(value Value) error
	StartObject() error
	EndObject() error
	StartArray() error
	EndArray() error
	Flush() error
	Close() error
}

// Source produces a JSON token stream, the pull-side peer of Target.
// Peek reports the kind of the next token without consuming it,
// returning TokenNone once the stream is exhausted. The remaining
// methods consume one token of the matching kind and fail when the
// next token is of a different kind.
type Source interface {
	Peek() (TokenKind, error)
	Name() (string, error)
	Value() (Value, error)
	StartObject() error
	EndObject() error
	StartArray() error
	EndArray() error
	Close() error
}
