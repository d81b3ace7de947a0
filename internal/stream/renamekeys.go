package stream

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/xmljson/internal/errors"
)

// KeyStyle names a field naming convention for output keys
type KeyStyle string

const (
	KeyStyleNone  KeyStyle = "none"
	KeyStyleSnake KeyStyle = "snake"
	KeyStyleCamel KeyStyle = "camel"
	KeyStyleKebab KeyStyle = "kebab"
)

// ParseKeyStyle validates a key style name. The empty string means
// none.
func ParseKeyStyle(s string) (KeyStyle, error) {
	switch KeyStyle(s) {
	case "", KeyStyleNone:
		return KeyStyleNone, nil
	case KeyStyleSnake, KeyStyleCamel, KeyStyleKebab:
		return KeyStyle(s), nil
	}
	return KeyStyleNone, errors.NewConfigurationError(fmt.Sprintf("invalid key style %q", s), errors.ErrInvalidKeyStyle)
}

// RenameKeys rewrites object field names through an explicit override
// map and a key style. Attribute keys (prefixed with @) and the $ text
// key are structural markers and are never renamed.
type RenameKeys struct {
	out       Target
	style     KeyStyle
	overrides map[string]string
}

// NewRenameKeys wraps target with field renaming. overrides may be nil.
func NewRenameKeys(target Target, style KeyStyle, overrides map[string]string) *RenameKeys {
	return &RenameKeys{out: target, style: style, overrides: overrides}
}

func (k *RenameKeys) rename(name string) string {
	if strings.HasPrefix(name, "@") || name == "$" {
		return name
	}
	if mapped, ok := k.overrides[name]; ok {
		return mapped
	}
	switch k.style {
	case KeyStyleSnake:
		return strcase.ToSnake(name)
	case KeyStyleCamel:
		return strcase.ToLowerCamel(name)
	case KeyStyleKebab:
		return strcase.ToKebab(name)
	}
	return name
}

// Name forwards the renamed field name
func (k *RenameKeys) Name(name string) error {
	return k.out.Name(k.rename(name))
}

// Value forwards a scalar value
func (k *RenameKeys) Value(value Value) error {
	return k.out.Value(value)
}

// StartObject forwards an object open
func (k *RenameKeys) StartObject() error {
	return k.out.StartObject()
}

// EndObject forwards an object close
func (k *RenameKeys) EndObject() error {
	return k.out.EndObject()
}

// StartArray forwards an array open
func (k *RenameKeys) StartArray() error {
	return k.out.StartArray()
}

// EndArray forwards an array close
func (k *RenameKeys) EndArray() error {
	return k.out.EndArray()
}

// Flush flushes the wrapped target
func (k *RenameKeys) Flush() error {
	return k.out.Flush()
}

// Close closes the wrapped target
func (k *RenameKeys) Close() error {
	return k.out.Close()
}
