package writer

import (
	"io"

	"github.com/mcncl/xmljson/internal/config"
	"github.com/mcncl/xmljson/internal/stream"
)

// NewFromConfig builds a ready-to-use Writer for the given output and
// configuration. The jsoniter sink is wrapped by the configured
// decorators from the inside out: rename-keys, auto-primitive,
// remove-root, auto-array. The engine writes into the outermost layer,
// so the heuristic sees tokens first and the sink sees them last.
func NewFromConfig(w io.Writer, cfg *config.Config) (*Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var target stream.Target = stream.NewJSONTarget(w, cfg.PrettyPrint)
	style, err := stream.ParseKeyStyle(cfg.KeyStyle)
	if err != nil {
		return nil, err
	}
	if style != stream.KeyStyleNone || len(cfg.KeyOverrides) > 0 {
		target = stream.NewRenameKeys(target, style, cfg.KeyOverrides)
	}
	if cfg.AutoPrimitive {
		target = stream.NewAutoPrimitive(target)
	}
	if cfg.VirtualRoot != "" {
		target = stream.NewRemoveRoot(target, cfg.VirtualRoot)
	}
	if cfg.AutoArray {
		target = stream.NewAutoArray(target)
	}
	return New(target, cfg.MultiplePI), nil
}
