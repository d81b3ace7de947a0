package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/xmljson/internal/errors"
	"github.com/mcncl/xmljson/internal/stream"
)

// Option names accepted by Set and Get
const (
	OptionAutoArray        = "autoArray"
	OptionMultiplePI       = "multiplePI"
	OptionVirtualRoot      = "virtualRoot"
	OptionPrettyPrint      = "prettyPrint"
	OptionAutoPrimitive    = "autoPrimitive"
	OptionKeyStyle         = "keyStyle"
	OptionRepairNamespaces = "repairNamespaces"
)

// Config represents the complete configuration for a conversion
type Config struct {
	AutoArray        bool              `yaml:"auto_array"`
	MultiplePI       bool              `yaml:"multiple_pi"`
	VirtualRoot      string            `yaml:"virtual_root"`
	PrettyPrint      bool              `yaml:"pretty_print"`
	AutoPrimitive    bool              `yaml:"auto_primitive"`
	KeyStyle         string            `yaml:"key_style"`
	KeyOverrides     map[string]string `yaml:"key_overrides"`
	RepairNamespaces bool              `yaml:"repair_namespaces"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		AutoArray:     false,
		MultiplePI:    true,
		VirtualRoot:   "",
		PrettyPrint:   false,
		AutoPrimitive: false,
		KeyStyle:      "",
		KeyOverrides:  make(map[string]string),
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".xmljson.yml", ".xmljson.yaml", "xmljson.yml", "xmljson.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks the configuration for unsupported settings
func (c *Config) Validate() error {
	if c.RepairNamespaces {
		return errors.NewConfigurationError("namespace repair is not supported", errors.ErrNamespaceRepair)
	}
	if _, err := stream.ParseKeyStyle(c.KeyStyle); err != nil {
		return err
	}
	return nil
}

// Set assigns an option by name. Unknown names and enabling namespace
// repair are configuration errors. Boolean options accept bool values
// or strings like "true".
func (c *Config) Set(name string, value any) error {
	switch name {
	case OptionAutoArray:
		return c.setBool(name, value, &c.AutoArray)
	case OptionMultiplePI:
		return c.setBool(name, value, &c.MultiplePI)
	case OptionPrettyPrint:
		return c.setBool(name, value, &c.PrettyPrint)
	case OptionAutoPrimitive:
		return c.setBool(name, value, &c.AutoPrimitive)
	case OptionVirtualRoot:
		s, err := toString(value)
		if err != nil {
			return errors.NewConfigurationError("invalid value for option "+name, err)
		}
		c.VirtualRoot = s
		return nil
	case OptionKeyStyle:
		s, err := toString(value)
		if err != nil {
			return errors.NewConfigurationError("invalid value for option "+name, err)
		}
		if _, err := stream.ParseKeyStyle(s); err != nil {
			return err
		}
		c.KeyStyle = s
		return nil
	case OptionRepairNamespaces:
		var repair bool
		if err := c.setBool(name, value, &repair); err != nil {
			return err
		}
		if repair {
			return errors.NewConfigurationError("namespace repair is not supported", errors.ErrNamespaceRepair)
		}
		return nil
	}
	return errors.NewConfigurationError("unknown option "+name, errors.ErrUnknownOption)
}

// Get returns an option value by name. Unknown names are configuration
// errors.
func (c *Config) Get(name string) (any, error) {
	switch name {
	case OptionAutoArray:
		return c.AutoArray, nil
	case OptionMultiplePI:
		return c.MultiplePI, nil
	case OptionVirtualRoot:
		return c.VirtualRoot, nil
	case OptionPrettyPrint:
		return c.PrettyPrint, nil
	case OptionAutoPrimitive:
		return c.AutoPrimitive, nil
	case OptionKeyStyle:
		return c.KeyStyle, nil
	case OptionRepairNamespaces:
		// never repaired, reported for completeness
		return false, nil
	}
	return nil, errors.NewConfigurationError("unknown option "+name, errors.ErrUnknownOption)
}

func (c *Config) setBool(name string, value any, dest *bool) error {
	b, err := toBool(value)
	if err != nil {
		return errors.NewConfigurationError("invalid value for option "+name, err)
	}
	*dest = b
	return nil
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		return strconv.ParseBool(v)
	}
	return false, fmt.Errorf("expected a boolean, got %T", value)
}

func toString(value any) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return "", fmt.Errorf("expected a string, got %T", value)
}
