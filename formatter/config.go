package formatter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Defaults applied by NewLineFormatter to zero-valued options.
const (
	DefaultFormat          = "%datetime% %start_tag%%level_name%%end_tag% <comment>[%channel%]</> %message%%context%%extra%\n"
	DefaultDateFormat      = "15:04:05"
	DefaultLevelNameFormat = "%-9s"
)

// ErrUnsupportedConfig is returned by LoadConfig for unknown file types.
var ErrUnsupportedConfig = errors.New("unsupported config file type")

// Config holds LineFormatter options. Zero values select the defaults.
type Config struct {
	// Format is the line template
	Format string `toml:"format" yaml:"format"`
	// DateFormat is a time layout for %datetime%
	DateFormat string `toml:"date_format" yaml:"date_format"`
	// Colors enables level color tags and colored dumps (default: true)
	Colors *bool `toml:"colors" yaml:"colors"`
	// Multiline prints context and extra as indented multi-line dumps
	Multiline bool `toml:"multiline" yaml:"multiline"`
	// LevelNameFormat is a fmt verb applied to the level name
	LevelNameFormat string `toml:"level_name_format" yaml:"level_name_format"`
	// IgnoreEmptyContextAndExtra drops the segment of an empty map
	IgnoreEmptyContextAndExtra bool `toml:"ignore_empty_context_and_extra" yaml:"ignore_empty_context_and_extra"`
}

// Bool returns a pointer to b, for use with Config.Colors.
func Bool(b bool) *bool {
	return &b
}

// DefaultConfig returns a Config with every option set to its default.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

// withDefaults fills unset options.
func (c Config) withDefaults() Config {
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.DateFormat == "" {
		c.DateFormat = DefaultDateFormat
	}
	if c.Colors == nil {
		c.Colors = Bool(true)
	}
	if c.LevelNameFormat == "" {
		c.LevelNameFormat = DefaultLevelNameFormat
	}
	return c
}

// Merge returns c with every option that is set in override replaced.
// Boolean options other than Colors can only be switched on by override.
func (c Config) Merge(override Config) Config {
	if override.Format != "" {
		c.Format = override.Format
	}
	if override.DateFormat != "" {
		c.DateFormat = override.DateFormat
	}
	if override.Colors != nil {
		c.Colors = override.Colors
	}
	if override.LevelNameFormat != "" {
		c.LevelNameFormat = override.LevelNameFormat
	}
	c.Multiline = c.Multiline || override.Multiline
	c.IgnoreEmptyContextAndExtra = c.IgnoreEmptyContextAndExtra || override.IgnoreEmptyContextAndExtra
	return c
}

// LoadConfig reads formatter options from a .toml, .yaml or .yml file.
// Options missing from the file keep their zero value.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read formatter config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnsupportedConfig, path)
	}
	return cfg, nil
}

// WriteTOML encodes c as TOML.
func (c Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
