package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/alnah/go-texmath/internal/fileutil"
	"github.com/alnah/go-texmath/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrEmptyConfigName   = errors.New("config name cannot be empty")
	ErrConfigParse       = errors.New("failed to parse config")
	ErrFieldTooLong      = errors.New("field exceeds maximum length")
	ErrInvalidWrapTag    = errors.New("invalid wrap tag")
	ErrInvalidTimeout    = errors.New("invalid match timeout")
	ErrUnsupportedFormat = errors.New("unsupported config format")
)

// Field length limits.
const (
	MaxWrapTagLength = 64   // HTML element name
	MaxTimeoutLength = 20   // "1m30s"
	MaxStyleLength   = 50   // chroma style name
	MaxTitleLength   = 200  // standalone document title
	MaxPathLength    = 4096 // PATH_MAX on Linux
	MaxMacroFiles    = 100  // macros.files entries
)

// DefaultWrapTag is the element math spans are wrapped in when none is configured.
const DefaultWrapTag = "mathjax"

// appName names the directory searched under the user config dir.
const appName = "go-texmath"

// wrapTagPattern accepts custom-element style names: a letter, then letters, digits or hyphens.
var wrapTagPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)

// Config holds all configuration for math detection and rendering.
type Config struct {
	Input    InputConfig    `yaml:"input" toml:"input"`
	Output   OutputConfig   `yaml:"output" toml:"output"`
	Math     MathConfig     `yaml:"math" toml:"math"`
	Markdown MarkdownConfig `yaml:"markdown" toml:"markdown"`
	Macros   MacrosConfig   `yaml:"macros" toml:"macros"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir" toml:"defaultDir"` // Default output directory (empty = same as source)
}

// MathConfig defines math detection options.
type MathConfig struct {
	WrapTag      string `yaml:"wrapTag" toml:"wrapTag"`           // Element wrapping each span (default: "mathjax")
	WrapLatex    string `yaml:"wrapLatex" toml:"wrapLatex"`       // Older name for wrapTag
	MatchTimeout string `yaml:"matchTimeout" toml:"matchTimeout"` // Go duration, empty = no limit
}

// MarkdownConfig defines goldmark rendering options.
type MarkdownConfig struct {
	HardWraps      bool   `yaml:"hardWraps" toml:"hardWraps"`
	UnsafeHTML     bool   `yaml:"unsafeHTML" toml:"unsafeHTML"`
	Highlight      bool   `yaml:"highlight" toml:"highlight"`
	HighlightStyle string `yaml:"highlightStyle" toml:"highlightStyle"` // chroma style (default: "github")
	Standalone     bool   `yaml:"standalone" toml:"standalone"`
	Title          string `yaml:"title" toml:"title"`
}

// MacrosConfig lists macro definition files loaded for every run.
type MacrosConfig struct {
	Files []string `yaml:"files" toml:"files"`
}

// EffectiveWrapTag returns wrapTag, falling back to wrapLatex and then DefaultWrapTag.
func (m MathConfig) EffectiveWrapTag() string {
	switch {
	case m.WrapTag != "":
		return m.WrapTag
	case m.WrapLatex != "":
		return m.WrapLatex
	default:
		return DefaultWrapTag
	}
}

// Timeout parses MatchTimeout. An empty value means no limit.
func (m MathConfig) Timeout() (time.Duration, error) {
	if m.MatchTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(m.MatchTimeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalidTimeout, m.MatchTimeout)
	}
	return d, nil
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	for _, f := range []struct{ name, value string }{
		{"math.wrapTag", c.Math.WrapTag},
		{"math.wrapLatex", c.Math.WrapLatex},
	} {
		if f.value == "" {
			continue
		}
		if err := validateFieldLength(f.name, f.value, MaxWrapTagLength); err != nil {
			return err
		}
		if err := ValidateWrapTag(f.value); err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
	}

	if err := validateFieldLength("math.matchTimeout", c.Math.MatchTimeout, MaxTimeoutLength); err != nil {
		return err
	}
	if _, err := c.Math.Timeout(); err != nil {
		return fmt.Errorf("math.matchTimeout: %w", err)
	}

	if err := validateFieldLength("markdown.highlightStyle", c.Markdown.HighlightStyle, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("markdown.title", c.Markdown.Title, MaxTitleLength); err != nil {
		return err
	}

	if len(c.Macros.Files) > MaxMacroFiles {
		return fmt.Errorf("macros.files: %d entries, max %d", len(c.Macros.Files), MaxMacroFiles)
	}
	for i, f := range c.Macros.Files {
		if err := validateFieldLength(fmt.Sprintf("macros.files[%d]", i), f, MaxPathLength); err != nil {
			return err
		}
	}

	return nil
}

// ValidateWrapTag checks that tag is usable as an HTML element name.
func ValidateWrapTag(tag string) error {
	if !wrapTagPattern.MatchString(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidWrapTag, tag)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
// Config files are decoded on top of it.
func DefaultConfig() *Config {
	return &Config{
		Markdown: MarkdownConfig{Highlight: true},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// The format follows the extension: .toml is TOML, anything else YAML.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) || hasConfigExt(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := Parse(data, filepath.Ext(configPath))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes and validates config data. ext selects the format
// (".yaml", ".yml" or ".toml"). Unknown keys are rejected in both formats.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(ext) {
	case ".toml":
		if err := decodeTOML(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	case ".yaml", ".yml", "":
		if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeTOML decodes data and fails on keys that map to no field.
func decodeTOML(data []byte, v any) error {
	md, err := toml.Decode(string(data), v)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return fmt.Errorf("unknown field(s): %s", strings.Join(keys, ", "))
	}
	return nil
}

// configExtensions lists supported extensions in lookup order.
var configExtensions = []string{".yaml", ".yml", ".toml"}

func hasConfigExt(name string) bool {
	return slices.Contains(configExtensions, strings.ToLower(filepath.Ext(name)))
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml, .toml
// Tries locations in order: current directory, ~/.config/go-texmath/
func resolveConfigPath(name string) (string, error) {
	triedPaths := make([]string, 0, len(configExtensions)*2) // 2 locations

	for _, ext := range configExtensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range configExtensions {
			userPath := filepath.Join(userConfigDir, appName, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
