package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/log"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// PackageJSONKey is the package.json field, and the editor settings section, holding configuration
const PackageJSONKey = "customPropSorting"

// Files are the configuration file names Discover looks for, in order
var Files = []string{
	".cpsortrc.json",
	".cpsortrc.jsonc",
	".cpsortrc.yaml",
	".cpsortrc.yml",
}

// DefaultInclude are the globs of files processed when Include is empty
var DefaultInclude = []string{
	"**/*.css",
	"**/*.html",
	"**/*.js",
	"**/*.ts",
	"**/*.jsx",
	"**/*.tsx",
}

// DefaultExclude are the globs of files skipped when Exclude is empty
var DefaultExclude = []string{
	"**/node_modules/**",
}

// Config controls how custom properties are sorted and which files are visited
type Config struct {
	// SortOrder is the raw sortOrder option. Only comparators are valid; any
	// other value falls back to the default order with a warning.
	SortOrder any `json:"sortOrder,omitempty" yaml:"sortOrder,omitempty"`
	// SortBy names a built-in comparator ("alphanumeric" or "value")
	SortBy   string   `json:"sortBy,omitempty" yaml:"sortBy,omitempty"`
	Include  []string `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude  []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	LogLevel string   `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`

	// Path is the file the configuration was read from, if any
	Path string `json:"-" yaml:"-"`
}

// Default returns the configuration used when none is found
func Default() *Config {
	return &Config{}
}

// Load reads a configuration file. JSON files may contain comments.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: configuration path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, NewInvalidConfigError(path, "malformed YAML", err)
		}
	case ".json", ".jsonc", "":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, NewInvalidConfigError(path, "malformed JSON", err)
		}
	default:
		return nil, NewInvalidConfigError(path, "unknown file extension", nil)
	}

	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover finds the configuration for a project rooted at root.
// Returns the default configuration when nothing is found.
func Discover(root string) (*Config, error) {
	for _, name := range Files {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			log.Debug("using config %s", path)
			return Load(path)
		}
	}

	cfg, err := fromPackageJSON(filepath.Join(root, "package.json"))
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		return cfg, nil
	}
	return Default(), nil
}

// fromPackageJSON reads the customPropSorting field of package.json.
// Returns nil if the file or the field doesn't exist.
func fromPackageJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading workspace package.json
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return nil, NewInvalidConfigError(path, "malformed JSON", err)
	}

	raw, ok := pkg[PackageJSONKey]
	if !ok {
		return nil, nil
	}

	cfg := Default()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, NewInvalidConfigError(path, PackageJSONKey+" must be an object", err)
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Debug("using config from %s", path)
	return cfg, nil
}

// FromSettings builds a configuration from editor settings
func FromSettings(settings map[string]any) (*Config, error) {
	data, err := json.Marshal(settings)
	if err != nil {
		return nil, NewInvalidConfigError("settings", "unencodable settings", err)
	}
	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, NewInvalidConfigError("settings", "malformed settings", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) source() string {
	if c.Path == "" {
		return "settings"
	}
	return c.Path
}

// Validate checks the log level and glob patterns
func (c *Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return NewInvalidConfigError(c.source(), "logLevel", err)
		}
	}
	for _, pattern := range slices.Concat(c.Include, c.Exclude) {
		if !doublestar.ValidatePattern(pattern) {
			return NewInvalidConfigError(c.source(), fmt.Sprintf("bad glob pattern %q", pattern), nil)
		}
	}
	return nil
}

// SortOrderOption returns the value to hand to customprops.New.
// A known SortBy name wins over SortOrder. An unknown SortBy name is passed on
// as is, so it produces the invalid sort order warning.
func (c *Config) SortOrderOption() any {
	if c.SortBy != "" {
		if cmp, ok := customprops.ComparatorByName(c.SortBy); ok {
			return cmp
		}
		return c.SortBy
	}
	return c.SortOrder
}

// Sorter builds a sorter for this configuration
func (c *Config) Sorter() (*customprops.Sorter, []customprops.Warning) {
	return customprops.New(c.SortOrderOption())
}

// Matches reports whether path is included and not excluded.
// path should be relative to the project root; absolute paths are matched
// without their leading slash.
func (c *Config) Matches(path string) bool {
	path = strings.TrimLeft(filepath.ToSlash(path), "/")
	return matchAny(c.include(), path) && !matchAny(c.exclude(), path)
}

func (c *Config) include() []string {
	if len(c.Include) == 0 {
		return DefaultInclude
	}
	return c.Include
}

func (c *Config) exclude() []string {
	if len(c.Exclude) == 0 {
		return DefaultExclude
	}
	return c.Exclude
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
