// Package config provides layered configuration loading.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// Config holds the resolved configuration.
type Config struct {
	// Locale is a POSIX or BCP 47 locale name. Empty means detect from the
	// environment.
	Locale string `json:"locale"`

	// Resolver policy
	InclusiveEnd bool `json:"inclusive_end"`
	CalendarMode bool `json:"calendar_mode"`

	// Output settings
	Format string `json:"format"`

	// Batch settings
	Workers int `json:"workers"`

	// Behavior preferences (overridable by flags)
	Stats   *bool `json:"stats,omitempty"`
	Verbose *int  `json:"verbose,omitempty"`

	// Sources tracks where each value came from (for debugging).
	Sources map[string]string `json:"-"`
}

// Source indicates where a config value came from.
type Source string

const (
	SourceDefault Source = "default"
	SourceGlobal  Source = "global"
	SourceLocal   Source = "local"
	SourceEnv     Source = "env"
	SourceFlag    Source = "flag"
)

// LocalFileName is the per-directory config file.
const LocalFileName = ".dateperiod.json"

// Formats lists the accepted values of Format.
var Formats = []string{"auto", "json", "markdown", "md", "styled", "quiet", "count"}

// FlagOverrides holds command-line flag values. Nil pointers and empty
// strings leave the layered value alone.
type FlagOverrides struct {
	Locale       string
	Format       string
	InclusiveEnd *bool
	CalendarMode *bool
	Workers      int
}

// Default returns the default configuration.
func Default() *Config {
	cfg := &Config{
		Format:  "auto",
		Workers: 4,
		Sources: make(map[string]string),
	}
	for _, key := range []string{"locale", "inclusive_end", "calendar_mode", "format", "workers"} {
		cfg.Sources[key] = string(SourceDefault)
	}
	return cfg
}

// Load loads configuration from all sources with proper precedence.
// Precedence: flags > env > local > global > defaults
func Load(overrides FlagOverrides) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(cfg, globalConfigPath(), SourceGlobal); err != nil {
		return nil, err
	}

	// Closer directories override their ancestors.
	for _, path := range localConfigPaths() {
		if err := loadFromFile(cfg, path, SourceLocal); err != nil {
			return nil, err
		}
	}

	LoadFromEnv(cfg)
	ApplyOverrides(cfg, overrides)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFromFile overlays the keys present in path. A missing file is not an
// error; a malformed one is.
func loadFromFile(cfg *Config, path string, source Source) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is from trusted config locations
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var fileCfg map[string]any
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if v, ok := fileCfg["locale"].(string); ok && v != "" {
		cfg.Locale = v
		cfg.Sources["locale"] = string(source)
	}
	if v, ok := fileCfg["inclusive_end"].(bool); ok {
		cfg.InclusiveEnd = v
		cfg.Sources["inclusive_end"] = string(source)
	}
	if v, ok := fileCfg["calendar_mode"].(bool); ok {
		cfg.CalendarMode = v
		cfg.Sources["calendar_mode"] = string(source)
	}
	if v, ok := fileCfg["format"].(string); ok && v != "" {
		cfg.Format = v
		cfg.Sources["format"] = string(source)
	}
	if v, ok := fileCfg["workers"].(float64); ok && v == float64(int(v)) {
		cfg.Workers = int(v)
		cfg.Sources["workers"] = string(source)
	}
	if v, ok := fileCfg["stats"].(bool); ok {
		cfg.Stats = &v
		cfg.Sources["stats"] = string(source)
	}
	if fv, ok := fileCfg["verbose"].(float64); ok {
		iv := int(fv)
		if iv >= 0 && iv <= 2 && fv == float64(iv) {
			cfg.Verbose = &iv
			cfg.Sources["verbose"] = string(source)
		}
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("DATEPERIOD_LOCALE"); v != "" {
		cfg.Locale = v
		cfg.Sources["locale"] = string(SourceEnv)
	}
	if v := os.Getenv("DATEPERIOD_FORMAT"); v != "" {
		cfg.Format = v
		cfg.Sources["format"] = string(SourceEnv)
	}
	if b, ok := parseEnvBool(os.Getenv("DATEPERIOD_INCLUSIVE_END")); ok {
		cfg.InclusiveEnd = b
		cfg.Sources["inclusive_end"] = string(SourceEnv)
	}
	if b, ok := parseEnvBool(os.Getenv("DATEPERIOD_CALENDAR_MODE")); ok {
		cfg.CalendarMode = b
		cfg.Sources["calendar_mode"] = string(SourceEnv)
	}
	if b, ok := parseEnvBool(os.Getenv("DATEPERIOD_STATS")); ok {
		cfg.Stats = &b
		cfg.Sources["stats"] = string(SourceEnv)
	}
	if v := os.Getenv("DATEPERIOD_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
			cfg.Sources["workers"] = string(SourceEnv)
		}
	}
}

// parseEnvBool parses a boolean environment variable strictly.
// Returns (value, true) for recognized values, (false, false) for unrecognized.
// Unrecognized values are ignored to preserve three-state pointer semantics.
func parseEnvBool(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return false, false
	}
}

// ApplyOverrides applies non-empty flag overrides to cfg.
func ApplyOverrides(cfg *Config, o FlagOverrides) {
	if o.Locale != "" {
		cfg.Locale = o.Locale
		cfg.Sources["locale"] = string(SourceFlag)
	}
	if o.Format != "" {
		cfg.Format = o.Format
		cfg.Sources["format"] = string(SourceFlag)
	}
	if o.InclusiveEnd != nil {
		cfg.InclusiveEnd = *o.InclusiveEnd
		cfg.Sources["inclusive_end"] = string(SourceFlag)
	}
	if o.CalendarMode != nil {
		cfg.CalendarMode = *o.CalendarMode
		cfg.Sources["calendar_mode"] = string(SourceFlag)
	}
	if o.Workers != 0 {
		cfg.Workers = o.Workers
		cfg.Sources["workers"] = string(SourceFlag)
	}
}

// Validate rejects values no command can act on.
func (cfg *Config) Validate() error {
	if !slices.Contains(Formats, cfg.Format) {
		return fmt.Errorf("format %q (from %s): must be one of %s",
			cfg.Format, cfg.source("format"), strings.Join(Formats, ", "))
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers %d (from %s): must be at least 1", cfg.Workers, cfg.source("workers"))
	}
	return nil
}

func (cfg *Config) source(key string) string {
	if s, ok := cfg.Sources[key]; ok {
		return s
	}
	return string(SourceDefault)
}

// Path helpers

// GlobalConfigDir returns the global config directory path.
func GlobalConfigDir() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "dateperiod")
}

func globalConfigPath() string {
	return filepath.Join(GlobalConfigDir(), "config.json")
}

// localConfigPaths returns the .dateperiod.json files from the filesystem
// root down to the working directory, furthest ancestor first.
func localConfigPaths() []string {
	dir, err := os.Getwd()
	if err != nil {
		return nil
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	var paths []string
	for {
		cfgPath := filepath.Join(dir, LocalFileName)
		if _, err := os.Stat(cfgPath); err == nil {
			paths = append(paths, cfgPath)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	slices.Reverse(paths)
	return paths
}
