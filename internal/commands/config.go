package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/basecamp/dateperiod/internal/appctx"
	"github.com/basecamp/dateperiod/internal/config"
	"github.com/basecamp/dateperiod/internal/locale"
	"github.com/basecamp/dateperiod/internal/output"
)

// configKeys lists the keys config set accepts, in display order.
var configKeys = []string{"locale", "inclusive_end", "calendar_mode", "format", "workers", "stats", "verbose"}

// NewConfigCmd creates the config command for managing configuration.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage dateperiod configuration.

Configuration is loaded from multiple sources with the following precedence:
  flags > env > local > global > defaults

Config locations:
  - Global: ~/.config/dateperiod/config.json
  - Local:  .dateperiod.json in the working directory or any parent`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigInitCmd(),
		newConfigSetCmd(),
		newConfigUnsetCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Long:  "Display the current effective configuration with source information.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}
}

func runConfigShow(cmd *cobra.Command) error {
	app := appctx.FromContext(cmd.Context())
	cfg := app.Config

	localeValue := cfg.Locale
	if localeValue == "" {
		localeValue = locale.Detect().String()
	}

	values := map[string]string{
		"locale":        localeValue,
		"inclusive_end": strconv.FormatBool(cfg.InclusiveEnd),
		"calendar_mode": strconv.FormatBool(cfg.CalendarMode),
		"format":        cfg.Format,
		"workers":       strconv.Itoa(cfg.Workers),
	}
	if cfg.Stats != nil {
		values["stats"] = strconv.FormatBool(*cfg.Stats)
	}
	if cfg.Verbose != nil {
		values["verbose"] = strconv.Itoa(*cfg.Verbose)
	}

	rows := make([]map[string]string, 0, len(values))
	for _, key := range configKeys {
		value, ok := values[key]
		if !ok {
			continue
		}
		source := cfg.Sources[key]
		if source == "" {
			source = string(config.SourceDefault)
		}
		rows = append(rows, map[string]string{
			"name":   key,
			"value":  value,
			"source": source,
		})
	}

	return app.OK(rows,
		output.WithSummary("Effective configuration"),
		output.WithContext("global", filepath.Join(config.GlobalConfigDir(), "config.json")),
	)
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize local config file",
		Long:  "Create a .dateperiod.json file in the current directory.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			configFile := config.LocalFileName

			if _, err := os.Stat(configFile); err == nil {
				return app.OK(map[string]any{
					"exists": true,
					"path":   configFile,
				}, output.WithSummary(fmt.Sprintf("Config file already exists: %s", configFile)))
			}

			if err := atomicWriteFile(configFile, []byte("{}\n")); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}

			return app.OK(map[string]any{
				"created": true,
				"path":    configFile,
			}, output.WithSummary(fmt.Sprintf("Created: %s", configFile)))
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the local or global config file.

Valid keys: ` + strings.Join(configKeys, ", "),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			key, value := args[0], args[1]
			if !slices.Contains(configKeys, key) {
				return output.ErrUsage(fmt.Sprintf("Invalid config key %q. Valid keys: %s", key, strings.Join(configKeys, ", ")))
			}

			typed, err := parseConfigValue(key, value)
			if err != nil {
				return err
			}

			scope, configPath := configTarget(global)
			if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			configData, err := readConfigFile(configPath)
			if err != nil {
				return err
			}
			configData[key] = typed

			if err := writeConfigFile(configPath, configData); err != nil {
				return err
			}

			return app.OK(map[string]any{
				"key":    key,
				"value":  fmt.Sprint(typed),
				"scope":  scope,
				"path":   configPath,
				"status": "set",
			}, output.WithSummary(fmt.Sprintf("Set %s = %v (%s)", key, typed, scope)))
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Set in global config (~/.config/dateperiod/)")

	return cmd
}

func newConfigUnsetCmd() *cobra.Command {
	var global bool

	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the local or global config file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			key := args[0]
			scope, configPath := configTarget(global)

			if _, err := os.Stat(configPath); err != nil {
				return app.OK(map[string]any{
					"key":    key,
					"status": "not_found",
				}, output.WithSummary(fmt.Sprintf("Config file not found: %s", configPath)))
			}

			configData, err := readConfigFile(configPath)
			if err != nil {
				return err
			}
			if _, exists := configData[key]; !exists {
				return app.OK(map[string]any{
					"key":    key,
					"status": "not_set",
				}, output.WithSummary(fmt.Sprintf("Key not set: %s", key)))
			}
			delete(configData, key)

			if err := writeConfigFile(configPath, configData); err != nil {
				return err
			}

			return app.OK(map[string]any{
				"key":    key,
				"scope":  scope,
				"status": "unset",
			}, output.WithSummary(fmt.Sprintf("Unset %s (%s)", key, scope)))
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Unset from global config")

	return cmd
}

// parseConfigValue converts value to the JSON type key is stored as.
func parseConfigValue(key, value string) (any, error) {
	switch key {
	case "inclusive_end", "calendar_mode", "stats":
		b, ok := parseBoolFlag(value)
		if !ok {
			return nil, output.ErrUsage(fmt.Sprintf("%s must be true/false (or 1/0)", key))
		}
		return b, nil
	case "verbose":
		level, err := strconv.Atoi(value)
		if err != nil || level < 0 || level > 2 {
			return nil, output.ErrUsage("verbose must be 0, 1, or 2")
		}
		return level, nil
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return nil, output.ErrUsage("workers must be a positive integer")
		}
		return n, nil
	case "format":
		if !slices.Contains(config.Formats, value) {
			return nil, output.ErrUsage(fmt.Sprintf("format must be one of %s", strings.Join(config.Formats, ", ")))
		}
		return value, nil
	case "locale":
		if _, _, err := locale.Lookup(value); err != nil {
			return nil, output.ErrLocale(value, err)
		}
		return value, nil
	}
	return value, nil
}

func configTarget(global bool) (scope, path string) {
	if global {
		return "global", filepath.Join(config.GlobalConfigDir(), "config.json")
	}
	return "local", config.LocalFileName
}

func readConfigFile(path string) (map[string]any, error) {
	configData := make(map[string]any)
	data, err := os.ReadFile(path) //nolint:gosec // G304: Path is from trusted config location
	if err != nil {
		if os.IsNotExist(err) {
			return configData, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &configData); err != nil {
		return nil, output.ErrConfig(fmt.Errorf("parsing %s: %w", path, err))
	}
	return configData, nil
}

func writeConfigFile(path string, configData map[string]any) error {
	data, err := json.MarshalIndent(configData, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := atomicWriteFile(path, append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func parseBoolFlag(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true, true
	case "false", "0", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// atomicWriteFile writes data to a file atomically using temp+rename.
// Files are always created with 0600 permissions (owner read/write only).
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Chmod(0o600); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	// Windows: rename fails when destination exists. Try rename first to
	// preserve the old file on unrelated errors; only remove+retry on failure.
	if err := os.Rename(tmpPath, path); err != nil {
		if runtime.GOOS != "windows" {
			return err
		}
		_ = os.Remove(path)
		return os.Rename(tmpPath, path)
	}
	return nil
}
