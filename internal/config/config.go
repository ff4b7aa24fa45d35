package config

import (
	"bufio"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config keys.
const (
	KeyFormat    = "format"
	KeyLogLevel  = "log-level"
	KeyLogFormat = "log-format"
	KeyColor     = "color"
)

// Keys lists every supported key in display order.
var Keys = []string{KeyFormat, KeyLogLevel, KeyLogFormat, KeyColor}

// EnvPrefix is the prefix of environment variable fallbacks,
// e.g. RECSPLIT_FORMAT or RECSPLIT_LOG_LEVEL.
const EnvPrefix = "RECSPLIT"

// appName names the configuration directory.
const appName = "recsplit"

// Config holds user configuration loaded from ~/.config/recsplit/config.
// Empty fields mean "not set".
type Config struct {
	Format    string
	LogLevel  string
	LogFormat string
	Color     string
}

// envOverrides mirrors Config for envconfig processing.
type envOverrides struct {
	Format    string `envconfig:"FORMAT"`
	LogLevel  string `envconfig:"LOG_LEVEL"`
	LogFormat string `envconfig:"LOG_FORMAT"`
	Color     string `envconfig:"COLOR"`
}

// Get returns the value stored for key, or "" for unknown keys.
func (c Config) Get(key string) string {
	switch key {
	case KeyFormat:
		return c.Format
	case KeyLogLevel:
		return c.LogLevel
	case KeyLogFormat:
		return c.LogFormat
	case KeyColor:
		return c.Color
	}
	return ""
}

// ColorDisabled reports whether the color setting explicitly turns colour off.
// Unset or unparseable values leave colour enabled.
func (c Config) ColorDisabled() bool {
	if c.Color == "" {
		return false
	}
	on, err := strconv.ParseBool(c.Color)
	return err == nil && !on
}

// fromMap builds a Config from raw key=value data.
func fromMap(data map[string]string) Config {
	return Config{
		Format:    data[KeyFormat],
		LogLevel:  data[KeyLogLevel],
		LogFormat: data[KeyLogFormat],
		Color:     data[KeyColor],
	}
}

// EnvName returns the environment variable that backs key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/recsplit.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// path returns the full path to the config file.
func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config"), nil
}

// Load reads the configuration file and environment variables.
// Precedence: config file values, then environment variable fallbacks.
// Returns an empty Config if the file doesn't exist (not an error).
func Load() (Config, error) {
	var cfg Config

	p, err := path()
	if err != nil {
		return cfg, err
	}

	// Read config file if it exists.
	if data, err := parseFile(p); err == nil {
		cfg = fromMap(data)
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	env, err := LoadEnv()
	if err != nil {
		return cfg, err
	}

	// Environment variable fallback (only if not set in config).
	if cfg.Format == "" {
		cfg.Format = env.Format
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = env.LogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = env.LogFormat
	}
	if cfg.Color == "" {
		cfg.Color = env.Color
	}

	return cfg, nil
}

// LoadEnv reads only the RECSPLIT_* environment variables.
func LoadEnv() (Config, error) {
	var ov envOverrides
	if err := envconfig.Process(EnvPrefix, &ov); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return Config(ov), nil
}

// parseFile reads a key=value config file.
// Format: one key=value per line, # comments, empty lines ignored.
func parseFile(p string) (map[string]string, error) {
	f, err := os.Open(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	data := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("invalid syntax at line %d: %q", lineNum, line)
		}
		data[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return data, nil
}

// Save writes a single key=value to the config file.
// Creates the config directory and file if they don't exist.
// Preserves existing key=value pairs but discards comments.
func Save(key, value string) error {
	if key == "" || strings.ContainsAny(key, "=\r\n#") {
		return fmt.Errorf("key %q: %w", key, ErrInvalidKey)
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("value for %s contains a line break: %w", key, ErrInvalidValue)
	}

	p, err := path()
	if err != nil {
		return err
	}

	d := filepath.Dir(p)
	if err := os.MkdirAll(d, 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	existing, _ := parseFile(p)
	if existing == nil {
		existing = make(map[string]string)
	}
	existing[key] = value

	return writeFile(p, existing)
}

// writeFile writes the config map to a file, keys sorted for stable diffs.
func writeFile(p string, data map[string]string) error {
	// #nosec G302 G304 -- config file with standard permissions, path from home dir
	f, err := os.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	for _, key := range slices.Sorted(maps.Keys(data)) {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, data[key]); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	return nil
}

// Get reads a single value from the config file.
// Returns empty string if the key doesn't exist.
func Get(key string) (string, error) {
	data, err := List()
	if err != nil {
		return "", err
	}
	return data[key], nil
}

// List returns all config values as a map.
func List() (map[string]string, error) {
	p, err := path()
	if err != nil {
		return nil, err
	}

	data, err := parseFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}

	return data, nil
}
