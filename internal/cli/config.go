package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alnah/go-recsplit/internal/config"
	"github.com/alnah/go-recsplit/internal/logging"
	"github.com/alnah/go-recsplit/internal/record"
)

// ConfigCmd creates the config command with subcommands.
// The env parameter provides injectable dependencies for testing.
func ConfigCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage persistent configuration settings.

Configuration is stored in ~/.config/recsplit/config.
Settings can also be provided via environment variables.

Supported settings:
  format        Default delimiter: c or t (env: RECSPLIT_FORMAT)
  log-level     debug, info, warn, error (env: RECSPLIT_LOG_LEVEL)
  log-format    text or json (env: RECSPLIT_LOG_FORMAT)
  color         true or false (env: RECSPLIT_COLOR)`,
		Example: `  recsplit config set format c
  recsplit config get log-level
  recsplit config list`,
	}

	cmd.AddCommand(configSetCmd(env))
	cmd.AddCommand(configGetCmd(env))
	cmd.AddCommand(configListCmd(env))

	return cmd
}

// configSetCmd creates the "config set" subcommand.
func configSetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value.

Values are validated and stored in canonical form (format as c or t,
color as true or false).`,
		Example: `  recsplit config set format tsv
  recsplit config set color false`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(env, args[0], args[1])
		},
	}
}

// configGetCmd creates the "config get" subcommand.
func configGetCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Long: `Get a configuration value.

Prints the value to stdout, or nothing if not set.`,
		Example: `  recsplit config get format`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(env, args[0])
		},
	}
}

// configListCmd creates the "config list" subcommand.
func configListCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long: `List all configuration values.

Shows both values from the config file and environment variable fallbacks.`,
		Example: `  recsplit config list`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigList(env)
		},
	}
}

// runConfigSet handles the "config set" command.
func runConfigSet(env *Env, key, value string) error {
	if !isValidConfigKey(key) {
		return fmt.Errorf("%w %q (valid keys: %s)", ErrUnknownConfigKey, key, strings.Join(config.Keys, ", "))
	}

	value, err := normalizeConfigValue(key, value)
	if err != nil {
		return err
	}

	if err := config.Save(key, value); err != nil {
		return err
	}

	fmt.Fprintf(env.Stderr, "Set %s = %s\n", key, value)
	return nil
}

// normalizeConfigValue validates value for key and returns its canonical form.
func normalizeConfigValue(key, value string) (string, error) {
	value = strings.TrimSpace(value)

	switch key {
	case config.KeyFormat:
		mode, err := record.ParseModeStrict(value)
		if err != nil {
			return "", fmt.Errorf("%w: format %q (valid: c, t)", ErrInvalidConfigValue, value)
		}
		return mode.Code(), nil
	case config.KeyLogLevel:
		if !logging.ValidLevel(value) {
			return "", fmt.Errorf("%w: log-level %q (valid: debug, info, warn, error)", ErrInvalidConfigValue, value)
		}
		return strings.ToLower(value), nil
	case config.KeyLogFormat:
		if !logging.ValidFormat(value) {
			return "", fmt.Errorf("%w: log-format %q (valid: text, json)", ErrInvalidConfigValue, value)
		}
		return strings.ToLower(value), nil
	case config.KeyColor:
		on, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("%w: color %q (valid: true, false)", ErrInvalidConfigValue, value)
		}
		return strconv.FormatBool(on), nil
	}
	return value, nil
}

// runConfigGet handles the "config get" command.
func runConfigGet(env *Env, key string) error {
	if !isValidConfigKey(key) {
		return fmt.Errorf("%w %q (valid keys: %s)", ErrUnknownConfigKey, key, strings.Join(config.Keys, ", "))
	}

	value, err := config.Get(key)
	if err != nil {
		return err
	}

	// Environment variable fallback.
	if value == "" {
		value = env.Getenv(config.EnvName(key))
	}

	if value != "" {
		fmt.Fprintln(env.Stdout, value)
	}

	return nil
}

// runConfigList handles the "config list" command.
func runConfigList(env *Env) error {
	data, err := config.List()
	if err != nil {
		return err
	}

	// Add environment variable values for completeness.
	for _, key := range config.Keys {
		if _, ok := data[key]; ok {
			continue
		}
		if envVal := env.Getenv(config.EnvName(key)); envVal != "" {
			data[key] = envVal + " (from env)"
		}
	}

	if len(data) == 0 {
		fmt.Fprintln(env.Stdout, "No configuration set.")
		fmt.Fprintln(env.Stdout, "\nAvailable settings:")
		for _, key := range config.Keys {
			fmt.Fprintf(env.Stdout, "  %s\n", key)
		}
		return nil
	}

	for _, key := range config.Keys {
		if value, ok := data[key]; ok {
			fmt.Fprintf(env.Stdout, "%s=%s\n", key, value)
		}
	}

	return nil
}

// isValidConfigKey checks if a key is a valid configuration key.
func isValidConfigKey(key string) bool {
	return slices.Contains(config.Keys, key)
}
