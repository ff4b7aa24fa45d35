package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alnah/go-recsplit/internal/console"
	"github.com/alnah/go-recsplit/internal/logging"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	logLevel  string
	logFormat string
	noColor   bool
}

// NewRootCmd creates the recsplit root command with all subcommands.
// The env parameter provides injectable dependencies for testing.
func NewRootCmd(env *Env, version string) *cobra.Command {
	var opts globalOptions

	cmd := &cobra.Command{
		Use:   "recsplit",
		Short: "Split delimited files into conforming and non-conforming lines",
		Long: `Split a CSV or TSV file into two files by field count.

Lines with exactly the expected number of fields go to <name>.good.<ext>,
the others to <name>.bad.<ext>. The header line and blank lines are skipped.`,
		Version: version,
		// Silence Cobra's default error/usage printing; main handles it.
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupOutput(env, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: warn)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format: text, json (default: text)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored error output")

	cmd.AddCommand(SplitCmd(env))
	cmd.AddCommand(ConfigCmd(env))

	return cmd
}

// setupOutput builds the logger and console from flags, then config, then defaults.
func setupOutput(env *Env, opts globalOptions) error {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}

	level := firstSet(opts.logLevel, cfg.LogLevel, logging.DefaultLevel)
	if !logging.ValidLevel(level) {
		return fmt.Errorf("%w: log level %q (valid: debug, info, warn, error)", ErrInvalidOption, level)
	}

	logFormat := firstSet(opts.logFormat, cfg.LogFormat, logging.DefaultFormat)
	if !logging.ValidFormat(logFormat) {
		return fmt.Errorf("%w: log format %q (valid: text, json)", ErrInvalidOption, logFormat)
	}

	env.Logger = logging.Setup(env.Stderr, level, logFormat)

	useColor := console.UseColor(env.Stderr, env.Getenv, opts.noColor || cfg.ColorDisabled())
	env.Console = console.New(env.Stdout, env.Stderr, useColor)

	env.Logger.Debug("output configured",
		"log_level", level,
		"log_format", logFormat,
		"color", useColor)
	return nil
}

// firstSet returns the first non-empty value.
func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
