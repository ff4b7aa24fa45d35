package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/alnah/go-recsplit/internal/format"
	"github.com/alnah/go-recsplit/internal/interrupt"
	"github.com/alnah/go-recsplit/internal/partition"
	"github.com/alnah/go-recsplit/internal/prompt"
	"github.com/alnah/go-recsplit/internal/record"
	"github.com/alnah/go-recsplit/internal/textio"
)

// doneMessage is printed on stdout when a split completes.
const doneMessage = "File Processed"

// decisionMessage is shown while waiting for a second Ctrl+C.
const decisionMessage = "Interrupted. Ctrl+C again to discard partial output, wait 2s to keep it..."

// validate checks resolved split options.
var validate = validator.New(validator.WithRequiredStructEnabled())

// splitOptions holds the resolved parameters of a split.
type splitOptions struct {
	Path   string      `validate:"required,file"`
	Mode   record.Mode `validate:"oneof=0 1"`
	Fields int         `validate:"gte=0"`
	Force  bool
}

// splitFlags holds raw flag values before resolution.
type splitFlags struct {
	format string
	fields string
	force  bool
}

// SplitCmd creates the split command.
// The env parameter provides injectable dependencies for testing.
func SplitCmd(env *Env) *cobra.Command {
	var flags splitFlags

	cmd := &cobra.Command{
		Use:   "split [file]",
		Short: "Split a delimited file by field count",
		Long: `Split a CSV or TSV file into conforming and non-conforming lines.

The first line is a header and is skipped. Blank lines are ignored.
Each other line goes to <name>.good.<ext> when it has exactly the expected
number of fields, otherwise to <name>.bad.<ext>. Lines are copied unchanged
and in input order. A partition with no lines creates no file.

Any value not given as an argument or flag is asked for interactively.
The format falls back to the "format" config setting (env: RECSPLIT_FORMAT).`,
		Example: `  recsplit split data.csv -f c -n 3
  recsplit split export.tsv --format t --fields 12 --force
  recsplit split   # Asks for file, format and field count`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := parseSplitOptions(cmd, env, args, flags)
			if err != nil {
				return err
			}
			return runSplit(cmd, env, opts)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Delimiter: c (comma) or t (tab)")
	cmd.Flags().StringVarP(&flags.fields, "fields", "n", "", "Expected number of fields per line")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Replace existing output files")

	return cmd
}

// parseSplitOptions resolves every option from arguments, flags, config and
// prompts, in the order the interactive tool asks: file, format, fields.
func parseSplitOptions(cmd *cobra.Command, env *Env, args []string, flags splitFlags) (splitOptions, error) {
	opts := splitOptions{Force: flags.force}
	p := prompt.New(env.Stdin, env.Stdout)

	// 1. File
	var err error
	if len(args) == 1 {
		opts.Path, err = prompt.CleanPath(args[0])
	} else {
		opts.Path, err = p.FilePath()
	}
	if err != nil {
		return opts, err
	}

	// 2. Format: flag, then config/env, then prompt
	if cmd.Flags().Changed("format") {
		opts.Mode, err = parseModeValue(flags.format)
	} else {
		opts.Mode, err = resolveMode(env, p)
	}
	if err != nil {
		return opts, err
	}

	// 3. Field count
	if cmd.Flags().Changed("fields") {
		opts.Fields, err = prompt.ParseFieldCount(flags.fields)
	} else {
		opts.Fields, err = p.FieldCount()
	}
	if err != nil {
		return opts, err
	}

	return opts, validateSplitOptions(opts)
}

// resolveMode takes the format from config or env, or asks for it.
// A configured value that is not a known selector falls back to TSV.
func resolveMode(env *Env, p *prompt.Prompter) (record.Mode, error) {
	cfg, err := env.ConfigLoader.Load()
	if err != nil {
		fmt.Fprintf(env.Stderr, "Warning: failed to load config: %v\n", err)
	}
	if cfg.Format == "" {
		return p.Format()
	}
	mode, err := record.ParseModeStrict(cfg.Format)
	if err != nil {
		env.Logger.Warn("unrecognized format setting, using TSV", "value", cfg.Format)
		return record.ParseMode(cfg.Format), nil
	}
	env.Logger.Debug("format from config", "value", cfg.Format)
	return mode, nil
}

// parseModeValue parses the --format flag. A typo on the command line is
// rejected rather than silently read as TSV.
func parseModeValue(s string) (record.Mode, error) {
	mode, err := record.ParseModeStrict(s)
	if err != nil {
		return mode, fmt.Errorf("%w: %q (%w)", prompt.ErrInvalidFormat, s, err)
	}
	return mode, nil
}

// validateSplitOptions runs struct validation and maps failures to the
// sentinel errors users see for the same mistakes at the prompt.
func validateSplitOptions(opts splitOptions) error {
	err := validate.Struct(opts)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	switch verrs[0].StructField() {
	case "Path":
		return fmt.Errorf("%w: %s", prompt.ErrFileNotFound, opts.Path)
	case "Mode":
		return fmt.Errorf("%w: %s", prompt.ErrInvalidFormat, opts.Mode)
	case "Fields":
		return fmt.Errorf("%w: %d", prompt.ErrInvalidNumber, opts.Fields)
	default:
		return err
	}
}

// runSplit executes one pass over the input file.
func runSplit(cmd *cobra.Command, env *Env, opts splitOptions) error {
	log := env.Logger.With("input", opts.Path)

	// #nosec G304 -- user-specified input file
	in, err := os.Open(opts.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", prompt.ErrFileNotFound, opts.Path)
		}
		return fmt.Errorf("cannot open input file: %w", err)
	}
	defer func() { _ = in.Close() }()

	set, err := partition.Open(opts.Path, opts.Force)
	if err != nil {
		return err
	}
	log.Debug("outputs prepared",
		"good", set.Good.Path(),
		"bad", set.Bad.Path(),
		"force", opts.Force)

	handler, ctx := env.InterruptFactory.NewHandler(cmd.Context())
	defer handler.Stop()

	started := env.Now()

	lines := textio.NewLineReader(in)
	header, err := textio.SkipHeader(lines)
	if err != nil {
		_ = set.Discard()
		return fmt.Errorf("read header: %w", err)
	}
	log.Debug("split started",
		"mode", opts.Mode.String(),
		"fields", opts.Fields,
		"header_fields", len(record.Split(header, opts.Mode)))

	stats, streamErr := record.Stream(ctx, lines, opts.Mode, opts.Fields, set.Good, set.Bad)
	closeErr := set.Close()

	if streamErr != nil {
		// The signal may reach the parent context before the handler
		// counts it, so cancellation alone decides.
		if handler.WasInterrupted() || errors.Is(streamErr, context.Canceled) {
			return finishInterrupted(env, handler, set, stats, streamErr)
		}
		_ = set.Discard()
		return streamErr
	}
	if closeErr != nil {
		_ = set.Discard()
		return fmt.Errorf("cannot write output: %w", closeErr)
	}

	elapsed := env.Now().Sub(started)
	log.Info("split finished",
		"lines", stats.Lines,
		"good", stats.Good,
		"bad", stats.Bad,
		"blank", stats.Blank,
		"elapsed", elapsed)

	writeSummary(env, set, stats)
	fmt.Fprintf(env.Stderr, "Done in %s\n", format.Elapsed(elapsed))
	env.Console.Infof(doneMessage)
	return nil
}

// finishInterrupted asks whether to keep the partial output of a stopped pass.
// The returned error still wraps the cancellation so the caller exits with 130.
func finishInterrupted(env *Env, handler InterruptHandler, set *partition.Set, stats record.Stats, streamErr error) error {
	if handler.WaitForDecision(decisionMessage) == interrupt.Discard {
		if err := set.Discard(); err != nil {
			fmt.Fprintf(env.Stderr, "Warning: failed to remove partial output: %v\n", err)
		}
		fmt.Fprintln(env.Stderr, "Partial output discarded.")
		env.Logger.Info("split interrupted", "lines", stats.Lines, "decision", interrupt.Discard.String())
		return streamErr
	}

	fmt.Fprintf(env.Stderr, "\nStopped after %s. Partial output kept.\n", format.Lines(stats.Lines))
	writeSummary(env, set, stats)
	env.Logger.Info("split interrupted", "lines", stats.Lines, "decision", interrupt.Keep.String())
	return streamErr
}

// writeSummary prints line counts and the files that were written.
func writeSummary(env *Env, set *partition.Set, stats record.Stats) {
	fmt.Fprintf(env.Stderr, "Read %s: %d good, %d bad, %d blank\n",
		format.Lines(stats.Lines), stats.Good, stats.Bad, stats.Blank)

	created := set.Created()
	if len(created) == 0 {
		fmt.Fprintln(env.Stderr, "No output files written.")
		return
	}
	for _, p := range created {
		if info, err := os.Stat(p); err == nil {
			fmt.Fprintf(env.Stderr, "  %s (%s)\n", p, format.Size(info.Size()))
		} else {
			fmt.Fprintf(env.Stderr, "  %s\n", p)
		}
	}
}
