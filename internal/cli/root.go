package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/tally/internal/config"
	"github.com/roach88/tally/internal/engine"
	"github.com/roach88/tally/internal/harness"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose        bool
	Format         string // "json" | "text"
	MaxDepth       int
	NoMemo         bool
	StrictExponent bool

	config  config.Config
	logger  *slog.Logger
	traceID string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tally CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tally",
		Short: "tally - arbitrary-precision decimal integer arithmetic",
		Long: `Evaluate arithmetic on decimal integer literals of any length, and run
conformance scenarios and CUE suites against the engine.

Engine settings come from TALLY_* environment variables; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return opts.configure(cmd)
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logs on stderr)")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.IntVar(&opts.MaxDepth, "max-depth", engine.DefaultMaxDepth, "recursion depth limit per evaluation, 0 for none")
	flags.BoolVar(&opts.NoMemo, "no-memo", false, "disable the result cache")
	flags.BoolVar(&opts.StrictExponent, "strict-exponent", false, "reject negative exponents")

	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewOpsCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// configure loads the environment configuration and applies flag overrides.
// Only flags set explicitly on the command line override the environment.
func (o *RootOptions) configure(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		if o.MaxDepth < 0 {
			return NewExitError(ExitCommandError, fmt.Sprintf("--max-depth must be >= 0, got %d", o.MaxDepth))
		}
		cfg.MaxDepth = o.MaxDepth
	}
	if o.NoMemo {
		cfg.Memo = false
	}
	if o.StrictExponent {
		cfg.StrictExponent = true
	}
	if o.Verbose {
		cfg.LogLevel = "debug"
	}

	// Logs always go to stderr so JSON on stdout stays parseable.
	logger, err := cfg.Logger(cmd.ErrOrStderr())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	o.config = cfg
	o.logger = logger
	o.traceID = harness.UUIDv7Generator{}.Generate()
	return nil
}

// newEngine builds an engine from the resolved configuration.
// Subcommands run without the root command configure themselves here.
func (o *RootOptions) newEngine(cmd *cobra.Command) (*engine.Engine, error) {
	if o.logger == nil {
		if err := o.configure(cmd); err != nil {
			return nil, err
		}
	}
	return engine.New(o.config.EngineOptions(o.logger)...), nil
}

// log returns the configured logger, or a discarding one before configure.
func (o *RootOptions) log() *slog.Logger {
	if o.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.logger
}

// formatter returns an OutputFormatter for cmd's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
		TraceID:   o.traceID,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
