package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Philipp01105/consoleline/core"
	"github.com/Philipp01105/consoleline/formatter"
	"github.com/Philipp01105/consoleline/handler"
	"github.com/Philipp01105/consoleline/outputstyle"
)

var version = "dev"

type options struct {
	stdin io.Reader        // nil = os.Stdin
	now   func() time.Time // nil = time.Now
}

// Option configures newRootCmd.
type Option func(*options)

// WithStdin sets the reader used when no paths are given.
func WithStdin(r io.Reader) Option {
	return func(o *options) {
		o.stdin = r
	}
}

// WithClock sets the time used for records without a datetime.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// formatFlags holds the formatter overrides given on the command line.
type formatFlags struct {
	configPath      string
	format          string
	dateFormat      string
	levelNameFormat string
	multiline       bool
	ignoreEmpty     bool
	color           string
}

// formatterConfig loads the config file, if any, and applies the flags
// the user set explicitly.
func (f *formatFlags) formatterConfig(cmd *cobra.Command) (formatter.Config, error) {
	var cfg formatter.Config
	if f.configPath != "" {
		loaded, err := formatter.LoadConfig(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	var override formatter.Config
	flags := cmd.Flags()
	if flags.Changed("format") {
		override.Format = f.format
	}
	if flags.Changed("date-format") {
		override.DateFormat = f.dateFormat
	}
	if flags.Changed("level-name-format") {
		override.LevelNameFormat = f.levelNameFormat
	}
	if flags.Changed("multiline") {
		cfg.Multiline = f.multiline
	}
	if flags.Changed("ignore-empty") {
		cfg.IgnoreEmptyContextAndExtra = f.ignoreEmpty
	}
	if f.color == string(outputstyle.ColorModeNever) {
		override.Colors = formatter.Bool(false)
	}
	return formatter.DefaultConfig().Merge(cfg).Merge(override), nil
}

// newDiagnostics returns the logger for CLI warnings. It writes through
// the same formatter stack as rendered records.
func newDiagnostics(w io.Writer, mode outputstyle.ColorMode) *slog.Logger {
	h := handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer: w,
		Formatter: formatter.NewLineFormatter(formatter.Config{
			IgnoreEmptyContextAndExtra: true,
		}),
		ColorMode: mode,
	})
	return slog.New(handler.NewSlogHandler(h, core.DebugLevel).WithChannel("consoleline"))
}

func newRootCmd(opts ...Option) *cobra.Command {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.stdin == nil {
		o.stdin = os.Stdin
	}
	if o.now == nil {
		o.now = time.Now
	}

	flags := &formatFlags{}

	rootCmd := &cobra.Command{
		Use:           "consoleline",
		Short:         "Render structured log records as colored console lines",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := outputstyle.ParseColorMode(flags.color)
			return err
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "formatter config file (.toml, .yaml or .yml)")
	pf.StringVar(&flags.format, "format", formatter.DefaultFormat, "line template")
	pf.StringVar(&flags.dateFormat, "date-format", formatter.DefaultDateFormat, "Go time layout for %datetime%")
	pf.StringVar(&flags.levelNameFormat, "level-name-format", formatter.DefaultLevelNameFormat, "fmt verb applied to the level name")
	pf.BoolVar(&flags.multiline, "multiline", false, "dump context and extra on multiple lines")
	pf.BoolVar(&flags.ignoreEmpty, "ignore-empty", false, "omit empty context and extra")
	pf.StringVar(&flags.color, "color", string(outputstyle.ColorModeAuto), "color output: auto, always or never")

	var keepGoing bool
	renderCmd := &cobra.Command{
		Use:   "render [paths|globs...]",
		Short: "Format JSON-lines log records",
		Long: `Format JSON-lines log records.

Each input line is one record with the keys datetime, level, channel,
message, context and extra. Without arguments records are read from
standard input; "-" reads standard input explicitly. Arguments may be
glob patterns such as "var/log/**/*.json".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.formatterConfig(cmd)
			if err != nil {
				return err
			}
			mode, _ := outputstyle.ParseColorMode(flags.color)

			r := &renderer{
				formatter: formatter.NewLineFormatter(cfg),
				out:       cmd.OutOrStdout(),
				decorated: mode.Decorated(cmd.OutOrStdout()),
				diag:      newDiagnostics(cmd.ErrOrStderr(), mode),
				keepGoing: keepGoing,
				now:       o.now,
			}
			return r.run(args, o.stdin)
		},
	}
	renderCmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "report undecodable lines and files and continue")
	rootCmd.AddCommand(renderCmd)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective formatter configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.formatterConfig(cmd)
			if err != nil {
				return err
			}
			return cfg.WriteTOML(cmd.OutOrStdout())
		},
	}
	rootCmd.AddCommand(configCmd)

	return rootCmd
}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "consoleline:", err)
		return 1
	}
	return 0
}
