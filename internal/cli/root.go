package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/basecamp/dateperiod/internal/appctx"
	"github.com/basecamp/dateperiod/internal/commands"
	"github.com/basecamp/dateperiod/internal/config"
	"github.com/basecamp/dateperiod/internal/output"
	"github.com/basecamp/dateperiod/internal/version"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	var (
		flags        appctx.GlobalFlags
		localeFlag   string
		formatFlag   string
		inclusiveEnd bool
		calendarMode bool
	)

	cmd := &cobra.Command{
		Use:   "dateperiod [text...]",
		Short: "Resolve natural-language date periods",
		Long: `dateperiod turns phrases like "next week", "Q2 2016" or "the last week of july"
into a date range and a timex value, relative to a reference date.

Examples:
  dateperiod next week
  dateperiod "from March 3 to April 2" --ref 2016-11-07
  dateperiod batch phrases.txt --md`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return commands.RunParse(cmd, args)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Help and completion scripts work without a valid config
			if cmd.Name() == "help" || isCompletionCmd(cmd) {
				return nil
			}

			overrides := config.FlagOverrides{
				Locale: localeFlag,
				Format: formatFlag,
			}
			if flagChanged(cmd, "inclusive-end") {
				overrides.InclusiveEnd = &inclusiveEnd
			}
			if flagChanged(cmd, "calendar-mode") {
				overrides.CalendarMode = &calendarMode
			}

			cfg, err := config.Load(overrides)
			if err != nil {
				return output.ErrConfig(err)
			}

			resolvePreferences(cmd, cfg, &flags)

			app := appctx.NewApp(cfg)
			app.Flags = flags
			app.Stdout = cmd.OutOrStdout()
			app.Stderr = cmd.ErrOrStderr()
			if err := app.ApplyFlags(); err != nil {
				return err
			}

			cmd.SetContext(appctx.WithApp(cmd.Context(), app))
			return nil
		},
	}

	cmd.SetVersionTemplate(version.Full() + "\n")
	cmd.CompletionOptions.DisableDefaultCmd = true

	// Allow flags anywhere in the command line
	cmd.Flags().SetInterspersed(true)
	cmd.PersistentFlags().SetInterspersed(true)

	// Output format flags
	cmd.PersistentFlags().BoolVarP(&flags.JSON, "json", "j", false, "Output as JSON")
	cmd.PersistentFlags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Output data only, no envelope")
	cmd.PersistentFlags().BoolVarP(&flags.MD, "md", "m", false, "Output as Markdown (portable)")
	cmd.PersistentFlags().BoolVar(&flags.MD, "markdown", false, "Output as Markdown (portable)")
	cmd.PersistentFlags().BoolVar(&flags.Styled, "styled", false, "Force styled output (ANSI colors)")
	cmd.PersistentFlags().BoolVar(&flags.Count, "count", false, "Output only count")
	cmd.PersistentFlags().StringVar(&flags.JQ, "jq", "", "Filter JSON output with a jq expression")
	cmd.PersistentFlags().StringVar(&formatFlag, "format", "", "Default output format ("+strings.Join(config.Formats, ", ")+")")

	// Resolver flags
	cmd.PersistentFlags().StringVar(&flags.Ref, "ref", "", "Reference date (YYYY-MM-DD or e.g. \"yesterday\"); defaults to today")
	cmd.PersistentFlags().StringVarP(&localeFlag, "locale", "l", "", "Locale, e.g. en-US (defaults to $LANG)")
	cmd.PersistentFlags().BoolVar(&inclusiveEnd, "inclusive-end", false, "Report the last day of a period instead of the day after")
	cmd.PersistentFlags().BoolVar(&calendarMode, "calendar-mode", false, "Snap relative weeks and months to calendar boundaries")

	// Behavior flags
	cmd.PersistentFlags().CountVarP(&flags.Verbose, "verbose", "v", "Verbose output (-v for expressions, -vv for strategies)")
	cmd.PersistentFlags().BoolVar(&flags.Stats, "stats", false, "Show session statistics")
	cmd.PersistentFlags().BoolVar(&flags.NoStats, "no-stats", false, "Disable session statistics")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(config.Formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// newCommand builds the root command with every subcommand attached.
func newCommand() *cobra.Command {
	cmd := NewRootCmd()

	cmd.AddCommand(commands.NewParseCmd())
	cmd.AddCommand(commands.NewBatchCmd())
	cmd.AddCommand(commands.NewTryCmd())
	cmd.AddCommand(commands.NewStrategiesCmd())
	cmd.AddCommand(commands.NewLocalesCmd())
	cmd.AddCommand(commands.NewConfigCmd())
	cmd.AddCommand(commands.NewCommandsCmd())
	cmd.AddCommand(commands.NewCompletionCmd())
	cmd.AddCommand(commands.NewVersionCmd())

	return cmd
}

// Execute runs the root command and exits with its status.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes args and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	// Use ExecuteC to get the executed command (for correct context access)
	executedCmd, err := cmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	err = transformCobraError(err)
	apiErr := output.AsError(err)

	// Use app.Err() when the app exists (for --stats support)
	if executedCmd != nil {
		if app := appctx.FromContext(executedCmd.Context()); app != nil {
			_ = app.Err(err)
			return apiErr.ExitCode()
		}
	}

	// Fallback: the app was never built (bad config, bad flags)
	writer := output.New(output.Options{
		Format: fallbackFormat(cmd.PersistentFlags()),
		Writer: stdout,
	})
	_ = writer.Err(err)

	return apiErr.ExitCode()
}

func fallbackFormat(pf *pflag.FlagSet) output.Format {
	quiet, _ := pf.GetBool("quiet")
	count, _ := pf.GetBool("count")
	styled, _ := pf.GetBool("styled")
	md, _ := pf.GetBool("md")
	jsonFlag, _ := pf.GetBool("json")

	switch {
	case quiet || count:
		return output.FormatQuiet
	case jsonFlag:
		return output.FormatJSON
	case styled:
		return output.FormatStyled
	case md:
		return output.FormatMarkdown
	}
	return output.FormatAuto
}

// resolvePreferences fills stats and verbosity from config unless the user
// set them on the command line.
func resolvePreferences(cmd *cobra.Command, cfg *config.Config, flags *appctx.GlobalFlags) {
	noStats := flagChanged(cmd, "no-stats") && flags.NoStats
	if !flagChanged(cmd, "stats") && !noStats && cfg.Stats != nil {
		flags.Stats = *cfg.Stats
	}
	if !flagChanged(cmd, "verbose") && cfg.Verbose != nil {
		flags.Verbose = *cfg.Verbose
	}
}

func flagChanged(cmd *cobra.Command, name string) bool {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags(), cmd.InheritedFlags()} {
		if f := fs.Lookup(name); f != nil && f.Changed {
			return true
		}
	}
	return false
}

func isCompletionCmd(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "completion" || c.Name() == cobra.ShellCompRequestCmd {
			return true
		}
	}
	return false
}

var shorthandRe = regexp.MustCompile(`unknown shorthand flag: '.' in (-\w)`)

// transformCobraError turns cobra's parse errors into usage errors with
// friendlier messages.
func transformCobraError(err error) error {
	msg := err.Error()

	// "flag needs an argument: --FLAG" → "--FLAG requires a value"
	if flag, ok := strings.CutPrefix(msg, "flag needs an argument: "); ok {
		return output.ErrUsage(flag + " requires a value")
	}

	// "unknown flag: --FLAG" → "Unknown option: --FLAG"
	if flag, ok := strings.CutPrefix(msg, "unknown flag: "); ok {
		return output.ErrUsage("Unknown option: " + flag)
	}

	// "unknown shorthand flag: 'X' in -X" → "Unknown option: -X"
	if matches := shorthandRe.FindStringSubmatch(msg); len(matches) > 1 {
		return output.ErrUsage("Unknown option: " + matches[1])
	}

	if strings.Contains(msg, "invalid argument") {
		return output.ErrUsage(msg)
	}

	if strings.Contains(msg, "requires at least") && strings.Contains(msg, "arg(s)") {
		return output.ErrUsageHint("Expression required", "Example: dateperiod parse next week")
	}

	if strings.Contains(msg, "arg(s), received") || strings.HasPrefix(msg, "unknown command") {
		return output.ErrUsage(msg)
	}

	return err
}
