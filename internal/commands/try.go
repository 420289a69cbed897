package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/basecamp/dateperiod/internal/appctx"
	"github.com/basecamp/dateperiod/internal/output"
	"github.com/basecamp/dateperiod/internal/tui"
)

// Swapped out in tests.
var (
	runTry        = tui.RunTry
	isInteractive = (*appctx.App).IsInteractive
)

// NewTryCmd creates the interactive try command.
func NewTryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "try",
		Short: "Resolve expressions interactively",
		Long: `Open a prompt that resolves the expression as you type.

Press enter to keep an expression, ↑/↓ to recall kept ones and esc to quit.
Kept expressions are printed when the prompt closes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			if app == nil {
				return fmt.Errorf("app not initialized")
			}
			if !isInteractive(app) {
				return output.ErrUsageHint("try needs an interactive terminal",
					"Use: dateperiod <text>, or dateperiod batch for many expressions")
			}

			ref, err := app.ReferenceTime()
			if err != nil {
				return err
			}
			// Surface locale errors before the prompt opens
			if _, err := app.Parser(); err != nil {
				return err
			}

			resolve := func(text string) tui.TryResult {
				pp, err := app.Resolve(text, ref)
				if err != nil {
					return tui.TryResult{}
				}
				return NewPeriod(pp).tryResult()
			}

			entries, err := runTry(resolve,
				tui.WithTrySubtitle(fmt.Sprintf("reference %s · %s", ref.Format(time.DateOnly), app.LocaleTag())),
			)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return nil
			}

			periods := make([]Period, len(entries))
			for i, e := range entries {
				periods[i] = periodFromTry(e)
			}
			return app.OK(periods,
				output.WithSummary(fmt.Sprintf("%d kept", len(periods))),
				output.WithContext("reference", ref.Format(time.DateOnly)),
			)
		},
	}
}
