package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/basecamp/dateperiod/internal/appctx"
	"github.com/basecamp/dateperiod/internal/output"
)

// NewParseCmd creates the parse command.
func NewParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <text>...",
		Short: "Resolve a date-period expression",
		Long: `Resolve a date-period expression into a date range and timex value.

Arguments are joined with spaces, so quoting is optional.

Examples:
  dateperiod parse the last week of july
  dateperiod parse "Q2 2016" --ref 2016-11-07
  dateperiod parse next two weeks --inclusive-end
  dateperiod "the 1990s" --jq .data.timex`,
		Args: cobra.MinimumNArgs(1),
		RunE: RunParse,
	}
}

// RunParse resolves the joined args. It is also the root command's default
// action.
func RunParse(cmd *cobra.Command, args []string) error {
	app := appctx.FromContext(cmd.Context())
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	text := strings.Join(strings.Fields(strings.Join(args, " ")), " ")
	if text == "" {
		return output.ErrUsageHint("Expression required", "Example: dateperiod next week")
	}

	ref, err := app.ReferenceTime()
	if err != nil {
		return err
	}

	pp, err := app.Resolve(text, ref)
	if err != nil {
		return err
	}
	if !pp.OK() {
		return output.ErrNoMatch(text)
	}

	p := NewPeriod(pp)
	return app.OK(p,
		output.WithSummary(p.Summary()),
		output.WithContext("reference", ref.Format(time.DateOnly)),
		output.WithContext("locale", app.LocaleTag()),
	)
}
