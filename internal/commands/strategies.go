package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/basecamp/dateperiod/internal/appctx"
	"github.com/basecamp/dateperiod/internal/dateperiod"
	"github.com/basecamp/dateperiod/internal/output"
)

// StrategyInfo describes one resolution strategy.
type StrategyInfo struct {
	Order   int    `json:"order"`
	Name    string `json:"name"`
	Example string `json:"example"`
}

var strategyExamples = map[string]string{
	"month-with-year":       "March 2016",
	"simple-cases":          "May 3-5, 2016",
	"one-word-period":       "next week",
	"merge-two-time-points": "from March 3 to April 2",
	"year":                  "from 2012 to 2015",
	"week-of-month":         "the first week of July",
	"week-of-year":          "the first week of 2016",
	"quarter":               "Q2 2016",
	"season":                "summer",
	"which-week":            "week 22",
	"week-of-date":          "the week of March 3rd",
	"month-of-date":         "the month of March 3rd",
	"decade":                "the 1990s",
	"duration":              "the next two weeks",
}

// NewStrategiesCmd creates the strategies command.
func NewStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List resolution strategies in the order they are tried",
		Long: `List the resolution strategies in priority order.

The first strategy that recognizes the whole expression wins. -vv traces
every attempt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			if app == nil {
				return fmt.Errorf("app not initialized")
			}

			names := dateperiod.Strategies()
			infos := make([]StrategyInfo, len(names))
			for i, name := range names {
				infos[i] = StrategyInfo{Order: i + 1, Name: name, Example: strategyExamples[name]}
			}
			return app.OK(infos, output.WithSummary(fmt.Sprintf("%d strategies", len(infos))))
		},
	}
}
