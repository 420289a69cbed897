package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/basecamp/dateperiod/internal/appctx"
	"github.com/basecamp/dateperiod/internal/locale"
	"github.com/basecamp/dateperiod/internal/output"
)

// NewLocalesCmd creates the locales command.
func NewLocalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List supported locales",
		Long: `List the locales the resolver has vocabulary for.

--locale and DATEPERIOD_LOCALE accept POSIX names (en_US.UTF-8) and BCP 47
tags (en-GB); regional variants fall back to their language.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())
			if app == nil {
				return fmt.Errorf("app not initialized")
			}

			supported := locale.Supported()
			return app.OK(supported,
				output.WithSummary(fmt.Sprintf("%d supported", len(supported))),
				output.WithContext("detected", locale.Detect().String()),
			)
		},
	}
}
