package commands

import (
	"github.com/spf13/cobra"

	"github.com/basecamp/dateperiod/internal/appctx"
	"github.com/basecamp/dateperiod/internal/output"
)

// CommandInfo describes a CLI command.
type CommandInfo struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Actions     []string `json:"actions,omitempty"`
}

// CommandCategory groups commands by category.
type CommandCategory struct {
	Name     string        `json:"name"`
	Commands []CommandInfo `json:"commands"`
}

// commandCategories returns all command categories for the catalog.
func commandCategories() []CommandCategory {
	return []CommandCategory{
		{
			Name: "Resolving",
			Commands: []CommandInfo{
				{Name: "parse", Category: "resolve", Description: "Resolve one expression"},
				{Name: "batch", Category: "resolve", Description: "Resolve one expression per line of a file"},
				{Name: "try", Category: "resolve", Description: "Resolve expressions interactively"},
			},
		},
		{
			Name: "Reference",
			Commands: []CommandInfo{
				{Name: "strategies", Category: "reference", Description: "List extraction strategies in cascade order"},
				{Name: "locales", Category: "reference", Description: "List supported locales"},
			},
		},
		{
			Name: "Additional Commands",
			Commands: []CommandInfo{
				{Name: "config", Category: "additional", Description: "Manage configuration", Actions: []string{"show", "init", "set", "unset"}},
				{Name: "commands", Category: "additional", Description: "List all commands"},
				{Name: "completion", Category: "additional", Description: "Generate shell completions", Actions: completionShells},
				{Name: "help", Category: "additional", Description: "Show help"},
				{Name: "version", Category: "additional", Description: "Show version"},
			},
		},
	}
}

// CatalogCommandNames returns all command names from the catalog.
// Used by tests to verify catalog matches registered commands.
func CatalogCommandNames() []string {
	var names []string
	for _, cat := range commandCategories() {
		for _, cmd := range cat.Commands {
			names = append(names, cmd.Name)
		}
	}
	return names
}

// NewCommandsCmd creates the commands listing command.
func NewCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "commands",
		Aliases: []string{"cmds"},
		Short:   "List all available commands",
		Long:    "List all available dateperiod commands organized by category.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := appctx.FromContext(cmd.Context())

			return app.OK(commandCategories(),
				output.WithSummary("All available dateperiod commands"),
			)
		},
	}
}
