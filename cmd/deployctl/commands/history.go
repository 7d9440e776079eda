package commands

import (
	"github.com/spf13/cobra"
)

var HistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded deployments",
	Long:  `List past deployment runs recorded in the local deployctl database, most recent first.`,
	Run: func(cmd *cobra.Command, _ []string) {
		commandsService.History(cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}
