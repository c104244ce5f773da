package cmd

import (
	"github.com/joshyorko/wrangler-opencode/operations"

	"github.com/spf13/cobra"
)

var opencodeCmd = &cobra.Command{
	Use:   "opencode [args...]",
	Short: "Start the opencode assistant for this project.",
	Long: `Start the opencode assistant with the current Worker project described to it.
Every argument after "opencode" is forwarded to it unchanged, flags included.
Host flags such as --env or --debug go before "opencode".`,
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		launch(operations.LaunchArgs{
			Args:        args,
			Environment: workerEnv,
			ConfigPath:  workerConfig,
		})
	},
}

func init() {
	rootCmd.AddCommand(opencodeCmd)
}
