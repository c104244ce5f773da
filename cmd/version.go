package cmd

import (
	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/operations"

	"github.com/spf13/cobra"
)

var checkLatest bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show wrangler version.",
	Long:  "Show wrangler version, optionally checking the registry for a newer opencode.",
	Run: func(cmd *cobra.Command, args []string) {
		common.Stdout("%s %s\n", common.ProgramName, common.Version)
		if checkLatest {
			if notice := operations.VersionCheck(); notice != nil {
				notice()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&checkLatest, "check", "", false, "Check the registry for a newer opencode package.")
}
