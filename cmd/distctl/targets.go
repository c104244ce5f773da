package main

import (
	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/distro"

	"github.com/spf13/cobra"
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List the build matrix.",
	Run: func(cmd *cobra.Command, args []string) {
		_, config := workspace()
		for _, target := range distro.Select(devFlag) {
			common.Stdout("%-15s %-32s %s\n", target, target.PackageName(config.Packages.Wrapper), target.BunTarget())
		}
	},
}

func init() {
	distctlCmd.AddCommand(targetsCmd)
	targetsCmd.Flags().BoolVarP(&devFlag, "dev", "", false, "Only the host platform.")
}
