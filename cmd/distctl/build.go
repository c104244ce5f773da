package main

import (
	"context"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/distro"
	"github.com/joshyorko/wrangler-opencode/pretty"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile the opencode executable for each target.",
	Run: func(cmd *cobra.Command, args []string) {
		defer common.Stopwatch("Build lasted").Report()

		root, config := workspace()
		builder := distro.NewBuilder(root, config)
		builder.Parallel = parallelFlag
		builder.DryRun = dryFlag
		targets := selectedTargets()
		err := builder.Build(context.Background(), targets, currentVersion(root, config))
		pretty.Guard(err == nil, 3, "Build failed: %v", err)
		pretty.Ok()
	},
}

func init() {
	distctlCmd.AddCommand(buildCmd)
	addMatrixFlags(buildCmd)
	buildCmd.Flags().BoolVarP(&parallelFlag, "parallel", "", false, "Build targets concurrently.")
}
