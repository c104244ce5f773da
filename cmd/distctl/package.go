package main

import (
	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/distro"
	"github.com/joshyorko/wrangler-opencode/pretty"

	"github.com/spf13/cobra"
)

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Write platform and wrapper npm packages around built executables.",
	Run: func(cmd *cobra.Command, args []string) {
		root, config := workspace()
		targets := selectedTargets()
		version := currentVersion(root, config)
		assembler := distro.NewAssembler(distro.NewLayout(root, config))
		if dryFlag {
			common.Log("[dry-run] would write %d platform packages and %s at %s", len(targets), config.Packages.Wrapper, version)
			return
		}
		manifests, err := assembler.Assemble(targets, version)
		pretty.Guard(err == nil, 4, "Packaging failed: %v", err)
		pretty.Notice("Packages at "+version, manifests...)
		pretty.Ok()
	},
}

func init() {
	distctlCmd.AddCommand(packageCmd)
	addMatrixFlags(packageCmd)
}
