package main

import (
	"context"

	"github.com/joshyorko/wrangler-opencode/distro"
	"github.com/joshyorko/wrangler-opencode/pretty"
	"github.com/joshyorko/wrangler-opencode/wizard"

	"github.com/spf13/cobra"
)

var (
	yesFlag     bool
	offlineFlag bool
)

func askBump(args []string) distro.Bump {
	choice := ""
	if len(args) > 0 {
		choice = args[0]
	} else {
		var err error
		choice, err = wizard.Choose("Which version part to bump?", []string{string(distro.Patch), string(distro.Minor), string(distro.Major)}, string(distro.Patch))
		pretty.Guard(err == nil, 2, "Give bump as argument: %v", err)
	}
	bump, err := distro.ParseBump(choice)
	pretty.Guard(err == nil, 2, "Error: %v", err)
	return bump
}

var publishCmd = &cobra.Command{
	Use:   "publish [patch|minor|major]",
	Short: "Bump versions, build, publish every package and commit the release.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		root, config := workspace()
		publisher := distro.NewPublisher(root, config)
		publisher.DryRun = dryFlag
		publisher.Builder.Parallel = parallelFlag
		if !offlineFlag {
			registry, err := distro.NewRegistry(config.Distribution.Registry)
			pretty.Guard(err == nil, 2, "Registry problem: %v", err)
			publisher.Registry = registry
		}

		bump := askBump(args)
		release, err := publisher.Plan(bump)
		pretty.Guard(err == nil, 5, "Cannot release: %v", err)

		if !dryFlag {
			plan := wizard.Plan{Title: release.Title(), Lines: release.Summary()}
			question := "Publish " + release.AssistantTo + " and " + release.HostTo + "?"
			confirm := wizard.Confirm
			if bump == distro.Major {
				confirm = wizard.ConfirmDangerous
			}
			confirmed, err := confirm(question, plan, yesFlag)
			pretty.Guard(err == nil, 2, "Error: %v", err)
			if !confirmed {
				return
			}
		}

		err = publisher.Execute(context.Background(), release)
		pretty.Guard(err == nil, 6, "Release failed: %v", err)
		pretty.Ok()
	},
}

func init() {
	distctlCmd.AddCommand(publishCmd)
	wizard.AddYesFlag(publishCmd, &yesFlag)
	publishCmd.Flags().BoolVarP(&offlineFlag, "offline", "", false, "Skip the registry check for already published versions.")
	publishCmd.Flags().BoolVarP(&parallelFlag, "parallel", "", false, "Build targets concurrently.")
}
