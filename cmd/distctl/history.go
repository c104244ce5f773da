package main

import (
	"time"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/journal"
	"github.com/joshyorko/wrangler-opencode/pretty"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show releases made from this machine.",
	Run: func(cmd *cobra.Command, args []string) {
		events, err := journal.Events()
		pretty.Guard(err == nil, 2, "Cannot read %q: %v", journal.Filename(), err)
		for _, event := range events {
			when := time.Unix(event.When, 0).Format(time.RFC3339)
			common.Stdout("%s  %-8s %s  (%s)\n", when, event.Event, event.Detail, event.Comment)
		}
	},
}

func init() {
	distctlCmd.AddCommand(historyCmd)
}
