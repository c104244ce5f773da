package operations

import (
	"fmt"
	"os"
	"time"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/pretty"
	"github.com/joshyorko/wrangler-opencode/project"
	"github.com/joshyorko/wrangler-opencode/settings"
	"github.com/joshyorko/wrangler-opencode/supervisor"
)

type LaunchArgs struct {
	Instruction string
	Args        []string
	Environment string
	ConfigPath  string
}

// RunSession collects the project context from the working directory of
// options and supervises one assistant session with it.
func RunSession(options supervisor.Options, launch LaunchArgs) error {
	common.Timeline("session start")
	defer common.Timeline("session done")

	collector := project.Collector{
		Root:        options.WorkingDirectory,
		Environment: launch.Environment,
		ConfigPath:  launch.ConfigPath,
	}
	context := collector.Gather()
	common.Debug("Project %q has %d config file(s).", context.ProjectRoot, len(context.ConfigFiles))

	watcher := WatchChildren(os.Getpid(), 550*time.Millisecond)
	err := supervisor.New(options).Run(context, launch.Instruction, launch.Args)
	suberr := SubprocessWarning(watcher.Stop())
	if suberr != nil {
		common.Debug("Problem with subprocess warnings, reason: %v", suberr)
	}
	return err
}

func degraded(err error) {
	common.Error("Launching "+common.AssistantName, err)
	pretty.Notice(
		fmt.Sprintf("%s could not start %s", common.ProgramName, common.AssistantName),
		fmt.Sprintf("Reason: %v", err),
		fmt.Sprintf("Everything else still works, see `%s --help`.", common.ProgramName),
	)
}

// LaunchOpenCode runs one session from the current directory and turns any
// failure into exit code 1.
func LaunchOpenCode(launch LaunchArgs) {
	config, err := settings.SummonSettings()
	if err != nil {
		degraded(err)
		pretty.Exit(1, "Error: %v", err)
	}
	workingDirectory, err := os.Getwd()
	if err != nil {
		degraded(err)
		pretty.Exit(1, "Error: %v", err)
	}
	options := supervisor.DefaultOptions(workingDirectory, os.Environ(), config)
	err = RunSession(options, launch)
	if err != nil {
		degraded(err)
		pretty.Exit(1, "Error: %v", err)
	}
}
