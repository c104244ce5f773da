package distro

import (
	"context"
	"fmt"
	"strings"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/shell"
)

// Command is one external tool invocation of the pipeline.
type Command struct {
	Directory   string
	Environment []string
	Args        []string
}

func (it Command) String() string {
	return strings.Join(it.Args, " ")
}

type Runner interface {
	Run(ctx context.Context, command Command) error
}

type shellRunner struct{}

// ShellRunner runs commands for real, with terminal streams inherited.
func ShellRunner() Runner {
	return shellRunner{}
}

func (shellRunner) Run(ctx context.Context, command Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	common.Debug("Running %q in %q.", command, command.Directory)
	outcome := shell.New(command.Environment, command.Directory, command.Args...).WithStreams(nil, nil, nil).Run()
	if !outcome.Ok() {
		return fmt.Errorf("%q failed: %s", command, outcome.Message)
	}
	return nil
}

// DryRunner only logs what would run.
type DryRunner struct{}

func (DryRunner) Run(ctx context.Context, command Command) error {
	common.Log("[dry-run] %s  (in %s)", command, command.Directory)
	return ctx.Err()
}
