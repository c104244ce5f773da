package supervisor

import (
	"strings"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/handoff"
	"github.com/joshyorko/wrangler-opencode/project"
	"github.com/joshyorko/wrangler-opencode/shell"
)

type Supervisor struct {
	Options Options
}

func New(options Options) *Supervisor {
	return &Supervisor{Options: options}
}

// Environment derives the child environment from base. CONTEXT_FILE always
// points at the handoff file, INITIAL_PROMPT exists only with an instruction.
func Environment(base []string, contextFile, instruction string) []string {
	result := make([]string, 0, len(base)+2)
	for _, entry := range base {
		if hasKey(entry, common.ContextFileEnv) || hasKey(entry, common.InitialPrompt) {
			continue
		}
		result = append(result, entry)
	}
	result = append(result, common.ContextFileEnv+"="+contextFile)
	if len(instruction) > 0 {
		result = append(result, common.InitialPrompt+"="+instruction)
	}
	return result
}

func hasKey(entry, key string) bool {
	return strings.HasPrefix(entry, key+"=")
}

// Run writes the handoff file, launches the assistant with inherited streams
// and blocks until it exits. The handoff file is removed on every path.
func (it *Supervisor) Run(context *project.Context, instruction string, args []string) (err error) {
	defer common.Stopwatch("Assistant session lasted").Debug()

	options := &it.Options
	filename, err := handoff.WriteContextFile(options.TempDirectory, context)
	if err != nil {
		return err
	}
	defer handoff.Remove(filename)

	resolution, err := Resolve(options)
	if err != nil {
		return err
	}

	command := make([]string, 0, len(resolution.Command)+len(args)+1)
	command = append(command, resolution.Command...)
	command = append(command, args...)
	command = append(command, context.ProjectRoot)

	environment := Environment(options.Environment, filename, instruction)
	common.Debug("Launching %q from %s.", command, resolution.Source)
	outcome := shell.New(environment, options.WorkingDirectory, command...).WithStreams(options.Stdin, options.Stdout, options.Stderr).Run()
	return fromOutcome(outcome)
}

func fromOutcome(outcome shell.Outcome) error {
	switch outcome.Kind {
	case shell.Success:
		return nil
	case shell.NonZeroExit:
		return &LaunchError{Kind: NonZeroExit, Code: outcome.Code, Err: outcome.Err}
	}
	return &LaunchError{Kind: SpawnFailed, Code: outcome.Code, Err: outcome.Err}
}
