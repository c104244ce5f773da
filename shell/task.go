package shell

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/joshyorko/wrangler-opencode/common"
)

type Task struct {
	environment []string
	directory   string
	executable  string
	args        []string
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
}

// New prepares a task. A nil environment inherits the parent environment.
func New(environment []string, directory string, task ...string) *Task {
	executable, args := "", []string{}
	if len(task) > 0 {
		executable, args = task[0], task[1:]
	}
	return &Task{
		environment: environment,
		directory:   directory,
		executable:  executable,
		args:        args,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}
}

func Split(commandline string) ([]string, error) {
	return shlex.Split(commandline)
}

// WithStreams replaces the inherited terminal streams; nil keeps the current one.
func (it *Task) WithStreams(stdin io.Reader, stdout, stderr io.Writer) *Task {
	if stdin != nil {
		it.stdin = stdin
	}
	if stdout != nil {
		it.stdout = stdout
	}
	if stderr != nil {
		it.stderr = stderr
	}
	return it
}

func (it *Task) String() string {
	return strings.Join(append([]string{it.executable}, it.args...), " ")
}

// Run starts the process and waits, without any timeout, until it exits.
func (it *Task) Run() Outcome {
	if len(it.executable) == 0 {
		return spawnFailed(errors.New("no executable given"))
	}
	command := exec.Command(it.executable, it.args...)
	command.Env = it.environment
	command.Dir = it.directory
	command.Stdin = it.stdin
	command.Stdout = it.stdout
	command.Stderr = it.stderr
	err := command.Start()
	if err != nil {
		common.Debug("Could not start %q, reason: %v", it, err)
		return spawnFailed(err)
	}
	common.Debug("PID #%d is %q.", command.Process.Pid, it)
	defer func() {
		common.Debug("PID #%d finished: %v.", command.Process.Pid, command.ProcessState)
	}()
	err = command.Wait()
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return exited(exit.ExitCode(), err)
	}
	if err != nil {
		return spawnFailed(err)
	}
	return succeeded()
}

func (it *Task) Execute() (int, error) {
	return it.Run().AsError()
}

// Capture runs the task with stdout collected; stderr stays on the terminal.
func (it *Task) Capture() (string, Outcome) {
	buffer := &bytes.Buffer{}
	it.stdout = buffer
	it.stdin = nil
	outcome := it.Run()
	return buffer.String(), outcome
}
