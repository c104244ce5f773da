package supervisor

import (
	"io"
	"os"
	"path/filepath"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/pathlib"
	"github.com/joshyorko/wrangler-opencode/settings"
)

// Options hold every piece of host state the supervisor reads. Nothing is
// taken from the process globals once Options are built.
type Options struct {
	WorkingDirectory string
	Workspace        string
	Environment      []string
	TempDirectory    string

	WrapperPackage   string
	WorkspacePackage string
	BinaryName       string
	ExecutableSuffix string
	BinDirectory     string
	EntryPoint       string
	Runtime          string
	Node             string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Strategies []Strategy
}

// DefaultOptions wires names from settings and streams from the terminal.
func DefaultOptions(workingDirectory string, environment []string, config *settings.Settings) Options {
	return Options{
		WorkingDirectory: workingDirectory,
		Workspace:        HostWorkspace(config),
		Environment:      environment,
		TempDirectory:    common.Product.TempLocation(),
		WrapperPackage:   config.Packages.Wrapper,
		WorkspacePackage: config.Packages.Workspace,
		BinaryName:       config.Packages.Binary,
		ExecutableSuffix: pathlib.ExecutableSuffix,
		BinDirectory:     config.Supervisor.Bin,
		EntryPoint:       config.Supervisor.WorkspaceEntry,
		Runtime:          config.Supervisor.Runtime,
		Node:             config.Supervisor.Node,
		Stdin:            os.Stdin,
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		Strategies:       DefaultStrategies(),
	}
}

// HostWorkspace is the development checkout of the host tool: the
// supervisor.workspace setting, or the nearest ancestor of the running
// executable that holds the workspace entry. Empty when there is none, so
// an unrelated project is never launched as a workspace.
func HostWorkspace(config *settings.Settings) string {
	if len(config.Supervisor.Workspace) > 0 {
		return common.ExpandPath(config.Supervisor.Workspace)
	}
	executable, err := os.Executable()
	if err != nil {
		common.Debug("Cannot locate running executable: %v", err)
		return ""
	}
	resolved, err := filepath.EvalSymlinks(executable)
	if err == nil {
		executable = resolved
	}
	return WorkspaceAbove(filepath.Dir(executable), config.Supervisor.WorkspaceEntry)
}

// WorkspaceAbove is the nearest of directory and its parents containing entry.
func WorkspaceAbove(directory, entry string) string {
	for _, parent := range pathlib.Parents(directory) {
		if pathlib.IsFile(filepath.Join(parent, entry)) {
			return parent
		}
	}
	return ""
}

func (it *Options) executableName() string {
	return it.BinaryName + it.ExecutableSuffix
}

func (it *Options) workspaceEntry() string {
	if filepath.IsAbs(it.EntryPoint) {
		return it.EntryPoint
	}
	if len(it.Workspace) == 0 {
		return ""
	}
	return filepath.Join(it.Workspace, it.EntryPoint)
}

func (it *Options) strategies() []Strategy {
	if len(it.Strategies) == 0 {
		return DefaultStrategies()
	}
	return it.Strategies
}
