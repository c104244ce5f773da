package supervisor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/pathlib"
	"github.com/joshyorko/wrangler-opencode/shell"
)

// Resolution is what should be executed, before forwarded arguments.
type Resolution struct {
	Command []string
	Source  string
}

// Strategy locates the assistant; (nil, nil) means "not here, try next".
type Strategy interface {
	Name() string
	Locate(options *Options) (*Resolution, error)
}

// PackageFinder returns an installed package directory, if any.
type PackageFinder func(options *Options) (string, bool)

type workspaceEntry struct{}

type packageStrategy struct {
	name   string
	finder PackageFinder
}

func DefaultStrategies() []Strategy {
	return []Strategy{
		WorkspaceEntry(),
		PackageStrategy("node resolution", NodeResolution),
		PackageStrategy("parent walk", ParentWalk),
	}
}

func WorkspaceEntry() Strategy {
	return workspaceEntry{}
}

func (workspaceEntry) Name() string {
	return "workspace entry"
}

func (workspaceEntry) Locate(options *Options) (*Resolution, error) {
	entry := options.workspaceEntry()
	if len(entry) == 0 || !pathlib.IsFile(entry) {
		return nil, nil
	}
	runtime, err := shell.Split(options.Runtime)
	if err != nil {
		return nil, fmt.Errorf("invalid runtime command %q: %w", options.Runtime, err)
	}
	if len(runtime) == 0 {
		return nil, fmt.Errorf("runtime command is empty")
	}
	return &Resolution{
		Command: append(runtime, entry),
		Source:  "workspace",
	}, nil
}

// PackageStrategy turns a directory finder into a strategy that expects
// the assistant in the package bin folder.
func PackageStrategy(name string, finder PackageFinder) Strategy {
	return packageStrategy{name: name, finder: finder}
}

func (it packageStrategy) Name() string {
	return it.name
}

func (it packageStrategy) Locate(options *Options) (*Resolution, error) {
	directory, ok := it.finder(options)
	if !ok {
		return nil, nil
	}
	command := InstalledCommand(options, filepath.Join(directory, options.BinDirectory))
	if command == nil {
		return nil, &LaunchError{
			Kind:     BinaryNotFound,
			Path:     filepath.Join(directory, options.BinDirectory, options.executableName()),
			Packages: []string{options.WorkspacePackage, options.WrapperPackage},
		}
	}
	if len(command) == 1 && !pathlib.IsExecutable(command[0]) {
		common.Debug("File %q is not executable by current user.", command[0])
	}
	return &Resolution{
		Command: command,
		Source:  directory,
	}, nil
}

// InstalledCommand picks what to run from an installed wrapper bin folder:
// the native executable linked there by postinstall, then a native
// executable of the plain name, then the node launcher. The launcher has no
// suffix, so where executables need one it is run through node.
func InstalledCommand(options *Options, bin string) []string {
	linked := filepath.Join(bin, "."+options.executableName())
	if pathlib.IsFile(linked) {
		return []string{linked}
	}
	native := filepath.Join(bin, options.executableName())
	if pathlib.IsFile(native) {
		return []string{native}
	}
	launcher := filepath.Join(bin, options.BinaryName)
	if len(options.ExecutableSuffix) > 0 && len(options.Node) > 0 && pathlib.IsFile(launcher) {
		return []string{options.Node, launcher}
	}
	return nil
}

// NodeResolution asks node for the wrapper package location. Any failure,
// node missing included, counts as "not found".
func NodeResolution(options *Options) (string, bool) {
	if len(options.Node) == 0 {
		return "", false
	}
	script := fmt.Sprintf("console.log(require.resolve(%q))", options.WrapperPackage+"/package.json")
	output, outcome := shell.New(options.Environment, options.WorkingDirectory, options.Node, "-e", script).WithStreams(nil, nil, io.Discard).Capture()
	if !outcome.Ok() {
		common.Debug("Node could not resolve %q: %s", options.WrapperPackage, outcome.Message)
		return "", false
	}
	manifest := strings.TrimSpace(output)
	if len(manifest) == 0 || !pathlib.IsFile(manifest) {
		return "", false
	}
	return filepath.Dir(manifest), true
}

// ParentWalk looks for node_modules/<wrapper> from the working directory up.
func ParentWalk(options *Options) (string, bool) {
	segments := strings.Split(options.WrapperPackage, "/")
	for _, parent := range pathlib.Parents(options.WorkingDirectory) {
		candidate := filepath.Join(append([]string{parent, "node_modules"}, segments...)...)
		if pathlib.IsDir(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Resolve tries strategies in order; the first hit wins.
func Resolve(options *Options) (*Resolution, error) {
	for _, strategy := range options.strategies() {
		resolution, err := strategy.Locate(options)
		if err != nil {
			return nil, err
		}
		if resolution != nil {
			common.Debug("Assistant resolved by %s: %q", strategy.Name(), resolution.Command)
			return resolution, nil
		}
		common.Trace("Strategy %s found nothing.", strategy.Name())
	}
	return nil, &LaunchError{
		Kind:     PackageNotFound,
		Packages: []string{options.WorkspacePackage, options.WrapperPackage},
	}
}
