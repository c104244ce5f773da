package distro

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joshyorko/wrangler-opencode/anywork"
	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/fail"
	"github.com/joshyorko/wrangler-opencode/pathlib"
	"github.com/joshyorko/wrangler-opencode/settings"
)

const nativeName = "tui"

// Builder compiles the native component and the bundled assistant
// executable for each target.
type Builder struct {
	Layout
	NativeDir     string
	NativePackage string
	ScriptEntry   string
	Bun           string
	Go            string
	Environment   []string
	Parallel      bool
	DryRun        bool
	Runner        Runner
}

func NewBuilder(root string, config *settings.Settings) *Builder {
	return &Builder{
		Layout:        NewLayout(root, config),
		NativeDir:     config.Distribution.NativeDir,
		NativePackage: config.Distribution.NativePackage,
		ScriptEntry:   config.Distribution.ScriptEntry,
		Bun:           config.Distribution.Bun,
		Go:            config.Distribution.Go,
		Environment:   os.Environ(),
		Runner:        ShellRunner(),
	}
}

func (it *Builder) native(target Target) string {
	return filepath.Join(it.PackageDir(target), "bin", target.Executable(nativeName))
}

func (it *Builder) environment(extra ...string) []string {
	result := make([]string, 0, len(it.Environment)+len(extra))
	result = append(result, it.Environment...)
	return append(result, extra...)
}

// Commands are the two compile steps for target, in order.
func (it *Builder) Commands(target Target, version string) []Command {
	native := it.native(target)
	embedded, err := filepath.Rel(it.PackageDir(target), native)
	if err != nil {
		embedded = native
	}
	goBuild := Command{
		Directory: it.path(it.NativeDir),
		Environment: it.environment(
			"GOOS="+target.OS,
			"GOARCH="+target.Arch,
			"CGO_ENABLED=0",
		),
		Args: []string{
			it.Go, "build",
			"-trimpath",
			"-ldflags", fmt.Sprintf("-s -w -X main.Version=%s", version),
			"-o", native,
			it.NativePackage,
		},
	}
	bunBuild := Command{
		Directory:   it.Root,
		Environment: it.environment(),
		Args: []string{
			it.Bun, "build",
			"--compile",
			"--target=" + target.BunTarget(),
			"--define", fmt.Sprintf("OPENCODE_VERSION=%q", version),
			"--define", fmt.Sprintf("OPENCODE_TUI_PATH=%q", filepath.ToSlash(embedded)),
			"--outfile", it.Executable(target),
			it.path(it.ScriptEntry),
			native,
		},
	}
	return []Command{goBuild, bunBuild}
}

func (it *Builder) runner() Runner {
	if it.DryRun {
		return DryRunner{}
	}
	if it.Runner == nil {
		return ShellRunner()
	}
	return it.Runner
}

func (it *Builder) buildOne(ctx context.Context, target Target, version string) (err error) {
	defer fail.Around(&err)
	defer common.Stopwatch("Target %s built in", target).Log()

	common.Log("Building %s (%s) ...", target, target.PackageName(it.Wrapper))
	if !it.DryRun {
		err = pathlib.EnsureDirectoryExists(filepath.Dir(it.Executable(target)))
		fail.On(err != nil, "Failed to create %q, reason: %v", filepath.Dir(it.Executable(target)), err)
	}
	runner := it.runner()
	for _, command := range it.Commands(target, version) {
		err = runner.Run(ctx, command)
		fail.On(err != nil, "Target %s: %v", target, err)
	}
	if !it.DryRun {
		err = pathlib.TryRemove(it.native(target))
		fail.On(err != nil, "Failed to remove %q, reason: %v", it.native(target), err)
	}
	return nil
}

// Build compiles every target, sequentially unless Parallel is set.
func (it *Builder) Build(ctx context.Context, targets []Target, version string) error {
	common.Timeline("build %d targets start", len(targets))
	defer common.Timeline("build %d targets done", len(targets))

	if !it.Parallel || len(targets) < 2 {
		for _, target := range targets {
			err := it.buildOne(ctx, target, version)
			if err != nil {
				return err
			}
		}
		return nil
	}

	for _, target := range targets {
		target := target
		anywork.Backlog(target.String(), func() error {
			return it.buildOne(ctx, target, version)
		})
	}
	return anywork.Sync()
}
