package distro_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/joshyorko/wrangler-opencode/distro"
)

// recorder remembers commands and fakes the bundler output file.
type recorder struct {
	sync.Mutex
	commands []distro.Command
	failOn   string
}

func (it *recorder) Run(ctx context.Context, command distro.Command) error {
	it.Lock()
	it.commands = append(it.commands, command)
	it.Unlock()
	for index, arg := range command.Args {
		if arg == "--outfile" && index+1 < len(command.Args) {
			if err := os.WriteFile(command.Args[index+1], []byte("binary"), 0o755); err != nil {
				return err
			}
		}
		if len(it.failOn) > 0 && arg == it.failOn {
			return os.ErrPermission
		}
	}
	return nil
}

func (it *recorder) tools() []string {
	it.Lock()
	defer it.Unlock()
	result := []string{}
	for _, command := range it.commands {
		result = append(result, command.Args[0]+" "+command.Args[1])
	}
	return result
}

func layout(t *testing.T) distro.Layout {
	t.Helper()
	return distro.Layout{
		Root:    t.TempDir(),
		Dist:    "dist",
		Wrapper: "wrangler-opencode",
		Binary:  "opencode",
	}
}

func builder(t *testing.T, runner distro.Runner) *distro.Builder {
	t.Helper()
	return &distro.Builder{
		Layout:        layout(t),
		NativeDir:     "packages/tui",
		NativePackage: "./cmd/opencode",
		ScriptEntry:   "packages/opencode/src/index.ts",
		Bun:           "bun",
		Go:            "go",
		Environment:   []string{"PATH=/usr/bin"},
		Runner:        runner,
	}
}

func writeFile(t *testing.T, filename, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(filename), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filename, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
