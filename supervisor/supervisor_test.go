//go:build !windows

package supervisor_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshyorko/wrangler-opencode/hamlet"
	"github.com/joshyorko/wrangler-opencode/project"
	"github.com/joshyorko/wrangler-opencode/settings"
	"github.com/joshyorko/wrangler-opencode/supervisor"
)

const recorder = `#!/bin/sh
{
  echo "context=$CONTEXT_FILE"
  echo "prompt=${INITIAL_PROMPT-unset}"
  if test -f "$CONTEXT_FILE"; then echo "exists=yes"; else echo "exists=no"; fi
  for arg in "$@"; do echo "arg=$arg"; done
} > "$RECORD"
exit ${EXIT_CODE:-0}
`

type fixture struct {
	root    string
	handoff string
	record  string
	options supervisor.Options
}

func setup(t *testing.T, exitCode string) *fixture {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "project")
	if err := os.MkdirAll(root, 0o750); err != nil {
		t.Fatal(err)
	}
	result := &fixture{
		root:    root,
		handoff: filepath.Join(base, "handoff"),
		record:  filepath.Join(base, "record.txt"),
	}
	result.options = supervisor.Options{
		WorkingDirectory: root,
		Workspace:        root,
		Environment: []string{
			"PATH=" + os.Getenv("PATH"),
			"RECORD=" + result.record,
			"EXIT_CODE=" + exitCode,
			"INITIAL_PROMPT=stale",
		},
		TempDirectory:    result.handoff,
		WrapperPackage:   "wrangler-opencode",
		WorkspacePackage: "@wrangler/opencode",
		BinaryName:       "opencode",
		BinDirectory:     "bin",
		EntryPoint:       "packages/opencode/src/index.ts",
		Runtime:          "sh",
		Node:             "",
	}
	return result
}

func (it *fixture) install(t *testing.T, content string, mode os.FileMode) string {
	t.Helper()
	bin := filepath.Join(it.root, "node_modules", "wrangler-opencode", "bin")
	if err := os.MkdirAll(bin, 0o750); err != nil {
		t.Fatal(err)
	}
	executable := filepath.Join(bin, "opencode")
	if err := os.WriteFile(executable, []byte(content), mode); err != nil {
		t.Fatal(err)
	}
	return executable
}

func (it *fixture) workspace(t *testing.T) {
	t.Helper()
	entry := filepath.Join(it.root, "packages", "opencode", "src", "index.ts")
	if err := os.MkdirAll(filepath.Dir(entry), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(entry, []byte(recorder), 0o600); err != nil {
		t.Fatal(err)
	}
}

func (it *fixture) recorded(t *testing.T) map[string][]string {
	t.Helper()
	content, err := os.ReadFile(it.record)
	if err != nil {
		t.Fatal(err)
	}
	result := make(map[string][]string)
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		key, value, _ := strings.Cut(line, "=")
		result[key] = append(result[key], value)
	}
	return result
}

func (it *fixture) leftovers(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(it.handoff)
	if os.IsNotExist(err) {
		return 0
	}
	if err != nil {
		t.Fatal(err)
	}
	return len(entries)
}

func (it *fixture) run(instruction string, args ...string) error {
	sut := supervisor.New(it.options)
	return sut.Run(project.Gather(it.root, ""), instruction, args)
}

func launchError(t *testing.T, err error) *supervisor.LaunchError {
	t.Helper()
	var failure *supervisor.LaunchError
	if !errors.As(err, &failure) {
		t.Fatalf("expected launch error, got %v", err)
	}
	return failure
}

func TestInstalledPackageRunsWithForwardedArgumentsAndContext(t *testing.T) {
	must, wont := hamlet.Specifications(t)

	fixture := setup(t, "0")
	fixture.install(t, recorder, 0o755)

	must.Nil(fixture.run("", "--model", "x"))

	record := fixture.recorded(t)
	must.Equal([]string{"--model", "x", fixture.root}, record["arg"])
	must.Equal([]string{"unset"}, record["prompt"])
	must.Equal([]string{"yes"}, record["exists"])
	wont.Equal("", record["context"][0])
	must.True(strings.HasPrefix(record["context"][0], fixture.handoff))
	must.Equal(0, fixture.leftovers(t))
}

func TestInstructionBecomesInitialPrompt(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	fixture := setup(t, "0")
	fixture.install(t, recorder, 0o755)

	must.Nil(fixture.run("hello"))

	record := fixture.recorded(t)
	must.Equal([]string{"hello"}, record["prompt"])
	must.Equal([]string{fixture.root}, record["arg"])
}

func TestNonZeroExitCarriesTheCode(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	fixture := setup(t, "3")
	fixture.install(t, recorder, 0o755)

	failure := launchError(t, fixture.run(""))
	must.Equal(supervisor.NonZeroExit, failure.Kind)
	must.Equal(3, failure.Code)
	must.True(strings.Contains(failure.Error(), "3"))
	must.Equal(0, fixture.leftovers(t))
}

func TestWorkspaceEntryIsPreferredOverInstalledPackage(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	fixture := setup(t, "0")
	fixture.install(t, "#!/bin/sh\nexit 42\n", 0o755)
	fixture.workspace(t)

	must.Nil(fixture.run("", "extra"))
	must.Equal([]string{"extra", fixture.root}, fixture.recorded(t)["arg"])
}

func TestProjectShapedLikeWorkspaceIsNotLaunchedAsOne(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	fixture := setup(t, "0")
	fixture.install(t, recorder, 0o755)
	fixture.workspace(t)
	fixture.options.Workspace = ""
	fixture.options.Runtime = "false"

	must.Nil(fixture.run("", "extra"))
	must.Equal([]string{"extra", fixture.root}, fixture.recorded(t)["arg"])
}

func TestHostWorkspaceIsSettingOrCheckoutAboveExecutable(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	fixture := setup(t, "0")
	fixture.workspace(t)
	entry := "packages/opencode/src/index.ts"
	nested := filepath.Join(fixture.root, "packages", "wrangler", "bin")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}
	must.Equal(fixture.root, supervisor.WorkspaceAbove(nested, entry))
	must.Equal("", supervisor.WorkspaceAbove(t.TempDir(), entry))

	config := &settings.Settings{}
	config.Supervisor.WorkspaceEntry = entry
	must.Equal("", supervisor.HostWorkspace(config))
	config.Supervisor.Workspace = fixture.root
	must.Equal(fixture.root, supervisor.HostWorkspace(config))
}

func TestMissingBinaryInsideFoundPackage(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	fixture := setup(t, "0")
	executable := fixture.install(t, recorder, 0o755)
	if err := os.Remove(executable); err != nil {
		t.Fatal(err)
	}

	failure := launchError(t, fixture.run(""))
	must.Equal(supervisor.BinaryNotFound, failure.Kind)
	must.Equal(executable, failure.Path)
	must.Equal(0, fixture.leftovers(t))
}

func TestNoPackageAnywhereNamesBothPackages(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	fixture := setup(t, "0")

	failure := launchError(t, fixture.run(""))
	must.Equal(supervisor.PackageNotFound, failure.Kind)
	must.True(strings.Contains(failure.Error(), "@wrangler/opencode"))
	must.True(strings.Contains(failure.Error(), "wrangler-opencode"))
	must.Equal(0, fixture.leftovers(t))
}

func TestUnstartableBinaryIsSpawnFailure(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	fixture := setup(t, "0")
	fixture.install(t, recorder, 0o644)

	failure := launchError(t, fixture.run(""))
	must.Equal(supervisor.SpawnFailed, failure.Kind)
	must.Equal(0, fixture.leftovers(t))
}

func TestParentWalkFindsPackageAboveWorkingDirectory(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	fixture := setup(t, "0")
	fixture.install(t, recorder, 0o755)
	nested := filepath.Join(fixture.root, "src", "deep")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}
	options := fixture.options
	options.WorkingDirectory = nested

	directory, ok := supervisor.ParentWalk(&options)
	must.True(ok)
	must.Equal(filepath.Join(fixture.root, "node_modules", "wrangler-opencode"), directory)
}

func TestEnvironmentDropsStaleHandoffVariables(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	base := []string{"A=1", "CONTEXT_FILE=/old", "INITIAL_PROMPT=old"}
	must.Equal([]string{"A=1", "CONTEXT_FILE=/new"}, supervisor.Environment(base, "/new", ""))
	must.Equal([]string{"A=1", "CONTEXT_FILE=/new", "INITIAL_PROMPT=go"}, supervisor.Environment(base, "/new", "go"))
}
