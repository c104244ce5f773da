package distro_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/distro"
	"github.com/joshyorko/wrangler-opencode/hamlet"
	"github.com/joshyorko/wrangler-opencode/journal"
)

const assistantManifest = `{
  "name": "@wrangler/opencode",
  "version": "1.2.3",
  "private": true
}
`

const hostManifest = `{
  "name": "wrangler",
  "version": "4.0.9",
  "dependencies": {
    "esbuild": "0.24.0",
    "wrangler-opencode": "^1.2.3"
  }
}
`

func publisher(t *testing.T, runner *recorder) *distro.Publisher {
	t.Helper()
	t.Setenv(common.HOME_VARIABLE, t.TempDir())
	build := builder(t, runner)
	writeFile(t, filepath.Join(build.Root, "packages/opencode/package.json"), assistantManifest)
	writeFile(t, filepath.Join(build.Root, "packages/wrangler/package.json"), hostManifest)
	return &distro.Publisher{
		Builder:           build,
		Assembler:         distro.NewAssembler(build.Layout),
		Host:              "wrangler",
		HostDir:           "packages/wrangler",
		HostManifest:      "packages/wrangler/package.json",
		HostBuild:         "npm run build",
		AssistantManifest: "packages/opencode/package.json",
		Npm:               "npm",
		Git:               "git",
		Targets:           distro.Targets,
		Runner:            runner,
	}
}

func read(t *testing.T, filename string) string {
	t.Helper()
	blob, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	return string(blob)
}

func TestMinorReleaseRunsEveryStepInOrder(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	runner := &recorder{}
	sut := publisher(t, runner)
	must.Nil(sut.Publish(context.Background(), distro.Minor))

	assistant := read(t, filepath.Join(sut.Builder.Root, "packages/opencode/package.json"))
	must.True(strings.Contains(assistant, `"version": "1.3.0"`))
	must.True(strings.Contains(assistant, `"private": true`))

	host := read(t, filepath.Join(sut.Builder.Root, "packages/wrangler/package.json"))
	must.True(strings.Contains(host, `"version": "4.1.0"`))
	must.True(strings.Contains(host, `"wrangler-opencode": "^1.3.0"`))
	must.True(strings.Contains(host, `"esbuild": "0.24.0"`))

	tools := runner.tools()
	expected := []string{}
	for range distro.Targets {
		expected = append(expected, "go build", "bun build")
	}
	expected = append(expected, "npm run")
	for range distro.Targets {
		expected = append(expected, "npm publish")
	}
	expected = append(expected, "npm publish", "npm publish", "git add", "git commit")
	must.Equal(expected, tools)

	publishes := []string{}
	for _, command := range runner.commands {
		if command.Args[0] == "npm" && command.Args[1] == "publish" {
			must.Equal([]string{"npm", "publish", "--access", "public"}, command.Args)
			publishes = append(publishes, filepath.Base(command.Directory))
		}
	}
	must.Equal("wrangler-opencode-linux-x64", publishes[0])
	must.Equal("wrangler-opencode", publishes[len(publishes)-2])
	must.Equal("wrangler", publishes[len(publishes)-1])

	last := runner.commands[len(runner.commands)-1]
	must.Equal("release: opencode v1.3.0, wrangler v4.1.0", last.Args[3])

	version, err := distro.VerifyVersions(filepath.Join(sut.Builder.WrapperDir(), "package.json"))
	must.Nil(err)
	must.Equal("1.3.0", version)

	events, err := journal.Events()
	must.Nil(err)
	must.Equal(1, len(events))
	must.Equal("wrangler-opencode@1.3.0 wrangler@4.1.0", events[0].Detail)
}

func TestPlanSummaryNamesEveryPublishedPackage(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	sut := publisher(t, &recorder{})
	release, err := sut.Plan(distro.Minor)
	must.Nil(err)

	must.Equal("Release (minor bump)", release.Title())
	summary := release.Summary()
	must.Equal(len(release.Packages)+2, len(summary))
	must.Equal("assistant 1.2.3 -> 1.3.0", summary[0])
	must.Equal("host      4.0.9 -> 4.1.0", summary[1])
	must.Equal("publish   wrangler@4.1.0", summary[len(summary)-1])
}

func TestDryRunChangesNothing(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	runner := &recorder{}
	sut := publisher(t, runner)
	sut.DryRun = true
	must.Nil(sut.Publish(context.Background(), distro.Patch))

	must.Equal(0, len(runner.tools()))
	must.Equal(assistantManifest, read(t, filepath.Join(sut.Builder.Root, "packages/opencode/package.json")))
	must.Equal(hostManifest, read(t, filepath.Join(sut.Builder.Root, "packages/wrangler/package.json")))

	events, err := journal.Events()
	must.Nil(err)
	must.Equal(0, len(events))
}

func TestPlanRefusesPublishedVersions(t *testing.T) {
	must, wont := hamlet.Specifications(t)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/wrangler/4.0.10" {
			writer.Write([]byte(`{"version": "4.0.10"}`))
			return
		}
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	registry, err := distro.NewRegistry(server.URL)
	must.Nil(err)

	runner := &recorder{}
	sut := publisher(t, runner)
	sut.Registry = registry

	_, err = sut.Plan(distro.Patch)
	must.True(errors.Is(err, distro.ErrAlreadyPublished))

	release, err := sut.Plan(distro.Major)
	must.Nil(err)
	must.Equal("2.0.0", release.AssistantTo)
	must.Equal("5.0.0", release.HostTo)
	must.Equal(len(distro.Targets)+2, len(release.Packages))
	wont.Equal(0, len(release.CommitMessage("opencode", "wrangler")))
	must.Equal(0, len(runner.tools()))
}

func TestRegistryLatestVersion(t *testing.T) {
	must, wont := hamlet.Specifications(t)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.EscapedPath() == "/@wrangler%2Fopencode/latest" {
			writer.Write([]byte(`{"name": "@wrangler/opencode", "version": "1.2.3"}`))
			return
		}
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	registry, err := distro.NewRegistry(server.URL)
	must.Nil(err)
	version, err := registry.Latest("@wrangler/opencode")
	must.Nil(err)
	must.Equal("1.2.3", version)

	_, err = registry.Latest("missing")
	wont.Nil(err)
}
