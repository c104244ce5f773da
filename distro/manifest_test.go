package distro_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshyorko/wrangler-opencode/distro"
	"github.com/joshyorko/wrangler-opencode/hamlet"
)

func installExecutables(t *testing.T, layout distro.Layout, targets []distro.Target) {
	t.Helper()
	for _, target := range targets {
		writeFile(t, layout.Executable(target), "binary")
	}
}

func readManifest(t *testing.T, filename string) *distro.Manifest {
	t.Helper()
	blob, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	result := &distro.Manifest{}
	if err := json.Unmarshal(blob, result); err != nil {
		t.Fatal(err)
	}
	return result
}

func TestAssembleWritesPlatformAndWrapperPackages(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	layout := layout(t)
	installExecutables(t, layout, distro.Targets)
	sut := distro.NewAssembler(layout)

	manifests, err := sut.Assemble(distro.Targets, "1.3.0")
	must.Nil(err)
	must.Equal(len(distro.Targets)+1, len(manifests))

	windows := readManifest(t, manifests[4])
	must.Equal("wrangler-opencode-win32-x64", windows.Name)
	must.Equal("1.3.0", windows.Version)
	must.Equal([]string{"win32"}, windows.OS)
	must.Equal([]string{"x64"}, windows.CPU)
	must.Equal("bin/opencode.exe", windows.Main)
	must.Equal(map[string]string{"opencode": "bin/opencode.exe"}, windows.Bin)

	wrapper := readManifest(t, manifests[5])
	must.Equal("wrangler-opencode", wrapper.Name)
	must.Nil(wrapper.OS)
	must.Nil(wrapper.CPU)
	must.Equal(map[string]string{"opencode": "bin/opencode"}, wrapper.Bin)
	must.Equal("node ./postinstall.mjs", wrapper.Scripts["postinstall"])
	must.Equal(len(distro.Targets), len(wrapper.OptionalDependencies))
	for _, target := range distro.Targets {
		must.Equal("1.3.0", wrapper.OptionalDependencies[target.PackageName("wrangler-opencode")])
	}

	launcher, err := os.ReadFile(filepath.Join(layout.WrapperDir(), "bin", "opencode"))
	must.Nil(err)
	postinstall, err := os.ReadFile(filepath.Join(layout.WrapperDir(), "postinstall.mjs"))
	must.Nil(err)
	for _, target := range distro.Targets {
		must.True(strings.Contains(string(launcher), target.PackageName("wrangler-opencode")))
		must.True(strings.Contains(string(postinstall), target.PackageName("wrangler-opencode")))
	}
	must.True(strings.Contains(string(launcher), `"win32-x64": { package: "wrangler-opencode-win32-x64", executable: "opencode.exe" }`))
	must.True(strings.HasPrefix(string(launcher), "#!/usr/bin/env node\n"))
}

func TestAssembleNeedsBuiltExecutables(t *testing.T) {
	_, wont := hamlet.Specifications(t)

	sut := distro.NewAssembler(layout(t))
	_, err := sut.Assemble(distro.Targets, "1.3.0")
	wont.Nil(err)
}

func TestVersionDriftIsFatal(t *testing.T) {
	must, wont := hamlet.Specifications(t)

	directory := t.TempDir()
	first := filepath.Join(directory, "a.json")
	second := filepath.Join(directory, "b.json")
	wrapper := filepath.Join(directory, "c.json")
	writeFile(t, first, `{"name": "a", "version": "1.3.0"}`)
	writeFile(t, second, `{"name": "b", "version": "1.2.9"}`)
	writeFile(t, wrapper, `{"name": "c", "version": "1.3.0", "optionalDependencies": {"a": "1.3.0", "b": "1.2.9"}}`)

	version, err := distro.VerifyVersions(first)
	must.Nil(err)
	must.Equal("1.3.0", version)

	_, err = distro.VerifyVersions(first, second)
	must.True(errors.Is(err, distro.ErrVersionMismatch))

	_, err = distro.VerifyVersions(first, wrapper)
	must.True(errors.Is(err, distro.ErrVersionMismatch))

	_, err = distro.VerifyVersions(filepath.Join(directory, "missing.json"))
	wont.Nil(err)
}
