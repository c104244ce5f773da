package distro

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/fail"
	"github.com/joshyorko/wrangler-opencode/pathlib"
	"github.com/tidwall/gjson"
)

var ErrVersionMismatch = errors.New("package versions differ")

//go:embed assets/*.tmpl
var assets embed.FS

const (
	launcherName    = "opencode"
	postinstallName = "postinstall.mjs"
)

// Manifest is the subset of package.json the install-time resolver reads.
type Manifest struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Description          string            `json:"description,omitempty"`
	OS                   []string          `json:"os,omitempty"`
	CPU                  []string          `json:"cpu,omitempty"`
	Main                 string            `json:"main,omitempty"`
	Bin                  map[string]string `json:"bin"`
	Scripts              map[string]string `json:"scripts,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
}

type platformEntry struct {
	Key        string
	Package    string
	Executable string
}

type templateData struct {
	Wrapper string
	Binary  string
	Targets []platformEntry
}

type Assembler struct {
	Layout
}

func NewAssembler(layout Layout) *Assembler {
	return &Assembler{Layout: layout}
}

func (it *Assembler) PlatformManifest(target Target, version string) *Manifest {
	executable := "bin/" + target.Executable(it.Binary)
	return &Manifest{
		Name:        target.PackageName(it.Wrapper),
		Version:     version,
		Description: fmt.Sprintf("%s binary for %s", it.Binary, target),
		OS:          []string{target.NpmOS()},
		CPU:         []string{target.NpmCPU()},
		Main:        executable,
		Bin:         map[string]string{it.Binary: executable},
	}
}

func (it *Assembler) WrapperManifest(targets []Target, version string) *Manifest {
	optional := make(map[string]string, len(targets))
	for _, target := range targets {
		optional[target.PackageName(it.Wrapper)] = version
	}
	return &Manifest{
		Name:                 it.Wrapper,
		Version:              version,
		Bin:                  map[string]string{it.Binary: "bin/" + launcherName},
		Scripts:              map[string]string{"postinstall": "node ./" + postinstallName},
		OptionalDependencies: optional,
	}
}

func (it *Assembler) data(targets []Target) templateData {
	entries := make([]platformEntry, 0, len(targets))
	for _, target := range targets {
		entries = append(entries, platformEntry{
			Key:        target.NpmOS() + "-" + target.NpmCPU(),
			Package:    target.PackageName(it.Wrapper),
			Executable: target.Executable(it.Binary),
		})
	}
	return templateData{Wrapper: it.Wrapper, Binary: it.Binary, Targets: entries}
}

// Render expands one embedded script template for targets.
func (it *Assembler) Render(name string, targets []Target) ([]byte, error) {
	blob, err := assets.ReadFile("assets/" + name + ".tmpl")
	if err != nil {
		return nil, err
	}
	parsed, err := template.New(name).Parse(string(blob))
	if err != nil {
		return nil, err
	}
	buffer := &bytes.Buffer{}
	err = parsed.Execute(buffer, it.data(targets))
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func writeManifest(filename string, manifest *Manifest) (err error) {
	defer fail.Around(&err)

	blob, err := json.MarshalIndent(manifest, "", "  ")
	fail.On(err != nil, "Failed to serialize %q, reason: %v", manifest.Name, err)
	err = pathlib.EnsureDirectoryExists(filepath.Dir(filename))
	fail.Fast(err)
	err = os.WriteFile(filename, append(blob, '\n'), 0o644)
	fail.On(err != nil, "Failed to write %q, reason: %v", filename, err)
	common.Debug("Wrote %s@%s to %q.", manifest.Name, manifest.Version, filename)
	return nil
}

// Assemble writes every platform manifest, then the wrapper package, and
// returns the manifest files after verifying their versions agree.
func (it *Assembler) Assemble(targets []Target, version string) (manifests []string, err error) {
	defer fail.Around(&err)

	manifests = make([]string, 0, len(targets)+1)
	for _, target := range targets {
		directory := it.PackageDir(target)
		fail.On(!pathlib.IsFile(it.Executable(target)), "Target %s has no executable at %q, build it first.", target, it.Executable(target))
		filename := it.Manifest(directory)
		fail.Fast(writeManifest(filename, it.PlatformManifest(target, version)))
		manifests = append(manifests, filename)
	}

	wrapper := it.WrapperDir()
	filename := it.Manifest(wrapper)
	fail.Fast(writeManifest(filename, it.WrapperManifest(targets, version)))
	manifests = append(manifests, filename)

	launcher, err := it.Render("launcher", targets)
	fail.Fast(err)
	fail.Fast(pathlib.EnsureDirectoryExists(filepath.Join(wrapper, "bin")))
	err = os.WriteFile(filepath.Join(wrapper, "bin", launcherName), launcher, 0o755)
	fail.On(err != nil, "Failed to write launcher, reason: %v", err)

	postinstall, err := it.Render("postinstall", targets)
	fail.Fast(err)
	err = os.WriteFile(filepath.Join(wrapper, postinstallName), postinstall, 0o644)
	fail.On(err != nil, "Failed to write %s, reason: %v", postinstallName, err)

	_, err = VerifyVersions(manifests...)
	fail.Fast(err)
	return manifests, nil
}

// VerifyVersions re-reads manifests and demands one shared version, also
// in every optionalDependencies entry.
func VerifyVersions(manifests ...string) (string, error) {
	version := ""
	for _, filename := range manifests {
		blob, err := os.ReadFile(filename)
		if err != nil {
			return "", err
		}
		if !gjson.ValidBytes(blob) {
			return "", fmt.Errorf("%q is not valid JSON", filename)
		}
		found := []string{gjson.GetBytes(blob, "version").String()}
		gjson.GetBytes(blob, "optionalDependencies").ForEach(func(_, value gjson.Result) bool {
			found = append(found, value.String())
			return true
		})
		for _, current := range found {
			if len(version) == 0 {
				version = current
			}
			if current != version || len(current) == 0 {
				return "", fmt.Errorf("%w: %q has %q, expected %q", ErrVersionMismatch, filename, current, version)
			}
		}
	}
	return version, nil
}
