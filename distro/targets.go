package distro

import (
	"fmt"
	"runtime"
	"strings"
)

// Target is one (GOOS, GOARCH) pair of the build matrix.
type Target struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
}

// Targets is the one build matrix shared by building, packaging and
// publishing.
var Targets = []Target{
	{OS: "linux", Arch: "amd64"},
	{OS: "linux", Arch: "arm64"},
	{OS: "darwin", Arch: "amd64"},
	{OS: "darwin", Arch: "arm64"},
	{OS: "windows", Arch: "amd64"},
}

var (
	npmOS = map[string]string{
		"windows": "win32",
	}
	npmCPU = map[string]string{
		"amd64": "x64",
	}
	bunCPU = map[string]string{
		"amd64": "x64",
	}
)

func lookup(table map[string]string, key string) string {
	if value, ok := table[key]; ok {
		return value
	}
	return key
}

func HostTarget() Target {
	return Target{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

func (it Target) String() string {
	return it.OS + "/" + it.Arch
}

func (it Target) NpmOS() string {
	return lookup(npmOS, it.OS)
}

func (it Target) NpmCPU() string {
	return lookup(npmCPU, it.Arch)
}

func (it Target) BunTarget() string {
	return fmt.Sprintf("bun-%s-%s", it.OS, lookup(bunCPU, it.Arch))
}

// PackageName is the platform package name, in npm os and cpu vocabulary.
func (it Target) PackageName(wrapper string) string {
	return fmt.Sprintf("%s-%s-%s", wrapper, it.NpmOS(), it.NpmCPU())
}

func (it Target) Executable(name string) string {
	if it.OS == "windows" {
		return name + ".exe"
	}
	return name
}

// Select picks the host target only in development mode.
func Select(development bool) []Target {
	if development {
		return []Target{HostTarget()}
	}
	result := make([]Target, len(Targets))
	copy(result, Targets)
	return result
}

// ParseTargets reads "os/arch" pairs separated by commas.
func ParseTargets(text string) ([]Target, error) {
	result := []Target{}
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if len(part) == 0 {
			continue
		}
		goos, goarch, ok := strings.Cut(part, "/")
		if !ok || len(goos) == 0 || len(goarch) == 0 {
			return nil, fmt.Errorf("target %q is not in os/arch form", part)
		}
		result = append(result, Target{OS: goos, Arch: goarch})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no targets in %q", text)
	}
	return result, nil
}
