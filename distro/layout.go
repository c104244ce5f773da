package distro

import (
	"path/filepath"

	"github.com/joshyorko/wrangler-opencode/settings"
)

// Layout knows where each package lives under the dist folder.
type Layout struct {
	Root    string
	Dist    string
	Wrapper string
	Binary  string
}

func NewLayout(root string, config *settings.Settings) Layout {
	return Layout{
		Root:    root,
		Dist:    config.Distribution.Dist,
		Wrapper: config.Packages.Wrapper,
		Binary:  config.Packages.Binary,
	}
}

func (it Layout) path(parts ...string) string {
	return filepath.Join(append([]string{it.Root}, parts...)...)
}

// PackageDir is dist/<platform package> for target.
func (it Layout) PackageDir(target Target) string {
	return it.path(it.Dist, target.PackageName(it.Wrapper))
}

// Executable is the final bundled executable of target.
func (it Layout) Executable(target Target) string {
	return filepath.Join(it.PackageDir(target), "bin", target.Executable(it.Binary))
}

func (it Layout) WrapperDir() string {
	return it.path(it.Dist, it.Wrapper)
}

func (it Layout) Manifest(directory string) string {
	return filepath.Join(directory, "package.json")
}
