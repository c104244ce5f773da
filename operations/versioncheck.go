package operations

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/distro"
	"github.com/joshyorko/wrangler-opencode/fail"
	"github.com/joshyorko/wrangler-opencode/pathlib"
	"github.com/joshyorko/wrangler-opencode/pretty"
	"github.com/joshyorko/wrangler-opencode/settings"
	"github.com/joshyorko/wrangler-opencode/supervisor"
	"github.com/tidwall/gjson"
)

const versionCacheAge = 48 * time.Hour

type latestVersion struct {
	Package string `json:"package"`
	Version string `json:"version"`
	When    int64  `json:"when"`
}

func versionCache() string {
	return filepath.Join(common.Product.Home(), "latest.json")
}

func needNewVersionInfo(filename string) bool {
	stat, err := os.Stat(filename)
	return err != nil || time.Since(stat.ModTime()) > versionCacheAge
}

func refreshVersionInfo(filename, endpoint, name string) (err error) {
	defer fail.Around(&err)

	if !needNewVersionInfo(filename) {
		return nil
	}
	registry, err := distro.NewRegistry(endpoint)
	fail.Fast(err)
	version, err := registry.Latest(name)
	fail.On(err != nil, "Failure loading latest %q, reason: %v", name, err)
	blob, err := json.Marshal(latestVersion{Package: name, Version: version, When: time.Now().Unix()})
	fail.Fast(err)
	fail.Fast(pathlib.EnsureDirectoryExists(filepath.Dir(filename)))
	return os.WriteFile(filename, blob, 0o600)
}

func loadVersionInfo(filename string) (latest *latestVersion, err error) {
	defer fail.Around(&err)

	blob, err := os.ReadFile(filename)
	fail.Fast(err)
	latest = &latestVersion{}
	err = json.Unmarshal(blob, latest)
	fail.Fast(err)
	return latest, nil
}

func installedVersion(options *supervisor.Options) string {
	directory, ok := supervisor.NodeResolution(options)
	if !ok {
		directory, ok = supervisor.ParentWalk(options)
	}
	if !ok {
		return ""
	}
	blob, err := os.ReadFile(filepath.Join(directory, "package.json"))
	if err != nil {
		return ""
	}
	return gjson.GetBytes(blob, "version").String()
}

func newerThan(latest, installed string) bool {
	wanted, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	current, err := semver.NewVersion(installed)
	if err != nil {
		return false
	}
	return wanted.GreaterThan(current)
}

// VersionCheck returns a notice to show when the registry has a newer
// assistant package than the one installed, otherwise nil.
func VersionCheck() func() {
	config := settings.Current()
	name := config.Packages.Wrapper
	filename := versionCache()
	err := refreshVersionInfo(filename, config.Distribution.Registry, name)
	if err != nil {
		common.Debug("Version check skipped: %v", err)
	}
	latest, err := loadVersionInfo(filename)
	if err != nil || latest == nil || latest.Package != name {
		return nil
	}
	workingDirectory, err := os.Getwd()
	if err != nil {
		return nil
	}
	options := supervisor.DefaultOptions(workingDirectory, os.Environ(), config)
	installed := installedVersion(&options)
	if !newerThan(latest.Version, installed) {
		return nil
	}
	return func() {
		pretty.Note("Installed %s is %s. There is newer version %s available.", name, installed, latest.Version)
	}
}
