package settings

import (
	_ "embed"
	"fmt"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/xviper"
	"gopkg.in/yaml.v2"
)

var (
	//go:embed assets/settings.yaml
	defaultSettings []byte

	Global *Settings
)

type Packages struct {
	Wrapper   string `yaml:"wrapper"`
	Workspace string `yaml:"workspace"`
	Host      string `yaml:"host"`
	Binary    string `yaml:"binary"`
}

type Supervisor struct {
	Workspace      string `yaml:"workspace"`
	WorkspaceEntry string `yaml:"workspace-entry"`
	Runtime        string `yaml:"runtime"`
	Bin            string `yaml:"bin"`
	Node           string `yaml:"node"`
}

type Distribution struct {
	Registry          string `yaml:"registry"`
	Dist              string `yaml:"dist"`
	NativeDir         string `yaml:"native-dir"`
	NativePackage     string `yaml:"native-package"`
	ScriptEntry       string `yaml:"script-entry"`
	AssistantManifest string `yaml:"assistant-manifest"`
	HostDir           string `yaml:"host-dir"`
	HostManifest      string `yaml:"host-manifest"`
	HostBuild         string `yaml:"host-build"`
	Bun               string `yaml:"bun"`
	Go                string `yaml:"go"`
	Npm               string `yaml:"npm"`
	Git               string `yaml:"git"`
}

type Settings struct {
	Packages     Packages     `yaml:"packages"`
	Supervisor   Supervisor   `yaml:"supervisor"`
	Distribution Distribution `yaml:"distribution"`
}

func (it *Settings) overrides() map[string]*string {
	return map[string]*string{
		"packages.wrapper":                &it.Packages.Wrapper,
		"packages.workspace":              &it.Packages.Workspace,
		"packages.host":                   &it.Packages.Host,
		"packages.binary":                 &it.Packages.Binary,
		"supervisor.workspace-entry":      &it.Supervisor.WorkspaceEntry,
		"supervisor.runtime":              &it.Supervisor.Runtime,
		"supervisor.bin":                  &it.Supervisor.Bin,
		"supervisor.node":                 &it.Supervisor.Node,
		"distribution.registry":           &it.Distribution.Registry,
		"distribution.dist":               &it.Distribution.Dist,
		"distribution.native-dir":         &it.Distribution.NativeDir,
		"distribution.native-package":     &it.Distribution.NativePackage,
		"distribution.script-entry":       &it.Distribution.ScriptEntry,
		"distribution.assistant-manifest": &it.Distribution.AssistantManifest,
		"distribution.host-dir":           &it.Distribution.HostDir,
		"distribution.host-manifest":      &it.Distribution.HostManifest,
		"distribution.host-build":         &it.Distribution.HostBuild,
		"distribution.bun":                &it.Distribution.Bun,
		"distribution.go":                 &it.Distribution.Go,
		"distribution.npm":                &it.Distribution.Npm,
		"distribution.git":                &it.Distribution.Git,
	}
}

// optionals may stay empty.
func (it *Settings) optionals() map[string]*string {
	return map[string]*string{
		"supervisor.workspace": &it.Supervisor.Workspace,
	}
}

func (it *Settings) applyOverrides() {
	for key, target := range it.overrides() {
		it.override(key, target)
	}
	for key, target := range it.optionals() {
		it.override(key, target)
	}
}

func (it *Settings) override(key string, target *string) {
	if xviper.IsSet(key) {
		value := xviper.GetString(key)
		common.Trace("Setting %q overridden with %q.", key, value)
		*target = value
	}
}

func (it *Settings) Validate() error {
	for key, target := range it.overrides() {
		if len(*target) == 0 {
			return fmt.Errorf("setting %q must not be empty", key)
		}
	}
	return nil
}

func defaults() (*Settings, error) {
	result := &Settings{}
	err := yaml.Unmarshal(defaultSettings, result)
	if err != nil {
		return nil, fmt.Errorf("embedded settings are broken: %w", err)
	}
	return result, nil
}

// SummonSettings loads embedded defaults, applies configured overrides and
// installs the result as Global.
func SummonSettings() (*Settings, error) {
	result, err := defaults()
	if err != nil {
		return nil, err
	}
	result.applyOverrides()
	err = result.Validate()
	if err != nil {
		return nil, err
	}
	Global = result
	return result, nil
}

// Current returns Global, summoning it on first use.
func Current() *Settings {
	if Global == nil {
		_, err := SummonSettings()
		if err != nil {
			common.Fatal("settings", err)
			Global, _ = defaults()
		}
	}
	return Global
}
