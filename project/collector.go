package project

import (
	"path/filepath"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/pathlib"
)

const SchemaVersion = 1

// ConfigNames are probed in this priority order.
var ConfigNames = []string{"wrangler.json", "wrangler.jsonc", "wrangler.toml"}

// Context is the snapshot handed to the assistant process.
type Context struct {
	SchemaVersion     int                    `json:"schemaVersion"`
	ProjectRoot       string                 `json:"projectRoot"`
	ConfigFiles       []string               `json:"configFiles"`
	Config            *Config                `json:"config,omitempty"`
	RawConfig         map[string]interface{} `json:"rawConfig,omitempty"`
	Bindings          Bindings               `json:"bindings"`
	CompatibilityDate string                 `json:"compatibilityDate,omitempty"`
	Environment       string                 `json:"environment,omitempty"`
	AccountID         string                 `json:"accountId,omitempty"`
	Name              string                 `json:"name,omitempty"`
}

type Collector struct {
	Root        string
	Environment string
	ConfigPath  string
}

func Gather(root, environment string) *Context {
	return Collector{Root: root, Environment: environment}.Gather()
}

func (it Collector) root() string {
	root, err := filepath.Abs(it.Root)
	if err != nil {
		common.Debug("Could not make %q absolute, reason: %v", it.Root, err)
		return it.Root
	}
	return root
}

func (it Collector) candidates(root string) []string {
	result := make([]string, 0, len(ConfigNames)+1)
	if len(it.ConfigPath) > 0 {
		explicit := it.ConfigPath
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(root, explicit)
		}
		result = append(result, explicit)
	}
	for _, name := range ConfigNames {
		result = append(result, filepath.Join(root, name))
	}
	return result
}

// Discover returns every existing configuration file, highest priority first.
func (it Collector) Discover() []string {
	found := []string{}
	seen := make(map[string]bool)
	for _, candidate := range it.candidates(it.root()) {
		if seen[candidate] || !pathlib.IsFile(candidate) {
			continue
		}
		seen[candidate] = true
		found = append(found, candidate)
	}
	return found
}

// Gather never fails; unreadable configuration leaves optional fields empty.
func (it Collector) Gather() *Context {
	defer common.Timeline("project context gathered")

	root := it.root()
	result := &Context{
		SchemaVersion: SchemaVersion,
		ProjectRoot:   root,
		ConfigFiles:   it.Discover(),
		Bindings:      EmptyBindings(),
	}
	if len(result.ConfigFiles) == 0 {
		common.Debug("No configuration files found in %q.", root)
		return result
	}
	primary := result.ConfigFiles[0]
	raw, config, err := ParseFile(primary)
	if err != nil {
		common.Debug("Could not read configuration %q, reason: %v", primary, err)
		return result
	}
	result.RawConfig = raw
	result.Config = config
	section, environment := config.Resolve(it.Environment)
	result.Bindings = classify(section)
	result.Environment = environment
	result.Name = section.Name
	result.CompatibilityDate = section.CompatibilityDate
	result.AccountID = section.AccountID
	common.Debug("Project %q has %d configuration file(s), primary is %q.", result.Name, len(result.ConfigFiles), primary)
	return result
}
