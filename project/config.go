package project

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/tailscale/hujson"
)

// Section carries everything an environment may redeclare.
type Section struct {
	Name               string                 `json:"name,omitempty" toml:"name"`
	CompatibilityDate  string                 `json:"compatibility_date,omitempty" toml:"compatibility_date"`
	AccountID          string                 `json:"account_id,omitempty" toml:"account_id"`
	KVNamespaces       []KVNamespace          `json:"kv_namespaces,omitempty" toml:"kv_namespaces"`
	DurableObjects     *DurableObjects        `json:"durable_objects,omitempty" toml:"durable_objects"`
	R2Buckets          []R2Bucket             `json:"r2_buckets,omitempty" toml:"r2_buckets"`
	D1Databases        []D1Database           `json:"d1_databases,omitempty" toml:"d1_databases"`
	Queues             *Queues                `json:"queues,omitempty" toml:"queues"`
	AI                 *NamedBinding          `json:"ai,omitempty" toml:"ai"`
	Browser            *NamedBinding          `json:"browser,omitempty" toml:"browser"`
	Vectorize          []VectorizeIndex       `json:"vectorize,omitempty" toml:"vectorize"`
	Hyperdrive         []Hyperdrive           `json:"hyperdrive,omitempty" toml:"hyperdrive"`
	Workflows          []Workflow             `json:"workflows,omitempty" toml:"workflows"`
	MTLSCertificates   []MTLSCertificate      `json:"mtls_certificates,omitempty" toml:"mtls_certificates"`
	DispatchNamespaces []DispatchNamespace    `json:"dispatch_namespaces,omitempty" toml:"dispatch_namespaces"`
	Vars               map[string]interface{} `json:"vars,omitempty" toml:"vars"`
}

// Config is the normalized form of a wrangler configuration file.
type Config struct {
	Section
	Main               string             `json:"main,omitempty" toml:"main"`
	CompatibilityFlags []string           `json:"compatibility_flags,omitempty" toml:"compatibility_flags"`
	WorkersDev         *bool              `json:"workers_dev,omitempty" toml:"workers_dev"`
	Routes             []interface{}      `json:"routes,omitempty" toml:"routes"`
	Env                map[string]Section `json:"env,omitempty" toml:"env"`
}

// Resolve picks the effective section for environment. Bindings are not
// inherited from the top level, but identity fields are.
func (it *Config) Resolve(environment string) (*Section, string) {
	top := it.Section
	if len(environment) == 0 {
		return &top, ""
	}
	section, ok := it.Env[environment]
	if !ok {
		common.Debug("Environment %q is not declared in configuration (known: %q), using top level.", environment, it.Environments())
		return &top, ""
	}
	if len(section.Name) == 0 && len(top.Name) > 0 {
		section.Name = fmt.Sprintf("%s-%s", top.Name, environment)
	}
	if len(section.CompatibilityDate) == 0 {
		section.CompatibilityDate = top.CompatibilityDate
	}
	if len(section.AccountID) == 0 {
		section.AccountID = top.AccountID
	}
	return &section, environment
}

func (it *Config) Environments() []string {
	result := make([]string, 0, len(it.Env))
	for name := range it.Env {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func isToml(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".toml")
}

func parseToml(blob []byte) (map[string]interface{}, *Config, error) {
	raw := map[string]interface{}{}
	_, err := toml.NewDecoder(bytes.NewReader(blob)).Decode(&raw)
	if err != nil {
		return nil, nil, err
	}
	config := &Config{}
	meta, err := toml.NewDecoder(bytes.NewReader(blob)).Decode(config)
	if err != nil {
		return nil, nil, err
	}
	for _, key := range meta.Undecoded() {
		common.Trace("Configuration key %q is not normalized.", key.String())
	}
	return raw, config, nil
}

func parseJson(blob []byte) (map[string]interface{}, *Config, error) {
	standard, err := hujson.Standardize(blob)
	if err != nil {
		return nil, nil, err
	}
	raw := map[string]interface{}{}
	err = json.Unmarshal(standard, &raw)
	if err != nil {
		return nil, nil, err
	}
	config := &Config{}
	err = json.Unmarshal(standard, config)
	if err != nil {
		return nil, nil, err
	}
	return raw, config, nil
}

// ParseFile reads filename as TOML or JSON(C), chosen by extension.
func ParseFile(filename string) (map[string]interface{}, *Config, error) {
	blob, err := os.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	if isToml(filename) {
		return parseToml(blob)
	}
	return parseJson(blob)
}
