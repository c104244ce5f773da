// Package xviper keeps a single lazily configured viper instance for the
// whole program.
package xviper

import (
	"strings"
	"sync"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/spf13/viper"
)

const (
	envPrefix = `WRANGLER_OPENCODE`
)

var (
	lock     sync.Mutex
	instance *viper.Viper
	loaded   string
)

func configure(filename string) *viper.Viper {
	result := viper.New()
	result.SetEnvPrefix(envPrefix)
	result.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	result.AutomaticEnv()
	if len(filename) > 0 {
		result.SetConfigFile(filename)
		result.SetConfigType("yaml")
		err := result.ReadInConfig()
		if err != nil {
			common.Debug("No configuration loaded from %q, reason: %v", filename, err)
		} else {
			common.Trace("Configuration loaded from %q.", filename)
		}
	}
	return result
}

// SetConfigFile replaces the active configuration; empty means env only.
func SetConfigFile(filename string) {
	lock.Lock()
	defer lock.Unlock()
	instance = configure(filename)
	loaded = filename
}

func current() *viper.Viper {
	lock.Lock()
	defer lock.Unlock()
	if instance == nil {
		loaded = common.Product.ConfigFile()
		instance = configure(loaded)
	}
	return instance
}

func ConfigFileUsed() string {
	current()
	return loaded
}

func IsSet(key string) bool {
	return current().IsSet(key)
}

func GetString(key string) string {
	return current().GetString(key)
}

func Set(key string, value interface{}) {
	current().Set(key, value)
}
