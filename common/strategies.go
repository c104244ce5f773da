package common

import (
	"os"
	"path/filepath"
)

const (
	HOME_VARIABLE         = `WRANGLER_OPENCODE_HOME`
	PRODUCT_NAME_VARIABLE = `WRANGLER_OPENCODE_PRODUCT`
	PRODUCT_NAME          = `wrangler-opencode`

	defaultHomeLocation = "$HOME/.wrangler-opencode"
)

type (
	ProductStrategy interface {
		Name() string
		ForceHome(string)
		HomeVariable() string
		Home() string
		ConfigFile() string
		TempLocation() string
	}

	hostStrategy struct {
		forcedHome string
	}
)

func HostMode() ProductStrategy {
	return &hostStrategy{}
}

func (it *hostStrategy) Name() string {
	if value := os.Getenv(PRODUCT_NAME_VARIABLE); len(value) > 0 {
		return value
	}
	return PRODUCT_NAME
}

func (it *hostStrategy) ForceHome(value string) {
	it.forcedHome = value
}

func (it *hostStrategy) HomeVariable() string {
	return HOME_VARIABLE
}

func (it *hostStrategy) Home() string {
	if len(it.forcedHome) > 0 {
		return ExpandPath(it.forcedHome)
	}
	home := os.Getenv(HOME_VARIABLE)
	if len(home) > 0 {
		return ExpandPath(home)
	}
	return ExpandPath(defaultHomeLocation)
}

func (it *hostStrategy) ConfigFile() string {
	return filepath.Join(it.Home(), "config.yaml")
}

// TempLocation is where transient context files are written.
func (it *hostStrategy) TempLocation() string {
	return filepath.Join(os.TempDir(), it.Name())
}

func ExpandPath(entry string) string {
	intermediate := os.ExpandEnv(entry)
	result, err := filepath.Abs(intermediate)
	if err != nil {
		return intermediate
	}
	return result
}
