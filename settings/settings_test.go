package settings_test

import (
	"testing"

	"github.com/joshyorko/wrangler-opencode/hamlet"
	"github.com/joshyorko/wrangler-opencode/settings"
	"github.com/joshyorko/wrangler-opencode/xviper"
)

func TestThatSomeDefaultValuesAreVisible(t *testing.T) {
	must_be, wont_be := hamlet.Specifications(t)

	xviper.SetConfigFile("")
	sut, err := settings.SummonSettings()
	must_be.Nil(err)
	wont_be.Nil(sut)
	wont_be.Nil(settings.Global)

	must_be.Equal("wrangler-opencode", sut.Packages.Wrapper)
	must_be.Equal("@wrangler/opencode", sut.Packages.Workspace)
	must_be.Equal("wrangler", sut.Packages.Host)
	must_be.Equal("packages/opencode/src/index.ts", sut.Supervisor.WorkspaceEntry)
	must_be.Equal("bun run --conditions=browser", sut.Supervisor.Runtime)
	must_be.Equal("https://registry.npmjs.org", sut.Distribution.Registry)
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	t.Setenv("WRANGLER_OPENCODE_PACKAGES_WRAPPER", "my-wrapper")
	t.Setenv("WRANGLER_OPENCODE_DISTRIBUTION_NATIVE_DIR", "native")
	xviper.SetConfigFile("")
	defer xviper.SetConfigFile("")

	sut, err := settings.SummonSettings()
	must_be.Nil(err)
	must_be.Equal("my-wrapper", sut.Packages.Wrapper)
	must_be.Equal("native", sut.Distribution.NativeDir)
}

func TestEmptyOverrideIsRejected(t *testing.T) {
	_, wont_be := hamlet.Specifications(t)

	xviper.SetConfigFile("")
	defer xviper.SetConfigFile("")
	xviper.Set("packages.host", "")

	_, err := settings.SummonSettings()
	wont_be.Nil(err)
}

func TestWorkspaceMayStayEmpty(t *testing.T) {
	must_be, _ := hamlet.Specifications(t)

	xviper.SetConfigFile("")
	defer xviper.SetConfigFile("")
	sut, err := settings.SummonSettings()
	must_be.Nil(err)
	must_be.Equal("", sut.Supervisor.Workspace)

	t.Setenv("WRANGLER_OPENCODE_SUPERVISOR_WORKSPACE", "/src/wrangler")
	xviper.SetConfigFile("")
	sut, err = settings.SummonSettings()
	must_be.Nil(err)
	must_be.Equal("/src/wrangler", sut.Supervisor.Workspace)
}
