package pretty_test

import (
	"strings"
	"testing"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/hamlet"
	"github.com/joshyorko/wrangler-opencode/pretty"
)

func TestExitRaisesExitCode(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	var caught common.ExitCode
	func() {
		defer func() {
			caught = recover().(common.ExitCode)
		}()
		pretty.Exit(3, "failed %d times", 2)
	}()
	must.Equal(3, caught.Code)
	must.True(strings.Contains(caught.Message, "failed 2 times"))
}

func TestGuardOnlyExitsOnFalse(t *testing.T) {
	must, wont := hamlet.Specifications(t)

	wont.Panic(func() { pretty.Guard(true, 1, "never") })
	must.Panic(func() { pretty.Guard(false, 1, "always") })
}

func TestBoxWithoutColorsIsPlainText(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	original := pretty.Colorless
	defer func() { pretty.Colorless = original }()
	pretty.Colorless = true

	text := pretty.Box("Title", "first", "second")
	must.Equal("Title\n  first\n  second", text)
}
