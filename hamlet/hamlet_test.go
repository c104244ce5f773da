package hamlet_test

import (
	"errors"
	"testing"

	"github.com/joshyorko/wrangler-opencode/hamlet"
)

func TestSentencesAgreeWithThemselves(t *testing.T) {
	must, wont := hamlet.Specifications(t)

	var missing *int
	var failure error

	must.Nil(nil)
	must.Nil(missing)
	must.Nil(failure)
	wont.Nil(errors.New("boom"))
	wont.Nil(0)

	must.Equal([]string{"a"}, []string{"a"})
	wont.Equal("a", "b")

	must.True(true)
	wont.True(false)

	must.Panic(func() { panic("yes") })
	wont.Panic(func() {})
}
