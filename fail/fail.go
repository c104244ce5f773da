// Package fail turns long step-by-step error checking into panics that are
// recovered into a named error return at function boundary.
//
//	func work() (err error) {
//		defer fail.Around(&err)
//		fail.On(len(name) == 0, "name is required")
//		fail.Fast(os.Remove(name))
//		return nil
//	}
package fail

import "fmt"

type delimited struct {
	err error
}

func (it delimited) Error() string {
	return it.err.Error()
}

func (it delimited) Unwrap() error {
	return it.err
}

// Around recovers failures raised by On and Fast into err. Other panics pass through.
func Around(err *error) {
	original := recover()
	if original == nil {
		return
	}
	catch, ok := original.(delimited)
	if !ok {
		panic(original)
	}
	*err = catch.err
}

// On fails when condition holds.
func On(condition bool, form string, details ...interface{}) {
	if condition {
		panic(delimited{fmt.Errorf(form, details...)})
	}
}

// Fast fails with err itself, keeping it matchable with errors.Is/As.
func Fast(err error) {
	if err != nil {
		panic(delimited{err})
	}
}
