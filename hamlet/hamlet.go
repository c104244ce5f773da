// Package hamlet is a tiny "to be, or not to be" assertion helper for tests.
package hamlet

import (
	"reflect"
	"testing"
)

type Sentence interface {
	Equal(expected, actual interface{})
	Nil(actual interface{})
	True(actual bool)
	Panic(todo func())
}

type sentence struct {
	t        testing.TB
	positive bool
	verb     string
}

// Specifications returns the positive ("must") and negative ("wont") sentences.
func Specifications(t testing.TB) (Sentence, Sentence) {
	return &sentence{t: t, positive: true, verb: "must be"}, &sentence{t: t, positive: false, verb: "wont be"}
}

func isNil(actual interface{}) bool {
	if actual == nil {
		return true
	}
	value := reflect.ValueOf(actual)
	switch value.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return value.IsNil()
	}
	return false
}

func (it *sentence) check(outcome bool, format string, details ...interface{}) {
	it.t.Helper()
	if outcome != it.positive {
		it.t.Fatalf(format, details...)
	}
}

func (it *sentence) Equal(expected, actual interface{}) {
	it.t.Helper()
	it.check(reflect.DeepEqual(expected, actual), "%s equal: expected %#v, actual %#v", it.verb, expected, actual)
}

func (it *sentence) Nil(actual interface{}) {
	it.t.Helper()
	it.check(isNil(actual), "%s nil: actual %#v", it.verb, actual)
}

func (it *sentence) True(actual bool) {
	it.t.Helper()
	it.check(actual, "%s true: actual %v", it.verb, actual)
}

func (it *sentence) Panic(todo func()) {
	it.t.Helper()
	panicked := func() (result bool) {
		defer func() {
			if recover() != nil {
				result = true
			}
		}()
		todo()
		return false
	}()
	it.check(panicked, "%s panic", it.verb)
}
