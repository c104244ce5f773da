package common

import (
	"fmt"
	"time"
)

type (
	Duration time.Duration

	stopwatch struct {
		message string
		started time.Time
	}
)

var (
	started = time.Now()
)

func (it Duration) Truncate(granularity time.Duration) Duration {
	return Duration(time.Duration(it).Truncate(granularity))
}

func (it Duration) String() string {
	return fmt.Sprintf("%5.3f", time.Duration(it).Seconds())
}

func Stopwatch(form string, details ...interface{}) *stopwatch {
	message := fmt.Sprintf(form, details...)
	return &stopwatch{
		message: message,
		started: time.Now(),
	}
}

func (it *stopwatch) Elapsed() Duration {
	return Duration(time.Since(it.started))
}

func (it *stopwatch) Debug() Duration {
	elapsed := it.Elapsed()
	Debug("%v %v", it.message, elapsed)
	return elapsed
}

func (it *stopwatch) Log() Duration {
	elapsed := it.Elapsed()
	Log("%v %v", it.message, elapsed)
	return elapsed
}

func (it *stopwatch) Report() Duration {
	elapsed := it.Elapsed()
	Log("%v %v", it.message, elapsed)
	return elapsed
}

// Timeline emits a trace line stamped with time since process start.
func Timeline(form string, details ...interface{}) {
	if TraceFlag() {
		message := fmt.Sprintf(form, details...)
		Trace("(%s) %s", Duration(time.Since(started)), message)
	}
}
