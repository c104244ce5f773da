package common

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

type logline struct {
	sink    *os.File
	message string
}

var (
	loglines = make(chan logline, 64)
	inflight sync.WaitGroup
)

func init() {
	go drain(loglines)
}

// drain is the only writer of log output, so lines never interleave.
func drain(lines <-chan logline) {
	counter := uint64(0)
	for line := range lines {
		counter++
		fmt.Fprintf(line.sink, "%s%s\n", prefixFor(counter), line.message)
		line.sink.Sync()
		inflight.Done()
	}
}

func prefixFor(counter uint64) string {
	switch {
	case TraceFlag():
		return time.Now().Format("02.150405.000 ")
	case LogLinenumbers:
		return fmt.Sprintf("%3d ", counter)
	}
	return ""
}

// AcceptableOutput is false for messages carrying any LogHides fragment.
func AcceptableOutput(message string) bool {
	for _, fragment := range LogHides {
		if len(fragment) > 0 && strings.Contains(message, fragment) {
			return false
		}
	}
	return true
}

func emit(sink *os.File, marker, format string, details []interface{}) {
	message := marker + fmt.Sprintf(format, details...)
	if !AcceptableOutput(message) {
		return
	}
	inflight.Add(1)
	loglines <- logline{sink: sink, message: message}
}

func Log(format string, details ...interface{}) {
	if Silent() {
		return
	}
	marker := ""
	if DebugFlag() {
		marker = "[N] "
	}
	emit(os.Stderr, marker, format, details)
}

func Debug(format string, details ...interface{}) error {
	if DebugFlag() {
		emit(os.Stderr, "[D] ", format, details)
	}
	return nil
}

func Trace(format string, details ...interface{}) error {
	if TraceFlag() {
		emit(os.Stderr, "[T] ", format, details)
	}
	return nil
}

// Fatal is printed even in silent mode.
func Fatal(context string, err error) {
	if err != nil {
		emit(os.Stderr, "Fatal ", "[%s]: %v", []interface{}{context, err})
	}
}

func Error(context string, err error) {
	if err != nil {
		Log("Error [%s]: %v", context, err)
	}
}

func Uncritical(context string, err error) {
	if err != nil {
		Log("Warning [%s; not critical]: %v", context, err)
	}
}

// Stdout is for program output; it bypasses the log line decorations.
func Stdout(format string, details ...interface{}) {
	message := format
	if len(details) > 0 {
		message = fmt.Sprintf(format, details...)
	}
	if AcceptableOutput(message) {
		fmt.Fprint(os.Stdout, message)
		os.Stdout.Sync()
	}
}

// WaitLogs blocks until every emitted line has been written.
func WaitLogs() {
	defer Timeline("wait logs done")

	runtime.Gosched()
	inflight.Wait()
}
