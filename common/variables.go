package common

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

const (
	ProgramName     = `wrangler`
	AssistantName   = `opencode`
	ContextFileEnv  = `CONTEXT_FILE`
	InitialPrompt   = `INITIAL_PROMPT`
	LogLevelSetting = `log.level`
)

type Verbosity uint32

const (
	Normal Verbosity = iota
	Silently
	Debugging
	Tracing
)

var (
	Version        = `0.0.0-dev`
	ControllerType = `user`
	When           = time.Now().Unix()
	LogLinenumbers bool
	LogHides       []string
	Product        = HostMode()

	verbosity atomic.Uint32
)

// DefineVerbosity sets the global log level; trace wins over debug, debug over silent.
func DefineVerbosity(silent, debug, trace bool) {
	level := Normal
	switch {
	case trace:
		level = Tracing
	case debug:
		level = Debugging
	case silent:
		level = Silently
	}
	verbosity.Store(uint32(level))
}

// DefineVerbosityByName accepts the textual levels used in config and env.
func DefineVerbosityByName(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		DefineVerbosity(false, false, true)
	case "debug":
		DefineVerbosity(false, true, false)
	case "silent", "none":
		DefineVerbosity(true, false, false)
	}
}

func currentVerbosity() Verbosity {
	return Verbosity(verbosity.Load())
}

func Silent() bool {
	return currentVerbosity() == Silently
}

func DebugFlag() bool {
	return currentVerbosity() >= Debugging
}

func TraceFlag() bool {
	return currentVerbosity() == Tracing
}

func Platform() string {
	return fmt.Sprintf("%s_%s", runtime.GOOS, runtime.GOARCH)
}

func UserAgent() string {
	return fmt.Sprintf("%s/%s (%s)", ProgramName, Version, Platform())
}

func Pid() int {
	return os.Getpid()
}
