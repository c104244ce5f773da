package common

import (
	"fmt"
	"os"
)

// ExitCode is raised as a panic by pretty.Exit and unwound by ExitProtection in each main.
type ExitCode struct {
	Code    int
	Message string
}

func (it ExitCode) ShowMessage() {
	if len(it.Message) > 0 {
		fmt.Fprintln(os.Stderr, it.Message)
	}
}

func (it ExitCode) Error() string {
	return fmt.Sprintf("exit %d: %s", it.Code, it.Message)
}
