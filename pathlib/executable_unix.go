//go:build !windows

package pathlib

import "golang.org/x/sys/unix"

const ExecutableSuffix = ""

// IsExecutable reports whether pathname is a file the current user may execute.
func IsExecutable(pathname string) bool {
	if !IsFile(pathname) {
		return false
	}
	return unix.Access(pathname, unix.X_OK) == nil
}
