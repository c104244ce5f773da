//go:build windows

package pathlib

import (
	"path/filepath"
	"strings"
)

const ExecutableSuffix = ".exe"

var executableExtensions = []string{".exe", ".cmd", ".bat", ".com"}

func IsExecutable(pathname string) bool {
	if !IsFile(pathname) {
		return false
	}
	extension := strings.ToLower(filepath.Ext(pathname))
	for _, candidate := range executableExtensions {
		if extension == candidate {
			return true
		}
	}
	return false
}
