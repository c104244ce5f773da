package pathlib

import (
	"os"
	"path/filepath"
)

func Exists(pathname string) bool {
	_, err := os.Stat(pathname)
	return err == nil
}

func IsDir(pathname string) bool {
	stat, err := os.Stat(pathname)
	return err == nil && stat.IsDir()
}

func IsFile(pathname string) bool {
	stat, err := os.Stat(pathname)
	return err == nil && !stat.IsDir()
}

func EnsureDirectoryExists(directory string) error {
	return os.MkdirAll(directory, 0o750)
}

// Parents lists directory and each of its ancestors, nearest first.
func Parents(directory string) []string {
	current := filepath.Clean(directory)
	result := []string{current}
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return result
		}
		result = append(result, parent)
		current = parent
	}
}

// TryRemove deletes pathname; a missing file is not an error.
func TryRemove(pathname string) error {
	err := os.Remove(pathname)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
