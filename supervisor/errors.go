package supervisor

import (
	"fmt"
	"strings"
)

type Kind int

const (
	BinaryNotFound Kind = iota + 1
	PackageNotFound
	SpawnFailed
	NonZeroExit
)

func (it Kind) String() string {
	switch it {
	case BinaryNotFound:
		return "binary not found"
	case PackageNotFound:
		return "package not found"
	case SpawnFailed:
		return "spawn failed"
	case NonZeroExit:
		return "non-zero exit"
	}
	return fmt.Sprintf("kind(%d)", int(it))
}

// LaunchError is every fatal condition of one launch attempt.
type LaunchError struct {
	Kind     Kind
	Code     int
	Path     string
	Packages []string
	Err      error
}

func (it *LaunchError) Error() string {
	switch it.Kind {
	case BinaryNotFound:
		return fmt.Sprintf("opencode binary not found at %q", it.Path)
	case PackageNotFound:
		return fmt.Sprintf("could not find opencode package, tried %s", strings.Join(quoted(it.Packages), " and "))
	case SpawnFailed:
		return fmt.Sprintf("failed to start opencode: %v", it.Err)
	case NonZeroExit:
		return fmt.Sprintf("opencode exited with code %d", it.Code)
	}
	return fmt.Sprintf("opencode launch failed (%s)", it.Kind)
}

func (it *LaunchError) Unwrap() error {
	return it.Err
}

func quoted(names []string) []string {
	result := make([]string, 0, len(names))
	for _, name := range names {
		result = append(result, fmt.Sprintf("%q", name))
	}
	return result
}
