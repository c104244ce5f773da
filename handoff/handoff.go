// Package handoff passes a project.Context to a child process through a
// transient file whose path travels in the environment.
package handoff

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dchest/siphash"
	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/pathlib"
	"github.com/joshyorko/wrangler-opencode/project"
)

const (
	sipKey0 = 9007199254740993
	sipKey1 = 2147483647
)

var ErrSchemaMismatch = errors.New("context file schema mismatch")

func fingerprint(payload []byte) uint64 {
	return siphash.Hash(sipKey0, sipKey1, payload)
}

func pattern(payload []byte) string {
	return fmt.Sprintf("context-%d-%d-%016x-*.json", time.Now().UnixMilli(), common.Pid(), fingerprint(payload))
}

// WriteContextFile serializes context into a new file under directory and
// returns its path. Write failures are for the caller to handle.
func WriteContextFile(directory string, context *project.Context) (string, error) {
	payload, err := json.MarshalIndent(context, "", "  ")
	if err != nil {
		return "", err
	}
	err = pathlib.EnsureDirectoryExists(directory)
	if err != nil {
		return "", err
	}
	sink, err := os.CreateTemp(directory, pattern(payload))
	if err != nil {
		return "", err
	}
	_, err = sink.Write(append(payload, '\n'))
	closeErr := sink.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		Remove(sink.Name())
		return "", err
	}
	common.Debug("Context with %d bytes written to %q.", len(payload), sink.Name())
	return sink.Name(), nil
}

// ReadContextFile is the consumer side; it refuses unknown schema versions.
func ReadContextFile(filename string) (*project.Context, error) {
	blob, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	result := &project.Context{}
	err = json.Unmarshal(blob, result)
	if err != nil {
		return nil, err
	}
	if result.SchemaVersion != project.SchemaVersion {
		return nil, fmt.Errorf("%w: file has version %d, expected %d", ErrSchemaMismatch, result.SchemaVersion, project.SchemaVersion)
	}
	return result, nil
}

// Remove deletes filename; failures are only logged.
func Remove(filename string) {
	if len(filename) == 0 {
		return
	}
	err := pathlib.TryRemove(filename)
	if err != nil {
		common.Debug("Ignoring cleanup failure of %q, reason: %v", filename, err)
	}
}
