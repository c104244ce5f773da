package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/pathlib"
)

var lock sync.Mutex

// Event is one line of the release journal.
type Event struct {
	When       int64  `json:"when"`
	Controller string `json:"controller"`
	Event      string `json:"event"`
	Detail     string `json:"detail"`
	Comment    string `json:"comment,omitempty"`
}

func Filename() string {
	return filepath.Join(common.Product.Home(), "journal.jsonl")
}

// Unify collapses all whitespace runs into single spaces.
func Unify(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func Post(event, detail, commentForm string, fields ...interface{}) (err error) {
	lock.Lock()
	defer lock.Unlock()

	message := Event{
		When:       time.Now().Unix(),
		Controller: common.ControllerType,
		Event:      Unify(event),
		Detail:     Unify(detail),
		Comment:    Unify(fmt.Sprintf(commentForm, fields...)),
	}
	blob, err := json.Marshal(message)
	if err != nil {
		return err
	}
	filename := Filename()
	err = pathlib.EnsureDirectoryExists(filepath.Dir(filename))
	if err != nil {
		return err
	}
	handle, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		closing := handle.Close()
		if err == nil {
			err = closing
		}
	}()
	_, err = handle.Write(append(blob, '\n'))
	return err
}

// Events reads the journal; a missing journal has no events.
func Events() ([]Event, error) {
	lock.Lock()
	defer lock.Unlock()

	result := []Event{}
	handle, err := os.Open(Filename())
	if os.IsNotExist(err) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	defer handle.Close()
	source := bufio.NewScanner(handle)
	for source.Scan() {
		line := strings.TrimSpace(source.Text())
		if len(line) == 0 {
			continue
		}
		event := Event{}
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			common.Debug("Skipping broken journal line %q: %v", line, err)
			continue
		}
		result = append(result, event)
	}
	return result, source.Err()
}
