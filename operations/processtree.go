package operations

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/pretty"
	"github.com/mitchellh/go-ps"
)

// ChildMap is pid to executable name of every descendant seen.
type ChildMap map[int]string

func (it ChildMap) Keys() []int {
	keys := make([]int, 0, len(it))
	for key := range it {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

type processLister func() ([]ps.Process, error)

// Watcher polls the process table for descendants of one process.
type Watcher struct {
	stop   chan bool
	result chan ChildMap
}

func descendants(processes []ps.Process, pid int) ChildMap {
	parents := make(map[int][]ps.Process)
	for _, process := range processes {
		parents[process.PPid()] = append(parents[process.PPid()], process)
	}
	result := make(ChildMap)
	pending := []int{pid}
	for len(pending) > 0 {
		current := pending[0]
		pending = pending[1:]
		for _, child := range parents[current] {
			if _, seen := result[child.Pid()]; seen || child.Pid() == pid {
				continue
			}
			result[child.Pid()] = child.Executable()
			pending = append(pending, child.Pid())
		}
	}
	return result
}

func WatchChildren(pid int, delay time.Duration) *Watcher {
	return watchWith(ps.Processes, pid, delay)
}

func watchWith(lister processLister, pid int, delay time.Duration) *Watcher {
	watcher := &Watcher{
		stop:   make(chan bool),
		result: make(chan ChildMap, 1),
	}
	go func() {
		seen := make(ChildMap)
		ticker := time.NewTicker(delay)
		defer ticker.Stop()
		for {
			processes, err := lister()
			if err == nil {
				for key, value := range descendants(processes, pid) {
					seen[key] = value
				}
			} else {
				common.Trace("Process listing failed: %v", err)
			}
			select {
			case <-watcher.stop:
				watcher.result <- seen
				return
			case <-ticker.C:
			}
		}
	}()
	return watcher
}

// Stop ends polling and returns every descendant that was observed.
func (it *Watcher) Stop() ChildMap {
	close(it.stop)
	return <-it.result
}

func lingering(lister processLister, seen ChildMap) (ChildMap, error) {
	if len(seen) == 0 {
		return ChildMap{}, nil
	}
	processes, err := lister()
	if err != nil {
		return nil, err
	}
	alive := make(ChildMap)
	for _, process := range processes {
		name, ok := seen[process.Pid()]
		if ok && name == process.Executable() {
			alive[process.Pid()] = name
		}
	}
	return alive, nil
}

// SubprocessWarning reports descendants that outlived the session.
func SubprocessWarning(seen ChildMap) error {
	return subprocessWarning(ps.Processes, seen)
}

func subprocessWarning(lister processLister, seen ChildMap) error {
	alive, err := lingering(lister, seen)
	if err != nil {
		return err
	}
	if len(alive) == 0 {
		return nil
	}
	listing := make([]string, 0, len(alive))
	for _, pid := range alive.Keys() {
		listing = append(listing, fmt.Sprintf("%s (#%d)", alive[pid], pid))
	}
	pretty.Warning("%d subprocess(es) still running after %s exited: %s", len(alive), common.AssistantName, strings.Join(listing, ", "))
	return nil
}
