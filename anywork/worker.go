// Package anywork is a small process wide worker pool. Work is backlogged
// with a label and may fail; Sync waits for the backlog and reports what
// failed since the previous Sync.
package anywork

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/joshyorko/wrangler-opencode/common"
)

const queueDepth = 1000

type Work func() error

type job struct {
	label string
	work  Work
}

// ledger keeps failures between two Sync calls.
type ledger struct {
	sync.Mutex
	first error
	count int
}

func (it *ledger) record(label string, err error) {
	common.Debug("Work %q failed: %v", label, err)
	it.Lock()
	defer it.Unlock()
	if it.first == nil {
		it.first = err
	}
	it.count++
}

func (it *ledger) settle() (int, error) {
	it.Lock()
	defer it.Unlock()
	count, first := it.count, it.first
	it.first, it.count = nil, 0
	return count, first
}

var (
	WorkerCount int

	jobs     = make(chan job, queueDepth)
	pending  sync.WaitGroup
	failures = &ledger{}

	scaling   sync.Mutex
	headcount uint64
)

func init() {
	AutoScale()
}

func perform(unit job) (err error) {
	defer func() {
		if caught := recover(); caught != nil {
			err = fmt.Errorf("work %q panicked: %v", unit.label, caught)
		}
	}()
	return unit.work()
}

func member() {
	for unit := range jobs {
		err := perform(unit)
		if err != nil {
			failures.record(unit.label, err)
		}
		pending.Done()
	}
}

// Scale is the number of running members.
func Scale() uint64 {
	scaling.Lock()
	defer scaling.Unlock()
	return headcount
}

// AutoScale grows the pool to WorkerCount, or to CPU count minus one, but
// never below two members.
func AutoScale() {
	limit := uint64(runtime.NumCPU() - 1)
	if WorkerCount > 1 {
		limit = uint64(WorkerCount)
	}
	if limit < 2 {
		limit = 2
	}
	scaling.Lock()
	defer scaling.Unlock()
	for headcount < limit {
		go member()
		headcount++
	}
}

func Backlog(label string, work Work) {
	if work == nil {
		return
	}
	pending.Add(1)
	jobs <- job{label: label, work: work}
}

// Sync waits for all backlogged work. The first failure is returned as is
// when it is the only one, otherwise it is wrapped with the failure count.
func Sync() error {
	pending.Wait()
	count, first := failures.settle()
	switch count {
	case 0:
		return nil
	case 1:
		return first
	}
	return fmt.Errorf("%d failures, first: %w", count, first)
}
