package indy

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sbca/indy-go/pkg/indy/ffi"
)

const (
	statePending int32 = iota
	stateResolved
	stateCancelled
)

type outcome struct {
	values Values
	err    error
}

// Completion is the single-resolution result of one dispatched command. The
// native callback thread resolves it at most once; the caller receives the
// outcome at most once through Wait.
type Completion struct {
	command   string
	state     atomic.Int32
	ch        chan outcome
	cancelled chan struct{}
}

func newCompletion(command string) *Completion {
	return &Completion{
		command:   command,
		ch:        make(chan outcome, 1),
		cancelled: make(chan struct{}),
	}
}

// resolved returns a Completion that already holds err.
func resolved(command string, err error) *Completion {
	c := newCompletion(command)
	c.resolve(outcome{err: err})
	return c
}

// Command returns the name of the command this completion belongs to.
func (c *Completion) Command() string { return c.command }

// resolve stores out unless the caller has cancelled. It never blocks.
func (c *Completion) resolve(out outcome) bool {
	if !c.state.CompareAndSwap(statePending, stateResolved) {
		return false
	}
	c.ch <- out
	return true
}

// Wait blocks until the command completes, ctx is done or the completion is
// cancelled. When ctx ends first the completion is marked cancelled and a
// later native completion is discarded. A cancelled completion returns
// context.Canceled. Wait must be called at most once.
func (c *Completion) Wait(ctx context.Context) (Values, error) {
	select {
	case out := <-c.ch:
		return out.values, out.err
	case <-c.cancelled:
		return nil, context.Canceled
	case <-ctx.Done():
		if c.Cancel() {
			return nil, ctx.Err()
		}
		if c.state.Load() == stateCancelled {
			return nil, context.Canceled
		}
		// Resolved concurrently; the value is sent right after the state flips.
		out := <-c.ch
		return out.values, out.err
	}
}

// Cancel abandons the completion and wakes Wait. It reports false if the
// result had already arrived or the completion was already cancelled.
func (c *Completion) Cancel() bool {
	if !c.state.CompareAndSwap(statePending, stateCancelled) {
		return false
	}
	close(c.cancelled)
	return true
}

// pending is the registry entry for one in-flight invocation.
type pending struct {
	handle  int32
	cmd     *Command
	frame   *ffi.Frame
	done    *Completion
	started time.Time
}
