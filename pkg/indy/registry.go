package indy

import (
	"fmt"
	"math"
	"sync"
)

// registry maps invocation handles to their pending slots. It is the only
// structure shared between calling goroutines and native callback threads.
type registry struct {
	mu    sync.Mutex
	next  int32
	slots map[int32]*pending
}

func newRegistry() *registry {
	return &registry{next: 1, slots: make(map[int32]*pending)}
}

// allocate registers p under a fresh handle. Handles increase from 1 and wrap
// back to 1 after math.MaxInt32, skipping any handle that is still live.
func (r *registry) allocate(p *pending) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		h := r.next
		if r.next == math.MaxInt32 {
			r.next = 1
		} else {
			r.next++
		}
		if _, live := r.slots[h]; !live {
			r.slots[h] = p
			p.handle = h
			return h
		}
	}
}

// take removes and returns the slot for h. An unknown handle, including one
// that was already taken, is a protocol violation.
func (r *registry) take(h int32) (*pending, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.slots[h]
	if !ok {
		return nil, fmt.Errorf("%w: completion for unknown handle %d", ErrProtocolViolation, h)
	}
	delete(r.slots, h)
	return p, nil
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots)
}
