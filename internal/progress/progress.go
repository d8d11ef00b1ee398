// Package progress tracks the state of the single in-flight batch operation.
//
// A Tracker has exactly one writer at a time: the caller that obtained a
// Handle from Begin. Everyone else may read a Snapshot or Subscribe to
// changes.
package progress

import (
	"errors"
	"fmt"
	"sync"
)

// Phase names the stage of the running operation.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseCompressing Phase = "compressing"
	PhasePackaging   Phase = "packaging"
	PhaseGenerating  Phase = "generating"
)

// ErrBusy is returned by Begin while another operation holds the tracker.
var ErrBusy = errors.New("another operation is in progress")

// State is a point-in-time view of the tracker.
type State struct {
	Phase   Phase `json:"phase"`
	Current int   `json:"current"`
	Total   int   `json:"total"`
}

// Idle reports whether no operation is running.
func (s State) Idle() bool {
	return s.Phase == PhaseIdle
}

// String renders the state the way it is shown to the user, e.g. "compressing 3 / 10".
func (s State) String() string {
	switch s.Phase {
	case PhaseIdle, PhaseGenerating:
		return string(s.Phase)
	default:
		return fmt.Sprintf("%s %d / %d", s.Phase, s.Current, s.Total)
	}
}

// Observer is called synchronously after every state change.
type Observer func(State)

// Tracker holds the shared progress state.
type Tracker struct {
	mu        sync.RWMutex
	state     State
	observers []Observer
	holder    *Handle
}

// NewTracker returns an idle Tracker.
func NewTracker() *Tracker {
	return &Tracker{state: State{Phase: PhaseIdle}}
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Subscribe registers an observer for subsequent changes.
func (t *Tracker) Subscribe(o Observer) {
	if o == nil {
		return
	}
	t.mu.Lock()
	t.observers = append(t.observers, o)
	t.mu.Unlock()
}

// Begin starts an operation in the given phase and returns the only handle
// allowed to mutate the tracker until it is released.
func (t *Tracker) Begin(phase Phase, total int) (*Handle, error) {
	t.mu.Lock()
	if t.holder != nil {
		t.mu.Unlock()
		return nil, ErrBusy
	}
	h := &Handle{t: t}
	t.holder = h
	t.mu.Unlock()

	t.set(h, State{Phase: phase, Total: total})
	return h, nil
}

func (t *Tracker) set(h *Handle, s State) {
	t.mu.Lock()
	if t.holder != h {
		t.mu.Unlock()
		return
	}
	t.state = s
	if s.Phase == PhaseIdle {
		t.holder = nil
	}
	observers := make([]Observer, len(t.observers))
	copy(observers, t.observers)
	t.mu.Unlock()

	for _, o := range observers {
		o(s)
	}
}

// Handle is the write side of a Tracker for one operation.
type Handle struct {
	t *Tracker
}

// Step records that item current (1-based) of the phase is being worked on.
func (h *Handle) Step(current int) {
	s := h.t.Snapshot()
	s.Current = current
	h.t.set(h, s)
}

// Enter switches the operation to another phase.
func (h *Handle) Enter(phase Phase, total int) {
	h.t.set(h, State{Phase: phase, Total: total})
}

// Release resets the tracker to idle. Releasing twice is a no-op.
func (h *Handle) Release() {
	h.t.set(h, State{Phase: PhaseIdle})
}
