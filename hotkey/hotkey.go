// Package hotkey installs a system-wide key event filter and reports
// press/release edges for a single configured key combination. Matched
// events are swallowed so the hotkey never reaches the focused application;
// everything else passes through untouched.
package hotkey

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ddushok/mac-shout/permission"
)

// ErrPermissionDenied is returned when input monitoring access is missing.
var ErrPermissionDenied = errors.New("input monitoring access not granted")

// ErrTapCreationFailed is returned when the event interceptor could not be
// installed.
var ErrTapCreationFailed = errors.New("event tap creation failed")

// Modifier is a bitset of the modifier keys considered for matching.
type Modifier uint8

const (
	ModControl Modifier = 1 << iota
	ModOption
	ModShift
	ModCommand
)

// HotKey is an immutable key code plus modifier mask. A running Filter is
// never reconfigured in place; replacing the hotkey means Stop then Start
// with the new value.
type HotKey struct {
	KeyCode   uint16
	Modifiers Modifier
}

// Matches reports whether an event with the given key code and held
// modifier set triggers this hotkey. A zero modifier mask matches
// regardless of which modifiers are held, so a bare-key hotkey still fires
// inside typing combos. A non-zero mask requires the held set to equal the
// mask exactly, never a superset.
func (h HotKey) Matches(keyCode uint16, held Modifier) bool {
	if keyCode != h.KeyCode {
		return false
	}
	if h.Modifiers == 0 {
		return true
	}
	return held == h.Modifiers
}

// State is the filter lifecycle state.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
)

// tap is the platform event interceptor. The handler runs on the
// interception context and returns true to consume the event.
type tap interface {
	install(handler func(keyCode uint16, held Modifier, down bool) bool) error
	release()
}

// Filter tracks press/release edges for one HotKey and invokes the edge
// callbacks at most once per physical press and release. OS key-repeat
// events pass through without firing.
type Filter struct {
	hk     HotKey
	perm   permission.Provider
	onDown func()
	onUp   func()

	requestOnce sync.Once

	mu      sync.Mutex
	state   State
	pressed bool
	tap     tap
}

// NewFilter creates a stopped filter for hk. The callbacks run on the
// interception context and must return quickly; typically they do nothing
// but a non-blocking channel send.
func NewFilter(hk HotKey, perm permission.Provider, onDown, onUp func()) *Filter {
	return &Filter{hk: hk, perm: perm, onDown: onDown, onUp: onUp}
}

// Start verifies input monitoring permission and installs the interceptor.
// Missing permission returns ErrPermissionDenied after firing the one-shot
// system prompt. Interceptor install failure returns ErrTapCreationFailed.
// Calling Start while running is a no-op.
func (f *Filter) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateStopped {
		return nil
	}

	if !f.perm.InputMonitoringGranted() {
		f.requestOnce.Do(f.perm.RequestInputMonitoring)
		return ErrPermissionDenied
	}

	f.state = StateStarting
	t := newTap()
	if err := t.install(f.handleEvent); err != nil {
		f.state = StateStopped
		return fmt.Errorf("%w: %v", ErrTapCreationFailed, err)
	}

	f.tap = t
	f.state = StateRunning
	return nil
}

// Stop releases the interceptor and resets the pressed-edge state.
// Idempotent. The release joins the interception context, which may be
// mid-callback waiting on f.mu, so it must happen after the lock is
// dropped.
func (f *Filter) Stop() {
	f.mu.Lock()
	t := f.tap
	f.tap = nil
	f.pressed = false
	f.state = StateStopped
	f.mu.Unlock()

	if t != nil {
		t.release()
	}
}

// State returns the current lifecycle state.
func (f *Filter) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// handleEvent runs on the interception context for every keyboard event.
// It returns true only for matched edges, which the platform tap then
// consumes. Non-matching events and repeat downs while held return false
// and pass through.
func (f *Filter) handleEvent(keyCode uint16, held Modifier, down bool) bool {
	if !f.hk.Matches(keyCode, held) {
		return false
	}

	var edge func()

	f.mu.Lock()
	switch {
	case down && !f.pressed:
		f.pressed = true
		edge = f.onDown
	case !down && f.pressed:
		f.pressed = false
		edge = f.onUp
	}
	f.mu.Unlock()

	if edge == nil {
		return false
	}
	edge()
	return true
}
