// Package inject reproduces a string as input to the focused application.
// The primary strategy pastes through the clipboard and always restores the
// previous clipboard content; the fallback synthesizes the text key by key
// and never touches the clipboard.
package inject

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ddushok/mac-shout/clipboard"
	"github.com/ddushok/mac-shout/permission"
)

// ErrPermissionDenied is returned when keystroke synthesis is not permitted.
var ErrPermissionDenied = errors.New("input synthesis access not granted")

// ErrInjectionFailed is returned when both the paste and the typed fallback
// strategies failed.
var ErrInjectionFailed = errors.New("text injection failed")

// Keystroker synthesizes key events into the focused application.
type Keystroker interface {
	// PasteCombo presses the platform paste shortcut.
	PasteCombo() error

	// TypeKey presses and releases one key, optionally with shift held.
	TypeKey(keyCode uint16, shift bool) error
}

// Pasteboard is the clipboard surface the injector needs. Satisfied by the
// clipboard package; fakes stand in for it in tests.
type Pasteboard interface {
	GetText() (string, error)
	SetText(text string) error
}

// systemPasteboard adapts the clipboard package to the Pasteboard interface.
type systemPasteboard struct{}

func (systemPasteboard) GetText() (string, error) { return clipboard.GetText() }
func (systemPasteboard) SetText(s string) error   { return clipboard.SetText(s) }

// Injector writes text into the focused application.
type Injector struct {
	perm  permission.Provider
	keys  Keystroker
	board Pasteboard

	requestOnce sync.Once

	// SettleDelay is the wait between writing the clipboard and pressing
	// paste; CompletionDelay the wait for the receiving application to read
	// the pasteboard before it is restored; InterKeyDelay spaces out typed
	// fallback keystrokes.
	SettleDelay     time.Duration
	CompletionDelay time.Duration
	InterKeyDelay   time.Duration
}

// New creates an Injector using the platform keystroker and pasteboard.
func New(perm permission.Provider) *Injector {
	return &Injector{
		perm:            perm,
		keys:            newKeystroker(),
		board:           systemPasteboard{},
		SettleDelay:     50 * time.Millisecond,
		CompletionDelay: 150 * time.Millisecond,
		InterKeyDelay:   5 * time.Millisecond,
	}
}

// Insert reproduces text as input to the focused application. It blocks for
// the duration of the settle and completion delays and must be called off
// any latency-sensitive goroutine; use InsertAsync from the coordinator.
func (in *Injector) Insert(text string) error {
	if !in.perm.InputMonitoringGranted() {
		in.requestOnce.Do(in.perm.RequestInputMonitoring)
		return ErrPermissionDenied
	}
	if text == "" {
		return nil
	}

	pasteErr := in.insertViaPaste(text)
	if pasteErr == nil {
		return nil
	}
	slog.Debug("paste strategy failed, falling back to typed keys", "error", pasteErr)

	if typeErr := in.insertViaTyping(text); typeErr != nil {
		return fmt.Errorf("%w: paste: %v; typing: %v", ErrInjectionFailed, pasteErr, typeErr)
	}
	return nil
}

// InsertAsync runs Insert on its own goroutine and reports the result
// through done, which may be nil.
func (in *Injector) InsertAsync(text string, done func(error)) {
	go func() {
		err := in.Insert(text)
		if done != nil {
			done(err)
		}
	}()
}

// insertViaPaste snapshots the clipboard, writes text, presses the paste
// shortcut, and restores the snapshot. Restoration runs even when the paste
// failed; a restoration failure is logged and never masks the paste error.
func (in *Injector) insertViaPaste(text string) error {
	prev, err := in.board.GetText()
	if err != nil {
		return fmt.Errorf("snapshot clipboard: %w", err)
	}

	if err := in.board.SetText(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}

	time.Sleep(in.SettleDelay)
	pasteErr := in.keys.PasteCombo()
	time.Sleep(in.CompletionDelay)

	if err := in.board.SetText(prev); err != nil {
		slog.Warn("restore clipboard", "error", err)
	}

	if pasteErr != nil {
		return fmt.Errorf("paste combo: %w", pasteErr)
	}
	return nil
}

// insertViaTyping synthesizes the text character by character. Characters
// with no key mapping are skipped rather than failing the insertion.
func (in *Injector) insertViaTyping(text string) error {
	for _, r := range text {
		ks, ok := lookupKey(r)
		if !ok {
			continue
		}
		if err := in.keys.TypeKey(ks.code, ks.shift); err != nil {
			return fmt.Errorf("type %q: %w", r, err)
		}
		time.Sleep(in.InterKeyDelay)
	}
	return nil
}
