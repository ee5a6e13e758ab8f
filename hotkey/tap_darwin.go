//go:build darwin

package hotkey

/*
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation

#include <stdbool.h>

extern int createKeyTap(void);
extern void runKeyTapLoop(void);
extern void stopKeyTapLoop(void);
*/
import "C"

import (
	"errors"
	"runtime"
	"sync"
)

// CGEventFlags bits for the four modifiers the matcher considers.
const (
	cgFlagControl = 0x00040000
	cgFlagOption  = 0x00080000
	cgFlagShift   = 0x00020000
	cgFlagCommand = 0x00100000
)

// Global handler for the CGO callback. Only one tap runs at a time.
var (
	globalTapHandler   func(keyCode uint16, held Modifier, down bool) bool
	globalTapHandlerMu sync.RWMutex
)

//export goKeyTapEvent
func goKeyTapEvent(keyCode C.longlong, flags C.ulonglong, down C.int) C.int {
	globalTapHandlerMu.RLock()
	h := globalTapHandler
	globalTapHandlerMu.RUnlock()

	if h == nil {
		return 0
	}

	var held Modifier
	if flags&cgFlagControl != 0 {
		held |= ModControl
	}
	if flags&cgFlagOption != 0 {
		held |= ModOption
	}
	if flags&cgFlagShift != 0 {
		held |= ModShift
	}
	if flags&cgFlagCommand != 0 {
		held |= ModCommand
	}

	if h(uint16(keyCode), held, down != 0) {
		return 1
	}
	return 0
}

// eventTap installs a low-level CGEventTap on a dedicated OS thread running
// its own CFRunLoop. The C side re-enables the tap whenever the OS disables
// it for timeout or user-input storm, passing the triggering event through.
type eventTap struct {
	done chan struct{}
}

func newTap() tap {
	return &eventTap{}
}

func (t *eventTap) install(handler func(keyCode uint16, held Modifier, down bool) bool) error {
	globalTapHandlerMu.Lock()
	globalTapHandler = handler
	globalTapHandlerMu.Unlock()

	errCh := make(chan error, 1)
	t.done = make(chan struct{})

	go func() {
		// The tap's run loop must stay on one OS thread for its lifetime.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		if C.createKeyTap() != 0 {
			errCh <- errors.New("CGEventTapCreate returned NULL")
			return
		}
		errCh <- nil

		C.runKeyTapLoop()
		close(t.done)
	}()

	if err := <-errCh; err != nil {
		globalTapHandlerMu.Lock()
		globalTapHandler = nil
		globalTapHandlerMu.Unlock()
		return err
	}
	return nil
}

func (t *eventTap) release() {
	C.stopKeyTapLoop()
	if t.done != nil {
		<-t.done
	}

	globalTapHandlerMu.Lock()
	globalTapHandler = nil
	globalTapHandlerMu.Unlock()
}
