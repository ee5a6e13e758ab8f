//go:build darwin

package audiocapture

/*
#cgo CFLAGS: -x objective-c -fobjc-arc -mmacosx-version-min=13.0
#cgo LDFLAGS: -framework AVFoundation -framework AudioToolbox -framework Foundation

#include <stdlib.h>

extern int startMicCapture(const char* deviceID, char** errOut);
extern void stopMicCapture(void);
*/
import "C"

import (
	"errors"
	"strings"
	"sync"
	"unsafe"
)

// chunkHandler receives interleaved native-rate samples.
type chunkHandler func(samples []float32, sampleRate, channels int)

// Global handler for the CGO callback. Only one capture runs at a time.
var (
	globalHandler   chunkHandler
	globalHandlerMu sync.RWMutex
)

//export goMicCallback
func goMicCallback(samples *C.float, count C.int, sampleRate C.int, channels C.int) {
	n := int(count)
	if n <= 0 {
		return
	}

	globalHandlerMu.RLock()
	h := globalHandler
	globalHandlerMu.RUnlock()

	if h == nil {
		return
	}

	// Convert the C array to a Go slice without copying. Safe because the
	// handler finishes with the samples before this function returns.
	goSamples := unsafe.Slice((*float32)(unsafe.Pointer(samples)), n)
	h(goSamples, int(sampleRate), int(channels))
}

// micEngine is the macOS implementation using an AVAudioEngine input tap.
type micEngine struct {
	mu       sync.Mutex
	deviceID string
	running  bool
}

func newEngine() (engine, error) {
	return &micEngine{}, nil
}

func (e *micEngine) start(onChunk func(samples []float32, sampleRate, channels int)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.running {
		return nil
	}

	globalHandlerMu.Lock()
	globalHandler = onChunk
	globalHandlerMu.Unlock()

	var cDevice *C.char
	if e.deviceID != "" {
		cDevice = C.CString(e.deviceID)
		defer C.free(unsafe.Pointer(cDevice))
	}

	var errStr *C.char
	if C.startMicCapture(cDevice, &errStr) != 0 {
		globalHandlerMu.Lock()
		globalHandler = nil
		globalHandlerMu.Unlock()

		if errStr != nil {
			msg := C.GoString(errStr)
			C.free(unsafe.Pointer(errStr))
			if strings.Contains(msg, "no input device") {
				return ErrEngineUnavailable
			}
			return errors.New(msg)
		}
		return ErrEngineUnavailable
	}

	e.running = true
	return nil
}

func (e *micEngine) stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.running {
		return nil
	}

	C.stopMicCapture()

	globalHandlerMu.Lock()
	globalHandler = nil
	globalHandlerMu.Unlock()

	e.running = false
	return nil
}

func (e *micEngine) rebind(deviceID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deviceID = deviceID
	return nil
}
