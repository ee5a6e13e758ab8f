// Package audiocapture owns the microphone stream for push-to-talk
// recording. While capturing, each hardware chunk is mixed down to mono,
// resampled to the target rate, and appended to an internal buffer; Stop
// hands the accumulated buffer over to the caller.
package audiocapture

import (
	"errors"
	"sync"

	"github.com/ddushok/mac-shout/permission"
	"github.com/ddushok/mac-shout/resample"
)

// ErrPermissionDenied is returned when microphone access has not been granted.
var ErrPermissionDenied = errors.New("microphone access not granted")

// ErrEngineUnavailable is returned when no capture device is available.
var ErrEngineUnavailable = errors.New("no audio capture device available")

// ErrUnsupported is returned on platforms without a capture backend.
var ErrUnsupported = errors.New("audio capture not supported on this platform")

// TargetSampleRate is the rate the recognizer expects.
const TargetSampleRate = 16000

// engine is the platform-specific microphone backend. The chunk callback
// delivers interleaved float32 samples at the device's native rate and
// channel count, on the hardware audio thread.
type engine interface {
	start(onChunk func(samples []float32, sampleRate, channels int)) error
	stop() error
	rebind(deviceID string) error
}

// Recorder accumulates mono 16 kHz samples from the microphone.
// All methods are safe for concurrent use.
type Recorder struct {
	perm permission.Provider
	eng  engine

	requestOnce sync.Once

	mu        sync.Mutex
	capturing bool
	buf       []float32
}

// NewRecorder creates a Recorder backed by the platform capture engine.
// Fails with ErrUnsupported where no backend exists.
func NewRecorder(perm permission.Provider) (*Recorder, error) {
	eng, err := newEngine()
	if err != nil {
		return nil, err
	}
	return &Recorder{perm: perm, eng: eng}, nil
}

// Start begins receiving hardware callbacks. It clears any buffer left from
// a previous session. Calling Start while already capturing is a no-op
// returning nil. Returns ErrPermissionDenied (after firing the one-shot
// system permission prompt) when microphone access is missing, and
// ErrEngineUnavailable when no input device can be opened.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capturing {
		return nil
	}

	if !r.perm.MicrophoneGranted() {
		r.requestOnce.Do(r.perm.RequestMicrophone)
		return ErrPermissionDenied
	}

	r.buf = nil
	if err := r.eng.start(r.handleChunk); err != nil {
		return err
	}
	r.capturing = true
	return nil
}

// Stop disables the hardware tap and returns the accumulated buffer,
// resetting it to empty. The returned slice is owned by the caller; the
// Recorder keeps no reference. Calling Stop while not capturing returns an
// empty buffer and is otherwise a no-op.
func (r *Recorder) Stop() []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.capturing {
		return nil
	}

	// Stopping the engine before releasing the lock guarantees the handoff
	// happens-after the last append from the hardware thread.
	_ = r.eng.stop()
	r.capturing = false

	out := r.buf
	r.buf = nil
	return out
}

// IsCapturing reports whether a session is active.
func (r *Recorder) IsCapturing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.capturing
}

// Rebind switches the capture device. An active session is stopped first
// and is not restarted; the caller decides whether to begin a new one.
func (r *Recorder) Rebind(deviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.capturing {
		_ = r.eng.stop()
		r.capturing = false
		r.buf = nil
	}
	return r.eng.rebind(deviceID)
}

// handleChunk runs on the hardware audio thread. It must not block: the
// mixdown and resample are O(chunk) and the lock is held only for the
// append.
func (r *Recorder) handleChunk(samples []float32, sampleRate, channels int) {
	mono := resample.MixdownInterleaved(samples, channels)
	out := resample.Resample(mono, sampleRate, TargetSampleRate)
	if len(out) == 0 {
		return
	}

	r.mu.Lock()
	if r.capturing {
		r.buf = append(r.buf, out...)
	}
	r.mu.Unlock()
}
