// Package dictation sequences one push-to-talk cycle: hotkey edges drive
// audio capture, captured audio is transcribed, and the transcript is
// injected into the focused application. A single coordinator goroutine
// owns the published state; recognition and injection run on worker
// goroutines that report back over the coordinator's event channel.
package dictation

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ddushok/mac-shout/history"
	"github.com/ddushok/mac-shout/stt"
)

// Capturer is the audio capture surface the coordinator drives.
type Capturer interface {
	Start() error
	Stop() []float32
}

// Recognizer converts audio to transcript segments; satisfied by
// stt.Recognizer.
type Recognizer interface {
	Ready() bool
	Transcribe(samples []float32, language string) ([]stt.Segment, error)
}

// Injector writes text into the focused application; satisfied by
// inject.Injector.
type Injector interface {
	Insert(text string) error
}

// Settings supplies per-cycle configuration. It is consulted once at the
// start of each recording cycle; changes mid-cycle do not affect that
// cycle.
type Settings interface {
	RecognitionLanguage() string
}

// EventSink observes coordinator output. Methods are called from the
// coordinator goroutine, one at a time, with a consistent snapshot.
type EventSink interface {
	StateChanged(State)
	Transcript(text string)
}

// Historian records completed dictations; satisfied by history.Store.
type Historian interface {
	Append(text, language string) (history.Entry, error)
}

// eventKind discriminates the coordinator's internal events.
type eventKind int

const (
	evDown eventKind = iota
	evUp
	evTranscribed
	evInserted
	evReload
)

type event struct {
	kind     eventKind
	segments []stt.Segment
	err      error
	text     string
	language string
}

// Coordinator is the push-to-talk state machine.
type Coordinator struct {
	capture  Capturer
	rec      Recognizer
	injector Injector
	settings Settings
	sink     EventSink
	hist     Historian

	// edges is written from the event-interception context; it is buffered
	// and sends never block there.
	edges chan event

	// results carries worker completions and reload requests.
	results chan event

	// mu guards the published snapshot; the coordinator goroutine is the
	// only writer.
	mu             sync.RWMutex
	state          State
	lastTranscript string
}

// Option configures optional coordinator collaborators.
type Option func(*Coordinator)

// WithHistorian records every completed dictation in h.
func WithHistorian(h Historian) Option {
	return func(c *Coordinator) { c.hist = h }
}

// New creates an idle coordinator. Call Run to start processing edges.
func New(capture Capturer, rec Recognizer, injector Injector, settings Settings, sink EventSink, opts ...Option) *Coordinator {
	c := &Coordinator{
		capture:  capture,
		rec:      rec,
		injector: injector,
		settings: settings,
		sink:     sink,
		edges:    make(chan event, 8),
		results:  make(chan event, 4),
		state:    State{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HotkeyDown reports a press edge. Safe to call from the interception
// context: it never blocks, dropping the edge if the coordinator is
// backlogged.
func (c *Coordinator) HotkeyDown() {
	select {
	case c.edges <- event{kind: evDown}:
	default:
	}
}

// HotkeyUp reports a release edge. Never blocks.
func (c *Coordinator) HotkeyUp() {
	select {
	case c.edges <- event{kind: evUp}:
	default:
	}
}

// Reload re-resolves recognizer availability after an error. It is the
// only way out of PhaseError.
func (c *Coordinator) Reload() {
	select {
	case c.results <- event{kind: evReload}:
	default:
	}
}

// State returns a snapshot of the published state.
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// LastTranscript returns the most recent non-empty transcript.
func (c *Coordinator) LastTranscript() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastTranscript
}

// Run processes edges and worker results until ctx is cancelled. All state
// transitions happen here, so observers always see complete states.
//
// Recognition and injection carry no timeout: a stuck worker leaves the
// published state in Transcribing or Inserting until Reload or process
// restart. Cancellation support would hook in at the worker spawn points.
func (c *Coordinator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-c.edges:
			c.handleEdge(ev)
		case ev := <-c.results:
			c.handleResult(ev)
		}
	}
}

func (c *Coordinator) handleEdge(ev event) {
	switch ev.kind {
	case evDown:
		if c.state.Phase != PhaseIdle {
			slog.Debug("hotkey down ignored", "phase", c.state.Phase)
			return
		}
		if err := c.capture.Start(); err != nil {
			slog.Error("start capture", "error", err)
			c.setError(err.Error())
			return
		}
		c.setPhase(PhaseRecording)

	case evUp:
		if c.state.Phase != PhaseRecording {
			return
		}
		samples := c.capture.Stop()
		if len(samples) == 0 {
			c.setPhase(PhaseIdle)
			return
		}
		if c.rec == nil || !c.rec.Ready() {
			c.setError("model not loaded")
			return
		}

		language := c.settings.RecognitionLanguage()
		c.setPhase(PhaseTranscribing)
		go c.transcribe(samples, language)
	}
}

func (c *Coordinator) handleResult(ev event) {
	switch ev.kind {
	case evTranscribed:
		if c.state.Phase != PhaseTranscribing {
			return
		}
		if ev.err != nil {
			slog.Error("transcribe", "error", ev.err)
			c.setError("transcription failed")
			return
		}
		text := stt.JoinSegments(ev.segments)
		if text == "" {
			c.setPhase(PhaseIdle)
			return
		}

		c.mu.Lock()
		c.lastTranscript = text
		c.mu.Unlock()
		c.sink.Transcript(text)
		c.setPhase(PhaseInserting)
		go c.insert(text, ev.language)

	case evInserted:
		if c.state.Phase != PhaseInserting {
			return
		}
		if ev.err != nil {
			slog.Error("insert", "error", ev.err)
			c.setError(fmt.Sprintf("insertion failed: %v", ev.err))
			return
		}
		c.setPhase(PhaseIdle)

	case evReload:
		if c.state.Phase != PhaseError {
			return
		}
		if c.rec != nil && c.rec.Ready() {
			c.setPhase(PhaseIdle)
		} else {
			c.setError("model not loaded")
		}
	}
}

// transcribe runs on a worker goroutine.
func (c *Coordinator) transcribe(samples []float32, language string) {
	segments, err := c.rec.Transcribe(samples, language)
	c.results <- event{kind: evTranscribed, segments: segments, err: err, language: language}
}

// insert runs on a worker goroutine. History recording is best effort and
// only happens for successfully inserted text.
func (c *Coordinator) insert(text, language string) {
	err := c.injector.Insert(text)
	if err == nil && c.hist != nil {
		if histErr := c.hist.Append(text, language); histErr != nil {
			slog.Warn("record history", "error", histErr)
		}
	}
	c.results <- event{kind: evInserted, err: err, text: text}
}

// setPhase publishes the new state atomically: the snapshot is replaced
// under the lock before any observer is notified, so readers never see a
// partial transition.
func (c *Coordinator) setPhase(p Phase) {
	c.mu.Lock()
	c.state = State{Phase: p}
	c.mu.Unlock()
	c.sink.StateChanged(State{Phase: p})
}

func (c *Coordinator) setError(msg string) {
	s := State{Phase: PhaseError, Err: msg}
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
	c.sink.StateChanged(s)
}
