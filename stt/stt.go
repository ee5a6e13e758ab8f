// Package stt provides the speech-to-text recognizer interface and
// implementations. Both local (whisper.cpp bindings) and remote (OpenAI
// API) recognizers satisfy the same interface.
package stt

import (
	"errors"
	"strings"
	"time"
)

// ErrContextNotInitialized is returned when a recognizer is used before its
// engine is loaded or after Close released it.
var ErrContextNotInitialized = errors.New("recognition context not initialized")

// SampleRate is the sample rate all recognizers expect.
const SampleRate = 16000

// Segment is one time-stamped span of recognized speech.
type Segment struct {
	Text  string        `json:"text"`
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
}

// Recognizer converts captured audio into transcript segments.
type Recognizer interface {
	// Name returns the recognizer identifier.
	Name() string

	// DisplayName returns the human-readable recognizer name.
	DisplayName() string

	// IsLocal returns true if recognition runs without network calls.
	IsLocal() bool

	// Ready reports whether the recognizer can serve Transcribe now.
	Ready() bool

	// Transcribe converts mono float32 samples at SampleRate into segments
	// in emission order. Blocking; callers run it on a worker goroutine.
	// language is a BCP-47 code, empty for auto-detect.
	Transcribe(samples []float32, language string) ([]Segment, error)

	// Close releases engine resources. Transcribe after Close fails fast
	// with ErrContextNotInitialized.
	Close() error
}

// JoinSegments concatenates segment texts, space-joined, preserving
// emission order. Empty segments are dropped.
func JoinSegments(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// Registry holds registered recognizers.
type Registry struct {
	recognizers map[string]Recognizer
	order       []string
}

// NewRegistry creates an empty recognizer registry.
func NewRegistry() *Registry {
	return &Registry{recognizers: make(map[string]Recognizer)}
}

// Register adds a recognizer to the registry.
func (r *Registry) Register(rec Recognizer) {
	if _, exists := r.recognizers[rec.Name()]; !exists {
		r.order = append(r.order, rec.Name())
	}
	r.recognizers[rec.Name()] = rec
}

// Get returns a recognizer by name, nil if absent.
func (r *Registry) Get(name string) Recognizer {
	return r.recognizers[name]
}

// List returns all registered recognizers in registration order.
func (r *Registry) List() []Recognizer {
	result := make([]Recognizer, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.recognizers[name])
	}
	return result
}

// Close releases all recognizers, returning the first error.
func (r *Registry) Close() error {
	var firstErr error
	for _, name := range r.order {
		if err := r.recognizers[name].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
