package stt

import (
	"errors"
	"fmt"
	"io"
	"sync"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// Compile-time assertion that Native implements Recognizer.
var _ Recognizer = (*Native)(nil)

// Native is a local recognizer backed by the whisper.cpp Go bindings.
// The model is loaded once at construction and shared across calls; each
// Transcribe creates a fresh whisper context because contexts are not
// thread-safe while the model is.
type Native struct {
	modelName string

	mu    sync.RWMutex
	model whisperlib.Model
}

// NewNative loads the whisper.cpp model from modelPath. The caller must
// Close the recognizer to release the model.
func NewNative(modelPath string) (*Native, error) {
	if modelPath == "" {
		return nil, errors.New("stt: model path must not be empty")
	}
	model, err := whisperlib.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("stt: load model %q: %w", modelPath, err)
	}
	return &Native{modelName: modelPath, model: model}, nil
}

func (n *Native) Name() string        { return "whisper-native" }
func (n *Native) DisplayName() string { return "Whisper (local)" }
func (n *Native) IsLocal() bool       { return true }

// Ready reports whether the model is loaded.
func (n *Native) Ready() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.model != nil
}

// Transcribe runs whisper.cpp inference over the samples. Calls after Close
// fail fast with ErrContextNotInitialized.
func (n *Native) Transcribe(samples []float32, language string) ([]Segment, error) {
	n.mu.RLock()
	model := n.model
	n.mu.RUnlock()

	if model == nil {
		return nil, ErrContextNotInitialized
	}

	wctx, err := model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("stt: create context: %w", err)
	}

	if language != "" {
		if err := wctx.SetLanguage(language); err != nil {
			return nil, fmt.Errorf("stt: set language %q: %w", language, err)
		}
	}

	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("stt: process audio: %w", err)
	}

	var segments []Segment
	for {
		seg, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("stt: read segment: %w", err)
		}
		segments = append(segments, Segment{
			Text:  seg.Text,
			Start: seg.Start,
			End:   seg.End,
		})
	}
	return segments, nil
}

// Close releases the model. Idempotent.
func (n *Native) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.model == nil {
		return nil
	}
	err := n.model.Close()
	n.model = nil
	return err
}
