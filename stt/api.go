package stt

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Compile-time assertion that API implements Recognizer.
var _ Recognizer = (*API)(nil)

// API is a remote recognizer backed by OpenAI's audio transcription
// endpoint.
type API struct {
	model  string
	client openai.Client

	mu     sync.RWMutex
	closed bool
	ready  bool
}

// APIConfig holds configuration for the API recognizer.
type APIConfig struct {
	APIKey  string
	BaseURL string // optional, defaults to OpenAI's API
	Model   string // optional, defaults to whisper-1
}

// NewAPI creates an API recognizer. It is ready as soon as an API key is
// configured; no model download is needed.
func NewAPI(cfg APIConfig) *API {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}

	return &API{
		model:  model,
		client: openai.NewClient(opts...),
		ready:  cfg.APIKey != "",
	}
}

func (a *API) Name() string        { return "whisper-api" }
func (a *API) DisplayName() string { return "OpenAI Whisper API" }
func (a *API) IsLocal() bool       { return false }

func (a *API) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ready && !a.closed
}

// Transcribe uploads the samples as a WAV file and returns the result as a
// single segment spanning the audio length.
func (a *API) Transcribe(samples []float32, language string) ([]Segment, error) {
	a.mu.RLock()
	closed := a.closed
	a.mu.RUnlock()
	if closed {
		return nil, ErrContextNotInitialized
	}

	wav := float32ToWAV(samples, SampleRate)

	params := openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(a.model),
		File:  openai.File(bytes.NewReader(wav), "audio.wav", "audio/wav"),
	}
	if language != "" {
		params.Language = openai.String(language)
	}

	resp, err := a.client.Audio.Transcriptions.New(context.Background(), params)
	if err != nil {
		return nil, fmt.Errorf("stt: transcription request: %w", err)
	}
	if resp.Text == "" {
		return nil, nil
	}

	duration := time.Duration(len(samples)) * time.Second / SampleRate
	return []Segment{{Text: resp.Text, Start: 0, End: duration}}, nil
}

// Close marks the recognizer unusable; subsequent Transcribe calls fail
// with ErrContextNotInitialized.
func (a *API) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}
