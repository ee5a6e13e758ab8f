package resample

import (
	"math"
	"testing"
)

func TestResampleIdentity(t *testing.T) {
	tests := []struct {
		name string
		rate int
	}{
		{"whisper_16k", 16000},
		{"cd_44k", 44100},
		{"device_48k", 48000},
	}

	in := []float32{0.1, -0.2, 0.3, -0.4}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resample(in, tt.rate, tt.rate)
			if len(out) != len(in) {
				t.Fatalf("len = %d, want %d", len(out), len(in))
			}
			for i := range in {
				if out[i] != in[i] {
					t.Errorf("out[%d] = %v, want %v", i, out[i], in[i])
				}
			}
		})
	}
}

func TestResampleDownsample(t *testing.T) {
	// 48 kHz -> 16 kHz is the common device-to-whisper path.
	in := make([]float32, 480)
	for i := range in {
		in[i] = float32(i) / 480
	}

	out := Resample(in, 48000, 16000)
	if want := 160; len(out) != want {
		t.Fatalf("len = %d, want %d", len(out), want)
	}

	// Linear interpolation of a linear ramp reproduces the ramp.
	for i, v := range out {
		want := float32(i*3) / 480
		if math.Abs(float64(v-want)) > 1e-5 {
			t.Fatalf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestResampleUpsampleInterpolates(t *testing.T) {
	out := Resample([]float32{0, 1}, 16000, 32000)
	if len(out) != 4 {
		t.Fatalf("len = %d, want 4", len(out))
	}
	if out[0] != 0 || out[1] != 0.5 {
		t.Errorf("got %v, want interpolated midpoint at index 1", out)
	}
}

func TestResampleEdgeCases(t *testing.T) {
	tests := []struct {
		name     string
		in       []float32
		from, to int
		wantLen  int
	}{
		{"empty_input", nil, 48000, 16000, 0},
		{"too_short_for_ratio", []float32{0.5, 0.5}, 48000, 16000, 0},
		{"zero_rate_passthrough", []float32{0.5}, 0, 16000, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resample(tt.in, tt.from, tt.to)
			if len(out) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(out), tt.wantLen)
			}
		})
	}
}

func TestMixdownSingleChannelPassthrough(t *testing.T) {
	ch := []float32{0.25, -0.5, 0.75}
	out := Mixdown([][]float32{ch})
	if len(out) != len(ch) {
		t.Fatalf("len = %d, want %d", len(out), len(ch))
	}
	for i := range ch {
		if out[i] != ch[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], ch[i])
		}
	}
}

func TestMixdownAverages(t *testing.T) {
	out := Mixdown([][]float32{
		{1, 0, -1},
		{0, 1, -1},
	})
	want := []float32{0.5, 0.5, -1}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestMixdownUnevenChannels(t *testing.T) {
	out := Mixdown([][]float32{
		{1, 1, 1},
		{0, 0},
	})
	if len(out) != 2 {
		t.Fatalf("len = %d, want shortest channel length 2", len(out))
	}
}

func TestMixdownInterleaved(t *testing.T) {
	tests := []struct {
		name     string
		in       []float32
		channels int
		want     []float32
	}{
		{"mono_passthrough", []float32{0.1, 0.2}, 1, []float32{0.1, 0.2}},
		{"stereo", []float32{1, 0, 0, 1}, 2, []float32{0.5, 0.5}},
		{"trailing_partial_frame_dropped", []float32{1, 1, 1}, 2, []float32{1}},
		{"empty", nil, 2, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := MixdownInterleaved(tt.in, tt.channels)
			if len(out) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(out), len(tt.want))
			}
			for i := range tt.want {
				if out[i] != tt.want[i] {
					t.Errorf("out[%d] = %v, want %v", i, out[i], tt.want[i])
				}
			}
		})
	}
}
