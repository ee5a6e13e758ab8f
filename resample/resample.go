// Package resample provides channel mixdown and sample-rate conversion for
// microphone audio on its way to the recognizer.
//
// The resampler is deliberately a linear interpolator rather than a
// band-limited filter: it runs on the audio callback path where latency
// matters, and speech recognition downstream tolerates the minor aliasing.
package resample

// Mixdown reduces multi-channel planar audio to mono by averaging all
// channels per frame. A single channel is returned unchanged. The output
// length is the shortest channel length.
func Mixdown(channels [][]float32) []float32 {
	switch len(channels) {
	case 0:
		return nil
	case 1:
		return channels[0]
	}

	frames := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) < frames {
			frames = len(ch)
		}
	}

	mono := make([]float32, frames)
	inv := 1.0 / float32(len(channels))
	for i := range frames {
		var sum float32
		for _, ch := range channels {
			sum += ch[i]
		}
		mono[i] = sum * inv
	}
	return mono
}

// MixdownInterleaved reduces interleaved multi-channel audio to mono by
// averaging each frame's channel samples. Hardware callbacks deliver
// interleaved chunks, so this is the variant used on the capture path.
// Any trailing partial frame is ignored.
func MixdownInterleaved(samples []float32, channels int) []float32 {
	if channels <= 1 {
		return samples
	}

	frames := len(samples) / channels
	mono := make([]float32, frames)
	inv := 1.0 / float32(channels)
	for i := range frames {
		var sum float32
		for ch := range channels {
			sum += samples[i*channels+ch]
		}
		mono[i] = sum * inv
	}
	return mono
}

// Resample converts mono samples from fromRate to toRate using linear
// interpolation. Equal rates (or non-positive rates) return the input
// unchanged. The output length is floor(len(samples)/ratio); inputs too
// short to produce a single output frame yield an empty slice.
func Resample(samples []float32, fromRate, toRate int) []float32 {
	if fromRate == toRate || fromRate <= 0 || toRate <= 0 {
		return samples
	}
	if len(samples) == 0 {
		return samples
	}

	ratio := float64(fromRate) / float64(toRate)
	outLen := int(float64(len(samples)) / ratio)
	if outLen == 0 {
		return nil
	}

	out := make([]float32, outLen)
	for i := range outLen {
		pos := float64(i) * ratio
		idx := int(pos)
		frac := float32(pos - float64(idx))

		if idx+1 < len(samples) {
			out[i] = samples[idx]*(1-frac) + samples[idx+1]*frac
		} else {
			out[i] = samples[idx]
		}
	}
	return out
}
