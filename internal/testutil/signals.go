// Package testutil holds deterministic signals and tolerance assertions
// shared by the harness tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-harness/dsp/buffer"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Delayed returns x delayed by d samples with the same length; the first d
// samples are zero.
func Delayed(x []float64, d int) []float64 {
	out := make([]float64, len(x))
	for i := d; i < len(x); i++ {
		if i-d >= 0 {
			out[i] = x[i-d]
		}
	}
	return out
}

// Multichannel returns a buffer with every channel holding a copy of mono.
func Multichannel(channels int, mono []float64) *buffer.Buffer {
	b := buffer.New(channels, len(mono))
	for c := 0; c < channels; c++ {
		copy(b.Channel(c), mono)
	}
	return b
}
