package buffer

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// SourceChannel returns the source channel feeding output channel c when a
// buffer with sourceChannels channels is spread over more outputs: the last
// available source channel is replicated. It returns -1 when there is no
// source channel at all.
func SourceChannel(c, sourceChannels int) int {
	if sourceChannels <= 0 {
		return -1
	}
	return min(c, sourceChannels-1)
}

// RemapChannels returns a new buffer with target channels and the source's
// sample count. Output channel c copies source channel min(c, sourceChannels-1);
// a source without channels yields silence.
func RemapChannels(src *Buffer, target int) *Buffer {
	out := New(target, src.NumSamples())
	for c := 0; c < out.NumChannels(); c++ {
		sc := SourceChannel(c, src.NumChannels())
		if sc < 0 {
			break
		}
		copy(out.data[c], src.data[sc])
	}
	return out
}

// MonoDownmix returns the per-sample mean across channels. A buffer without
// channels yields zeros of the buffer's sample count.
func MonoDownmix(b *Buffer) []float64 {
	mono := make([]float64, b.NumSamples())
	channels := b.NumChannels()
	if channels == 0 || len(mono) == 0 {
		return mono
	}

	for _, ch := range b.data {
		vecmath.AddBlockInPlace(mono, ch)
	}
	vecmath.ScaleBlockInPlace(mono, 1/float64(channels))
	return mono
}

// IsFinite reports whether every sample is neither NaN nor infinite.
func IsFinite(b *Buffer) bool {
	for _, ch := range b.Channels() {
		for _, v := range ch {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Subtract returns a - b per sample. Both buffers must have the same shape.
func Subtract(a, b *Buffer) (*Buffer, error) {
	if a.NumChannels() != b.NumChannels() || a.NumSamples() != b.NumSamples() {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch,
			a.NumChannels(), a.NumSamples(), b.NumChannels(), b.NumSamples())
	}

	out := New(a.NumChannels(), a.NumSamples())
	for c, dst := range out.data {
		vecmath.ScaleBlock(dst, b.data[c], -1)
		vecmath.AddBlockInPlace(dst, a.data[c])
	}
	return out, nil
}
