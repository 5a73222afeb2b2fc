package buffer

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-harness/dsp/core"
)

// Errors returned by buffer constructors and transforms.
var (
	ErrNotRectangular = errors.New("buffer: channels differ in length")
	ErrShapeMismatch  = errors.New("buffer: shape mismatch")
)

// Buffer holds channels x samples of float64 audio. Every channel has the
// same length.
type Buffer struct {
	data    [][]float64
	samples int
}

// New returns a zero-filled buffer. Negative sizes are treated as zero.
func New(channels, samples int) *Buffer {
	channels = max(channels, 0)
	samples = max(samples, 0)

	data := make([][]float64, channels)
	for c := range data {
		data[c] = make([]float64, samples)
	}
	return &Buffer{data: data, samples: samples}
}

// FromChannels wraps existing channel slices without copying.
// Mutations to the slices are visible through the Buffer and vice versa.
func FromChannels(data [][]float64) (*Buffer, error) {
	if len(data) == 0 {
		return &Buffer{}, nil
	}

	n := len(data[0])
	for c, ch := range data {
		if len(ch) != n {
			return nil, fmt.Errorf("%w: channel %d has %d samples, want %d", ErrNotRectangular, c, len(ch), n)
		}
	}
	return &Buffer{data: data, samples: n}, nil
}

// NumChannels returns the channel count. A nil buffer has zero channels.
func (b *Buffer) NumChannels() int {
	if b == nil {
		return 0
	}
	return len(b.data)
}

// NumSamples returns the per-channel sample count.
func (b *Buffer) NumSamples() int {
	if b == nil {
		return 0
	}
	return b.samples
}

// Channel returns the samples of channel c.
func (b *Buffer) Channel(c int) []float64 {
	return b.data[c]
}

// Channels returns all channel slices. The slices are owned by the buffer.
func (b *Buffer) Channels() [][]float64 {
	if b == nil {
		return nil
	}
	return b.data
}

// Clear zeroes every sample.
func (b *Buffer) Clear() {
	for _, ch := range b.Channels() {
		core.Zero(ch)
	}
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	out := New(b.NumChannels(), b.NumSamples())
	for c, ch := range b.Channels() {
		copy(out.data[c], ch)
	}
	return out
}

// CopyFrom copies up to n samples from src channel srcCh starting at srcPos
// into channel dstCh starting at dstPos. The count is clipped to both
// buffers' bounds; the number of copied samples is returned.
func (b *Buffer) CopyFrom(dstCh, dstPos int, src *Buffer, srcCh, srcPos, n int) int {
	if dstCh < 0 || dstCh >= b.NumChannels() || srcCh < 0 || srcCh >= src.NumChannels() {
		return 0
	}
	return core.CopyRange(b.data[dstCh], dstPos, src.data[srcCh], srcPos, n)
}
