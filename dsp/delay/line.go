package delay

import "fmt"

// Line is a circular delay line holding up to MaxDelay samples of history.
type Line struct {
	buffer   []float64
	writePos int
	delay    int
}

// New returns a delay line able to delay by up to maxDelay samples.
func New(maxDelay int) (*Line, error) {
	if maxDelay < 0 {
		return nil, fmt.Errorf("delay: max delay must be >= 0: %d", maxDelay)
	}
	return &Line{buffer: make([]float64, maxDelay+1)}, nil
}

// MaxDelay returns the largest delay the line can produce.
func (d *Line) MaxDelay() int {
	return len(d.buffer) - 1
}

// Delay returns the delay used by Process.
func (d *Line) Delay() int {
	return d.delay
}

// SetDelay sets the delay used by Process, clamped to [0, MaxDelay].
func (d *Line) SetDelay(samples int) {
	d.delay = min(max(samples, 0), d.MaxDelay())
}

// Write pushes one sample.
func (d *Line) Write(sample float64) {
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Read returns the sample written delay writes before the most recent one.
// Read(0) is the most recent sample.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	delay = min(max(delay, 0), size-1)
	readPos := (d.writePos - 1 - delay + 2*size) % size
	return d.buffer[readPos]
}

// Process writes sample and returns the delayed output.
func (d *Line) Process(sample float64) float64 {
	d.Write(sample)
	return d.Read(d.delay)
}

// ProcessInPlace delays buf sample by sample.
func (d *Line) ProcessInPlace(buf []float64) {
	for i, v := range buf {
		buf[i] = d.Process(v)
	}
}

// Reset clears line state. The delay setting is kept.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}
