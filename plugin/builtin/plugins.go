package builtin

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-harness/dsp/core"
	"github.com/cwbudde/algo-harness/dsp/delay"
	"github.com/cwbudde/algo-harness/plugin"
)

const (
	// GainMinDB and GainMaxDB bound the gain plugin's plain range.
	GainMinDB = -60.0
	GainMaxDB = 12.0

	// DelayMaxMs bounds the delay plugin's plain range.
	DelayMaxMs = 100.0
)

func stereoLayout(l plugin.BusesLayout) bool {
	return l.MainInput() == plugin.Stereo() && l.MainOutput() == plugin.Stereo()
}

// Passthrough leaves audio untouched. It only accepts a stereo main layout.
type Passthrough struct {
	*plugin.Base
}

// NewPassthrough returns a Passthrough.
func NewPassthrough(float64, int) (plugin.Instance, error) {
	return &Passthrough{
		Base: plugin.NewBase("Passthrough", plugin.SymmetricLayout(plugin.Stereo()),
			plugin.WithLayoutCheck(stereoLayout)),
	}, nil
}

// ProcessBlock does nothing.
func (p *Passthrough) ProcessBlock([][]float64) {}

// Gain scales every channel by a decibel amount.
type Gain struct {
	*plugin.Base
	gain *plugin.Param
}

// NewGain returns a Gain at 0 dB.
func NewGain(float64, int) (plugin.Instance, error) {
	p := plugin.NewParam("Gain", GainMinDB, GainMaxDB, -GainMinDB/(GainMaxDB-GainMinDB))
	return &Gain{
		Base: plugin.NewBase("Gain", plugin.SymmetricLayout(plugin.Stereo()),
			plugin.WithParameters(p)),
		gain: p,
	}, nil
}

// GainDB returns the current gain in decibels.
func (g *Gain) GainDB() float64 {
	return g.gain.Plain()
}

// ProcessBlock scales block in place.
func (g *Gain) ProcessBlock(block [][]float64) {
	scale := core.DBToLinear(g.GainDB())
	for _, ch := range block {
		vecmath.ScaleBlockInPlace(ch, scale)
	}
}

// Delay delays every channel by a whole number of samples.
type Delay struct {
	*plugin.Base
	delay *plugin.Param
	lines []*delay.Line
}

// NewDelay returns a Delay at 0 ms.
func NewDelay(float64, int) (plugin.Instance, error) {
	p := plugin.NewParam("Delay", 0, DelayMaxMs, 0)
	return &Delay{
		Base: plugin.NewBase("Delay", plugin.SymmetricLayout(plugin.Stereo()),
			plugin.WithParameters(p)),
		delay: p,
	}, nil
}

// DelaySamples returns the delay in samples at the prepared rate.
func (d *Delay) DelaySamples() int {
	return core.RoundToInt(d.delay.Plain() * d.SampleRate() / 1000)
}

// Prepare allocates one line per output channel, sized for the longest
// delay at sampleRate.
func (d *Delay) Prepare(sampleRate float64, blockSize int) error {
	if err := d.Base.Prepare(sampleRate, blockSize); err != nil {
		return err
	}

	maxDelay := core.RoundToInt(DelayMaxMs * sampleRate / 1000)
	channels := max(d.TotalInputChannels(), d.TotalOutputChannels())
	d.lines = make([]*delay.Line, channels)
	for c := range d.lines {
		line, err := delay.New(maxDelay)
		if err != nil {
			return fmt.Errorf("builtin: delay line: %w", err)
		}
		d.lines[c] = line
	}

	return nil
}

// Reset clears the delay lines.
func (d *Delay) Reset() {
	for _, line := range d.lines {
		line.Reset()
	}
}

// Release drops the delay lines.
func (d *Delay) Release() {
	d.lines = nil
}

// ProcessBlock delays block in place. Channels without a line are left
// untouched.
func (d *Delay) ProcessBlock(block [][]float64) {
	samples := d.DelaySamples()
	for c, ch := range block {
		if c >= len(d.lines) {
			break
		}
		d.lines[c].SetDelay(samples)
		d.lines[c].ProcessInPlace(ch)
	}
}
