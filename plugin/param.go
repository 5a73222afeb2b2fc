package plugin

import "github.com/cwbudde/algo-harness/dsp/core"

// Param is a plain Parameter mapping its normalized value linearly onto
// [Min, Max].
type Param struct {
	name  string
	min   float64
	max   float64
	def   float64
	value float64
}

// NewParam returns a parameter whose plain range is [min, max] and whose
// normalized default is def.
func NewParam(name string, min, max, def float64) *Param {
	def = core.Clamp(def, 0, 1)
	return &Param{name: name, min: min, max: max, def: def, value: def}
}

// Name returns the display name.
func (p *Param) Name() string { return p.name }

// DefaultValue returns the normalized default.
func (p *Param) DefaultValue() float64 { return p.def }

// Value returns the normalized value.
func (p *Param) Value() float64 { return p.value }

// SetValue sets the normalized value, clamped to [0, 1].
func (p *Param) SetValue(v float64) {
	p.value = core.Clamp(v, 0, 1)
}

// Plain returns the value mapped onto [Min, Max].
func (p *Param) Plain() float64 {
	return p.min + p.value*(p.max-p.min)
}
