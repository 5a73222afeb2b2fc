package plugin

// LayoutCheck reports whether a plugin supports a requested layout.
type LayoutCheck func(BusesLayout) bool

// Base carries the host-facing bookkeeping shared by Go-implemented plugins:
// parameters, bus state and the prepared rate. Plugins embed *Base and add
// ProcessBlock.
type Base struct {
	name     string
	params   []Parameter
	declared BusesLayout
	layout   BusesLayout
	supports LayoutCheck

	sampleRate float64
	blockSize  int
}

// BaseOption configures a Base.
type BaseOption func(*Base)

// WithParameters appends parameters in index order.
func WithParameters(params ...Parameter) BaseOption {
	return func(b *Base) {
		b.params = append(b.params, params...)
	}
}

// WithLayoutCheck restricts the layouts SetBusesLayout accepts. Without a
// check any layout matching the active bus count is accepted.
func WithLayoutCheck(check LayoutCheck) BaseOption {
	return func(b *Base) {
		b.supports = check
	}
}

// NewBase returns a Base declaring the given buses. Only the main buses
// start active.
func NewBase(name string, declared BusesLayout, opts ...BaseOption) *Base {
	b := &Base{
		name:     name,
		declared: declared.clone(),
		layout:   declared.MainOnly(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Name returns the plugin name.
func (b *Base) Name() string { return b.name }

// Parameters returns the parameters in index order.
func (b *Base) Parameters() []Parameter { return b.params }

// Layout returns the active layout.
func (b *Base) Layout() BusesLayout { return b.layout.clone() }

// EnableAllBuses activates every declared bus.
func (b *Base) EnableAllBuses() {
	b.layout = b.declared.clone()
}

// DisableNonMainBuses keeps only the main input and output active.
func (b *Base) DisableNonMainBuses() {
	b.layout = b.layout.MainOnly()
}

// SetBusesLayout accepts layout when it names exactly the active buses and
// passes the plugin's layout check.
func (b *Base) SetBusesLayout(layout BusesLayout) bool {
	if len(layout.Inputs) != len(b.layout.Inputs) || len(layout.Outputs) != len(b.layout.Outputs) {
		return false
	}
	if b.supports != nil && !b.supports(layout) {
		return false
	}
	b.layout = layout.clone()
	return true
}

// SetRateAndBlockSize records the processing details.
func (b *Base) SetRateAndBlockSize(sampleRate float64, blockSize int) {
	b.sampleRate = sampleRate
	b.blockSize = blockSize
}

// SampleRate returns the last rate set by SetRateAndBlockSize or Prepare.
func (b *Base) SampleRate() float64 { return b.sampleRate }

// BlockSize returns the last block size set by SetRateAndBlockSize or Prepare.
func (b *Base) BlockSize() int { return b.blockSize }

// Prepare records the processing details. Plugins with state override it.
func (b *Base) Prepare(sampleRate float64, blockSize int) error {
	b.SetRateAndBlockSize(sampleRate, blockSize)
	return nil
}

// Reset is a no-op for stateless plugins.
func (b *Base) Reset() {}

// Release is a no-op for plugins holding no resources.
func (b *Base) Release() {}

// TotalInputChannels sums the active input buses.
func (b *Base) TotalInputChannels() int { return b.layout.TotalInputChannels() }

// TotalOutputChannels sums the active output buses.
func (b *Base) TotalOutputChannels() int { return b.layout.TotalOutputChannels() }

// Close is a no-op.
func (b *Base) Close() error { return nil }
