package plugin

import "errors"

var (
	// ErrNoFormats is returned by a FormatManager constructed without formats.
	ErrNoFormats = errors.New("plugin: no plugin formats registered")
	// ErrNoTypes is returned when no format recognises a plugin in a path.
	ErrNoTypes = errors.New("plugin: no plugin types found")
	// ErrNoOutputs is returned when a configured instance has no output channels.
	ErrNoOutputs = errors.New("plugin: plugin reports zero output channels")
	// ErrParameterNotFound is returned when a named parameter does not exist.
	ErrParameterNotFound = errors.New("plugin: could not find plugin parameter named")
)

// Parameter is one automatable plugin control with a normalized value in
// [0, 1].
type Parameter interface {
	Name() string
	DefaultValue() float64
	Value() float64
	SetValue(v float64)
}

// ParameterStore exposes an instance's parameters in index order.
type ParameterStore interface {
	Parameters() []Parameter
}

// BlockProcessor processes one block of audio in place. Every channel slice
// has the same length, which never exceeds the prepared block size.
type BlockProcessor interface {
	ProcessBlock(block [][]float64)
}

// Instance is a loaded plugin the host can configure and render through.
type Instance interface {
	ParameterStore
	BlockProcessor

	Name() string

	// EnableAllBuses activates every bus the plugin declares.
	EnableAllBuses()
	// SetBusesLayout requests layout and reports whether it was accepted.
	SetBusesLayout(layout BusesLayout) bool
	// DisableNonMainBuses deactivates every bus but the main input and output.
	DisableNonMainBuses()
	SetRateAndBlockSize(sampleRate float64, blockSize int)

	Prepare(sampleRate float64, blockSize int) error
	Reset()
	Release()

	TotalInputChannels() int
	TotalOutputChannels() int

	Close() error
}

// Description identifies one plugin type found by a Format.
type Description struct {
	Name       string
	Format     string
	Identifier string
}

// Format discovers and instantiates plugins of one kind.
type Format interface {
	Name() string
	// FindTypes returns the plugin types available at path. An unrelated
	// path yields no descriptions and no error.
	FindTypes(path string) ([]Description, error)
	CreateInstance(desc Description, sampleRate float64, blockSize int) (Instance, error)
}
