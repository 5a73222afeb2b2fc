package plugin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/algo-harness/internal/errkind"
)

// ConfigureChannels asks inst for a symmetric single-bus layout of channels
// and sets its rate and block size. When the layout is rejected the
// instance keeps its own main layout with every auxiliary bus disabled.
func ConfigureChannels(inst Instance, channels int, sampleRate float64, blockSize int, opts ...Option) error {
	cfg := applyOptions(opts)

	if channels <= 0 {
		return errkind.New(errkind.Validation, "channel count must be positive: %d", channels)
	}

	inst.EnableAllBuses()

	set := ChannelSetFor(channels)
	if !inst.SetBusesLayout(SymmetricLayout(set)) {
		cfg.logger.Debug("plugin rejected requested layout, disabling non-main buses",
			"plugin", inst.Name(), "layout", set.String())
		inst.DisableNonMainBuses()
	}

	inst.SetRateAndBlockSize(sampleRate, blockSize)

	if inst.TotalOutputChannels() <= 0 {
		return errkind.Classify(errkind.Plugin, ErrNoOutputs)
	}

	cfg.logger.Debug("plugin configured", "plugin", inst.Name(),
		"inputs", inst.TotalInputChannels(), "outputs", inst.TotalOutputChannels())

	return nil
}

// ApplyParameters sets each named normalized value on the first parameter
// whose name matches case-insensitively. Names are applied in sorted order.
func ApplyParameters(store ParameterStore, values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	params := store.Parameters()
	for _, name := range names {
		p := findParameter(params, name)
		if p == nil {
			return errkind.Classify(errkind.Plugin, fmt.Errorf("%w: %s", ErrParameterNotFound, name))
		}
		p.SetValue(values[name])
	}

	return nil
}

func findParameter(params []Parameter, name string) Parameter {
	for _, p := range params {
		if strings.EqualFold(p.Name(), name) {
			return p
		}
	}
	return nil
}
