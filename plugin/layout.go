package plugin

import "fmt"

// SetKind distinguishes the named channel sets from discrete ones.
type SetKind int

const (
	// KindDisabled is a bus carrying no channels.
	KindDisabled SetKind = iota
	// KindMono is a single-channel bus.
	KindMono
	// KindStereo is a left/right pair.
	KindStereo
	// KindDiscrete is an unnamed bus of N channels.
	KindDiscrete
)

// ChannelSet describes the channels carried by one bus.
type ChannelSet struct {
	kind     SetKind
	channels int
}

// Disabled returns the empty channel set.
func Disabled() ChannelSet { return ChannelSet{} }

// Mono returns the single-channel set.
func Mono() ChannelSet { return ChannelSet{kind: KindMono, channels: 1} }

// Stereo returns the left/right set.
func Stereo() ChannelSet { return ChannelSet{kind: KindStereo, channels: 2} }

// Discrete returns an unnamed set of n channels. n <= 0 yields Disabled.
func Discrete(n int) ChannelSet {
	if n <= 0 {
		return Disabled()
	}
	return ChannelSet{kind: KindDiscrete, channels: n}
}

// ChannelSetFor picks the set a host requests for n channels: mono for
// n <= 1, stereo for 2 and discrete otherwise.
func ChannelSetFor(n int) ChannelSet {
	switch {
	case n <= 1:
		return Mono()
	case n == 2:
		return Stereo()
	default:
		return Discrete(n)
	}
}

// Kind returns the set kind.
func (s ChannelSet) Kind() SetKind { return s.kind }

// Size returns the number of channels in the set.
func (s ChannelSet) Size() int { return s.channels }

// IsDisabled reports whether the set carries no channels.
func (s ChannelSet) IsDisabled() bool { return s.channels == 0 }

func (s ChannelSet) String() string {
	switch s.kind {
	case KindMono:
		return "mono"
	case KindStereo:
		return "stereo"
	case KindDiscrete:
		return fmt.Sprintf("discrete(%d)", s.channels)
	default:
		return "disabled"
	}
}

// BusesLayout lists the channel set of every input and output bus. Index 0
// is the main bus.
type BusesLayout struct {
	Inputs  []ChannelSet
	Outputs []ChannelSet
}

// SymmetricLayout returns a layout with one main input and one main output
// bus, both carrying set.
func SymmetricLayout(set ChannelSet) BusesLayout {
	return BusesLayout{
		Inputs:  []ChannelSet{set},
		Outputs: []ChannelSet{set},
	}
}

// MainInput returns the main input set, or Disabled when there is none.
func (l BusesLayout) MainInput() ChannelSet {
	if len(l.Inputs) == 0 {
		return Disabled()
	}
	return l.Inputs[0]
}

// MainOutput returns the main output set, or Disabled when there is none.
func (l BusesLayout) MainOutput() ChannelSet {
	if len(l.Outputs) == 0 {
		return Disabled()
	}
	return l.Outputs[0]
}

// TotalInputChannels sums the channels of all input buses.
func (l BusesLayout) TotalInputChannels() int {
	return totalChannels(l.Inputs)
}

// TotalOutputChannels sums the channels of all output buses.
func (l BusesLayout) TotalOutputChannels() int {
	return totalChannels(l.Outputs)
}

// MainOnly returns a copy of l with every non-main bus removed.
func (l BusesLayout) MainOnly() BusesLayout {
	out := BusesLayout{}
	if len(l.Inputs) > 0 {
		out.Inputs = []ChannelSet{l.Inputs[0]}
	}
	if len(l.Outputs) > 0 {
		out.Outputs = []ChannelSet{l.Outputs[0]}
	}
	return out
}

func (l BusesLayout) clone() BusesLayout {
	return BusesLayout{
		Inputs:  append([]ChannelSet(nil), l.Inputs...),
		Outputs: append([]ChannelSet(nil), l.Outputs...),
	}
}

func totalChannels(sets []ChannelSet) int {
	n := 0
	for _, s := range sets {
		n += s.Size()
	}
	return n
}
