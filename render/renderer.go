package render

import (
	"log/slog"
	"math"

	"github.com/cwbudde/algo-harness/dsp/buffer"
	"github.com/cwbudde/algo-harness/dsp/core"
	"github.com/cwbudde/algo-harness/internal/errkind"
	"github.com/cwbudde/algo-harness/plugin"
)

// Renderer processes dry audio through a plugin instance.
type Renderer struct {
	logger *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for render events. nil keeps the discard
// logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer returns a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Run configures inst for cfg, applies c.Params and renders dry through it.
// The result has cfg.Channels channels; dry is expected to carry that many
// channels already. The instance is released before Run returns once it has
// been prepared.
func (r *Renderer) Run(inst plugin.Instance, dry *buffer.Buffer, c Case, cfg core.ProcessorConfig) (*buffer.Buffer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errkind.Wrap(errkind.Validation, err, "render")
	}

	err := plugin.ConfigureChannels(inst, cfg.Channels, cfg.SampleRate, cfg.BlockSize, plugin.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}
	if err := inst.Prepare(cfg.SampleRate, cfg.BlockSize); err != nil {
		return nil, errkind.Wrap(errkind.Plugin, err, "failed to prepare plugin %s", inst.Name())
	}
	defer inst.Release()

	if err := plugin.ApplyParameters(inst, c.Params); err != nil {
		return nil, err
	}

	length := dry.NumSamples()
	if c.RenderSeconds != nil {
		samples := math.Round(*c.RenderSeconds * cfg.SampleRate)
		if !(samples <= math.MaxInt32) {
			return nil, errkind.New(errkind.Validation,
				"renderSeconds %g at %g Hz exceeds %d samples", *c.RenderSeconds, cfg.SampleRate, math.MaxInt32)
		}
		length = int(samples)
	}
	if length <= 0 {
		return nil, errkind.New(errkind.Validation, "render length must be positive: %d samples", length)
	}

	inst.Reset()

	working := max(cfg.Channels, inst.TotalInputChannels(), inst.TotalOutputChannels(), 1)
	scratch := buffer.New(working, cfg.BlockSize)

	warmup := core.RoundToInt(cfg.SampleRate * float64(c.WarmupMs) / 1000)
	r.logger.Debug("rendering", "plugin", inst.Name(), "samples", length,
		"warmupSamples", warmup, "workingChannels", working, "case", c.String())

	for fed := 0; fed < warmup; {
		n := min(cfg.BlockSize, warmup-fed)
		block := blockOf(scratch, n)
		clearBlock(block)
		inst.ProcessBlock(block)
		fed += n
	}

	wet := buffer.New(cfg.Channels, length)
	inputs := min(cfg.Channels, working, dry.NumChannels())
	for pos := 0; pos < length; pos += cfg.BlockSize {
		n := min(cfg.BlockSize, length-pos)
		block := blockOf(scratch, n)
		clearBlock(block)

		for ch := 0; ch < inputs; ch++ {
			core.CopyRange(block[ch], 0, dry.Channel(ch), pos, n)
		}

		inst.ProcessBlock(block)

		for ch := 0; ch < min(cfg.Channels, working); ch++ {
			copy(wet.Channel(ch)[pos:pos+n], block[ch])
		}
	}

	return wet, nil
}

// blockOf returns the first n samples of every scratch channel.
func blockOf(scratch *buffer.Buffer, n int) [][]float64 {
	block := make([][]float64, scratch.NumChannels())
	for ch := range block {
		block[ch] = scratch.Channel(ch)[:n]
	}
	return block
}

func clearBlock(block [][]float64) {
	for _, ch := range block {
		core.Zero(ch)
	}
}
