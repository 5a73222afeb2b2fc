package analysis

import (
	"log/slog"
	"math"

	"github.com/cwbudde/algo-harness/audiofile"
	"github.com/cwbudde/algo-harness/dsp/buffer"
	"github.com/cwbudde/algo-harness/internal/errkind"
	"github.com/cwbudde/algo-harness/measure/latency"
	"github.com/cwbudde/algo-harness/measure/level"
)

// SampleRateTolerance is the largest accepted dry/wet sample-rate difference.
const SampleRateTolerance = 1e-6

// Analyzer compares dry and wet recordings.
type Analyzer struct {
	autoAlign bool
	nullTest  bool
	maxLag    int
	method    latency.Method
	logger    *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithAutoAlign enables latency detection and compensation.
func WithAutoAlign(enabled bool) Option {
	return func(a *Analyzer) {
		a.autoAlign = enabled
	}
}

// WithNullTest enables the wet minus dry difference signal.
func WithNullTest(enabled bool) Option {
	return func(a *Analyzer) {
		a.nullTest = enabled
	}
}

// WithMaxLag sets the latency search window in samples. Negative values
// are ignored.
func WithMaxLag(samples int) Option {
	return func(a *Analyzer) {
		if samples >= 0 {
			a.maxLag = samples
		}
	}
}

// WithLagMethod selects the latency search strategy.
func WithLagMethod(m latency.Method) Option {
	return func(a *Analyzer) {
		a.method = m
	}
}

// WithLogger sets the logger for analysis events. nil keeps the discard
// logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer returns an Analyzer. Alignment and the null test are off by
// default; the search window is latency.DefaultMaxLag.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		maxLag: latency.DefaultMaxLag,
		method: latency.MethodDirect,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Result is the outcome of one analysis. Delta is nil unless the null test
// ran.
type Result struct {
	Report Report
	Delta  *buffer.Buffer
}

// Analyze aligns wet to dry and measures it. Non-finite samples do not make
// Analyze fail; they are flagged in the report.
func (a *Analyzer) Analyze(dry, wet audiofile.Audio) (Result, error) {
	if math.Abs(dry.SampleRate-wet.SampleRate) > SampleRateTolerance {
		return Result{}, errkind.New(errkind.Validation,
			"sample rate mismatch between dry and wet files: %g vs %g", dry.SampleRate, wet.SampleRate)
	}

	channels := min(dry.Buffer.NumChannels(), wet.Buffer.NumChannels())
	if channels <= 0 {
		return Result{}, errkind.New(errkind.Validation, "dry/wet audio must each contain at least one channel")
	}

	lag := 0
	if a.autoAlign {
		dryMono := buffer.MonoDownmix(buffer.RemapChannels(dry.Buffer, channels))
		wetMono := buffer.MonoDownmix(buffer.RemapChannels(wet.Buffer, channels))

		var err error
		lag, err = latency.Detect(a.method, dryMono, wetMono, a.maxLag)
		if err != nil {
			return Result{}, errkind.Wrap(errkind.Validation, err, "latency detection failed")
		}
		a.logger.Debug("detected latency", "samples", lag, "method", a.method.String(), "maxLag", a.maxLag)
	}

	target := max(dry.Buffer.NumSamples(), wet.Buffer.NumSamples()) + abs(lag)
	dryAligned := latency.ShiftAndResize(dry.Buffer, channels, target, 0)
	wetAligned := latency.ShiftAndResize(wet.Buffer, channels, target, -lag)

	wetLevels := level.Measure(wetAligned)
	res := Result{
		Report: Report{
			SampleRate:             dry.SampleRate,
			Channels:               channels,
			NumSamples:             target,
			DetectedLatencySamples: lag,
			WetPeakDBFS:            Float(wetLevels.PeakDBFS),
			WetRMSDBFS:             Float(wetLevels.RMSDBFS),
			Correlation:            Float(level.Correlation(dryAligned, wetAligned)),
			HasNaNOrInfWet:         !buffer.IsFinite(wetAligned),
		},
	}

	if a.nullTest {
		delta, err := buffer.Subtract(wetAligned, dryAligned)
		if err != nil {
			return Result{}, errkind.Wrap(errkind.Validation, err, "null test")
		}
		deltaLevels := level.Measure(delta)
		peak, rms := Float(deltaLevels.PeakDBFS), Float(deltaLevels.RMSDBFS)

		res.Delta = delta
		res.Report.DeltaPeakDBFS = &peak
		res.Report.DeltaRMSDBFS = &rms
		res.Report.HasNaNOrInfDelta = !buffer.IsFinite(delta)
	}

	a.logger.Debug("analysis complete", "channels", channels, "samples", target,
		"correlation", float64(res.Report.Correlation), "failed", res.Report.Failed())

	return res, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
