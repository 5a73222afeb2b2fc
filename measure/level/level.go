package level

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-harness/dsp/buffer"
	"github.com/cwbudde/algo-harness/dsp/core"
)

// Metrics holds whole-buffer levels in dBFS.
type Metrics struct {
	PeakDBFS float64
	RMSDBFS  float64
}

// Silence returns the metrics of an empty buffer.
func Silence() Metrics {
	return Metrics{PeakDBFS: core.SilenceFloorDB, RMSDBFS: core.SilenceFloorDB}
}

// Measure returns peak and RMS levels across all channels and samples.
// RMS divides the summed squares by channels*samples.
func Measure(b *buffer.Buffer) Metrics {
	channels, samples := b.NumChannels(), b.NumSamples()
	if channels <= 0 || samples <= 0 {
		return Silence()
	}

	var peak, sumSq float64
	for _, ch := range b.Channels() {
		peak = math.Max(peak, vecmath.MaxAbs(ch))
		sumSq += vecmath.DotProduct(ch, ch)
	}

	rms := math.Sqrt(sumSq / (float64(channels) * float64(samples)))

	return Metrics{
		PeakDBFS: core.GainToDB(peak, core.SilenceFloorDB),
		RMSDBFS:  core.GainToDB(rms, core.SilenceFloorDB),
	}
}

// Correlation returns the normalized zero-lag correlation of the mono
// downmixes of a and b, in [-1, 1]. It is 0 when the downmixes differ in
// length, are empty, or either carries no energy.
func Correlation(a, b *buffer.Buffer) float64 {
	return NormalizedDot(buffer.MonoDownmix(a), buffer.MonoDownmix(b))
}

// NormalizedDot returns dot(x, y) / sqrt(energy(x) * energy(y)), or 0 when
// the sequences differ in length, are empty, or either has zero energy.
func NormalizedDot(x, y []float64) float64 {
	if len(x) != len(y) || len(x) == 0 {
		return 0
	}

	ex := vecmath.DotProduct(x, x)
	ey := vecmath.DotProduct(y, y)
	if ex <= 0 || ey <= 0 {
		return 0
	}

	return vecmath.DotProduct(x, y) / math.Sqrt(ex*ey)
}
