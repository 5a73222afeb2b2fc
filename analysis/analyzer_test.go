package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-harness/audiofile"
	"github.com/cwbudde/algo-harness/dsp/buffer"
	"github.com/cwbudde/algo-harness/dsp/core"
	"github.com/cwbudde/algo-harness/internal/errkind"
	"github.com/cwbudde/algo-harness/internal/testutil"
	"github.com/cwbudde/algo-harness/measure/latency"
)

func audio(b *buffer.Buffer) audiofile.Audio {
	return audiofile.Audio{Buffer: b, SampleRate: 48000}
}

func TestAnalyzeIdentity(t *testing.T) {
	dry := testutil.Multichannel(2, testutil.DeterministicSine(1000, 48000, 0.5, 48000))

	res, err := NewAnalyzer(WithNullTest(true)).Analyze(audio(dry), audio(dry.Copy()))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	r := res.Report
	if r.Channels != 2 || r.NumSamples != 48000 || r.DetectedLatencySamples != 0 || r.SampleRate != 48000 {
		t.Fatalf("report = %+v", r)
	}
	if math.Abs(float64(r.Correlation)-1) > 1e-12 {
		t.Fatalf("correlation = %v, want 1", r.Correlation)
	}
	if math.Abs(float64(r.WetPeakDBFS)-core.LinearToDB(0.5)) > 1e-3 {
		t.Fatalf("wet peak = %v", r.WetPeakDBFS)
	}
	if r.Failed() {
		t.Fatal("identity must not fail")
	}
	if !r.NullTested() || *r.DeltaPeakDBFS != core.SilenceFloorDB || *r.DeltaRMSDBFS != core.SilenceFloorDB {
		t.Fatalf("delta levels = %v / %v, want silence", r.DeltaPeakDBFS, r.DeltaRMSDBFS)
	}
	if res.Delta == nil || res.Delta.NumSamples() != 48000 {
		t.Fatal("missing delta buffer")
	}
}

func TestAnalyzeWithoutNullTest(t *testing.T) {
	dry := testutil.Multichannel(1, testutil.DeterministicNoise(1, 0.5, 256))

	res, err := NewAnalyzer().Analyze(audio(dry), audio(dry))
	if err != nil {
		t.Fatal(err)
	}
	if res.Delta != nil || res.Report.NullTested() || res.Report.HasNaNOrInfDelta {
		t.Fatalf("unexpected null-test output: %+v", res.Report)
	}
}

func TestAnalyzeAutoAlign(t *testing.T) {
	const n, d = 4800, 100
	x := testutil.DeterministicNoise(7, 0.5, n)
	dry := testutil.Multichannel(2, x)
	wet := testutil.Multichannel(2, testutil.Delayed(x, d))

	for _, m := range []latency.Method{latency.MethodDirect, latency.MethodFFT} {
		res, err := NewAnalyzer(WithAutoAlign(true), WithNullTest(true), WithMaxLag(512), WithLagMethod(m)).
			Analyze(audio(dry), audio(wet))
		if err != nil {
			t.Fatalf("%v: Analyze() error = %v", m, err)
		}

		r := res.Report
		if r.DetectedLatencySamples != d {
			t.Fatalf("%v: latency = %d, want %d", m, r.DetectedLatencySamples, d)
		}
		if r.NumSamples != n+d {
			t.Fatalf("%v: numSamples = %d, want %d", m, r.NumSamples, n+d)
		}
		if r.Correlation < 0.95 {
			t.Fatalf("%v: correlation = %v after alignment", m, r.Correlation)
		}

		// The aligned wet cancels the dry everywhere both exist.
		testutil.RequireSliceNearlyEqual(t, res.Delta.Channel(0)[:n-d], make([]float64, n-d), 0)
	}
}

func TestAnalyzeUnalignedDelay(t *testing.T) {
	x := testutil.DeterministicNoise(7, 0.5, 4800)
	res, err := NewAnalyzer().Analyze(audio(testutil.Multichannel(1, x)),
		audio(testutil.Multichannel(1, testutil.Delayed(x, 50))))
	if err != nil {
		t.Fatal(err)
	}
	if res.Report.DetectedLatencySamples != 0 {
		t.Fatalf("latency = %d without auto-align", res.Report.DetectedLatencySamples)
	}
	if math.Abs(float64(res.Report.Correlation)) > 0.1 {
		t.Fatalf("correlation = %v, want near 0 for misaligned noise", res.Report.Correlation)
	}
}

func TestAnalyzeUsesCommonChannels(t *testing.T) {
	x := testutil.DeterministicSine(500, 48000, 0.25, 1000)
	dry := testutil.Multichannel(2, x)
	wet := testutil.Multichannel(1, x)
	for i := range wet.Channel(0) {
		wet.Channel(0)[i] = -wet.Channel(0)[i]
	}

	res, err := NewAnalyzer().Analyze(audio(dry), audio(wet))
	if err != nil {
		t.Fatal(err)
	}
	if res.Report.Channels != 1 {
		t.Fatalf("channels = %d, want 1", res.Report.Channels)
	}
	if math.Abs(float64(res.Report.Correlation)+1) > 1e-12 {
		t.Fatalf("correlation = %v, want -1", res.Report.Correlation)
	}
}

func TestAnalyzeFlagsNonFinite(t *testing.T) {
	dry := testutil.Multichannel(2, testutil.DeterministicSine(1000, 48000, 0.5, 128))
	wet := dry.Copy()
	wet.Channel(1)[10] = math.NaN()

	res, err := NewAnalyzer(WithNullTest(true)).Analyze(audio(dry), audio(wet))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !res.Report.HasNaNOrInfWet || !res.Report.HasNaNOrInfDelta || !res.Report.Failed() {
		t.Fatalf("flags = %v/%v, want both set", res.Report.HasNaNOrInfWet, res.Report.HasNaNOrInfDelta)
	}
}

func TestAnalyzeRejects(t *testing.T) {
	mono := testutil.Multichannel(1, []float64{1, 2})

	_, err := NewAnalyzer().Analyze(audio(mono), audiofile.Audio{Buffer: mono, SampleRate: 44100})
	if !errors.Is(err, errkind.Validation) {
		t.Fatalf("rate mismatch: err = %v", err)
	}

	_, err = NewAnalyzer().Analyze(audio(mono), audio(buffer.New(0, 2)))
	if !errors.Is(err, errkind.Validation) {
		t.Fatalf("no channels: err = %v", err)
	}
}
