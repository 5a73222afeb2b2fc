package cli

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-harness/analysis"
	"github.com/cwbudde/algo-harness/audiofile"
	"github.com/cwbudde/algo-harness/dsp/buffer"
	"github.com/cwbudde/algo-harness/dsp/core"
	"github.com/cwbudde/algo-harness/dsp/signal"
	"github.com/cwbudde/algo-harness/internal/errkind"
	"github.com/cwbudde/algo-harness/measure/latency"
	"github.com/cwbudde/algo-harness/render"
)

const (
	dumpSampleRate = 48000
	dumpBlockSize  = 256
)

var codec audiofile.WAV

var errNonFinite = errkind.New(errkind.DataIntegrity, "NaN/Inf detected in output buffers")

func (a *app) dumpParams(args []string) error {
	fs := newFlagSet("dump-params")
	pluginPath := fs.String("plugin", "", "plugin path")
	if err := parseFlags(fs, args, "plugin"); err != nil {
		return err
	}

	inst, err := a.formatManager().Load(resolvePlugin(*pluginPath), dumpSampleRate, dumpBlockSize)
	if err != nil {
		return err
	}
	defer inst.Close()

	for i, p := range inst.Parameters() {
		fmt.Fprintf(a.stdout, "%d\t%s\t%.6g\n", i, p.Name(), p.DefaultValue())
	}
	return nil
}

func (a *app) render(args []string) error {
	fs := newFlagSet("render")
	pluginPath := fs.String("plugin", "", "plugin path")
	inPath := fs.String("in", "", "dry input WAV")
	outDir := fs.String("outdir", "", "output directory")
	casePath := fs.String("case", "", "render case JSON")
	sampleRate := fs.Int("sr", 0, "sample rate in Hz")
	blockSize := fs.Int("bs", 0, "block size in samples")
	channels := fs.Int("ch", 0, "channel count")
	if err := parseFlags(fs, args, "plugin", "in", "outdir", "case", "sr", "bs", "ch"); err != nil {
		return err
	}

	if *sampleRate <= 0 || *blockSize <= 0 || *channels <= 0 {
		return errkind.New(errkind.Validation, "sr, bs, and ch must be positive")
	}
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(float64(*sampleRate)),
		core.WithBlockSize(*blockSize),
		core.WithChannels(*channels),
	)

	c, err := render.LoadCase(resolvePath(*casePath))
	if err != nil {
		return err
	}

	dry, err := codec.Decode(resolvePath(*inPath))
	if err != nil {
		return err
	}
	if math.Abs(dry.SampleRate-cfg.SampleRate) > analysis.SampleRateTolerance {
		return errkind.New(errkind.Validation, "input WAV sample rate (%g) does not match --sr (%d)",
			dry.SampleRate, *sampleRate)
	}

	inst, err := a.formatManager().Load(resolvePlugin(*pluginPath), cfg.SampleRate, cfg.BlockSize)
	if err != nil {
		return err
	}
	defer inst.Close()

	r := render.NewRenderer(render.WithLogger(a.logger))
	wet, err := r.Run(inst, buffer.RemapChannels(dry.Buffer, cfg.Channels), c, cfg)
	if err != nil {
		return err
	}

	dir, err := ensureDir(*outDir)
	if err != nil {
		return err
	}
	wetPath := filepath.Join(dir, "wet.wav")
	if err := codec.Encode(wetPath, audiofile.Audio{Buffer: wet, SampleRate: cfg.SampleRate}, audiofile.BitDepth24); err != nil {
		return err
	}

	if !buffer.IsFinite(wet) {
		return errNonFinite
	}

	fmt.Fprintf(a.stdout, "Wrote: %s\n", wetPath)
	return nil
}

func (a *app) analyze(args []string) error {
	fs := newFlagSet("analyze")
	dryPath := fs.String("dry", "", "dry WAV")
	wetPath := fs.String("wet", "", "wet WAV")
	outDir := fs.String("outdir", "", "output directory")
	autoAlign := fs.Bool("auto-align", false, "detect and compensate latency")
	nullTest := fs.Bool("null", false, "write the wet minus dry delta")
	maxLag := fs.Int("max-lag", latency.DefaultMaxLag, "latency search window in samples")
	lagMethod := fs.String("lag-method", "direct", "latency search: direct or fft")
	if err := parseFlags(fs, args, "dry", "wet", "outdir"); err != nil {
		return err
	}

	if *maxLag < 0 {
		return errkind.New(errkind.Usage, "--max-lag must be non-negative: %d", *maxLag)
	}
	method, err := latency.ParseMethod(*lagMethod)
	if err != nil {
		return errkind.Classify(errkind.Usage, err)
	}

	dry, err := codec.Decode(resolvePath(*dryPath))
	if err != nil {
		return err
	}
	wet, err := codec.Decode(resolvePath(*wetPath))
	if err != nil {
		return err
	}

	an := analysis.NewAnalyzer(
		analysis.WithAutoAlign(*autoAlign),
		analysis.WithNullTest(*nullTest),
		analysis.WithMaxLag(*maxLag),
		analysis.WithLagMethod(method),
		analysis.WithLogger(a.logger),
	)
	res, err := an.Analyze(dry, wet)
	if err != nil {
		return err
	}

	dir, err := ensureDir(*outDir)
	if err != nil {
		return err
	}

	if res.Delta != nil {
		deltaPath := filepath.Join(dir, "delta.wav")
		if err := codec.Encode(deltaPath, audiofile.Audio{Buffer: res.Delta, SampleRate: dry.SampleRate}, audiofile.BitDepth24); err != nil {
			return err
		}
	}

	data, err := res.Report.MarshalIndent()
	if err != nil {
		return errkind.Wrap(errkind.Resource, err, "failed to encode metrics")
	}
	metricsPath := filepath.Join(dir, "metrics.json")
	if err := os.WriteFile(metricsPath, data, 0o644); err != nil {
		return errkind.Wrap(errkind.Resource, err, "failed to write metrics JSON: %s", metricsPath)
	}

	if res.Report.Failed() {
		return errNonFinite
	}

	fmt.Fprintf(a.stdout, "Wrote: %s\n", metricsPath)
	return nil
}

func (a *app) genSignals(args []string) error {
	fs := newFlagSet("gen-signals")
	outDir := fs.String("outdir", "", "output directory")
	sampleRate := fs.Int("sr", 48000, "sample rate in Hz")
	seconds := fs.Float64("seconds", 2, "duration in seconds")
	channels := fs.Int("channels", 2, "channel count")
	seed := fs.Int64("seed", 1, "noise seed")
	if err := parseFlags(fs, args, "outdir"); err != nil {
		return err
	}

	if *sampleRate <= 0 || *channels <= 0 {
		return errkind.New(errkind.Validation, "sr and channels must be positive")
	}
	g := signal.NewGeneratorWithOptions(
		[]core.ProcessorOption{core.WithSampleRate(float64(*sampleRate)), core.WithChannels(*channels)},
		signal.WithSeed(*seed),
	)
	cfg := g.Config()
	samples := g.Samples(*seconds)
	if samples <= 0 {
		return errkind.New(errkind.Validation, "seconds must be positive: %g", *seconds)
	}

	impulse, err := g.Impulse(0.9, samples, 0)
	if err != nil {
		return errkind.Classify(errkind.Validation, err)
	}
	sine, err := g.Sine(1000, 0.5, samples)
	if err != nil {
		return errkind.Classify(errkind.Validation, err)
	}
	noise, err := g.WhiteNoise(0.5, samples)
	if err != nil {
		return errkind.Classify(errkind.Validation, err)
	}
	a.logger.Debug("generating signals", "samples", samples, "channels", cfg.Channels, "seed", g.Seed())

	dir, err := ensureDir(*outDir)
	if err != nil {
		return err
	}

	for _, s := range []struct {
		name string
		mono []float64
	}{
		{"impulse.wav", impulse},
		{"sine1k.wav", sine},
		{"noise.wav", noise},
	} {
		b := buffer.New(cfg.Channels, samples)
		for c := 0; c < cfg.Channels; c++ {
			copy(b.Channel(c), s.mono)
		}

		path := filepath.Join(dir, s.name)
		if err := codec.Encode(path, audiofile.Audio{Buffer: b, SampleRate: cfg.SampleRate}, audiofile.BitDepth16); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Wrote: %s\n", path)
	}

	return nil
}

// resolvePath makes path absolute against the working directory.
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func resolvePlugin(path string) string {
	if isScheme(path) {
		return path
	}
	return resolvePath(path)
}

// ensureDir creates path when missing and returns its absolute form.
func ensureDir(path string) (string, error) {
	dir := resolvePath(path)

	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return "", errkind.New(errkind.Resource, "path exists but is not a directory: %s", dir)
	case err == nil:
		return dir, nil
	case !errors.Is(err, os.ErrNotExist):
		return "", errkind.Wrap(errkind.Resource, err, "failed to access directory: %s", dir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errkind.Wrap(errkind.Resource, err, "failed to create directory: %s", dir)
	}
	return dir, nil
}
