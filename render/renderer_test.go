package render

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-harness/dsp/buffer"
	"github.com/cwbudde/algo-harness/dsp/core"
	"github.com/cwbudde/algo-harness/internal/errkind"
	"github.com/cwbudde/algo-harness/internal/testutil"
	"github.com/cwbudde/algo-harness/plugin"
	"github.com/cwbudde/algo-harness/plugin/builtin"
)

// recorder logs block shapes and lifecycle calls.
type recorder struct {
	*plugin.Base
	blocks   []int
	channels []int
	resets   int
	released int
	emitNaN  bool
}

func newRecorder(layout plugin.BusesLayout) *recorder {
	return &recorder{Base: plugin.NewBase("recorder", layout,
		plugin.WithParameters(plugin.NewParam("Mix", 0, 1, 1)))}
}

func (r *recorder) Reset()   { r.resets++ }
func (r *recorder) Release() { r.released++ }

func (r *recorder) ProcessBlock(block [][]float64) {
	r.blocks = append(r.blocks, len(block[0]))
	r.channels = append(r.channels, len(block))
	if r.emitNaN {
		block[0][0] = math.NaN()
	}
}

func config(sampleRate float64, blockSize, channels int) core.ProcessorConfig {
	return core.ApplyProcessorOptions(core.WithSampleRate(sampleRate),
		core.WithBlockSize(blockSize), core.WithChannels(channels))
}

func seconds(s float64) *float64 { return &s }

func newInstance(t *testing.T, name string) plugin.Instance {
	t.Helper()
	inst, err := builtin.DefaultRegistry().Lookup(name)(48000, 512)
	if err != nil {
		t.Fatal(err)
	}
	return inst
}

func TestRunPassthroughIsIdentity(t *testing.T) {
	dry := testutil.Multichannel(2, testutil.DeterministicSine(1000, 48000, 0.5, 48000))

	wet, err := NewRenderer().Run(newInstance(t, "passthrough"), dry,
		Case{WarmupMs: 50, RenderSeconds: seconds(1.0)}, config(48000, 512, 2))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if wet.NumChannels() != 2 || wet.NumSamples() != 48000 {
		t.Fatalf("shape = %dx%d, want 2x48000", wet.NumChannels(), wet.NumSamples())
	}
	testutil.RequireBufferNearlyEqual(t, wet, dry, 0)
}

func TestRunBlockPartitioning(t *testing.T) {
	rec := newRecorder(plugin.SymmetricLayout(plugin.Stereo()))
	dry := testutil.Multichannel(2, testutil.DeterministicNoise(1, 0.5, 40))

	// 50 ms at 1 kHz is 50 warmup samples.
	_, err := NewRenderer().Run(rec, dry, Case{WarmupMs: 50}, config(1000, 16, 2))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []int{16, 16, 16, 2, 16, 16, 8}
	if len(rec.blocks) != len(want) {
		t.Fatalf("blocks = %v, want %v", rec.blocks, want)
	}
	for i := range want {
		if rec.blocks[i] != want[i] {
			t.Fatalf("blocks = %v, want %v", rec.blocks, want)
		}
	}
	if rec.resets != 1 || rec.released != 1 {
		t.Fatalf("resets=%d released=%d, want 1/1", rec.resets, rec.released)
	}
}

func TestRunPadsPastDryInput(t *testing.T) {
	dry := testutil.Multichannel(1, []float64{1, 2, 3})

	wet, err := NewRenderer().Run(newInstance(t, "passthrough"), dry,
		Case{RenderSeconds: seconds(0.005)}, config(1000, 2, 1))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, wet.Channel(0), []float64{1, 2, 3, 0, 0}, 0)
}

func TestRunCropsDryInput(t *testing.T) {
	dry := testutil.Multichannel(2, []float64{1, 2, 3, 4, 5, 6})

	wet, err := NewRenderer().Run(newInstance(t, "passthrough"), dry,
		Case{RenderSeconds: seconds(0.004)}, config(1000, 4, 2))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, wet.Channel(1), []float64{1, 2, 3, 4}, 0)
}

func TestRunLayoutFallbackWidensScratch(t *testing.T) {
	// passthrough rejects mono, so it keeps two channels while the
	// harness renders one.
	dry := testutil.Multichannel(1, testutil.DeterministicNoise(2, 0.5, 100))
	inst := newInstance(t, "passthrough")

	wet, err := NewRenderer().Run(inst, dry, Case{}, config(48000, 32, 1))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if inst.TotalOutputChannels() != 2 {
		t.Fatalf("outputs = %d, want 2", inst.TotalOutputChannels())
	}
	if wet.NumChannels() != 1 {
		t.Fatalf("wet channels = %d, want 1", wet.NumChannels())
	}
	testutil.RequireBufferNearlyEqual(t, wet, dry, 0)
}

func TestRunWorkingChannelsCoverPlugin(t *testing.T) {
	declared := plugin.BusesLayout{
		Inputs:  []plugin.ChannelSet{plugin.Stereo(), plugin.Stereo()},
		Outputs: []plugin.ChannelSet{plugin.Stereo()},
	}
	rec := newRecorder(declared)
	dry := testutil.Multichannel(1, []float64{1, 1, 1, 1})

	if _, err := NewRenderer().Run(rec, dry, Case{}, config(1000, 4, 1)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, n := range rec.channels {
		if n != 2 {
			t.Fatalf("block channels = %v, want 2 each", rec.channels)
		}
	}
}

func TestRunGain(t *testing.T) {
	dry := testutil.Multichannel(2, testutil.DeterministicSine(440, 48000, 0.5, 1024))

	wet, err := NewRenderer().Run(newInstance(t, "gain"), dry,
		Case{WarmupMs: 10, Params: map[string]float64{"gain": 0.75}}, config(48000, 256, 2))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	scale := math.Pow(10, -6.0/20)
	for i, v := range wet.Channel(1) {
		if want := dry.Channel(1)[i] * scale; math.Abs(v-want) > 1e-12 {
			t.Fatalf("wet[1][%d] = %v, want %v", i, v, want)
		}
	}
}

func TestRunDelayIsDeterministic(t *testing.T) {
	dry := testutil.Multichannel(2, testutil.DeterministicNoise(3, 0.5, 4800))
	c := Case{WarmupMs: 20, Params: map[string]float64{"delay": 0.02}}

	render := func() *buffer.Buffer {
		wet, err := NewRenderer().Run(newInstance(t, "delay"), dry, c, config(48000, 300, 2))
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return wet
	}

	a := render()
	b := render()
	testutil.RequireBufferNearlyEqual(t, a, b, 0)

	// 2 ms at 48 kHz.
	const d = 96
	testutil.RequireSliceNearlyEqual(t, a.Channel(0)[d:], dry.Channel(0)[:4800-d], 0)
	testutil.RequireSliceNearlyEqual(t, a.Channel(0)[:d], make([]float64, d), 0)
}

func TestRunMissingParameterReleases(t *testing.T) {
	rec := newRecorder(plugin.SymmetricLayout(plugin.Stereo()))
	dry := testutil.Multichannel(2, []float64{1, 2})

	_, err := NewRenderer().Run(rec, dry, Case{Params: map[string]float64{"nonexistent": 0.5}}, config(48000, 64, 2))
	if !errors.Is(err, plugin.ErrParameterNotFound) || !errors.Is(err, errkind.Plugin) {
		t.Fatalf("err = %v, want parameter-not-found plugin error", err)
	}
	if rec.released != 1 {
		t.Fatalf("released = %d, want 1", rec.released)
	}
}

func TestRunValidation(t *testing.T) {
	dry := testutil.Multichannel(2, []float64{1, 2})

	tests := []struct {
		name string
		dry  *buffer.Buffer
		c    Case
		cfg  core.ProcessorConfig
	}{
		{"zero block", dry, Case{}, core.ProcessorConfig{SampleRate: 48000, BlockSize: 0, Channels: 2}},
		{"zero channels", dry, Case{}, core.ProcessorConfig{SampleRate: 48000, BlockSize: 64, Channels: 0}},
		{"zero rate", dry, Case{}, core.ProcessorConfig{SampleRate: 0, BlockSize: 64, Channels: 2}},
		{"empty dry", buffer.New(2, 0), Case{}, config(48000, 64, 2)},
		{"rounds to zero", dry, Case{RenderSeconds: seconds(1e-6)}, config(48000, 64, 2)},
		{"too long", dry, Case{RenderSeconds: seconds(1e13)}, config(48000, 64, 2)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRenderer().Run(newRecorder(plugin.SymmetricLayout(plugin.Stereo())), tc.dry, tc.c, tc.cfg)
			if !errors.Is(err, errkind.Validation) {
				t.Fatalf("err = %v, want validation error", err)
			}
		})
	}
}

func TestRunRejectsOversizedRenderLength(t *testing.T) {
	c, err := ParseCase([]byte(`{"renderSeconds": 1e13}`))
	if err != nil {
		t.Fatalf("ParseCase() error = %v", err)
	}

	rec := newRecorder(plugin.SymmetricLayout(plugin.Stereo()))
	_, err = NewRenderer().Run(rec, testutil.Multichannel(2, []float64{1, 2}), c, config(48000, 512, 2))
	if !errors.Is(err, errkind.Validation) || !strings.Contains(err.Error(), "renderSeconds") {
		t.Fatalf("err = %v, want validation error naming renderSeconds", err)
	}
	if rec.released != 1 || len(rec.blocks) != 0 {
		t.Fatalf("released = %d, blocks = %d, want 1 and 0", rec.released, len(rec.blocks))
	}
}

func TestRunKeepsNonFiniteOutput(t *testing.T) {
	rec := newRecorder(plugin.SymmetricLayout(plugin.Stereo()))
	rec.emitNaN = true
	dry := testutil.Multichannel(2, []float64{0.1, 0.2, 0.3})

	wet, err := NewRenderer().Run(rec, dry, Case{}, config(48000, 64, 2))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if buffer.IsFinite(wet) {
		t.Fatal("NaN from the plugin must reach the wet buffer")
	}
}
