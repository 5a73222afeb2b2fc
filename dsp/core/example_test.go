package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-harness/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(512),
		core.WithChannels(1),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)

	// Output:
	// sampleRate=44100 blockSize=512 channels=1
}

func ExampleGainToDB() {
	fmt.Printf("%.2f %.1f\n", core.GainToDB(0.5, core.SilenceFloorDB), core.GainToDB(0, core.SilenceFloorDB))

	// Output:
	// -6.02 -160.0
}
