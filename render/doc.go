// Package render drives a plugin instance over a dry buffer in fixed-size
// blocks and collects the wet output.
//
// A run is described by a [Case] read from JSON:
//
//	{
//	  "warmupMs": 50,
//	  "renderSeconds": 1.0,
//	  "params": {"gain": 0.75}
//	}
//
// warmupMs of silence is fed first and discarded so the plugin can settle.
// renderSeconds fixes the output length; without it the output matches the
// dry input. params maps parameter names to normalized values in [0, 1].
//
// # Usage
//
//	c, err := render.LoadCase("case.json")
//	if err != nil {
//		return err
//	}
//	r := render.NewRenderer(render.WithLogger(logger))
//	wet, err := r.Run(inst, dry, c, core.ApplyProcessorOptions(
//		core.WithSampleRate(48000), core.WithBlockSize(512), core.WithChannels(2)))
package render
