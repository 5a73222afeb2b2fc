// Package level computes the level and similarity metrics reported by the
// harness: peak and RMS in dBFS over a whole multichannel buffer, and the
// normalized zero-lag correlation of two buffers' mono downmixes.
//
// # Usage
//
//	m := level.Measure(wet)
//	fmt.Printf("peak %.2f dBFS, rms %.2f dBFS\n", m.PeakDBFS, m.RMSDBFS)
//
//	r := level.Correlation(dry, wet) // 1 for identical, -1 for inverted
//
// Levels below the silence floor, including exact silence, are reported as
// [core.SilenceFloorDB].
package level
