// Package buffer provides the rectangular multichannel sample container
// shared by the render and analysis pipelines, together with the channel
// transforms both need: remapping, mono downmix, finiteness scan and
// per-sample difference.
//
// New allocates its channel slices, while FromChannels and Channel share
// memory with the caller. The transforms (RemapChannels, MonoDownmix and
// Subtract) always allocate their results and never alias a source buffer.
package buffer
