// Package latency estimates the integer-sample lag between a dry and a wet
// recording and realigns buffers by that lag.
//
// The lag is the one maximising the absolute normalized cross-correlation
// over the overlapping region of both sequences. A wet signal that is the
// dry signal delayed by d samples yields lag +d, and
// ShiftAndResize(wet, ch, n, -d) moves it back into alignment.
//
// Two search strategies share the same scoring and tie-break (the first,
// most negative lag wins among equal scores):
//
//   - [DetectLag]: direct O(maxLag*N) evaluation, the default for the small
//     bounded windows the harness uses.
//   - [DetectLagFFT]: one FFT cross-correlation plus prefix-sum energies,
//     for windows large enough that the direct scan dominates run time.
//     Scores can differ from the direct scan in the last bits, so exact
//     ties may resolve differently.
package latency
