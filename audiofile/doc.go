// Package audiofile reads and writes the PCM WAV files exchanged by the
// harness commands. Samples are held as float64 in [-1, 1) and scaled by
// 2^(bits-1) in both directions, so decoding a file and encoding it again
// at the same bit depth reproduces the original integers.
package audiofile
