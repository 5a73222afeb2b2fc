package core

import "math"

// SilenceFloorDB is the level reported for silence, empty buffers and any
// non-positive linear value.
const SilenceFloorDB = -160.0

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// GainToDB converts linear amplitude to dB, returning floorDB when the gain
// is not strictly positive (this includes NaN). Results below the floor are
// clamped to it.
func GainToDB(gain, floorDB float64) float64 {
	if !(gain > 0) {
		return floorDB
	}

	return math.Max(floorDB, LinearToDB(gain))
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// RoundToInt rounds half away from zero and converts to int.
func RoundToInt(x float64) int {
	return int(math.Round(x))
}
