package audiofile

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-harness/dsp/buffer"
)

// Bit depths written by the harness.
const (
	BitDepth16 = 16
	BitDepth24 = 24
)

// ErrUnsupportedBitDepth is returned for PCM depths other than 8, 16, 24 or 32.
var ErrUnsupportedBitDepth = errors.New("audiofile: unsupported bit depth")

// Audio is a decoded file: planar samples plus their rate.
type Audio struct {
	Buffer     *buffer.Buffer
	SampleRate float64
}

// Decoder reads an audio file.
type Decoder interface {
	Decode(path string) (Audio, error)
}

// Encoder writes an audio file at the given PCM bit depth.
type Encoder interface {
	Encode(path string, a Audio, bitDepth int) error
}

func validBitDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}

// fullScale returns 2^(bits-1).
func fullScale(bits int) float64 {
	return float64(int64(1) << (bits - 1))
}

// toFloat maps a signed PCM integer to [-1, 1).
func toFloat(v int, bits int) float64 {
	return float64(v) / fullScale(bits)
}

// toInt maps x to a signed PCM integer, clamping to the representable range.
// NaN encodes as 0.
func toInt(x float64, bits int) int {
	if math.IsNaN(x) {
		return 0
	}
	scale := fullScale(bits)
	v := math.Round(x * scale)
	if v < -scale {
		v = -scale
	}
	if v > scale-1 {
		v = scale - 1
	}
	return int(v)
}
