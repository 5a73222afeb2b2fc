package latency

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-harness/dsp/buffer"
	"github.com/cwbudde/algo-harness/dsp/core"
)

// DefaultMaxLag is the search window used by the analysis pipeline.
const DefaultMaxLag = 4096

// ErrUnknownMethod is returned by ParseMethod for unrecognised names.
var ErrUnknownMethod = errors.New("latency: unknown lag search method")

// Method selects the lag search strategy.
type Method int

const (
	// MethodDirect evaluates every lag in the time domain.
	MethodDirect Method = iota
	// MethodFFT derives all lag dot products from one FFT correlation.
	MethodFFT
)

func (m Method) String() string {
	switch m {
	case MethodDirect:
		return "direct"
	case MethodFFT:
		return "fft"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "direct" or "fft" (case-insensitive) to a Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "direct":
		return MethodDirect, nil
	case "fft":
		return MethodFFT, nil
	default:
		return MethodDirect, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Detect runs the selected search strategy.
func Detect(m Method, dry, wet []float64, maxLag int) (int, error) {
	switch m {
	case MethodDirect:
		return DetectLag(dry, wet, maxLag), nil
	case MethodFFT:
		return DetectLagFFT(dry, wet, maxLag)
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnknownMethod, m)
	}
}

// overlap returns the start offsets and length of the region compared at
// lag. Negative lags advance the dry start, positive lags the wet start.
func overlap(lag, drySize, wetSize int) (dryStart, wetStart, n int) {
	if lag < 0 {
		dryStart = -lag
	} else {
		wetStart = lag
	}
	n = min(drySize-dryStart, wetSize-wetStart)
	return dryStart, wetStart, n
}

// score returns |dot| / sqrt(dryEnergy*wetEnergy) and false when either
// energy is zero.
func score(dot, dryEnergy, wetEnergy float64) (float64, bool) {
	if dryEnergy <= 0 || wetEnergy <= 0 {
		return 0, false
	}
	return math.Abs(dot / math.Sqrt(dryEnergy*wetEnergy)), true
}

// DetectLag searches lags in [-maxLag, maxLag] in ascending order and
// returns the one with the strictly greatest normalized correlation score.
// Lags whose overlap is empty or silent on either side are skipped; 0 is
// returned when no lag qualifies.
func DetectLag(dry, wet []float64, maxLag int) int {
	maxLag = max(maxLag, 0)

	bestLag := 0
	bestScore := -1.0
	for lag := -maxLag; lag <= maxLag; lag++ {
		ds, ws, n := overlap(lag, len(dry), len(wet))
		if n <= 0 {
			continue
		}

		d := dry[ds : ds+n]
		w := wet[ws : ws+n]
		s, ok := score(vecmath.DotProduct(d, w), vecmath.DotProduct(d, d), vecmath.DotProduct(w, w))
		if !ok {
			continue
		}

		if s > bestScore {
			bestScore = s
			bestLag = lag
		}
	}

	return bestLag
}

// ShiftAndResize returns a zeroed channels x targetLength buffer where
// out[c][i] = src[sc][i-shift] whenever i-shift lies inside the source, with
// sc = min(c, sourceChannels-1). Negative shifts move content earlier.
func ShiftAndResize(src *buffer.Buffer, channels, targetLength, shift int) *buffer.Buffer {
	out := buffer.New(channels, targetLength)

	dstPos := max(0, shift)
	srcPos := dstPos - shift
	for c := 0; c < out.NumChannels(); c++ {
		sc := buffer.SourceChannel(c, src.NumChannels())
		if sc < 0 {
			break
		}
		core.CopyRange(out.Channel(c), dstPos, src.Channel(sc), srcPos, targetLength-dstPos)
	}

	return out
}
