package latency

import (
	"fmt"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// DetectLagFFT returns the same lag as DetectLag, computing every lag's dot
// product from a single zero-padded FFT cross-correlation and the overlap
// energies from prefix sums of squares.
func DetectLagFFT(dry, wet []float64, maxLag int) (int, error) {
	maxLag = max(maxLag, 0)
	if len(dry) == 0 || len(wet) == 0 {
		return 0, nil
	}

	corr, err := crossCorrelate(dry, wet)
	if err != nil {
		return 0, err
	}

	dryEnergy := prefixEnergy(dry)
	wetEnergy := prefixEnergy(wet)
	size := len(corr)

	bestLag := 0
	bestScore := -1.0
	for lag := -maxLag; lag <= maxLag; lag++ {
		ds, ws, n := overlap(lag, len(dry), len(wet))
		if n <= 0 {
			continue
		}

		idx := lag
		if idx < 0 {
			idx += size
		}

		s, ok := score(corr[idx],
			dryEnergy[ds+n]-dryEnergy[ds],
			wetEnergy[ws+n]-wetEnergy[ws])
		if !ok {
			continue
		}

		if s > bestScore {
			bestScore = s
			bestLag = lag
		}
	}

	return bestLag, nil
}

// crossCorrelate returns r[k] = sum_i dry[i]*wet[i+k] in circular layout:
// non-negative lags at index k, negative lags at size+k. The FFT size is
// large enough that no lag wraps onto another.
func crossCorrelate(dry, wet []float64) ([]float64, error) {
	size := nextPowerOf2(len(dry) + len(wet) - 1)

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("latency: failed to create FFT plan: %w", err)
	}

	dryPadded := make([]complex128, size)
	wetPadded := make([]complex128, size)
	for i, v := range dry {
		dryPadded[i] = complex(v, 0)
	}
	for i, v := range wet {
		wetPadded[i] = complex(v, 0)
	}

	dryFreq := make([]complex128, size)
	wetFreq := make([]complex128, size)
	if err := plan.Forward(dryFreq, dryPadded); err != nil {
		return nil, fmt.Errorf("latency: forward FFT failed: %w", err)
	}
	if err := plan.Forward(wetFreq, wetPadded); err != nil {
		return nil, fmt.Errorf("latency: forward FFT failed: %w", err)
	}

	for i := range dryFreq {
		dryFreq[i] = cmplx.Conj(dryFreq[i]) * wetFreq[i]
	}

	if err := plan.Inverse(dryPadded, dryFreq); err != nil {
		return nil, fmt.Errorf("latency: inverse FFT failed: %w", err)
	}

	out := make([]float64, size)
	for i, v := range dryPadded {
		out[i] = real(v)
	}
	return out, nil
}

// prefixEnergy returns p with p[i] = sum of x[j]^2 for j < i.
func prefixEnergy(x []float64) []float64 {
	p := make([]float64, len(x)+1)
	for i, v := range x {
		p[i+1] = p[i] + v*v
	}
	return p
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
