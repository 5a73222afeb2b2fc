package latency

import (
	"testing"

	"github.com/cwbudde/algo-harness/internal/testutil"
)

func benchmarkDetect(b *testing.B, m Method, n, maxLag int) {
	dry := testutil.DeterministicNoise(1, 0.5, n)
	wet := testutil.Delayed(dry, maxLag/3)

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Detect(m, dry, wet, maxLag); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDetectLagDirect(b *testing.B) { benchmarkDetect(b, MethodDirect, 16384, 512) }
func BenchmarkDetectLagFFT(b *testing.B)    { benchmarkDetect(b, MethodFFT, 16384, 512) }
