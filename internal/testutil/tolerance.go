package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-harness/dsp/buffer"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireBufferNearlyEqual fails t if the buffers differ in shape or any
// sample pair exceeds eps.
func RequireBufferNearlyEqual(t *testing.T, got, want *buffer.Buffer, eps float64) {
	t.Helper()
	if got.NumChannels() != want.NumChannels() {
		t.Fatalf("channel mismatch: got %d, want %d", got.NumChannels(), want.NumChannels())
	}
	for c := 0; c < got.NumChannels(); c++ {
		if len(got.Channel(c)) != len(want.Channel(c)) {
			t.Fatalf("channel %d: length mismatch: got %d, want %d", c, len(got.Channel(c)), len(want.Channel(c)))
		}
		for i, g := range got.Channel(c) {
			w := want.Channel(c)[i]
			if diff := math.Abs(g - w); diff > eps {
				t.Fatalf("channel %d index %d: got %v, want %v (diff %v > eps %v)", c, i, g, w, diff, eps)
			}
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
