package core

import "testing"

func TestCopyInto(t *testing.T) {
	dst := make([]float64, 2)

	n := CopyInto(dst, []float64{1, 2, 3})
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}

	if dst[0] != 1 || dst[1] != 2 {
		t.Fatalf("unexpected dst: %#v", dst)
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}

func TestCopyRange(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5}

	tests := []struct {
		name           string
		dstLen         int
		dstPos, srcPos int
		n              int
		want           []float64
		wantN          int
	}{
		{"full", 5, 0, 0, 5, []float64{1, 2, 3, 4, 5}, 5},
		{"src offset", 3, 0, 3, 3, []float64{4, 5, 0}, 2},
		{"dst offset", 4, 2, 0, 4, []float64{0, 0, 1, 2}, 2},
		{"src exhausted", 3, 0, 5, 3, []float64{0, 0, 0}, 0},
		{"negative count", 3, 0, 0, -1, []float64{0, 0, 0}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dst := make([]float64, tc.dstLen)
			n := CopyRange(dst, tc.dstPos, src, tc.srcPos, tc.n)
			if n != tc.wantN {
				t.Fatalf("n = %d, want %d", n, tc.wantN)
			}
			for i := range dst {
				if dst[i] != tc.want[i] {
					t.Fatalf("dst = %v, want %v", dst, tc.want)
				}
			}
		})
	}
}
