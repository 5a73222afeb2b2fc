package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}

// CopyRange copies up to n samples from src[srcPos:] to dst[dstPos:].
// The count is clipped to what both slices hold; out-of-range positions
// copy nothing. It returns the number of copied samples.
func CopyRange(dst []float64, dstPos int, src []float64, srcPos, n int) int {
	if dstPos < 0 || srcPos < 0 || dstPos >= len(dst) || srcPos >= len(src) || n <= 0 {
		return 0
	}
	return CopyInto(dst[dstPos:dstPos+min(n, len(dst)-dstPos)], src[srcPos:])
}
