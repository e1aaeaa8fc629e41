package core

// EnsureLen returns a scratch slice with the requested length, reusing
// buf capacity if possible. Contents are unspecified; callers overwrite
// the whole slice.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}
