package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// The elementwise math uses SIMD-optimized implementations when available
// (AVX2, SSE2, NEON). Scratch buffers are pooled internally, so in steady
// state this allocates only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
//
// See [Magnitude] for the performance notes; the same pooling applies.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// PhaseAt returns the phase in radians of the spectrum at the bin
// closest to the frequency.
func PhaseAt(in []complex128, frequency, sampleRate float64) float64 {
	if len(in) == 0 {
		return 0
	}

	c := in[Bin(frequency, sampleRate, len(in))]

	return math.Atan2(imag(c), real(c))
}

// Bin returns the spectrum bin index closest to the frequency for the
// given FFT size and sample rate. Negative frequencies map to the upper
// half of the spectrum.
func Bin(frequency, sampleRate float64, fftSize int) int {
	if fftSize <= 0 || sampleRate <= 0 {
		return 0
	}

	bin := int(math.Round(frequency / sampleRate * float64(fftSize)))
	bin %= fftSize
	if bin < 0 {
		bin += fftSize
	}

	return bin
}
