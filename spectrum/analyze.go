package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Analyze computes the complex spectrum of a real capture.
//
// The capture is Hann-windowed, zero-padded to fftSize, and transformed
// with the FFT backend. fftSize must be a power of two no smaller than
// the capture length; pass 0 to use the next power of two.
func Analyze(signal []float64, fftSize int) ([]complex128, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("spectrum: analyze input must not be empty")
	}

	if fftSize == 0 {
		fftSize = nextPowerOf2(len(signal))
	}

	if fftSize < len(signal) {
		return nil, fmt.Errorf("spectrum: fftSize %d smaller than capture length %d", fftSize, len(signal))
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, x := range signal {
		in[i] = complex(x*hann(i, len(signal)), 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	return out, nil
}

// hann evaluates the periodic Hann window of length n at index i.
func hann(i, n int) float64 {
	if n <= 1 {
		return 1
	}

	return 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
