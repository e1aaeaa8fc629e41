// Package testutil provides deterministic signal generators for tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// IQTone generates a deterministic quadrature tone pair (cos, sin).
func IQTone(freqHz, sampleRate, amplitude float64, length int) (i, q []float64) {
	i = make([]float64, length)
	q = make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for k := range i {
		i[k] = amplitude * math.Cos(step*float64(k))
		q[k] = amplitude * math.Sin(step*float64(k))
	}
	return i, q
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}
