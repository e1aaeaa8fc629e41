package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-iqcal/core"
)

// Goertzel is a single-frequency power probe over a real-valued capture.
//
// The probe is stateful: Power and Magnitude evaluate the frequency
// component accumulated from all samples processed since the last Reset.
// One probe per frequency of interest is far cheaper than a full FFT when
// calibration only needs the carrier, signal, and image bins.
//
// The probe's main lobe narrows with the processed block length N; two
// tones must be separated by more than sampleRate/N to resolve. Captures
// should hold an integer number of cycles of the probed tone, otherwise
// spectral leakage biases the estimate.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates a probe for the target frequency.
//
// frequency must be between 0 and sampleRate/2.
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	if frequency < 0 || frequency > sampleRate/2 || !core.IsFinite(frequency) {
		return nil, fmt.Errorf("spectrum: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	g := &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
	}
	g.updateCoeff()

	return g, nil
}

func (g *Goertzel) updateCoeff() {
	g.coeff = 2 * math.Cos(2*math.Pi*g.frequency/g.sampleRate)
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
}

// ProcessSample updates the probe with a single input sample.
func (g *Goertzel) ProcessSample(input float64) {
	s := input + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
}

// ProcessBlock updates the probe with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the probed component, equivalent
// to |X[k]|^2 of a DFT over the processed samples.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Magnitude returns the magnitude of the probed component.
func (g *Goertzel) Magnitude() float64 {
	p := g.Power()
	if p <= 0 {
		return 0
	}

	return math.Sqrt(p)
}

// PowerDB returns the power in decibels with a safe floor at -300 dB.
func (g *Goertzel) PowerDB() float64 {
	p := g.Power()
	if p <= 1e-30 {
		return -300
	}

	return core.LinearPowerToDB(p)
}

// SetFrequency updates the target frequency and resets the probe.
func (g *Goertzel) SetFrequency(frequency float64) error {
	if frequency < 0 || frequency > g.sampleRate/2 || !core.IsFinite(frequency) {
		return fmt.Errorf("spectrum: frequency must be between 0 and sampleRate/2: %v", frequency)
	}

	g.frequency = frequency
	g.updateCoeff()
	g.Reset()

	return nil
}

// Frequency returns the current target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// SampleRate returns the probe sample rate.
func (g *Goertzel) SampleRate() float64 { return g.sampleRate }

// TonePower computes the probe power for a single frequency in one shot.
func TonePower(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(input)

	return g.Power(), nil
}

// MultiGoertzel runs one probe per frequency over the same capture.
type MultiGoertzel struct {
	probes []*Goertzel
}

// NewMultiGoertzel creates probes for each of the given frequencies.
func NewMultiGoertzel(frequencies []float64, sampleRate float64) (*MultiGoertzel, error) {
	probes := make([]*Goertzel, len(frequencies))
	for i, f := range frequencies {
		g, err := NewGoertzel(f, sampleRate)
		if err != nil {
			return nil, err
		}

		probes[i] = g
	}

	return &MultiGoertzel{probes: probes}, nil
}

// ProcessBlock updates all probes with the same input block.
func (m *MultiGoertzel) ProcessBlock(input []float64) {
	for _, g := range m.probes {
		g.ProcessBlock(input)
	}
}

// Powers returns the powers of all probes in input order.
func (m *MultiGoertzel) Powers() []float64 {
	p := make([]float64, len(m.probes))
	for i, g := range m.probes {
		p[i] = g.Power()
	}

	return p
}

// Reset resets all probes.
func (m *MultiGoertzel) Reset() {
	for _, g := range m.probes {
		g.Reset()
	}
}

// ComplexTonePower evaluates |DFT(i + j*q)|^2 at a single frequency of a
// complex baseband pair. Negative frequencies probe the image side.
// Both slices must have the same length.
func ComplexTonePower(i, q []float64, frequency, sampleRate float64) (float64, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return 0, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}
	if math.Abs(frequency) > sampleRate/2 || !core.IsFinite(frequency) {
		return 0, fmt.Errorf("spectrum: frequency must be within +/- sampleRate/2: %v", frequency)
	}
	if len(i) != len(q) {
		return 0, fmt.Errorf("spectrum: I/Q length mismatch: %d != %d", len(i), len(q))
	}

	step := -2 * math.Pi * frequency / sampleRate

	var re, im float64
	for n := range i {
		angle := step * float64(n)
		c, s := math.Cos(angle), math.Sin(angle)
		re += i[n]*c - q[n]*s
		im += i[n]*s + q[n]*c
	}

	return re*re + im*im, nil
}
