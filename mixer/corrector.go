package mixer

import (
	"github.com/cwbudde/algo-iqcal/core"
)

// Corrector applies an imbalance correction to baseband I/Q streams.
//
// The corrector is stateful only in its calibration constants: the
// correction matrix is recomputed whenever the gain or phase imbalance
// changes, and block processing reuses an internal scratch buffer, so in
// steady state it does not allocate. It is not safe for concurrent use.
type Corrector struct {
	gain    float64
	phase   float64
	m       Matrix
	scratch []float64
}

// NewCorrector creates a corrector for the given imbalance parameters.
func NewCorrector(gain, phase float64) (*Corrector, error) {
	m, err := Correction(gain, phase)
	if err != nil {
		return nil, err
	}

	return &Corrector{gain: gain, phase: phase, m: m}, nil
}

// SetGain updates the gain imbalance and recomputes the matrix.
// On error the previous calibration stays in effect.
func (c *Corrector) SetGain(gain float64) error {
	return c.SetImbalance(gain, c.phase)
}

// SetPhase updates the phase imbalance and recomputes the matrix.
// On error the previous calibration stays in effect.
func (c *Corrector) SetPhase(phase float64) error {
	return c.SetImbalance(c.gain, phase)
}

// SetImbalance updates both parameters and recomputes the matrix.
// On error the previous calibration stays in effect.
func (c *Corrector) SetImbalance(gain, phase float64) error {
	m, err := Correction(gain, phase)
	if err != nil {
		return err
	}

	c.gain = gain
	c.phase = phase
	c.m = m

	return nil
}

// Gain returns the current gain imbalance.
func (c *Corrector) Gain() float64 { return c.gain }

// Phase returns the current phase imbalance in radians.
func (c *Corrector) Phase() float64 { return c.phase }

// Matrix returns the current correction matrix.
func (c *Corrector) Matrix() Matrix { return c.m }

// Process corrects a single (i, q) sample pair.
func (c *Corrector) Process(i, q float64) (float64, float64) {
	return c.m.Apply(i, q)
}

// ProcessBlock corrects the I/Q block in place.
// Both slices must have the same length.
func (c *Corrector) ProcessBlock(i, q []float64) error {
	return c.ProcessBlockTo(i, q, i, q)
}

// ProcessBlockTo corrects (srcI, srcQ) into (dstI, dstQ). In-place use
// is supported. All four slices must have the same length.
func (c *Corrector) ProcessBlockTo(dstI, dstQ, srcI, srcQ []float64) error {
	n := len(srcI)
	if n == 0 {
		return c.m.ApplyBlock(dstI, dstQ, srcI, srcQ)
	}

	c.scratch = core.EnsureLen(c.scratch, 3*n)

	return applyBlock(c.m, dstI, dstQ, srcI, srcQ, c.scratch)
}
