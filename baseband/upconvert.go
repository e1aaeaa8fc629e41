package baseband

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-iqcal/mixer"
)

// Errors returned by the mixer simulations.
var (
	ErrInvalidSampleRate = errors.New("baseband: sample rate must be positive")
	ErrInvalidLOFreq     = errors.New("baseband: LO frequency must be positive and below Nyquist")
	ErrLengthMismatch    = errors.New("baseband: I and Q blocks must have the same length")
	ErrPeriodNotInteger  = errors.New("baseband: sample rate must be an integer multiple (>= 4) of the LO frequency")
)

// Upconverter simulates an IQ up-conversion mixer with static impairments.
//
// The baseband pair first passes through the forward imbalance matrix for
// (Gain, Phase) and picks up the DC offsets, then mixes with the carrier:
//
//	rf(t) = i'(t)*cos(w_lo*t) - q'(t)*sin(w_lo*t)
//
// Gain and phase imbalance leak power into the image sideband; the DC
// offsets leak the carrier itself. With all impairments zero the mixer is
// ideal and a [Generator.Tone] pair lands entirely in the upper sideband.
type Upconverter struct {
	SampleRate float64 // sample rate in Hz
	LOFreq     float64 // carrier frequency in Hz
	Gain       float64 // gain imbalance (unit-less)
	Phase      float64 // phase imbalance in radians
	OffsetI    float64 // DC offset on the I port
	OffsetQ    float64 // DC offset on the Q port
}

// Validate checks that the Upconverter parameters are valid.
func (u *Upconverter) Validate() error {
	if u.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if u.LOFreq <= 0 || u.LOFreq >= u.SampleRate/2 {
		return ErrInvalidLOFreq
	}

	return nil
}

// Upconvert mixes the baseband pair up to the carrier and returns the
// simulated RF capture.
func (u *Upconverter) Upconvert(i, q []float64) ([]float64, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if len(i) != len(q) {
		return nil, ErrLengthMismatch
	}

	imb := mixer.Imbalance(u.Gain, u.Phase)
	out := make([]float64, len(i))

	step := 2 * math.Pi * u.LOFreq / u.SampleRate
	for k := range out {
		di, dq := imb.Apply(i[k], q[k])
		di += u.OffsetI
		dq += u.OffsetQ

		angle := step * float64(k)
		out[k] = di*math.Cos(angle) - dq*math.Sin(angle)
	}

	return out, nil
}
