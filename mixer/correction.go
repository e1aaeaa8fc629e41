package mixer

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-iqcal/core"
)

// Errors returned by the correction constructors.
var (
	ErrGainRange       = errors.New("mixer: gain imbalance must be inside (-1, 1)")
	ErrPhaseDegenerate = errors.New("mixer: correction undefined at this phase imbalance")
	ErrNotFinite       = errors.New("mixer: imbalance parameters must be finite")
)

// degenerateEpsilon gates the correction denominator away from zero.
const degenerateEpsilon = 1e-12

// Correction returns the up-conversion pre-distortion matrix for the
// given gain imbalance g (unit-less) and phase imbalance phi (radians).
//
// Correction(0, 0) is the identity. The matrix is the exact inverse of
// [Imbalance] for the same parameters.
func Correction(gain, phase float64) (Matrix, error) {
	if !core.IsFinite(gain) || !core.IsFinite(phase) {
		return Matrix{}, ErrNotFinite
	}
	if gain <= -1 || gain >= 1 {
		return Matrix{}, ErrGainRange
	}

	c := math.Cos(phase)
	s := math.Sin(phase)

	// (2c^2 - 1) == cos(2*phi); zero at odd multiples of pi/4.
	den := (1 - gain*gain) * (2*c*c - 1)
	if math.Abs(den) < degenerateEpsilon {
		return Matrix{}, ErrPhaseDegenerate
	}

	n := 1 / den

	return Matrix{
		{n * (1 - gain) * c, n * (1 + gain) * s},
		{n * (1 - gain) * s, n * (1 + gain) * c},
	}, nil
}

// Imbalance returns the forward distortion matrix an imperfect mixer
// applies to the baseband pair before up-conversion. It is defined for
// all finite parameters and is the inverse of [Correction] wherever the
// latter exists.
func Imbalance(gain, phase float64) Matrix {
	c := math.Cos(phase)
	s := math.Sin(phase)

	return Matrix{
		{(1 + gain) * c, -(1 + gain) * s},
		{-(1 - gain) * s, (1 - gain) * c},
	}
}

// DownconversionCorrection returns the phase-only post-correction matrix
// for a down-conversion mixer with phase imbalance phi on its Q arm:
//
//	| 1            0          |
//	| -tan(phi)    1/cos(phi) |
//
// The overall scale is immaterial to correction quality and is left at
// unity. The matrix is undefined at cos(phi) = 0.
func DownconversionCorrection(phase float64) (Matrix, error) {
	if !core.IsFinite(phase) {
		return Matrix{}, ErrNotFinite
	}

	c := math.Cos(phase)
	if math.Abs(c) < degenerateEpsilon {
		return Matrix{}, ErrPhaseDegenerate
	}

	return Matrix{
		{1, 0},
		{-math.Sin(phase) / c, 1 / c},
	}, nil
}
