// Package mixer provides correction matrices for IQ mixer imbalance.
//
// An analog IQ mixer with relative gain imbalance g between its I and Q
// ports and relative phase imbalance phi (radians) distorts the baseband
// pair it up-converts. The distortion is linear, so it is undone by
// pre-distorting the pair with the inverse 2x2 matrix before it reaches
// the hardware:
//
//	M = 1/((1-g^2)(2cos^2(phi)-1)) * | (1-g)cos(phi)  (1+g)sin(phi) |
//	                                 | (1-g)sin(phi)  (1+g)cos(phi) |
//
// The matrix is undefined when |g| >= 1 or when cos(2*phi) = 0, that is
// phi at odd multiples of pi/4; constructors return a domain error there
// instead of a non-finite matrix.
//
// # Usage
//
// Compute a correction once and apply it to baseband blocks:
//
//	m, err := mixer.Correction(0.02, 0.015)
//	// handle err ...
//	m.ApplyBlock(i, q, i, q)
//
// Or keep a stateful [Corrector] when the calibration constants are
// updated between runs:
//
//	c, _ := mixer.NewCorrector(0.02, 0.015)
//	c.ProcessBlock(i, q)
//	c.SetPhase(0.017) // matrix recomputed
//
// Down-conversion uses the complementary phase-only post-correction from
// [DownconversionCorrection]; its overall scale is immaterial to image
// rejection and is left at unity.
package mixer
