// Package calibrate searches for the mixer imbalance parameters that
// minimize a measured residual power.
//
// The hardware side of the loop, programming a trial correction into
// the signal source and reading the image power off a spectrum analyzer,
// stays with the caller behind a [PowerFunc]. The search itself is a
// coarse grid scan followed by Nelder-Mead refinement, bounded so every
// trial stays inside the correction matrix domain.
//
// # Usage
//
//	s := &calibrate.Search{GainLimit: 0.3, PhaseLimit: math.Pi / 16}
//	res, err := s.Run(func(gain, phase float64) float64 {
//	    return measureImagePower(gain, phase) // instrument I/O
//	})
//	// res.Gain and res.Phase feed mixer.Correction.
package calibrate
