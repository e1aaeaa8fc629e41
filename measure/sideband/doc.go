// Package sideband measures the spectral fingerprint of IQ mixer
// imbalance: the power of the wanted sideband, the unwanted image, and
// the leaked carrier in an up-converted capture.
//
// The derived ratios are the usual calibration figures of merit: image
// rejection (signal over image) and carrier suppression (signal over
// carrier), both in dB. Minimizing image power against the correction
// parameters is exactly what the search in measure/calibrate does.
//
// # Usage
//
//	res, err := sideband.Analyze(capture, sideband.Config{
//	    SampleRate: 1e9,
//	    LOFreq:     100e6,
//	    IFFreq:     25e6,
//	})
//	// res.ImageRejectionDB, res.CarrierSuppressionDB ...
package sideband
