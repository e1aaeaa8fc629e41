// Package spectrum provides the narrowband power probes used by mixer
// calibration.
//
// Calibration needs the power at a handful of known frequencies (the
// carrier, the wanted sideband, the image), not a full spectrum, so the
// primary tool is a [Goertzel] single-bin probe; [MultiGoertzel] evaluates
// several probe frequencies in one pass over the capture. For complex
// baseband pairs, [ComplexTonePower] evaluates a single (possibly
// negative) frequency directly.
//
// [Analyze] computes a windowed FFT through an external FFT backend for
// callers that want the whole spectrum, with [Magnitude] and [Power]
// unpacking the complex bins.
package spectrum
