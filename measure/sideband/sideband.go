package sideband

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-iqcal/spectrum"
)

// Errors returned by sideband measurement.
var (
	ErrInvalidSampleRate = errors.New("sideband: sample rate must be positive")
	ErrInvalidLOFreq     = errors.New("sideband: LO frequency must be positive and below Nyquist")
	ErrInvalidIFFreq     = errors.New("sideband: IF frequency must be positive and keep both sidebands in band")
	ErrEmptyCapture      = errors.New("sideband: capture is empty")
)

// Config holds the frequency plan of an up-conversion measurement.
//
// The wanted sideband sits at LOFreq+IFFreq, the image at LOFreq-IFFreq,
// and LO leakage at LOFreq itself.
type Config struct {
	SampleRate float64
	LOFreq     float64
	IFFreq     float64
}

// Validate checks that the frequency plan is measurable.
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if c.LOFreq <= 0 || c.LOFreq >= c.SampleRate/2 {
		return ErrInvalidLOFreq
	}

	if c.IFFreq <= 0 || c.LOFreq+c.IFFreq >= c.SampleRate/2 || c.LOFreq-c.IFFreq <= 0 {
		return ErrInvalidIFFreq
	}

	return nil
}

// Result holds the measured tone powers and the derived quality ratios.
type Result struct {
	CarrierPower float64 // power at LOFreq (LO leakage)
	SignalPower  float64 // power at LOFreq+IFFreq (wanted sideband)
	ImagePower   float64 // power at LOFreq-IFFreq (image sideband)

	ImageRejectionDB     float64 // 10*log10(signal/image)
	CarrierSuppressionDB float64 // 10*log10(signal/carrier)
}

// Calculator measures sideband powers of RF captures for a fixed
// frequency plan.
type Calculator struct {
	cfg Config
}

// NewCalculator creates a calculator after validating the frequency plan.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Calculator{cfg: cfg}, nil
}

// Config returns the calculator frequency plan.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Analyze measures the three tone powers with narrowband probes.
//
// The capture should hold an integer number of cycles of all three tones
// to avoid leakage bias.
func (c *Calculator) Analyze(capture []float64) (Result, error) {
	if len(capture) == 0 {
		return Result{}, ErrEmptyCapture
	}

	probes, err := spectrum.NewMultiGoertzel([]float64{
		c.cfg.LOFreq,
		c.cfg.LOFreq + c.cfg.IFFreq,
		c.cfg.LOFreq - c.cfg.IFFreq,
	}, c.cfg.SampleRate)
	if err != nil {
		return Result{}, err
	}

	probes.ProcessBlock(capture)
	powers := probes.Powers()

	return newResult(powers[0], powers[1], powers[2]), nil
}

// AnalyzeSpectrum measures the tone powers from precomputed complex
// spectrum bins, e.g. the output of [spectrum.Analyze].
func (c *Calculator) AnalyzeSpectrum(bins []complex128) (Result, error) {
	if len(bins) == 0 {
		return Result{}, ErrEmptyCapture
	}

	pwr := spectrum.Power(bins)
	n := len(bins)

	carrier := pwr[spectrum.Bin(c.cfg.LOFreq, c.cfg.SampleRate, n)]
	signal := pwr[spectrum.Bin(c.cfg.LOFreq+c.cfg.IFFreq, c.cfg.SampleRate, n)]
	image := pwr[spectrum.Bin(c.cfg.LOFreq-c.cfg.IFFreq, c.cfg.SampleRate, n)]

	return newResult(carrier, signal, image), nil
}

// Analyze is a one-shot measurement of a capture.
func Analyze(capture []float64, cfg Config) (Result, error) {
	c, err := NewCalculator(cfg)
	if err != nil {
		return Result{}, err
	}

	return c.Analyze(capture)
}

func newResult(carrier, signal, image float64) Result {
	return Result{
		CarrierPower:         carrier,
		SignalPower:          signal,
		ImagePower:           image,
		ImageRejectionDB:     powerRatioDB(signal, image),
		CarrierSuppressionDB: powerRatioDB(signal, carrier),
	}
}

// powerRatioDB returns 10*log10(num/den) with infinities instead of NaN
// at the degenerate ends.
func powerRatioDB(num, den float64) float64 {
	if num <= 0 {
		return math.Inf(-1)
	}

	if den <= 0 {
		return math.Inf(1)
	}

	return 10 * math.Log10(num/den)
}
