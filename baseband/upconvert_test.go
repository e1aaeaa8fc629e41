package baseband

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-iqcal/core"
	"github.com/cwbudde/algo-iqcal/mixer"
)

// tonePower evaluates |DFT(signal)|^2 at the exact frequency, matching a
// single-bin probe when the tone has an integer number of cycles.
func tonePower(signal []float64, freqHz, sampleRate float64) float64 {
	var re, im float64
	for n, x := range signal {
		angle := -2 * math.Pi * freqHz / sampleRate * float64(n)
		re += x * math.Cos(angle)
		im += x * math.Sin(angle)
	}
	return re*re + im*im
}

func TestUpconverter_IdealSingleSideband(t *testing.T) {
	const (
		sampleRate = 1000.0
		loFreq     = 200.0
		ifFreq     = 25.0
		n          = 1000
	)

	g := NewGenerator(core.WithSampleRate(sampleRate))
	i, q, err := g.Tone(ifFreq, 1, n)
	if err != nil {
		t.Fatalf("Tone: %v", err)
	}

	u := &Upconverter{SampleRate: sampleRate, LOFreq: loFreq}
	rf, err := u.Upconvert(i, q)
	if err != nil {
		t.Fatalf("Upconvert: %v", err)
	}

	signal := tonePower(rf, loFreq+ifFreq, sampleRate)
	image := tonePower(rf, loFreq-ifFreq, sampleRate)
	carrier := tonePower(rf, loFreq, sampleRate)

	if signal <= 0 {
		t.Fatal("no power in the wanted sideband")
	}
	if image/signal > 1e-20 {
		t.Errorf("ideal mixer leaked image power: ratio %v", image/signal)
	}
	if carrier/signal > 1e-20 {
		t.Errorf("ideal mixer leaked carrier power: ratio %v", carrier/signal)
	}
}

func TestUpconverter_ImbalanceCreatesImage(t *testing.T) {
	const (
		sampleRate = 1000.0
		loFreq     = 200.0
		ifFreq     = 25.0
		n          = 1000
	)

	g := NewGenerator(core.WithSampleRate(sampleRate))
	i, q, _ := g.Tone(ifFreq, 1, n)

	u := &Upconverter{SampleRate: sampleRate, LOFreq: loFreq, Gain: 0.1, Phase: 0.05}
	rf, err := u.Upconvert(i, q)
	if err != nil {
		t.Fatalf("Upconvert: %v", err)
	}

	signal := tonePower(rf, loFreq+ifFreq, sampleRate)
	image := tonePower(rf, loFreq-ifFreq, sampleRate)

	// Roughly sqrt(g^2+phi^2)/2 in amplitude, so well above the ideal floor.
	if image/signal < 1e-4 {
		t.Fatalf("expected visible image sideband, ratio %v", image/signal)
	}
}

func TestUpconverter_PredistortionCancelsImage(t *testing.T) {
	const (
		sampleRate = 1000.0
		loFreq     = 200.0
		ifFreq     = 25.0
		n          = 1000
		gain       = 0.1
		phase      = 0.05
	)

	g := NewGenerator(core.WithSampleRate(sampleRate))
	i, q, _ := g.Tone(ifFreq, 1, n)

	corr, err := mixer.Correction(gain, phase)
	if err != nil {
		t.Fatalf("Correction: %v", err)
	}
	if err := corr.ApplyBlock(i, q, i, q); err != nil {
		t.Fatalf("ApplyBlock: %v", err)
	}

	u := &Upconverter{SampleRate: sampleRate, LOFreq: loFreq, Gain: gain, Phase: phase}
	rf, err := u.Upconvert(i, q)
	if err != nil {
		t.Fatalf("Upconvert: %v", err)
	}

	signal := tonePower(rf, loFreq+ifFreq, sampleRate)
	image := tonePower(rf, loFreq-ifFreq, sampleRate)

	if image/signal > 1e-20 {
		t.Errorf("pre-distortion left image power: ratio %v", image/signal)
	}
}

func TestUpconverter_OffsetsLeakCarrier(t *testing.T) {
	const (
		sampleRate = 1000.0
		loFreq     = 200.0
		n          = 1000
	)

	i := make([]float64, n)
	q := make([]float64, n)

	u := &Upconverter{SampleRate: sampleRate, LOFreq: loFreq, OffsetI: 0.05, OffsetQ: -0.02}
	rf, err := u.Upconvert(i, q)
	if err != nil {
		t.Fatalf("Upconvert: %v", err)
	}

	carrier := tonePower(rf, loFreq, sampleRate)
	want := (0.05*0.05 + 0.02*0.02) * float64(n) * float64(n) / 4.0
	if math.Abs(carrier-want) > 1e-6*want {
		t.Fatalf("carrier power = %v, want %v", carrier, want)
	}
}

func TestUpconverter_Validate(t *testing.T) {
	u := &Upconverter{SampleRate: 0, LOFreq: 100}
	if _, err := u.Upconvert(nil, nil); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("expected ErrInvalidSampleRate, got %v", err)
	}

	u = &Upconverter{SampleRate: 1000, LOFreq: 600}
	if _, err := u.Upconvert(nil, nil); !errors.Is(err, ErrInvalidLOFreq) {
		t.Fatalf("expected ErrInvalidLOFreq, got %v", err)
	}

	u = &Upconverter{SampleRate: 1000, LOFreq: 100}
	if _, err := u.Upconvert(make([]float64, 4), make([]float64, 5)); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}
