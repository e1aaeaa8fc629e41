package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-iqcal/internal/testutil"
)

func TestGoertzel_MatchesDirectDFT(t *testing.T) {
	sampleRate := 1e6
	freq0 := 50e3
	length := 1024
	sig := testutil.DeterministicSine(freq0, sampleRate, 1.0, length)

	g, err := NewGoertzel(freq0, sampleRate)
	if err != nil {
		t.Fatalf("NewGoertzel: %v", err)
	}

	g.ProcessBlock(sig)
	pwr := g.Power()

	var dft complex128
	for n, x := range sig {
		angle := -2 * math.Pi * freq0 / sampleRate * float64(n)
		dft += complex(x, 0) * cmplx.Exp(complex(0, angle))
	}

	wantP := real(dft)*real(dft) + imag(dft)*imag(dft)
	if math.Abs(pwr-wantP) > 1e-7*wantP {
		t.Errorf("Power = %v, want %v", pwr, wantP)
	}

	mag := g.Magnitude()
	wantMag := cmplx.Abs(dft)
	if math.Abs(mag-wantMag) > 1e-7*wantMag {
		t.Errorf("Magnitude = %v, want %v", mag, wantMag)
	}
}

func TestGoertzel_PowerDB(t *testing.T) {
	sampleRate := 1e6
	freq0 := 50e3
	length := 1000
	sig := testutil.DeterministicSine(freq0, sampleRate, 1.0, length)

	g, err := NewGoertzel(freq0, sampleRate)
	if err != nil {
		t.Fatalf("NewGoertzel: %v", err)
	}

	g.ProcessBlock(sig)

	// A unit tone over N samples carries (N/2)^2 of single-bin power,
	// 250000 here, just under 54 dB.
	want := 10 * math.Log10(g.Power())
	if got := g.PowerDB(); math.Abs(got-want) > 1e-9 {
		t.Errorf("PowerDB = %v, want %v", got, want)
	}

	// An idle probe reports the floor instead of -Inf.
	g.Reset()
	if got := g.PowerDB(); got != -300 {
		t.Errorf("PowerDB after reset = %v, want the -300 dB floor", got)
	}
}

func TestGoertzel_Reset(t *testing.T) {
	g, _ := NewGoertzel(1000, 48000)
	g.ProcessSample(1.0)

	if g.Power() == 0 {
		t.Error("Power should be non-zero after processing")
	}

	g.Reset()

	if g.Power() != 0 {
		t.Error("Power should be zero after reset")
	}
}

func TestGoertzel_SetFrequencyResets(t *testing.T) {
	g, _ := NewGoertzel(1000, 48000)
	g.ProcessSample(1.0)

	if err := g.SetFrequency(2000); err != nil {
		t.Fatalf("SetFrequency: %v", err)
	}
	if g.Frequency() != 2000 {
		t.Errorf("Frequency = %v, want 2000", g.Frequency())
	}
	if g.Power() != 0 {
		t.Error("SetFrequency should reset accumulated state")
	}

	if err := g.SetFrequency(-1); err == nil {
		t.Error("expected error for negative frequency")
	}
	if err := g.SetFrequency(30000); err == nil {
		t.Error("expected error for frequency above Nyquist")
	}
}

func TestNewGoertzel_Validation(t *testing.T) {
	if _, err := NewGoertzel(100, 0); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if _, err := NewGoertzel(100, math.NaN()); err == nil {
		t.Error("expected error for NaN sample rate")
	}
	if _, err := NewGoertzel(math.Inf(1), 48000); err == nil {
		t.Error("expected error for Inf frequency")
	}
}

func TestTonePower_DiscriminatesTones(t *testing.T) {
	sampleRate := 1e6
	length := 1000
	sig := testutil.DeterministicSine(50e3, sampleRate, 1.0, length)

	hit, err := TonePower(sig, 50e3, sampleRate)
	if err != nil {
		t.Fatalf("TonePower: %v", err)
	}
	miss, err := TonePower(sig, 100e3, sampleRate)
	if err != nil {
		t.Fatalf("TonePower: %v", err)
	}

	if hit <= 0 {
		t.Fatal("no power at the tone frequency")
	}
	if miss/hit > 1e-10 {
		t.Errorf("off-tone power ratio %v, want ~0", miss/hit)
	}
}

func TestMultiGoertzel(t *testing.T) {
	sampleRate := 1e6
	length := 1000
	sig := testutil.DeterministicSine(50e3, sampleRate, 1.0, length)

	mg, err := NewMultiGoertzel([]float64{25e3, 50e3, 75e3}, sampleRate)
	if err != nil {
		t.Fatalf("NewMultiGoertzel: %v", err)
	}

	mg.ProcessBlock(sig)
	powers := mg.Powers()
	if len(powers) != 3 {
		t.Fatalf("len(powers) = %d, want 3", len(powers))
	}

	if powers[1] <= powers[0] || powers[1] <= powers[2] {
		t.Errorf("probe at the tone is not dominant: %v", powers)
	}

	mg.Reset()
	for i, p := range mg.Powers() {
		if p != 0 {
			t.Fatalf("probe %d not reset: %v", i, p)
		}
	}

	if _, err := NewMultiGoertzel([]float64{-1}, sampleRate); err == nil {
		t.Error("expected error for invalid probe frequency")
	}
}

func TestComplexTonePower(t *testing.T) {
	sampleRate := 1000.0
	length := 1000
	freq := 25.0

	i := make([]float64, length)
	q := make([]float64, length)
	for k := range i {
		angle := 2 * math.Pi * freq / sampleRate * float64(k)
		i[k] = math.Cos(angle)
		q[k] = math.Sin(angle)
	}

	pos, err := ComplexTonePower(i, q, freq, sampleRate)
	if err != nil {
		t.Fatalf("ComplexTonePower: %v", err)
	}
	neg, err := ComplexTonePower(i, q, -freq, sampleRate)
	if err != nil {
		t.Fatalf("ComplexTonePower: %v", err)
	}

	// The analytic tone lives entirely at +freq.
	want := float64(length) * float64(length)
	if math.Abs(pos-want) > 1e-6*want {
		t.Errorf("positive-frequency power = %v, want %v", pos, want)
	}
	if neg/pos > 1e-10 {
		t.Errorf("negative-frequency power ratio %v, want ~0", neg/pos)
	}

	if _, err := ComplexTonePower(i, q[:10], freq, sampleRate); err == nil {
		t.Error("expected length mismatch error")
	}
	if _, err := ComplexTonePower(i, q, 2*sampleRate, sampleRate); err == nil {
		t.Error("expected out-of-range frequency error")
	}
}
