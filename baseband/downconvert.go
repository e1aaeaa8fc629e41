package baseband

import "math"

// Downconverter simulates quadrature demodulation of an RF capture back
// to baseband I/Q.
//
// The capture is mixed with 2*cos(w_lo*t) on the I arm and
// -2*sin(w_lo*t - Phase) on the Q arm, then smoothed with a boxcar over
// exactly one LO period to cancel the 2*w_lo mixing products. This
// requires the sample rate to be an integer multiple of the LO frequency.
//
// A nonzero Phase reproduces the pair (i, sin(Phase)*i + cos(Phase)*q),
// the distortion that [mixer.DownconversionCorrection] with the same
// Phase undoes.
type Downconverter struct {
	SampleRate float64 // sample rate in Hz
	LOFreq     float64 // carrier frequency in Hz
	Phase      float64 // Q-arm phase imbalance in radians
}

// Validate checks that the Downconverter parameters are valid.
func (d *Downconverter) Validate() error {
	if d.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	if d.LOFreq <= 0 || d.LOFreq >= d.SampleRate/2 {
		return ErrInvalidLOFreq
	}

	if _, err := d.periodSamples(); err != nil {
		return err
	}

	return nil
}

func (d *Downconverter) periodSamples() (int, error) {
	ratio := d.SampleRate / d.LOFreq
	period := int(math.Round(ratio))
	if period < 4 || math.Abs(ratio-float64(period)) > 1e-9 {
		return 0, ErrPeriodNotInteger
	}
	return period, nil
}

// Downconvert demodulates the RF capture and returns the recovered I/Q
// pair. The output is shorter than the input by one LO period minus one
// sample (the boxcar's valid region).
func (d *Downconverter) Downconvert(rf []float64) (i, q []float64, err error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}

	period, err := d.periodSamples()
	if err != nil {
		return nil, nil, err
	}

	if len(rf) < period {
		return nil, nil, ErrPeriodNotInteger
	}

	mi := make([]float64, len(rf))
	mq := make([]float64, len(rf))

	step := 2 * math.Pi * d.LOFreq / d.SampleRate
	for k, x := range rf {
		angle := step * float64(k)
		mi[k] = 2 * x * math.Cos(angle)
		mq[k] = -2 * x * math.Sin(angle-d.Phase)
	}

	n := len(rf) - period + 1
	i = make([]float64, n)
	q = make([]float64, n)

	inv := 1 / float64(period)

	// Running boxcar sums over one LO period.
	var sumI, sumQ float64
	for k := range period {
		sumI += mi[k]
		sumQ += mq[k]
	}

	i[0] = sumI * inv
	q[0] = sumQ * inv

	for k := 1; k < n; k++ {
		sumI += mi[k+period-1] - mi[k-1]
		sumQ += mq[k+period-1] - mq[k-1]
		i[k] = sumI * inv
		q[k] = sumQ * inv
	}

	return i, q, nil
}
