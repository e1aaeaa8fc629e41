package baseband

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-iqcal/core"
)

// Generator creates deterministic baseband I/Q signals from a shared
// configuration.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured I/Q signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Tone generates a quadrature tone: i = A*cos, q = A*sin.
//
// Up-converting the pair with an ideal mixer produces a single sideband
// at LO+freqHz; a negative freqHz selects the lower sideband.
func (g *Generator) Tone(freqHz, amplitude float64, samples int) (i, q []float64, err error) {
	return g.ToneAt(freqHz, amplitude, 0, samples)
}

// ToneAt generates a quadrature tone with an initial phase in radians.
// A sample count of zero falls back to the configured block size.
func (g *Generator) ToneAt(freqHz, amplitude, phase float64, samples int) (i, q []float64, err error) {
	if samples == 0 {
		samples = g.cfg.BlockSize
	}
	if samples <= 0 {
		return nil, nil, fmt.Errorf("baseband: tone samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, nil, fmt.Errorf("baseband: tone sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	i = make([]float64, samples)
	q = make([]float64, samples)

	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for k := range i {
		angle := step*float64(k) + phase
		i[k] = amplitude * math.Cos(angle)
		q[k] = amplitude * math.Sin(angle)
	}

	return i, q, nil
}
