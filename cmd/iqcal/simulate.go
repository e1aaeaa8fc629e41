package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-iqcal/baseband"
	"github.com/cwbudde/algo-iqcal/core"
	"github.com/cwbudde/algo-iqcal/measure/sideband"
	"github.com/cwbudde/algo-iqcal/mixer"
)

type simulateParams struct {
	sampleRate float64
	loFreq     float64
	ifFreq     float64
	samples    int
	gain       float64
	phase      float64
	offsetI    float64
	offsetQ    float64
}

// runSimulation synthesizes a tone, optionally pre-distorts it with
// corr, pushes it through the simulated mixer, and measures the sideband
// powers.
func runSimulation(p simulateParams, corr *mixer.Matrix) (sideband.Result, error) {
	g := baseband.NewGenerator(core.WithSampleRate(p.sampleRate))
	i, q, err := g.Tone(p.ifFreq, 1, p.samples)
	if err != nil {
		return sideband.Result{}, err
	}

	if corr != nil {
		if err := corr.ApplyBlock(i, q, i, q); err != nil {
			return sideband.Result{}, err
		}
	}

	u := &baseband.Upconverter{
		SampleRate: p.sampleRate,
		LOFreq:     p.loFreq,
		Gain:       p.gain,
		Phase:      p.phase,
		OffsetI:    p.offsetI,
		OffsetQ:    p.offsetQ,
	}

	rf, err := u.Upconvert(i, q)
	if err != nil {
		return sideband.Result{}, err
	}

	return sideband.Analyze(rf, sideband.Config{
		SampleRate: p.sampleRate,
		LOFreq:     p.loFreq,
		IFFreq:     p.ifFreq,
	})
}

// NewSimulateCommand simulates an imperfect mixer and reports its
// sideband fingerprint.
func NewSimulateCommand() *cobra.Command {
	var (
		p       simulateParams
		correct bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate an imperfect mixer and measure its sideband powers",
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Debug("simulating mixer",
				"sampleRate", p.sampleRate, "lo", p.loFreq, "if", p.ifFreq,
				"gain", p.gain, "phase", p.phase)

			var corr *mixer.Matrix
			if correct {
				m, err := mixer.Correction(p.gain, p.phase)
				if err != nil {
					return err
				}
				corr = &m
			}

			res, err := runSimulation(p, corr)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "signal power\t%.6g\t\n", res.SignalPower)
			fmt.Fprintf(w, "image power\t%.6g\t\n", res.ImagePower)
			fmt.Fprintf(w, "carrier power\t%.6g\t\n", res.CarrierPower)
			fmt.Fprintf(w, "image rejection\t%.2f dB\t\n", res.ImageRejectionDB)
			fmt.Fprintf(w, "carrier suppression\t%.2f dB\t\n", res.CarrierSuppressionDB)

			return w.Flush()
		},
	}

	addSimulateFlags(cmd, &p)
	cmd.Flags().BoolVar(&correct, "correct", false, "pre-distort the baseband pair with the matching correction")

	return cmd
}

func addSimulateFlags(cmd *cobra.Command, p *simulateParams) {
	cmd.Flags().Float64Var(&p.sampleRate, "sample-rate", 1.024e6, "sample rate in Hz")
	cmd.Flags().Float64Var(&p.loFreq, "lo", 200e3, "LO frequency in Hz")
	cmd.Flags().Float64Var(&p.ifFreq, "if", 25e3, "IF frequency in Hz")
	cmd.Flags().IntVar(&p.samples, "samples", 1024, "capture length in samples")
	cmd.Flags().Float64VarP(&p.gain, "gain", "g", 0, "mixer gain imbalance")
	cmd.Flags().Float64VarP(&p.phase, "phase", "p", 0, "mixer phase imbalance in radians")
	cmd.Flags().Float64Var(&p.offsetI, "offset-i", 0, "DC offset on the I port")
	cmd.Flags().Float64Var(&p.offsetQ, "offset-q", 0, "DC offset on the Q port")
}
