package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-iqcal/measure/calibrate"
	"github.com/cwbudde/algo-iqcal/measure/sideband"
	"github.com/cwbudde/algo-iqcal/mixer"
)

// runTrial measures the simulated mixer with a trial correction applied.
func runTrial(p simulateParams, gain, phase float64) (sideband.Result, error) {
	corr, err := mixer.Correction(gain, phase)
	if err != nil {
		return sideband.Result{}, err
	}

	return runSimulation(p, &corr)
}

// NewCalibrateCommand runs the imbalance search against a simulated mixer.
func NewCalibrateCommand() *cobra.Command {
	var (
		p          simulateParams
		gainLimit  float64
		phaseLimit float64
	)

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Recover imbalance parameters of a simulated mixer by minimizing image power",
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePower := func(gain, phase float64) float64 {
				res, err := runTrial(p, gain, phase)
				if err != nil {
					slog.Debug("trial failed", "gain", gain, "phase", phase, "err", err)
					return math.Inf(1)
				}

				return res.ImagePower
			}

			slog.Info("searching", "gainLimit", gainLimit, "phaseLimit", phaseLimit)

			s := &calibrate.Search{GainLimit: gainLimit, PhaseLimit: phaseLimit}
			res, err := s.Run(imagePower)
			if err != nil {
				return err
			}

			slog.Info("search finished", "evaluations", res.Evaluations)

			final, err := runTrial(p, res.Gain, res.Phase)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "true gain\t%.6f\t\n", p.gain)
			fmt.Fprintf(w, "true phase\t%.6f\t\n", p.phase)
			fmt.Fprintf(w, "recovered gain\t%.6f\t\n", res.Gain)
			fmt.Fprintf(w, "recovered phase\t%.6f\t\n", res.Phase)
			fmt.Fprintf(w, "image rejection\t%.2f dB\t\n", final.ImageRejectionDB)

			return w.Flush()
		},
	}

	addSimulateFlags(cmd, &p)
	cmd.Flags().Float64Var(&gainLimit, "gain-limit", 0.3, "half-width of the gain search box")
	cmd.Flags().Float64Var(&phaseLimit, "phase-limit", 0.2, "half-width of the phase search box in radians")

	return cmd
}
