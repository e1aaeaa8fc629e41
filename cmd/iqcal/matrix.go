package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-iqcal/mixer"
)

// NewMatrixCommand prints correction matrices for given imbalance parameters.
func NewMatrixCommand() *cobra.Command {
	var (
		gain  float64
		phase float64
		down  bool
	)

	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the correction matrix for given imbalance parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				m   mixer.Matrix
				err error
			)

			if down {
				m, err = mixer.DownconversionCorrection(phase)
			} else {
				m, err = mixer.Correction(gain, phase)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "%.9f\t%.9f\t\n", m[0][0], m[0][1])
			fmt.Fprintf(w, "%.9f\t%.9f\t\n", m[1][0], m[1][1])
			if err := w.Flush(); err != nil {
				return err
			}

			c := m.Coefficients()
			fmt.Printf("\ncoefficients: [%.9f, %.9f, %.9f, %.9f]\n", c[0], c[1], c[2], c[3])

			return nil
		},
	}

	cmd.Flags().Float64VarP(&gain, "gain", "g", 0, "gain imbalance (unit-less, inside (-1, 1))")
	cmd.Flags().Float64VarP(&phase, "phase", "p", 0, "phase imbalance in radians")
	cmd.Flags().BoolVar(&down, "down", false, "print the down-conversion correction instead (ignores --gain)")

	return cmd
}
