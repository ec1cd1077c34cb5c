package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/filter/fir"
	"github.com/spf13/cobra"
)

var (
	responseSize int
	responseRate float64
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Print the magnitude response of the FIR filter effect",
	RunE:  runFilter,
}

func init() {
	filterCmd.Flags().IntVar(&responseSize, "size", 256, "FFT size (power of two)")
	filterCmd.Flags().Float64Var(&responseRate, "rate", core.DefaultSampleRate, "sample rate in Hz")
}

func runFilter(cmd *cobra.Command, _ []string) error {
	f := fir.NewLowpass37()
	mag, err := f.MagnitudeResponse(responseSize)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Bin\tFrequency [Hz]\tMagnitude [dB]\t\n")
	for bin, m := range mag {
		freq := float64(bin) * responseRate / float64(responseSize)
		fmt.Fprintf(tw, "%d\t%.1f\t%.2f\t\n", bin, freq, core.LinearToDB(math.Max(m, 1e-12)))
	}
	return tw.Flush()
}
