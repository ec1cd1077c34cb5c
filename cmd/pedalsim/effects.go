package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-pedal/dsp/effectchain"
	"github.com/cwbudde/algo-pedal/pedal"
	"github.com/spf13/cobra"
)

var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "List effects and their parameters",
	RunE:  runEffects,
}

func runEffects(cmd *cobra.Command, _ []string) error {
	p, err := pedal.New()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Index\tEffect\tParameter\tRange\tValue\n")
	fmt.Fprintf(tw, "-----\t------\t---------\t-----\t-----\n")
	for _, k := range effectchain.Kinds() {
		specs, err := p.Params(k)
		if err != nil {
			return err
		}
		if len(specs) == 0 {
			fmt.Fprintf(tw, "%d\t%s\t-\t-\t-\n", uint8(k), k)
			continue
		}
		for i, s := range specs {
			idx, name := "", ""
			if i == 0 {
				idx, name = fmt.Sprint(uint8(k)), k.String()
			}
			v, err := p.Value(k, s.Param)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%g\n", idx, name, s.Param, s.Range, v)
		}
	}
	return tw.Flush()
}
