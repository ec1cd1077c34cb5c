// Command pedalsim runs the effect pedal's processing core on WAV files.
//
// Usage:
//
//	pedalsim render -i in.wav -o out.wav --effect delay --param time=250
//	pedalsim effects
//	pedalsim filter --size 512
//
// Set PEDAL_DEBUG=1 for debug logging.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pedalsim",
	Short: "Run the effect pedal's processing core offline",
	Long: `pedalsim streams WAV files through the effect pedal's block scheduler,
format converter and effect rack, exactly as the pedal processes the
audio interface's transfer buffers.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(renderCmd, effectsCmd, filterCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
