package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"chordpad/midi"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI input and output ports",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("MIDI inputs:")
		ins := midi.InputPorts()
		if len(ins) == 0 {
			fmt.Println("  (none)")
		}
		for _, name := range ins {
			fmt.Printf("  %s\n", name)
		}

		fmt.Println("MIDI outputs:")
		outs := midi.OutputPorts()
		if len(outs) == 0 {
			fmt.Println("  (none)")
		}
		for _, name := range outs {
			fmt.Printf("  %s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
