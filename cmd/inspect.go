package cmd

import (
	"fmt"
	"io"

	"github.com/jsphweid/vexvoice/midi"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	inspectFrom  uint64
	inspectNotes int
)

func init() {
	inspectCmd.Flags().Uint64Var(&inspectFrom, "from", 0, "skip notes before this tick")
	inspectCmd.Flags().IntVar(&inspectNotes, "notes", 0, "note events to print per track (0 = all)")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a MIDI file",
	Long:  `Prints the events of every track of a MIDI file, for example one written by export.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mf, err := midi.ReadMidiFile(args[0])
		cobra.CheckErr(err)
		if inspectFrom > 0 || inspectNotes > 0 {
			mf = midi.Excerpt(mf, inspectFrom, inspectNotes)
		}
		inspect(cmd.OutOrStdout(), mf)
	},
}

func inspect(w io.Writer, mf *smf.SMF) {
	fmt.Fprintf(w, "timeFormat: %v\n", mf.TimeFormat)
	for i, track := range mf.Tracks {
		fmt.Fprintf(w, "track: %v\n", i)
		var absTicks uint64
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			fmt.Fprintf(w, "  %v: %v\n", absTicks, evt.Message)
		}
	}
}
