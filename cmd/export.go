package cmd

import (
	"os"

	"github.com/jsphweid/vexvoice/midi"
	"github.com/jsphweid/vexvoice/score"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var bpm float64

func init() {
	exportCmd.Flags().Float64Var(&bpm, "bpm", midi.DefaultExportOptions().BPM, "tempo of the exported file")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file.musicxml> <out.mid>",
	Short: "Exports voices as MIDI",
	Long:  `Renders a MusicXML file into voices and writes them as a standard MIDI file.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		s := loadScore(args[0], score.DefaultOptions())

		f, err := os.Create(args[1])
		if err != nil {
			panic("Couldn't create file: " + err.Error())
		}
		defer f.Close()

		opts := midi.DefaultExportOptions()
		opts.BPM = bpm
		cobra.CheckErr(midi.Export(s, f, opts))
		log.WithFields(log.Fields{"in": args[0], "out": args[1]}).Info("Exported")
	},
}
