package cmd

import (
	"encoding/json"
	"io"

	"github.com/jsphweid/vexvoice/mxml"
	"github.com/jsphweid/vexvoice/score"
	"github.com/jsphweid/vexvoice/util"
	"github.com/spf13/cobra"
)

var staveWidth float64

func init() {
	voicesCmd.Flags().Float64Var(&staveWidth, "stave-width", score.DefaultOptions().StaveWidth, "width of one measure")
	rootCmd.AddCommand(voicesCmd)
}

var voicesCmd = &cobra.Command{
	Use:   "voices <file.musicxml>",
	Short: "Prints the voices of a MusicXML file",
	Long:  `Prints the formatted voices of every measure of a MusicXML file as JSON.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := score.DefaultOptions()
		opts.StaveWidth = staveWidth
		s := loadScore(args[0], opts)
		cobra.CheckErr(writeSummary(cmd.OutOrStdout(), s))
	},
}

func renderReader(r io.Reader, opts score.Options) (*score.Score, error) {
	doc, err := mxml.Decode(r)
	if err != nil {
		return nil, err
	}
	return score.Render(doc, opts)
}

func loadScore(path string, opts score.Options) *score.Score {
	f := util.OpenFileOrPanic(path)
	defer f.Close()
	s, err := renderReader(f, opts)
	if err != nil {
		panic("Could not render " + path + ": " + err.Error())
	}
	return s
}

func writeSummary(w io.Writer, s *score.Score) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(s.Summary())
}
