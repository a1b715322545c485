package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/vexvoice/duration"
	"github.com/spf13/cobra"
)

var withDots bool

func init() {
	classifyCmd.Flags().BoolVar(&withDots, "dots", false, "detect dotted durations")
	rootCmd.AddCommand(classifyCmd)
}

var classifyCmd = &cobra.Command{
	Use:   "classify <duration> <divisions>",
	Short: "Prints the note type of a duration",
	Long:  `Prints the vex note type for a duration given in divisions per quarter note.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		divisions, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		res, err := duration.Classify(d, divisions, withDots)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res)
		return nil
	},
}
