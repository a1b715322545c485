package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/vexvoice/score"
	"github.com/jsphweid/vexvoice/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var maxFiles int

func init() {
	reportCmd.Flags().IntVar(&maxFiles, "max", 0, "stop after this many files (0 = all)")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <dir>",
	Short: "Creates a report",
	Long:  `Renders every MusicXML file below a directory and reports voice statistics.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		paths, err := util.GatherAllMusicXMLPaths(args[0], maxFiles)
		cobra.CheckErr(err)
		report(cmd.OutOrStdout(), paths)
	},
}

type filesReport struct {
	numFiles   int
	numFailed  int
	stats      score.Stats
	ghostShare float32
}

func analyzeFiles(paths []string) filesReport {
	var res filesReport
	for i, path := range paths {
		log.Debugf("Processing %v of %v files", i+1, len(paths))
		f, err := os.Open(path)
		if err != nil {
			log.WithField("path", path).Warn("Skipping: ", err)
			res.numFailed += 1
			continue
		}
		s, err := renderReader(f, score.DefaultOptions())
		f.Close()
		if err != nil {
			log.WithField("path", path).Warn("Skipping: ", err)
			res.numFailed += 1
			continue
		}

		res.numFiles += 1
		stats := s.Stats()
		res.stats.Measures += stats.Measures
		res.stats.Voices += stats.Voices
		res.stats.StaffGroups += stats.StaffGroups
		res.stats.Notes += stats.Notes
		res.stats.Rests += stats.Rests
		res.stats.GhostRests += stats.GhostRests
		res.stats.Warnings += stats.Warnings
	}

	tickables := util.Sum([]int{res.stats.Notes, res.stats.Rests, res.stats.GhostRests})
	if tickables > 0 {
		res.ghostShare = float32(res.stats.GhostRests) / float32(tickables)
	}
	return res
}

func report(w io.Writer, paths []string) {
	r := analyzeFiles(paths)
	fmt.Fprintf(w, "numFiles: %v\n", r.numFiles)
	fmt.Fprintf(w, "numFailed: %v\n", r.numFailed)
	fmt.Fprintf(w, "measures: %v\n", r.stats.Measures)
	fmt.Fprintf(w, "voices: %v\n", r.stats.Voices)
	fmt.Fprintf(w, "staffGroups: %v\n", r.stats.StaffGroups)
	fmt.Fprintf(w, "notes: %v\n", r.stats.Notes)
	fmt.Fprintf(w, "rests: %v\n", r.stats.Rests)
	fmt.Fprintf(w, "ghostRests: %v\n", r.stats.GhostRests)
	fmt.Fprintf(w, "ghostShare: %v\n", r.ghostShare)
	fmt.Fprintf(w, "warnings: %v\n", r.stats.Warnings)
}
