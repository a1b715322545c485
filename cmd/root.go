package cmd

import (
	"github.com/jsphweid/vexvoice/constants"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vexvoice",
	Short: "MusicXML notes to stave voices",
	Long:  `Turns MusicXML note streams into staff-bound voices ready for layout.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := log.ParseLevel(constants.GetLogLevel())
		if err != nil {
			log.Warnf("Unknown LOG_LEVEL %q, using info", constants.GetLogLevel())
			level = log.InfoLevel
		}
		log.SetLevel(level)
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
