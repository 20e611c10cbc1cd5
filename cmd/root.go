package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sensorsgen",
	Short: "sensorsgen generates sensors analytics tracking calls from comment directives",
	Long:  "sensorsgen reads //sensors: directives on the functions of your program and splices the matching analytics calls into their bodies",
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
