package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aodash",
	Short: "Personal trading dashboard for pasted closed-positions pages",
	Long: `aodash turns the closed-positions page of a trading platform into
summary statistics and chart series.

It provides:
  - parse: run the extraction pipeline on a saved HTML file, offline
  - serve: start the HTTP API the web dashboard talks to`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}
