// Package cmd implements the armychat command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "armychat",
	Short: "Army personnel records chatbot",
	Long: `armychat answers natural-language questions about army personnel
records: officer details, family, education and awards, counts and
listings, with optional Excel/Word/PDF export of the results.

Run "armychat serve" to start the HTTP API, or "armychat ask" for a
one-shot query from the terminal.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}
