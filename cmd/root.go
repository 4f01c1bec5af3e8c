package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "0.3.1"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "visatrans",
	Short: "Proper-noun-safe translation service for visa application text",
	Long: `visatrans translates Japanese applicant free text to English under a
strict "visa-strict" contract: registered proper nouns are protected with
placeholders and restored from a verified glossary, translation is
sentence-locked, and unregistered proper-noun candidates raise a
GREEN/YELLOW/RED risk signal.

Use "visatrans serve" to start the HTTP API, "visatrans translate" for a
one-shot CLI translation, and "visatrans glossary" to manage the
SQLite-backed vocabulary.`,
	Version: version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file path (YAML)")
}
