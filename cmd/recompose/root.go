package main

import (
	"github.com/spf13/cobra"
)

var (
	flagWordlist string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "recompose",
	Short: "Reconstruct structured documents from extracted PDF text",
	Long: `Recompose rebuilds document structure from the flat text that PDF
extraction and OCR produce.

The pipeline includes:
  - Line normalization with header/footer removal
  - Structural role classification (headings, body, lists, table rows)
  - Chapter and section tree reconstruction with table recognition
  - Conservative text repair (split words, OCR character confusions)
  - Export to plain text, Markdown, JSON, or YAML`,
	SilenceUsage: true,
	Version:      version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&flagWordlist, "wordlist", "", "word list file, one word per line (default: built-in)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&flagQuiet, "quiet", "q", false, "suppress processing warnings",
	)

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}
