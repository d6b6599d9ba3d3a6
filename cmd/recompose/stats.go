package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Print structure statistics for a reconstructed document",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	pipeline, err := buildPipeline(args[0])
	if err != nil {
		return err
	}

	doc, warnings, err := pipeline.Document()
	if err != nil {
		return err
	}
	reportWarnings(warnings)

	stats := doc.Stats()
	fmt.Printf("source:       %s\n", doc.Metadata.Source)
	fmt.Printf("method:       %s\n", doc.Metadata.Method)
	fmt.Printf("sections:     %d\n", stats.SectionCount)
	fmt.Printf("blocks:       %d\n", stats.BlockCount)
	fmt.Printf("lines:        %d\n", stats.LineCount)
	fmt.Printf("tables:       %d\n", stats.TableCount)
	fmt.Printf("avg line len: %.1f\n", stats.AvgLineLength)
	return nil
}
