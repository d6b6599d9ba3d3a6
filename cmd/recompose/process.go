package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/recompose"
	"github.com/tsawler/recompose/export"
	"github.com/tsawler/recompose/wordlist"
)

var (
	flagFormat     string
	flagOut        string
	flagStage      string
	flagNoMetadata bool
	flagRecords    bool
)

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Run the full reconstruction pipeline on a file",
	Long: `Process reads a PDF or plain-text file, rebuilds its structure, repairs
extraction artifacts, and writes the result in the requested format.

Examples:
  recompose process book.pdf
  recompose process book.pdf --format markdown --out book.md
  recompose process dump.txt --format json
  recompose process book.pdf --stage chapters`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "output format: text, markdown, json, or yaml")
	processCmd.Flags().StringVarP(&flagOut, "out", "o", "", "output file (default: stdout)")
	processCmd.Flags().StringVar(&flagStage, "stage", "processed", "stop after stage: lines, chapters, or processed")
	processCmd.Flags().BoolVar(&flagNoMetadata, "no-metadata", false, "omit document metadata from JSON and YAML output")
	processCmd.Flags().BoolVar(&flagRecords, "records", false, "print text repair records to stderr")
}

func runProcess(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	stage, err := parseStage(flagStage)
	if err != nil {
		return err
	}

	pipeline, err := buildPipeline(args[0])
	if err != nil {
		return err
	}
	pipeline = pipeline.Stage(stage)

	exportConfig := export.DefaultConfig()
	exportConfig.IncludeMetadata = !flagNoMetadata
	pipeline = pipeline.ExportConfig(exportConfig)

	if flagRecords {
		pipeline = pipeline.KeepCorrectionRecords()
		records, _, err := pipeline.CorrectionRecords()
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Fprintln(os.Stderr, rec)
		}
	}

	out, warnings, err := pipeline.Export(format)
	if err != nil {
		return err
	}
	reportWarnings(warnings)

	if flagOut == "" {
		fmt.Print(out)
		return nil
	}
	if err := os.WriteFile(flagOut, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", flagOut)
	return nil
}

// buildPipeline creates a pipeline for the given file, applying the
// persistent flags shared by all commands.
func buildPipeline(filename string) (*recompose.Pipeline, error) {
	pipeline := recompose.Open(filename)
	if flagWordlist != "" {
		words, err := wordlist.Load(flagWordlist)
		if err != nil {
			return nil, err
		}
		pipeline = pipeline.WithWordList(words)
	}
	return pipeline, nil
}

func parseStage(name string) (recompose.Stage, error) {
	switch name {
	case "lines":
		return recompose.StageLines, nil
	case "chapters":
		return recompose.StageChapters, nil
	case "processed":
		return recompose.StageProcessed, nil
	}
	return 0, fmt.Errorf("unknown stage %q (want lines, chapters, or processed)", name)
}

func reportWarnings(warnings []recompose.Warning) {
	if flagQuiet || len(warnings) == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "warnings: %s\n", recompose.FormatWarnings(warnings))
}
