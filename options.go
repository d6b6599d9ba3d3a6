package recompose

import (
	"github.com/tsawler/recompose/classify"
	"github.com/tsawler/recompose/correct"
	"github.com/tsawler/recompose/export"
	"github.com/tsawler/recompose/normalize"
	"github.com/tsawler/recompose/structure"
	"github.com/tsawler/recompose/wordlist"
)

// Stage identifies how far through the pipeline processing runs.
type Stage int

const (
	// StageLines stops after normalization and line classification
	StageLines Stage = iota

	// StageChapters stops after the section tree is built, before text
	// correction
	StageChapters

	// StageProcessed runs the full pipeline including text correction
	StageProcessed
)

// String returns a string representation of the stage.
func (s Stage) String() string {
	switch s {
	case StageLines:
		return "lines"
	case StageChapters:
		return "chapters"
	case StageProcessed:
		return "processed"
	default:
		return "unknown"
	}
}

// processOptions holds the pipeline's full configuration.
type processOptions struct {
	stage       Stage
	words       *wordlist.List
	keepRecords bool

	normalize normalize.Config
	classify  classify.Config
	structure structure.Config
	correct   correct.Config
	export    export.Config
}

// defaultOptions returns the default pipeline configuration: full
// processing with the built-in word list.
func defaultOptions() processOptions {
	return processOptions{
		stage:     StageProcessed,
		words:     wordlist.Default(),
		normalize: normalize.DefaultConfig(),
		classify:  classify.DefaultConfig(),
		structure: structure.DefaultConfig(),
		correct:   correct.DefaultConfig(),
		export:    export.DefaultConfig(),
	}
}

// clone creates a copy of processOptions. The word list is shared; it is
// read-only by contract.
func (o processOptions) clone() processOptions {
	return o
}
