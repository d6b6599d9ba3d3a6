package structure

import (
	"fmt"

	"github.com/tsawler/recompose/model"
	"github.com/tsawler/recompose/tables"
)

// Config holds configuration options for the structure builder.
type Config struct {
	// MaxHeadingRun is the largest number of consecutive same-level
	// headings, with no body text between them, that is accepted as
	// genuine structure. Longer runs are demoted to body text.
	MaxHeadingRun int

	// UntitledTitle is the title given to the synthetic section created
	// when content appears before any heading, or when the document has
	// no headings at all.
	UntitledTitle string

	// TableConfig configures the table recognizer applied to runs of
	// table-row lines.
	TableConfig tables.Config
}

// DefaultConfig returns a configuration with sensible defaults for
// typical extracted documents.
func DefaultConfig() Config {
	return Config{
		MaxHeadingRun: 3,
		UntitledTitle: "Untitled",
		TableConfig:   tables.DefaultConfig(),
	}
}

// Builder assembles classified lines into a tree of sections.
type Builder struct {
	config Config
	tables *tables.Recognizer
}

// New creates a Builder with default configuration.
func New() *Builder {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a Builder with the given configuration.
func NewWithConfig(config Config) *Builder {
	return &Builder{
		config: config,
		tables: tables.NewWithConfig(config.TableConfig),
	}
}

// Build folds classified lines into sections. Level-1 headings open new
// top-level sections, level-2 headings open subsections of the current
// top-level section, and blank lines separate content blocks. Runs of
// table-row lines are passed to the table recognizer; runs it rejects are
// demoted to body text rather than dropped. The input slice is not
// modified.
func (b *Builder) Build(lines []model.Line) ([]*model.Section, []model.Warning) {
	work := make([]model.Line, len(lines))
	copy(work, lines)
	warnings := b.demoteHeadingRuns(work)

	var sections []*model.Section
	var top *model.Section     // most recent level-1 section
	var current *model.Section // section receiving blocks
	var block *model.ContentBlock

	// ensure returns the section new blocks belong to, creating a
	// synthetic top-level section when content precedes any heading.
	ensure := func() *model.Section {
		if current == nil {
			top = &model.Section{Title: b.config.UntitledTitle, Level: 1, Synthetic: true}
			sections = append(sections, top)
			current = top
		}
		return current
	}

	flush := func() {
		if block != nil && len(block.Lines) > 0 {
			ensure().AddBlock(*block)
		}
		block = nil
	}

	appendAs := func(line model.Line, role model.Role) {
		line.Role = role
		if block != nil && block.Role != role {
			flush()
		}
		if block == nil {
			block = &model.ContentBlock{Role: role}
		}
		block.Lines = append(block.Lines, line)
	}

	for i := 0; i < len(work); i++ {
		line := work[i]
		switch line.Role {
		case model.RoleBlank:
			flush()

		case model.RoleHeading1:
			flush()
			top = &model.Section{Title: line.Content(), Level: 1}
			sections = append(sections, top)
			current = top

		case model.RoleHeading2:
			flush()
			if top == nil {
				ensure()
			}
			sub := &model.Section{Title: line.Content(), Level: 2}
			top.Subsections = append(top.Subsections, sub)
			current = sub

		case model.RoleTableRow:
			run := tableRun(work, i)
			if tbl := b.tables.Recognize(run); tbl != nil {
				flush()
				ensure().AddBlock(model.ContentBlock{
					Role:  model.RoleTableRow,
					Lines: run,
					Table: tbl,
				})
			} else {
				warnings = append(warnings, model.Warning{
					Code:    "table-demoted",
					Message: fmt.Sprintf("run of %d table-like lines did not form a table; kept as body text", len(run)),
					Page:    run[0].Page,
				})
				for _, l := range run {
					appendAs(l, model.RoleBody)
				}
			}
			i += len(run) - 1

		case model.RoleListItem:
			appendAs(line, model.RoleListItem)

		default:
			appendAs(line, model.RoleBody)
		}
	}
	flush()

	return sections, warnings
}

// demoteHeadingRuns rewrites runs of more than MaxHeadingRun consecutive
// same-level headings, separated only by blank lines, back to body text.
// Such runs almost always come from misclassified short lines rather
// than real structure.
func (b *Builder) demoteHeadingRuns(lines []model.Line) []model.Warning {
	var warnings []model.Warning
	var run []int
	var runLevel model.Role

	flushRun := func() {
		if len(run) > b.config.MaxHeadingRun {
			for _, idx := range run {
				lines[idx].Role = model.RoleBody
			}
			warnings = append(warnings, model.Warning{
				Code:    "heading-run-demoted",
				Message: fmt.Sprintf("demoted %d consecutive headings with no body text between them", len(run)),
				Page:    lines[run[0]].Page,
			})
		}
		run = run[:0]
	}

	for i, line := range lines {
		switch line.Role {
		case model.RoleBlank:
			// Blank lines neither extend nor break a heading run.
		case model.RoleHeading1, model.RoleHeading2:
			if len(run) > 0 && line.Role != runLevel {
				flushRun()
			}
			runLevel = line.Role
			run = append(run, i)
		default:
			flushRun()
		}
	}
	flushRun()
	return warnings
}

// tableRun returns the consecutive table-row lines starting at index
// start. Any other role, including blank, ends the run.
func tableRun(lines []model.Line, start int) []model.Line {
	end := start
	for end < len(lines) && lines[end].Role == model.RoleTableRow {
		end++
	}
	run := make([]model.Line, end-start)
	copy(run, lines[start:end])
	return run
}
