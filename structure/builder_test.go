package structure

import (
	"strings"
	"testing"

	"github.com/tsawler/recompose/model"
)

func line(text string, role model.Role) model.Line {
	return model.Line{Raw: text, Text: strings.Join(strings.Fields(text), " "), Role: role}
}

func TestBuildSectionsAndSubsections(t *testing.T) {
	lines := []model.Line{
		line("Chapter 1: Beginnings", model.RoleHeading1),
		line("The first paragraph.", model.RoleBody),
		line("", model.RoleBlank),
		line("1.1 Details", model.RoleHeading2),
		line("Subsection text.", model.RoleBody),
	}

	builder := New()
	sections, warnings := builder.Build(lines)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	sec := sections[0]
	if sec.Title != "Chapter 1: Beginnings" {
		t.Errorf("title = %q, want %q", sec.Title, "Chapter 1: Beginnings")
	}
	if sec.Synthetic {
		t.Error("section with explicit heading marked synthetic")
	}
	if len(sec.Blocks) != 1 {
		t.Errorf("got %d blocks in top section, want 1", len(sec.Blocks))
	}
	if len(sec.Subsections) != 1 {
		t.Fatalf("got %d subsections, want 1", len(sec.Subsections))
	}
	sub := sec.Subsections[0]
	if sub.Title != "1.1 Details" {
		t.Errorf("subsection title = %q, want %q", sub.Title, "1.1 Details")
	}
	if len(sub.Blocks) != 1 {
		t.Errorf("got %d blocks in subsection, want 1", len(sub.Blocks))
	}
}

func TestBuildNoHeadingsCreatesSyntheticSection(t *testing.T) {
	lines := []model.Line{
		line("Just some prose with no structure.", model.RoleBody),
		line("", model.RoleBlank),
		line("Another paragraph.", model.RoleBody),
	}

	sections, _ := New().Build(lines)

	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	sec := sections[0]
	if !sec.Synthetic {
		t.Error("fallback section not marked synthetic")
	}
	if sec.Title != "Untitled" {
		t.Errorf("title = %q, want %q", sec.Title, "Untitled")
	}
	if len(sec.Blocks) != 2 {
		t.Errorf("got %d blocks, want 2", len(sec.Blocks))
	}
}

func TestBuildSubsectionBeforeAnyHeading(t *testing.T) {
	lines := []model.Line{
		line("1.1 Orphan Subsection", model.RoleHeading2),
		line("Text under the orphan.", model.RoleBody),
	}

	sections, _ := New().Build(lines)

	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(sections))
	}
	if !sections[0].Synthetic {
		t.Error("implicit parent section not marked synthetic")
	}
	if len(sections[0].Subsections) != 1 {
		t.Fatalf("got %d subsections, want 1", len(sections[0].Subsections))
	}
	if got := sections[0].Subsections[0].Title; got != "1.1 Orphan Subsection" {
		t.Errorf("subsection title = %q, want %q", got, "1.1 Orphan Subsection")
	}
}

func TestBuildBlankLinesSeparateBlocks(t *testing.T) {
	lines := []model.Line{
		line("First paragraph line one.", model.RoleBody),
		line("First paragraph line two.", model.RoleBody),
		line("", model.RoleBlank),
		line("Second paragraph.", model.RoleBody),
	}

	sections, _ := New().Build(lines)

	blocks := sections[0].Blocks
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if got := len(blocks[0].Lines); got != 2 {
		t.Errorf("first block has %d lines, want 2", got)
	}
}

func TestBuildRoleChangeSeparatesBlocks(t *testing.T) {
	lines := []model.Line{
		line("Intro paragraph.", model.RoleBody),
		line("- first item", model.RoleListItem),
		line("- second item", model.RoleListItem),
		line("Closing paragraph.", model.RoleBody),
	}

	sections, _ := New().Build(lines)

	blocks := sections[0].Blocks
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	if blocks[1].Role != model.RoleListItem {
		t.Errorf("middle block role = %v, want %v", blocks[1].Role, model.RoleListItem)
	}
	if got := len(blocks[1].Lines); got != 2 {
		t.Errorf("list block has %d lines, want 2", got)
	}
}

func TestBuildRecognizesTableRun(t *testing.T) {
	lines := []model.Line{
		line("Chapter 1", model.RoleHeading1),
		line("Name    Age    City", model.RoleTableRow),
		line("Alice   30     NYC", model.RoleTableRow),
		line("Bob     25     LA", model.RoleTableRow),
	}

	sections, warnings := New().Build(lines)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	blocks := sections[0].Blocks
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	if !blocks[0].IsTable() {
		t.Fatal("table run did not produce a table block")
	}
	tbl := blocks[0].Table
	if tbl.RowCount() != 3 || tbl.ColCount() != 3 {
		t.Errorf("table is %dx%d, want 3x3", tbl.RowCount(), tbl.ColCount())
	}
	if got := tbl.Cell(1, 0); got != "Alice" {
		t.Errorf("cell(1,0) = %q, want %q", got, "Alice")
	}
}

func TestBuildDemotesUnrecognizedTableRun(t *testing.T) {
	lines := []model.Line{
		line("Before the stray row.", model.RoleBody),
		line("lonely    row", model.RoleTableRow),
		line("After the stray row.", model.RoleBody),
	}

	sections, warnings := New().Build(lines)

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Code != "table-demoted" {
		t.Errorf("warning code = %q, want %q", warnings[0].Code, "table-demoted")
	}
	blocks := sections[0].Blocks
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1 merged body block", len(blocks))
	}
	if blocks[0].IsTable() {
		t.Error("demoted run still produced a table block")
	}
	if got := len(blocks[0].Lines); got != 3 {
		t.Errorf("merged body block has %d lines, want 3", got)
	}
}

func TestBuildDemotesLongHeadingRuns(t *testing.T) {
	lines := []model.Line{
		line("One", model.RoleHeading1),
		line("Two", model.RoleHeading1),
		line("Three", model.RoleHeading1),
		line("Four", model.RoleHeading1),
		line("Five", model.RoleHeading1),
	}

	sections, warnings := New().Build(lines)

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].Code != "heading-run-demoted" {
		t.Errorf("warning code = %q, want %q", warnings[0].Code, "heading-run-demoted")
	}
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1 synthetic section", len(sections))
	}
	if !sections[0].Synthetic {
		t.Error("demoted run should land in a synthetic section")
	}
	if got := len(sections[0].Blocks); got != 1 {
		t.Fatalf("got %d blocks, want 1", got)
	}
	if got := len(sections[0].Blocks[0].Lines); got != 5 {
		t.Errorf("demoted block has %d lines, want 5", got)
	}
}

func TestBuildKeepsShortHeadingRuns(t *testing.T) {
	lines := []model.Line{
		line("Chapter 1", model.RoleHeading1),
		line("Chapter 2", model.RoleHeading1),
		line("Body under chapter two.", model.RoleBody),
	}

	sections, warnings := New().Build(lines)

	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if got := len(sections[1].Blocks); got != 1 {
		t.Errorf("second section has %d blocks, want 1", got)
	}
}

func TestBuildPreservesAllContent(t *testing.T) {
	lines := []model.Line{
		line("Chapter 1", model.RoleHeading1),
		line("Alpha beta gamma.", model.RoleBody),
		line("", model.RoleBlank),
		line("stray   columns", model.RoleTableRow),
		line("- delta item", model.RoleListItem),
		line("1.1 Epsilon", model.RoleHeading2),
		line("Zeta eta theta.", model.RoleBody),
	}

	sections, _ := New().Build(lines)

	var out strings.Builder
	var walk func(sec *model.Section)
	walk = func(sec *model.Section) {
		out.WriteString(sec.Title)
		out.WriteString("\n")
		for _, blk := range sec.Blocks {
			out.WriteString(blk.Text())
			out.WriteString("\n")
		}
		for _, sub := range sec.Subsections {
			walk(sub)
		}
	}
	for _, sec := range sections {
		walk(sec)
	}
	text := out.String()

	for _, want := range []string{
		"Chapter 1",
		"Alpha beta gamma.",
		"stray columns",
		"- delta item",
		"1.1 Epsilon",
		"Zeta eta theta.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestBuildDoesNotModifyInput(t *testing.T) {
	lines := []model.Line{
		line("One", model.RoleHeading1),
		line("Two", model.RoleHeading1),
		line("Three", model.RoleHeading1),
		line("Four", model.RoleHeading1),
	}

	New().Build(lines)

	for i, l := range lines {
		if l.Role != model.RoleHeading1 {
			t.Errorf("input line %d role changed to %v", i, l.Role)
		}
	}
}
