package model

import "strings"

// ContentBlock is an ordered run of lines sharing a role, merged into one
// logical unit: a paragraph, a list, or a table. The block owns its lines.
type ContentBlock struct {
	// Role is the role shared by the block's constituent lines
	Role Role

	// Lines are the constituent lines in document order
	Lines []Line

	// Table is the structured form of a table-row run. Nil unless the
	// table recognizer promoted this block.
	Table *Table
}

// Text returns the block's content as a single string. Paragraph lines are
// joined with spaces; list items and table rows keep their line breaks.
func (b *ContentBlock) Text() string {
	if b.Table != nil {
		return b.Table.Text()
	}

	sep := " "
	if b.Role == RoleListItem || b.Role == RoleTableRow {
		sep = "\n"
	}

	var parts []string
	for i := range b.Lines {
		if c := b.Lines[i].Content(); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, sep)
}

// LineCount returns the number of lines owned by the block.
func (b *ContentBlock) LineCount() int {
	return len(b.Lines)
}

// IsTable returns true if the block was promoted to a structured table.
func (b *ContentBlock) IsTable() bool {
	return b.Table != nil
}
