package model

import "strings"

// Role classifies the structural function of a line.
type Role int

const (
	RoleUnclassified Role = iota
	RoleHeading1          // Chapter-level heading
	RoleHeading2          // Section-level heading
	RoleBody              // Ordinary paragraph text
	RoleTableRow          // One row of a tabular run
	RoleListItem          // Bulleted or numbered list item
	RoleBlank             // Empty after whitespace collapsing; paragraph separator
)

// String returns a string representation of the role.
func (r Role) String() string {
	switch r {
	case RoleHeading1:
		return "heading-1"
	case RoleHeading2:
		return "heading-2"
	case RoleBody:
		return "body"
	case RoleTableRow:
		return "table-row"
	case RoleListItem:
		return "list-item"
	case RoleBlank:
		return "blank"
	default:
		return "unclassified"
	}
}

// IsHeading returns true for heading roles of any level.
func (r Role) IsHeading() bool {
	return r == RoleHeading1 || r == RoleHeading2
}

// Line is a single logical line recovered from page text.
//
// Raw preserves the original spacing as extracted; the table recognizer
// reads it to locate column gaps. Text is the whitespace-collapsed form
// used everywhere else. Corrected is set by the text corrector and takes
// precedence over Text when reading content.
type Line struct {
	// Raw is the line as extracted, spacing preserved
	Raw string

	// Text is the normalized content (runs of whitespace collapsed)
	Text string

	// Corrected is the repaired content overlay; empty until the
	// text corrector has run
	Corrected string

	// Page is the 0-based page index the line came from
	Page int

	// Index is the line's sequence position within its page
	Index int

	// Role is the classified structural role
	Role Role

	// Confidence is the classification confidence (0-1)
	Confidence float64

	// Absorbed marks a continuation line whose content was merged into
	// the previous line by de-hyphenation. The line stays in its block
	// but contributes no content of its own.
	Absorbed bool
}

// Content returns the corrected text when present, the normalized text
// otherwise. Absorbed lines contribute nothing.
func (l *Line) Content() string {
	if l.Absorbed {
		return ""
	}
	if l.Corrected != "" {
		return l.Corrected
	}
	return l.Text
}

// IsBlank returns true if the line carries no content.
func (l *Line) IsBlank() bool {
	return l.Role == RoleBlank || strings.TrimSpace(l.Text) == ""
}

// Words returns the whitespace-separated tokens of the line's content.
func (l *Line) Words() []string {
	return strings.Fields(l.Content())
}
