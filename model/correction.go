package model

import "fmt"

// CorrectionRecord describes one repair made by the text corrector:
// the original span, its replacement, and the rule that fired. Records are
// ephemeral and discarded after processing unless auditing was requested.
type CorrectionRecord struct {
	// Rule names the repair pass that fired ("dehyphenate",
	// "spaced-word", "ocr-confusion", "whitespace")
	Rule string

	// Original is the text before the repair
	Original string

	// Corrected is the text after the repair
	Corrected string

	// Page and Line locate the repair in the normalized line stream
	Page int
	Line int
}

// String returns a compact human-readable form of the record.
func (r CorrectionRecord) String() string {
	return fmt.Sprintf("%s p%d:%d %q -> %q", r.Rule, r.Page, r.Line, r.Original, r.Corrected)
}

// Warning reports a non-fatal condition noticed during processing, such as
// a structural ambiguity resolved by fallback classification. Warnings
// never abort a run.
type Warning struct {
	// Code identifies the warning category
	Code string

	// Message describes what happened
	Message string

	// Page is the 0-based page index, or -1 when not page-specific
	Page int
}

// String returns the warning in "code: message" form.
func (w Warning) String() string {
	if w.Page >= 0 {
		return fmt.Sprintf("%s (page %d): %s", w.Code, w.Page+1, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}
