// Package model provides the intermediate representation (IR) for
// reconstructed document content.
//
// This package defines the user-facing data structures that represent the
// logical structure recovered from a flat stream of extracted text. All
// pipeline stages ultimately produce or refine these types, making them the
// primary API for consuming reconstructed content.
//
// # Document Structure
//
// The [Document] type is the root of the tree. It owns an ordered list of
// top-level [Section] values, each of which holds ordered [ContentBlock]
// values and optional nested subsections:
//
//	Document
//	└── Section (chapter)
//	    ├── ContentBlock (paragraph, list, or table)
//	    └── Section (subsection)
//	        └── ContentBlock
//
// # Lines
//
// A [Line] is the atomic unit produced by line normalization. Once
// classified, a line's raw content and role never change; the text
// corrector records its repairs in the Corrected overlay instead of
// rewriting the original. Content() returns the corrected text when
// present, falling back to the normalized text.
//
// # Tables
//
// A [Table] is the structured form of a run of table-row lines. All rows in
// one table hold the same number of cells; the recognizer pads short rows
// with empty strings to maintain this.
//
// # Correction Records
//
// [CorrectionRecord] values describe individual repairs made by the text
// corrector. They are ephemeral by default and retained only when auditing
// is requested.
package model
