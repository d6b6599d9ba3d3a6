// Package structure assembles classified lines into a section tree. It
// folds heading lines into sections and subsections, groups the lines
// between them into content blocks, hands runs of table rows to the table
// recognizer, and repairs over-eager heading classification by demoting
// long runs of headings that carry no body text between them.
//
// A document with no headings at all still produces one synthetic
// top-level section so downstream consumers always see a uniform tree.
package structure
