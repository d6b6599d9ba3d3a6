// Package tables converts contiguous runs of table-row lines into
// structured row/column records.
//
// Column boundaries are recovered from whitespace: for each character
// column the recognizer votes across all rows on whether that column is
// blank, and maximal runs of majority-blank columns wider than the gap
// threshold become cell separators. Pipe-delimited rows are split on the
// pipes directly. Runs shorter than the minimum row count are rejected so
// a single stray line with gaps is never promoted to a table.
package tables
