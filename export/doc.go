// Package export serializes a reconstructed document into its output
// formats: plain text, Markdown, JSON, and YAML.
//
// The structured formats render a stable view of the document tree with
// lowercase field names, so output can be consumed by other tools without
// depending on internal model types. Exports never mutate the document;
// the same document may be exported to several formats in any order.
package export
