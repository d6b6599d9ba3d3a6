// Package extract reads raw page text out of input sources: PDF files via
// pdfcpu content-stream parsing, plain text files, and page images via an
// OCR engine supplied by the caller.
//
// Each reader produces a Result holding per-page text plus quality
// metrics. The metrics exist so callers can decide when native PDF text
// is too poor to trust and an OCR pass over the page images is worth the
// cost.
package extract
