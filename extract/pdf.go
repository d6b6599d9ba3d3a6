package extract

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// PDFReader extracts the native text layer from PDF files by parsing page
// content streams. It preserves line structure; downstream stages depend
// on seeing the same line breaks the page shows.
type PDFReader struct {
	conf *pdfmodel.Configuration
}

// NewPDFReader creates a PDFReader with the default pdfcpu configuration.
func NewPDFReader() *PDFReader {
	return &PDFReader{conf: pdfmodel.NewDefaultConfiguration()}
}

// Read extracts text from the PDF file at path.
func (r *PDFReader) Read(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ExtractionError{Source: path, Err: err}
	}
	defer f.Close()
	return r.ReadFrom(f, path)
}

// ReadFrom extracts text from a PDF read from rs. The source string is
// used in errors and metadata only.
//
// A scanned PDF with no text layer is not an error: the result carries
// zero pages and quality metrics whose NeedsOCR method reports true, so
// the caller can route the document through OCR instead.
func (r *PDFReader) ReadFrom(rs io.ReadSeeker, source string) (*Result, error) {
	ctx, err := api.ReadValidateAndOptimize(rs, r.conf)
	if err != nil {
		return nil, &ExtractionError{Source: source, Err: fmt.Errorf("pdf read: %w", err)}
	}

	hasImages := hasImageStreams(ctx)

	var pages []Page
	var all strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		text := pageText(ctx, pageNr)
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, Page{Index: pageNr - 1, Text: text})
		all.WriteString(text)
		all.WriteString("\n")
	}

	if len(pages) == 0 && !hasImages {
		return nil, &ExtractionError{Source: source, Err: ErrNoText}
	}

	return &Result{
		Pages:   pages,
		Quality: measureQuality(all.String(), ctx.PageCount, hasImages),
		Method:  "pdf",
	}, nil
}

// pageText extracts one page's text from its content stream. Extraction
// failures on a single page yield an empty page rather than failing the
// whole document.
func pageText(ctx *pdfmodel.Context, pageNr int) string {
	rd, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(rd)
	if err != nil || len(data) == 0 {
		return ""
	}
	return parseContentStream(data)
}

// hasImageStreams reports whether the PDF contains image XObjects.
func hasImageStreams(ctx *pdfmodel.Context) bool {
	if ctx.Optimize != nil {
		for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}

// literalString matches PDF string literals: (text here)
var literalString = regexp.MustCompile(`\(([^)]*)\)`)

// parseContentStream walks the content stream operators and reassembles
// page text. Text-showing operators (Tj, TJ, ') contribute content;
// positioning operators (Td, TD, T*) become line breaks.
func parseContentStream(data []byte) string {
	var sb strings.Builder

	appendShown := func(line []byte) {
		for _, m := range literalString.FindAllSubmatch(line, -1) {
			if text := decodeLiteral(m[1]); text != "" {
				sb.WriteString(text)
			}
		}
	}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			appendShown(line)
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			sb.WriteByte('\n')
			appendShown(line)
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")), bytes.Equal(line, []byte("T*")):
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

// decodeLiteral resolves the escape sequences a PDF string literal may
// contain, including octal character codes.
func decodeLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(c)
		default:
			if c < '0' || c > '7' {
				sb.WriteByte(c)
				break
			}
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}
