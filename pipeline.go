package recompose

import (
	"context"
	"fmt"

	"github.com/tsawler/recompose/classify"
	"github.com/tsawler/recompose/correct"
	"github.com/tsawler/recompose/export"
	"github.com/tsawler/recompose/extract"
	"github.com/tsawler/recompose/format"
	"github.com/tsawler/recompose/model"
	"github.com/tsawler/recompose/normalize"
	"github.com/tsawler/recompose/structure"
	"github.com/tsawler/recompose/wordlist"
)

// Pipeline provides a fluent interface for document reconstruction.
// Each configuration method returns a new Pipeline instance, making a
// configured pipeline safe to reuse and fork.
type Pipeline struct {
	// Source
	filename string
	source   string

	// Pre-supplied input (instead of a file)
	pages     []extract.Page
	havePages bool
	method    string
	images    [][]byte

	// OCR wiring for image input
	recognizer extract.TextRecognizer
	ctx        context.Context

	// Configuration
	options processOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Pipeline so configuration methods never
// mutate the receiver.
func (p *Pipeline) clone() *Pipeline {
	return &Pipeline{
		filename:   p.filename,
		source:     p.source,
		pages:      p.pages,
		havePages:  p.havePages,
		method:     p.method,
		images:     p.images,
		recognizer: p.recognizer,
		ctx:        p.ctx,
		options:    p.options.clone(),
		err:        p.err,
	}
}

// ============================================================================
// Configuration methods (return a new Pipeline instance)
// ============================================================================

// Stage limits processing to the given stage. The default is
// StageProcessed, the full pipeline.
//
// Example:
//
//	lines, _, err := recompose.Open("book.pdf").Stage(recompose.StageLines).Lines()
func (p *Pipeline) Stage(stage Stage) *Pipeline {
	np := p.clone()
	np.options.stage = stage
	return np
}

// WithWordList replaces the built-in word list used to confirm text
// repairs. A nil list disables dictionary-gated corrections.
//
// Example:
//
//	words, err := wordlist.Load("/usr/share/dict/words")
//	text, _, err := recompose.Open("book.pdf").WithWordList(words).Text()
func (p *Pipeline) WithWordList(words *wordlist.List) *Pipeline {
	np := p.clone()
	np.options.words = words
	return np
}

// KeepCorrectionRecords retains an audit record for every text repair,
// available afterwards through CorrectionRecords.
func (p *Pipeline) KeepCorrectionRecords() *Pipeline {
	np := p.clone()
	np.options.keepRecords = true
	return np
}

// WithRecognizer supplies the OCR text recognizer used for image input.
func (p *Pipeline) WithRecognizer(recognizer extract.TextRecognizer) *Pipeline {
	np := p.clone()
	np.recognizer = recognizer
	return np
}

// WithContext attaches a context to the pipeline's blocking work
// (currently OCR). Without it, context.Background is used.
func (p *Pipeline) WithContext(ctx context.Context) *Pipeline {
	np := p.clone()
	np.ctx = ctx
	return np
}

// NormalizeConfig overrides the line normalizer configuration.
func (p *Pipeline) NormalizeConfig(config normalize.Config) *Pipeline {
	np := p.clone()
	np.options.normalize = config
	return np
}

// ClassifyConfig overrides the line classifier configuration.
func (p *Pipeline) ClassifyConfig(config classify.Config) *Pipeline {
	np := p.clone()
	np.options.classify = config
	return np
}

// StructureConfig overrides the structure builder configuration.
func (p *Pipeline) StructureConfig(config structure.Config) *Pipeline {
	np := p.clone()
	np.options.structure = config
	return np
}

// CorrectConfig overrides the text corrector configuration. KeepRecords
// is still forced on by KeepCorrectionRecords.
func (p *Pipeline) CorrectConfig(config correct.Config) *Pipeline {
	np := p.clone()
	np.options.correct = config
	return np
}

// ExportConfig overrides the exporter configuration used by the output
// terminals.
func (p *Pipeline) ExportConfig(config export.Config) *Pipeline {
	np := p.clone()
	np.options.export = config
	return np
}

// ============================================================================
// Terminal operations
// ============================================================================

// Lines runs the pipeline through classification and returns the
// classified lines.
//
// Example:
//
//	lines, warnings, err := recompose.Open("book.pdf").Lines()
//	for _, line := range lines {
//	    fmt.Printf("[%s] %s\n", line.Role, line.Content())
//	}
func (p *Pipeline) Lines() ([]model.Line, []Warning, error) {
	res, err := p.run(StageLines)
	if err != nil {
		return nil, nil, err
	}
	return res.lines, res.warnings, nil
}

// Document runs the pipeline and returns the reconstructed document. If
// the pipeline's stage is StageLines it is raised to StageChapters; a
// document requires at least a built section tree.
//
// Example:
//
//	doc, warnings, err := recompose.Open("book.pdf").Document()
func (p *Pipeline) Document() (*model.Document, []Warning, error) {
	res, err := p.run(StageChapters)
	if err != nil {
		return nil, nil, err
	}
	return res.doc, res.warnings, nil
}

// Text runs the pipeline and returns plain text output.
func (p *Pipeline) Text() (string, []Warning, error) {
	return p.exportAs(export.FormatText)
}

// Markdown runs the pipeline and returns Markdown output.
func (p *Pipeline) Markdown() (string, []Warning, error) {
	return p.exportAs(export.FormatMarkdown)
}

// JSON runs the pipeline and returns the document tree as JSON.
func (p *Pipeline) JSON() (string, []Warning, error) {
	return p.exportAs(export.FormatJSON)
}

// YAML runs the pipeline and returns the document tree as YAML.
func (p *Pipeline) YAML() (string, []Warning, error) {
	return p.exportAs(export.FormatYAML)
}

// Export runs the pipeline and returns output in the given format.
func (p *Pipeline) Export(format export.Format) (string, []Warning, error) {
	return p.exportAs(format)
}

// CorrectionRecords runs the full pipeline with auditing on and returns
// the repairs the text corrector made.
//
// Example:
//
//	records, _, err := recompose.Open("scan.pdf").CorrectionRecords()
//	for _, rec := range records {
//	    fmt.Println(rec)
//	}
func (p *Pipeline) CorrectionRecords() ([]model.CorrectionRecord, []Warning, error) {
	res, err := p.KeepCorrectionRecords().run(StageProcessed)
	if err != nil {
		return nil, nil, err
	}
	return res.records, res.warnings, nil
}

// Stats runs the pipeline and returns structure statistics for the
// reconstructed document.
func (p *Pipeline) Stats() (model.Stats, error) {
	doc, _, err := p.Document()
	if err != nil {
		return model.Stats{}, err
	}
	return doc.Stats(), nil
}

// ============================================================================
// Internal pipeline
// ============================================================================

type runResult struct {
	lines    []model.Line
	doc      *model.Document
	records  []model.CorrectionRecord
	warnings []Warning
}

// run executes the pipeline up to the configured stage, raised to
// minStage when a terminal needs more processing than was configured.
func (p *Pipeline) run(minStage Stage) (*runResult, error) {
	if p.err != nil {
		return nil, p.err
	}
	stage := p.options.stage
	if stage < minStage {
		stage = minStage
	}

	res := &runResult{}

	pages, method, warnings, err := p.load()
	if err != nil {
		return nil, err
	}
	res.warnings = warnings

	pageTexts := make([]normalize.PageText, len(pages))
	for i, pg := range pages {
		pageTexts[i] = normalize.PageText{Index: pg.Index, Text: pg.Text}
	}

	lines := normalize.NewWithConfig(p.options.normalize).Normalize(pageTexts)
	if !hasContent(lines) {
		return nil, fmt.Errorf("%s: %w", p.sourceName(), ErrNoText)
	}

	lines = classify.NewWithConfig(p.options.classify, p.options.words).Classify(lines)
	res.lines = lines
	if stage == StageLines {
		return res, nil
	}

	sections, structWarnings := structure.NewWithConfig(p.options.structure).Build(lines)
	res.warnings = append(res.warnings, structWarnings...)

	doc := model.NewDocument(p.sourceName(), method)
	for _, sec := range sections {
		doc.AddSection(sec)
	}
	res.doc = doc
	if stage == StageChapters {
		return res, nil
	}

	correctConfig := p.options.correct
	if p.options.keepRecords {
		correctConfig.KeepRecords = true
	}
	res.records = correct.NewWithConfig(p.options.words, correctConfig).Correct(doc)
	return res, nil
}

// load acquires the input pages from whichever source the pipeline was
// built with.
func (p *Pipeline) load() ([]extract.Page, string, []Warning, error) {
	if p.havePages {
		return p.pages, p.method, nil, nil
	}

	if p.images != nil {
		if p.recognizer == nil {
			return nil, "", nil, fmt.Errorf("image input requires a text recognizer; use WithRecognizer")
		}
		ctx := p.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		result, err := extract.NewOCRReader(p.recognizer).ReadImages(ctx, p.images)
		if err != nil {
			return nil, "", nil, err
		}
		return result.Pages, result.Method, nil, nil
	}

	if p.filename == "" {
		return nil, "", nil, fmt.Errorf("no input specified")
	}

	detected, err := format.DetectFile(p.filename)
	if err != nil {
		return nil, "", nil, err
	}
	if detected.IsImage() {
		return nil, "", nil, fmt.Errorf("%s is a page image; use FromImages with a text recognizer", p.filename)
	}

	var result *extract.Result
	if detected == format.PDF {
		result, err = extract.NewPDFReader().Read(p.filename)
	} else {
		result, err = extract.NewTextReader().Read(p.filename)
	}
	if err != nil {
		return nil, "", nil, err
	}

	var warnings []Warning
	if result.Quality.NeedsOCR() {
		warnings = append(warnings, Warning{
			Code:    "needs-ocr",
			Message: "extracted text quality is low; the source looks scanned and may need OCR",
			Page:    -1,
		})
	}
	return result.Pages, result.Method, warnings, nil
}

func (p *Pipeline) exportAs(format export.Format) (string, []Warning, error) {
	res, err := p.run(StageChapters)
	if err != nil {
		return "", nil, err
	}
	out, err := export.NewWithConfig(p.options.export).ExportToString(res.doc, format)
	if err != nil {
		return "", res.warnings, err
	}
	return out, res.warnings, nil
}

func (p *Pipeline) sourceName() string {
	if p.filename != "" {
		return p.filename
	}
	if p.source != "" {
		return p.source
	}
	return "input"
}

func hasContent(lines []model.Line) bool {
	for i := range lines {
		if !lines[i].IsBlank() {
			return true
		}
	}
	return false
}
