// Package correct repairs common extraction artifacts in a built document:
// words split across lines by end-of-line hyphenation, words shattered
// into individual letters by wide glyph spacing, character sequences OCR
// commonly confuses, and stray whitespace around punctuation.
//
// Every pass is conservative. A fix is only applied when a word list
// confirms the repaired form, so correct text is never altered; running
// the corrector twice produces the same document as running it once.
// Original line text is always retained alongside the corrected form.
package correct
