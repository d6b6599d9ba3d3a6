// Package wordlist provides the read-only reference word list used by the
// text corrector and structure analyzer to confirm repairs.
//
// A [List] is loaded once, typically at process start, and never mutated
// afterwards, so a single instance may be shared by any number of
// concurrent pipeline runs. A nil *List is valid everywhere one is
// accepted: lookups simply report every token as unknown, which degrades
// dictionary-gated corrections to conservative no-ops.
package wordlist

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// List is a set-like lookup of known words. Lookups are case-insensitive.
// The zero value is an empty list.
type List struct {
	words map[string]struct{}
}

// FromSlice builds a list from the given words.
func FromSlice(words []string) *List {
	l := &List{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			l.words[w] = struct{}{}
		}
	}
	return l
}

// Load reads a word list from a file with one word per line. Blank lines
// and lines starting with '#' are skipped.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer f.Close()

	l := &List{words: make(map[string]struct{})}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		l.words[w] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return l, nil
}

// Default returns a list seeded with common English words. It is a small
// built-in fallback for when no external word list is available; callers
// with a real dictionary file should prefer Load.
func Default() *List {
	return FromSlice(commonWords)
}

// With returns a new list containing the receiver's words plus the given
// extras. The receiver is not modified.
func (l *List) With(extra ...string) *List {
	merged := &List{words: make(map[string]struct{}, l.Len()+len(extra))}
	if l != nil {
		for w := range l.words {
			merged.words[w] = struct{}{}
		}
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			merged.words[w] = struct{}{}
		}
	}
	return merged
}

// IsKnown reports whether token is in the list. Comparison is
// case-insensitive; a nil list knows no words.
func (l *List) IsKnown(token string) bool {
	if l == nil || len(l.words) == 0 {
		return false
	}
	_, ok := l.words[strings.ToLower(token)]
	return ok
}

// Len returns the number of words in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

// commonWords is the built-in seed vocabulary: high-frequency English words
// that cover most dictionary checks in ordinary prose.
var commonWords = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "it",
	"for", "not", "on", "with", "he", "as", "you", "do", "at", "this",
	"but", "his", "by", "from", "they", "we", "say", "her", "she", "or",
	"an", "will", "my", "one", "all", "would", "there", "their", "what",
	"so", "up", "out", "if", "about", "who", "get", "which", "go", "me",
	"when", "make", "can", "like", "time", "no", "just", "him", "know",
	"take", "people", "into", "year", "your", "good", "some", "could",
	"them", "see", "other", "than", "then", "now", "look", "only", "come",
	"its", "over", "think", "also", "back", "after", "use", "two", "how",
	"our", "work", "first", "well", "way", "even", "new", "want", "because",
	"any", "these", "give", "day", "most", "us", "is", "was", "are", "been",
	"has", "had", "were", "said", "each", "more", "many", "such", "those",
	"through", "between", "both", "under", "understand", "while", "where",
	"before", "must", "here", "same", "own", "still", "every", "world",
	"rules", "chapter", "section", "page", "word", "words", "line", "text",
}
