package similarity

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/surgebase/porter2"
)

// minStemLength keeps very short tokens (go, c, r) away from the stemmer.
const minStemLength = 3

// Normalize lower-cases the text and collapses every whitespace run into a single space.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Analyzer turns raw text into the terms consumed by the measures.
type Analyzer struct {
	stemming bool
	phrases  []string
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithStemming reduces tokens to their Porter2 stem.
func WithStemming(enabled bool) AnalyzerOption {
	return func(a *Analyzer) {
		a.stemming = enabled
	}
}

// WithPhrases replaces the phrase dictionary. An empty list disables phrase detection.
func WithPhrases(phrases []string) AnalyzerOption {
	return func(a *Analyzer) {
		a.phrases = normalizePhrases(phrases)
	}
}

// NewAnalyzer returns an analyzer with the built-in phrase dictionary and stemming disabled.
func NewAnalyzer(opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{phrases: normalizePhrases(defaultPhrases)}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Document is an analyzed text.
type Document struct {
	Tokens  []string
	Phrases []string
}

// Empty reports whether the document carries no comparable terms.
func (d *Document) Empty() bool {
	return len(d.Tokens) == 0 && len(d.Phrases) == 0
}

// Terms returns the n-grams of order n followed by the detected phrases.
func (d *Document) Terms(n int) []string {
	terms := NGrams(d.Tokens, n)
	return append(terms, d.Phrases...)
}

// Analyze normalizes, tokenizes and filters the text.
func (a *Analyzer) Analyze(text string) *Document {
	normalized := Normalize(text)
	if normalized == "" {
		return &Document{}
	}

	return &Document{
		Tokens:  a.tokens(normalized),
		Phrases: a.detectPhrases(normalized),
	}
}

// Tokenize splits normalized text on anything that is not a letter or a digit and drops stop words.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), isSeparator)

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, stop := stopWords[field]; stop {
			continue
		}
		tokens = append(tokens, field)
	}
	return tokens
}

// NGrams joins every run of n consecutive tokens with a single space.
func NGrams(tokens []string, n int) []string {
	if n <= 0 || len(tokens) < n {
		return []string{}
	}

	grams := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		grams = append(grams, strings.Join(tokens[i:i+n], " "))
	}
	return grams
}

func (a *Analyzer) tokens(normalized string) []string {
	tokens := Tokenize(normalized)
	if !a.stemming {
		return tokens
	}

	for i, token := range tokens {
		if len(token) < minStemLength {
			continue
		}
		tokens[i] = porter2.Stem(token)
	}
	return tokens
}

// detectPhrases returns each dictionary phrase present in the text once, matched on token boundaries.
func (a *Analyzer) detectPhrases(normalized string) []string {
	found := make([]string, 0)
	for _, phrase := range a.phrases {
		if containsWord(normalized, phrase) {
			found = append(found, phrase)
		}
	}
	return found
}

func containsWord(text, phrase string) bool {
	offset := 0
	for {
		idx := strings.Index(text[offset:], phrase)
		if idx < 0 {
			return false
		}

		start := offset + idx
		end := start + len(phrase)

		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		offset = start + 1
	}
}

func boundaryBefore(text string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:idx])
	return isSeparator(r)
}

func boundaryAfter(text string, idx int) bool {
	if idx >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[idx:])
	return isSeparator(r)
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func normalizePhrases(phrases []string) []string {
	seen := make(map[string]struct{}, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		phrase = Normalize(phrase)
		if phrase == "" {
			continue
		}
		if _, ok := seen[phrase]; ok {
			continue
		}
		seen[phrase] = struct{}{}
		out = append(out, phrase)
	}
	sort.Strings(out)
	return out
}
