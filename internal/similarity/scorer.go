// Package similarity scores how closely two free-text documents match.
//
// Every scorer here is a pure function of its two inputs: the same pair always
// yields the same score, the score lies in [0,1], Score(a, b) == Score(b, a), and
// empty or whitespace-only input on either side scores 0.
package similarity

import "strings"

// Scorer returns a normalized relevance score in [0,1] for two documents.
type Scorer interface {
	Score(a, b string) float64
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(a, b string) float64

func (f ScorerFunc) Score(a, b string) float64 {
	return f(a, b)
}

// SubScore is the result of a single measure inside a blend.
type SubScore struct {
	Measure string  `json:"measure"`
	Score   float64 `json:"score"`
}

// Blend averages several measures over the same analyzed pair.
type Blend struct {
	analyzer *Analyzer
	measures []Measure
}

// NewBlend builds a blend. Without measures it falls back to DefaultMeasures,
// without an analyzer to NewAnalyzer().
func NewBlend(analyzer *Analyzer, measures ...Measure) *Blend {
	if analyzer == nil {
		analyzer = NewAnalyzer()
	}
	if len(measures) == 0 {
		// DefaultMeasures are known names.
		measures, _ = ParseMeasures(DefaultMeasures())
	}
	return &Blend{analyzer: analyzer, measures: measures}
}

// Default returns the default blend: unigram Jaccard with unigram and bigram TF-IDF cosine.
func Default() *Blend {
	return NewBlend(nil)
}

// Measures returns the names of the blended measures in evaluation order.
func (b *Blend) Measures() []string {
	names := make([]string, 0, len(b.measures))
	for _, m := range b.measures {
		names = append(names, m.Name())
	}
	return names
}

// Score returns the arithmetic mean of all measures.
func (b *Blend) Score(x, y string) float64 {
	score, _ := b.Explain(x, y)
	return score
}

// Explain returns the blended score together with every sub-score.
func (b *Blend) Explain(x, y string) (float64, []SubScore) {
	subs := make([]SubScore, 0, len(b.measures))
	if strings.TrimSpace(x) == "" || strings.TrimSpace(y) == "" {
		for _, m := range b.measures {
			subs = append(subs, SubScore{Measure: m.Name()})
		}
		return 0, subs
	}

	docX := b.analyzer.Analyze(x)
	docY := b.analyzer.Analyze(y)

	total := 0.0
	for _, m := range b.measures {
		score := 0.0
		if !docX.Empty() && !docY.Empty() {
			score = clamp(m.Compare(docX, docY))
		}
		subs = append(subs, SubScore{Measure: m.Name(), Score: score})
		total += score
	}

	if len(b.measures) == 0 {
		return 0, subs
	}
	return clamp(total / float64(len(b.measures))), subs
}
