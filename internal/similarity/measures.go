package similarity

import (
	"fmt"
	"math"
	"sort"
	"strings"

	edlib "github.com/hbollon/go-edlib"
)

const (
	MeasureJaccard        = "jaccard"
	MeasureJaccardBigrams = "jaccard-2"
	MeasureCosine         = "cosine-1"
	MeasureCosineBigrams  = "cosine-2"
	MeasureFuzzy          = "fuzzy"

	// DefaultFuzzyThreshold is the Jaro-Winkler similarity two tokens need to count as the same.
	DefaultFuzzyThreshold = 0.92
)

// Measure compares two analyzed documents and returns a value in [0,1].
type Measure interface {
	Name() string
	Compare(a, b *Document) float64
}

// DefaultMeasures returns the measures used by NewBlend when none are given.
func DefaultMeasures() []string {
	return []string{MeasureJaccard, MeasureCosine, MeasureCosineBigrams}
}

// ParseMeasures resolves measure names as they appear in configuration.
func ParseMeasures(names []string) ([]Measure, error) {
	measures := make([]Measure, 0, len(names))
	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case MeasureJaccard:
			measures = append(measures, Jaccard{N: 1})
		case MeasureJaccardBigrams:
			measures = append(measures, Jaccard{N: 2})
		case MeasureCosine:
			measures = append(measures, Cosine{N: 1})
		case MeasureCosineBigrams:
			measures = append(measures, Cosine{N: 2})
		case MeasureFuzzy:
			measures = append(measures, Fuzzy{Threshold: DefaultFuzzyThreshold})
		default:
			return nil, fmt.Errorf("unknown similarity measure: %q", name)
		}
	}

	if len(measures) == 0 {
		return nil, fmt.Errorf("at least one similarity measure is required")
	}
	return measures, nil
}

// Jaccard is the size of the intersection over the size of the union of the n-gram sets.
type Jaccard struct {
	N int
}

func (j Jaccard) Name() string {
	if j.N == 1 {
		return MeasureJaccard
	}
	return fmt.Sprintf("%s-%d", MeasureJaccard, j.N)
}

func (j Jaccard) Compare(a, b *Document) float64 {
	setA := toSet(a.Terms(j.N))
	setB := toSet(b.Terms(j.N))
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	shared := 0
	for term := range setA {
		if _, ok := setB[term]; ok {
			shared++
		}
	}

	union := len(setA) + len(setB) - shared
	return clamp(float64(shared) / float64(union))
}

// Cosine is the cosine similarity of the TF-IDF vectors of both documents.
// IDF is computed over the pair alone so the result depends on nothing but the two inputs.
type Cosine struct {
	N int
}

func (c Cosine) Name() string {
	return fmt.Sprintf("cosine-%d", c.N)
}

func (c Cosine) Compare(a, b *Document) float64 {
	tfA := termFrequency(a.Terms(c.N))
	tfB := termFrequency(b.Terms(c.N))
	if len(tfA) == 0 || len(tfB) == 0 {
		return 0
	}

	vecA := make(map[string]float64, len(tfA))
	for term, tf := range tfA {
		vecA[term] = tf * pairIDF(term, tfA, tfB)
	}
	vecB := make(map[string]float64, len(tfB))
	for term, tf := range tfB {
		vecB[term] = tf * pairIDF(term, tfA, tfB)
	}

	// Sums run over sorted keys so the float result is identical between runs.
	dot := 0.0
	for _, term := range sortedKeys(vecA) {
		if wb, ok := vecB[term]; ok {
			dot += vecA[term] * wb
		}
	}

	magA := magnitude(vecA)
	magB := magnitude(vecB)
	if magA == 0 || magB == 0 {
		return 0
	}

	return clamp(dot / (magA * magB))
}

// Fuzzy counts tokens on each side that have a close counterpart on the other side.
type Fuzzy struct {
	Threshold float64
}

func (f Fuzzy) Name() string { return MeasureFuzzy }

func (f Fuzzy) Compare(a, b *Document) float64 {
	tokensA := sortedKeys(toSet(a.Tokens))
	tokensB := sortedKeys(toSet(b.Tokens))
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	matched := f.matched(tokensA, tokensB) + f.matched(tokensB, tokensA)
	return clamp(float64(matched) / float64(len(tokensA)+len(tokensB)))
}

func (f Fuzzy) matched(from, to []string) int {
	count := 0
	for _, x := range from {
		for _, y := range to {
			if f.similar(x, y) {
				count++
				break
			}
		}
	}
	return count
}

func (f Fuzzy) similar(x, y string) bool {
	if x == y {
		return true
	}
	// Compare in a fixed order so the measure stays symmetric.
	if y < x {
		x, y = y, x
	}
	score, err := edlib.StringsSimilarity(x, y, edlib.JaroWinkler)
	if err != nil {
		return false
	}
	return float64(score) >= f.Threshold
}

func pairIDF(term string, tfA, tfB map[string]float64) float64 {
	df := 0
	if _, ok := tfA[term]; ok {
		df++
	}
	if _, ok := tfB[term]; ok {
		df++
	}
	return math.Log(2/float64(df+1)) + 1
}

func termFrequency(terms []string) map[string]float64 {
	counts := make(map[string]float64, len(terms))
	for _, term := range terms {
		counts[term]++
	}

	total := float64(len(terms))
	for term := range counts {
		counts[term] /= total
	}
	return counts
}

func magnitude(vec map[string]float64) float64 {
	sum := 0.0
	for _, term := range sortedKeys(vec) {
		sum += vec[term] * vec[term]
	}
	return math.Sqrt(sum)
}

func toSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		set[term] = struct{}{}
	}
	return set
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
