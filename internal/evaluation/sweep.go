package evaluation

import (
	"github.com/google/uuid"

	"github.com/spigell/fit-ranker/internal/similarity"
)

// LabelledPair is two documents and whether a human judged them a match.
type LabelledPair struct {
	Name  string `json:"name,omitempty"`
	Left  string `json:"left"`
	Right string `json:"right"`
	Match bool   `json:"match"`
}

type PairScore struct {
	Name  string  `json:"name,omitempty"`
	Score float64 `json:"score"`
	Match bool    `json:"match"`
}

type ThresholdResult struct {
	Threshold float64         `json:"threshold"`
	Counts    ConfusionCounts `json:"counts"`
	Metrics   Metrics         `json:"metrics"`
}

type Report struct {
	RunID   string            `json:"run_id"`
	Scores  []PairScore       `json:"scores"`
	Results []ThresholdResult `json:"results"`
}

// DefaultThresholds are 0.1 through 0.9 in steps of 0.1.
func DefaultThresholds() []float64 {
	return []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
}

// Sweep scores every pair once and evaluates the predictions "score > threshold" for each threshold.
func Sweep(scorer similarity.Scorer, pairs []LabelledPair, thresholds []float64) *Report {
	report := &Report{
		RunID:   uuid.NewString(),
		Scores:  make([]PairScore, 0, len(pairs)),
		Results: make([]ThresholdResult, 0, len(thresholds)),
	}

	truth := make([]bool, 0, len(pairs))
	for _, pair := range pairs {
		report.Scores = append(report.Scores, PairScore{
			Name:  pair.Name,
			Score: scorer.Score(pair.Left, pair.Right),
			Match: pair.Match,
		})
		truth = append(truth, pair.Match)
	}

	for _, threshold := range thresholds {
		predicted := make([]bool, 0, len(report.Scores))
		for _, s := range report.Scores {
			predicted = append(predicted, s.Score > threshold)
		}

		// both slices are built from the same pairs
		counts, _ := Count(truth, predicted)
		report.Results = append(report.Results, ThresholdResult{
			Threshold: threshold,
			Counts:    counts,
			Metrics:   Compute(counts),
		})
	}

	return report
}

// Best returns the result with the highest F1, preferring the lower threshold on ties.
// The boolean is false when there are no results.
func (r *Report) Best() (ThresholdResult, bool) {
	if r == nil || len(r.Results) == 0 {
		return ThresholdResult{}, false
	}

	best := r.Results[0]
	for _, res := range r.Results[1:] {
		if res.Metrics.F1 > best.Metrics.F1 ||
			(res.Metrics.F1 == best.Metrics.F1 && res.Threshold < best.Threshold) {
			best = res
		}
	}
	return best, true
}
