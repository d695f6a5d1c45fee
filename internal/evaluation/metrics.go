// Package evaluation measures how well match predictions agree with labelled ground truth.
// It is used offline to tune the ranking threshold and never runs on the ranking path.
package evaluation

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when ground truth and predictions differ in length.
var ErrLengthMismatch = errors.New("ground truth and predictions differ in length")

type ConfusionCounts struct {
	TruePositive  int `json:"true_positive"`
	TrueNegative  int `json:"true_negative"`
	FalsePositive int `json:"false_positive"`
	FalseNegative int `json:"false_negative"`
}

func (c ConfusionCounts) Total() int {
	return c.TruePositive + c.TrueNegative + c.FalsePositive + c.FalseNegative
}

type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Count compares the two sequences position by position.
func Count(groundTruth, predicted []bool) (ConfusionCounts, error) {
	var counts ConfusionCounts
	if len(groundTruth) != len(predicted) {
		return counts, fmt.Errorf("%w: %d ground truth labels, %d predictions", ErrLengthMismatch, len(groundTruth), len(predicted))
	}

	for i, actual := range groundTruth {
		switch {
		case actual && predicted[i]:
			counts.TruePositive++
		case !actual && !predicted[i]:
			counts.TrueNegative++
		case !actual && predicted[i]:
			counts.FalsePositive++
		default:
			counts.FalseNegative++
		}
	}
	return counts, nil
}

// Compute derives the metrics. Every ratio with a zero denominator is reported as 0.
func Compute(c ConfusionCounts) Metrics {
	precision := ratio(c.TruePositive, c.TruePositive+c.FalsePositive)
	recall := ratio(c.TruePositive, c.TruePositive+c.FalseNegative)

	f1 := 0.0
	if precision+recall != 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}

	return Metrics{
		Accuracy:  ratio(c.TruePositive+c.TrueNegative, c.Total()),
		Precision: precision,
		Recall:    recall,
		F1:        f1,
	}
}

// Evaluate is Count followed by Compute.
func Evaluate(groundTruth, predicted []bool) (ConfusionCounts, Metrics, error) {
	counts, err := Count(groundTruth, predicted)
	if err != nil {
		return counts, Metrics{}, err
	}
	return counts, Compute(counts), nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
