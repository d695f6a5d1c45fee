// Package ranking scores a population of candidates against a target document and
// returns the best matches above a threshold.
package ranking

import (
	"context"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/fit-ranker/internal/similarity"
	"github.com/spigell/fit-ranker/internal/utils"
)

const (
	// DefaultThreshold is the exclusive minimum score a match must exceed.
	DefaultThreshold = 0.3
	// DefaultTopN bounds the number of returned matches.
	DefaultTopN = 10

	previewLength = 80
)

// Options are the caller-supplied ranking parameters.
type Options struct {
	Threshold float64
	TopN      int
}

func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold, TopN: DefaultTopN}
}

// Candidate is a single item to be scored. Meta is carried to the output untouched.
type Candidate[M any] struct {
	ID       string
	Document string
	Meta     M
}

// Match is a candidate that passed the threshold.
type Match[M any] struct {
	ID    string
	Score float64
	Meta  M
}

// Rank is the sequential ranking primitive: score every candidate against target,
// keep scores strictly above threshold, sort descending keeping input order on ties,
// and truncate to topN. A non-positive topN yields no matches.
func Rank[M any](scorer similarity.Scorer, target string, candidates []Candidate[M], threshold float64, topN int) []Match[M] {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = scorer.Score(c.Document, target)
	}
	return selectTop(candidates, scores, threshold, topN)
}

// Ranker runs Rank with the scoring loop spread over a bounded number of goroutines.
type Ranker struct {
	scorer  similarity.Scorer
	workers int
	logger  *zap.Logger
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithWorkers bounds the scoring goroutines. Non-positive values use GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(r *Ranker) {
		r.workers = n
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Ranker) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Ranker. A nil scorer falls back to the default similarity blend.
func New(scorer similarity.Scorer, opts ...Option) *Ranker {
	if scorer == nil {
		scorer = similarity.Default()
	}

	r := &Ranker{scorer: scorer, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}

	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r
}

func (r *Ranker) Scorer() similarity.Scorer {
	return r.scorer
}

// RankCandidates has the semantics of Rank with scoring spread over the ranker's workers.
// Scoring stops early when ctx is done, in which case the context error is returned.
func RankCandidates[M any](ctx context.Context, r *Ranker, target string, candidates []Candidate[M], opts Options) ([]Match[M], error) {
	if opts.TopN <= 0 {
		r.logger.Debug("non-positive top-n, returning no matches", zap.Int("top_n", opts.TopN))
		return []Match[M]{}, nil
	}

	if len(candidates) == 0 {
		return []Match[M]{}, nil
	}

	scores := make([]float64, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range candidates {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// each goroutine owns exactly one slot
			scores[i] = r.scorer.Score(candidates[i].Document, target)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matches := selectTop(candidates, scores, opts.Threshold, opts.TopN)

	r.logger.Debug("ranked candidates",
		zap.String("target_preview", utils.TruncateForLog(target, previewLength)),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(matches)),
		zap.Float64("threshold", opts.Threshold),
		zap.Int("top_n", opts.TopN),
	)

	return matches, nil
}

func selectTop[M any](candidates []Candidate[M], scores []float64, threshold float64, topN int) []Match[M] {
	if topN <= 0 {
		return []Match[M]{}
	}

	retained := make([]Match[M], 0, len(candidates))
	for i, c := range candidates {
		if scores[i] > threshold {
			retained = append(retained, Match[M]{ID: c.ID, Score: scores[i], Meta: c.Meta})
		}
	}

	sort.SliceStable(retained, func(i, j int) bool {
		return retained[i].Score > retained[j].Score
	})

	if len(retained) > topN {
		retained = retained[:topN]
	}
	return retained
}
