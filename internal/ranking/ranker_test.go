package ranking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/fit-ranker/internal/similarity"
)

// fixedScorer scores a candidate by looking its document up in a table.
type fixedScorer map[string]float64

func (s fixedScorer) Score(a, _ string) float64 {
	return s[a]
}

func candidates(docs ...string) []Candidate[int] {
	out := make([]Candidate[int], 0, len(docs))
	for i, doc := range docs {
		out = append(out, Candidate[int]{ID: doc, Document: doc, Meta: i})
	}
	return out
}

func ids[M any](matches []Match[M]) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.ID)
	}
	return out
}

func TestRankThresholdIsExclusive(t *testing.T) {
	scorer := fixedScorer{"a": 0.1, "b": 0.3, "c": 0.31, "d": 0.9}

	got := Rank(scorer, "job", candidates("a", "b", "c", "d"), 0.3, 10)

	assert.Equal(t, []string{"d", "c"}, ids(got))
	assert.Equal(t, 0.9, got[0].Score)
	assert.Equal(t, 0.31, got[1].Score)
}

func TestRankTopNTruncation(t *testing.T) {
	scorer := fixedScorer{"a": 0.5, "b": 0.9, "c": 0.4, "d": 0.7, "e": 0.6}

	got := Rank(scorer, "job", candidates("a", "b", "c", "d", "e"), 0.3, 2)
	assert.Equal(t, []string{"b", "d"}, ids(got))

	all := Rank(scorer, "job", candidates("a", "b", "c", "d", "e"), 0.3, 50)
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, ids(all))
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	scorer := fixedScorer{"a": 0.5, "b": 0.8, "c": 0.5, "d": 0.5}
	input := candidates("a", "b", "c", "d")

	first := Rank(scorer, "job", input, 0.3, 10)
	second := Rank(scorer, "job", input, 0.3, 10)

	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(first))
	assert.Equal(t, first, second)
}

func TestRankDegenerateInputs(t *testing.T) {
	scorer := fixedScorer{"a": 0.9}

	assert.Empty(t, Rank[int](scorer, "job", nil, 0.3, 10))
	assert.Empty(t, Rank(scorer, "job", candidates("a"), 0.3, 0))
	assert.Empty(t, Rank(scorer, "job", candidates("a"), 0.3, -1))
}

func TestRankPassesMetaThrough(t *testing.T) {
	scorer := fixedScorer{"a": 0.4, "b": 0.6}

	got := Rank(scorer, "job", candidates("a", "b"), 0.3, 10)

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Meta)
	assert.Equal(t, 0, got[1].Meta)
}

func TestRankCandidatesMatchesSequentialRank(t *testing.T) {
	docs := []string{
		"Go developer with Kubernetes experience",
		"Accountant, Excel, bookkeeping",
		"Backend engineer: Go, PostgreSQL, Docker",
		"Frontend developer React TypeScript",
		"Site reliability engineer Kubernetes Terraform Go",
		"",
	}
	target := "Senior Go engineer. Kubernetes, Docker, PostgreSQL."

	scorer := similarity.Default()
	want := Rank(scorer, target, candidates(docs...), 0.05, 10)

	for _, workers := range []int{1, 2, 8} {
		r := New(scorer, WithWorkers(workers))
		got, err := RankCandidates(context.Background(), r, target, candidates(docs...), Options{Threshold: 0.05, TopN: 10})
		require.NoError(t, err)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestRankCandidatesNonPositiveTopN(t *testing.T) {
	r := New(fixedScorer{"a": 0.9})

	got, err := RankCandidates(context.Background(), r, "job", candidates("a"), Options{Threshold: 0.3, TopN: 0})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRankCandidatesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := New(fixedScorer{"a": 0.9, "b": 0.8})
	got, err := RankCandidates(ctx, r, "job", candidates("a", "b"), DefaultOptions())

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
}

func TestRankCandidatesLogsSummary(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	r := New(fixedScorer{"a": 0.9, "b": 0.1}, WithLogger(zap.New(core)))

	_, err := RankCandidates(context.Background(), r, "job", candidates("a", "b"), DefaultOptions())
	require.NoError(t, err)

	entries := observed.FilterMessage("ranked candidates").All()
	require.Len(t, entries, 1)

	ctx := entries[0].ContextMap()
	assert.EqualValues(t, 2, ctx["candidates"])
	assert.EqualValues(t, 1, ctx["matches"])
}

func TestNewDefaults(t *testing.T) {
	r := New(nil)

	assert.NotNil(t, r.Scorer())
	assert.Positive(t, r.workers)
}
