package ranking

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/fit-ranker/internal/profile"
	"github.com/spigell/fit-ranker/internal/similarity"
)

type directory struct {
	portfolios  map[string]*profile.Portfolio
	individuals map[string]*profile.Individual
}

func (d directory) Portfolio(userID string) *profile.Portfolio {
	return d.portfolios[userID]
}

func (d directory) Individual(userID string) *profile.Individual {
	return d.individuals[userID]
}

type countingScorer struct {
	calls atomic.Int64
}

func (c *countingScorer) Score(string, string) float64 {
	c.calls.Add(1)
	return 1
}

var goJob = &profile.JobAd{
	ID:              "job-1",
	StartupName:     "Ledgerly",
	JobTitle:        "Backend Go Developer",
	JobDescription:  "Build payment microservices",
	RequiredSkills:  "Go, PostgreSQL, Docker",
	KeyTechnologies: "Kubernetes, Kafka",
	Industry:        "Fintech",
}

func TestCandidatesForJob(t *testing.T) {
	applied := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	applications := []*profile.Application{
		{ID: "app-1", JobAdID: "job-1", UserID: "u1", CVTextContent: "Pastry chef, French cuisine", Status: "submitted"},
		{ID: "app-2", JobAdID: "job-1", UserID: "u2", CVTextContent: "Go developer. PostgreSQL, Docker, Kubernetes.", Status: "under_review", ApplicationDate: applied},
		{ID: "app-3", JobAdID: "job-2", UserID: "u3", CVTextContent: "Go developer. PostgreSQL, Docker, Kubernetes."},
		{ID: "app-4", JobAdID: "job-1", UserID: "u4", CVTextContent: ""},
		nil,
	}

	dir := directory{
		portfolios: map[string]*profile.Portfolio{
			"u4": {ID: "p4", UserID: "u4", Items: []profile.PortfolioItem{
				{Title: "Payments gateway", Description: "Go microservices", Skills: "Go", Technologies: "Kafka, Kubernetes", Industry: "Fintech"},
			}},
		},
		individuals: map[string]*profile.Individual{
			"u2": {ID: "u2", FirstName: "Ada", LastName: "Lovelace"},
		},
	}

	r := New(similarity.Default())
	got, err := r.CandidatesForJob(context.Background(), goJob, applications, dir, Options{Threshold: 0.1, TopN: 10})
	require.NoError(t, err)

	gotIDs := make([]string, 0, len(got))
	for _, m := range got {
		gotIDs = append(gotIDs, m.ApplicationID)
		assert.Greater(t, m.Score, 0.1)
		assert.Equal(t, "Ledgerly", m.StartupName)
		assert.Equal(t, profile.DefaultJobLocation, m.JobLocation)
	}

	assert.ElementsMatch(t, []string{"app-2", "app-4"}, gotIDs, "only relevant applications to job-1 are returned")

	for _, m := range got {
		if m.ApplicationID == "app-2" {
			assert.Equal(t, "Ada Lovelace", m.IndividualFullName)
			assert.Equal(t, "Under review", m.Status)
			assert.Equal(t, applied, m.ApplicationDate)
		}
		if m.ApplicationID == "app-4" {
			assert.Empty(t, m.IndividualFullName)
		}
	}
}

func TestCandidatesForJobNilJob(t *testing.T) {
	got, err := New(nil).CandidatesForJob(context.Background(), nil, []*profile.Application{{ID: "a"}}, nil, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestJobsForCandidate(t *testing.T) {
	portfolio := &profile.Portfolio{ID: "p1", UserID: "u1", Items: []profile.PortfolioItem{
		{Title: "Billing platform", Description: "Go services on Kubernetes", Skills: "Go, PostgreSQL", Technologies: "Docker, Kafka", Industry: "Fintech"},
	}}

	jobs := &profile.JobAds{Items: []*profile.JobAd{
		{ID: "bakery", JobTitle: "Baker", JobDescription: "Bread and pastries", Industry: "Food"},
		goJob,
		{ID: "berlin-go", JobTitle: "Go Engineer", RequiredSkills: "Go, Docker", KeyTechnologies: "Kubernetes", JobLocation: "Berlin"},
	}}

	r := New(similarity.Default())
	got, err := r.JobsForCandidate(context.Background(), portfolio, jobs, Options{Threshold: 0.05, TopN: 10})
	require.NoError(t, err)
	require.NotEmpty(t, got)

	for i, m := range got {
		assert.NotEqual(t, "bakery", m.JobAdID)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Score, m.Score)
		}
		if m.JobAdID == "berlin-go" {
			assert.Equal(t, "Berlin", m.JobLocation)
		}
	}

	again, err := r.JobsForCandidate(context.Background(), portfolio, jobs, Options{Threshold: 0.05, TopN: 10})
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestJobsForCandidateWithoutPortfolioScoresNothing(t *testing.T) {
	scorer := &countingScorer{}
	jobs := &profile.JobAds{Items: []*profile.JobAd{goJob}}

	got, err := New(scorer).JobsForCandidate(context.Background(), nil, jobs, DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, got)
	assert.Zero(t, scorer.calls.Load())
}

func TestJobsForCandidateWithEmptyPortfolioScoresNothing(t *testing.T) {
	scorer := &countingScorer{}
	jobs := &profile.JobAds{Items: []*profile.JobAd{goJob}}
	portfolio := &profile.Portfolio{ID: "p1", UserID: "u1", Items: []profile.PortfolioItem{{}, {Title: "  "}}}

	got, err := New(scorer).JobsForCandidate(context.Background(), portfolio, jobs, DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, got)
	assert.Zero(t, scorer.calls.Load())
}
