package ranking

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/fit-ranker/internal/profile"
)

// ApplicantDirectory resolves applicant-owned records by user id.
// Both methods return nil when nothing is known about the user.
type ApplicantDirectory interface {
	Portfolio(userID string) *profile.Portfolio
	Individual(userID string) *profile.Individual
}

// ApplicantMatch is an application ranked against a job ad.
type ApplicantMatch struct {
	ApplicationID      string    `json:"id"`
	StartupName        string    `json:"startup_name"`
	JobTitle           string    `json:"job_title"`
	JobLocation        string    `json:"job_location"`
	ApplicationDate    time.Time `json:"application_date"`
	Status             string    `json:"status"`
	IndividualFullName string    `json:"individual_full_name"`
	Score              float64   `json:"score"`
}

// JobMatch is a job ad ranked against an individual's portfolio.
type JobMatch struct {
	JobAdID             string    `json:"id"`
	StartupName         string    `json:"startup_name"`
	JobTitle            string    `json:"job_title"`
	JobLocation         string    `json:"job_location"`
	ApplicationDeadline time.Time `json:"application_deadline"`
	Score               float64   `json:"score"`
}

// CandidatesForJob ranks the applications submitted to job. Each application is
// represented by its CV text followed by the applicant's portfolio text.
func (r *Ranker) CandidatesForJob(ctx context.Context, job *profile.JobAd, applications []*profile.Application, dir ApplicantDirectory, opts Options) ([]ApplicantMatch, error) {
	if job == nil {
		return []ApplicantMatch{}, nil
	}

	candidates := make([]Candidate[*profile.Application], 0, len(applications))
	for _, app := range applications {
		if app == nil || app.JobAdID != job.ID {
			continue
		}

		var portfolio *profile.Portfolio
		if dir != nil {
			portfolio = dir.Portfolio(app.UserID)
		}

		candidates = append(candidates, Candidate[*profile.Application]{
			ID:       app.ID,
			Document: profile.CandidateDocument(app, portfolio),
			Meta:     app,
		})
	}

	r.logger.Debug("ranking applicants for job",
		zap.String("job_ad_id", job.ID),
		zap.Int("applications", len(candidates)),
	)

	matches, err := RankCandidates(ctx, r, job.Document(), candidates, opts)
	if err != nil {
		return nil, err
	}

	out := make([]ApplicantMatch, 0, len(matches))
	for _, m := range matches {
		app := m.Meta

		var individual *profile.Individual
		if dir != nil {
			individual = dir.Individual(app.UserID)
		}

		out = append(out, ApplicantMatch{
			ApplicationID:      app.ID,
			StartupName:        job.StartupName,
			JobTitle:           job.JobTitle,
			JobLocation:        job.Location(),
			ApplicationDate:    app.ApplicationDate,
			Status:             profile.FriendlyStatus(app.Status),
			IndividualFullName: individual.FullName(),
			Score:              m.Score,
		})
	}
	return out, nil
}

// JobsForCandidate ranks job ads against a portfolio. Without a portfolio, or with one that
// carries no text, nothing is scored and the result is empty.
func (r *Ranker) JobsForCandidate(ctx context.Context, portfolio *profile.Portfolio, jobs *profile.JobAds, opts Options) ([]JobMatch, error) {
	if portfolio == nil {
		r.logger.Debug("no portfolio, skipping job recommendations")
		return []JobMatch{}, nil
	}

	target := portfolio.Document()
	if strings.TrimSpace(target) == "" {
		r.logger.Debug("empty portfolio, skipping job recommendations", zap.String("portfolio_id", portfolio.ID))
		return []JobMatch{}, nil
	}
	if jobs == nil {
		return []JobMatch{}, nil
	}

	candidates := make([]Candidate[*profile.JobAd], 0, jobs.Len())
	for _, job := range jobs.Items {
		candidates = append(candidates, Candidate[*profile.JobAd]{
			ID:       job.ID,
			Document: job.Document(),
			Meta:     job,
		})
	}

	r.logger.Debug("ranking jobs for portfolio",
		zap.String("portfolio_id", portfolio.ID),
		zap.String("user_id", portfolio.UserID),
		zap.Int("job_ads", len(candidates)),
	)

	matches, err := RankCandidates(ctx, r, target, candidates, opts)
	if err != nil {
		return nil, err
	}

	out := make([]JobMatch, 0, len(matches))
	for _, m := range matches {
		job := m.Meta
		out = append(out, JobMatch{
			JobAdID:             job.ID,
			StartupName:         job.StartupName,
			JobTitle:            job.JobTitle,
			JobLocation:         job.Location(),
			ApplicationDeadline: job.ApplicationDeadline,
			Score:               m.Score,
		})
	}
	return out, nil
}
