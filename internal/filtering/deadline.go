package filtering

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/fit-ranker/internal/profile"
)

type deadlineFilter struct {
	toggle
	now    func() time.Time
	logger *zap.Logger
}

// NewDeadline creates a filter that removes job ads whose application deadline has passed.
// A nil clock uses time.Now.
func NewDeadline(now func() time.Time, logger *zap.Logger) Filter {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &deadlineFilter{now: now, logger: logger}
}

func (f *deadlineFilter) Name() string { return "deadline" }

func (f *deadlineFilter) Validate() error { return nil }

func (f *deadlineFilter) Apply(_ context.Context, jobs *profile.JobAds) (*profile.JobAds, Step, error) {
	initial := jobs.Len()
	now := f.now()

	removed := jobs.RemoveIf(func(job *profile.JobAd) bool {
		return job.DeadlinePassed(now)
	})

	if len(removed) > 0 {
		f.logger.Info("excluding job ads past their application deadline",
			zap.Time("now", now),
			zap.Strings("excluded_job_ads", removed),
			zap.Int("job_ads_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(removed), Left: jobs.Len()}, nil
}

func (f *deadlineFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
