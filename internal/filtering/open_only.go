package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/fit-ranker/internal/profile"
)

type openOnlyFilter struct {
	toggle
	logger *zap.Logger
}

// NewOpenOnly creates a filter that removes archived and closed job ads.
func NewOpenOnly(logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &openOnlyFilter{logger: logger}
}

func (f *openOnlyFilter) Name() string { return "open_only" }

func (f *openOnlyFilter) Validate() error { return nil }

func (f *openOnlyFilter) Apply(_ context.Context, jobs *profile.JobAds) (*profile.JobAds, Step, error) {
	initial := jobs.Len()
	removed := jobs.RemoveIf(func(job *profile.JobAd) bool {
		return !job.IsOpen()
	})

	if len(removed) > 0 {
		f.logger.Info("excluding job ads that are not open",
			zap.Strings("excluded_job_ads", removed),
			zap.Int("job_ads_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(removed), Left: jobs.Len()}, nil
}

func (f *openOnlyFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}
