package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/fit-ranker/internal/profile"
)

type excludeFileFilter struct {
	toggle
	path   string
	logger *zap.Logger
}

// NewExcludeFile creates a filter that removes job ads listed in the exclude file.
// An empty path turns the filter into a no-op.
func NewExcludeFile(path string, logger *zap.Logger) Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &excludeFileFilter{path: strings.TrimSpace(path), logger: logger}
}

func (f *excludeFileFilter) Name() string { return "exclude_file" }

func (f *excludeFileFilter) Validate() error { return nil }

func (f *excludeFileFilter) Apply(_ context.Context, jobs *profile.JobAds) (*profile.JobAds, Step, error) {
	initial := jobs.Len()
	if f.path == "" {
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	excluded, err := profile.GetExcludedJobAdsFromFile(f.path)
	if err != nil {
		return jobs, Step{}, fmt.Errorf("getting excluded job ads from file: %w", err)
	}

	removed := jobs.Exclude(excluded.JobAdIDs())
	if len(removed) > 0 {
		f.logger.Info("excluding job ads based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_job_ads", removed),
			zap.Int("job_ads_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(removed), Left: jobs.Len()}, nil
}

func (f *excludeFileFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
