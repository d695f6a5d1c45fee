package profile

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

type ExcludedJobAds struct {
	Items []*ExcludedJobAd
}

type ExcludedJobAd struct {
	ID          string
	JobTitle    string
	StartupName string
	Reason      string `json:",omitempty"`
	ExcludedAt  time.Time
}

// ToExcluded converts the job ads into exclude-file entries stamped with now.
func (j *JobAds) ToExcluded(reason string, now time.Time) *ExcludedJobAds {
	excluded := &ExcludedJobAds{}
	for _, job := range j.Items {
		excluded.Items = append(excluded.Items, &ExcludedJobAd{
			ID:          job.ID,
			JobTitle:    job.JobTitle,
			StartupName: job.StartupName,
			Reason:      reason,
			ExcludedAt:  now.UTC(),
		})
	}
	return excluded
}

// GetExcludedJobAdsFromFile reads an exclude file. A missing or empty file yields an empty list.
func GetExcludedJobAdsFromFile(path string) (*ExcludedJobAds, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ExcludedJobAds{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedJobAds{}, nil
	}

	var excluded ExcludedJobAds
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

// Append adds entries whose ids are not present yet.
func (e *ExcludedJobAds) Append(s *ExcludedJobAds) {
	seen := make(map[string]struct{}, len(e.Items))
	for _, item := range e.Items {
		seen[item.ID] = struct{}{}
	}

	for _, item := range s.Items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		e.Items = append(e.Items, item)
	}
}

func (e *ExcludedJobAds) JobAdIDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

func (e *ExcludedJobAds) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
