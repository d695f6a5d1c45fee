package profile

import (
	"strings"
	"time"
)

const (
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"

	// DefaultJobLocation is reported when a job ad does not name a location.
	DefaultJobLocation = "Remote"
)

type JobAds struct {
	Items []*JobAd
}

type JobAd struct {
	ID                  string    `json:"id,omitempty"`
	UserID              string    `json:"user_id,omitempty"`
	StartupName         string    `json:"startup_name,omitempty"`
	StartupDescription  string    `json:"startup_description,omitempty"`
	Industry            string    `json:"industry,omitempty"`
	KeyTechnologies     string    `json:"key_technologies,omitempty"`
	JobTitle            string    `json:"job_title,omitempty"`
	JobDescription      string    `json:"job_description,omitempty"`
	RequiredSkills      string    `json:"required_skills,omitempty"`
	Experience          string    `json:"experience,omitempty"`
	Education           string    `json:"education,omitempty"`
	JobLocation         string    `json:"job_location,omitempty"`
	ApplicationDeadline time.Time `json:"application_deadline,omitempty"`
	Status              string    `json:"status,omitempty"`
	Archived            bool      `json:"archived,omitempty"`
}

// Document flattens the semantically relevant fields of the job ad into one text.
func (j *JobAd) Document() string {
	if j == nil {
		return ""
	}

	return strings.Join([]string{
		j.JobTitle,
		j.JobDescription,
		j.RequiredSkills,
		j.KeyTechnologies,
		j.Industry,
		j.Experience,
		j.Education,
		j.StartupDescription,
	}, " ")
}

// Location returns the job location or DefaultJobLocation when unset.
func (j *JobAd) Location() string {
	if strings.TrimSpace(j.JobLocation) == "" {
		return DefaultJobLocation
	}
	return j.JobLocation
}

// IsOpen reports whether the job ad still accepts applications, ignoring the deadline.
func (j *JobAd) IsOpen() bool {
	if j.Archived {
		return false
	}
	status := strings.ToLower(strings.TrimSpace(j.Status))
	return status == "" || status == JobStatusOpen
}

// DeadlinePassed reports whether the application deadline is set and lies before now.
func (j *JobAd) DeadlinePassed(now time.Time) bool {
	if j.ApplicationDeadline.IsZero() {
		return false
	}
	return j.ApplicationDeadline.Before(now)
}

func (j *JobAds) Len() int {
	return len(j.Items)
}

func (j *JobAds) FindByID(id string) *JobAd {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

func (j *JobAds) IDs() []string {
	ids := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

// Titles returns "id title / startup" labels, used by the interactive job picker.
func (j *JobAds) Titles() []string {
	titles := make([]string, 0, len(j.Items))
	for _, job := range j.Items {
		titles = append(titles, job.ID+" "+job.JobTitle+" / "+job.StartupName)
	}
	return titles
}

// Exclude removes job ads with the given ids and returns the removed ids.
// The relative order of the remaining job ads is preserved.
func (j *JobAds) Exclude(ids []string) []string {
	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	return j.RemoveIf(func(job *JobAd) bool {
		_, ok := targets[job.ID]
		return ok
	})
}

// RemoveIf drops every job ad matching drop, keeping the order of the rest.
func (j *JobAds) RemoveIf(drop func(*JobAd) bool) []string {
	var removed []string
	kept := j.Items[:0]
	for _, job := range j.Items {
		if drop(job) {
			removed = append(removed, job.ID)
			continue
		}
		kept = append(kept, job)
	}

	// release references held by the tail of the backing array
	for i := len(kept); i < len(j.Items); i++ {
		j.Items[i] = nil
	}
	j.Items = kept
	return removed
}
