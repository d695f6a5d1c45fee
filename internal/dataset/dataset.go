// Package dataset loads job ads, applications, portfolios and labelled pairs from a JSON or YAML file.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/spigell/fit-ranker/internal/evaluation"
	"github.com/spigell/fit-ranker/internal/profile"
)

const dateLayout = "2006-01-02"

var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Dataset is the in-memory view of a dataset file.
type Dataset struct {
	Jobs         *profile.JobAds
	Applications []*profile.Application
	Portfolios   []*profile.Portfolio
	Individuals  []*profile.Individual
	Pairs        []PairRecord

	portfolioByUser  map[string]*profile.Portfolio
	individualByUser map[string]*profile.Individual
}

// PairRecord is a labelled pair as stored in the file. Each side is either inline text
// or a reference: left may name a user (portfolio) or an application, right a job ad.
type PairRecord struct {
	Name          string `json:"name"`
	Left          string `json:"left"`
	Right         string `json:"right"`
	UserID        string `json:"user_id"`
	ApplicationID string `json:"application_id"`
	JobAdID       string `json:"job_ad_id"`
	Match         bool   `json:"match"`
}

type rawDataset struct {
	Jobs         []*profile.JobAd       `json:"jobs"`
	Applications []*profile.Application `json:"applications"`
	Portfolios   []*profile.Portfolio   `json:"portfolios"`
	Individuals  []*profile.Individual  `json:"individuals"`
	Pairs        []PairRecord           `json:"pairs"`
}

// Load reads the file at path. The format is chosen by extension: .json, .yaml or .yml.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var items map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &items)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &items)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}

	return Decode(items)
}

// Decode builds a dataset from generic decoded items.
func Decode(items map[string]any) (*Dataset, error) {
	var raw rawDataset

	cfg := &mapstructure.DecoderConfig{
		Result:           &raw,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       timeHook,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}

	return build(&raw)
}

func build(raw *rawDataset) (*Dataset, error) {
	d := &Dataset{
		Jobs:             &profile.JobAds{},
		Applications:     compact(raw.Applications),
		Portfolios:       compact(raw.Portfolios),
		Individuals:      compact(raw.Individuals),
		Pairs:            raw.Pairs,
		portfolioByUser:  make(map[string]*profile.Portfolio),
		individualByUser: make(map[string]*profile.Individual),
	}

	seen := make(map[string]struct{})
	for i, job := range compact(raw.Jobs) {
		if strings.TrimSpace(job.ID) == "" {
			return nil, fmt.Errorf("job #%d: id is required", i)
		}
		if _, ok := seen[job.ID]; ok {
			return nil, fmt.Errorf("job %q: duplicate id", job.ID)
		}
		seen[job.ID] = struct{}{}
		d.Jobs.Items = append(d.Jobs.Items, job)
	}

	for _, p := range d.Portfolios {
		if _, ok := d.portfolioByUser[p.UserID]; ok {
			return nil, fmt.Errorf("user %q: more than one portfolio", p.UserID)
		}
		d.portfolioByUser[p.UserID] = p
	}

	for _, ind := range d.Individuals {
		d.individualByUser[ind.ID] = ind
	}

	return d, nil
}

// Portfolio returns the portfolio owned by the user, or nil.
func (d *Dataset) Portfolio(userID string) *profile.Portfolio {
	return d.portfolioByUser[userID]
}

// Individual returns the user's personal details, or nil.
func (d *Dataset) Individual(userID string) *profile.Individual {
	return d.individualByUser[userID]
}

// ApplicationsFor returns the applications submitted to the job ad, in file order.
func (d *Dataset) ApplicationsFor(jobAdID string) []*profile.Application {
	out := make([]*profile.Application, 0)
	for _, app := range d.Applications {
		if app.JobAdID == jobAdID {
			out = append(out, app)
		}
	}
	return out
}

func (d *Dataset) application(id string) *profile.Application {
	for _, app := range d.Applications {
		if app.ID == id {
			return app
		}
	}
	return nil
}

// LabelledPairs resolves references in the pair records into document texts.
func (d *Dataset) LabelledPairs() ([]evaluation.LabelledPair, error) {
	pairs := make([]evaluation.LabelledPair, 0, len(d.Pairs))
	for i, rec := range d.Pairs {
		left, err := d.leftDocument(rec)
		if err != nil {
			return nil, fmt.Errorf("pair #%d: %w", i, err)
		}

		right := rec.Right
		if right == "" && rec.JobAdID != "" {
			job := d.Jobs.FindByID(rec.JobAdID)
			if job == nil {
				return nil, fmt.Errorf("pair #%d: job ad %q not found", i, rec.JobAdID)
			}
			right = job.Document()
		}

		name := rec.Name
		if name == "" {
			name = fmt.Sprintf("pair-%d", i+1)
		}

		pairs = append(pairs, evaluation.LabelledPair{Name: name, Left: left, Right: right, Match: rec.Match})
	}
	return pairs, nil
}

func (d *Dataset) leftDocument(rec PairRecord) (string, error) {
	switch {
	case rec.Left != "":
		return rec.Left, nil
	case rec.ApplicationID != "":
		app := d.application(rec.ApplicationID)
		if app == nil {
			return "", fmt.Errorf("application %q not found", rec.ApplicationID)
		}
		return profile.CandidateDocument(app, d.Portfolio(app.UserID)), nil
	case rec.UserID != "":
		portfolio := d.Portfolio(rec.UserID)
		if portfolio == nil {
			return "", fmt.Errorf("user %q has no portfolio", rec.UserID)
		}
		return portfolio.Document(), nil
	default:
		return "", errors.New("left side is missing: set left, user_id or application_id")
	}
}

func timeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Time{}) || from.Kind() != reflect.String {
		return data, nil
	}

	s := strings.TrimSpace(data.(string))
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("parsing time %q: expected RFC3339 or %s", s, dateLayout)
	}
	return t, nil
}

func compact[T any](items []*T) []*T {
	out := make([]*T, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
