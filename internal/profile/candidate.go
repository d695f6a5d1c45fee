package profile

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type Application struct {
	ID              string    `json:"id,omitempty"`
	JobAdID         string    `json:"job_ad_id,omitempty"`
	UserID          string    `json:"user_id,omitempty"`
	CVTextContent   string    `json:"cv_text_content,omitempty"`
	ApplicationDate time.Time `json:"application_date,omitempty"`
	Status          string    `json:"status,omitempty"`
}

type Portfolio struct {
	ID     string          `json:"id,omitempty"`
	UserID string          `json:"user_id,omitempty"`
	Items  []PortfolioItem `json:"items,omitempty"`
}

type PortfolioItem struct {
	ID           string `json:"id,omitempty"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Technologies string `json:"technologies,omitempty"`
	Skills       string `json:"skills,omitempty"`
	Industry     string `json:"industry,omitempty"`
}

type Individual struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// FullName returns "first last", or an empty string for a nil individual.
func (i *Individual) FullName() string {
	if i == nil {
		return ""
	}
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// Document joins every portfolio item's title, description, skills, technologies and industry.
// A nil portfolio yields an empty document.
func (p *Portfolio) Document() string {
	if p == nil {
		return ""
	}

	parts := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		parts = append(parts, strings.Join([]string{
			item.Title,
			item.Description,
			item.Skills,
			item.Technologies,
			item.Industry,
		}, " "))
	}
	return strings.Join(parts, " ")
}

// CandidateDocument is the applicant side of a match: the CV text followed by the portfolio text.
func CandidateDocument(app *Application, portfolio *Portfolio) string {
	cv := ""
	if app != nil {
		cv = app.CVTextContent
	}
	return cv + " " + portfolio.Document()
}

// FriendlyStatus turns stored statuses such as "under_review" or "UnderReview" into "Under review".
func FriendlyStatus(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return ""
	}

	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	for i, r := range status {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case i > 0 && r >= 'A' && r <= 'Z':
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()

	out := strings.Join(words, " ")
	if out == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(out)
	return string(unicode.ToUpper(first)) + out[size:]
}
