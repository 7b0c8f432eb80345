package recruitment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tamilsociety/tls-platform/internal/domain/bilingual"
)

// Optional tracks whether a JSON key was present at all, so an explicit null
// can be told apart from an omitted key.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Null[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// FlexibleTime accepts RFC 3339 timestamps and plain dates (2006-01-02).
type FlexibleTime struct {
	time.Time
}

var flexibleLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (t *FlexibleTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	for _, layout := range flexibleLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (t *FlexibleTime) Ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}

type CreateFormDTO struct {
	Title             *bilingual.Text `json:"title"`
	Description       *bilingual.Text `json:"description"`
	Role              string          `json:"role"`
	Fields            []FormField     `json:"fields"`
	ProjectItemID     *string         `json:"projectItemId"`
	StartDate         *FlexibleTime   `json:"startDate"`
	EndDate           *FlexibleTime   `json:"endDate"`
	MaxResponses      *int            `json:"maxResponses"`
	IsActive          *bool           `json:"isActive"`
	EmailNotification *bool           `json:"emailNotification"`
}

// UpdateFormDTO only changes what is present. ProjectItemID, dates and
// capacity can be cleared with an explicit null.
type UpdateFormDTO struct {
	ID                string                 `json:"id"`
	Title             *bilingual.Text        `json:"title"`
	Description       *bilingual.Text        `json:"description"`
	Role              *string                `json:"role"`
	Fields            *[]FormField           `json:"fields"`
	ProjectItemID     Optional[string]       `json:"projectItemId"`
	StartDate         Optional[FlexibleTime] `json:"startDate"`
	EndDate           Optional[FlexibleTime] `json:"endDate"`
	MaxResponses      Optional[int]          `json:"maxResponses"`
	IsActive          *bool                  `json:"isActive"`
	EmailNotification *bool                  `json:"emailNotification"`
}

// Answers is the answer map keyed by field id. It decodes either an object
// or an array of {key|id, value} pairs.
type Answers map[string]any

func (a *Answers) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Answers{}
		return nil
	}

	if data[0] == '[' {
		var pairs []struct {
			Key   string `json:"key"`
			ID    string `json:"id"`
			Value any    `json:"value"`
		}
		if err := json.Unmarshal(data, &pairs); err != nil {
			return err
		}
		out := make(Answers, len(pairs))
		for _, p := range pairs {
			k := p.Key
			if k == "" {
				k = p.ID
			}
			if k == "" {
				continue
			}
			out[k] = p.Value
		}
		*a = out
		return nil
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("answers must be an object or an array of {key, value}: %w", err)
	}
	*a = m
	return nil
}

type SubmitResponseDTO struct {
	FormID         string  `json:"formId"`
	ApplicantName  string  `json:"applicantName"`
	ApplicantEmail string  `json:"applicantEmail"`
	Answers        Answers `json:"answers"`
	UserRef        *uint   `json:"userRef"`
}

type ReviewResponseDTO struct {
	ID          string  `json:"id"`
	Status      *string `json:"status"`
	Rating      *int    `json:"rating"`
	ReviewNotes *string `json:"reviewNotes"`
	Priority    *string `json:"priority"`
}

type FormStats struct {
	TotalForms       int64   `json:"totalForms"`
	ActiveForms      int64   `json:"activeForms"`
	TotalSubmissions int64   `json:"totalSubmissions"`
	AverageFields    float64 `json:"averageFields"`
}

// ResponseStats uses the admin dashboard's status names.
type ResponseStats struct {
	Total       int64 `json:"total"`
	Pending     int64 `json:"pending"`
	Approved    int64 `json:"approved"`
	Rejected    int64 `json:"rejected"`
	Shortlisted int64 `json:"shortlisted"`
}

// ProjectRecruitment is the public view of a project's linked form.
type ProjectRecruitment struct {
	Form   *Form         `json:"form"`
	Status DisplayStatus `json:"status"`
}
