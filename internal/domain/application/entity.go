package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNotApplied   Status = "NOT_APPLIED"
	StatusApplied      Status = "APPLIED"
	StatusInReview     Status = "IN_REVIEW"
	StatusInterviewing Status = "INTERVIEWING"
	StatusOffer        Status = "OFFER"
	StatusAccepted     Status = "ACCEPTED"
	StatusRejected     Status = "REJECTED"
	StatusWithdrawn    Status = "WITHDRAWN"
)

var statuses = []Status{
	StatusNotApplied,
	StatusApplied,
	StatusInReview,
	StatusInterviewing,
	StatusOffer,
	StatusAccepted,
	StatusRejected,
	StatusWithdrawn,
}

func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

func (s Status) Valid() bool {
	for _, v := range statuses {
		if v == s {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown application status %q", raw)
	}
	return s, nil
}

type WorkType string

const (
	WorkTypeUnspecified WorkType = ""
	WorkTypeRemote      WorkType = "REMOTE"
	WorkTypeHybrid      WorkType = "HYBRID"
	WorkTypeOnsite      WorkType = "ONSITE"
)

func (w WorkType) Valid() bool {
	switch w {
	case WorkTypeUnspecified, WorkTypeRemote, WorkTypeHybrid, WorkTypeOnsite:
		return true
	}
	return false
}

func ParseWorkType(raw string) (WorkType, error) {
	w := WorkType(strings.ToUpper(strings.TrimSpace(raw)))
	if !w.Valid() {
		return "", fmt.Errorf("unknown work type %q", raw)
	}
	return w, nil
}

type CompanyRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type Application struct {
	ID              uuid.UUID  `json:"id"`
	CompanyID       uuid.UUID  `json:"company_id"`
	Company         CompanyRef `json:"company"`
	Position        string     `json:"position"`
	Status          Status     `json:"status"`
	JobURL          string     `json:"job_url"`
	Location        string     `json:"location"`
	Salary          string     `json:"salary"`
	WorkType        WorkType   `json:"work_type"`
	JobDescription  string     `json:"job_description"`
	Notes           string     `json:"notes"`
	AppliedAt       *time.Time `json:"applied_at"`
	ResumePath      string     `json:"resume_path"`
	CoverLetterPath string     `json:"cover_letter_path"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SetStatus performs the transition. Any status may follow any other; leaving
// NOT_APPLIED stamps AppliedAt when the user has not set it.
func (a *Application) SetStatus(s Status, now time.Time) {
	a.Status = s
	if s != StatusNotApplied && a.AppliedAt == nil {
		t := now.UTC()
		a.AppliedAt = &t
	}
}

// ActivityTime is the timestamp analytics buckets an application under.
func (a Application) ActivityTime() time.Time {
	if a.AppliedAt != nil {
		return *a.AppliedAt
	}
	return a.CreatedAt
}

func IsApplied(s Status) bool {
	return s != StatusNotApplied
}

type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortAppliedAt SortField = "applied_at"
	SortCompany   SortField = "company"
	SortStatus    SortField = "status"
)

type Sort struct {
	Field SortField
	Desc  bool
}

func ParseSort(raw string) (Sort, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Sort{Field: SortCreatedAt, Desc: true}, nil
	}
	desc := strings.HasPrefix(raw, "-")
	f := SortField(strings.ToLower(strings.TrimPrefix(raw, "-")))
	switch f {
	case SortCreatedAt, SortAppliedAt, SortCompany, SortStatus:
		return Sort{Field: f, Desc: desc}, nil
	}
	return Sort{}, fmt.Errorf("unknown sort field %q", raw)
}

type Filter struct {
	Status    *Status
	CompanyID *uuid.UUID
	Query     string
	Sort      Sort
}

// Draft is an application prefilled from a scraped job posting; it is not persisted.
type Draft struct {
	URL            string `json:"url"`
	Position       string `json:"position"`
	CompanyName    string `json:"company_name"`
	Location       string `json:"location"`
	JobDescription string `json:"job_description"`
	Headless       bool   `json:"headless"`
}

// ImportResult is one entry of a batch import; exactly one of Draft and Error is set.
type ImportResult struct {
	URL   string `json:"url"`
	Draft *Draft `json:"draft,omitempty"`
	Error string `json:"error,omitempty"`
}
