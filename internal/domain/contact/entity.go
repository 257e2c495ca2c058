package contact

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNotContacted Status = "NOT_CONTACTED"
	StatusReachedOut   Status = "REACHED_OUT"
	StatusResponded    Status = "RESPONDED"
	StatusConnected    Status = "CONNECTED"
	StatusReferred     Status = "REFERRED"
	StatusUnresponsive Status = "UNRESPONSIVE"
)

var statuses = []Status{
	StatusNotContacted,
	StatusReachedOut,
	StatusResponded,
	StatusConnected,
	StatusReferred,
	StatusUnresponsive,
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
		return "", fmt.Errorf("unknown contact status %q", raw)
	}
	return s, nil
}

type Contact struct {
	ID              uuid.UUID  `json:"id"`
	CompanyID       uuid.UUID  `json:"company_id"`
	CompanyName     string     `json:"company_name"`
	Name            string     `json:"name"`
	Title           string     `json:"title"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	LinkedInURL     string     `json:"linkedin_url"`
	Status          Status     `json:"status"`
	CanRefer        bool       `json:"can_refer"`
	Notes           string     `json:"notes"`
	LastContactedAt *time.Time `json:"last_contacted_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Filter struct {
	Status    *Status
	CompanyID *uuid.UUID
	CanRefer  *bool
	Query     string
}
