package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeFollowUp      Type = "FOLLOW_UP"
	TypeDeadline      Type = "DEADLINE"
	TypeInterviewPrep Type = "INTERVIEW_PREP"
	TypeNetworking    Type = "NETWORKING"
	TypeOther         Type = "OTHER"
)

func (t Type) Valid() bool {
	switch t {
	case TypeFollowUp, TypeDeadline, TypeInterviewPrep, TypeNetworking, TypeOther:
		return true
	}
	return false
}

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown reminder type %q", raw)
	}
	return t, nil
}

type Reminder struct {
	ID            uuid.UUID  `json:"id"`
	ApplicationID *uuid.UUID `json:"application_id"`
	ContactID     *uuid.UUID `json:"contact_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Type          Type       `json:"type"`
	DueDate       time.Time  `json:"due_date"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Position    string `json:"position,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
}

// SetCompleted keeps CompletedAt in step with IsCompleted.
func (r *Reminder) SetCompleted(done bool, now time.Time) {
	if r.IsCompleted == done {
		return
	}
	r.IsCompleted = done
	if done {
		t := now.UTC()
		r.CompletedAt = &t
		return
	}
	r.CompletedAt = nil
}

func (r *Reminder) Toggle(now time.Time) {
	r.SetCompleted(!r.IsCompleted, now)
}

func (r Reminder) Overdue(now time.Time) bool {
	return !r.IsCompleted && r.DueDate.Before(now)
}

type Filter struct {
	Completed     *bool
	ApplicationID *uuid.UUID
	DueFrom       *time.Time
	DueBefore     *time.Time
}
