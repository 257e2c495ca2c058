package event

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePhoneScreen Type = "PHONE_SCREEN"
	TypeTechnical   Type = "TECHNICAL"
	TypeBehavioral  Type = "BEHAVIORAL"
	TypeOnsite      Type = "ONSITE"
	TypeFinal       Type = "FINAL"
	TypeNetworking  Type = "NETWORKING"
	TypeOther       Type = "OTHER"
)

var types = []Type{TypePhoneScreen, TypeTechnical, TypeBehavioral, TypeOnsite, TypeFinal, TypeNetworking, TypeOther}

func Types() []Type {
	out := make([]Type, len(types))
	copy(out, types)
	return out
}

func (t Type) Valid() bool {
	for _, v := range types {
		if v == t {
			return true
		}
	}
	return false
}

// IsInterview reports whether the event type counts as an interview round.
func (t Type) IsInterview() bool {
	switch t {
	case TypePhoneScreen, TypeTechnical, TypeBehavioral, TypeOnsite, TypeFinal:
		return true
	}
	return false
}

func ParseType(raw string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown event type %q", raw)
	}
	return t, nil
}

type Status string

const (
	StatusScheduled   Status = "SCHEDULED"
	StatusCompleted   Status = "COMPLETED"
	StatusCancelled   Status = "CANCELLED"
	StatusRescheduled Status = "RESCHEDULED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown event status %q", raw)
	}
	return s, nil
}

type NextStep struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

var ErrStepIndex = errors.New("next step index out of range")

type Event struct {
	ID              uuid.UUID  `json:"id"`
	ApplicationID   *uuid.UUID `json:"application_id"`
	ContactID       *uuid.UUID `json:"contact_id"`
	Title           string     `json:"title"`
	Type            Type       `json:"type"`
	Status          Status     `json:"status"`
	ScheduledAt     time.Time  `json:"scheduled_at"`
	DurationMinutes int        `json:"duration_minutes"`
	Location        string     `json:"location"`
	MeetingURL      string     `json:"meeting_url"`
	Notes           string     `json:"notes"`
	Outcome         string     `json:"outcome"`
	NextSteps       []NextStep `json:"next_steps"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Display-only joins.
	Position    string `json:"position,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	ContactName string `json:"contact_name,omitempty"`
}

func (e Event) EndsAt() time.Time {
	return e.ScheduledAt.Add(time.Duration(e.DurationMinutes) * time.Minute)
}

// EncodeNextSteps serialises the full list for the TEXT column.
func EncodeNextSteps(steps []NextStep) (string, error) {
	if steps == nil {
		steps = []NextStep{}
	}
	b, err := json.Marshal(steps)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeNextSteps reads the TEXT column; blank or malformed content reads as empty.
func DecodeNextSteps(raw string) []NextStep {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []NextStep{}
	}
	var steps []NextStep
	if err := json.Unmarshal([]byte(raw), &steps); err != nil || steps == nil {
		return []NextStep{}
	}
	return steps
}

// NormalizeSteps trims text and drops empty entries.
func NormalizeSteps(steps []NextStep) []NextStep {
	out := make([]NextStep, 0, len(steps))
	for _, s := range steps {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (e *Event) ToggleStep(index int) error {
	if index < 0 || index >= len(e.NextSteps) {
		return ErrStepIndex
	}
	e.NextSteps[index].Completed = !e.NextSteps[index].Completed
	return nil
}

func (e *Event) AddStep(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("next step text is required")
	}
	e.NextSteps = append(e.NextSteps, NextStep{Text: text})
	return nil
}

func (e *Event) RemoveStep(index int) error {
	if index < 0 || index >= len(e.NextSteps) {
		return ErrStepIndex
	}
	e.NextSteps = append(e.NextSteps[:index:index], e.NextSteps[index+1:]...)
	return nil
}

type Filter struct {
	ApplicationID *uuid.UUID
	Type          *Type
	Status        *Status
	From          *time.Time
	To            *time.Time
}
