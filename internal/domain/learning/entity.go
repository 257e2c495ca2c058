package learning

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown learning status %q", raw)
	}
	return s, nil
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(raw)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown learning priority %q", raw)
	}
	return p, nil
}

var ErrProgressRange = errors.New("progress must be between 0 and 100")

type Item struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Category   string     `json:"category"`
	Status     Status     `json:"status"`
	Priority   Priority   `json:"priority"`
	Progress   int        `json:"progress"`
	URL        string     `json:"url"`
	Notes      string     `json:"notes"`
	TargetDate *time.Time `json:"target_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Normalize reconciles Status and Progress after an edit. statusChanged tells
// which side the caller touched; the touched side wins.
func (i *Item) Normalize(statusChanged bool) error {
	if i.Progress < 0 || i.Progress > 100 {
		return ErrProgressRange
	}
	if statusChanged {
		switch i.Status {
		case StatusCompleted:
			i.Progress = 100
		case StatusNotStarted:
			i.Progress = 0
		case StatusInProgress:
			if i.Progress == 100 {
				i.Progress = 99
			}
		}
		return nil
	}
	switch {
	case i.Progress == 100:
		i.Status = StatusCompleted
	case i.Progress == 0 && i.Status == StatusCompleted:
		i.Status = StatusNotStarted
	case i.Progress > 0 && i.Status != StatusInProgress:
		i.Status = StatusInProgress
	}
	return nil
}

type Filter struct {
	Status   *Status
	Priority *Priority
	Category string
}
