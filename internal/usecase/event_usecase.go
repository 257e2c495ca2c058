package usecase

import (
	"context"
	"errors"
	"time"

	"jobtrack/internal/domain/event"
	"jobtrack/internal/repository"
	"jobtrack/internal/ws"

	"github.com/google/uuid"
)

const entityEvent = "event"

type EventInput struct {
	ApplicationID   *uuid.UUID       `json:"application_id"`
	ContactID       *uuid.UUID       `json:"contact_id"`
	Title           *string          `json:"title"`
	Type            *string          `json:"type"`
	Status          *string          `json:"status"`
	ScheduledAt     *time.Time       `json:"scheduled_at"`
	DurationMinutes *int             `json:"duration_minutes"`
	Location        *string          `json:"location"`
	MeetingURL      *string          `json:"meeting_url"`
	Notes           *string          `json:"notes"`
	Outcome         *string          `json:"outcome"`
	NextSteps       []event.NextStep `json:"next_steps"`
}

func nullableID(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	v := *id
	return &v
}

func (in EventInput) apply(e *event.Event) error {
	if in.ApplicationID != nil {
		e.ApplicationID = nullableID(in.ApplicationID)
	}
	if in.ContactID != nil {
		e.ContactID = nullableID(in.ContactID)
	}
	if in.Title != nil {
		if trimmed(in.Title) == "" {
			return invalid("title cannot be empty")
		}
		e.Title = trimmed(in.Title)
	}
	if in.Type != nil {
		t, err := event.ParseType(*in.Type)
		if err != nil {
			return invalid("%s", err.Error())
		}
		e.Type = t
	}
	if in.Status != nil {
		s, err := event.ParseStatus(*in.Status)
		if err != nil {
			return invalid("%s", err.Error())
		}
		e.Status = s
	}
	if in.ScheduledAt != nil {
		if in.ScheduledAt.IsZero() {
			return invalid("scheduled_at cannot be empty")
		}
		e.ScheduledAt = in.ScheduledAt.UTC()
	}
	if in.DurationMinutes != nil {
		if *in.DurationMinutes < 0 {
			return invalid("duration_minutes cannot be negative")
		}
		e.DurationMinutes = *in.DurationMinutes
	}
	setString(&e.Location, in.Location)
	setString(&e.MeetingURL, in.MeetingURL)
	setString(&e.Notes, in.Notes)
	setString(&e.Outcome, in.Outcome)
	if in.NextSteps != nil {
		e.NextSteps = event.NormalizeSteps(in.NextSteps)
	}
	return nil
}

type OutcomeInput struct {
	Outcome   *string          `json:"outcome"`
	NextSteps []event.NextStep `json:"next_steps"`
	Status    *string          `json:"status"`
}

type EventUsecase interface {
	List(ctx context.Context, f event.Filter) ([]event.Event, error)
	Get(ctx context.Context, id uuid.UUID) (event.Event, error)
	Create(ctx context.Context, in EventInput) (event.Event, error)
	Update(ctx context.Context, id uuid.UUID, in EventInput) (event.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetOutcome(ctx context.Context, id uuid.UUID, in OutcomeInput) (event.Event, error)
	AddNextStep(ctx context.Context, id uuid.UUID, text string) (event.Event, error)
	ToggleNextStep(ctx context.Context, id uuid.UUID, index int) (event.Event, error)
	RemoveNextStep(ctx context.Context, id uuid.UUID, index int) (event.Event, error)
}

type Event struct {
	repo repository.EventRepository
	deps Deps
}

func NewEventUsecase(repo repository.EventRepository, deps Deps) *Event {
	return &Event{repo: repo, deps: deps.withDefaults()}
}

func (u *Event) List(ctx context.Context, f event.Filter) ([]event.Event, error) {
	if f.From != nil && f.To != nil && !f.From.Before(*f.To) {
		return nil, invalid("from must be before to")
	}
	out, err := u.repo.List(ctx, f)
	if err != nil {
		return nil, storeErr(u.deps.Logger, "event.list", entityEvent, err)
	}
	return out, nil
}

func (u *Event) Get(ctx context.Context, id uuid.UUID) (event.Event, error) {
	e, err := u.repo.Get(ctx, id)
	if err != nil {
		return event.Event{}, storeErr(u.deps.Logger, "event.get", entityEvent, err)
	}
	return e, nil
}

func (u *Event) Create(ctx context.Context, in EventInput) (event.Event, error) {
	if trimmed(in.Title) == "" {
		return event.Event{}, invalid("title is required")
	}
	if in.ScheduledAt == nil || in.ScheduledAt.IsZero() {
		return event.Event{}, invalid("scheduled_at is required")
	}
	e := event.Event{
		ID:        uuid.New(),
		Type:      event.TypeOther,
		Status:    event.StatusScheduled,
		NextSteps: []event.NextStep{},
	}
	if err := in.apply(&e); err != nil {
		return event.Event{}, err
	}

	created, err := u.repo.Create(ctx, e)
	if err != nil {
		return event.Event{}, storeErr(u.deps.Logger, "event.create", entityEvent, err)
	}
	u.deps.changed(ctx, entityEvent, ws.ActionCreated, created.ID)
	return created, nil
}

func (u *Event) Update(ctx context.Context, id uuid.UUID, in EventInput) (event.Event, error) {
	return u.mutate(ctx, id, "event.update", in.apply)
}

func (u *Event) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return storeErr(u.deps.Logger, "event.delete", entityEvent, err)
	}
	u.deps.changed(ctx, entityEvent, ws.ActionDeleted, id)
	return nil
}

// SetOutcome records how the event went. Recording an outcome on a scheduled
// event marks it completed unless a status is given.
func (u *Event) SetOutcome(ctx context.Context, id uuid.UUID, in OutcomeInput) (event.Event, error) {
	return u.mutate(ctx, id, "event.outcome", func(e *event.Event) error {
		setString(&e.Outcome, in.Outcome)
		if in.NextSteps != nil {
			e.NextSteps = event.NormalizeSteps(in.NextSteps)
		}
		switch {
		case in.Status != nil:
			s, err := event.ParseStatus(*in.Status)
			if err != nil {
				return invalid("%s", err.Error())
			}
			e.Status = s
		case e.Status == event.StatusScheduled && e.Outcome != "":
			e.Status = event.StatusCompleted
		}
		return nil
	})
}

func (u *Event) AddNextStep(ctx context.Context, id uuid.UUID, text string) (event.Event, error) {
	return u.mutate(ctx, id, "event.next_steps.add", func(e *event.Event) error {
		if err := e.AddStep(text); err != nil {
			return invalid("%s", err.Error())
		}
		return nil
	})
}

func (u *Event) ToggleNextStep(ctx context.Context, id uuid.UUID, index int) (event.Event, error) {
	return u.mutate(ctx, id, "event.next_steps.toggle", func(e *event.Event) error {
		return stepErr(e.ToggleStep(index))
	})
}

func (u *Event) RemoveNextStep(ctx context.Context, id uuid.UUID, index int) (event.Event, error) {
	return u.mutate(ctx, id, "event.next_steps.remove", func(e *event.Event) error {
		return stepErr(e.RemoveStep(index))
	})
}

func stepErr(err error) error {
	if errors.Is(err, event.ErrStepIndex) {
		return invalid("%s", err.Error())
	}
	return err
}

// mutate is the read-modify-write cycle shared by the event operations; the
// next steps column is rewritten in full every time.
func (u *Event) mutate(ctx context.Context, id uuid.UUID, op string, fn func(*event.Event) error) (event.Event, error) {
	e, err := u.repo.Get(ctx, id)
	if err != nil {
		return event.Event{}, storeErr(u.deps.Logger, op, entityEvent, err)
	}
	if err := fn(&e); err != nil {
		return event.Event{}, err
	}
	updated, err := u.repo.Update(ctx, e)
	if err != nil {
		return event.Event{}, storeErr(u.deps.Logger, op, entityEvent, err)
	}
	u.deps.changed(ctx, entityEvent, ws.ActionUpdated, id)
	return updated, nil
}
