package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"jobtrack/internal/domain/event"
	"jobtrack/internal/domain/reminder"
	"jobtrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEventUC struct {
	usecase.EventUsecase

	lastFilter  event.Filter
	lastOutcome usecase.OutcomeInput
	steps       []event.NextStep
}

func (f *fakeEventUC) List(_ context.Context, flt event.Filter) ([]event.Event, error) {
	f.lastFilter = flt
	return []event.Event{}, nil
}

func (f *fakeEventUC) SetOutcome(_ context.Context, id uuid.UUID, in usecase.OutcomeInput) (event.Event, error) {
	f.lastOutcome = in
	return event.Event{ID: id, Status: event.StatusCompleted, Outcome: *in.Outcome, NextSteps: in.NextSteps}, nil
}

func (f *fakeEventUC) AddNextStep(_ context.Context, id uuid.UUID, text string) (event.Event, error) {
	f.steps = append(f.steps, event.NextStep{Text: text})
	return event.Event{ID: id, NextSteps: f.steps}, nil
}

func (f *fakeEventUC) ToggleNextStep(_ context.Context, id uuid.UUID, index int) (event.Event, error) {
	if index < 0 || index >= len(f.steps) {
		return event.Event{}, fmt.Errorf("%w: next step index %d out of range", usecase.ErrInvalidInput, index)
	}
	f.steps[index].Completed = !f.steps[index].Completed
	return event.Event{ID: id, NextSteps: f.steps}, nil
}

func TestEventHandler_ListFilters(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	uc := &fakeEventUC{}
	app := newTestApp("/events", NewEventHandler(uc, loc))

	resp, _ := call(t, app, http.MethodGet, "/events?type=technical&status=SCHEDULED&from=2026-03-01&to=2026-03-31T23:00:00Z", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, event.TypeTechnical, *uc.lastFilter.Type)
	assert.Equal(t, event.StatusScheduled, *uc.lastFilter.Status)
	assert.True(t, uc.lastFilter.From.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, loc)), "plain dates are read in the configured zone")
	assert.True(t, uc.lastFilter.To.Equal(time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)))

	resp, env := call(t, app, http.MethodGet, "/events?from=03/01/2026", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, env.Message, "invalid from")
}

func TestEventHandler_OutcomeAndNextSteps(t *testing.T) {
	uc := &fakeEventUC{}
	app := newTestApp("/events", NewEventHandler(uc, nil))
	id := uuid.New()
	base := "/events/" + id.String()

	resp, env := call(t, app, http.MethodPut, base+"/outcome", map[string]any{
		"outcome":    "Went well",
		"next_steps": []map[string]any{{"text": "Send thank-you"}},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	e := decode[event.Event](t, env)
	assert.Equal(t, "Went well", e.Outcome)
	require.Len(t, uc.lastOutcome.NextSteps, 1)

	resp, _ = call(t, app, http.MethodPost, base+"/next-steps", map[string]string{"text": "Prepare system design"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, env = call(t, app, http.MethodPatch, base+"/next-steps/0/toggle", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decode[event.Event](t, env).NextSteps[0].Completed)

	resp, env = call(t, app, http.MethodPatch, base+"/next-steps/abc/toggle", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid index", env.Message)

	resp, env = call(t, app, http.MethodPatch, base+"/next-steps/7/toggle", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "next step index 7 out of range", env.Message)
}

type fakeReminderUC struct {
	usecase.ReminderUsecase

	within     time.Duration
	lastFilter reminder.Filter
	gotID      uuid.UUID
}

func (f *fakeReminderUC) List(_ context.Context, flt reminder.Filter) ([]reminder.Reminder, error) {
	f.lastFilter = flt
	return []reminder.Reminder{}, nil
}

func (f *fakeReminderUC) Due(_ context.Context, within time.Duration) ([]reminder.Reminder, error) {
	f.within = within
	return []reminder.Reminder{}, nil
}

func (f *fakeReminderUC) Toggle(_ context.Context, id uuid.UUID) (reminder.Reminder, error) {
	f.gotID = id
	return reminder.Reminder{ID: id, IsCompleted: true}, nil
}

func TestReminderHandler_DueIsNotAnID(t *testing.T) {
	uc := &fakeReminderUC{}
	app := newTestApp("/reminders", NewReminderHandler(uc, nil))

	resp, _ := call(t, app, http.MethodGet, "/reminders/due", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 24*time.Hour, uc.within)

	resp, _ = call(t, app, http.MethodGet, "/reminders/due?hours=72", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 72*time.Hour, uc.within)

	uc.within = 0
	resp, _ = call(t, app, http.MethodGet, "/reminders/due?hours=3000000", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, uc.within)
}

func TestReminderHandler_ListAndToggle(t *testing.T) {
	uc := &fakeReminderUC{}
	app := newTestApp("/reminders", NewReminderHandler(uc, time.UTC))

	resp, _ := call(t, app, http.MethodGet, "/reminders?completed=false&due_before=2026-04-01", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, uc.lastFilter.Completed)
	assert.False(t, *uc.lastFilter.Completed)
	assert.True(t, uc.lastFilter.DueBefore.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))

	id := uuid.New()
	resp, env := call(t, app, http.MethodPatch, "/reminders/"+id.String()+"/toggle", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, id, uc.gotID)
	assert.True(t, decode[reminder.Reminder](t, env).IsCompleted)
}
