package usecase

import (
	"context"
	"testing"
	"time"

	"jobtrack/internal/domain/event"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEvent(t *testing.T) (*Event, event.Event) {
	t.Helper()
	deps, _, _ := testDeps()
	uc := NewEventUsecase(newMockEventRepo(), deps)
	when := fixedNow.Add(48 * time.Hour)
	e, err := uc.Create(context.Background(), EventInput{Title: strPtr("Tech screen"), ScheduledAt: &when})
	require.NoError(t, err)
	return uc, e
}

func TestEventUsecase_CreateDefaults(t *testing.T) {
	_, e := newTestEvent(t)
	assert.Equal(t, event.TypeOther, e.Type)
	assert.Equal(t, event.StatusScheduled, e.Status)
	assert.NotNil(t, e.NextSteps)
	assert.Empty(t, e.NextSteps)
}

func TestEventUsecase_CreateValidation(t *testing.T) {
	uc := NewEventUsecase(newMockEventRepo(), Deps{})
	when := fixedNow

	_, err := uc.Create(context.Background(), EventInput{ScheduledAt: &when})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.Create(context.Background(), EventInput{Title: strPtr("x")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.Create(context.Background(), EventInput{Title: strPtr("x"), ScheduledAt: &when, Type: strPtr("COFFEE")})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.Create(context.Background(), EventInput{Title: strPtr("x"), ScheduledAt: &when, DurationMinutes: intPtr(-5)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEventUsecase_NextSteps(t *testing.T) {
	uc, e := newTestEvent(t)
	ctx := context.Background()

	e, err := uc.AddNextStep(ctx, e.ID, "Send thank-you note")
	require.NoError(t, err)
	e, err = uc.AddNextStep(ctx, e.ID, "Prepare system design")
	require.NoError(t, err)
	require.Len(t, e.NextSteps, 2)

	e, err = uc.ToggleNextStep(ctx, e.ID, 1)
	require.NoError(t, err)
	assert.False(t, e.NextSteps[0].Completed)
	assert.True(t, e.NextSteps[1].Completed)

	_, err = uc.ToggleNextStep(ctx, e.ID, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.RemoveNextStep(ctx, e.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	e, err = uc.RemoveNextStep(ctx, e.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, []event.NextStep{{Text: "Prepare system design", Completed: true}}, e.NextSteps)

	_, err = uc.AddNextStep(ctx, e.ID, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.AddNextStep(ctx, uuid.New(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventUsecase_SetOutcome(t *testing.T) {
	uc, e := newTestEvent(t)
	ctx := context.Background()

	got, err := uc.SetOutcome(ctx, e.ID, OutcomeInput{
		Outcome:   strPtr("Went well"),
		NextSteps: []event.NextStep{{Text: "Wait for feedback"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Went well", got.Outcome)
	assert.Equal(t, event.StatusCompleted, got.Status)
	assert.Len(t, got.NextSteps, 1)

	got, err = uc.SetOutcome(ctx, e.ID, OutcomeInput{Status: strPtr("RESCHEDULED")})
	require.NoError(t, err)
	assert.Equal(t, event.StatusRescheduled, got.Status)
	assert.Equal(t, "Went well", got.Outcome)
}

func TestEventUsecase_ListRejectsInvertedRange(t *testing.T) {
	uc := NewEventUsecase(newMockEventRepo(), Deps{})
	from, to := fixedNow, fixedNow.Add(-time.Hour)
	_, err := uc.List(context.Background(), event.Filter{From: &from, To: &to})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
