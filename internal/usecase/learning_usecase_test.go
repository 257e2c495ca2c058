package usecase

import (
	"context"
	"testing"

	"jobtrack/internal/domain/learning"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearningUsecase_ProgressDrivesStatus(t *testing.T) {
	uc := NewLearningUsecase(newMockLearningRepo(), Deps{})
	ctx := context.Background()

	it, err := uc.Create(ctx, LearningInput{Title: strPtr("Distributed systems")})
	require.NoError(t, err)
	assert.Equal(t, learning.StatusNotStarted, it.Status)
	assert.Equal(t, learning.PriorityMedium, it.Priority)

	it, err = uc.Update(ctx, it.ID, LearningInput{Progress: intPtr(40)})
	require.NoError(t, err)
	assert.Equal(t, learning.StatusInProgress, it.Status)

	it, err = uc.Update(ctx, it.ID, LearningInput{Progress: intPtr(100)})
	require.NoError(t, err)
	assert.Equal(t, learning.StatusCompleted, it.Status)
}

func TestLearningUsecase_CompletingSetsFullProgress(t *testing.T) {
	uc := NewLearningUsecase(newMockLearningRepo(), Deps{})
	ctx := context.Background()

	it, err := uc.Create(ctx, LearningInput{Title: strPtr("Go generics"), Progress: intPtr(10)})
	require.NoError(t, err)

	it, err = uc.Update(ctx, it.ID, LearningInput{Status: strPtr("COMPLETED")})
	require.NoError(t, err)
	assert.Equal(t, 100, it.Progress)
}

func TestLearningUsecase_ReopenCompleted(t *testing.T) {
	uc := NewLearningUsecase(newMockLearningRepo(), Deps{})
	ctx := context.Background()

	it, err := uc.Create(ctx, LearningInput{Title: strPtr("Kubernetes"), Status: strPtr("COMPLETED")})
	require.NoError(t, err)
	require.Equal(t, 100, it.Progress)

	it, err = uc.Update(ctx, it.ID, LearningInput{Status: strPtr("IN_PROGRESS")})
	require.NoError(t, err)
	assert.Equal(t, learning.StatusInProgress, it.Status)
	assert.Less(t, it.Progress, 100)

	it, err = uc.Update(ctx, it.ID, LearningInput{Progress: intPtr(100)})
	require.NoError(t, err)
	require.Equal(t, learning.StatusCompleted, it.Status)

	it, err = uc.Update(ctx, it.ID, LearningInput{Progress: intPtr(60)})
	require.NoError(t, err)
	assert.Equal(t, learning.StatusInProgress, it.Status)
	assert.Equal(t, 60, it.Progress)
}

func TestLearningUsecase_Validation(t *testing.T) {
	uc := NewLearningUsecase(newMockLearningRepo(), Deps{})
	ctx := context.Background()

	_, err := uc.Create(ctx, LearningInput{})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.Create(ctx, LearningInput{Title: strPtr("x"), Progress: intPtr(101)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = uc.Create(ctx, LearningInput{Title: strPtr("x"), Priority: strPtr("URGENT")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
