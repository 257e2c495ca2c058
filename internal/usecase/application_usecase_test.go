package usecase

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"jobtrack/internal/domain/application"
	"jobtrack/internal/infrastructure/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFileStore struct {
	saved map[string]string
	err   error
}

func (m *mockFileStore) Save(_ context.Context, id uuid.UUID, kind string, filename string, r io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	b, _ := io.ReadAll(r)
	path := "uploads/" + id.String() + "/" + kind + "-" + filename
	if m.saved == nil {
		m.saved = map[string]string{}
	}
	m.saved[path] = string(b)
	return path, nil
}

func newTestApplicationUsecase(files FileStore) (*Application, *mockApplicationRepo) {
	repo := newMockApplicationRepo()
	deps, _, _ := testDeps()
	return NewApplicationUsecase(repo, files, 1024, deps), repo
}

func TestApplicationUsecase_CreateValidation(t *testing.T) {
	uc, _ := newTestApplicationUsecase(nil)
	companyID := uuid.New()

	_, err := uc.Create(context.Background(), ApplicationInput{Position: strPtr("Engineer")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(context.Background(), ApplicationInput{CompanyID: &companyID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(context.Background(), ApplicationInput{CompanyID: &companyID, Position: strPtr("Engineer"), Status: strPtr("GHOSTED")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(context.Background(), ApplicationInput{CompanyID: &companyID, Position: strPtr("Engineer"), WorkType: strPtr("SPACE")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplicationUsecase_StatusStampsAppliedAt(t *testing.T) {
	uc, _ := newTestApplicationUsecase(nil)
	companyID := uuid.New()

	a, err := uc.Create(context.Background(), ApplicationInput{CompanyID: &companyID, Position: strPtr("Engineer")})
	require.NoError(t, err)
	assert.Equal(t, application.StatusNotApplied, a.Status)
	assert.Nil(t, a.AppliedAt)

	a, err = uc.Update(context.Background(), a.ID, ApplicationInput{Status: strPtr("applied")})
	require.NoError(t, err)
	assert.Equal(t, application.StatusApplied, a.Status)
	require.NotNil(t, a.AppliedAt)
	assert.True(t, a.AppliedAt.Equal(fixedNow))

	// A later transition keeps the first stamp.
	a, err = uc.Update(context.Background(), a.ID, ApplicationInput{Status: strPtr("INTERVIEWING")})
	require.NoError(t, err)
	assert.True(t, a.AppliedAt.Equal(fixedNow))
}

func TestApplicationUsecase_ExplicitAppliedAtWins(t *testing.T) {
	uc, _ := newTestApplicationUsecase(nil)
	companyID := uuid.New()
	when := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

	a, err := uc.Create(context.Background(), ApplicationInput{
		CompanyID: &companyID,
		Position:  strPtr("Engineer"),
		Status:    strPtr("APPLIED"),
		AppliedAt: &when,
	})
	require.NoError(t, err)
	assert.True(t, a.AppliedAt.Equal(when))
}

func TestApplicationUsecase_AttachFiles(t *testing.T) {
	files := &mockFileStore{}
	uc, repo := newTestApplicationUsecase(files)
	companyID := uuid.New()
	a, err := uc.Create(context.Background(), ApplicationInput{CompanyID: &companyID, Position: strPtr("Engineer")})
	require.NoError(t, err)

	got, err := uc.AttachFiles(context.Background(), a.ID, []Upload{
		{Kind: FileResume, Filename: "cv.pdf", Size: 4, Content: strings.NewReader("%PDF")},
	})
	require.NoError(t, err)
	assert.Equal(t, "uploads/"+a.ID.String()+"/resume-cv.pdf", got.ResumePath)
	assert.Empty(t, got.CoverLetterPath)

	stored, err := repo.Get(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, got.ResumePath, stored.ResumePath)
}

func TestApplicationUsecase_AttachFilesRejects(t *testing.T) {
	uc, _ := newTestApplicationUsecase(&mockFileStore{})
	companyID := uuid.New()
	a, err := uc.Create(context.Background(), ApplicationInput{CompanyID: &companyID, Position: strPtr("Engineer")})
	require.NoError(t, err)

	_, err = uc.AttachFiles(context.Background(), a.ID, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.AttachFiles(context.Background(), a.ID, []Upload{{Kind: FileResume, Filename: "big.pdf", Size: 4096, Content: strings.NewReader("")}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.AttachFiles(context.Background(), uuid.New(), []Upload{{Kind: FileResume, Filename: "cv.pdf", Content: strings.NewReader("")}})
	assert.ErrorIs(t, err, ErrNotFound)

	tooBig, _ := newTestApplicationUsecase(&mockFileStore{err: storage.ErrTooLarge})
	b, err := tooBig.Create(context.Background(), ApplicationInput{CompanyID: &companyID, Position: strPtr("Engineer")})
	require.NoError(t, err)
	_, err = tooBig.AttachFiles(context.Background(), b.ID, []Upload{{Kind: FileCoverLetter, Filename: "letter.pdf", Content: strings.NewReader("x")}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestApplicationUsecase_FilterByStatus(t *testing.T) {
	uc, _ := newTestApplicationUsecase(nil)
	companyID := uuid.New()
	for _, s := range []string{"APPLIED", "OFFER", "APPLIED", "REJECTED"} {
		_, err := uc.Create(context.Background(), ApplicationInput{CompanyID: &companyID, Position: strPtr("Engineer"), Status: strPtr(s)})
		require.NoError(t, err)
	}

	for _, s := range application.Statuses() {
		s := s
		got, err := uc.List(context.Background(), application.Filter{Status: &s})
		require.NoError(t, err)
		require.NotNil(t, got)
		for _, a := range got {
			assert.Equal(t, s, a.Status)
		}
	}
}
