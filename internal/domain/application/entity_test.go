package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		got, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseStatus(" interviewing ")
	require.NoError(t, err)
	assert.Equal(t, StatusInterviewing, got)

	_, err = ParseStatus("GHOSTED")
	assert.Error(t, err)
}

func TestSetStatus_StampsAppliedAtOnce(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a := Application{Status: StatusNotApplied}

	a.SetStatus(StatusNotApplied, now)
	assert.Nil(t, a.AppliedAt)

	a.SetStatus(StatusApplied, now)
	require.NotNil(t, a.AppliedAt)
	assert.Equal(t, now, *a.AppliedAt)

	a.SetStatus(StatusRejected, now.Add(48*time.Hour))
	assert.Equal(t, now, *a.AppliedAt)

	// any status may move back to any other
	a.SetStatus(StatusNotApplied, now)
	assert.Equal(t, StatusNotApplied, a.Status)
}

func TestParseSort(t *testing.T) {
	s, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, Sort{Field: SortCreatedAt, Desc: true}, s)

	s, err = ParseSort("-applied_at")
	require.NoError(t, err)
	assert.Equal(t, Sort{Field: SortAppliedAt, Desc: true}, s)

	s, err = ParseSort("company")
	require.NoError(t, err)
	assert.Equal(t, Sort{Field: SortCompany}, s)

	_, err = ParseSort("salary")
	assert.Error(t, err)
}

func TestParseWorkType(t *testing.T) {
	w, err := ParseWorkType("remote")
	require.NoError(t, err)
	assert.Equal(t, WorkTypeRemote, w)

	w, err = ParseWorkType("")
	require.NoError(t, err)
	assert.Equal(t, WorkTypeUnspecified, w)

	_, err = ParseWorkType("moon")
	assert.Error(t, err)
}
