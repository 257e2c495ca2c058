package learning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name          string
		in            Item
		statusChanged bool
		wantStatus    Status
		wantProgress  int
	}{
		{"completed sets full progress", Item{Status: StatusCompleted, Progress: 30}, true, StatusCompleted, 100},
		{"full progress completes", Item{Status: StatusInProgress, Progress: 100}, false, StatusCompleted, 100},
		{"progress starts item", Item{Status: StatusNotStarted, Progress: 10}, false, StatusInProgress, 10},
		{"zero progress stays not started", Item{Status: StatusNotStarted}, false, StatusNotStarted, 0},
		{"in progress kept", Item{Status: StatusInProgress, Progress: 50}, true, StatusInProgress, 50},
		{"reopen completed item", Item{Status: StatusInProgress, Progress: 100}, true, StatusInProgress, 99},
		{"reset to not started", Item{Status: StatusNotStarted, Progress: 100}, true, StatusNotStarted, 0},
		{"lowered progress reopens", Item{Status: StatusCompleted, Progress: 40}, false, StatusInProgress, 40},
		{"cleared progress resets", Item{Status: StatusCompleted, Progress: 0}, false, StatusNotStarted, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := tc.in
			require.NoError(t, it.Normalize(tc.statusChanged))
			assert.Equal(t, tc.wantStatus, it.Status)
			assert.Equal(t, tc.wantProgress, it.Progress)
		})
	}
}

func TestNormalize_Range(t *testing.T) {
	it := Item{Progress: 101}
	assert.ErrorIs(t, it.Normalize(false), ErrProgressRange)
	it = Item{Progress: -1}
	assert.ErrorIs(t, it.Normalize(false), ErrProgressRange)
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("high")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)
	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}
