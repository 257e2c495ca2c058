package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestIssueAndValidate(t *testing.T) {
	now := time.Now()
	s := newTestService(now)

	pair, err := s.Issue("owner")
	require.NoError(t, err)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.WithinDuration(t, now.Add(15*time.Minute), pair.AccessExpiresAt, time.Second)

	c, err := s.ValidateAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "owner", c.Subject)
	assert.Equal(t, TokenTypeAccess, c.TokenType)

	c, err = s.ValidateRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, c.TokenType)
}

func TestValidate_WrongKind(t *testing.T) {
	s := newTestService(time.Now())
	pair, err := s.Issue("owner")
	require.NoError(t, err)

	_, err = s.ValidateAccess(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = s.ValidateRefresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Expired(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	pair, err := newTestService(issued).Issue("owner")
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_Garbage(t *testing.T) {
	s := newTestService(time.Now())
	_, err := s.ValidateAccess("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	other := NewHMACService("other", "other", time.Minute, time.Minute)
	pair, err := other.Issue("owner")
	require.NoError(t, err)
	_, err = s.ValidateAccess(pair.AccessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestIssue_MissingSecret(t *testing.T) {
	s := NewHMACService("", "", time.Minute, time.Minute)
	_, err := s.Issue("owner")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
