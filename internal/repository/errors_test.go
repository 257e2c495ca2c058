package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, notFound(fmt.Errorf("scan: %w", pgx.ErrNoRows)), ErrNotFound)
	other := errors.New("conn reset")
	assert.Equal(t, other, notFound(other))
	assert.NoError(t, notFound(nil))
}

func TestWhere(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())

	w.add("a.status = ?", "APPLIED")
	w.addRaw("a.applied_at IS NOT NULL")
	w.add("(a.position ILIKE ? OR c.name ILIKE ?)", "%go%")
	assert.Equal(t, " WHERE a.status = $1 AND a.applied_at IS NOT NULL AND (a.position ILIKE $2 OR c.name ILIKE $2)", w.String())
	assert.Equal(t, []any{"APPLIED", "%go%"}, w.args)
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%go%", likePattern(" go "))
	assert.Equal(t, `%100\%\_x%`, likePattern("100%_x"))
}
