package seeder

import (
	"context"

	"jobtrack/internal/database"
)

// Seeder inserts starter rows. Run must be safe to repeat.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) (int, error)
}
