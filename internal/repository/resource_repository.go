package repository

import (
	"context"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/resource"

	"github.com/google/uuid"
)

type ResourceRepository interface {
	List(ctx context.Context, f resource.Filter) ([]resource.Resource, error)
	Get(ctx context.Context, id uuid.UUID) (resource.Resource, error)
	ParentOf(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
	Create(ctx context.Context, res resource.Resource) (resource.Resource, error)
	Update(ctx context.Context, res resource.Resource) (resource.Resource, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresResourceRepository struct {
	db database.Querier
}

func NewPostgresResourceRepository(db database.Querier) *PostgresResourceRepository {
	return &PostgresResourceRepository{db: db}
}

const resourceColumns = `id, parent_id, title, url, kind, description, progress, is_completed, sort_order, created_at, updated_at`

func scanResource(row database.Row) (resource.Resource, error) {
	var res resource.Resource
	err := row.Scan(&res.ID, &res.ParentID, &res.Title, &res.URL, &res.Kind, &res.Description, &res.Progress,
		&res.IsCompleted, &res.SortOrder, &res.CreatedAt, &res.UpdatedAt)
	return res, err
}

func (r *PostgresResourceRepository) List(ctx context.Context, f resource.Filter) ([]resource.Resource, error) {
	var w where
	switch {
	case f.ParentID != nil:
		w.add("parent_id = ?", *f.ParentID)
	case f.RootOnly:
		w.addRaw("parent_id IS NULL")
	}

	rows, err := r.db.Query(ctx, `SELECT `+resourceColumns+` FROM resources`+w.String()+` ORDER BY sort_order ASC, lower(title) ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resource.Resource, 0)
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResourceRepository) Get(ctx context.Context, id uuid.UUID) (resource.Resource, error) {
	res, err := scanResource(r.db.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id))
	if err != nil {
		return resource.Resource{}, notFound(err)
	}
	return res, nil
}

func (r *PostgresResourceRepository) ParentOf(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var parent *uuid.UUID
	if err := r.db.QueryRow(ctx, `SELECT parent_id FROM resources WHERE id = $1`, id).Scan(&parent); err != nil {
		return nil, notFound(err)
	}
	return parent, nil
}

func (r *PostgresResourceRepository) Create(ctx context.Context, res resource.Resource) (resource.Resource, error) {
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}
	return scanResource(r.db.QueryRow(ctx,
		`INSERT INTO resources (id, parent_id, title, url, kind, description, progress, is_completed, sort_order)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+resourceColumns,
		res.ID, res.ParentID, res.Title, res.URL, string(res.Kind), res.Description, res.Progress, res.IsCompleted, res.SortOrder,
	))
}

func (r *PostgresResourceRepository) Update(ctx context.Context, res resource.Resource) (resource.Resource, error) {
	out, err := scanResource(r.db.QueryRow(ctx,
		`UPDATE resources
		 SET parent_id = $2, title = $3, url = $4, kind = $5, description = $6, progress = $7, is_completed = $8,
		     sort_order = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING `+resourceColumns,
		res.ID, res.ParentID, res.Title, res.URL, string(res.Kind), res.Description, res.Progress, res.IsCompleted, res.SortOrder,
	))
	if err != nil {
		return resource.Resource{}, notFound(err)
	}
	return out, nil
}

// Delete removes the resource; the foreign key cascades to its subtree.
func (r *PostgresResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
