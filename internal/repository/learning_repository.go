package repository

import (
	"context"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/learning"

	"github.com/google/uuid"
)

type LearningRepository interface {
	List(ctx context.Context, f learning.Filter) ([]learning.Item, error)
	Get(ctx context.Context, id uuid.UUID) (learning.Item, error)
	Create(ctx context.Context, it learning.Item) (learning.Item, error)
	Update(ctx context.Context, it learning.Item) (learning.Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresLearningRepository struct {
	db database.Querier
}

func NewPostgresLearningRepository(db database.Querier) *PostgresLearningRepository {
	return &PostgresLearningRepository{db: db}
}

const learningColumns = `id, title, category, status, priority, progress, url, notes, target_date, created_at, updated_at`

func scanLearning(row database.Row) (learning.Item, error) {
	var it learning.Item
	err := row.Scan(&it.ID, &it.Title, &it.Category, &it.Status, &it.Priority, &it.Progress, &it.URL, &it.Notes, &it.TargetDate, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (r *PostgresLearningRepository) List(ctx context.Context, f learning.Filter) ([]learning.Item, error) {
	var w where
	if f.Status != nil {
		w.add("status = ?", string(*f.Status))
	}
	if f.Priority != nil {
		w.add("priority = ?", string(*f.Priority))
	}
	if f.Category != "" {
		w.add("lower(category) = lower(?)", f.Category)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+learningColumns+` FROM learning_items`+w.String()+`
		 ORDER BY CASE priority WHEN 'HIGH' THEN 0 WHEN 'MEDIUM' THEN 1 ELSE 2 END, target_date ASC NULLS LAST, created_at ASC`,
		w.args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]learning.Item, 0)
	for rows.Next() {
		it, err := scanLearning(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresLearningRepository) Get(ctx context.Context, id uuid.UUID) (learning.Item, error) {
	it, err := scanLearning(r.db.QueryRow(ctx, `SELECT `+learningColumns+` FROM learning_items WHERE id = $1`, id))
	if err != nil {
		return learning.Item{}, notFound(err)
	}
	return it, nil
}

func (r *PostgresLearningRepository) Create(ctx context.Context, it learning.Item) (learning.Item, error) {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return scanLearning(r.db.QueryRow(ctx,
		`INSERT INTO learning_items (id, title, category, status, priority, progress, url, notes, target_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+learningColumns,
		it.ID, it.Title, it.Category, string(it.Status), string(it.Priority), it.Progress, it.URL, it.Notes, it.TargetDate,
	))
}

func (r *PostgresLearningRepository) Update(ctx context.Context, it learning.Item) (learning.Item, error) {
	out, err := scanLearning(r.db.QueryRow(ctx,
		`UPDATE learning_items
		 SET title = $2, category = $3, status = $4, priority = $5, progress = $6, url = $7, notes = $8,
		     target_date = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING `+learningColumns,
		it.ID, it.Title, it.Category, string(it.Status), string(it.Priority), it.Progress, it.URL, it.Notes, it.TargetDate,
	))
	if err != nil {
		return learning.Item{}, notFound(err)
	}
	return out, nil
}

func (r *PostgresLearningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM learning_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
