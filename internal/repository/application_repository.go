package repository

import (
	"context"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/application"

	"github.com/google/uuid"
)

type ApplicationRepository interface {
	List(ctx context.Context, f application.Filter) ([]application.Application, error)
	Get(ctx context.Context, id uuid.UUID) (application.Application, error)
	Create(ctx context.Context, a application.Application) (application.Application, error)
	Update(ctx context.Context, a application.Application) (application.Application, error)
	SetFiles(ctx context.Context, id uuid.UUID, resumePath, coverLetterPath string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresApplicationRepository struct {
	db database.Querier
}

func NewPostgresApplicationRepository(db database.Querier) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationSelect = `SELECT a.id, a.company_id, c.name, a.position, a.status, a.job_url, a.location, a.salary, a.work_type,
 a.job_description, a.notes, a.applied_at, a.resume_path, a.cover_letter_path, a.created_at, a.updated_at
 FROM applications a
 JOIN companies c ON c.id = a.company_id`

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	err := row.Scan(&a.ID, &a.CompanyID, &a.Company.Name, &a.Position, &a.Status, &a.JobURL, &a.Location, &a.Salary, &a.WorkType,
		&a.JobDescription, &a.Notes, &a.AppliedAt, &a.ResumePath, &a.CoverLetterPath, &a.CreatedAt, &a.UpdatedAt)
	a.Company.ID = a.CompanyID
	return a, err
}

func orderBy(s application.Sort) string {
	dir := " ASC"
	if s.Desc {
		dir = " DESC"
	}
	switch s.Field {
	case application.SortAppliedAt:
		return " ORDER BY a.applied_at" + dir + " NULLS LAST, a.created_at DESC"
	case application.SortCompany:
		return " ORDER BY lower(c.name)" + dir + ", a.created_at DESC"
	case application.SortStatus:
		return " ORDER BY a.status" + dir + ", a.created_at DESC"
	}
	return " ORDER BY a.created_at" + dir
}

func (r *PostgresApplicationRepository) List(ctx context.Context, f application.Filter) ([]application.Application, error) {
	var w where
	if f.Status != nil {
		w.add("a.status = ?", string(*f.Status))
	}
	if f.CompanyID != nil {
		w.add("a.company_id = ?", *f.CompanyID)
	}
	if f.Query != "" {
		w.add("(a.position ILIKE ? OR c.name ILIKE ? OR a.location ILIKE ? OR a.notes ILIKE ?)", likePattern(f.Query))
	}
	if f.Sort.Field == "" {
		f.Sort = application.Sort{Field: application.SortCreatedAt, Desc: true}
	}

	rows, err := r.db.Query(ctx, applicationSelect+w.String()+orderBy(f.Sort), w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) Get(ctx context.Context, id uuid.UUID) (application.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return application.Application{}, notFound(err)
	}
	return a, nil
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, company_id, position, status, job_url, location, salary, work_type,
		 job_description, notes, applied_at, resume_path, cover_letter_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		a.ID, a.CompanyID, a.Position, string(a.Status), a.JobURL, a.Location, a.Salary, string(a.WorkType),
		a.JobDescription, a.Notes, a.AppliedAt, a.ResumePath, a.CoverLetterPath,
	)
	if err != nil {
		return application.Application{}, err
	}
	return r.Get(ctx, a.ID)
}

func (r *PostgresApplicationRepository) Update(ctx context.Context, a application.Application) (application.Application, error) {
	n, err := r.db.Exec(ctx,
		`UPDATE applications
		 SET company_id = $2, position = $3, status = $4, job_url = $5, location = $6, salary = $7, work_type = $8,
		     job_description = $9, notes = $10, applied_at = $11, updated_at = now()
		 WHERE id = $1`,
		a.ID, a.CompanyID, a.Position, string(a.Status), a.JobURL, a.Location, a.Salary, string(a.WorkType),
		a.JobDescription, a.Notes, a.AppliedAt,
	)
	if err != nil {
		return application.Application{}, err
	}
	if n == 0 {
		return application.Application{}, ErrNotFound
	}
	return r.Get(ctx, a.ID)
}

// SetFiles stores upload paths; an empty argument keeps the current value.
func (r *PostgresApplicationRepository) SetFiles(ctx context.Context, id uuid.UUID, resumePath, coverLetterPath string) error {
	n, err := r.db.Exec(ctx,
		`UPDATE applications
		 SET resume_path = COALESCE(NULLIF($2, ''), resume_path),
		     cover_letter_path = COALESCE(NULLIF($3, ''), cover_letter_path),
		     updated_at = now()
		 WHERE id = $1`,
		id, resumePath, coverLetterPath,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
