package repository

import (
	"context"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/company"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	List(ctx context.Context, f company.Filter) ([]company.Company, error)
	Get(ctx context.Context, id uuid.UUID) (company.Detail, error)
	Create(ctx context.Context, c company.Company) (company.Company, error)
	Update(ctx context.Context, c company.Company) (company.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCompanyRepository struct {
	db database.Querier
}

func NewPostgresCompanyRepository(db database.Querier) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, name, website, industry, size, location, description, notes, is_favorite, created_at, updated_at`

func scanCompany(row database.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(&c.ID, &c.Name, &c.Website, &c.Industry, &c.Size, &c.Location, &c.Description, &c.Notes, &c.IsFavorite, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *PostgresCompanyRepository) List(ctx context.Context, f company.Filter) ([]company.Company, error) {
	var w where
	if f.Query != "" {
		w.add("(name ILIKE ? OR industry ILIKE ? OR location ILIKE ?)", likePattern(f.Query))
	}
	if f.Industry != "" {
		w.add("lower(industry) = lower(?)", f.Industry)
	}
	if f.Favorite != nil {
		w.add("is_favorite = ?", *f.Favorite)
	}

	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies`+w.String()+` ORDER BY lower(name) ASC, created_at ASC`, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) Get(ctx context.Context, id uuid.UUID) (company.Detail, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+companyColumns+`,
		 (SELECT COUNT(1) FROM applications a WHERE a.company_id = companies.id),
		 (SELECT COUNT(1) FROM contacts ct WHERE ct.company_id = companies.id)
		 FROM companies WHERE id = $1`,
		id,
	)
	var d company.Detail
	c := &d.Company
	err := row.Scan(&c.ID, &c.Name, &c.Website, &c.Industry, &c.Size, &c.Location, &c.Description, &c.Notes, &c.IsFavorite, &c.CreatedAt, &c.UpdatedAt,
		&d.ApplicationCount, &d.ContactCount)
	if err != nil {
		return company.Detail{}, notFound(err)
	}
	return d, nil
}

func (r *PostgresCompanyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	row := r.db.QueryRow(ctx,
		`INSERT INTO companies (id, name, website, industry, size, location, description, notes, is_favorite)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+companyColumns,
		c.ID, c.Name, c.Website, c.Industry, c.Size, c.Location, c.Description, c.Notes, c.IsFavorite,
	)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, c company.Company) (company.Company, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE companies
		 SET name = $2, website = $3, industry = $4, size = $5, location = $6, description = $7, notes = $8,
		     is_favorite = $9, updated_at = now()
		 WHERE id = $1
		 RETURNING `+companyColumns,
		c.ID, c.Name, c.Website, c.Industry, c.Size, c.Location, c.Description, c.Notes, c.IsFavorite,
	)
	out, err := scanCompany(row)
	if err != nil {
		return company.Company{}, notFound(err)
	}
	return out, nil
}

func (r *PostgresCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
