package repository

import (
	"context"
	"fmt"

	"jobtrack/internal/database"
	"jobtrack/internal/domain/resume"

	"github.com/google/uuid"
)

type ResumeRepository interface {
	List(ctx context.Context) ([]resume.Template, error)
	Get(ctx context.Context, id uuid.UUID) (resume.Template, error)
	GetFull(ctx context.Context, id uuid.UUID) (resume.Full, error)
	Create(ctx context.Context, t resume.Template) (resume.Template, error)
	Update(ctx context.Context, t resume.Template) (resume.Template, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)

	SaveExperience(ctx context.Context, e resume.Experience) (resume.Experience, error)
	SaveProject(ctx context.Context, p resume.Project) (resume.Project, error)
	SaveSkillCategory(ctx context.Context, s resume.SkillCategory) (resume.SkillCategory, error)
	SaveEducation(ctx context.Context, e resume.Education) (resume.Education, error)
	DeleteItem(ctx context.Context, section resume.Section, resumeID, itemID uuid.UUID) error
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const resumeColumns = `id, name, description, header_latex, is_default, created_at, updated_at`

func scanResume(row database.Row) (resume.Template, error) {
	var t resume.Template
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.HeaderLatex, &t.IsDefault, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *PostgresResumeRepository) List(ctx context.Context) ([]resume.Template, error) {
	rows, err := r.db.Query(ctx, `SELECT `+resumeColumns+` FROM resume_templates ORDER BY is_default DESC, lower(name) ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Template, 0)
	for rows.Next() {
		t, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) Get(ctx context.Context, id uuid.UUID) (resume.Template, error) {
	t, err := scanResume(r.db.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resume_templates WHERE id = $1`, id))
	if err != nil {
		return resume.Template{}, notFound(err)
	}
	return t, nil
}

func (r *PostgresResumeRepository) GetFull(ctx context.Context, id uuid.UUID) (resume.Full, error) {
	t, err := r.Get(ctx, id)
	if err != nil {
		return resume.Full{}, err
	}
	full := resume.Full{Template: t}
	if full.Experiences, err = r.experiences(ctx, id); err != nil {
		return resume.Full{}, err
	}
	if full.Projects, err = r.projects(ctx, id); err != nil {
		return resume.Full{}, err
	}
	if full.Skills, err = r.skills(ctx, id); err != nil {
		return resume.Full{}, err
	}
	if full.Education, err = r.education(ctx, id); err != nil {
		return resume.Full{}, err
	}
	return full, nil
}

// Create and Update clear is_default on every other template in the same
// transaction when the saved template claims it.
func (r *PostgresResumeRepository) Create(ctx context.Context, t resume.Template) (resume.Template, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	var out resume.Template
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if t.IsDefault {
			if err := clearDefault(ctx, tx, t.ID); err != nil {
				return err
			}
		}
		var err error
		out, err = scanResume(tx.QueryRow(ctx,
			`INSERT INTO resume_templates (id, name, description, header_latex, is_default)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING `+resumeColumns,
			t.ID, t.Name, t.Description, t.HeaderLatex, t.IsDefault,
		))
		return err
	})
	if err != nil {
		return resume.Template{}, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) Update(ctx context.Context, t resume.Template) (resume.Template, error) {
	var out resume.Template
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if t.IsDefault {
			if err := clearDefault(ctx, tx, t.ID); err != nil {
				return err
			}
		}
		var err error
		out, err = scanResume(tx.QueryRow(ctx,
			`UPDATE resume_templates
			 SET name = $2, description = $3, header_latex = $4, is_default = $5, updated_at = now()
			 WHERE id = $1
			 RETURNING `+resumeColumns,
			t.ID, t.Name, t.Description, t.HeaderLatex, t.IsDefault,
		))
		return notFound(err)
	})
	if err != nil {
		return resume.Template{}, err
	}
	return out, nil
}

func clearDefault(ctx context.Context, q database.Querier, keep uuid.UUID) error {
	_, err := q.Exec(ctx, `UPDATE resume_templates SET is_default = false, updated_at = now() WHERE is_default AND id <> $1`, keep)
	return err
}

func (r *PostgresResumeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.db.Exec(ctx, `DELETE FROM resume_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresResumeRepository) Count(ctx context.Context) (int, error) {
	var c int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM resume_templates`).Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}

func (r *PostgresResumeRepository) experiences(ctx context.Context, resumeID uuid.UUID) ([]resume.Experience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, resume_id, company, role, location, start_date, end_date, bullets_latex, sort_order, created_at
		 FROM resume_experiences WHERE resume_id = $1 ORDER BY sort_order ASC, created_at ASC`,
		resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Experience, 0)
	for rows.Next() {
		var e resume.Experience
		if err := rows.Scan(&e.ID, &e.ResumeID, &e.Company, &e.Role, &e.Location, &e.StartDate, &e.EndDate, &e.BulletsLatex, &e.SortOrder, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) projects(ctx context.Context, resumeID uuid.UUID) ([]resume.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, resume_id, name, tech_stack, link, bullets_latex, sort_order, created_at
		 FROM resume_projects WHERE resume_id = $1 ORDER BY sort_order ASC, created_at ASC`,
		resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Project, 0)
	for rows.Next() {
		var p resume.Project
		if err := rows.Scan(&p.ID, &p.ResumeID, &p.Name, &p.TechStack, &p.Link, &p.BulletsLatex, &p.SortOrder, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) skills(ctx context.Context, resumeID uuid.UUID) ([]resume.SkillCategory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, resume_id, name, skills, sort_order, created_at
		 FROM resume_skill_categories WHERE resume_id = $1 ORDER BY sort_order ASC, created_at ASC`,
		resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.SkillCategory, 0)
	for rows.Next() {
		var s resume.SkillCategory
		if err := rows.Scan(&s.ID, &s.ResumeID, &s.Name, &s.Skills, &s.SortOrder, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) education(ctx context.Context, resumeID uuid.UUID) ([]resume.Education, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, resume_id, institution, degree, field, location, start_date, end_date, details_latex, sort_order, created_at
		 FROM resume_education WHERE resume_id = $1 ORDER BY sort_order ASC, created_at ASC`,
		resumeID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Education, 0)
	for rows.Next() {
		var e resume.Education
		if err := rows.Scan(&e.ID, &e.ResumeID, &e.Institution, &e.Degree, &e.Field, &e.Location, &e.StartDate, &e.EndDate, &e.DetailsLatex, &e.SortOrder, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// The Save* methods insert when the ID is nil and otherwise update the row
// owned by the given resume.

func (r *PostgresResumeRepository) SaveExperience(ctx context.Context, e resume.Experience) (resume.Experience, error) {
	const cols = `id, resume_id, company, role, location, start_date, end_date, bullets_latex, sort_order, created_at`
	var row database.Row
	if e.ID == uuid.Nil {
		row = r.db.QueryRow(ctx,
			`INSERT INTO resume_experiences (id, resume_id, company, role, location, start_date, end_date, bullets_latex, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING `+cols,
			uuid.New(), e.ResumeID, e.Company, e.Role, e.Location, e.StartDate, e.EndDate, e.BulletsLatex, e.SortOrder)
	} else {
		row = r.db.QueryRow(ctx,
			`UPDATE resume_experiences
			 SET company = $3, role = $4, location = $5, start_date = $6, end_date = $7, bullets_latex = $8, sort_order = $9
			 WHERE id = $1 AND resume_id = $2 RETURNING `+cols,
			e.ID, e.ResumeID, e.Company, e.Role, e.Location, e.StartDate, e.EndDate, e.BulletsLatex, e.SortOrder)
	}
	var out resume.Experience
	if err := row.Scan(&out.ID, &out.ResumeID, &out.Company, &out.Role, &out.Location, &out.StartDate, &out.EndDate, &out.BulletsLatex, &out.SortOrder, &out.CreatedAt); err != nil {
		return resume.Experience{}, notFound(err)
	}
	return out, nil
}

func (r *PostgresResumeRepository) SaveProject(ctx context.Context, p resume.Project) (resume.Project, error) {
	const cols = `id, resume_id, name, tech_stack, link, bullets_latex, sort_order, created_at`
	var row database.Row
	if p.ID == uuid.Nil {
		row = r.db.QueryRow(ctx,
			`INSERT INTO resume_projects (id, resume_id, name, tech_stack, link, bullets_latex, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING `+cols,
			uuid.New(), p.ResumeID, p.Name, p.TechStack, p.Link, p.BulletsLatex, p.SortOrder)
	} else {
		row = r.db.QueryRow(ctx,
			`UPDATE resume_projects
			 SET name = $3, tech_stack = $4, link = $5, bullets_latex = $6, sort_order = $7
			 WHERE id = $1 AND resume_id = $2 RETURNING `+cols,
			p.ID, p.ResumeID, p.Name, p.TechStack, p.Link, p.BulletsLatex, p.SortOrder)
	}
	var out resume.Project
	if err := row.Scan(&out.ID, &out.ResumeID, &out.Name, &out.TechStack, &out.Link, &out.BulletsLatex, &out.SortOrder, &out.CreatedAt); err != nil {
		return resume.Project{}, notFound(err)
	}
	return out, nil
}

func (r *PostgresResumeRepository) SaveSkillCategory(ctx context.Context, s resume.SkillCategory) (resume.SkillCategory, error) {
	const cols = `id, resume_id, name, skills, sort_order, created_at`
	var row database.Row
	if s.ID == uuid.Nil {
		row = r.db.QueryRow(ctx,
			`INSERT INTO resume_skill_categories (id, resume_id, name, skills, sort_order)
			 VALUES ($1, $2, $3, $4, $5) RETURNING `+cols,
			uuid.New(), s.ResumeID, s.Name, s.Skills, s.SortOrder)
	} else {
		row = r.db.QueryRow(ctx,
			`UPDATE resume_skill_categories
			 SET name = $3, skills = $4, sort_order = $5
			 WHERE id = $1 AND resume_id = $2 RETURNING `+cols,
			s.ID, s.ResumeID, s.Name, s.Skills, s.SortOrder)
	}
	var out resume.SkillCategory
	if err := row.Scan(&out.ID, &out.ResumeID, &out.Name, &out.Skills, &out.SortOrder, &out.CreatedAt); err != nil {
		return resume.SkillCategory{}, notFound(err)
	}
	return out, nil
}

func (r *PostgresResumeRepository) SaveEducation(ctx context.Context, e resume.Education) (resume.Education, error) {
	const cols = `id, resume_id, institution, degree, field, location, start_date, end_date, details_latex, sort_order, created_at`
	var row database.Row
	if e.ID == uuid.Nil {
		row = r.db.QueryRow(ctx,
			`INSERT INTO resume_education (id, resume_id, institution, degree, field, location, start_date, end_date, details_latex, sort_order)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING `+cols,
			uuid.New(), e.ResumeID, e.Institution, e.Degree, e.Field, e.Location, e.StartDate, e.EndDate, e.DetailsLatex, e.SortOrder)
	} else {
		row = r.db.QueryRow(ctx,
			`UPDATE resume_education
			 SET institution = $3, degree = $4, field = $5, location = $6, start_date = $7, end_date = $8,
			     details_latex = $9, sort_order = $10
			 WHERE id = $1 AND resume_id = $2 RETURNING `+cols,
			e.ID, e.ResumeID, e.Institution, e.Degree, e.Field, e.Location, e.StartDate, e.EndDate, e.DetailsLatex, e.SortOrder)
	}
	var out resume.Education
	if err := row.Scan(&out.ID, &out.ResumeID, &out.Institution, &out.Degree, &out.Field, &out.Location, &out.StartDate, &out.EndDate, &out.DetailsLatex, &out.SortOrder, &out.CreatedAt); err != nil {
		return resume.Education{}, notFound(err)
	}
	return out, nil
}

var sectionTables = map[resume.Section]string{
	resume.SectionExperiences: "resume_experiences",
	resume.SectionProjects:    "resume_projects",
	resume.SectionSkills:      "resume_skill_categories",
	resume.SectionEducation:   "resume_education",
}

func (r *PostgresResumeRepository) DeleteItem(ctx context.Context, section resume.Section, resumeID, itemID uuid.UUID) error {
	table, ok := sectionTables[section]
	if !ok {
		return fmt.Errorf("unknown resume section %q", section)
	}
	n, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1 AND resume_id = $2`, itemID, resumeID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
