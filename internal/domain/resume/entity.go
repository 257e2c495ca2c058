package resume

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Template struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HeaderLatex string    `json:"header_latex"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Experience struct {
	ID           uuid.UUID `json:"id"`
	ResumeID     uuid.UUID `json:"resume_id"`
	Company      string    `json:"company"`
	Role         string    `json:"role"`
	Location     string    `json:"location"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	BulletsLatex string    `json:"bullets_latex"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type Project struct {
	ID           uuid.UUID `json:"id"`
	ResumeID     uuid.UUID `json:"resume_id"`
	Name         string    `json:"name"`
	TechStack    string    `json:"tech_stack"`
	Link         string    `json:"link"`
	BulletsLatex string    `json:"bullets_latex"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type SkillCategory struct {
	ID        uuid.UUID `json:"id"`
	ResumeID  uuid.UUID `json:"resume_id"`
	Name      string    `json:"name"`
	Skills    string    `json:"skills"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

type Education struct {
	ID           uuid.UUID `json:"id"`
	ResumeID     uuid.UUID `json:"resume_id"`
	Institution  string    `json:"institution"`
	Degree       string    `json:"degree"`
	Field        string    `json:"field"`
	Location     string    `json:"location"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	DetailsLatex string    `json:"details_latex"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// Full is a template with every child collection loaded in sort order.
type Full struct {
	Template
	Experiences []Experience    `json:"experiences"`
	Projects    []Project       `json:"projects"`
	Skills      []SkillCategory `json:"skills"`
	Education   []Education     `json:"education"`
}

// Section names a child collection in routes and repository calls.
type Section string

const (
	SectionExperiences Section = "experiences"
	SectionProjects    Section = "projects"
	SectionSkills      Section = "skills"
	SectionEducation   Section = "education"
)

func ParseSection(raw string) (Section, error) {
	s := Section(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case SectionExperiences, SectionProjects, SectionSkills, SectionEducation:
		return s, nil
	}
	return "", fmt.Errorf("unknown resume section %q", raw)
}
