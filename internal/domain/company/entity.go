package company

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Website     string    `json:"website"`
	Industry    string    `json:"industry"`
	Size        string    `json:"size"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Notes       string    `json:"notes"`
	IsFavorite  bool      `json:"is_favorite"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Detail struct {
	Company
	ApplicationCount int `json:"application_count"`
	ContactCount     int `json:"contact_count"`
}

type Filter struct {
	Query    string
	Industry string
	Favorite *bool
}
