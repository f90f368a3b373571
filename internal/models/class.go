package models

import "time"

// Class represents an academic class or section for one academic year.
type Class struct {
	ID           string    `db:"id" json:"id"`
	ClassName    string    `db:"class_name" json:"class_name"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ClassFilter scopes a paginated class listing.
type ClassFilter struct {
	AcademicYear string
	Search       string
	Page         int
	PageSize     int
}
