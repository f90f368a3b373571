package models

import "time"

// Subject represents an academic subject.
type Subject struct {
	ID          string    `db:"id" json:"id"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	SubjectCode string    `db:"subject_code" json:"subject_code"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectFilter scopes a paginated subject listing.
type SubjectFilter struct {
	Search   string
	Page     int
	PageSize int
}
