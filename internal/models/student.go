package models

import "time"

// Student statuses as exposed by the roster.
const (
	StudentStatusActive    = "active"
	StudentStatusInactive  = "inactive"
	StudentStatusGraduated = "graduated"
)

// Student represents a learner enrolled in a class roster.
type Student struct {
	ID          string    `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	UserID      *string   `db:"user_id" json:"-"`
	UserEmail   *string   `db:"user_email" json:"user,omitempty"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// FullName joins the display name parts.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// RosterFilter scopes a paginated roster listing.
type RosterFilter struct {
	ClassID  string
	Page     int
	PageSize int
}
