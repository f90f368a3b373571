package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/gradebook-api/internal/models"
)

// StudentRepository manages persistence for roster students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListByClass returns one roster page for a class, ordered by last then
// first name so pages are stable across requests, with the total count.
func (r *StudentRepository) ListByClass(ctx context.Context, filter models.RosterFilter) ([]models.Student, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT s.id, s.first_name, s.last_name, s.user_id, u.email AS user_email,
        s.date_of_birth, s.status, s.created_at, s.updated_at
        FROM students s
        JOIN enrollments e ON e.student_id = s.id
        LEFT JOIN users u ON u.id = s.user_id
        WHERE e.class_id = $1
        ORDER BY s.last_name ASC, s.first_name ASC LIMIT %d OFFSET %d`, size, offset)

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, filter.ClassID); err != nil {
		return nil, 0, fmt.Errorf("list roster: %w", err)
	}

	const countQuery = `SELECT COUNT(*) FROM students s JOIN enrollments e ON e.student_id = s.id WHERE e.class_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, filter.ClassID); err != nil {
		return nil, 0, fmt.Errorf("count roster: %w", err)
	}
	return students, total, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT s.id, s.first_name, s.last_name, s.user_id, u.email AS user_email,
        s.date_of_birth, s.status, s.created_at, s.updated_at
        FROM students s LEFT JOIN users u ON u.id = s.user_id
        WHERE s.id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}
