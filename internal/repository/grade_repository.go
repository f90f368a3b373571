package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campushub/gradebook-api/internal/models"
)

const gradeColumns = `id, student_id, class_id, subject_id, academic_year, term,
        assessment_score, assessment_total, test_score, test_total, exam_score, exam_total,
        weighted_assessment, weighted_test, weighted_exam, total_score, grade_letter,
        remarks, subject_rank, grade_date, created_at, updated_at`

// GradeRepository manages persistence for grade records.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// ListByScope returns every grade record for a class+subject+year+term.
// The set is expected to stay within one class roster, so it is not
// paginated.
func (r *GradeRepository) ListByScope(ctx context.Context, scope models.GradeScope) ([]models.GradeRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM grades
        WHERE class_id = $1 AND subject_id = $2 AND academic_year = $3 AND term = $4
        ORDER BY total_score DESC, created_at ASC`, gradeColumns)
	var grades []models.GradeRecord
	if err := r.db.SelectContext(ctx, &grades, query, scope.ClassID, scope.SubjectID, scope.AcademicYear, scope.Term); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// ListByStudent returns a student's grade records for one year and term.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID, academicYear, term string) ([]models.GradeRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM grades
        WHERE student_id = $1 AND academic_year = $2 AND term = $3
        ORDER BY created_at ASC`, gradeColumns)
	var grades []models.GradeRecord
	if err := r.db.SelectContext(ctx, &grades, query, studentID, academicYear, term); err != nil {
		return nil, fmt.Errorf("list student grades: %w", err)
	}
	return grades, nil
}

// FindByParams fetches the single grade record for a student within a
// scope. Returns sql.ErrNoRows when the record does not exist yet.
func (r *GradeRepository) FindByParams(ctx context.Context, params models.GradeParams) (*models.GradeRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM grades
        WHERE student_id = $1 AND class_id = $2 AND subject_id = $3 AND academic_year = $4 AND term = $5`, gradeColumns)
	var grade models.GradeRecord
	if err := r.db.GetContext(ctx, &grade, query, params.StudentID, params.ClassID, params.SubjectID, params.AcademicYear, params.Term); err != nil {
		return nil, err
	}
	return &grade, nil
}

// Create inserts a new grade record. The grades table carries a unique
// constraint over the five-tuple; violations surface as pq unique errors.
func (r *GradeRepository) Create(ctx context.Context, grade *models.GradeRecord) error {
	if grade.ID == "" {
		grade.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	grade.CreatedAt = now
	grade.UpdatedAt = now
	const query = `INSERT INTO grades (id, student_id, class_id, subject_id, academic_year, term,
        assessment_score, assessment_total, test_score, test_total, exam_score, exam_total,
        weighted_assessment, weighted_test, weighted_exam, total_score, grade_letter,
        remarks, subject_rank, grade_date, created_at, updated_at)
        VALUES (:id, :student_id, :class_id, :subject_id, :academic_year, :term,
        :assessment_score, :assessment_total, :test_score, :test_total, :exam_score, :exam_total,
        :weighted_assessment, :weighted_test, :weighted_exam, :total_score, :grade_letter,
        :remarks, :subject_rank, :grade_date, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, grade); err != nil {
		return fmt.Errorf("create grade: %w", err)
	}
	return nil
}

// UpdateByParams overwrites the score package of an existing record,
// addressed by its five-tuple. Returns sql.ErrNoRows semantics via the
// affected-rows count.
func (r *GradeRepository) UpdateByParams(ctx context.Context, grade *models.GradeRecord) (int64, error) {
	grade.UpdatedAt = time.Now().UTC()
	const query = `UPDATE grades SET
        assessment_score = :assessment_score, assessment_total = :assessment_total,
        test_score = :test_score, test_total = :test_total,
        exam_score = :exam_score, exam_total = :exam_total,
        weighted_assessment = :weighted_assessment, weighted_test = :weighted_test, weighted_exam = :weighted_exam,
        total_score = :total_score, grade_letter = :grade_letter,
        remarks = :remarks, grade_date = :grade_date, updated_at = :updated_at
        WHERE student_id = :student_id AND class_id = :class_id AND subject_id = :subject_id
        AND academic_year = :academic_year AND term = :term`
	res, err := r.db.NamedExecContext(ctx, query, grade)
	if err != nil {
		return 0, fmt.Errorf("update grade: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update grade rows: %w", err)
	}
	return affected, nil
}

// UpdateRanks rewrites subject_rank for a set of records in one scope.
func (r *GradeRepository) UpdateRanks(ctx context.Context, ranks map[string]string) error {
	if len(ranks) == 0 {
		return nil
	}
	ids := make([]string, 0, len(ranks))
	values := make([]string, 0, len(ranks))
	for id, rank := range ranks {
		ids = append(ids, id)
		values = append(values, rank)
	}
	const query = `UPDATE grades AS g SET subject_rank = ranked.rank
        FROM (SELECT UNNEST($1::text[]) AS id, UNNEST($2::text[]) AS rank) AS ranked
        WHERE g.id = ranked.id`
	if _, err := r.db.ExecContext(ctx, query, pq.Array(ids), pq.Array(values)); err != nil {
		return fmt.Errorf("update ranks: %w", err)
	}
	return nil
}

// IsUniqueViolation reports whether the error is a duplicate-key insert.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
