package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/gradebook-api/internal/models"
)

func newGradeMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var gradeRows = []string{
	"id", "student_id", "class_id", "subject_id", "academic_year", "term",
	"assessment_score", "assessment_total", "test_score", "test_total", "exam_score", "exam_total",
	"weighted_assessment", "weighted_test", "weighted_exam", "total_score", "grade_letter",
	"remarks", "subject_rank", "grade_date", "created_at", "updated_at",
}

func addGradeRow(rows *sqlmock.Rows, id, studentID string, total float64, letter string) {
	now := time.Now()
	rows.AddRow(id, studentID, "class-1", "subject-1", "2025-26", models.TermFirst,
		18.0, 20.0, 25.0, 30.0, 40.0, 50.0,
		18.0, 25.0, 40.0, total, letter,
		"", "1", now, now, now)
}

func TestGradeRepositoryListByScope(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	rows := sqlmock.NewRows(gradeRows)
	addGradeRow(rows, "g1", "stu-1", 83.0, "A")
	mock.ExpectQuery("SELECT (.+) FROM grades\\s+WHERE class_id = \\$1 AND subject_id = \\$2").
		WithArgs("class-1", "subject-1", "2025-26", models.TermFirst).
		WillReturnRows(rows)

	grades, err := repo.ListByScope(context.Background(), models.GradeScope{
		ClassID: "class-1", SubjectID: "subject-1", AcademicYear: "2025-26", Term: models.TermFirst,
	})
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, "stu-1", grades[0].StudentID)
	assert.Equal(t, 83.0, grades[0].TotalScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryFindByParamsMissing(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM grades\\s+WHERE student_id = \\$1").
		WithArgs("stu-404", "class-1", "subject-1", "2025-26", models.TermFirst).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByParams(context.Background(), models.GradeParams{
		StudentID: "stu-404", ClassID: "class-1", SubjectID: "subject-1", AcademicYear: "2025-26", Term: models.TermFirst,
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("INSERT INTO grades").
		WillReturnResult(sqlmock.NewResult(1, 1))

	grade := &models.GradeRecord{StudentID: "stu-1", ClassID: "class-1", SubjectID: "subject-1", AcademicYear: "2025-26", Term: models.TermFirst, GradeDate: time.Now()}
	err := repo.Create(context.Background(), grade)
	require.NoError(t, err)
	assert.NotEmpty(t, grade.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryUpdateByParamsAffectedRows(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("UPDATE grades SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	affected, err := repo.UpdateByParams(context.Background(), &models.GradeRecord{
		StudentID: "stu-404", ClassID: "class-1", SubjectID: "subject-1", AcademicYear: "2025-26", Term: models.TermFirst,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryUpdateRanksEmpty(t *testing.T) {
	db, _, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	// No expectations registered: an empty map must not touch the db.
	require.NoError(t, repo.UpdateRanks(context.Background(), nil))
}

func TestGradeRepositoryUpdateRanks(t *testing.T) {
	db, mock, cleanup := newGradeMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("UPDATE grades AS g SET subject_rank").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.UpdateRanks(context.Background(), map[string]string{"g1": "1", "g2": "2"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
