package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/gradebook-api/internal/models"
)

func newStudentMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestStudentRepositoryListByClass(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	now := time.Now()
	email := "ama@example.com"
	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "user_id", "user_email", "date_of_birth", "status", "created_at", "updated_at"}).
		AddRow("stu-1", "Ama", "Mensah", "u1", email, now, models.StudentStatusActive, now, now).
		AddRow("stu-2", "Kwame", "Osei", nil, nil, now, models.StudentStatusActive, now, now)
	mock.ExpectQuery("SELECT s.id, s.first_name, s.last_name, (.+) FROM students s").
		WithArgs("class-1").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM students s JOIN enrollments e").
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	students, total, err := repo.ListByClass(context.Background(), models.RosterFilter{ClassID: "class-1", Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, 2, total)
	assert.Equal(t, "Ama Mensah", students[0].FullName())
	require.NotNil(t, students[0].UserEmail)
	assert.Equal(t, email, *students[0].UserEmail)
	assert.Nil(t, students[1].UserEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListByClassDefaultsPage(t *testing.T) {
	db, mock, cleanup := newStudentMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("LIMIT 20 OFFSET 0").
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "user_id", "user_email", "date_of_birth", "status", "created_at", "updated_at"}))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("class-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	students, total, err := repo.ListByClass(context.Background(), models.RosterFilter{ClassID: "class-1", Page: 0, PageSize: -1})
	require.NoError(t, err)
	assert.Empty(t, students)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
