package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/gradebook-api/internal/grading"
	"github.com/campushub/gradebook-api/internal/models"
	appErrors "github.com/campushub/gradebook-api/pkg/errors"
)

type mockGradeRepo struct {
	scopeGrades   []models.GradeRecord
	scopeErr      error
	found         *models.GradeRecord
	findErr       error
	createErr     error
	updated       int64
	updateErr     error
	rankErr       error
	studentGrades []models.GradeRecord

	created     *models.GradeRecord
	updatedWith *models.GradeRecord
	savedRanks  map[string]string
}

func (m *mockGradeRepo) ListByScope(_ context.Context, _ models.GradeScope) ([]models.GradeRecord, error) {
	return m.scopeGrades, m.scopeErr
}

func (m *mockGradeRepo) ListByStudent(_ context.Context, _, _, _ string) ([]models.GradeRecord, error) {
	return m.studentGrades, nil
}

func (m *mockGradeRepo) FindByParams(_ context.Context, _ models.GradeParams) (*models.GradeRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.found, nil
}

func (m *mockGradeRepo) Create(_ context.Context, grade *models.GradeRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	grade.ID = "grade-new"
	m.created = grade
	return nil
}

func (m *mockGradeRepo) UpdateByParams(_ context.Context, grade *models.GradeRecord) (int64, error) {
	m.updatedWith = grade
	return m.updated, m.updateErr
}

func (m *mockGradeRepo) UpdateRanks(_ context.Context, ranks map[string]string) error {
	m.savedRanks = ranks
	return m.rankErr
}

type mockStudentReader struct {
	student *models.Student
	err     error
}

func (m *mockStudentReader) FindByID(_ context.Context, _ string) (*models.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.student, nil
}

type mockSubjectReader struct {
	subject *models.Subject
	err     error
}

func (m *mockSubjectReader) FindByID(_ context.Context, _ string) (*models.Subject, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.subject, nil
}

func defaultWeights() grading.Weights {
	return grading.Weights{Assessment: 20, Test: 30, Exam: 50}
}

func newGradeService(t *testing.T, repo *mockGradeRepo, students *mockStudentReader) *GradeService {
	t.Helper()
	if students == nil {
		students = &mockStudentReader{student: &models.Student{ID: "st-1", FirstName: "Ada", LastName: "Achebe"}}
	}
	svc, err := NewGradeService(repo, students, &mockSubjectReader{subject: &models.Subject{ID: "sub-1", SubjectName: "Mathematics"}}, nil, nil, defaultWeights(), nil, nil)
	require.NoError(t, err)
	return svc
}

func saveFixture() SaveGradeRequest {
	return SaveGradeRequest{
		StudentID:    "st-1",
		ClassID:      "class-1",
		SubjectID:    "sub-1",
		AcademicYear: "2025/2026",
		Term:         models.TermFirst,

		AssessmentScore: 18, AssessmentTotal: 20,
		TestScore: 25, TestTotal: 30,
		ExamScore: 40, ExamTotal: 50,

		IsNewGrade: true,
	}
}

func TestNewGradeServiceRejectsBadWeights(t *testing.T) {
	_, err := NewGradeService(&mockGradeRepo{}, &mockStudentReader{}, &mockSubjectReader{}, nil, nil,
		grading.Weights{Assessment: 20, Test: 30, Exam: 40}, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrInvalidWeights)
}

func TestSaveCreateComputesWeightedFields(t *testing.T) {
	repo := &mockGradeRepo{findErr: sql.ErrNoRows}
	svc := newGradeService(t, repo, nil)

	grade, err := svc.Save(context.Background(), saveFixture())
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.InDelta(t, 18, grade.WeightedAssessment, 0.001)
	assert.InDelta(t, 25, grade.WeightedTest, 0.001)
	assert.InDelta(t, 40, grade.WeightedExam, 0.001)
	assert.InDelta(t, 83, grade.TotalScore, 0.001)
	assert.Equal(t, "A", grade.GradeLetter)
	assert.False(t, grade.GradeDate.IsZero())
}

func TestSaveCreateConflict(t *testing.T) {
	repo := &mockGradeRepo{createErr: &pq.Error{Code: "23505"}}
	svc := newGradeService(t, repo, nil)

	_, err := svc.Save(context.Background(), saveFixture())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestSaveUpdateMissingRecord(t *testing.T) {
	repo := &mockGradeRepo{updated: 0}
	svc := newGradeService(t, repo, nil)

	req := saveFixture()
	req.IsNewGrade = false
	_, err := svc.Save(context.Background(), req)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestSaveUpdateRecomputesWeights(t *testing.T) {
	repo := &mockGradeRepo{updated: 1, findErr: sql.ErrNoRows}
	svc := newGradeService(t, repo, nil)

	req := saveFixture()
	req.IsNewGrade = false
	req.ExamScore = 20
	_, err := svc.Save(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, repo.updatedWith)
	assert.InDelta(t, 20, repo.updatedWith.WeightedExam, 0.001)
	assert.InDelta(t, 63, repo.updatedWith.TotalScore, 0.001)
	assert.Equal(t, "C", repo.updatedWith.GradeLetter)
}

func TestSaveRejectsLongRemarks(t *testing.T) {
	repo := &mockGradeRepo{}
	svc := newGradeService(t, repo, nil)

	req := saveFixture()
	req.Remarks = strings.Repeat("x", 501)
	_, err := svc.Save(context.Background(), req)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestSaveRejectsUnknownStudent(t *testing.T) {
	repo := &mockGradeRepo{}
	svc := newGradeService(t, repo, &mockStudentReader{err: sql.ErrNoRows})

	_, err := svc.Save(context.Background(), saveFixture())
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestSaveRecomputesScopeRanks(t *testing.T) {
	repo := &mockGradeRepo{
		findErr: sql.ErrNoRows,
		scopeGrades: []models.GradeRecord{
			{ID: "g-1", TotalScore: 70},
			{ID: "g-2", TotalScore: 91},
			{ID: "g-3", TotalScore: 91},
			{ID: "g-4", TotalScore: 55},
		},
	}
	svc := newGradeService(t, repo, nil)

	_, err := svc.Save(context.Background(), saveFixture())
	require.NoError(t, err)

	// Tied scores share a rank and the following score skips a slot.
	require.NotNil(t, repo.savedRanks)
	assert.Equal(t, "1", repo.savedRanks["g-2"])
	assert.Equal(t, "1", repo.savedRanks["g-3"])
	assert.Equal(t, "3", repo.savedRanks["g-1"])
	assert.Equal(t, "4", repo.savedRanks["g-4"])
}

func TestGetByParamsNotFound(t *testing.T) {
	repo := &mockGradeRepo{findErr: sql.ErrNoRows}
	svc := newGradeService(t, repo, nil)

	_, err := svc.GetByParams(context.Background(), models.GradeParams{
		StudentID: "st-1", ClassID: "class-1", SubjectID: "sub-1",
		AcademicYear: "2025/2026", Term: models.TermFirst,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestListRequiresScope(t *testing.T) {
	svc := newGradeService(t, &mockGradeRepo{}, nil)

	_, err := svc.List(context.Background(), models.GradeScope{ClassID: "class-1"})
	require.Error(t, err)
	_, err = svc.List(context.Background(), models.GradeScope{SubjectID: "sub-1"})
	require.Error(t, err)
}

func TestListPropagatesRepoError(t *testing.T) {
	repo := &mockGradeRepo{scopeErr: errors.New("db down")}
	svc := newGradeService(t, repo, nil)

	_, err := svc.List(context.Background(), models.GradeScope{
		ClassID: "class-1", SubjectID: "sub-1", AcademicYear: "2025/2026", Term: models.TermFirst,
	})
	require.Error(t, err)
}

func TestClassSummary(t *testing.T) {
	repo := &mockGradeRepo{scopeGrades: []models.GradeRecord{
		{TotalScore: 83, GradeLetter: "A"},
		{TotalScore: 63, GradeLetter: "C"},
	}}
	svc := newGradeService(t, repo, nil)

	summary, err := svc.ClassSummary(context.Background(), models.GradeScope{
		ClassID: "class-1", SubjectID: "sub-1", AcademicYear: "2025/2026", Term: models.TermFirst,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalGraded)
	assert.InDelta(t, 73, summary.AverageScore, 0.001)
	assert.InDelta(t, 3.0, summary.GPA, 0.001)
	assert.Equal(t, 1, summary.Distribution["A"])
	assert.Equal(t, 1, summary.Distribution["C"])
}

func TestTermReport(t *testing.T) {
	repo := &mockGradeRepo{studentGrades: []models.GradeRecord{
		{
			SubjectID:       "sub-1",
			AssessmentScore: 18, AssessmentTotal: 20,
			TestScore: 25, TestTotal: 30,
			ExamScore: 40, ExamTotal: 50,
			TotalScore: 83, GradeLetter: "A",
		},
	}}
	svc := newGradeService(t, repo, nil)

	report, err := svc.TermReport(context.Background(), "st-1", "2025/2026", models.TermFirst)
	require.NoError(t, err)

	assert.Equal(t, "Ada Achebe", report.StudentName)
	require.Len(t, report.Subjects, 1)
	assert.Equal(t, "Mathematics", report.Subjects[0].SubjectName)
	assert.Equal(t, "18/20", report.Subjects[0].Assessment)
	assert.Equal(t, "40/50", report.Subjects[0].Exam)
	assert.InDelta(t, 4.0, report.GPA, 0.001)
	assert.InDelta(t, 83, report.AverageScore, 0.001)
}
