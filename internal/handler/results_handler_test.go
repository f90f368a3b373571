package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/gradebook-api/internal/models"
	"github.com/campushub/gradebook-api/internal/service"
	"github.com/campushub/gradebook-api/pkg/config"
)

type fakeRosterRepo struct {
	students []models.Student
	total    int
	err      error
}

func (f *fakeRosterRepo) ListByClass(context.Context, models.RosterFilter) ([]models.Student, int, error) {
	return f.students, f.total, f.err
}

type fakeGradeListRepo struct {
	grades []models.GradeRecord
	err    error
}

func (f *fakeGradeListRepo) ListByScope(context.Context, models.GradeScope) ([]models.GradeRecord, error) {
	return f.grades, f.err
}

func newResultsHandler(roster *fakeRosterRepo, grades *fakeGradeListRepo) *ResultsHandler {
	svc := service.NewResultsService(roster, grades, nil, nil, config.ResultsConfig{
		PageSize:     20,
		FetchTimeout: time.Second,
	}, nil)
	return NewResultsHandler(svc)
}

func TestResultsListMergedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ranked := "1"
	handler := newResultsHandler(
		&fakeRosterRepo{
			students: []models.Student{{ID: "st-1", FirstName: "Ada", LastName: "Achebe"}},
			total:    1,
		},
		&fakeGradeListRepo{grades: []models.GradeRecord{
			{ID: "g-1", StudentID: "st-1", TotalScore: 83, GradeLetter: "A", SubjectRank: &ranked},
		}},
	)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/results/?class=class-1&subject=sub-1&academic_year=2025/2026&term=first", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Count   *int                `json:"count"`
		Results models.ClassResults `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Count)
	assert.Equal(t, 1, *envelope.Count)
	require.Len(t, envelope.Results.Students, 1)
	assert.Equal(t, "graded", envelope.Results.Students[0].Status())
	assert.Equal(t, "a", envelope.Results.Students[0].GradeStyle)
	assert.Equal(t, "1st", envelope.Results.Students[0].RankBadge.Label)
}

func TestResultsListMissingScopePrompts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newResultsHandler(&fakeRosterRepo{}, &fakeGradeListRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/results/", nil)

	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Count   *int                `json:"count"`
		Results models.ClassResults `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Nil(t, envelope.Count, "no pagination without a selection")
	assert.Empty(t, envelope.Results.Students)
	assert.NotEmpty(t, envelope.Results.Message)
}
