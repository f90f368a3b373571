package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/gradebook-api/internal/models"
	"github.com/campushub/gradebook-api/pkg/config"
	appErrors "github.com/campushub/gradebook-api/pkg/errors"
)

type stubRoster struct {
	students []models.Student
	total    int
	err      error
	calls    int
}

func (s *stubRoster) ListByClass(_ context.Context, _ models.RosterFilter) ([]models.Student, int, error) {
	s.calls++
	return s.students, s.total, s.err
}

type stubGrades struct {
	grades []models.GradeRecord
	err    error
	calls  int
}

func (s *stubGrades) ListByScope(_ context.Context, _ models.GradeScope) ([]models.GradeRecord, error) {
	s.calls++
	return s.grades, s.err
}

type memoryCacheRepo struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: map[string][]byte{}}
}

func (m *memoryCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(_ context.Context, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = map[string][]byte{}
	return nil
}

func rank(v string) *string { return &v }

func resultsFixtureQuery() ResultsQuery {
	return ResultsQuery{
		ClassID:      "class-1",
		SubjectID:    "subject-1",
		AcademicYear: "2025/2026",
		Term:         models.TermFirst,
		Page:         1,
	}
}

func newResultsService(roster *stubRoster, grades *stubGrades, cache *CacheService) *ResultsService {
	return NewResultsService(roster, grades, cache, nil, config.ResultsConfig{
		PageSize:     2,
		FetchTimeout: time.Second,
		CacheTTL:     time.Minute,
	}, nil)
}

func TestResultsLoadMergesRosterOrder(t *testing.T) {
	roster := &stubRoster{
		students: []models.Student{
			{ID: "st-1", FirstName: "Ada", LastName: "Achebe"},
			{ID: "st-2", FirstName: "Bola", LastName: "Bello"},
		},
		total: 5,
	}
	grades := &stubGrades{
		grades: []models.GradeRecord{
			// Deliberately out of roster order, plus a record for a
			// student outside the current page.
			{ID: "g-2", StudentID: "st-2", TotalScore: 91, GradeLetter: "A", SubjectRank: rank("1")},
			{ID: "g-9", StudentID: "st-9", TotalScore: 40, GradeLetter: "F"},
		},
	}

	svc := newResultsService(roster, grades, nil)
	results, err := svc.Load(context.Background(), resultsFixtureQuery())
	require.NoError(t, err)

	require.Len(t, results.Students, 2)
	assert.Equal(t, "st-1", results.Students[0].Student.ID)
	assert.Equal(t, "st-2", results.Students[1].Student.ID)

	assert.Nil(t, results.Students[0].Grade)
	assert.Equal(t, models.ResultStatusPending, results.Students[0].Status())
	assert.Empty(t, results.Students[0].GradeStyle)
	assert.Equal(t, "N/A", results.Students[0].RankBadge.Label)

	require.NotNil(t, results.Students[1].Grade)
	assert.Equal(t, models.ResultStatusGraded, results.Students[1].Status())
	assert.Equal(t, "a", results.Students[1].GradeStyle)
	assert.Equal(t, "1st", results.Students[1].RankBadge.Label)
	assert.Equal(t, "gold", results.Students[1].RankBadge.Tier)
}

func TestResultsLoadGradeStyleTiers(t *testing.T) {
	roster := &stubRoster{
		students: []models.Student{{ID: "st-1"}, {ID: "st-2"}, {ID: "st-3"}},
		total:    3,
	}
	grades := &stubGrades{grades: []models.GradeRecord{
		{ID: "g-1", StudentID: "st-1", TotalScore: 77, GradeLetter: "B+"},
		{ID: "g-2", StudentID: "st-2", TotalScore: 47, GradeLetter: "E"},
		{ID: "g-3", StudentID: "st-3", TotalScore: 30, GradeLetter: "F"},
	}}

	svc := newResultsService(roster, grades, nil)
	results, err := svc.Load(context.Background(), resultsFixtureQuery())
	require.NoError(t, err)

	require.Len(t, results.Students, 3)
	assert.Equal(t, "b", results.Students[0].GradeStyle)
	assert.Equal(t, "d", results.Students[1].GradeStyle, "E shares the below-pass tier")
	assert.Equal(t, "f", results.Students[2].GradeStyle)
}

func TestResultsLoadDuplicateGradeLastWins(t *testing.T) {
	roster := &stubRoster{students: []models.Student{{ID: "st-1"}}, total: 1}
	grades := &stubGrades{grades: []models.GradeRecord{
		{ID: "g-old", StudentID: "st-1", TotalScore: 50},
		{ID: "g-new", StudentID: "st-1", TotalScore: 83},
	}}

	svc := newResultsService(roster, grades, nil)
	results, err := svc.Load(context.Background(), resultsFixtureQuery())
	require.NoError(t, err)

	require.Len(t, results.Students, 1)
	require.NotNil(t, results.Students[0].Grade)
	assert.Equal(t, "g-new", results.Students[0].Grade.ID)
}

func TestResultsLoadFailClosedOnRosterError(t *testing.T) {
	roster := &stubRoster{err: errors.New("db down")}
	grades := &stubGrades{grades: []models.GradeRecord{{ID: "g-1", StudentID: "st-1"}}}

	svc := newResultsService(roster, grades, nil)
	results, err := svc.Load(context.Background(), resultsFixtureQuery())
	require.NoError(t, err)

	assert.Empty(t, results.Students)
	assert.Nil(t, results.Pagination)
	assert.Equal(t, msgNoStudents, results.Message)
	assert.Equal(t, 1, grades.calls, "grade fetch is still awaited")
}

func TestResultsLoadFailClosedOnGradesError(t *testing.T) {
	roster := &stubRoster{students: []models.Student{{ID: "st-1"}}, total: 1}
	grades := &stubGrades{err: errors.New("timeout")}

	svc := newResultsService(roster, grades, nil)
	results, err := svc.Load(context.Background(), resultsFixtureQuery())
	require.NoError(t, err)

	assert.Empty(t, results.Students)
	assert.Nil(t, results.Pagination)
	assert.Equal(t, msgNoStudents, results.Message)
}

func TestResultsLoadPaginationPassThrough(t *testing.T) {
	roster := &stubRoster{
		students: []models.Student{{ID: "st-3"}, {ID: "st-4"}},
		total:    5,
	}
	grades := &stubGrades{}

	svc := newResultsService(roster, grades, nil)
	query := resultsFixtureQuery()
	query.Page = 2
	results, err := svc.Load(context.Background(), query)
	require.NoError(t, err)

	require.NotNil(t, results.Pagination)
	assert.Equal(t, 5, results.Pagination.Count)
	require.NotNil(t, results.Pagination.Next)
	assert.Contains(t, *results.Pagination.Next, "page=3")
	require.NotNil(t, results.Pagination.Previous)
	assert.Contains(t, *results.Pagination.Previous, "page=1")
}

func TestResultsLoadSummary(t *testing.T) {
	roster := &stubRoster{
		students: []models.Student{{ID: "st-1"}, {ID: "st-2"}},
		total:    2,
	}
	grades := &stubGrades{grades: []models.GradeRecord{
		{ID: "g-1", StudentID: "st-1", TotalScore: 83},
	}}

	svc := newResultsService(roster, grades, nil)
	results, err := svc.Load(context.Background(), resultsFixtureQuery())
	require.NoError(t, err)

	assert.Equal(t, 2, results.Summary.Total)
	assert.Equal(t, 1, results.Summary.Graded)
	assert.Equal(t, 1, results.Summary.Pending)
	require.NotNil(t, results.Summary.AverageScore)
	assert.InDelta(t, 83, *results.Summary.AverageScore, 0.001)
}

func TestResultsLoadEmptyScopePrompts(t *testing.T) {
	roster := &stubRoster{}
	grades := &stubGrades{}

	svc := newResultsService(roster, grades, nil)
	results, err := svc.Load(context.Background(), ResultsQuery{})
	require.NoError(t, err)

	assert.Empty(t, results.Students)
	assert.Equal(t, msgSelectScope, results.Message)
	assert.Zero(t, roster.calls)
	assert.Zero(t, grades.calls)
}

func TestResultsLoadCacheRoundTrip(t *testing.T) {
	roster := &stubRoster{
		students: []models.Student{{ID: "st-1", FirstName: "Ada", LastName: "Achebe"}},
		total:    3,
	}
	grades := &stubGrades{grades: []models.GradeRecord{
		{ID: "g-1", StudentID: "st-1", TotalScore: 83, GradeLetter: "A", SubjectRank: rank("2")},
	}}
	cache := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)

	svc := newResultsService(roster, grades, cache)
	query := resultsFixtureQuery()

	first, err := svc.Load(context.Background(), query)
	require.NoError(t, err)
	require.NotNil(t, first.Pagination)

	second, err := svc.Load(context.Background(), query)
	require.NoError(t, err)

	assert.Equal(t, 1, roster.calls, "second load served from cache")
	require.Len(t, second.Students, 1)
	assert.Equal(t, "2nd", second.Students[0].RankBadge.Label)
	require.NotNil(t, second.Pagination, "pagination survives the cache round trip")
	assert.Equal(t, first.Pagination.Count, second.Pagination.Count)
}
