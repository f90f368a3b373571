package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/campushub/gradebook-api/internal/grading"
	"github.com/campushub/gradebook-api/internal/models"
	"github.com/campushub/gradebook-api/pkg/config"
	appErrors "github.com/campushub/gradebook-api/pkg/errors"
)

const (
	msgSelectScope = "please select a class and subject to view results"
	msgNoStudents  = "no students found"
)

type rosterLister interface {
	ListByClass(ctx context.Context, filter models.RosterFilter) ([]models.Student, int, error)
}

type scopeGradeLister interface {
	ListByScope(ctx context.Context, scope models.GradeScope) ([]models.GradeRecord, error)
}

// ResultsQuery selects one page of class results.
type ResultsQuery struct {
	ClassID      string
	SubjectID    string
	AcademicYear string
	Term         string
	Page         int
}

// ResultsService assembles the class results view: the roster page and
// the scope's full grade set are fetched concurrently and merged by
// student id. Any fetch failure collapses the view to an empty roster
// with no pagination, never a partial page.
type ResultsService struct {
	roster  rosterLister
	grades  scopeGradeLister
	cache   *CacheService
	metrics *MetricsService
	cfg     config.ResultsConfig
	logger  *zap.Logger

	// generation orders concurrent loads so a slow load finishing after
	// a newer one cannot write a stale page into the cache.
	generation atomic.Uint64
}

// NewResultsService constructs a ResultsService.
func NewResultsService(roster rosterLister, grades scopeGradeLister, cache *CacheService, metrics *MetricsService, cfg config.ResultsConfig, logger *zap.Logger) *ResultsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 10 * time.Second
	}
	return &ResultsService{
		roster:  roster,
		grades:  grades,
		cache:   cache,
		metrics: metrics,
		cfg:     cfg,
		logger:  logger,
	}
}

type rosterResult struct {
	students []models.Student
	total    int
	err      error
}

type gradesResult struct {
	grades []models.GradeRecord
	err    error
}

// Load returns the merged results page for the query. An incomplete
// scope is not an error: the view comes back empty with a prompt, the
// same way the page renders before a class and subject are chosen.
func (s *ResultsService) Load(ctx context.Context, query ResultsQuery) (*models.ClassResults, error) {
	if query.ClassID == "" || query.SubjectID == "" {
		return &models.ClassResults{Students: []models.StudentWithGrade{}, Message: msgSelectScope}, nil
	}
	if query.AcademicYear == "" || query.Term == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "academic year and term required")
	}
	if query.Page < 1 {
		query.Page = 1
	}

	gen := s.generation.Add(1)

	cacheKey := resultsCacheKey(query)
	var cached cachedResults
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit && cached.Results != nil {
		cached.Results.Pagination = cached.Pagination
		return cached.Results, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.FetchTimeout)
	defer cancel()

	rosterCh := make(chan rosterResult, 1)
	gradesCh := make(chan gradesResult, 1)

	go func() {
		students, total, err := s.roster.ListByClass(ctx, models.RosterFilter{
			ClassID:  query.ClassID,
			Page:     query.Page,
			PageSize: s.cfg.PageSize,
		})
		rosterCh <- rosterResult{students: students, total: total, err: err}
	}()
	go func() {
		grades, err := s.grades.ListByScope(ctx, models.GradeScope{
			ClassID:      query.ClassID,
			SubjectID:    query.SubjectID,
			AcademicYear: query.AcademicYear,
			Term:         query.Term,
		})
		gradesCh <- gradesResult{grades: grades, err: err}
	}()

	// Both fetches are always awaited so neither goroutine leaks a send.
	roster := <-rosterCh
	grades := <-gradesCh

	if roster.err != nil || grades.err != nil {
		s.logger.Error("results load failed",
			zap.String("class_id", query.ClassID),
			zap.String("subject_id", query.SubjectID),
			zap.NamedError("roster_error", roster.err),
			zap.NamedError("grades_error", grades.err),
		)
		return &models.ClassResults{Students: []models.StudentWithGrade{}, Message: msgNoStudents}, nil
	}

	results := s.merge(roster, grades, query)

	if s.generation.Load() == gen {
		entry := cachedResults{Results: results, Pagination: results.Pagination}
		if err := s.cache.Set(ctx, cacheKey, entry, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("results cache write failed", zap.Error(err))
		}
	}
	return results, nil
}

// cachedResults carries pagination alongside the view; the view itself
// excludes it from JSON because the HTTP layer hoists it into the
// response envelope.
type cachedResults struct {
	Results    *models.ClassResults `json:"results"`
	Pagination *models.Pagination   `json:"pagination"`
}

// merge pairs the roster page with grade records in a single pass over
// the grade set. Roster order is preserved; a duplicate grade for the
// same student resolves to the last record fetched.
func (s *ResultsService) merge(roster rosterResult, grades gradesResult, query ResultsQuery) *models.ClassResults {
	start := time.Now()

	byStudent := make(map[string]*models.GradeRecord, len(grades.grades))
	for i := range grades.grades {
		byStudent[grades.grades[i].StudentID] = &grades.grades[i]
	}

	rows := make([]models.StudentWithGrade, 0, len(roster.students))
	graded := 0
	sum := 0.0
	for _, student := range roster.students {
		row := models.StudentWithGrade{Student: student}
		if grade, ok := byStudent[student.ID]; ok {
			row.Grade = grade
			row.GradeStyle = grading.LetterStyleClass(grade.GradeLetter)
			row.RankBadge = grading.RankBadge(grade.SubjectRank)
			graded++
			sum += grade.TotalScore
		} else {
			row.RankBadge = grading.RankBadge(nil)
		}
		rows = append(rows, row)
	}

	results := &models.ClassResults{
		Students:   rows,
		Pagination: models.NewPagination(resultsPath(query), query.Page, s.cfg.PageSize, roster.total),
		Summary: models.ResultsSummary{
			Total:   roster.total,
			Graded:  graded,
			Pending: len(rows) - graded,
		},
	}
	if graded > 0 {
		avg := round2(sum / float64(graded))
		results.Summary.AverageScore = &avg
	}
	if len(rows) == 0 {
		results.Message = msgNoStudents
	}

	s.metrics.ObserveResultsMerge(time.Since(start))
	return results
}

func resultsPath(query ResultsQuery) string {
	return fmt.Sprintf("/results/?class=%s&subject=%s&academic_year=%s&term=%s",
		query.ClassID, query.SubjectID, query.AcademicYear, query.Term)
}

func resultsCacheKey(query ResultsQuery) string {
	return fmt.Sprintf("results:%s:%s:%s:%s:p%d",
		query.ClassID, query.SubjectID, query.AcademicYear, query.Term, query.Page)
}

func resultsCachePattern(scope models.GradeScope) string {
	return fmt.Sprintf("results:%s:%s:%s:%s:*",
		scope.ClassID, scope.SubjectID, scope.AcademicYear, scope.Term)
}
