package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/gradebook-api/internal/grading"
	"github.com/campushub/gradebook-api/internal/models"
	"github.com/campushub/gradebook-api/internal/repository"
	appErrors "github.com/campushub/gradebook-api/pkg/errors"
)

type gradeRepo interface {
	ListByScope(ctx context.Context, scope models.GradeScope) ([]models.GradeRecord, error)
	ListByStudent(ctx context.Context, studentID, academicYear, term string) ([]models.GradeRecord, error)
	FindByParams(ctx context.Context, params models.GradeParams) (*models.GradeRecord, error)
	Create(ctx context.Context, grade *models.GradeRecord) error
	UpdateByParams(ctx context.Context, grade *models.GradeRecord) (int64, error)
	UpdateRanks(ctx context.Context, ranks map[string]string) error
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type subjectReader interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

// SaveGradeRequest is the grade entry payload. The client sends only raw
// scores; every weighted field is recomputed here. Scores are not clamped
// against their totals, matching the entry form's live-preview behaviour.
type SaveGradeRequest struct {
	StudentID    string `json:"student_id" validate:"required"`
	ClassID      string `json:"class_id" validate:"required"`
	SubjectID    string `json:"subject_id" validate:"required"`
	AcademicYear string `json:"academic_year" validate:"required"`
	Term         string `json:"term" validate:"required,oneof=first second third"`

	AssessmentScore float64 `json:"assessment_score"`
	AssessmentTotal float64 `json:"assessment_total" validate:"gte=0"`
	TestScore       float64 `json:"test_score"`
	TestTotal       float64 `json:"test_total" validate:"gte=0"`
	ExamScore       float64 `json:"exam_score"`
	ExamTotal       float64 `json:"exam_total" validate:"gte=0"`

	Remarks    string `json:"remarks" validate:"max=500"`
	IsNewGrade bool   `json:"is_new_grade"`
}

// GradeService owns the grade entry flow: single-record fetch for the
// entry form, create-or-update persistence with server-side weighting,
// and scope-wide rank recomputation after every write.
type GradeService struct {
	grades    gradeRepo
	students  studentReader
	subjects  subjectReader
	cache     *CacheService
	metrics   *MetricsService
	weights   grading.Weights
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewGradeService constructs a GradeService.
func NewGradeService(grades gradeRepo, students studentReader, subjects subjectReader, cache *CacheService, metrics *MetricsService, weights grading.Weights, validate *validator.Validate, logger *zap.Logger) (*GradeService, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{
		grades:    grades,
		students:  students,
		subjects:  subjects,
		cache:     cache,
		metrics:   metrics,
		weights:   weights,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

// List returns the full grade set for one class/subject/year/term scope.
func (s *GradeService) List(ctx context.Context, scope models.GradeScope) ([]models.GradeRecord, error) {
	if scope.ClassID == "" || scope.SubjectID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class and subject required")
	}
	grades, err := s.grades.ListByScope(ctx, scope)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}
	return grades, nil
}

// GetByParams fetches one grade record, the entry form's lookup for an
// existing record. A missing record is NOT_FOUND, which the form reads
// as the signal to take the create path.
func (s *GradeService) GetByParams(ctx context.Context, params models.GradeParams) (*models.GradeRecord, error) {
	if params.StudentID == "" || params.ClassID == "" || params.SubjectID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student, class and subject required")
	}
	grade, err := s.grades.FindByParams(ctx, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch grade")
	}
	return grade, nil
}

// Save persists a grade entry. IsNewGrade selects the create path; a
// duplicate tuple on create is a conflict, an absent tuple on update is
// not found. After the write the whole scope's subject ranks are
// recomputed and the cached results for the scope are invalidated.
func (s *GradeService) Save(ctx context.Context, req SaveGradeRequest) (*models.GradeRecord, error) {
	mode := "update"
	if req.IsNewGrade {
		mode = "create"
	}
	grade, err := s.save(ctx, req)
	s.metrics.RecordGradeSave(mode, err)
	return grade, err
}

func (s *GradeService) save(ctx context.Context, req SaveGradeRequest) (*models.GradeRecord, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}

	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	ev := grading.Evaluate(
		grading.ScoreComponent{Score: req.AssessmentScore, Total: req.AssessmentTotal},
		grading.ScoreComponent{Score: req.TestScore, Total: req.TestTotal},
		grading.ScoreComponent{Score: req.ExamScore, Total: req.ExamTotal},
		s.weights,
	)

	grade := &models.GradeRecord{
		StudentID:    req.StudentID,
		ClassID:      req.ClassID,
		SubjectID:    req.SubjectID,
		AcademicYear: req.AcademicYear,
		Term:         req.Term,

		AssessmentScore: req.AssessmentScore,
		AssessmentTotal: req.AssessmentTotal,
		TestScore:       req.TestScore,
		TestTotal:       req.TestTotal,
		ExamScore:       req.ExamScore,
		ExamTotal:       req.ExamTotal,

		WeightedAssessment: ev.WeightedAssessment,
		WeightedTest:       ev.WeightedTest,
		WeightedExam:       ev.WeightedExam,
		TotalScore:         ev.TotalScore,
		GradeLetter:        ev.GradeLetter,

		Remarks:   req.Remarks,
		GradeDate: s.now(),
	}

	if req.IsNewGrade {
		if err := s.grades.Create(ctx, grade); err != nil {
			if repository.IsUniqueViolation(err) {
				return nil, appErrors.Clone(appErrors.ErrConflict, "grade already exists for this student and term")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create grade")
		}
	} else {
		affected, err := s.grades.UpdateByParams(ctx, grade)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grade")
		}
		if affected == 0 {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
	}

	scope := models.GradeScope{ClassID: req.ClassID, SubjectID: req.SubjectID, AcademicYear: req.AcademicYear, Term: req.Term}
	if err := s.recomputeRanks(ctx, scope); err != nil {
		// The record is saved; a rank pass failure only staled the badges.
		s.logger.Warn("rank recomputation failed", zap.String("class_id", scope.ClassID), zap.String("subject_id", scope.SubjectID), zap.Error(err))
	}

	if err := s.cache.Invalidate(ctx, resultsCachePattern(scope)); err != nil {
		s.logger.Warn("results cache invalidation failed", zap.Error(err))
	}

	saved, err := s.grades.FindByParams(ctx, models.GradeParams{
		StudentID: req.StudentID, ClassID: req.ClassID, SubjectID: req.SubjectID,
		AcademicYear: req.AcademicYear, Term: req.Term,
	})
	if err != nil {
		return grade, nil
	}
	return saved, nil
}

// recomputeRanks rewrites subject_rank for every record in the scope.
// Standard competition ranking: ties share a rank and the next distinct
// score skips the shared positions.
func (s *GradeService) recomputeRanks(ctx context.Context, scope models.GradeScope) error {
	grades, err := s.grades.ListByScope(ctx, scope)
	if err != nil {
		return fmt.Errorf("list scope for ranking: %w", err)
	}
	if len(grades) == 0 {
		return nil
	}
	sort.SliceStable(grades, func(i, j int) bool {
		return grades[i].TotalScore > grades[j].TotalScore
	})
	ranks := make(map[string]string, len(grades))
	rank := 0
	var prev float64
	for i, grade := range grades {
		if i == 0 || grade.TotalScore != prev {
			rank = i + 1
			prev = grade.TotalScore
		}
		ranks[grade.ID] = strconv.Itoa(rank)
	}
	return s.grades.UpdateRanks(ctx, ranks)
}

// ClassSummary aggregates performance across one grade scope.
func (s *GradeService) ClassSummary(ctx context.Context, scope models.GradeScope) (*models.ClassSummary, error) {
	grades, err := s.List(ctx, scope)
	if err != nil {
		return nil, err
	}
	letters := make([]string, 0, len(grades))
	sum := 0.0
	for _, grade := range grades {
		letters = append(letters, grade.GradeLetter)
		sum += grade.TotalScore
	}
	summary := &models.ClassSummary{
		ClassID:      scope.ClassID,
		SubjectID:    scope.SubjectID,
		AcademicYear: scope.AcademicYear,
		Term:         scope.Term,
		TotalGraded:  len(grades),
		GPA:          grading.GPA(letters),
		Distribution: grading.Distribution(letters),
	}
	if len(grades) > 0 {
		summary.AverageScore = round2(sum / float64(len(grades)))
	}
	return summary, nil
}

// TermReport builds a student's per-subject report for one term.
func (s *GradeService) TermReport(ctx context.Context, studentID, academicYear, term string) (*models.TermReport, error) {
	if studentID == "" || academicYear == "" || term == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student, academic year and term required")
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	grades, err := s.grades.ListByStudent(ctx, studentID, academicYear, term)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}

	report := &models.TermReport{
		StudentID:    studentID,
		StudentName:  student.FullName(),
		AcademicYear: academicYear,
		Term:         term,
	}
	letters := make([]string, 0, len(grades))
	sum := 0.0
	for _, grade := range grades {
		subjectName := grade.SubjectID
		if subject, err := s.subjects.FindByID(ctx, grade.SubjectID); err == nil {
			subjectName = subject.SubjectName
		}
		report.Subjects = append(report.Subjects, models.TermReportRow{
			SubjectID:   grade.SubjectID,
			SubjectName: subjectName,
			Assessment:  scoreFraction(grade.AssessmentScore, grade.AssessmentTotal),
			Test:        scoreFraction(grade.TestScore, grade.TestTotal),
			Exam:        scoreFraction(grade.ExamScore, grade.ExamTotal),
			TotalScore:  grade.TotalScore,
			GradeLetter: grade.GradeLetter,
		})
		letters = append(letters, grade.GradeLetter)
		sum += grade.TotalScore
	}
	report.GPA = grading.GPA(letters)
	if len(grades) > 0 {
		report.AverageScore = round2(sum / float64(len(grades)))
	}
	return report, nil
}

func scoreFraction(score, total float64) string {
	return fmt.Sprintf("%s/%s", trimFloat(score), trimFloat(total))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
