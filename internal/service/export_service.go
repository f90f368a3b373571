package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/campushub/gradebook-api/internal/models"
	appErrors "github.com/campushub/gradebook-api/pkg/errors"
	"github.com/campushub/gradebook-api/pkg/export"
)

// exportRosterPageSize bounds each roster fetch while walking a class.
const exportRosterPageSize = 100

// ExportService renders class results as CSV and term reports as PDF.
type ExportService struct {
	roster rosterLister
	grades *GradeService
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(roster rosterLister, grades *GradeService, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		roster: roster,
		grades: grades,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// ClassResultsCSV renders the full class roster with grades for one
// scope. Unlike the paged results view this walks every roster page so
// the file is complete.
func (s *ExportService) ClassResultsCSV(ctx context.Context, scope models.GradeScope) ([]byte, string, error) {
	if scope.ClassID == "" || scope.SubjectID == "" || scope.AcademicYear == "" || scope.Term == "" {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "class, subject, academic year and term required")
	}

	students, err := s.fullRoster(ctx, scope.ClassID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	grades, err := s.grades.List(ctx, scope)
	if err != nil {
		return nil, "", err
	}

	byStudent := make(map[string]*models.GradeRecord, len(grades))
	for i := range grades {
		byStudent[grades[i].StudentID] = &grades[i]
	}

	data := export.Dataset{
		Headers: []string{
			"Student", "Assessment", "Test", "Exam",
			"Weighted Assessment", "Weighted Test", "Weighted Exam",
			"Total", "Grade", "Rank", "Status",
		},
	}
	for _, student := range students {
		grade, ok := byStudent[student.ID]
		if !ok {
			data.Rows = append(data.Rows, []string{
				student.FullName(), "", "", "", "", "", "", "", "", models.ResultStatusPending,
			})
			continue
		}
		rank := ""
		if grade.SubjectRank != nil {
			rank = *grade.SubjectRank
		}
		data.Rows = append(data.Rows, []string{
			student.FullName(),
			scoreFraction(grade.AssessmentScore, grade.AssessmentTotal),
			scoreFraction(grade.TestScore, grade.TestTotal),
			scoreFraction(grade.ExamScore, grade.ExamTotal),
			trimFloat(grade.WeightedAssessment),
			trimFloat(grade.WeightedTest),
			trimFloat(grade.WeightedExam),
			trimFloat(grade.TotalScore),
			grade.GradeLetter,
			rank,
			models.ResultStatusGraded,
		})
	}

	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	filename := fmt.Sprintf("results_%s_%s_%s.csv", scope.ClassID, scope.SubjectID, scope.Term)
	return payload, filename, nil
}

// TermReportPDF renders a student's term report as PDF.
func (s *ExportService) TermReportPDF(ctx context.Context, studentID, academicYear, term string) ([]byte, string, error) {
	report, err := s.grades.TermReport(ctx, studentID, academicYear, term)
	if err != nil {
		return nil, "", err
	}

	data := export.Dataset{
		Headers: []string{"Subject", "Assessment", "Test", "Exam", "Total", "Grade"},
	}
	for _, row := range report.Subjects {
		data.Rows = append(data.Rows, []string{
			row.SubjectName, row.Assessment, row.Test, row.Exam,
			trimFloat(row.TotalScore), row.GradeLetter,
		})
	}

	summary := []string{
		fmt.Sprintf("Student: %s", report.StudentName),
		fmt.Sprintf("Academic Year: %s    Term: %s", report.AcademicYear, report.Term),
		fmt.Sprintf("GPA: %s    Average: %s", trimFloat(report.GPA), trimFloat(report.AverageScore)),
	}

	payload, err := s.pdf.Render(data, "Term Report", summary)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	filename := fmt.Sprintf("term_report_%s_%s.pdf", studentID, term)
	return payload, filename, nil
}

func (s *ExportService) fullRoster(ctx context.Context, classID string) ([]models.Student, error) {
	var students []models.Student
	for page := 1; ; page++ {
		batch, total, err := s.roster.ListByClass(ctx, models.RosterFilter{
			ClassID:  classID,
			Page:     page,
			PageSize: exportRosterPageSize,
		})
		if err != nil {
			return nil, err
		}
		students = append(students, batch...)
		if len(batch) == 0 || len(students) >= total {
			return students, nil
		}
	}
}
