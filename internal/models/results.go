package models

import "github.com/campushub/gradebook-api/internal/grading"

// Grade entry states for a roster row.
const (
	ResultStatusGraded  = "graded"
	ResultStatusPending = "pending"
)

// StudentWithGrade pairs one roster student with their grade record for
// the selected scope, nil when no grade has been entered yet. The pair
// lives only for the duration of one results response. GradeStyle is
// the presentation tier for the grade pill, derived from the letter
// through the engine's single shared mapping.
type StudentWithGrade struct {
	Student    Student       `json:"student"`
	Grade      *GradeRecord  `json:"grade"`
	GradeStyle string        `json:"grade_style,omitempty"`
	RankBadge  grading.Badge `json:"rank_badge"`
}

// Status reports whether the row is graded or still pending.
func (r StudentWithGrade) Status() string {
	if r.Grade != nil {
		return ResultStatusGraded
	}
	return ResultStatusPending
}

// ResultsSummary is the stat strip above the results table.
type ResultsSummary struct {
	Total        int      `json:"total"`
	Graded       int      `json:"graded"`
	Pending      int      `json:"pending"`
	AverageScore *float64 `json:"average_score,omitempty"`
}

// ClassResults is the merged view for one class, subject, year and term
// selection. On a failed load Students is empty and Pagination nil so a
// stale page can never masquerade as current data.
type ClassResults struct {
	Students   []StudentWithGrade `json:"students"`
	Pagination *Pagination        `json:"-"`
	Summary    ResultsSummary     `json:"summary"`
	Message    string             `json:"message,omitempty"`
}

// ClassSummary aggregates performance for a whole grade scope.
type ClassSummary struct {
	ClassID      string         `json:"class_id"`
	SubjectID    string         `json:"subject_id"`
	AcademicYear string         `json:"academic_year"`
	Term         string         `json:"term"`
	TotalGraded  int            `json:"total_graded"`
	AverageScore float64        `json:"average_score"`
	GPA          float64        `json:"gpa"`
	Distribution map[string]int `json:"grade_distribution"`
}

// TermReportRow is one subject line of a student's term report.
type TermReportRow struct {
	SubjectID   string  `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	Assessment  string  `json:"assessment"`
	Test        string  `json:"test"`
	Exam        string  `json:"exam"`
	TotalScore  float64 `json:"total_score"`
	GradeLetter string  `json:"grade"`
}

// TermReport is a student's per-subject report for one term.
type TermReport struct {
	StudentID    string          `json:"student_id"`
	StudentName  string          `json:"student_name"`
	AcademicYear string          `json:"academic_year"`
	Term         string          `json:"term"`
	Subjects     []TermReportRow `json:"subjects"`
	GPA          float64         `json:"gpa"`
	AverageScore float64         `json:"average_score"`
}
