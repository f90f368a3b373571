package models

import "time"

// Academic terms within a school year.
const (
	TermFirst  = "first"
	TermSecond = "second"
	TermThird  = "third"
)

// GradeRecord is the persisted result for one student, class, subject,
// academic year and term tuple. The weighted fields and the total are
// always recomputed server-side from the raw scores; subject_rank is
// recomputed for the whole scope after every save.
type GradeRecord struct {
	ID           string `db:"id" json:"id"`
	StudentID    string `db:"student_id" json:"student_id"`
	ClassID      string `db:"class_id" json:"class_id"`
	SubjectID    string `db:"subject_id" json:"subject_id"`
	AcademicYear string `db:"academic_year" json:"academic_year"`
	Term         string `db:"term" json:"term"`

	AssessmentScore float64 `db:"assessment_score" json:"assessment_score"`
	AssessmentTotal float64 `db:"assessment_total" json:"assessment_total"`
	TestScore       float64 `db:"test_score" json:"test_score"`
	TestTotal       float64 `db:"test_total" json:"test_total"`
	ExamScore       float64 `db:"exam_score" json:"exam_score"`
	ExamTotal       float64 `db:"exam_total" json:"exam_total"`

	WeightedAssessment float64 `db:"weighted_assessment" json:"weighted_assessment"`
	WeightedTest       float64 `db:"weighted_test" json:"weighted_test"`
	WeightedExam       float64 `db:"weighted_exam" json:"weighted_exam"`
	TotalScore         float64 `db:"total_score" json:"total_score"`
	GradeLetter        string  `db:"grade_letter" json:"grade_letter"`

	Remarks     string    `db:"remarks" json:"remarks"`
	SubjectRank *string   `db:"subject_rank" json:"subject_rank,omitempty"`
	GradeDate   time.Time `db:"grade_date" json:"grade_date"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// GradeScope identifies the grade set for one class, subject, academic
// year and term.
type GradeScope struct {
	ClassID      string
	SubjectID    string
	AcademicYear string
	Term         string
}

// GradeParams identifies a single grade record.
type GradeParams struct {
	StudentID    string
	ClassID      string
	SubjectID    string
	AcademicYear string
	Term         string
}
