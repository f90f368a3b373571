// Package grading implements the score weighting and letter grade rules
// used when teachers record continuous assessment results. Everything in
// this package is a pure function of its inputs: invalid numeric input is
// coerced to zero rather than rejected, so a partially filled grade entry
// always evaluates to a well-formed preview.
package grading

import (
	"math"
	"strings"

	appErrors "github.com/campushub/gradebook-api/pkg/errors"
)

// ScoreComponent is one raw score/total pair for a single evaluation
// component (assessment, test or exam).
type ScoreComponent struct {
	Score float64 `json:"score"`
	Total float64 `json:"total"`
}

// Weights is the percentage split applied to the three components.
// The production split is assessment 20 / test 30 / exam 50.
type Weights struct {
	Assessment float64
	Test       float64
	Exam       float64
}

// DefaultWeights returns the shipped 20/30/50 split.
func DefaultWeights() Weights {
	return Weights{Assessment: 20, Test: 30, Exam: 50}
}

// Validate enforces that the three weights sum to exactly 100.
func (w Weights) Validate() error {
	if w.Assessment+w.Test+w.Exam != 100 {
		return appErrors.ErrInvalidWeights
	}
	return nil
}

// ComputeWeighted converts a raw component into its weighted contribution,
// rounded to two decimal places. A zero (or non-finite) total yields zero:
// an unscored component contributes nothing instead of dividing by zero.
func ComputeWeighted(c ScoreComponent, weightPct float64) float64 {
	total := sanitize(c.Total)
	if total <= 0 {
		return 0
	}
	score := sanitize(c.Score)
	return round2(score / total * weightPct)
}

// ComputeTotal sums the three weighted contributions, rounded to two
// decimal places. Inputs are the already-rounded persisted component
// values, so recomputing from the same record is idempotent.
func ComputeTotal(weightedAssessment, weightedTest, weightedExam float64) float64 {
	return round2(sanitize(weightedAssessment) + sanitize(weightedTest) + sanitize(weightedExam))
}

// letterBoundaries is evaluated top-down, first match wins.
var letterBoundaries = []struct {
	Min    float64
	Letter string
}{
	{80, "A"},
	{75, "B+"},
	{70, "B"},
	{65, "C+"},
	{60, "C"},
	{55, "C-"},
	{50, "D"},
	{45, "E"},
}

// LetterGrade maps a total score onto the institution's letter scale.
// Scores above 100 still map to A and negative scores fall through to F.
func LetterGrade(totalScore float64) string {
	totalScore = sanitize(totalScore)
	for _, b := range letterBoundaries {
		if totalScore >= b.Min {
			return b.Letter
		}
	}
	return "F"
}

// LetterStyleClass maps a letter grade to its presentation tier token,
// one of a/b/c/d/f. The trailing +/- modifier is ignored and unknown
// letters fall back to the f tier. E sits in the d tier with the other
// below-pass band. Every grade pill rendering goes through this single
// mapping.
func LetterStyleClass(letter string) string {
	letter = strings.TrimSpace(letter)
	if letter == "" {
		return "f"
	}
	switch strings.ToLower(letter[:1]) {
	case "a":
		return "a"
	case "b":
		return "b"
	case "c":
		return "c"
	case "d", "e":
		return "d"
	default:
		return "f"
	}
}

// Evaluation is the computed package persisted alongside the raw scores.
type Evaluation struct {
	WeightedAssessment float64
	WeightedTest       float64
	WeightedExam       float64
	TotalScore         float64
	GradeLetter        string
}

// Evaluate runs the full pipeline for one grade entry.
func Evaluate(assessment, test, exam ScoreComponent, w Weights) Evaluation {
	wa := ComputeWeighted(assessment, w.Assessment)
	wt := ComputeWeighted(test, w.Test)
	we := ComputeWeighted(exam, w.Exam)
	total := ComputeTotal(wa, wt, we)
	return Evaluation{
		WeightedAssessment: wa,
		WeightedTest:       wt,
		WeightedExam:       we,
		TotalScore:         total,
		GradeLetter:        LetterGrade(total),
	}
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sanitize coerces NaN and infinities to zero.
func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
