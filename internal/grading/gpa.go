package grading

import "math"

// gradePoints maps letter grades onto the 4.0 point scale used for GPA.
var gradePoints = map[string]float64{
	"A":  4.0,
	"B+": 3.3,
	"B":  3.0,
	"C+": 2.3,
	"C":  2.0,
	"C-": 1.7,
	"D":  1.0,
	"E":  0.5,
	"F":  0.0,
}

// GradePoints returns the point value for a letter grade, zero for
// anything outside the scale.
func GradePoints(letter string) float64 {
	return gradePoints[letter]
}

// GPA averages the point values of the given letter grades, rounded to
// two decimal places. An empty slice yields zero.
func GPA(letters []string) float64 {
	if len(letters) == 0 {
		return 0
	}
	sum := 0.0
	for _, letter := range letters {
		sum += GradePoints(letter)
	}
	return math.Round(sum/float64(len(letters))*100) / 100
}

// Distribution counts letter grades across a set of results. Letters
// outside the scale are ignored.
func Distribution(letters []string) map[string]int {
	dist := make(map[string]int, len(gradePoints))
	for letter := range gradePoints {
		dist[letter] = 0
	}
	for _, letter := range letters {
		if _, ok := dist[letter]; ok {
			dist[letter]++
		}
	}
	return dist
}
