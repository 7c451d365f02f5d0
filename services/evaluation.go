package services

import (
	"math"

	"github.com/abceng/results-portal/model"
)

// Result statuses
const (
	StatusPass = "Pass"
	StatusFail = "Fail"
)

// SubjectEvaluation is the per-subject verdict computed for a lookup. It is
// derived from the stored marks and never persisted.
type SubjectEvaluation struct {
	SubjectID   uint   `json:"subject_id"`
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	Internal    int    `json:"internal_marks"`
	External    int    `json:"external_marks"`
	Total       int    `json:"total_marks"`
	MaxMarks    int    `json:"max_marks"`
	Grade       string `json:"grade"`
	Status      string `json:"status"`
}

// StudentSummary aggregates all subject evaluations for one student.
type StudentSummary struct {
	TotalObtained int     `json:"total_obtained"`
	TotalMax      int     `json:"total_max"`
	Percentage    float64 `json:"percentage"`
	Grade         string  `json:"grade"`
	Status        string  `json:"status"`
}

// PassThreshold returns the minimum total required to pass a subject:
// 40% of the maximum, rounded up. A non-positive maximum falls back to
// the default of 100.
func PassThreshold(maxMarks int) int {
	if maxMarks <= 0 {
		maxMarks = model.DefaultMaxMarks
	}
	return int(math.Ceil(0.40 * float64(maxMarks)))
}

// EvaluateSubject computes the verdict for a single subject. A nil result
// means no marks have been entered yet; the subject still counts, with zero
// marks, so an ungraded subject reads as Fail rather than disappearing.
//
// Marks are taken as stored. Negative or out-of-range values flow through
// the arithmetic unchanged.
func EvaluateSubject(subject model.Subject, result *model.Result) SubjectEvaluation {
	internal, external, grade := 0, 0, ""
	if result != nil {
		internal = result.Internal
		external = result.External
		grade = result.Grade
	}

	total := internal + external
	maxMarks := subject.EffectiveMaxMarks()

	status := StatusFail
	if total >= PassThreshold(maxMarks) {
		status = StatusPass
	}

	return SubjectEvaluation{
		SubjectID:   subject.ID,
		SubjectCode: subject.Code,
		SubjectName: subject.Name,
		Internal:    internal,
		External:    external,
		Total:       total,
		MaxMarks:    maxMarks,
		Grade:       grade,
		Status:      status,
	}
}

// GradeForPercentage maps an aggregate percentage to a letter grade. Bands
// are checked from highest to lowest with inclusive lower bounds; values
// outside [0, 100] go through the same table unclamped.
func GradeForPercentage(pct float64) string {
	switch {
	case pct >= 85:
		return "O"
	case pct >= 75:
		return "A+"
	case pct >= 65:
		return "A"
	case pct >= 55:
		return "B+"
	case pct >= 45:
		return "B"
	case pct >= 40:
		return "C"
	default:
		return "F"
	}
}

// Aggregate folds per-subject evaluations into an overall summary.
//
// The overall status is gated twice: a single failed subject fails the
// student regardless of percentage, and an overall grade of F fails the
// student regardless of per-subject results. The two checks are kept
// independent so that the any-subject-fail rule survives a change to the
// grade table.
func Aggregate(evaluations []SubjectEvaluation) StudentSummary {
	totalObtained := 0
	totalMax := 0
	anyFail := false

	for _, ev := range evaluations {
		totalObtained += ev.Total
		totalMax += ev.MaxMarks
		if ev.Status == StatusFail {
			anyFail = true
		}
	}

	percentage := 0.0
	if totalMax > 0 {
		percentage = float64(totalObtained) / float64(totalMax) * 100
	}

	grade := GradeForPercentage(percentage)

	status := StatusPass
	if anyFail || grade == "F" {
		status = StatusFail
	}

	return StudentSummary{
		TotalObtained: totalObtained,
		TotalMax:      totalMax,
		Percentage:    percentage,
		Grade:         grade,
		Status:        status,
	}
}
