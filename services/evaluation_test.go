package services

import (
	"math"
	"testing"

	"github.com/abceng/results-portal/model"
)

func TestPassThreshold(t *testing.T) {
	tests := []struct {
		name     string
		maxMarks int
		want     int
	}{
		{"standard hundred", 100, 40},
		{"lab fifty", 50, 20},
		{"rounds up", 75, 30},
		{"rounds up odd max", 33, 14}, // ceil(13.2)
		{"zero falls back to default", 0, 40},
		{"negative falls back to default", -10, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PassThreshold(tt.maxMarks); got != tt.want {
				t.Errorf("PassThreshold(%d) = %d, want %d", tt.maxMarks, got, tt.want)
			}
		})
	}
}

func TestEvaluateSubject(t *testing.T) {
	subject := model.Subject{Code: "CSE401", Name: "Algorithms", MaxMarks: 100}

	t.Run("pass at exactly the threshold", func(t *testing.T) {
		ev := EvaluateSubject(subject, &model.Result{Internal: 10, External: 30})
		if ev.Total != 40 || ev.Status != StatusPass {
			t.Errorf("got total=%d status=%s, want total=40 status=Pass", ev.Total, ev.Status)
		}
	})

	t.Run("fail just below the threshold", func(t *testing.T) {
		ev := EvaluateSubject(subject, &model.Result{Internal: 10, External: 29})
		if ev.Total != 39 || ev.Status != StatusFail {
			t.Errorf("got total=%d status=%s, want total=39 status=Fail", ev.Total, ev.Status)
		}
	})

	t.Run("missing result counts as zero marks and fails", func(t *testing.T) {
		ev := EvaluateSubject(subject, nil)
		if ev.Internal != 0 || ev.External != 0 || ev.Total != 0 {
			t.Errorf("got marks %d/%d total %d, want all zero", ev.Internal, ev.External, ev.Total)
		}
		if ev.Status != StatusFail {
			t.Errorf("got status %s, want Fail", ev.Status)
		}
		if ev.MaxMarks != 100 {
			t.Errorf("got max %d, want 100: missing marks must still contribute the subject max", ev.MaxMarks)
		}
	})

	t.Run("unset subject max defaults to 100", func(t *testing.T) {
		ev := EvaluateSubject(model.Subject{Code: "X"}, &model.Result{Internal: 20, External: 20})
		if ev.MaxMarks != 100 {
			t.Errorf("got max %d, want 100", ev.MaxMarks)
		}
		if ev.Status != StatusPass {
			t.Errorf("got status %s, want Pass at 40/100", ev.Status)
		}
	})

	t.Run("negative marks flow through unchanged", func(t *testing.T) {
		ev := EvaluateSubject(subject, &model.Result{Internal: -10, External: 5})
		if ev.Total != -5 {
			t.Errorf("got total %d, want -5", ev.Total)
		}
		if ev.Status != StatusFail {
			t.Errorf("got status %s, want Fail", ev.Status)
		}
	})
}

func TestGradeForPercentage(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "O"},
		{85, "O"},
		{84.9, "A+"},
		{75, "A+"},
		{74.9, "A"},
		{65, "A"},
		{64.9, "B+"},
		{55, "B+"},
		{54.9, "B"},
		{45, "B"},
		{44.9, "C"},
		{40, "C"},
		{39.9, "F"},
		{0, "F"},
		// outside [0,100]: same table, no clamping
		{120, "O"},
		{-5, "F"},
	}

	for _, tt := range tests {
		if got := GradeForPercentage(tt.pct); got != tt.want {
			t.Errorf("GradeForPercentage(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

// Grades must be monotonically non-increasing as percentage decreases.
func TestGradeForPercentageMonotonic(t *testing.T) {
	rank := map[string]int{"O": 6, "A+": 5, "A": 4, "B+": 3, "B": 2, "C": 1, "F": 0}

	prev := rank[GradeForPercentage(100)]
	for pct := 99.5; pct >= 0; pct -= 0.5 {
		cur := rank[GradeForPercentage(pct)]
		if cur > prev {
			t.Fatalf("grade rank increased from %d to %d at %v%%", prev, cur, pct)
		}
		prev = cur
	}
}

func TestAggregate(t *testing.T) {
	t.Run("one failed subject fails the student despite the percentage", func(t *testing.T) {
		evals := []SubjectEvaluation{
			{Total: 95, MaxMarks: 100, Status: StatusPass},
			{Total: 95, MaxMarks: 100, Status: StatusPass},
			{Total: 10, MaxMarks: 100, Status: StatusFail},
		}
		summary := Aggregate(evals)
		if summary.Percentage < 40 {
			t.Fatalf("scenario needs a passing percentage, got %v", summary.Percentage)
		}
		if summary.Status != StatusFail {
			t.Errorf("got status %s, want Fail on any subject failure", summary.Status)
		}
	})

	t.Run("partial marks with an ungraded subject", func(t *testing.T) {
		// internal=12, external=56 in one subject; no record in the second
		evals := []SubjectEvaluation{
			{Internal: 12, External: 56, Total: 68, MaxMarks: 100, Status: StatusPass},
			{Total: 0, MaxMarks: 100, Status: StatusFail},
		}
		summary := Aggregate(evals)
		if summary.TotalObtained != 68 || summary.TotalMax != 200 {
			t.Errorf("got totals %d/%d, want 68/200", summary.TotalObtained, summary.TotalMax)
		}
		if math.Abs(summary.Percentage-34.0) > 1e-9 {
			t.Errorf("got percentage %v, want 34.0", summary.Percentage)
		}
		if summary.Grade != "F" {
			t.Errorf("got grade %s, want F", summary.Grade)
		}
		if summary.Status != StatusFail {
			t.Errorf("got status %s, want Fail", summary.Status)
		}
	})

	t.Run("single strong subject", func(t *testing.T) {
		evals := []SubjectEvaluation{
			{Internal: 40, External: 45, Total: 85, MaxMarks: 100, Status: StatusPass},
		}
		summary := Aggregate(evals)
		if math.Abs(summary.Percentage-85.0) > 1e-9 {
			t.Errorf("got percentage %v, want 85.0", summary.Percentage)
		}
		if summary.Grade != "O" {
			t.Errorf("got grade %s, want O", summary.Grade)
		}
		if summary.Status != StatusPass {
			t.Errorf("got status %s, want Pass", summary.Status)
		}
	})

	t.Run("no subjects in scope", func(t *testing.T) {
		summary := Aggregate(nil)
		if summary.Percentage != 0.0 {
			t.Errorf("got percentage %v, want 0.0 when total max is zero", summary.Percentage)
		}
		if summary.TotalObtained != 0 || summary.TotalMax != 0 {
			t.Errorf("got totals %d/%d, want 0/0", summary.TotalObtained, summary.TotalMax)
		}
	})
}
