package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abceng/results-portal/model"
	"gorm.io/datatypes"
)

func lookupFixture() *fakeStore {
	store := newFakeStore()

	dob, _ := time.Parse("2006-01-02", "2002-03-12")
	student := model.Student{
		Name:               "John Doe",
		RegistrationNumber: "CSE2025010",
		RollNumber:         "21CSE010",
		CourseID:           1,
		Semester:           4,
		AcademicYear:       "2024-25",
		DateOfBirth:        datatypes.Date(dob),
		Course:             model.Course{Name: "B.Tech Computer Science & Engineering", Code: "CSE"},
	}
	student.ID = 1
	store.students = []model.Student{student}

	algorithms := model.Subject{CourseID: 1, Semester: 4, Code: "CSE401", Name: "Algorithms", MaxMarks: 100}
	algorithms.ID = 11
	databases := model.Subject{CourseID: 1, Semester: 4, Code: "CSE402", Name: "Databases", MaxMarks: 100}
	databases.ID = 12
	store.subjects = []model.Subject{algorithms, databases}

	// Marks entered only for CSE401
	entered := model.Result{StudentID: 1, SubjectID: 11, Internal: 12, External: 56, Grade: "A"}
	entered.ID = 21
	store.results = []model.Result{entered}

	return store
}

func TestLookupAndEvaluate(t *testing.T) {
	svc := NewResultService(lookupFixture(), nil, "ABC Engineering College")

	got, err := svc.LookupAndEvaluate(context.Background(), "CSE2025010", "2002-03-12")
	if err != nil {
		t.Fatalf("LookupAndEvaluate: %v", err)
	}

	if got.CollegeName != "ABC Engineering College" {
		t.Errorf("got college name %q, want the configured name", got.CollegeName)
	}
	if got.Student.Name != "John Doe" || got.Student.CourseName != "B.Tech Computer Science & Engineering" {
		t.Errorf("unexpected student header: %+v", got.Student)
	}
	if got.Student.DateOfBirth != "2002-03-12" {
		t.Errorf("got dob %q, want 2002-03-12", got.Student.DateOfBirth)
	}

	if len(got.Results) != 2 {
		t.Fatalf("got %d evaluations, want 2: ungraded subjects must still appear", len(got.Results))
	}

	entered := got.Results[0]
	if entered.SubjectCode != "CSE401" || entered.Total != 68 || entered.Status != StatusPass {
		t.Errorf("entered subject: %+v, want CSE401 total=68 Pass", entered)
	}

	ungraded := got.Results[1]
	if ungraded.SubjectCode != "CSE402" || ungraded.Total != 0 || ungraded.Status != StatusFail {
		t.Errorf("ungraded subject: %+v, want CSE402 total=0 Fail", ungraded)
	}

	summary := got.Summary
	if summary.TotalObtained != 68 || summary.TotalMax != 200 {
		t.Errorf("got totals %d/%d, want 68/200", summary.TotalObtained, summary.TotalMax)
	}
	if summary.Grade != "F" || summary.Status != StatusFail {
		t.Errorf("got grade %s status %s, want F Fail", summary.Grade, summary.Status)
	}
}

func TestLookupAndEvaluateWrongCredentials(t *testing.T) {
	svc := NewResultService(lookupFixture(), nil, "ABC Engineering College")

	for _, tc := range []struct{ reg, dob string }{
		{"CSE2025010", "2002-03-13"}, // right student, wrong dob
		{"CSE2025099", "2002-03-12"}, // unknown registration
	} {
		_, err := svc.LookupAndEvaluate(context.Background(), tc.reg, tc.dob)
		if !errors.Is(err, ErrStudentNotFound) {
			t.Errorf("LookupAndEvaluate(%s, %s): got err %v, want ErrStudentNotFound", tc.reg, tc.dob, err)
		}
	}
}
