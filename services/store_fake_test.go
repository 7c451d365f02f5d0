package services

import (
	"context"
	"sync"
	"time"

	"github.com/abceng/results-portal/model"
)

// fakeStore is an in-memory Store for exercising the services without a
// database. The upsert mirrors the real store's contract: writes for a
// pair are serialized (the real store holds an advisory lock for the
// transaction) and at most one result row per (student, subject) pair
// ever exists.
type fakeStore struct {
	mu sync.Mutex

	students []model.Student
	subjects []model.Subject
	results  []model.Result
	rows     []ExportRow

	nextResultID uint
	writes       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextResultID: 1}
}

func (f *fakeStore) FindStudentByCredentials(_ context.Context, regNo, dob string) (*model.Student, error) {
	for i := range f.students {
		s := &f.students[i]
		if s.RegistrationNumber == regNo && time.Time(s.DateOfBirth).Format("2006-01-02") == dob {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindStudentByReg(_ context.Context, regNo string) (*model.Student, error) {
	for i := range f.students {
		if f.students[i].RegistrationNumber == regNo {
			return &f.students[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindSubjectByCode(_ context.Context, code string) (*model.Subject, error) {
	for i := range f.subjects {
		if f.subjects[i].Code == code {
			return &f.subjects[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindSubjectsInScope(_ context.Context, courseID uint, semester int) ([]model.Subject, error) {
	var out []model.Subject
	for _, s := range f.subjects {
		if s.CourseID == courseID && s.Semester == semester {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStore) FindResult(_ context.Context, studentID, subjectID uint) (*model.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.results {
		r := &f.results[i]
		if r.StudentID == studentID && r.SubjectID == subjectID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) UpsertResult(_ context.Context, studentID, subjectID uint, internal, external int, grade string) (uint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	for i := range f.results {
		r := &f.results[i]
		if r.StudentID == studentID && r.SubjectID == subjectID {
			r.Internal = internal
			r.External = external
			r.Grade = grade
			return r.ID, nil
		}
	}
	created := model.Result{
		StudentID: studentID,
		SubjectID: subjectID,
		Internal:  internal,
		External:  external,
		Grade:     grade,
	}
	created.ID = f.nextResultID
	f.nextResultID++
	f.results = append(f.results, created)
	return created.ID, nil
}

func (f *fakeStore) ListAllResults(_ context.Context) ([]ExportRow, error) {
	out := make([]ExportRow, len(f.rows))
	copy(out, f.rows)
	return out, nil
}
