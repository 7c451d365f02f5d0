package services

import (
	"context"
	"errors"

	"github.com/abceng/results-portal/model"
)

// Lookup and write failures surfaced to handlers. Messages stay short and
// never mention tables or identifiers.
var (
	ErrStudentNotFound = errors.New("student not found")
	ErrSubjectNotFound = errors.New("subject not found")
)

// ExportRow is one flattened line of the results ledger: a Result joined
// with its student, course and subject.
type ExportRow struct {
	RegistrationNumber string
	StudentName        string
	RollNumber         string
	CourseName         string
	Semester           int
	AcademicYear       string
	SubjectCode        string
	SubjectName        string
	Internal           int
	External           int
	Grade              string
}

// Store is the record-store handle consumed by the services. It is
// constructed once at process start and passed in explicitly; nothing in
// this package reaches for a global connection.
type Store interface {
	// FindStudentByCredentials matches a registration number and date of
	// birth (YYYY-MM-DD) and returns the student with Course preloaded,
	// or nil when no pair matches.
	FindStudentByCredentials(ctx context.Context, regNo, dob string) (*model.Student, error)

	// FindStudentByReg returns the student with the given registration
	// number, or nil when absent.
	FindStudentByReg(ctx context.Context, regNo string) (*model.Student, error)

	// FindSubjectByCode returns the subject with the given code, or nil
	// when absent.
	FindSubjectByCode(ctx context.Context, code string) (*model.Subject, error)

	// FindSubjectsInScope lists the subjects of a course and semester,
	// ordered by id.
	FindSubjectsInScope(ctx context.Context, courseID uint, semester int) ([]model.Subject, error)

	// FindResult returns the stored result for a (student, subject) pair,
	// or nil when no marks have been entered.
	FindResult(ctx context.Context, studentID, subjectID uint) (*model.Result, error)

	// UpsertResult creates or replaces the result for a (student, subject)
	// pair and returns the row id. The check-then-write runs as one
	// transaction so concurrent entries for the same pair cannot race
	// into two rows.
	UpsertResult(ctx context.Context, studentID, subjectID uint, internal, external int, grade string) (uint, error)

	// ListAllResults returns one row per stored result, joined with
	// student, course and subject fields, ordered by registration number
	// then subject code.
	ListAllResults(ctx context.Context) ([]ExportRow, error)
}
