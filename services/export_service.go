package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
)

// ExportHeader is the fixed column set of the results CSV.
var ExportHeader = []string{
	"Registration", "Student Name", "Roll", "Course", "Semester", "Year",
	"Subject Code", "Subject Name", "Internal", "External", "Grade",
}

// ExportService flattens every stored result into the results ledger.
// Unlike the lookup path, subjects without an entered result do not appear:
// the export reflects exactly what has been entered.
type ExportService struct {
	store Store
}

// NewExportService creates a new export service.
func NewExportService(store Store) *ExportService {
	return &ExportService{store: store}
}

// Compile returns every result row ordered by registration number, then
// subject code. The sort is re-applied here so the ordering contract does
// not depend on the store's query plan.
func (s *ExportService) Compile(ctx context.Context) ([]ExportRow, error) {
	rows, err := s.store.ListAllResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].RegistrationNumber != rows[j].RegistrationNumber {
			return rows[i].RegistrationNumber < rows[j].RegistrationNumber
		}
		return rows[i].SubjectCode < rows[j].SubjectCode
	})

	return rows, nil
}

// WriteCSV serializes compiled rows with the fixed header.
func WriteCSV(rows []ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ExportHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.RegistrationNumber,
			row.StudentName,
			row.RollNumber,
			row.CourseName,
			strconv.Itoa(row.Semester),
			row.AcademicYear,
			row.SubjectCode,
			row.SubjectName,
			strconv.Itoa(row.Internal),
			strconv.Itoa(row.External),
			row.Grade,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CompileCSV compiles and serializes in one step.
func (s *ExportService) CompileCSV(ctx context.Context) ([]byte, int, error) {
	rows, err := s.Compile(ctx)
	if err != nil {
		return nil, 0, err
	}
	data, err := WriteCSV(rows)
	if err != nil {
		return nil, 0, err
	}
	return data, len(rows), nil
}
