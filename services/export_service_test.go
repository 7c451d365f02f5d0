package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"reflect"
	"testing"
)

func TestCompileOrdersRows(t *testing.T) {
	store := newFakeStore()
	// Deliberately unordered
	store.rows = []ExportRow{
		{RegistrationNumber: "CSE2025011", SubjectCode: "CSE402"},
		{RegistrationNumber: "CSE2025010", SubjectCode: "CSE402"},
		{RegistrationNumber: "CSE2025011", SubjectCode: "CSE401"},
		{RegistrationNumber: "CSE2025010", SubjectCode: "CSE401"},
	}

	svc := NewExportService(store)
	rows, err := svc.Compile(context.Background())
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if len(rows) != 4 {
		t.Fatalf("got %d rows, want exactly one per stored result", len(rows))
	}

	wantOrder := []struct{ reg, code string }{
		{"CSE2025010", "CSE401"},
		{"CSE2025010", "CSE402"},
		{"CSE2025011", "CSE401"},
		{"CSE2025011", "CSE402"},
	}
	for i, want := range wantOrder {
		if rows[i].RegistrationNumber != want.reg || rows[i].SubjectCode != want.code {
			t.Errorf("row %d: got (%s, %s), want (%s, %s)",
				i, rows[i].RegistrationNumber, rows[i].SubjectCode, want.reg, want.code)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	rows := []ExportRow{
		{
			RegistrationNumber: "CSE2025010",
			StudentName:        "John Doe",
			RollNumber:         "21CSE010",
			CourseName:         "B.Tech CSE",
			Semester:           4,
			AcademicYear:       "2024-25",
			SubjectCode:        "CSE401",
			SubjectName:        "Algorithms",
			Internal:           12,
			External:           56,
			Grade:              "A",
		},
	}

	data, err := WriteCSV(rows)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	if !reflect.DeepEqual(records[0], ExportHeader) {
		t.Errorf("header = %v, want %v", records[0], ExportHeader)
	}

	want := []string{"CSE2025010", "John Doe", "21CSE010", "B.Tech CSE", "4", "2024-25", "CSE401", "Algorithms", "12", "56", "A"}
	if !reflect.DeepEqual(records[1], want) {
		t.Errorf("row = %v, want %v", records[1], want)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	data, err := WriteCSV(nil)
	if err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want header only", len(records))
	}
}
