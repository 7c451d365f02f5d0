package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/abceng/results-portal/model"
)

func markFixture() *fakeStore {
	store := newFakeStore()
	store.students = []model.Student{
		{Name: "John Doe", RegistrationNumber: "CSE2025010", CourseID: 1, Semester: 4},
	}
	store.students[0].ID = 1
	store.subjects = []model.Subject{
		{CourseID: 1, Semester: 4, Code: "CSE401", Name: "Algorithms", MaxMarks: 100},
	}
	store.subjects[0].ID = 11
	return store
}

func TestRecordMarkCreatesThenReplaces(t *testing.T) {
	store := markFixture()
	svc := NewMarkService(store, nil)
	ctx := context.Background()

	firstID, err := svc.RecordMark(ctx, "CSE2025010", "CSE401", 12, 56, "A")
	if err != nil {
		t.Fatalf("first RecordMark: %v", err)
	}

	secondID, err := svc.RecordMark(ctx, "CSE2025010", "CSE401", 15, 60, "A+")
	if err != nil {
		t.Fatalf("second RecordMark: %v", err)
	}

	if firstID != secondID {
		t.Errorf("second entry created a new row: ids %d and %d", firstID, secondID)
	}
	if len(store.results) != 1 {
		t.Fatalf("got %d result rows for the pair, want exactly 1", len(store.results))
	}

	final := store.results[0]
	if final.Internal != 15 || final.External != 60 || final.Grade != "A+" {
		t.Errorf("row holds %d/%d %q, want the second call's values 15/60 \"A+\"",
			final.Internal, final.External, final.Grade)
	}
}

// Two concurrent first entries for the same pair must end up in one row:
// the store serializes the check-then-write per pair, so the loser of the
// race sees the winner's row and updates it instead of inserting again.
func TestRecordMarkConcurrentFirstEntries(t *testing.T) {
	store := markFixture()
	svc := NewMarkService(store, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = svc.RecordMark(ctx, "CSE2025010", "CSE401", 10+n, 50+n, "B")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("RecordMark %d: %v", i, err)
		}
	}

	if len(store.results) != 1 {
		t.Fatalf("got %d result rows for the pair after concurrent entries, want exactly 1", len(store.results))
	}

	final := store.results[0]
	if final.External != 50 && final.External != 51 {
		t.Errorf("row holds external=%d, want one entry's value intact", final.External)
	}
}

func TestRecordMarkUnknownStudent(t *testing.T) {
	store := markFixture()
	svc := NewMarkService(store, nil)

	_, err := svc.RecordMark(context.Background(), "NOPE999", "CSE401", 10, 10, "")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("got err %v, want ErrStudentNotFound", err)
	}
	if store.writes != 0 {
		t.Errorf("store saw %d writes, want none on unresolved student", store.writes)
	}
}

func TestRecordMarkUnknownSubject(t *testing.T) {
	store := markFixture()
	svc := NewMarkService(store, nil)

	_, err := svc.RecordMark(context.Background(), "CSE2025010", "NOPE101", 10, 10, "")
	if !errors.Is(err, ErrSubjectNotFound) {
		t.Fatalf("got err %v, want ErrSubjectNotFound", err)
	}
	if store.writes != 0 {
		t.Errorf("store saw %d writes, want none on unresolved subject", store.writes)
	}
}
