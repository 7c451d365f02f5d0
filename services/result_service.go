package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/abceng/results-portal/utils/cache"
)

// resultCacheTTL bounds how stale a cached lookup may get between mark
// entries on other students.
const resultCacheTTL = 10 * time.Minute

// StudentInfo is the student header returned with a result lookup.
type StudentInfo struct {
	Name               string `json:"student_name"`
	RegistrationNumber string `json:"registration_number"`
	RollNumber         string `json:"roll_number"`
	CourseName         string `json:"course_name"`
	Semester           int    `json:"semester"`
	AcademicYear       string `json:"academic_year"`
	DateOfBirth        string `json:"date_of_birth"`
}

// ResultResponse is the full payload for one result lookup.
type ResultResponse struct {
	CollegeName string              `json:"college_name"`
	Student     StudentInfo         `json:"student"`
	Results     []SubjectEvaluation `json:"results"`
	Summary     StudentSummary      `json:"summary"`
}

// ResultService answers result lookups: credential match, per-subject
// evaluation and the aggregate summary. Lookups are cached per student when
// Redis is available.
type ResultService struct {
	store       Store
	cache       *cache.RedisCache
	collegeName string
}

// NewResultService creates a new result service. cache may be nil.
func NewResultService(store Store, redisCache *cache.RedisCache, collegeName string) *ResultService {
	return &ResultService{
		store:       store,
		cache:       redisCache,
		collegeName: collegeName,
	}
}

func resultCacheKey(regNo string) string {
	return fmt.Sprintf("result:%s", regNo)
}

// LookupAndEvaluate matches a student by registration number and date of
// birth and returns the evaluated results for every subject in the
// student's course and semester. Subjects without entered marks appear with
// zero marks and a Fail status.
func (s *ResultService) LookupAndEvaluate(ctx context.Context, regNo, dob string) (*ResultResponse, error) {
	student, err := s.store.FindStudentByCredentials(ctx, regNo, dob)
	if err != nil {
		return nil, fmt.Errorf("look up student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	if s.cache != nil {
		var cached ResultResponse
		if err := s.cache.GetJSON(ctx, resultCacheKey(regNo), &cached); err == nil {
			return &cached, nil
		}
	}

	subjects, err := s.store.FindSubjectsInScope(ctx, student.CourseID, student.Semester)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	evaluations := make([]SubjectEvaluation, 0, len(subjects))
	for _, subject := range subjects {
		result, err := s.store.FindResult(ctx, student.ID, subject.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch result for subject %s: %w", subject.Code, err)
		}
		evaluations = append(evaluations, EvaluateSubject(subject, result))
	}

	response := &ResultResponse{
		CollegeName: s.collegeName,
		Student: StudentInfo{
			Name:               student.Name,
			RegistrationNumber: student.RegistrationNumber,
			RollNumber:         student.RollNumber,
			CourseName:         student.Course.Name,
			Semester:           student.Semester,
			AcademicYear:       student.AcademicYear,
			DateOfBirth:        time.Time(student.DateOfBirth).Format("2006-01-02"),
		},
		Results: evaluations,
		Summary: Aggregate(evaluations),
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, resultCacheKey(regNo), response, resultCacheTTL); err != nil {
			log.Printf("Warning: failed to cache result for %s: %v", regNo, err)
		}
	}

	return response, nil
}
