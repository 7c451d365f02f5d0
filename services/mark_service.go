package services

import (
	"context"
	"fmt"
	"log"

	"github.com/abceng/results-portal/utils/cache"
)

// MarkService handles administrative mark entry. Each entry either creates
// the result row for a (student, subject) pair or replaces the marks on the
// existing row; at most one row per pair ever exists.
type MarkService struct {
	store Store
	cache *cache.RedisCache
}

// NewMarkService creates a new mark service. cache may be nil.
func NewMarkService(store Store, redisCache *cache.RedisCache) *MarkService {
	return &MarkService{
		store: store,
		cache: redisCache,
	}
}

// RecordMark resolves both identities and upserts the marks for the pair.
// Returns ErrStudentNotFound or ErrSubjectNotFound without writing anything
// when either identity does not resolve.
func (s *MarkService) RecordMark(ctx context.Context, regNo, subjectCode string, internal, external int, grade string) (uint, error) {
	student, err := s.store.FindStudentByReg(ctx, regNo)
	if err != nil {
		return 0, fmt.Errorf("look up student: %w", err)
	}
	if student == nil {
		return 0, ErrStudentNotFound
	}

	subject, err := s.store.FindSubjectByCode(ctx, subjectCode)
	if err != nil {
		return 0, fmt.Errorf("look up subject: %w", err)
	}
	if subject == nil {
		return 0, ErrSubjectNotFound
	}

	id, err := s.store.UpsertResult(ctx, student.ID, subject.ID, internal, external, grade)
	if err != nil {
		return 0, fmt.Errorf("write result: %w", err)
	}

	// Drop the cached lookup so the next check sees the new marks.
	if s.cache != nil {
		if err := s.cache.Delete(ctx, resultCacheKey(regNo)); err != nil {
			log.Printf("Warning: failed to invalidate cached result for %s: %v", regNo, err)
		}
	}

	return id, nil
}
