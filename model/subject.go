package model

import (
	"time"

	"gorm.io/gorm"
)

// DefaultMaxMarks is used when a subject's maximum is unset or non-positive.
const DefaultMaxMarks = 100

// Subject represents an individual academic subject offered by a course in a
// given semester.
type Subject struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CourseID  uint           `gorm:"not null;index" json:"course_id"`
	Semester  int            `gorm:"not null;index" json:"semester"`
	Code      string         `gorm:"not null;index" json:"code"` // e.g., "CSE401"
	Name      string         `gorm:"not null" json:"name"`
	MaxMarks  int            `gorm:"default:100" json:"max_marks"`

	// Relationships
	Course  Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
	Results []Result `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// EffectiveMaxMarks returns the subject maximum, falling back to
// DefaultMaxMarks when the stored value is zero or negative.
func (s *Subject) EffectiveMaxMarks() int {
	if s.MaxMarks <= 0 {
		return DefaultMaxMarks
	}
	return s.MaxMarks
}
