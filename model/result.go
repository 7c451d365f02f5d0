package model

import (
	"time"

	"gorm.io/gorm"
)

// Result stores the marks entered for one (student, subject) pair.
//
// The pair is kept unique by the upsert writer rather than by a unique
// constraint: a second mark-entry for the same pair updates the existing row
// in place. The composite index below only speeds up the pair lookup.
type Result struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	StudentID uint           `gorm:"not null;index:idx_results_pair" json:"student_id"`
	SubjectID uint           `gorm:"not null;index:idx_results_pair" json:"subject_id"`
	Internal  int            `gorm:"column:internal_marks;default:0" json:"internal_marks"`
	External  int            `gorm:"column:external_marks;default:0" json:"external_marks"`
	// Grade is the label entered at mark-entry time. It is kept for the
	// export ledger only; the lookup path recomputes grades from marks.
	Grade string `gorm:"type:varchar(5)" json:"grade"`

	// Relationships
	Student Student `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Subject Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"subject,omitempty"`
}
