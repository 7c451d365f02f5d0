package model

import (
	"time"

	"gorm.io/gorm"
)

// Course represents an academic program (e.g., B.Tech CSE, MCA)
type Course struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Code      string         `gorm:"uniqueIndex;not null" json:"code"` // e.g., "CSE", "MCA"
	Duration  int            `gorm:"default:8" json:"duration"`        // Duration in semesters

	// Relationships
	Students []Student `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"students,omitempty"`
	Subjects []Subject `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"subjects,omitempty"`
}
