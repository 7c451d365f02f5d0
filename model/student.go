package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Student represents an enrolled student. Registration number is the public
// identity used together with date of birth when checking results.
type Student struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	Name               string         `gorm:"not null" json:"name"`
	RegistrationNumber string         `gorm:"uniqueIndex;not null" json:"registration_number"` // e.g., "CSE2025010"
	RollNumber         string         `gorm:"type:varchar(50)" json:"roll_number"`
	CourseID           uint           `gorm:"not null;index" json:"course_id"`
	Semester           int            `gorm:"not null" json:"semester"`
	AcademicYear       string         `gorm:"type:varchar(20)" json:"academic_year"` // e.g., "2024-25"
	DateOfBirth        datatypes.Date `gorm:"not null" json:"date_of_birth"`

	// Relationships
	Course  Course   `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE" json:"course,omitempty"`
	Results []Result `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
}
