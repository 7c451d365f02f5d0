package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents a staff account allowed to enter marks and download the
// results export. Students never have accounts; they check results with
// registration number + date of birth.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Role         string         `gorm:"type:varchar(20);default:'staff'" json:"role"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
}
