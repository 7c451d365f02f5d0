package model

import (
	"time"
)

// Export snapshot statuses
const (
	SnapshotStatusCompleted = "completed"
	SnapshotStatusFailed    = "failed"
)

// ExportSnapshot records one run of the scheduled results export job.
type ExportSnapshot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	RowCount  int       `json:"row_count"`
	Location  string    `gorm:"type:varchar(512)" json:"location"` // file path or object URL
	Status    string    `gorm:"type:varchar(20)" json:"status"`
	Error     string    `gorm:"type:text" json:"error,omitempty"`
}
