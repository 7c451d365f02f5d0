package cron

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/abceng/results-portal/model"
)

// RunExportSnapshot compiles the full results table, writes the CSV to the
// export directory and, when a bucket is configured, uploads it. Every run
// is recorded as an ExportSnapshot row.
func (m *CronManager) RunExportSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	data, rowCount, err := m.exportService.CompileCSV(ctx)
	if err != nil {
		m.recordSnapshot(0, "", model.SnapshotStatusFailed, err)
		return
	}

	name := fmt.Sprintf("results-%s.csv", time.Now().UTC().Format("20060102-150405"))
	location := filepath.Join(m.exportDir, name)

	if err := os.MkdirAll(m.exportDir, 0o755); err != nil {
		m.recordSnapshot(rowCount, "", model.SnapshotStatusFailed, err)
		return
	}
	if err := os.WriteFile(location, data, 0o644); err != nil {
		m.recordSnapshot(rowCount, "", model.SnapshotStatusFailed, err)
		return
	}

	if m.spacesClient != nil {
		url, err := m.spacesClient.UploadCSV(ctx, "snapshots/"+name, data)
		if err != nil {
			log.Printf("[CRON] Snapshot upload failed, keeping local copy: %v", err)
		} else {
			location = url
		}
	}

	m.recordSnapshot(rowCount, location, model.SnapshotStatusCompleted, nil)
	log.Printf("[CRON] export_snapshot completed: %d rows -> %s", rowCount, location)
}

func (m *CronManager) recordSnapshot(rowCount int, location, status string, jobErr error) {
	snapshot := model.ExportSnapshot{
		RowCount: rowCount,
		Location: location,
		Status:   status,
	}
	if jobErr != nil {
		snapshot.Error = jobErr.Error()
		log.Printf("[CRON] export_snapshot failed: %v", jobErr)
	}
	if err := m.db.Create(&snapshot).Error; err != nil {
		log.Printf("[CRON] Failed to record export snapshot: %v", err)
	}
}
