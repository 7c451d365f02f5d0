package cron

import (
	"log"

	"github.com/abceng/results-portal/services"
	"github.com/abceng/results-portal/services/spaces"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager runs the scheduled export snapshot job.
type CronManager struct {
	cron          *cron.Cron
	db            *gorm.DB
	exportService *services.ExportService
	spacesClient  *spaces.Client // nil when no bucket is configured
	exportDir     string
	schedule      string
}

// NewCronManager creates a new cron manager. spacesClient may be nil, in
// which case snapshots are only written to exportDir.
func NewCronManager(db *gorm.DB, exportService *services.ExportService, spacesClient *spaces.Client, exportDir, schedule string) *CronManager {
	// Cron specs include a seconds field
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:          c,
		db:            db,
		exportService: exportService,
		spacesClient:  spacesClient,
		exportDir:     exportDir,
		schedule:      schedule,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running jobs to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

func (m *CronManager) registerJobs() error {
	_, err := m.cron.AddFunc(m.schedule, func() {
		log.Println("[CRON] Starting job: export_snapshot")
		m.RunExportSnapshot()
	})
	return err
}
