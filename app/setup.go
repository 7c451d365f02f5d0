package app

import (
	"fmt"
	"log"
	"os"

	"github.com/abceng/results-portal/api"
	"github.com/abceng/results-portal/config"
	"github.com/abceng/results-portal/database"
	"github.com/abceng/results-portal/router"
	"github.com/abceng/results-portal/services"
	servicecron "github.com/abceng/results-portal/services/cron"
	"github.com/abceng/results-portal/services/spaces"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// Scheduled export snapshots (enabled unless CRON_ENABLED=false)
	var cronManager *servicecron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" {
		var spacesClient *spaces.Client
		if getEnv.SPACES_BUCKET != "" {
			spacesClient, err = spaces.NewClient(spaces.Config{
				AccessKey: getEnv.SPACES_ACCESS_KEY,
				SecretKey: getEnv.SPACES_SECRET_KEY,
				Bucket:    getEnv.SPACES_BUCKET,
				Region:    getEnv.SPACES_REGION,
				Endpoint:  getEnv.SPACES_ENDPOINT,
			})
			if err != nil {
				log.Printf("Warning: Failed to create Spaces client: %v. Snapshots stay local.", err)
				spacesClient = nil
			}
		}

		exportService := services.NewExportService(store)
		cronManager = servicecron.NewCronManager(store.GetDB(), exportService, spacesClient, getEnv.EXPORT_DIR, getEnv.EXPORT_SCHEDULE)
		if err := cronManager.Start(); err != nil {
			log.Printf("Warning: Failed to start cron jobs: %v", err)
			cronManager = nil
		}
	}

	// Defer closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store, getEnv)

	// Result check form
	app.Static("/", "./public")

	// Get the PORT & Start the Server
	return server.Run()
}
