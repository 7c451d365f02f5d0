package router

import (
	"log"
	"time"

	"github.com/abceng/results-portal/config"
	"github.com/abceng/results-portal/database"
	"github.com/abceng/results-portal/handlers"
	admin_handlers "github.com/abceng/results-portal/handlers/admin"
	auth_handlers "github.com/abceng/results-portal/handlers/auth"
	result_handlers "github.com/abceng/results-portal/handlers/result"
	"github.com/abceng/results-portal/services"
	"github.com/abceng/results-portal/utils/auth"
	"github.com/abceng/results-portal/utils/cache"
	"github.com/abceng/results-portal/utils/middleware"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes wires handlers, services and middleware onto the app. The
// store handle is passed in explicitly; nothing here opens its own
// connection.
func SetupRoutes(app *fiber.App, store *database.GORMStore, getEnv *config.EnviornmentVariable) {
	if getEnv.JWT_SECRET == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := getEnv.JWT_ISSUER
	if jwtIssuer == "" {
		jwtIssuer = "results-portal-api"
	}

	jwtManager := auth.NewJWTManager(auth.JWTConfig{
		Secret: getEnv.JWT_SECRET,
		Expiry: 24 * time.Hour,
		Issuer: jwtIssuer,
	})

	db := store.GetDB()

	// Redis backs the lookup cache and credential throttling. The portal
	// still works without it, only slower and unthrottled.
	redisURL := getEnv.REDIS_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Lookup caching and throttling are disabled.", err)
		redisCache = nil
	}

	var bruteForce *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForce = middleware.NewBruteForceProtection(redisCache)
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Services
	resultService := services.NewResultService(store, redisCache, getEnv.COLLEGE_NAME)
	markService := services.NewMarkService(store, redisCache)
	exportService := services.NewExportService(store)

	// Handlers
	resultHandler := result_handlers.NewResultHandler(resultService, bruteForce)
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForce)
	markHandler := admin_handlers.NewMarkHandler(markService)
	studentHandler := admin_handlers.NewStudentHandler(db)
	exportHandler := admin_handlers.NewExportHandler(exportService)

	v1 := app.Group("/api/v1")

	v1.Get("/health", handlers.HandleCheckHealth(store))

	// Public result check
	results := v1.Group("/results")
	if bruteForce != nil {
		results.Use(bruteForce.CheckAndRecordAttempt())
	}
	results.Post("/check", resultHandler.CheckResult)

	// Staff login
	authGroup := v1.Group("/auth")
	if bruteForce != nil {
		authGroup.Use(bruteForce.CheckAndRecordAttempt())
	}
	authGroup.Post("/login", authHandler.Login)

	// Staff-only mark entry and export
	adminGroup := v1.Group("/admin", authMiddleware.Required())
	adminGroup.Put("/marks", markHandler.UpsertMark)
	adminGroup.Get("/results/export", exportHandler.ExportCSV)
	adminGroup.Post("/students", authMiddleware.AdminOnly(), studentHandler.CreateStudent)
}
