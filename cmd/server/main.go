// @title           Nexus Portal Backend API
// @version         1.0.0
// @description     Backend API for the Nexus client portal: project intake, admin review dispatch, billing reconciliation, brand profiles and the outbound mail relay. Rows live in Supabase Postgres, files in Supabase Storage, identity in Supabase Auth.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"net/http"

	"nexus-portal-backend/docs"
	"nexus-portal-backend/internal/config"
	"nexus-portal-backend/internal/database"
	"nexus-portal-backend/internal/handlers"
	"nexus-portal-backend/internal/logger"
	"nexus-portal-backend/internal/mailer"
	"nexus-portal-backend/internal/middleware"
	"nexus-portal-backend/internal/services"
	"nexus-portal-backend/internal/supabase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "text").Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port

	// Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}
	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	attachments, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.AttachmentsBucket)
	if err != nil {
		log.Fatalf("Failed to initialize attachments storage: %v", err)
	}
	brandAssets, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.BrandAssetsBucket)
	if err != nil {
		log.Fatalf("Failed to initialize brand assets storage: %v", err)
	}
	paymentProofs, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.PaymentProofsBucket)
	if err != nil {
		log.Fatalf("Failed to initialize payment proofs storage: %v", err)
	}

	// Direct Postgres connection for queries and migrations
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required; set it to your Supabase PostgreSQL connection string")
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()

	// Outbound mail
	smtpMailer := mailer.New(cfg)
	if !cfg.MailConfigured() {
		log.Warn("SMTP credentials not configured; the mail relay will fail closed")
	}
	notifier := services.NewNotifier(smtpMailer, dbClient, cfg.AdminEmail, log)

	// Handlers
	profilesHandler := handlers.NewProfilesHandler(dbClient, brandAssets)
	projectsHandler := handlers.NewProjectsHandler(dbClient, realtimeClient, notifier)
	uploadsHandler := handlers.NewUploadsHandler(dbClient, attachments)
	paymentsHandler := handlers.NewPaymentsHandler(dbClient, paymentProofs, realtimeClient, notifier)
	notifyHandler := handlers.NewNotifyHandler(smtpMailer, dbClient, cfg.AdminEmail, log)

	// Router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.HandleMethodNotAllowed = true

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	api.Use(middleware.ProfileMiddleware(dbClient))

	// Profiles
	api.GET("/profiles/me", profilesHandler.GetMe)
	api.PUT("/profiles/me", profilesHandler.UpdateMe)
	api.POST("/profiles/me/brand-assets", profilesHandler.UploadBrandAssets)
	api.DELETE("/profiles/me/brand-assets", profilesHandler.RemoveBrandAsset)
	api.GET("/profiles", middleware.RequireAdmin(), profilesHandler.ListProfiles)
	api.POST("/profiles/:profile_id/role", middleware.RequireAdmin(), profilesHandler.UpdateRole)

	// Projects
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.GET("/projects/:project_id/status", projectsHandler.GetStatus)
	api.POST("/projects/:project_id/status", projectsHandler.UpdateStatus)
	api.POST("/projects/:project_id/response", middleware.RequireAdmin(), projectsHandler.SubmitResponse)
	api.POST("/projects/:project_id/attachments", uploadsHandler.Upload)
	api.GET("/projects/:project_id/files", uploadsHandler.GetFiles)

	// Payments
	api.POST("/payments", paymentsHandler.CreatePayment)
	api.GET("/payments", paymentsHandler.ListPayments)
	api.POST("/payments/:payment_id/verify", middleware.RequireAdmin(), paymentsHandler.VerifyPayment)
	api.POST("/payments/:payment_id/reject", middleware.RequireAdmin(), paymentsHandler.RejectPayment)

	// Mail relay (no auth; fails closed without SMTP credentials)
	router.POST("/api/v1/notify", notifyHandler.Notify)

	log.Infof("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
