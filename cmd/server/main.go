package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/joho/godotenv"

	"ndisaudit/application"
	"ndisaudit/database"
	"ndisaudit/domain/contracts"
	"ndisaudit/infrastructure/config"
	"ndisaudit/infrastructure/pdf"
	"ndisaudit/infrastructure/repositories"
	"ndisaudit/interfaces/web/handlers"
	"ndisaudit/interfaces/web/presenters"
	"ndisaudit/logging"
	"ndisaudit/platform/events"
)

func main() {
	// Initialize configuration
	loadEnvironment()
	cfg := config.LoadAppConfigFromEnv()

	// Initialize logging
	logger := initializeLogging(cfg)

	// Initialize database
	db := initializeDatabase(cfg, logger)
	defer db.Close()

	// Build dependencies
	deps := buildDependencies(db, logger)

	// Setup routes and start server
	router := setupRoutes(deps, cfg)
	startServer(router, cfg.HTTPAddr, logger)
}

// RepositoryBundle holds all repository implementations
type RepositoryBundle struct {
	AuditRepo      contracts.AuditRepository
	FindingRepo    contracts.FindingRepository
	ReportDataRepo contracts.ReportDataRepository
}

// ApplicationServices holds application services.
type ApplicationServices struct {
	AuditService   application.AuditService
	FindingService application.FindingService
	ReportService  application.ReportService
	EventBus       *events.FindingEventBus
}

// PresentationLayer groups all presentation components
type PresentationLayer struct {
	AuditPresenter   *presenters.AuditPresenter
	ScorePresenter   *presenters.ScorePresenter
	FindingPresenter *presenters.FindingPresenter

	AuditHandlers   *handlers.AuditHandlers
	FindingHandlers *handlers.FindingHandlers
	ReportHandlers  *handlers.ReportHandlers
}

// Dependencies holds all application dependencies organized by layer
type Dependencies struct {
	DB     *database.Database
	Logger *logging.Logger

	Repos        *RepositoryBundle
	Services     *ApplicationServices
	Presentation *PresentationLayer
}

func loadEnvironment() {
	if err := godotenv.Load(); err != nil {
		println("No .env file found, using environment variables")
	} else {
		println("Loaded configuration from .env file")
	}
}

func initializeLogging(cfg *config.AppConfig) *logging.Logger {
	logger := logging.NewLogger(cfg.Logging)
	logging.SetDefault(logger)

	logger.Info("Application starting",
		"version", "1.0.0",
		"log_level", cfg.Logging.Level,
		"log_format", cfg.Logging.Format,
		"db_path", cfg.Database.Path,
	)

	return logger
}

func initializeDatabase(cfg *config.AppConfig, logger *logging.Logger) *database.Database {
	db, err := database.New(*cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	return db
}

// buildRepositories creates all repository implementations with read/write database separation
func buildRepositories(db *database.Database, logger *logging.Logger) *RepositoryBundle {
	auditRepo := repositories.NewSqliteAuditRepository(db, logger)
	findingRepo := repositories.NewSqliteFindingRepository(db, logger)
	reportDataRepo := repositories.NewReportDataRepository(db, logger, auditRepo, findingRepo)

	return &RepositoryBundle{
		AuditRepo:      auditRepo,
		FindingRepo:    findingRepo,
		ReportDataRepo: reportDataRepo,
	}
}

// buildApplicationServices creates application services with dependency injection.
func buildApplicationServices(repos *RepositoryBundle) *ApplicationServices {
	// Create event bus for finding lifecycle events
	eventBus := events.NewFindingEventBus()

	// The activity recorder maintains the append-only finding timeline
	activityRecorder := events.NewActivityRecorder(repos.FindingRepo)
	activityRecorder.RegisterHandlers(eventBus)

	auditService := application.NewAuditService(repos.AuditRepo, repos.FindingRepo, eventBus)
	findingService := application.NewFindingService(repos.FindingRepo, eventBus)
	reportService := application.NewReportService(repos.ReportDataRepo, pdf.NewGenerator())

	return &ApplicationServices{
		AuditService:   auditService,
		FindingService: findingService,
		ReportService:  reportService,
		EventBus:       eventBus,
	}
}

// buildPresentationLayer creates all presenters and handlers
func buildPresentationLayer(services *ApplicationServices) *PresentationLayer {
	// Build presenters (view logic)
	auditPresenter := presenters.NewAuditPresenter()
	scorePresenter := presenters.NewScorePresenter()
	findingPresenter := presenters.NewFindingPresenter()

	// Build handlers - orchestrate services & presenters
	auditHandlers := handlers.NewAuditHandlers(services.AuditService, auditPresenter, scorePresenter)
	findingHandlers := handlers.NewFindingHandlers(services.FindingService, findingPresenter)
	reportHandlers := handlers.NewReportHandlers(services.ReportService)

	return &PresentationLayer{
		AuditPresenter:   auditPresenter,
		ScorePresenter:   scorePresenter,
		FindingPresenter: findingPresenter,
		AuditHandlers:    auditHandlers,
		FindingHandlers:  findingHandlers,
		ReportHandlers:   reportHandlers,
	}
}

// buildDependencies creates all application dependencies
func buildDependencies(db *database.Database, logger *logging.Logger) *Dependencies {
	repos := buildRepositories(db, logger)
	services := buildApplicationServices(repos)
	presentation := buildPresentationLayer(services)

	return &Dependencies{
		DB:           db,
		Logger:       logger,
		Repos:        repos,
		Services:     services,
		Presentation: presentation,
	}
}

func setupRoutes(deps *Dependencies, cfg *config.AppConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	setupHTTPLogging(r, deps, cfg)
	r.Use(middleware.Recoverer)

	// System endpoints
	setupSystemRoutes(r, deps)

	// Audit routes
	setupAuditRoutes(r, deps)

	// Finding workflow routes
	setupFindingRoutes(r, deps)

	return r
}

func setupHTTPLogging(r *chi.Mux, deps *Dependencies, cfg *config.AppConfig) {
	if cfg.HTTPLogPath == "" {
		// No HTTP logging configured, skip
		return
	}

	logFile, err := os.OpenFile(cfg.HTTPLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		deps.Logger.Error("Failed to open HTTP log file", "error", err, "path", cfg.HTTPLogPath)
		return
	}
	// Note: logFile is not closed here as it needs to stay open for the server lifetime

	httpLogger := httplog.NewLogger("ndisaudit", httplog.Options{
		Writer: logFile,
		JSON:   true,
	})
	r.Use(httplog.RequestLogger(httpLogger))

	deps.Logger.Info("HTTP request logging enabled", "path", cfg.HTTPLogPath)
}

func setupSystemRoutes(r *chi.Mux, deps *Dependencies) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		stats, err := deps.DB.Health()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		response := map[string]interface{}{
			"status":   "ok",
			"database": stats,
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	})
}

func setupAuditRoutes(r *chi.Mux, deps *Dependencies) {
	p := deps.Presentation

	r.Post("/audits", p.AuditHandlers.CreateAudit)
	r.Get("/audits/{auditID}", p.AuditHandlers.GetAudit)
	r.Post("/audits/{auditID}/lock", p.AuditHandlers.LockScope)
	r.Post("/audits/{auditID}/responses", p.AuditHandlers.RecordResponse)
	r.Get("/audits/{auditID}/scores", p.AuditHandlers.GetScores)
	r.Get("/audits/{auditID}/findings", p.FindingHandlers.ListFindings)
	r.Get("/audits/{auditID}/report.pdf", p.ReportHandlers.GetReportPDF)
}

func setupFindingRoutes(r *chi.Mux, deps *Dependencies) {
	p := deps.Presentation

	r.Get("/findings/{findingID}", p.FindingHandlers.GetFinding)
	r.Get("/findings/{findingID}/activities", p.FindingHandlers.ListActivities)
	r.Post("/findings/{findingID}/close", p.FindingHandlers.CloseFinding)
	r.Post("/findings/{findingID}/reopen", p.FindingHandlers.ReopenFinding)
	r.Post("/findings/{findingID}/evidence", p.FindingHandlers.RequestEvidence)

	r.Post("/evidence-requests/{requestID}/items", p.FindingHandlers.SubmitEvidence)
	r.Post("/evidence-requests/{requestID}/review", p.FindingHandlers.ReviewEvidence)
}

func startServer(router *chi.Mux, addr string, logger *logging.Logger) {
	server := &http.Server{Addr: addr, Handler: router}

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sig
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(serverCtx, 30*time.Second)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Error("Graceful shutdown timed out, forcing exit")
				os.Exit(1)
			}
		}()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
			os.Exit(1)
		}
		serverStopCtx()
	}()

	logger.Info("Server starting", "address", addr)
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	<-serverCtx.Done()
	logger.Info("Server stopped")
}
