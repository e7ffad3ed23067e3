package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/project-tracker/internal"
	"github.com/frahmantamala/project-tracker/internal/audit"
	auditPostgres "github.com/frahmantamala/project-tracker/internal/audit/postgres"
	"github.com/frahmantamala/project-tracker/internal/auth"
	authPostgres "github.com/frahmantamala/project-tracker/internal/auth/postgres"
	"github.com/frahmantamala/project-tracker/internal/connection"
	connectionPostgres "github.com/frahmantamala/project-tracker/internal/connection/postgres"
	"github.com/frahmantamala/project-tracker/internal/core/events"
	"github.com/frahmantamala/project-tracker/internal/cost"
	costPostgres "github.com/frahmantamala/project-tracker/internal/cost/postgres"
	"github.com/frahmantamala/project-tracker/internal/doc"
	docPostgres "github.com/frahmantamala/project-tracker/internal/doc/postgres"
	"github.com/frahmantamala/project-tracker/internal/note"
	notePostgres "github.com/frahmantamala/project-tracker/internal/note/postgres"
	"github.com/frahmantamala/project-tracker/internal/project"
	projectPostgres "github.com/frahmantamala/project-tracker/internal/project/postgres"
	"github.com/frahmantamala/project-tracker/internal/rbac"
	rbacPostgres "github.com/frahmantamala/project-tracker/internal/rbac/postgres"
	"github.com/frahmantamala/project-tracker/internal/task"
	taskPostgres "github.com/frahmantamala/project-tracker/internal/task/postgres"
	"github.com/frahmantamala/project-tracker/internal/timelog"
	timelogPostgres "github.com/frahmantamala/project-tracker/internal/timelog/postgres"
	"github.com/frahmantamala/project-tracker/internal/transport/rest"
	"github.com/frahmantamala/project-tracker/internal/user"
	userPostgres "github.com/frahmantamala/project-tracker/internal/user/postgres"
	"github.com/frahmantamala/project-tracker/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Environment, config.Observability.Logging.Level)
	appLogger := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// GORM rides on the sqlx/pgx pool so both layers share one set of
	// connections.
	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	// Event bus and audit pipeline
	eventBus := events.NewEventBus(appLogger)
	auditRepo := auditPostgres.NewAuditRepository(gormDB)
	auditService := audit.NewService(auditRepo, appLogger)
	auditService.RegisterSubscriber(eventBus)
	recorder := audit.NewBusRecorder(eventBus, appLogger)

	// Repositories
	authRepo := authPostgres.NewAuthRepository(gormDB)
	userRepo := userPostgres.NewUserRepository(gormDB)
	projectRepo := projectPostgres.NewProjectRepository(gormDB)
	rbacRepo := rbacPostgres.NewRBACRepository(gormDB)
	noteRepo := notePostgres.NewNoteRepository(gormDB)
	docRepo := docPostgres.NewDocRepository(gormDB)
	connectionRepo := connectionPostgres.NewConnectionRepository(gormDB)
	costRepo := costPostgres.NewCostRepository(gormDB)
	taskRepo := taskPostgres.NewTaskRepository(gormDB)
	timelogRepo := timelogPostgres.NewTimeLogRepository(gormDB)

	// Authorization core: every project-scoped decision flows through here
	authorizer := rbac.NewAuthorizer(rbacRepo, projectRepo, appLogger)

	// Services
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authRepo, tokenGen, config.Security.BCryptCost, appLogger)
	userService := user.NewService(userRepo, authorizer, recorder, appLogger, config.Security.BCryptCost)
	projectService := project.NewService(projectRepo, authorizer, recorder, appLogger)
	rbacService := rbac.NewService(rbacRepo, authorizer, userService, recorder, appLogger)
	noteService := note.NewService(noteRepo, authorizer, recorder, appLogger)
	docService := doc.NewService(docRepo, authorizer, recorder, appLogger)
	connectionService := connection.NewService(connectionRepo, authorizer, recorder, appLogger)
	costService := cost.NewService(costRepo, authorizer, recorder, appLogger)
	taskService := task.NewService(taskRepo, authorizer, recorder, appLogger)
	timelogService := timelog.NewService(timelogRepo, authorizer, recorder, appLogger)

	// Handlers
	handlers := rest.Handlers{
		Auth:       auth.NewHandler(authService),
		User:       user.NewHandler(userService),
		Project:    project.NewHandler(projectService),
		RBAC:       rbac.NewHandler(rbacService),
		Note:       note.NewHandler(noteService),
		Doc:        doc.NewHandler(docService),
		Connection: connection.NewHandler(connectionService),
		Cost:       cost.NewHandler(costService),
		Task:       task.NewHandler(taskService),
		TimeLog:    timelog.NewHandler(timelogService),
		Audit:      audit.NewHandler(auditService),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, handlers, config.Server.AllowedOrigins, appLogger)

	return &Dependencies{
		Config: config,
		DB:     db,
		Router: router,
		Logger: appLogger,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
