package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/applications"
	"recruit-backend/internal/companies"
	"recruit-backend/internal/evaluations"
	"recruit-backend/internal/evaluator"
	"recruit-backend/internal/postings"
	"recruit-backend/internal/shared/config"
	"recruit-backend/internal/shared/server"
	"recruit-backend/internal/shared/storage/db"
)

var errDatabaseRequired = errors.New("DATABASE_URL is required")

// App holds shared dependencies.
type App struct {
	Config     config.Config
	Router     *gin.Engine
	DB         *sql.DB
	Dispatcher *evaluator.Dispatcher
	Sweeper    *postings.Sweeper

	CompaniesRepo    companies.Repo
	PostingsRepo     postings.Repo
	ApplicationsRepo applications.Repo
	EvaluationsRepo  evaluations.Repo

	CompaniesService    *companies.Service
	PostingsService     *postings.Service
	ApplicationsService *applications.Service
	EvaluationsService  *evaluations.Service

	CompaniesHandler    *companies.Handler
	PostingsHandler     *postings.Handler
	ApplicationsHandler *applications.Handler
	EvaluationsHandler  *evaluations.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              cfg,
		CompaniesHandler:    app.CompaniesHandler,
		PostingsHandler:     app.PostingsHandler,
		ApplicationsHandler: app.ApplicationsHandler,
		EvaluationsHandler:  app.EvaluationsHandler,
	})

	return app, nil
}

// Close releases background workers and the database pool.
func (a *App) Close() {
	a.Dispatcher.Close()
	if a.DB != nil {
		a.DB.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, errDatabaseRequired
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.CompaniesRepo = &companies.PGRepo{DB: app.DB}
		app.PostingsRepo = &postings.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
		app.EvaluationsRepo = &evaluations.PGRepo{DB: app.DB}
	} else {
		app.CompaniesRepo = companies.NewMemoryRepo()
		app.PostingsRepo = postings.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo()
		app.EvaluationsRepo = evaluations.NewMemoryRepo(app.ApplicationsRepo)
	}

	cfg := app.Config
	client, err := evaluator.NewClient(cfg.EvaluatorBaseURL, cfg.EvaluatorTimeout)
	if err != nil {
		log.Printf("bootstrap: evaluator disabled: %v", err)
	} else {
		app.Dispatcher = evaluator.NewDispatcher(client, cfg.EvaluatorQueueSize, cfg.EvaluatorWorkers, cfg.EvaluatorTimeout)
	}

	app.CompaniesService = companies.NewService(app.CompaniesRepo)
	app.PostingsService = &postings.Service{
		Repo:          app.PostingsRepo,
		Companies:     app.CompaniesRepo,
		Evaluator:     app.Dispatcher,
		PublicBaseURL: cfg.PublicBaseURL,
	}
	app.EvaluationsService = &evaluations.Service{
		Repo:                app.EvaluationsRepo,
		Apps:                app.ApplicationsRepo,
		Postings:            app.PostingsRepo,
		DefaultItemMaxScore: cfg.DefaultItemMaxScore,
	}
	app.ApplicationsService = &applications.Service{
		Repo:      app.ApplicationsRepo,
		Postings:  app.PostingsRepo,
		Comments:  app.EvaluationsRepo,
		Scores:    app.EvaluationsRepo,
		Evaluator: app.Dispatcher,
	}

	app.CompaniesHandler = companies.NewHandler(app.CompaniesService)
	app.PostingsHandler = postings.NewHandler(app.PostingsService, app.ApplicationsService)
	app.ApplicationsHandler = applications.NewHandler(app.ApplicationsService)
	app.EvaluationsHandler = evaluations.NewHandler(app.EvaluationsService)

	app.Sweeper = &postings.Sweeper{Svc: app.PostingsService, Interval: cfg.SweepInterval}
	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
