package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kurller/Remote-job-Application-Manager/internal/applications"
	"github.com/Kurller/Remote-job-Application-Manager/internal/candidates"
	"github.com/Kurller/Remote-job-Application-Manager/internal/compose"
	"github.com/Kurller/Remote-job-Application-Manager/internal/cvs"
	"github.com/Kurller/Remote-job-Application-Manager/internal/jobs"
	"github.com/Kurller/Remote-job-Application-Manager/internal/llm"
	"github.com/Kurller/Remote-job-Application-Manager/internal/llm/openrouter"
	"github.com/Kurller/Remote-job-Application-Manager/internal/server"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/auth"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/config"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/storage/db"
	"github.com/Kurller/Remote-job-Application-Manager/internal/shared/storage/object"
	localstore "github.com/Kurller/Remote-job-Application-Manager/internal/shared/storage/object/local"
	s3store "github.com/Kurller/Remote-job-Application-Manager/internal/shared/storage/object/s3"
	"github.com/Kurller/Remote-job-Application-Manager/internal/tailoring"
	"github.com/Kurller/Remote-job-Application-Manager/internal/users"
)

// App holds shared dependencies built once at startup.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Signer *auth.Signer

	UsersRepo        users.Repo
	JobsRepo         jobs.Repo
	CandidatesRepo   candidates.Repo
	CVsRepo          cvs.Repo
	TailoringRepo    tailoring.Repo
	ApplicationsRepo applications.Repo

	UsersService        *users.Service
	JobsService         *jobs.Service
	CandidatesService   *candidates.Service
	CVsService          *cvs.Service
	TailoringService    *tailoring.Service
	ApplicationsService *applications.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Signer: auth.NewSigner(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		Signer:              app.Signer,
		UsersHandler:        users.NewHandler(app.UsersService),
		JobsHandler:         jobs.NewHandler(app.JobsService),
		CandidatesHandler:   candidates.NewHandler(app.CandidatesService),
		CVsHandler:          cvs.NewHandler(app.CVsService),
		TailoringHandler:    tailoring.NewHandler(app.TailoringService),
		ApplicationsHandler: applications.NewHandler(app.ApplicationsService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
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
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.CandidatesRepo = &candidates.PGRepo{DB: app.DB}
		app.CVsRepo = &cvs.PGRepo{DB: app.DB}
		app.TailoringRepo = &tailoring.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
		app.CandidatesRepo = candidates.NewMemoryRepo()
		app.CVsRepo = cvs.NewMemoryRepo()
		app.TailoringRepo = tailoring.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo()
	}

	var llmClient llm.Client
	if strings.TrimSpace(app.Config.OpenRouterAPIKey) != "" {
		client, err := openrouter.NewClient(
			app.Config.OpenRouterAPIKey,
			app.Config.LLMModel,
			app.Config.LLMBaseURL,
			app.Config.LLMTimeout,
			app.Config.LLMMaxTokens,
		)
		if err != nil {
			return err
		}
		llmClient = client
	} else {
		log.Printf("bootstrap: OPENROUTER_API_KEY empty; summary generation disabled")
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Signer)
	app.JobsService = jobs.NewService(app.JobsRepo)
	app.CandidatesService = candidates.NewService(app.CandidatesRepo)
	app.CVsService = cvs.NewService(app.CVsRepo, app.Store)
	app.TailoringService = tailoring.NewService(
		app.TailoringRepo,
		app.CVsRepo,
		app.JobsRepo,
		app.Store,
		llmClient,
		compose.NewComposer(),
		app.Config.LLMTimeout,
		app.Config.TailorTimeout,
	)
	app.ApplicationsService = applications.NewService(app.ApplicationsRepo, app.JobsRepo, app.CandidatesRepo, app.TailoringRepo)
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
