package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"jobassist-backend/internal/applications"
	googleauth "jobassist-backend/internal/auth"
	"jobassist-backend/internal/coverletter"
	"jobassist-backend/internal/cvs"
	"jobassist-backend/internal/jobdesc"
	"jobassist-backend/internal/llm"
	"jobassist-backend/internal/llm/gemini"
	"jobassist-backend/internal/llm/openai"
	"jobassist-backend/internal/optimizer"
	"jobassist-backend/internal/queue"
	"jobassist-backend/internal/services/health"
	"jobassist-backend/internal/shared/config"
	"jobassist-backend/internal/shared/server"
	"jobassist-backend/internal/shared/storage/db"
	"jobassist-backend/internal/shared/storage/object"
	localstore "jobassist-backend/internal/shared/storage/object/local"
	s3store "jobassist-backend/internal/shared/storage/object/s3"
	"jobassist-backend/internal/shared/storage/redisdb"
	"jobassist-backend/internal/shared/telemetry"
	"jobassist-backend/internal/users"
)

const defaultRegion = "us-east-1"

// App holds shared dependencies and the HTTP router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Redis  *redis.Client
	Store  object.ObjectStore
	LLM    llm.Client
	Events queue.Publisher

	UsersService        *users.Service
	CVService           *cvs.Service
	OptimizerService    *optimizer.Service
	CoverLetterService  *coverletter.Service
	JobDescService      *jobdesc.Service
	ApplicationsService *applications.Service

	closers []io.Closer
}

// Build connects backing services and wires every handler.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB
	if sqlDB != nil {
		app.closers = append(app.closers, sqlDB)
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Store = store

	rdb, err := buildRedis(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Redis = rdb
	if rdb != nil {
		app.closers = append(app.closers, rdb)
	}

	events, err := buildPublisher(ctx, cfg, rdb)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Events = events

	client, err := buildLLM(ctx, cfg, app)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.LLM = client

	app.Router = buildRouter(app)
	return app, nil
}

// Close releases connections opened by Build.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			telemetry.Warn("bootstrap.close_failed", map[string]any{"error": err})
		}
	}
	a.closers = nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repositories", map[string]any{"error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, errors.New("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, region(cfg), cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildRedis returns nil when REDIS_URL is unset. An unreachable server is
// fatal outside dev.
func buildRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	if strings.TrimSpace(cfg.RedisURL) == "" {
		return nil, nil
	}
	rdb, err := redisdb.Connect(ctx, cfg.RedisURL)
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.redis_unavailable", map[string]any{"error": err})
			return nil, nil
		}
		return nil, err
	}
	return rdb, nil
}

func buildPublisher(ctx context.Context, cfg config.Config, rdb *redis.Client) (queue.Publisher, error) {
	var fanout queue.Fanout
	if rdb != nil && strings.TrimSpace(cfg.EventsRedisChannel) != "" {
		fanout = append(fanout, queue.NewRedisPublisher(rdb, cfg.EventsRedisChannel))
	}
	if strings.TrimSpace(cfg.EventsSQSQueueURL) != "" {
		pub, err := queue.NewSQSPublisher(ctx, region(cfg), cfg.EventsSQSQueueURL)
		if err != nil {
			return nil, err
		}
		fanout = append(fanout, pub)
	}
	if len(fanout) == 0 {
		return queue.Nop{}, nil
	}
	return fanout, nil
}

func buildLLM(ctx context.Context, cfg config.Config, app *App) (llm.Client, error) {
	var (
		client llm.Client
		model  string
	)
	switch cfg.LLMProvider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			break
		}
		c, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, c)
		client, model = c, c.Model()
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			break
		}
		c, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		client, model = c, c.Model()
	}

	if client == nil {
		if !cfg.IsDevLike() && cfg.LLMProvider != "none" {
			return nil, fmt.Errorf("LLM_PROVIDER=%s requires an API key", cfg.LLMProvider)
		}
		telemetry.Warn("bootstrap.llm_placeholder", map[string]any{"provider": cfg.LLMProvider})
		return llm.PlaceholderClient{}, nil
	}
	return llm.Instrumented{Client: client, Provider: cfg.LLMProvider, Model: model}, nil
}

func buildRouter(app *App) *gin.Engine {
	cfg := app.Config

	var (
		userRepo users.Repo
		cvRepo   cvs.Repo
		appRepo  applications.Repo
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		cvRepo = &cvs.PGRepo{DB: app.DB}
		appRepo = &applications.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		cvRepo = cvs.NewMemoryRepo()
		appRepo = applications.NewMemoryRepo()
	}

	var cache jobdesc.Cache
	if app.Redis != nil {
		cache = jobdesc.NewRedisCache(app.Redis)
	}

	app.UsersService = users.NewService(userRepo)
	app.CVService = cvs.NewService(app.Store, cvRepo, cfg.ObjectStoreType)
	app.OptimizerService = optimizer.NewService(app.LLM)
	app.CoverLetterService = coverletter.NewService(app.LLM)
	app.JobDescService = jobdesc.NewService(jobdesc.NewExtractor(cfg.FetchTimeout), cache, cfg.JobDescCacheTTL)
	app.ApplicationsService = applications.NewService(appRepo, app.LLM, app.Events)

	healthSvc := health.NewService()
	if app.DB != nil {
		healthSvc.Register("database", app.DB.PingContext)
	}
	if app.Redis != nil {
		healthSvc.Register("redis", func(ctx context.Context) error {
			return app.Redis.Ping(ctx).Err()
		})
	}

	googleAuth := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		app.UsersService,
	)

	return server.NewRouter(server.RouterDeps{
		Config: cfg,
		Health: healthSvc,
		Public: []server.Routes{googleAuth},
		Handlers: []server.Routes{
			users.NewHandler(app.UsersService),
			cvs.NewHandler(app.CVService),
			optimizer.NewHandler(app.OptimizerService, app.CVService),
			coverletter.NewHandler(app.CoverLetterService, app.CVService),
			jobdesc.NewHandler(app.JobDescService),
			applications.NewHandler(app.ApplicationsService),
		},
	})
}

func region(cfg config.Config) string {
	if r := strings.TrimSpace(cfg.AWSRegion); r != "" {
		return r
	}
	return defaultRegion
}
