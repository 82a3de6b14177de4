package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coachpoint/backend/internal/config"
	s3infra "github.com/coachpoint/backend/internal/infra/s3"
	pgrepo "github.com/coachpoint/backend/internal/repo/postgres"
	redrepo "github.com/coachpoint/backend/internal/repo/redis"
	authsvc "github.com/coachpoint/backend/internal/services/auth"
	contactsvc "github.com/coachpoint/backend/internal/services/contact"
	postssvc "github.com/coachpoint/backend/internal/services/posts"
	ratesvc "github.com/coachpoint/backend/internal/services/rate"
	resourcessvc "github.com/coachpoint/backend/internal/services/resources"
	showcasesvc "github.com/coachpoint/backend/internal/services/showcase"
	statssvc "github.com/coachpoint/backend/internal/services/stats"
	storagesvc "github.com/coachpoint/backend/internal/services/storage"
	userssvc "github.com/coachpoint/backend/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	// Tokens are the one thing the app cannot run without: an empty secret
	// or unknown algorithm aborts startup.
	jwtManager, err := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.Auth.JWTExpiry)
	if err != nil {
		return nil, fmt.Errorf("init jwt manager: %w", err)
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	if pool != nil && cfg.Postgres.Migrate {
		if err := pgrepo.Migrate(cfg.Postgres.DSN, cfg.Postgres.MigrationsPath); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	userRepo := pgrepo.NewUserRepo(pool)
	resourceRepo := pgrepo.NewResourceRepo(pool)
	assignmentRepo := pgrepo.NewAssignmentRepo(pool)
	postRepo := pgrepo.NewPostRepo(pool)
	showcaseRepo := pgrepo.NewShowcaseRepo(pool)
	contactRepo := pgrepo.NewContactRepo(pool)
	statsRepo := pgrepo.NewStatsRepo(pool)

	var counterStore ratesvc.CounterStore
	if cfg.Rate.Store == "memory" {
		counterStore = ratesvc.NewMemoryStore()
	} else {
		counterStore = redrepo.NewRateRepo(redisClient)
	}
	rateLimiter := ratesvc.NewLimiter(counterStore, cfg.Rate.Limit, cfg.Rate.Window)

	s3Storage := storagesvc.NewS3Storage(s3Client, cfg.S3.Bucket)
	storageService := storagesvc.NewService(s3Storage,
		cfg.Storage.LocalPath, cfg.Storage.LocalBaseURL,
		cfg.Storage.AllowedExtensions, cfg.Storage.MaxUploadBytes, log)

	authService := authsvc.NewService(jwtManager, userRepo)
	resourceService := resourcessvc.NewService(resourceRepo, assignmentRepo, storageService)
	postService := postssvc.NewService(postRepo)
	showcaseService := showcasesvc.NewService(showcaseRepo)
	contactService := contactsvc.NewService(contactRepo, log)
	userService := userssvc.NewService(userRepo)
	statsService := statssvc.NewService(statsRepo)

	RegisterRoutes(r, Dependencies{
		AuthService:     authService,
		ContactService:  contactService,
		PostService:     postService,
		RateLimiter:     rateLimiter,
		ResourceService: resourceService,
		ShowcaseService: showcaseService,
		StatsService:    statsService,
		StorageService:  storageService,
		UserService:     userService,
		Logger:          log,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
