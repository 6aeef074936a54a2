package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsvc "pdfsearch/internal/app"
	"pdfsearch/internal/cache"
	"pdfsearch/internal/config"
	"pdfsearch/internal/model"
	"pdfsearch/internal/pkg/pdfextract"
	"pdfsearch/internal/platform/logger"
	mysqlClient "pdfsearch/internal/platform/mysql"
	postgresClient "pdfsearch/internal/platform/postgres"
	rabbitmqClient "pdfsearch/internal/platform/rabbitmq"
	redisClient "pdfsearch/internal/platform/redis"
	sqliteClient "pdfsearch/internal/platform/sqlite"
	"pdfsearch/internal/platform/storage"
	"pdfsearch/internal/repository"
	"pdfsearch/internal/worker"
)

// Options tune what New starts besides the core services.
type Options struct {
	// RunWorkers starts the orphan cleanup consumer when cleanup is enabled.
	RunWorkers bool
}

type App struct {
	Config       *config.Config
	Logger       *slog.Logger
	DB           *gorm.DB
	Redis        *redis.Client
	MQConn       *amqp.Connection
	Files        *storage.FileStorage
	OrphanWorker *worker.OrphanCleanupWorker

	Auth      *appsvc.AuthService
	Documents *appsvc.DocumentService
	Search    *appsvc.SearchService

	StartedAt time.Time
}

func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	return NewWithConfig(ctx, cfg, opts)
}

// NewWithConfig wires every dependency named by cfg. Redis and RabbitMQ are
// skipped when their address is empty.
func NewWithConfig(ctx context.Context, cfg *config.Config, opts Options) (_ *App, err error) {
	a := &App{
		Config:    cfg,
		Logger:    logger.New(cfg.App.LogLevel, cfg.App.LogFormat),
		StartedAt: time.Now(),
	}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	a.DB, err = openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := a.DB.AutoMigrate(&model.User{}, &model.Document{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	var pageCache appsvc.PageCache
	if cfg.Redis.Addr != "" {
		a.Redis, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		pageCache = cache.NewPageCache(a.Redis, cfg.PageCacheTTL())
	}

	a.Files = storage.New(cfg.Storage.BaseURL)

	var orphans appsvc.OrphanPublisher
	if cfg.RabbitMQ.URL != "" {
		a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.App.Name)
		if err != nil {
			return nil, err
		}
		if cfg.Storage.CleanupOrphans {
			orphans = rabbitmqClient.NewOrphanPublisher(a.MQConn, cfg.RabbitMQ.OrphanCleanupQueue)
			if opts.RunWorkers {
				a.OrphanWorker = worker.NewOrphanCleanupWorker(a.MQConn, a.Files, cfg.RabbitMQ.OrphanCleanupQueue, a.Logger)
				if err := a.OrphanWorker.Start(ctx); err != nil {
					return nil, fmt.Errorf("start orphan cleanup worker failed: %w", err)
				}
			}
		}
	} else if cfg.Storage.CleanupOrphans {
		a.Logger.Warn("orphan cleanup enabled without rabbitmq url; orphans will be kept")
	}

	docRepo := repository.NewDocumentRepository(a.DB)
	userRepo := repository.NewUserRepository(a.DB)

	a.Auth = appsvc.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.JWTExpiration())
	a.Documents = appsvc.NewDocumentService(
		docRepo,
		a.Files,
		pdfextract.New(nil),
		appsvc.DocumentServiceConfig{
			MaxUploadBytes: cfg.MaxUploadBytes(),
			Orphans:        orphans,
		},
		a.Logger,
	)
	a.Search = appsvc.NewSearchService(docRepo, pageCache, a.Logger)

	a.Logger.Info("application wired",
		"db_driver", cfg.Database.Driver,
		"page_cache", pageCache != nil,
		"orphan_cleanup", orphans != nil,
	)
	return a, nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverMySQL:
		return mysqlClient.New(ctx, cfg.MySQLDSN())
	case config.DriverPostgres:
		return postgresClient.New(ctx, cfg.PostgresDSN())
	case config.DriverSQLite:
		return sqliteClient.New(ctx, cfg.SQLite.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.OrphanWorker != nil {
		a.OrphanWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
