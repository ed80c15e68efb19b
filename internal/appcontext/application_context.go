package appcontext

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/config"
	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/event"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/redis_repo"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const redisKeyPrefix = "bookstore"

type ApplicationContext struct {
	Cf             *config.Config
	Logger         zerolog.Logger
	DbConn         *pgxpool.Pool
	DbDao          db.IStore
	Gorm           *gorm.DB
	CatalogRepo    db.ICatalogRepository
	RedisClient    *redis.Client
	RedisCache     *redis_repo.RedisCache
	SubjectCache   redis_repo.ISubjectCache
	LoginLimiter   ratelimit.ILimiter
	Publisher      event.IOrderEventPublisher
	SessionService service.ISessionService
	MemberService  service.IMemberService
	CatalogService service.ICatalogService
	CartService    service.ICartService
	OrderService   service.IOrderService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf:     cf,
		Logger: NewLogger(cf.Env, cf.LogLevel),
	}
	app.Logger.Info().
		Str("env", cf.Env).
		Str("server_port", cf.ServerPort).
		Str("db_host", cf.DbHost).
		Str("db_name", cf.DbName).
		Str("redis_addr", cf.RedisAddr).
		Strs("kafka_brokers", cf.Brokers()).
		Dur("operation_timeout", cf.OperationTimeout).
		Msg("loaded config")

	if err := app.Init(); err != nil {
		// 已建立的連線要釋放
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = app.Shutdown(shutdownCtx)
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"database connection", app.setUpdbConn},
		{"db init", app.dbInit},
		{"database DAO", app.setUpdbDao},
		{"catalog repository", app.setUpCatalogRepo},
		{"redis", app.setUpRedis},
		{"event publisher", app.setUpPublisher},
		{"session service", app.setUpSessionService},
		{"member service", app.setUpMemberService},
		{"catalog service", app.setUpCatalogService},
		{"cart service", app.setUpCartService},
		{"order service", app.setUpOrderService},
	}

	for _, step := range steps {
		app.Logger.Info().Msgf("Start setup %s", step.name)
		if err := step.fn(); err != nil {
			return fmt.Errorf("setup %s: %w", step.name, err)
		}
		app.Logger.Info().Msgf("Finish setup %s", step.name)
	}
	return nil
}

func (app *ApplicationContext) connConfig() db.ConnConfig {
	return db.ConnConfig{
		User:     app.Cf.DbUser,
		Password: app.Cf.DbPas,
		Host:     app.Cf.DbHost,
		Port:     app.Cf.DbPort,
		DbName:   app.Cf.DbName,
	}
}

func (app *ApplicationContext) operationTimeout() time.Duration {
	if app.Cf.OperationTimeout > 0 {
		return app.Cf.OperationTimeout
	}
	return constants.DefaultOperationTimeout
}

func (app *ApplicationContext) setUpdbConn() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.NewPool(ctx, app.connConfig().DSN())
	if err != nil {
		return err
	}
	app.DbConn = pool
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return nil
}

// dbInit AUTO_MIGRATE 開啟時先跑 migration
func (app *ApplicationContext) dbInit() error {
	if !app.Cf.AutoMigrate {
		return nil
	}
	return db.RunMigration(app.connConfig().MigrateURL(), db.MigrateUp)
}

func (app *ApplicationContext) setUpdbDao() error {
	app.DbDao = db.NewStore(app.DbConn)
	return nil
}

func (app *ApplicationContext) setUpCatalogRepo() error {
	gormDB, err := db.OpenGorm(app.DbConn)
	if err != nil {
		return err
	}
	app.Gorm = gormDB
	app.CatalogRepo = db.NewCatalogRepository(gormDB)
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	app.RedisClient = redis_repo.GetRedisClient(app.Cf.RedisAddr,
		redis_repo.WithPassword(app.Cf.RedisPassword),
		redis_repo.WithDB(app.Cf.RedisDB),
	)
	app.RedisCache = redis_repo.NewRedisCache(app.RedisClient, redisKeyPrefix)
	app.SubjectCache = redis_repo.NewSubjectCache(app.RedisCache)

	limiterCf := ratelimit.GetDefaultLimiterConfig()
	if app.Cf.LoginRateCapacity > 0 {
		limiterCf.Capacity = app.Cf.LoginRateCapacity
	}
	if app.Cf.LoginRatePerSec > 0 {
		limiterCf.RatePS = app.Cf.LoginRatePerSec
	}
	app.LoginLimiter = ratelimit.NewRsTokenBucket(app.RedisClient, redisKeyPrefix+":ratelimit", &limiterCf)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return app.RedisCache.Ping(ctx)
}

// setUpPublisher 未設定 KAFKA_BROKERS 時不發送事件
func (app *ApplicationContext) setUpPublisher() error {
	brokers := app.Cf.Brokers()
	if len(brokers) == 0 {
		app.Logger.Warn().Msg("KAFKA_BROKERS is empty, order events are disabled")
		app.Publisher = event.NoopPublisher{}
		return nil
	}
	app.Publisher = event.NewKafkaOrderPublisher(brokers, app.Cf.KafkaOrderTopic)
	return nil
}

func (app *ApplicationContext) setUpSessionService() error {
	ttl := app.Cf.SessionTTL
	if ttl <= 0 {
		ttl = constants.DefaultSessionTTL
	}
	app.SessionService = service.NewSessionService(redis_repo.NewSessionRepo(app.RedisCache), ttl, app.operationTimeout())
	return nil
}

func (app *ApplicationContext) setUpMemberService() error {
	app.MemberService = service.NewMemberService(app.DbDao, app.operationTimeout(), bcrypt.DefaultCost)
	return nil
}

func (app *ApplicationContext) setUpCatalogService() error {
	ttl := app.Cf.SubjectCacheTTL
	if ttl <= 0 {
		ttl = constants.DefaultSubjectCacheTTL
	}
	app.CatalogService = service.NewCatalogService(app.DbDao, app.CatalogRepo, app.SubjectCache, ttl, app.operationTimeout())
	return nil
}

func (app *ApplicationContext) setUpCartService() error {
	app.CartService = service.NewCartService(app.DbDao, app.operationTimeout())
	return nil
}

func (app *ApplicationContext) setUpOrderService() error {
	app.OrderService = service.NewOrderService(app.DbDao, app.Publisher, app.operationTimeout())
	return nil
}

// SeedCatalog 讀取 yaml 書目並寫入資料庫, path 為空時使用 SEED_FILE
func (app *ApplicationContext) SeedCatalog(ctx context.Context, path string) (int, error) {
	if path == "" {
		path = app.Cf.SeedFile
	}
	if path == "" {
		return 0, errors.New("no seed file configured")
	}

	seed, err := config.LoadCatalogSeed(path)
	if err != nil {
		return 0, err
	}
	n, err := service.SeedCatalog(ctx, app.DbDao, app.SubjectCache, seed)
	if err != nil {
		return 0, err
	}
	app.Logger.Info().Int("books", n).Str("file", path).Msg("catalog seeded")
	return n, nil
}

// Shutdown 依序關閉 kafka writer, redis, db
func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	app.Logger.Info().Msg("Start application shutdown")

	done := make(chan error, 1)
	go func() {
		var errs []error

		if app.Publisher != nil {
			app.Logger.Info().Msg("Closing event publisher...")
			if err := app.Publisher.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close publisher: %w", err))
			}
		}

		if app.RedisClient != nil {
			app.Logger.Info().Msg("Closing redis connection...")
			if err := redis_repo.CloseAll(); err != nil {
				errs = append(errs, fmt.Errorf("close redis: %w", err))
			}
		}

		if app.DbConn != nil {
			app.Logger.Info().Msg("Closing database connection...")
			app.DbConn.Close()
		}

		done <- errors.Join(errs...)
	}()

	select {
	case err := <-done:
		app.Logger.Info().Msg("Application shutdown complete")
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %w", ctx.Err())
	}
}
