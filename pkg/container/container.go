package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookreview-backend/internal/config"
	"bookreview-backend/internal/infrastructure/ai"
	infraCache "bookreview-backend/internal/infrastructure/cache"
	"bookreview-backend/internal/infrastructure/database"
	"bookreview-backend/pkg/cache"
	"bookreview-backend/pkg/jwt"
	"bookreview-backend/pkg/logger"

	bookHandler "bookreview-backend/internal/domains/book/handler"
	bookRepo "bookreview-backend/internal/domains/book/repository"
	bookService "bookreview-backend/internal/domains/book/service"

	reviewHandler "bookreview-backend/internal/domains/review/handler"
	reviewRepo "bookreview-backend/internal/domains/review/repository"
	reviewService "bookreview-backend/internal/domains/review/service"

	userHandler "bookreview-backend/internal/domains/user/handler"
	userRepo "bookreview-backend/internal/domains/user/repository"
	userService "bookreview-backend/internal/domains/user/service"

	recHandler "bookreview-backend/internal/domains/recommendation/handler"
	recService "bookreview-backend/internal/domains/recommendation/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependency graph của application.
// Thứ tự init: Config → Infrastructure → Repositories → Services → Handlers.
type Container struct {
	// Infrastructure - singleton, shared across domains
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Summarizer *ai.Summarizer

	// Repositories
	BookRepo   bookRepo.BookRepository
	ReviewRepo reviewRepo.ReviewRepository
	UserRepo   userRepo.UserRepository

	// Services
	BookService   bookService.ServiceInterface
	ReviewService reviewService.ServiceInterface
	UserService   userService.ServiceInterface
	RecService    recService.ServiceInterface

	// Handlers
	BookHandler   *bookHandler.BookHandler
	ReviewHandler *reviewHandler.ReviewHandler
	UserHandler   *userHandler.UserHandler
	RecHandler    *recHandler.RecommendationHandler
}

// NewContainer tạo và initialize toàn bộ dependency graph
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	// CACHE_ENABLED=false → in-memory cache, không cần Redis.
	// Redis connection failure không critical: in-memory fallback,
	// mọi call site đều best-effort.
	if cfg.Redis.Enabled {
		redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Connect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("[REDIS] connection failed (non-critical), falling back to in-memory cache")
			c.Cache = infraCache.NewMemoryCache()
		} else {
			c.Cache = redisCache
		}
	} else {
		log.Info().Msg("[REDIS] cache disabled, using in-memory cache")
		c.Cache = infraCache.NewMemoryCache()
	}

	// ========================================
	// STEP 4: AUTH + AI
	// ========================================
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	c.Summarizer = ai.NewSummarizer(ai.NewOpenRouterClient(cfg.AI))

	// ========================================
	// STEP 5: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresBookRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
}

func (c *Container) initServices() {
	c.BookService = bookService.NewBookService(c.BookRepo, c.Cache, c.Summarizer)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.Cache, c.Summarizer)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.RecService = recService.NewRecommendationService(c.BookRepo, c.UserRepo, c.Cache, c.Summarizer)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.RecHandler = recHandler.NewRecommendationHandler(c.RecService)
}

// Cleanup giải phóng infrastructure resources khi shutdown
func (c *Container) Cleanup() {
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("[REDIS] close failed")
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("[DATABASE] close failed")
		}
	}

	log.Info().Msg("Container cleaned up")
}
