package container

import (
	"context"
	"fmt"
	"time"

	"storefront-backend/internal/config"
	infraCache "storefront-backend/internal/infrastructure/cache"
	"storefront-backend/internal/infrastructure/database"
	"storefront-backend/pkg/cache"
	"storefront-backend/pkg/jwt"
	"storefront-backend/pkg/logger"

	catalogHandler "storefront-backend/internal/domains/catalog/handler"
	catalogRepo "storefront-backend/internal/domains/catalog/repository"
	catalogService "storefront-backend/internal/domains/catalog/service"
	customerHandler "storefront-backend/internal/domains/customer/handler"
	customerRepo "storefront-backend/internal/domains/customer/repository"
	customerService "storefront-backend/internal/domains/customer/service"
	exportHandler "storefront-backend/internal/domains/export/handler"
	exportRepo "storefront-backend/internal/domains/export/repository"
	exportService "storefront-backend/internal/domains/export/service"
	rewardsHandler "storefront-backend/internal/domains/rewards/handler"
	rewardsRepo "storefront-backend/internal/domains/rewards/repository"
	rewardsService "storefront-backend/internal/domains/rewards/service"
	userHandler "storefront-backend/internal/domains/user/handler"
	userRepo "storefront-backend/internal/domains/user/repository"
	userService "storefront-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is
// a singleton built once at startup, in dependency order: config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	LedgerRepo    rewardsRepo.LedgerRepository
	DiscountRepo  rewardsRepo.DiscountRepository
	CatalogReader rewardsRepo.CatalogReader
	ProductRepo   catalogRepo.ProductRepository
	VendorRepo    catalogRepo.VendorRepository
	CustomerRepo  customerRepo.CustomerRepository
	UserRepo      userRepo.UserRepository
	SnapshotRepo  exportRepo.SnapshotRepository

	// Services
	RewardsService  rewardsService.ServiceInterface
	CatalogService  catalogService.ServiceInterface
	CustomerService customerService.ServiceInterface
	UserService     userService.ServiceInterface
	ExportService   exportService.ServiceInterface

	// Handlers
	StorefrontHandler *rewardsHandler.StorefrontHandler
	AdminHandler      *rewardsHandler.AdminHandler
	CatalogHandler    *catalogHandler.CatalogHandler
	CustomerHandler   *customerHandler.CustomerHandler
	UserHandler       *userHandler.UserHandler
	ExportHandler     *exportHandler.ExportHandler
}

// NewContainer builds the full dependency graph
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	logger.Info("configuration loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check: %w", err)
	}
	c.DB = db
	logger.Info("database connected", nil)

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	// Redis is an accelerator here, not a dependency; start without
	// it if it is down.
	if err := redisCache.Connect(context.Background()); err != nil {
		logger.Warn("redis connection failed, continuing without cache", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		logger.Info("redis connected", nil)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.LedgerRepo = rewardsRepo.NewPostgresLedgerRepository(pool)
	c.DiscountRepo = rewardsRepo.NewPostgresDiscountRepository(pool)
	c.CatalogReader = rewardsRepo.NewPostgresCatalogReader(pool)
	c.ProductRepo = catalogRepo.NewPostgresProductRepository(pool)
	c.VendorRepo = catalogRepo.NewPostgresVendorRepository(pool)
	c.CustomerRepo = customerRepo.NewPostgresCustomerRepository(pool)
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.SnapshotRepo = exportRepo.NewPostgresSnapshotRepository(pool)
}

func (c *Container) initServices() {
	c.RewardsService = rewardsService.NewRewardsService(
		c.LedgerRepo,
		c.DiscountRepo,
		c.CatalogReader,
		c.Cache,
	)
	c.CatalogService = catalogService.NewCatalogService(c.ProductRepo, c.VendorRepo)
	c.CustomerService = customerService.NewCustomerService(c.CustomerRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.CustomerService, c.JWTManager)
	c.ExportService = exportService.NewExportService(c.SnapshotRepo, c.Config.Export.Path)
}

func (c *Container) initHandlers() {
	c.StorefrontHandler = rewardsHandler.NewStorefrontHandler(c.RewardsService)
	c.AdminHandler = rewardsHandler.NewAdminHandler(c.RewardsService)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
	c.CustomerHandler = customerHandler.NewCustomerHandler(c.CustomerService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.ExportHandler = exportHandler.NewExportHandler(c.ExportService)
}

// Cleanup releases infrastructure resources during shutdown
func (c *Container) Cleanup() {
	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Warn("close redis", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
