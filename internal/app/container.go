package app

import (
	"context"
	"log"
	"time"

	"github.com/akinankarali/upwork-job-api/internal/config"
	"github.com/akinankarali/upwork-job-api/internal/database"
	"github.com/akinankarali/upwork-job-api/internal/database/migration"
	dbpostgres "github.com/akinankarali/upwork-job-api/internal/database/postgres"
	"github.com/akinankarali/upwork-job-api/internal/infrastructure/cache"
	"github.com/akinankarali/upwork-job-api/internal/infrastructure/persistence/postgres"
	"github.com/akinankarali/upwork-job-api/internal/scraper"
	"github.com/akinankarali/upwork-job-api/internal/usecase"
	"github.com/akinankarali/upwork-job-api/internal/ws"
)

// Container owns every long-lived collaborator of the search service.
// Cache, DB and Runs are optional and stay nil when not configured.
type Container struct {
	Config    config.Config
	Logger    *log.Logger
	Navigator scraper.Navigator
	Cache     *cache.Redis
	DB        database.DB
	Runs      *postgres.SearchRunRepository
	Hub       *ws.Hub
	Search    *usecase.SearchService
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		Navigator: NewNavigator(cfg.Browser, logger),
		Cache:     cache.NewRedis(cfg.Redis, logger),
		Hub:       ws.NewHub(logger),
	}

	if cfg.Database.Enabled() {
		db, err := connectAndMigrate(cfg.Database)
		if err != nil {
			logger.Printf("[Runs] database unavailable, run records disabled err=%v", err)
		} else {
			c.DB = db
			c.Runs = postgres.NewSearchRunRepository(db)
		}
	}

	deps := usecase.SearchDeps{
		Navigator: c.Navigator,
		CacheTTL:  c.Cache.TTL(),
		Notifier:  ws.NewNotifier(c.Hub),
		Snapshots: scraper.NewSnapshotWriter(cfg.App.SnapshotDir),
		Logger:    logger,
	}
	if c.Cache.Enabled() {
		deps.Cache = c.Cache
	}
	if c.Runs != nil {
		deps.Runs = c.Runs
	}
	c.Search = usecase.NewSearchService(deps)

	return c, nil
}

// NewNavigator picks the browser backend named by cfg.Mode.
func NewNavigator(cfg config.BrowserConfig, logger *log.Logger) scraper.Navigator {
	if cfg.Mode == config.BrowserModeStatic {
		return scraper.NewStaticNavigator(cfg.Timeout, cfg.UserAgent, logger)
	}
	return scraper.NewChromeNavigator(scraper.ChromeOptions{
		Timeout:   cfg.Timeout,
		Headless:  cfg.Headless,
		UserAgent: cfg.UserAgent,
	}, logger)
}

func connectAndMigrate(cfg config.DatabaseConfig) (database.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	_ = c.Cache.Close()
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
