package di

import (
	"github.com/uptrace/bun"

	"github.com/quickserve/go-sales-cache/cache"
	"github.com/quickserve/go-sales-cache/internal/seed"
	"github.com/quickserve/go-sales-cache/salescache"
	"github.com/quickserve/go-sales-cache/store"
)

// Container wires the cache service, the repositories and the report gateway
// together. It manages singleton instances so every handler shares one cache
// and one set of repositories.
type Container struct {
	db           *bun.DB
	cacheService cache.CacheService
	items        *store.ItemRepository
	sales        *store.TransactionRepository
	reports      *salescache.Reports
	config       cache.Config
}

// NewContainer creates a container over an opened database with the provided
// cache configuration.
func NewContainer(db *bun.DB, config cache.Config) (*Container, error) {
	cacheService, err := cache.NewCacheService(config)
	if err != nil {
		return nil, err
	}

	items := store.NewItemRepository(db)
	sales := store.NewTransactionRepository(db)
	reports := salescache.New(items, sales, seed.New(db), cacheService)

	return &Container{
		db:           db,
		cacheService: cacheService,
		items:        items,
		sales:        sales,
		reports:      reports,
		config:       config,
	}, nil
}

// NewContainerWithDefaults creates a container using the default cache
// configuration (one hour TTL, no early refresh).
func NewContainerWithDefaults(db *bun.DB) (*Container, error) {
	return NewContainer(db, cache.DefaultConfig())
}

// Reports returns the singleton cache-aside report gateway.
func (c *Container) Reports() *salescache.Reports {
	return c.reports
}

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// Items returns the singleton item repository.
func (c *Container) Items() *store.ItemRepository {
	return c.items
}

// Sales returns the singleton transaction repository.
func (c *Container) Sales() *store.TransactionRepository {
	return c.sales
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}
