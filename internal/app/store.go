package app

import (
	"context"

	"github.com/adanyl0v/service-catalog/internal/config"
	"github.com/adanyl0v/service-catalog/internal/delivery/http/v1"
	"github.com/adanyl0v/service-catalog/internal/services"
	"github.com/adanyl0v/service-catalog/internal/storage/memory"
	"github.com/adanyl0v/service-catalog/internal/storage/postgres"
)

type repositories struct {
	services services.ServiceRepository
	tasks    services.TaskRepository
	health   v1.Pinger
	close    func()
}

var globalRepositories repositories

// MustOpenStore opens the store selected by STORE_DRIVER. The
// application must not run without its store, so failures panic.
func MustOpenStore() {
	cfg := config.Global()
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		globalRepositories = newMemoryRepositories()
		globalLogger.Warn().Msg("using in-memory store, data is lost on restart")
	default:
		mustConnectPostgres(cfg.Postgres)
	}
}

func newMemoryRepositories() repositories {
	store := memory.New()
	return repositories{
		services: store.Services(),
		tasks:    store.Tasks(),
		health:   store,
		close:    func() {},
	}
}

func mustConnectPostgres(cfg config.PostgresConfig) {
	store := postgres.New(globalLogger, cfg)

	pool, err := store.EnsureConnected(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	globalRepositories = repositories{
		services: services.NewServiceRepository(globalLogger, pool),
		tasks:    services.NewTaskRepository(globalLogger, pool),
		health:   store,
		close:    store.Close,
	}
}

func CloseStore() {
	if globalRepositories.close != nil {
		globalRepositories.close()
	}
}
