// Package bootstrap abre el Entity Store configurado; lo comparten cmd/api y cmd/seed.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/violett-api/internal/domain/repository"
	"github.com/jhoicas/violett-api/internal/infrastructure/memory"
	"github.com/jhoicas/violett-api/internal/infrastructure/postgres"
	"github.com/jhoicas/violett-api/pkg/config"
	"github.com/jhoicas/violett-api/pkg/logger"
)

// OpenStore devuelve el store según STORE_DRIVER y la función que libera sus recursos.
// Con postgres aplica las migraciones si DB_MIGRATE está activo.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.Migrate {
			version, err := postgres.RunMigrations(pool)
			if err != nil {
				pool.Close()
				return nil, nil, err
			}
			log.Info().Uint("version", version).Msg("migraciones aplicadas")
		}
		return postgres.NewStore(pool), pool.Close, nil
	case config.StoreMemory, "":
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
		return memory.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
	}
}
