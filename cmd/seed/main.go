// Command seed carga los datos de desarrollo en el store configurado (STORE_DRIVER=postgres).
package main

import (
	"context"
	"time"
	_ "time/tzdata"

	"github.com/jhoicas/violett-api/internal/application/auth"
	"github.com/jhoicas/violett-api/internal/bootstrap"
	"github.com/jhoicas/violett-api/internal/clock"
	"github.com/jhoicas/violett-api/internal/seed"
	"github.com/jhoicas/violett-api/pkg/config"
	"github.com/jhoicas/violett-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	if cfg.Store.Driver != config.StorePostgres {
		log.Fatal().Str("store", cfg.Store.Driver).Msg("seed requiere STORE_DRIVER=postgres; en memoria use SEED_DEV_DATA=true")
	}

	clk, err := clock.NewSystemClock(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir store")
	}
	defer closeStore()

	authUC := auth.NewAuthUseCase(store.Repos().Users, auth.JWTConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})
	if _, err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("crear usuario administrador")
	}

	res, err := seed.Run(ctx, store, clk)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar datos de desarrollo")
	}
	if res.Skipped {
		log.Info().Msg("el catálogo ya tiene productos; no se cargó nada")
		return
	}
	log.Info().
		Int("productos", res.Products).
		Int("clientes", res.Customers).
		Int("transacciones", res.Transactions).
		Msg("datos de desarrollo cargados")
}
