package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/violett-api/docs"
	appanalytics "github.com/jhoicas/violett-api/internal/application/analytics"
	"github.com/jhoicas/violett-api/internal/application/auth"
	"github.com/jhoicas/violett-api/internal/application/billing"
	"github.com/jhoicas/violett-api/internal/application/transaction"
	"github.com/jhoicas/violett-api/internal/application/usecase"
	"github.com/jhoicas/violett-api/internal/bootstrap"
	"github.com/jhoicas/violett-api/internal/clock"
	"github.com/jhoicas/violett-api/internal/domain/folio"
	infrapdf "github.com/jhoicas/violett-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/violett-api/internal/interfaces/http"
	"github.com/jhoicas/violett-api/internal/observability/metrics"
	"github.com/jhoicas/violett-api/internal/seed"
	"github.com/jhoicas/violett-api/pkg/config"
	"github.com/jhoicas/violett-api/pkg/jwt"
	"github.com/jhoicas/violett-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	clk, err := clock.NewSystemClock(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	store, closeStore, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir store")
	}
	defer closeStore()
	repos := store.Repos()

	jwtCfg := auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}
	authUC := auth.NewAuthUseCase(repos.Users, jwtCfg)
	if created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("crear usuario administrador")
	} else if created {
		log.Info().Str("username", cfg.Admin.Username).Msg("usuario administrador creado")
	}

	if cfg.App.SeedDev {
		res, err := seed.Run(ctx, store, clk)
		if err != nil {
			log.Fatal().Err(err).Msg("datos de desarrollo")
		}
		log.Info().
			Bool("skipped", res.Skipped).
			Int("productos", res.Products).
			Int("transacciones", res.Transactions).
			Msg("datos de desarrollo")
	}

	// Métricas: registro propio (no el global) para no exponer series ajenas.
	var (
		recorder transaction.Recorder
		observer httpRouter.HTTPObserver
		registry *prometheus.Registry
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m := metrics.New(registry, metrics.Config{ServiceName: cfg.App.Name, Environment: cfg.App.Env})
		recorder, observer = m, m
	}

	engine := transaction.NewEngine(store, clk, folio.NewRandomGenerator(), transaction.Config{
		AllowMissingProduct: cfg.Transactions.AllowMissingProduct,
	}, recorder)
	var statusUpdater transaction.StatusUpdater = engine
	if cfg.Transactions.StrictStatus {
		statusUpdater = transaction.NewStrictStatusUpdater(engine, repos.Transactions)
	}

	// PDF: factura imprimible de la transacción
	invoicePDFUC := billing.NewPDFUseCase(repos, clk, billing.Business{
		Name:    cfg.Business.Name,
		TaxID:   cfg.Business.TaxID,
		Address: cfg.Business.Address,
		Hours:   cfg.Business.Hours,
	}, infrapdf.NewMarotoPDFGenerator())

	app := httpRouter.NewApp(cfg.App.Name, log)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: docs.JSON,
		Path:        "docs",
		Title:       "Violett API",
	}))
	app.Get("/api/openapi.json", func(c *fiber.Ctx) error {
		c.Type("json")
		return c.Send(docs.JSON)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:     usecase.NewProductUseCase(store),
		CustomerUC:    usecase.NewCustomerUseCase(repos.Customers),
		UserUC:        usecase.NewUserUseCase(repos.Users),
		Transactions:  engine,
		StatusUpdater: statusUpdater,
		InvoicePDF:    invoicePDFUC,
		DashboardUC:   appanalytics.NewDashboardUseCase(repos.Products, repos.Transactions, clk),
		AuthUC:        authUC,
		JWT:           jwt.Options{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer, ExpMinutes: cfg.JWT.Expiration},
		Logger:        log,
		Observer:      observer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
