package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/violett-api/internal/application/analytics"
	"github.com/jhoicas/violett-api/internal/application/auth"
	"github.com/jhoicas/violett-api/internal/application/billing"
	"github.com/jhoicas/violett-api/internal/application/transaction"
	"github.com/jhoicas/violett-api/internal/application/usecase"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/pkg/jwt"
	"github.com/jhoicas/violett-api/pkg/logger"
)

// NewApp crea la app Fiber con el ErrorHandler y el recover de la API.
func NewApp(name string, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: NewErrorHandler(log),
	})
	app.Use(recover.New())
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	CustomerUC    *usecase.CustomerUseCase
	UserUC        *usecase.UserUseCase
	Transactions  *transaction.Engine
	StatusUpdater transaction.StatusUpdater // nil: el engine (cambios de estado permisivos)
	InvoicePDF    *billing.PDFUseCase
	DashboardUC   *appanalytics.DashboardUseCase
	AuthUC        *auth.AuthUseCase
	JWT           jwt.Options
	Logger        *logger.Logger
	Observer      HTTPObserver // opcional
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", RequestLogger(log, deps.Observer))

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWT))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Catálogo
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/bajo-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Clientes
	customers := protected.Group("/clientes")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Transacciones: las rutas fijas van antes de /:id
	txs := protected.Group("/transacciones")
	txHandler := NewTransactionHandler(deps.Transactions, deps.StatusUpdater, deps.InvoicePDF)
	txs.Get("/", txHandler.List)
	txs.Post("/", txHandler.Create)
	txs.Get("/recientes", txHandler.Recent)
	txs.Get("/devoluciones", txHandler.UpcomingReturns)
	txs.Get("/folio/:folio", txHandler.GetByFolio)
	txs.Get("/:id", txHandler.GetByID)
	txs.Put("/:id", txHandler.UpdateStatus)
	txs.Get("/:id/factura", txHandler.Invoice)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)
}
