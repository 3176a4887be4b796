// Package transaction contiene el motor de transacciones (rentas y ventas):
// alta con resolución de cliente y descuento de stock, cambio de estado y
// las vistas derivadas (ventas recientes, devoluciones próximas).
package transaction

import (
	"context"

	"github.com/jhoicas/violett-api/internal/application/dto"
)

// Recorder recibe los eventos del motor para métricas. Sólo se invoca tras un commit exitoso.
type Recorder interface {
	TransactionCreated(tipo string)
	CustomerResolved(reused bool)
	StockDecrement(applied bool)
}

// StatusUpdater cambia el estado de una transacción. Lo implementan Engine y StrictStatusUpdater.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id int64, status string) (*dto.TransactionResponse, error)
}

type nopRecorder struct{}

func (nopRecorder) TransactionCreated(string) {}
func (nopRecorder) CustomerResolved(bool)     {}
func (nopRecorder) StockDecrement(bool)       {}

// Config políticas del motor.
type Config struct {
	// AllowMissingProduct: si es true, una transacción contra un producto inexistente
	// se registra igual y sin descuento de stock. Si es false, falla con NotFoundError.
	AllowMissingProduct bool
}
