package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una transacción. El motor no restringe transiciones entre ellos.
const (
	StatusPending   = "pendiente"
	StatusDelivered = "entregado"
	StatusReturned  = "devuelto"
	StatusCompleted = "completado"
)

// ValidStatus indica si s pertenece al conjunto de estados conocidos.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusDelivered, StatusReturned, StatusCompleted:
		return true
	}
	return false
}

// Transaction representa una renta o venta de un único vestido.
// Las fechas son fechas civiles (ver CivilDate); ReturnDate sólo aplica a rentas.
type Transaction struct {
	ID           int64
	Folio        string
	ProductID    int64
	CustomerID   int64
	Type         string // renta | venta
	CreatedOn    time.Time
	DeliveryDate time.Time
	ReturnDate   *time.Time
	Deposit      *decimal.Decimal // abono
	Total        decimal.Decimal
	Status       string
}

// Balance devuelve lo pendiente por pagar (total - abono).
func (t *Transaction) Balance() decimal.Decimal {
	if t.Deposit == nil {
		return t.Total
	}
	return t.Total.Sub(*t.Deposit)
}

// IsActiveRental indica una renta que aún no fue devuelta ni completada.
func (t *Transaction) IsActiveRental() bool {
	return t.Type == TypeRental && t.Status != StatusReturned && t.Status != StatusCompleted
}
