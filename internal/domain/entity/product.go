package entity

import "github.com/shopspring/decimal"

// Tipos de producto y de transacción (comparten vocabulario).
const (
	TypeRental = "renta"
	TypeSale   = "venta"
)

// ValidType indica si t es "renta" o "venta".
func ValidType(t string) bool {
	return t == TypeRental || t == TypeSale
}

// Product representa un vestido del catálogo, disponible para renta o venta.
// Code es único en todo el catálogo; Stock lo modifica el catálogo y el motor de transacciones.
type Product struct {
	ID          int64
	Code        string
	Name        string
	Description string
	Type        string // renta | venta
	Price       decimal.Decimal
	Stock       int
}
