package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Business datos del negocio impresos en el encabezado de la factura.
type Business struct {
	Name    string
	TaxID   string
	Address []string
	Hours   []string
}

// InvoiceParty cliente de la factura. Campos vacíos se imprimen como "N/A".
type InvoiceParty struct {
	Name    string
	Phone   string
	Address string
}

// InvoiceLine única línea de detalle (una transacción = un vestido).
type InvoiceLine struct {
	Quantity    int
	Description string
	Code        string
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// Invoice vista de impresión de una transacción.
type Invoice struct {
	Business     Business
	Folio        string
	IssuedOn     time.Time // fecha de impresión
	Type         string    // renta | venta
	Customer     InvoiceParty
	Line         InvoiceLine
	Total        decimal.Decimal
	Deposit      *decimal.Decimal // nil: no se imprimen abono ni pendiente
	Balance      decimal.Decimal
	CreatedOn    time.Time
	DeliveryDate time.Time
	ReturnDate   *time.Time
}

// InvoicePDFGenerator puerto de salida para renderizar la factura (implementado en infrastructure/pdf).
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, inv *Invoice) ([]byte, error)
}
