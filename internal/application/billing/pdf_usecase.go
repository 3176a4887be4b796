package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/violett-api/internal/clock"
	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/internal/domain/entity"
	"github.com/jhoicas/violett-api/internal/domain/repository"
)

// PDFUseCase genera la factura imprimible de una transacción.
type PDFUseCase struct {
	repos     repository.Repos
	clock     clock.Clock
	business  Business
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(repos repository.Repos, clk clock.Clock, business Business, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{repos: repos, clock: clk, business: business, generator: generator}
}

// BuildInvoice arma la vista de impresión. Producto o cliente inexistentes no son error.
func (uc *PDFUseCase) BuildInvoice(ctx context.Context, transactionID int64) (*Invoice, error) {
	// ── 1. Cargar transacción ─────────────────────────────────────────────────
	t, err := uc.repos.Transactions.GetByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("factura: obtener transacción: %w", err)
	}
	if t == nil {
		return nil, domain.NewNotFound("transacción", transactionID)
	}

	// ── 2. Joins (pueden faltar) ──────────────────────────────────────────────
	product, err := uc.repos.Products.GetByID(ctx, t.ProductID)
	if err != nil {
		return nil, fmt.Errorf("factura: obtener producto: %w", err)
	}
	customer, err := uc.repos.Customers.GetByID(ctx, t.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("factura: obtener cliente: %w", err)
	}

	inv := &Invoice{
		Business:     uc.business,
		Folio:        t.Folio,
		IssuedOn:     clock.Today(uc.clock),
		Type:         t.Type,
		Total:        t.Total,
		Deposit:      t.Deposit,
		Balance:      t.Balance(),
		CreatedOn:    t.CreatedOn,
		DeliveryDate: t.DeliveryDate,
		ReturnDate:   t.ReturnDate,
		Line: InvoiceLine{
			Quantity: 1,
			Amount:   t.Total,
		},
	}
	if t.Type != entity.TypeRental {
		inv.ReturnDate = nil
	}
	if customer != nil {
		inv.Customer = InvoiceParty{Name: customer.Name, Phone: customer.Phone, Address: customer.Address}
	}
	if product != nil {
		inv.Line.Description = product.Name
		inv.Line.Code = product.Code
		inv.Line.UnitPrice = product.Price
	}
	return inv, nil
}

// DownloadInvoicePDF genera el PDF y el nombre de archivo sugerido.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, transactionID int64) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.BuildInvoice(ctx, transactionID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv)
	if err != nil {
		return nil, "", fmt.Errorf("factura: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", inv.Folio), nil
}
