package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/violett-api/internal/domain/entity"
)

// CreateTransactionRequest formulario de alta de transacción (POST /api/transacciones).
// Incluye los datos del cliente: si (cliente_nombre, cliente_telefono) ya existe se reutiliza.
// Fechas en formato YYYY-MM-DD; fecha_creacion es opcional (por defecto, hoy).
type CreateTransactionRequest struct {
	CustomerName    string           `json:"cliente_nombre"`
	CustomerAddress string           `json:"cliente_domicilio"`
	CustomerPhone   string           `json:"cliente_telefono"`
	ProductID       int64            `json:"id_producto"`
	Type            string           `json:"tipo"`
	CreatedOn       string           `json:"fecha_creacion"`
	DeliveryDate    string           `json:"fecha_entrega"`
	ReturnDate      *string          `json:"fecha_devolucion"`
	Deposit         *decimal.Decimal `json:"abono"`
	Total           *decimal.Decimal `json:"total"`
}

// UpdateTransactionStatusRequest body para PUT /api/transacciones/:id.
type UpdateTransactionStatusRequest struct {
	Status string `json:"estado"`
}

// TransactionFilter filtros opcionales del listado (vacío = sin filtro).
type TransactionFilter struct {
	Type   string
	Status string
	Query  string // busca en folio, nombre del cliente y nombre del producto
}

// TransactionResponse salida de una transacción.
type TransactionResponse struct {
	ID           int64            `json:"id"`
	Folio        string           `json:"folio"`
	ProductID    int64            `json:"id_producto"`
	CustomerID   int64            `json:"id_cliente"`
	Type         string           `json:"tipo"`
	CreatedOn    string           `json:"fecha_creacion"`
	DeliveryDate string           `json:"fecha_entrega"`
	ReturnDate   *string          `json:"fecha_devolucion"`
	Deposit      *decimal.Decimal `json:"abono"`
	Total        decimal.Decimal  `json:"total"`
	Status       string           `json:"estado"`
}

// TransactionDetailResponse transacción enriquecida con producto y cliente.
// Si alguna referencia ya no existe el campo va en null (no es un error).
type TransactionDetailResponse struct {
	TransactionResponse
	Product  *ProductResponse  `json:"producto"`
	Customer *CustomerResponse `json:"cliente"`
}

// NewTransactionResponse convierte la entidad; nil produce nil.
func NewTransactionResponse(t *entity.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{
		ID:           t.ID,
		Folio:        t.Folio,
		ProductID:    t.ProductID,
		CustomerID:   t.CustomerID,
		Type:         t.Type,
		CreatedOn:    entity.FormatDate(t.CreatedOn),
		DeliveryDate: entity.FormatDate(t.DeliveryDate),
		ReturnDate:   entity.FormatDatePtr(t.ReturnDate),
		Deposit:      t.Deposit,
		Total:        t.Total,
		Status:       t.Status,
	}
}
