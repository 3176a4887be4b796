package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/violett-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code        string          `json:"codigo"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Type        string          `json:"tipo"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
}

// UpdateProductRequest actualización parcial; sólo se aplican los campos presentes.
type UpdateProductRequest struct {
	Code        *string          `json:"codigo"`
	Name        *string          `json:"nombre"`
	Description *string          `json:"descripcion"`
	Type        *string          `json:"tipo"`
	Price       *decimal.Decimal `json:"precio"`
	Stock       *int             `json:"stock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Code        string          `json:"codigo"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Type        string          `json:"tipo"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
}

// NewProductResponse convierte la entidad; nil produce nil.
func NewProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Type:        p.Type,
		Price:       p.Price,
		Stock:       p.Stock,
	}
}
