package dto

import "github.com/jhoicas/violett-api/internal/domain/entity"

// CreateCustomerRequest body para POST /api/clientes.
type CreateCustomerRequest struct {
	Name    string `json:"nombre"`
	Address string `json:"domicilio"`
	Phone   string `json:"telefono"`
}

// UpdateCustomerRequest actualización parcial de un cliente.
type UpdateCustomerRequest struct {
	Name    *string `json:"nombre"`
	Address *string `json:"domicilio"`
	Phone   *string `json:"telefono"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"nombre"`
	Address string `json:"domicilio"`
	Phone   string `json:"telefono"`
}

// NewCustomerResponse convierte la entidad; nil produce nil.
func NewCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{ID: c.ID, Name: c.Name, Address: c.Address, Phone: c.Phone}
}
