package dto

import "github.com/jhoicas/violett-api/internal/domain"

// ErrorResponse cuerpo de error HTTP. Errors enumera cada campo inválido en errores de validación.
type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errores,omitempty"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
