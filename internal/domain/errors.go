package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// Tipos de error legibles por máquina (campo "code" en las respuestas).
const (
	KindValidation   = "validation"
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindInternal     = "internal"
)

// FieldError describe una violación sobre un campo de entrada.
type FieldError struct {
	Field   string `json:"campo"`
	Message string `json:"mensaje"`
}

// ValidationError agrupa todas las violaciones de una entrada (no se detiene en la primera).
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Validator acumula FieldError y produce un *ValidationError sólo si hubo violaciones.
type Validator struct {
	fields []FieldError
}

// Add registra una violación.
func (v *Validator) Add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

// Check registra la violación cuando ok es falso.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.Add(field, message)
	}
}

// Err devuelve nil si no hubo violaciones.
func (v *Validator) Err(message string) error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Message: message, Fields: v.fields}
}

// NotFoundError indica que el recurso referenciado no existe.
type NotFoundError struct {
	Resource string
	ID       any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %v", e.Resource, e.ID)
}

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound construye un NotFoundError.
func NewNotFound(resource string, id any) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError indica una clave única duplicada (ej. código de producto).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Is permite errors.Is(err, ErrDuplicate) y errors.Is(err, ErrConflict).
func (e *ConflictError) Is(target error) bool {
	return target == ErrDuplicate || target == ErrConflict
}

// NewConflict construye un ConflictError.
func NewConflict(message string) error {
	return &ConflictError{Message: message}
}

// KindOf clasifica un error en la taxonomía pública.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	default:
		return KindInternal
	}
}
