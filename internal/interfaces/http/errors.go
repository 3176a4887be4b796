package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/violett-api/internal/application/dto"
	"github.com/jhoicas/violett-api/internal/domain"
	"github.com/jhoicas/violett-api/pkg/logger"
)

var kindStatus = map[string]int{
	domain.KindValidation:   fiber.StatusBadRequest,
	domain.KindNotFound:     fiber.StatusNotFound,
	domain.KindConflict:     fiber.StatusConflict,
	domain.KindUnauthorized: fiber.StatusUnauthorized,
	domain.KindForbidden:    fiber.StatusForbidden,
}

// respondError escribe la respuesta para un error de dominio. Los errores internos
// se devuelven a Fiber para que los registre NewErrorHandler.
func respondError(c *fiber.Ctx, err error) error {
	kind := domain.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		return err
	}
	body := dto.ErrorResponse{Code: strings.ToUpper(kind), Message: err.Error()}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		body.Message = ve.Message
		body.Errors = ve.Fields
	}
	if kind == domain.KindUnauthorized {
		body.Message = "credenciales inválidas"
	}
	return c.Status(status).JSON(body)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// paramID lee el parámetro :id como entero positivo.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{
			Message: "id inválido",
			Fields:  []domain.FieldError{{Field: "id", Message: "debe ser un entero positivo"}},
		}
	}
	return id, nil
}

// NewErrorHandler responde los errores que llegan a Fiber. Los internos se registran
// con el request id y el cliente sólo recibe un mensaje genérico.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: fiberErrorCode(fe.Code), Message: fe.Message})
		}
		log.Error().
			Err(err).
			Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
	}
}

func fiberErrorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	}
	if status >= fiber.StatusInternalServerError {
		return "INTERNAL"
	}
	return "ERROR"
}
