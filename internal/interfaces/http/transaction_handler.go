package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/violett-api/internal/application/billing"
	"github.com/jhoicas/violett-api/internal/application/dto"
	"github.com/jhoicas/violett-api/internal/application/transaction"
)

// TransactionHandler maneja rentas y ventas (protegido).
type TransactionHandler struct {
	engine  *transaction.Engine
	status  transaction.StatusUpdater
	invoice *billing.PDFUseCase
}

// NewTransactionHandler construye el handler. status puede envolver al engine
// (ej. StrictStatusUpdater); si es nil se usa el engine.
func NewTransactionHandler(engine *transaction.Engine, status transaction.StatusUpdater, invoice *billing.PDFUseCase) *TransactionHandler {
	if status == nil {
		status = engine
	}
	return &TransactionHandler{engine: engine, status: status, invoice: invoice}
}

// Create godoc
// @Summary      Registrar renta o venta
// @Description  Resuelve el cliente por (nombre, teléfono), genera el folio y descuenta una unidad de stock.
// @Tags         transacciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Formulario de transacción"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transacciones [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.engine.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar transacciones
// @Tags         transacciones
// @Security     Bearer
// @Produce      json
// @Param        tipo    query  string  false  "renta | venta"
// @Param        estado  query  string  false  "pendiente | entregado | devuelto | completado"
// @Param        q       query  string  false  "Busca en folio, cliente y producto"
// @Success      200     {array}  dto.TransactionDetailResponse
// @Router       /api/transacciones [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	out, err := h.engine.List(c.UserContext(), dto.TransactionFilter{
		Type:   c.Query("tipo"),
		Status: c.Query("estado"),
		Query:  c.Query("q"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Transacciones recientes
// @Tags         transacciones
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Cantidad"  default(5)
// @Success      200    {array}  dto.TransactionDetailResponse
// @Router       /api/transacciones/recientes [get]
func (h *TransactionHandler) Recent(c *fiber.Ctx) error {
	out, err := h.engine.RecentSales(c.UserContext(), c.QueryInt("limit", transaction.DefaultRecentLimit))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpcomingReturns godoc
// @Summary      Devoluciones próximas
// @Tags         transacciones
// @Security     Bearer
// @Produce      json
// @Param        dias  query  int  false  "Ventana en días desde hoy"  default(7)
// @Success      200   {array}  dto.TransactionDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transacciones/devoluciones [get]
func (h *TransactionHandler) UpcomingReturns(c *fiber.Ctx) error {
	out, err := h.engine.UpcomingReturns(c.UserContext(), c.QueryInt("dias", transaction.DefaultReturnDays))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener transacción con producto y cliente
// @Tags         transacciones
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transacciones/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.engine.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByFolio godoc
// @Summary      Buscar transacción por folio
// @Tags         transacciones
// @Security     Bearer
// @Produce      json
// @Param        folio  path  string  true  "Folio (VIO-XXXXXXXX)"
// @Success      200    {object}  dto.TransactionDetailResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/transacciones/folio/{folio} [get]
func (h *TransactionHandler) GetByFolio(c *fiber.Ctx) error {
	out, err := h.engine.GetByFolio(c.UserContext(), c.Params("folio"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una transacción
// @Tags         transacciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la transacción"
// @Param        body  body  dto.UpdateTransactionStatusRequest  true  "estado"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transacciones/{id} [put]
func (h *TransactionHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateTransactionStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.status.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Invoice godoc
// @Summary      Descargar factura en PDF
// @Tags         transacciones
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la transacción"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transacciones/{id}/factura [get]
func (h *TransactionHandler) Invoice(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}
	pdf, filename, err := h.invoice.DownloadInvoicePDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(pdf)
}
