package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// NotificationRuleHandler administración de reglas del motor (solo admin).
type NotificationRuleHandler struct {
	uc *usecase.NotificationRuleUseCase
}

// NewNotificationRuleHandler construye el handler.
func NewNotificationRuleHandler(uc *usecase.NotificationRuleUseCase) *NotificationRuleHandler {
	return &NotificationRuleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear regla de notificación
// @Description  La condición se valida al crear; una condición malformada devuelve 400.
// @Tags         notification-rules
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRuleRequest  true  "Regla"
// @Success      201   {object}  dto.RuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notification-rules [post]
func (h *NotificationRuleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene una regla por ID.
func (h *NotificationRuleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out.CompanyID != GetCompanyID(c) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "regla no encontrada"})
	}
	return c.JSON(out)
}

// Update actualiza una regla (revalida la condición si cambia).
func (h *NotificationRuleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista reglas de la empresa.
func (h *NotificationRuleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.List(GetCompanyID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una regla.
func (h *NotificationRuleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
