package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// NotificationHandler buzón in-app y preferencias del usuario autenticado.
type NotificationHandler struct {
	inbox *usecase.NotificationInboxUseCase
	prefs *usecase.NotificationPreferenceUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(inbox *usecase.NotificationInboxUseCase, prefs *usecase.NotificationPreferenceUseCase) *NotificationHandler {
	return &NotificationHandler{inbox: inbox, prefs: prefs}
}

// List godoc
// @Summary      Listar notificaciones del usuario
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        unread  query  bool  false  "Solo no leídas"
// @Success      200     {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	unreadOnly := c.QueryBool("unread", false)
	out, err := h.inbox.List(GetUserID(c), page, unreadOnly)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkRead marca una notificación como leída.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.inbox.MarkRead(GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	if err := h.inbox.MarkAllRead(GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UpsertPreference godoc
// @Summary      Configurar preferencia de notificación
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertPreferenceRequest  true  "Canales y umbral"
// @Success      200   {object}  dto.PreferenceResponse
// @Router       /api/notifications/preferences [put]
func (h *NotificationHandler) UpsertPreference(c *fiber.Ctx) error {
	var in dto.UpsertPreferenceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.prefs.Upsert(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListPreferences lista las preferencias del usuario.
func (h *NotificationHandler) ListPreferences(c *fiber.Ctx) error {
	out, err := h.prefs.ListByUser(GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
