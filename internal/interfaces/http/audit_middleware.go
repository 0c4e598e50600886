package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// AuditMiddleware registra las peticiones mutantes (POST/PUT/PATCH/DELETE) de
// usuarios autenticados en la pista de auditoría. La escritura ocurre después
// de la respuesta; un fallo solo se loggea.
func AuditMiddleware(repo repository.AuditLogRepository, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	auditLog := log.Component("audit")
	return func(c *fiber.Ctx) error {
		err := c.Next()

		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		default:
			return err
		}
		userID := GetUserID(c)
		if userID == "" {
			return err
		}

		entry := &entity.AuditLog{
			ID:        uuid.New().String(),
			CompanyID: GetCompanyID(c),
			UserID:    userID,
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    c.Response().StatusCode(),
			CreatedAt: time.Now(),
		}
		if createErr := repo.Create(entry); createErr != nil {
			auditLog.Error().Err(createErr).Str("path", entry.Path).Msg("fallo al registrar auditoría")
		}
		return err
	}
}
