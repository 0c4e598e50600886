package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// AuditLogRepository define el puerto de persistencia para la pista de auditoría.
type AuditLogRepository interface {
	Create(log *entity.AuditLog) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error)
}
