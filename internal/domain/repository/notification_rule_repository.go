package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// NotificationRuleRepository define el puerto de persistencia para las reglas
// del motor de notificaciones. ListActiveByEventType lleva context porque el
// motor propaga cancelación/timeout del caller que disparó el evento.
type NotificationRuleRepository interface {
	Create(rule *entity.NotificationRule) error
	GetByID(id string) (*entity.NotificationRule, error)
	Update(rule *entity.NotificationRule) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.NotificationRule, error)
	ListActiveByEventType(ctx context.Context, companyID, eventType string) ([]*entity.NotificationRule, error)
	Delete(id string) error
}
