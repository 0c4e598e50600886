package repository

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// NotificationPreferenceRepository define el puerto para las preferencias de
// notificación: una por (usuario, tipo de evento).
type NotificationPreferenceRepository interface {
	Upsert(pref *entity.NotificationPreference) error
	GetByUserAndEvent(userID, eventType string) (*entity.NotificationPreference, error)
	ListByUser(userID string) ([]*entity.NotificationPreference, error)
	ListByEventType(ctx context.Context, companyID, eventType string) ([]*entity.NotificationPreference, error)
}
