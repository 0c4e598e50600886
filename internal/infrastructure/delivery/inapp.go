package delivery

import (
	"context"
	"time"

	"github.com/google/uuid"

	appnotif "github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ Channel = (*InAppChannel)(nil)

// InAppChannel persiste la notificación en el buzón del usuario.
type InAppChannel struct {
	repo repository.NotificationRepository
}

// NewInAppChannel construye el canal in-app.
func NewInAppChannel(repo repository.NotificationRepository) *InAppChannel {
	return &InAppChannel{repo: repo}
}

// Send guarda la notificación como no leída en el buzón.
func (c *InAppChannel) Send(_ context.Context, n *appnotif.Rendered) error {
	return c.repo.Create(&entity.Notification{
		ID:        uuid.New().String(),
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Category:  n.Category,
		RuleID:    n.RuleID,
		IsRead:    false,
		CreatedAt: time.Now(),
	})
}
