package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// NotificationRepository define el puerto del buzón in-app.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	GetByID(id string) (*entity.Notification, error)
	ListByUser(userID string, limit, offset int, unreadOnly bool) ([]*entity.Notification, error)
	MarkRead(id string) error
	MarkAllRead(userID string) error
	CountUnread(userID string) (int, error)
}
