package usecase

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// NotificationInboxUseCase buzón in-app del usuario.
type NotificationInboxUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationInboxUseCase construye el caso de uso.
func NewNotificationInboxUseCase(repo repository.NotificationRepository) *NotificationInboxUseCase {
	return &NotificationInboxUseCase{repo: repo}
}

// List lista las notificaciones del usuario con contador de no leídas.
func (uc *NotificationInboxUseCase) List(userID string, page dto.PageRequest, unreadOnly bool) (*dto.NotificationListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByUser(userID, page.Limit, page.Offset, unreadOnly)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, *toNotificationResponse(n))
	}
	return &dto.NotificationListResponse{
		Items:  items,
		Unread: unread,
		Page:   dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// MarkRead marca una notificación como leída; solo el dueño puede hacerlo.
func (uc *NotificationInboxUseCase) MarkRead(userID, notificationID string) error {
	n, err := uc.repo.GetByID(notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return domain.ErrForbidden
	}
	return uc.repo.MarkRead(notificationID)
}

// MarkAllRead marca todas las notificaciones del usuario como leídas.
func (uc *NotificationInboxUseCase) MarkAllRead(userID string) error {
	return uc.repo.MarkAllRead(userID)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Category:  n.Category,
		RuleID:    n.RuleID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
