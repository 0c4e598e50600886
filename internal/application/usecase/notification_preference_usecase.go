package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// NotificationPreferenceUseCase preferencias de canal y umbral por usuario.
type NotificationPreferenceUseCase struct {
	repo repository.NotificationPreferenceRepository
}

// NewNotificationPreferenceUseCase construye el caso de uso.
func NewNotificationPreferenceUseCase(repo repository.NotificationPreferenceRepository) *NotificationPreferenceUseCase {
	return &NotificationPreferenceUseCase{repo: repo}
}

// Upsert crea o actualiza la preferencia del usuario para el tipo de evento.
func (uc *NotificationPreferenceUseCase) Upsert(userID string, in dto.UpsertPreferenceRequest) (*dto.PreferenceResponse, error) {
	if !validEventTypes[in.EventType] {
		return nil, domain.ErrInvalidInput
	}
	if in.MinPriority < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	pref := &entity.NotificationPreference{
		ID:           uuid.New().String(),
		UserID:       userID,
		EventType:    in.EventType,
		InAppEnabled: in.InAppEnabled,
		EmailEnabled: in.EmailEnabled,
		PushEnabled:  in.PushEnabled,
		MinPriority:  in.MinPriority,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Upsert(pref); err != nil {
		return nil, err
	}
	saved, err := uc.repo.GetByUserAndEvent(userID, in.EventType)
	if err != nil {
		return nil, err
	}
	return toPreferenceResponse(saved), nil
}

// ListByUser lista todas las preferencias del usuario.
func (uc *NotificationPreferenceUseCase) ListByUser(userID string) ([]dto.PreferenceResponse, error) {
	list, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PreferenceResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPreferenceResponse(p))
	}
	return items, nil
}

func toPreferenceResponse(p *entity.NotificationPreference) *dto.PreferenceResponse {
	return &dto.PreferenceResponse{
		ID:           p.ID,
		UserID:       p.UserID,
		EventType:    p.EventType,
		InAppEnabled: p.InAppEnabled,
		EmailEnabled: p.EmailEnabled,
		PushEnabled:  p.PushEnabled,
		MinPriority:  p.MinPriority,
		UpdatedAt:    p.UpdatedAt,
	}
}
