package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	notif "github.com/jhoicas/almacen-api/internal/domain/notification"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// NotificationRuleUseCase administración de reglas del motor de notificaciones.
// La condición se valida con el parser del motor al crear/actualizar: una regla
// malformada jamás llega activa a la base.
type NotificationRuleUseCase struct {
	repo repository.NotificationRuleRepository
}

// NewNotificationRuleUseCase construye el caso de uso.
func NewNotificationRuleUseCase(repo repository.NotificationRuleRepository) *NotificationRuleUseCase {
	return &NotificationRuleUseCase{repo: repo}
}

var validEventTypes = map[string]bool{
	entity.EventStockLow:           true,
	entity.EventStockOut:           true,
	entity.EventTransactionCreated: true,
}

// Create crea una regla nueva (activa por defecto).
func (uc *NotificationRuleUseCase) Create(companyID string, in dto.CreateRuleRequest) (*dto.RuleResponse, error) {
	if in.Name == "" || in.MessageTemplate == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validEventTypes[in.EventType] {
		return nil, domain.ErrInvalidInput
	}
	if _, err := notif.ParseCondition(in.Condition); err != nil {
		return nil, err
	}
	notificationType := in.NotificationType
	if notificationType == "" {
		notificationType = entity.NotificationTypeInfo
	}
	now := time.Now()
	rule := &entity.NotificationRule{
		ID:                  uuid.New().String(),
		CompanyID:           companyID,
		Name:                in.Name,
		EventType:           in.EventType,
		NotificationType:    notificationType,
		Category:            in.Category,
		ConditionExpression: string(in.Condition),
		TitleTemplate:       in.TitleTemplate,
		MessageTemplate:     in.MessageTemplate,
		IsActive:            true,
		Priority:            in.Priority,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(rule); err != nil {
		return nil, err
	}
	return toRuleResponse(rule), nil
}

// GetByID obtiene una regla por ID.
func (uc *NotificationRuleUseCase) GetByID(id string) (*dto.RuleResponse, error) {
	rule, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toRuleResponse(rule), nil
}

// Update actualiza una regla; revalida la condición si viene en la petición.
func (uc *NotificationRuleUseCase) Update(id string, in dto.UpdateRuleRequest) (*dto.RuleResponse, error) {
	rule, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		rule.Name = *in.Name
	}
	if in.NotificationType != nil {
		rule.NotificationType = *in.NotificationType
	}
	if in.Category != nil {
		rule.Category = *in.Category
	}
	if in.Condition != nil {
		if _, err := notif.ParseCondition(in.Condition); err != nil {
			return nil, err
		}
		rule.ConditionExpression = string(in.Condition)
	}
	if in.TitleTemplate != nil {
		rule.TitleTemplate = *in.TitleTemplate
	}
	if in.MessageTemplate != nil {
		if *in.MessageTemplate == "" {
			return nil, domain.ErrInvalidInput
		}
		rule.MessageTemplate = *in.MessageTemplate
	}
	if in.Priority != nil {
		rule.Priority = *in.Priority
	}
	if in.IsActive != nil {
		rule.IsActive = *in.IsActive
	}
	rule.UpdatedAt = time.Now()
	if err := uc.repo.Update(rule); err != nil {
		return nil, err
	}
	return toRuleResponse(rule), nil
}

// List lista reglas de la empresa con paginación.
func (uc *NotificationRuleUseCase) List(companyID string, page dto.PageRequest) (*dto.RuleListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RuleResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRuleResponse(r))
	}
	return &dto.RuleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una regla.
func (uc *NotificationRuleUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toRuleResponse(r *entity.NotificationRule) *dto.RuleResponse {
	var condition json.RawMessage
	if r.ConditionExpression != "" {
		condition = json.RawMessage(r.ConditionExpression)
	}
	return &dto.RuleResponse{
		ID:               r.ID,
		CompanyID:        r.CompanyID,
		Name:             r.Name,
		EventType:        r.EventType,
		NotificationType: r.NotificationType,
		Category:         r.Category,
		Condition:        condition,
		TitleTemplate:    r.TitleTemplate,
		MessageTemplate:  r.MessageTemplate,
		IsActive:         r.IsActive,
		Priority:         r.Priority,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
