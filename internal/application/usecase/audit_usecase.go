package usecase

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// AuditUseCase consulta de la pista de auditoría (solo admin).
type AuditUseCase struct {
	repo repository.AuditLogRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditLogRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// List lista entradas de auditoría de la empresa con paginación.
func (uc *AuditUseCase) List(companyID string, page dto.PageRequest) (*dto.AuditLogListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAuditLogResponse(a))
	}
	return &dto.AuditLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toAuditLogResponse(a *entity.AuditLog) *dto.AuditLogResponse {
	return &dto.AuditLogResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Method:    a.Method,
		Path:      a.Path,
		Status:    a.Status,
		Detail:    a.Detail,
		CreatedAt: a.CreatedAt,
	}
}
