package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ManufacturerUseCase casos de uso CRUD para fabricantes.
type ManufacturerUseCase struct {
	repo repository.ManufacturerRepository
}

// NewManufacturerUseCase construye el caso de uso.
func NewManufacturerUseCase(repo repository.ManufacturerRepository) *ManufacturerUseCase {
	return &ManufacturerUseCase{repo: repo}
}

// Create crea un fabricante. Code es único por empresa.
func (uc *ManufacturerUseCase) Create(companyID string, in dto.CreateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	if in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndCode(companyID, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	manufacturer := &entity.Manufacturer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Code:      in.Code,
		Contact:   in.Contact,
		Email:     in.Email,
		Phone:     in.Phone,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(manufacturer); err != nil {
		return nil, err
	}
	return toManufacturerResponse(manufacturer), nil
}

// GetByID obtiene un fabricante por ID.
func (uc *ManufacturerUseCase) GetByID(id string) (*dto.ManufacturerResponse, error) {
	manufacturer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toManufacturerResponse(manufacturer), nil
}

// Update actualiza un fabricante.
func (uc *ManufacturerUseCase) Update(id string, in dto.UpdateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	manufacturer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		manufacturer.Name = *in.Name
	}
	if in.Contact != nil {
		manufacturer.Contact = *in.Contact
	}
	if in.Email != nil {
		manufacturer.Email = *in.Email
	}
	if in.Phone != nil {
		manufacturer.Phone = *in.Phone
	}
	if in.Status != nil {
		manufacturer.Status = *in.Status
	}
	manufacturer.UpdatedAt = time.Now()
	if err := uc.repo.Update(manufacturer); err != nil {
		return nil, err
	}
	return toManufacturerResponse(manufacturer), nil
}

// List lista fabricantes por empresa con paginación.
func (uc *ManufacturerUseCase) List(companyID string, page dto.PageRequest) (*dto.ManufacturerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ManufacturerResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toManufacturerResponse(m))
	}
	return &dto.ManufacturerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un fabricante.
func (uc *ManufacturerUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toManufacturerResponse(m *entity.Manufacturer) *dto.ManufacturerResponse {
	return &dto.ManufacturerResponse{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		Name:      m.Name,
		Code:      m.Code,
		Contact:   m.Contact,
		Email:     m.Email,
		Phone:     m.Phone,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
