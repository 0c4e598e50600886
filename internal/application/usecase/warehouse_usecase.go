package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD de bodegas y asignación usuario-bodega.
type WarehouseUseCase struct {
	repo  repository.WarehouseRepository
	users repository.UserRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository, users repository.UserRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, users: users}
}

// Create crea una bodega.
func (uc *WarehouseUseCase) Create(companyID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega.
func (uc *WarehouseUseCase) Update(id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas por empresa con paginación.
func (uc *WarehouseUseCase) List(companyID string, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una bodega.
func (uc *WarehouseUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// AssignUser asigna un usuario (de la misma empresa) a la bodega.
func (uc *WarehouseUseCase) AssignUser(warehouseID, userID, assignedBy string) error {
	warehouse, err := uc.repo.GetByID(warehouseID)
	if err != nil {
		return err
	}
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return err
	}
	if user.CompanyID != warehouse.CompanyID {
		return domain.ErrForbidden
	}
	return uc.repo.AssignUser(&entity.UserWarehouse{
		UserID:      userID,
		WarehouseID: warehouseID,
		AssignedAt:  time.Now(),
		AssignedBy:  assignedBy,
	})
}

// UnassignUser quita la asignación de un usuario a la bodega.
func (uc *WarehouseUseCase) UnassignUser(warehouseID, userID string) error {
	return uc.repo.UnassignUser(userID, warehouseID)
}

// ListAssignedUsers lista las asignaciones de usuarios a una bodega.
// Valida que la bodega pertenezca a la empresa del solicitante.
func (uc *WarehouseUseCase) ListAssignedUsers(companyID, warehouseID string) ([]dto.WarehouseAssignmentResponse, error) {
	warehouse, err := uc.repo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.ListAssignedUsers(warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseAssignmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.WarehouseAssignmentResponse{
			UserID:      a.UserID,
			WarehouseID: a.WarehouseID,
			AssignedAt:  a.AssignedAt,
			AssignedBy:  a.AssignedBy,
		})
	}
	return items, nil
}

// ListByUser lista las bodegas asignadas a un usuario.
func (uc *WarehouseUseCase) ListByUser(userID string) ([]dto.WarehouseResponse, error) {
	list, err := uc.repo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return items, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
