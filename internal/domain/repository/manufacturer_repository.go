package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ManufacturerRepository define el puerto de persistencia para Manufacturer (DIP).
type ManufacturerRepository interface {
	Create(manufacturer *entity.Manufacturer) error
	GetByID(id string) (*entity.Manufacturer, error)
	GetByCompanyAndCode(companyID, code string) (*entity.Manufacturer, error)
	Update(manufacturer *entity.Manufacturer) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Manufacturer, error)
	Delete(id string) error
}
