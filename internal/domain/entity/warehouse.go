package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserWarehouse asigna un usuario a una bodega (un bodeguero puede operar varias).
type UserWarehouse struct {
	UserID      string
	WarehouseID string
	AssignedAt  time.Time
	AssignedBy  string // usuario admin que hizo la asignación
}
