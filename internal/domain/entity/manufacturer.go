package entity

import "time"

// Manufacturer representa un fabricante o proveedor de productos del catálogo.
type Manufacturer struct {
	ID        string
	CompanyID string
	Name      string
	Code      string // código único por empresa
	Contact   string
	Email     string
	Phone     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
