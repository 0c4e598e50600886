package entity

import "time"

// Company representa una organización/tenant del sistema (multi-bodega, multi-usuario).
type Company struct {
	ID        string
	Name      string
	TaxID     string // identificación tributaria
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
