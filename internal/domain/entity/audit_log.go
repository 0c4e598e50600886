package entity

import "time"

// AuditLog registra una acción mutante ejecutada por un usuario (trazabilidad).
type AuditLog struct {
	ID        string
	CompanyID string
	UserID    string
	Method    string // POST, PUT, DELETE
	Path      string
	Status    int
	Detail    string // cuerpo resumido u observación
	CreatedAt time.Time
}
