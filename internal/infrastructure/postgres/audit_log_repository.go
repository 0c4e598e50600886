package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo implementación de la pista de auditoría sobre PostgreSQL (solo INSERT y SELECT).
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador de persistencia de auditoría.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

// Create persiste una entrada de auditoría.
func (r *AuditLogRepo) Create(log *entity.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, company_id, user_id, method, path, status, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.CompanyID, log.UserID, log.Method, log.Path, log.Status, log.Detail, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByCompany lista entradas de auditoría de la empresa, más recientes primero.
func (r *AuditLogRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.AuditLog, error) {
	query := `
		SELECT id, company_id, user_id, method, path, status, detail, created_at
		FROM audit_logs
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditLog
	for rows.Next() {
		var a entity.AuditLog
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.UserID, &a.Method, &a.Path, &a.Status, &a.Detail, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
