package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	appnotif "github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.NotificationRuleRepository = (*NotificationRuleRepo)(nil)
var _ appnotif.RuleSource = (*NotificationRuleRepo)(nil)

// NotificationRuleRepo implementación del puerto NotificationRuleRepository sobre PostgreSQL.
// También sirve de RuleSource para el motor de notificaciones.
type NotificationRuleRepo struct {
	q Querier
}

// NewNotificationRuleRepository construye el adaptador de persistencia para reglas.
func NewNotificationRuleRepository(q Querier) *NotificationRuleRepo {
	return &NotificationRuleRepo{q: q}
}

const ruleColumns = `id, company_id, name, event_type, notification_type, category, condition_expression, title_template, message_template, is_active, priority, created_at, updated_at`

func scanRule(row pgx.Row) (*entity.NotificationRule, error) {
	var nr entity.NotificationRule
	err := row.Scan(
		&nr.ID, &nr.CompanyID, &nr.Name, &nr.EventType, &nr.NotificationType, &nr.Category,
		&nr.ConditionExpression, &nr.TitleTemplate, &nr.MessageTemplate, &nr.IsActive,
		&nr.Priority, &nr.CreatedAt, &nr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &nr, nil
}

// Create persiste una nueva regla.
func (r *NotificationRuleRepo) Create(rule *entity.NotificationRule) error {
	query := `
		INSERT INTO notification_rules (` + ruleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.CompanyID, rule.Name, rule.EventType, rule.NotificationType,
		rule.Category, rule.ConditionExpression, rule.TitleTemplate, rule.MessageTemplate,
		rule.IsActive, rule.Priority, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert notification rule: %w", err)
	}
	return nil
}

// GetByID obtiene una regla por ID.
func (r *NotificationRuleRepo) GetByID(id string) (*entity.NotificationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM notification_rules WHERE id = $1`
	rule, err := scanRule(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get notification rule: %w", err)
	}
	return rule, nil
}

// Update actualiza una regla.
func (r *NotificationRuleRepo) Update(rule *entity.NotificationRule) error {
	query := `
		UPDATE notification_rules
		SET name = $2, notification_type = $3, category = $4, condition_expression = $5,
		    title_template = $6, message_template = $7, is_active = $8, priority = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.Name, rule.NotificationType, rule.Category, rule.ConditionExpression,
		rule.TitleTemplate, rule.MessageTemplate, rule.IsActive, rule.Priority, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update notification rule: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista reglas de la empresa con paginación.
func (r *NotificationRuleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.NotificationRule, error) {
	query := `
		SELECT ` + ruleColumns + ` FROM notification_rules
		WHERE company_id = $1 ORDER BY event_type, priority DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notification rules: %w", err)
	}
	defer rows.Close()
	return collectRules(rows)
}

// ListActiveByEventType lista las reglas activas de un tipo de evento, en orden
// determinista por prioridad descendente y luego por ID.
func (r *NotificationRuleRepo) ListActiveByEventType(ctx context.Context, companyID, eventType string) ([]*entity.NotificationRule, error) {
	query := `
		SELECT ` + ruleColumns + ` FROM notification_rules
		WHERE company_id = $1 AND event_type = $2 AND is_active
		ORDER BY priority DESC, id`
	rows, err := r.q.Query(ctx, query, companyID, eventType)
	if err != nil {
		return nil, fmt.Errorf("list active rules: %w", err)
	}
	defer rows.Close()
	return collectRules(rows)
}

func collectRules(rows pgx.Rows) ([]*entity.NotificationRule, error) {
	var list []*entity.NotificationRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

// Delete elimina una regla.
func (r *NotificationRuleRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM notification_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification rule: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
