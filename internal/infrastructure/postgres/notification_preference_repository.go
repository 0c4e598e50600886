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

var _ repository.NotificationPreferenceRepository = (*NotificationPreferenceRepo)(nil)
var _ appnotif.PreferenceSource = (*NotificationPreferenceRepo)(nil)

// NotificationPreferenceRepo implementación del puerto de preferencias sobre PostgreSQL.
// También sirve de PreferenceSource para el motor de notificaciones.
type NotificationPreferenceRepo struct {
	q Querier
}

// NewNotificationPreferenceRepository construye el adaptador de persistencia para preferencias.
func NewNotificationPreferenceRepository(q Querier) *NotificationPreferenceRepo {
	return &NotificationPreferenceRepo{q: q}
}

const preferenceColumns = `id, user_id, event_type, in_app_enabled, email_enabled, push_enabled, min_priority, created_at, updated_at`

func scanPreference(row pgx.Row) (*entity.NotificationPreference, error) {
	var p entity.NotificationPreference
	err := row.Scan(
		&p.ID, &p.UserID, &p.EventType, &p.InAppEnabled, &p.EmailEnabled,
		&p.PushEnabled, &p.MinPriority, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Upsert inserta o actualiza la preferencia (única por usuario y evento).
func (r *NotificationPreferenceRepo) Upsert(pref *entity.NotificationPreference) error {
	query := `
		INSERT INTO notification_preferences (` + preferenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, event_type) DO UPDATE SET
			in_app_enabled = EXCLUDED.in_app_enabled,
			email_enabled  = EXCLUDED.email_enabled,
			push_enabled   = EXCLUDED.push_enabled,
			min_priority   = EXCLUDED.min_priority,
			updated_at     = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		pref.ID, pref.UserID, pref.EventType, pref.InAppEnabled, pref.EmailEnabled,
		pref.PushEnabled, pref.MinPriority, pref.CreatedAt, pref.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert notification preference: %w", err)
	}
	return nil
}

// GetByUserAndEvent obtiene la preferencia de un usuario para un evento.
func (r *NotificationPreferenceRepo) GetByUserAndEvent(userID, eventType string) (*entity.NotificationPreference, error) {
	query := `SELECT ` + preferenceColumns + ` FROM notification_preferences WHERE user_id = $1 AND event_type = $2`
	p, err := scanPreference(r.q.QueryRow(context.Background(), query, userID, eventType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get notification preference: %w", err)
	}
	return p, nil
}

// ListByUser lista todas las preferencias de un usuario.
func (r *NotificationPreferenceRepo) ListByUser(userID string) ([]*entity.NotificationPreference, error) {
	query := `SELECT ` + preferenceColumns + ` FROM notification_preferences WHERE user_id = $1 ORDER BY event_type`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list preferences by user: %w", err)
	}
	defer rows.Close()
	return collectPreferences(rows)
}

// ListByEventType lista, para el motor, las preferencias de todos los usuarios
// activos de la empresa para un tipo de evento.
func (r *NotificationPreferenceRepo) ListByEventType(ctx context.Context, companyID, eventType string) ([]*entity.NotificationPreference, error) {
	query := `
		SELECT p.id, p.user_id, p.event_type, p.in_app_enabled, p.email_enabled,
		       p.push_enabled, p.min_priority, p.created_at, p.updated_at
		FROM notification_preferences p
		JOIN users u ON u.id = p.user_id
		WHERE u.company_id = $1 AND u.status = 'active' AND p.event_type = $2
		ORDER BY p.user_id`
	rows, err := r.q.Query(ctx, query, companyID, eventType)
	if err != nil {
		return nil, fmt.Errorf("list preferences by event type: %w", err)
	}
	defer rows.Close()
	return collectPreferences(rows)
}

func collectPreferences(rows pgx.Rows) ([]*entity.NotificationPreference, error) {
	var list []*entity.NotificationPreference
	for rows.Next() {
		p, err := scanPreference(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification preference: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
