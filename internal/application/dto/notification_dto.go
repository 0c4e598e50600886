package dto

import (
	"encoding/json"
	"time"
)

// ── Reglas (admin) ────────────────────────────────────────────────────────────

// CreateRuleRequest entrada para crear una regla de notificación.
// Condition es el objeto JSON {ruta: {operator, value}}; se valida al crear.
type CreateRuleRequest struct {
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	EventType        string          `json:"event_type" validate:"required"`
	NotificationType string          `json:"notification_type"`
	Category         string          `json:"category"`
	Condition        json.RawMessage `json:"condition"`
	TitleTemplate    string          `json:"title_template"`
	MessageTemplate  string          `json:"message_template" validate:"required"`
	Priority         int             `json:"priority"`
}

// UpdateRuleRequest entrada para actualizar una regla.
type UpdateRuleRequest struct {
	Name             *string         `json:"name"`
	NotificationType *string         `json:"notification_type"`
	Category         *string         `json:"category"`
	Condition        json.RawMessage `json:"condition"`
	TitleTemplate    *string         `json:"title_template"`
	MessageTemplate  *string         `json:"message_template"`
	Priority         *int            `json:"priority"`
	IsActive         *bool           `json:"is_active"`
}

// RuleResponse salida de una regla.
type RuleResponse struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	Name             string          `json:"name"`
	EventType        string          `json:"event_type"`
	NotificationType string          `json:"notification_type"`
	Category         string          `json:"category"`
	Condition        json.RawMessage `json:"condition"`
	TitleTemplate    string          `json:"title_template"`
	MessageTemplate  string          `json:"message_template"`
	IsActive         bool            `json:"is_active"`
	Priority         int             `json:"priority"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// RuleListResponse lista paginada de reglas.
type RuleListResponse struct {
	Items []RuleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ── Preferencias ──────────────────────────────────────────────────────────────

// UpsertPreferenceRequest crea o actualiza la preferencia del usuario autenticado
// para un tipo de evento.
type UpsertPreferenceRequest struct {
	EventType    string `json:"event_type" validate:"required"`
	InAppEnabled bool   `json:"in_app_enabled"`
	EmailEnabled bool   `json:"email_enabled"`
	PushEnabled  bool   `json:"push_enabled"`
	MinPriority  int    `json:"min_priority"`
}

// PreferenceResponse salida de una preferencia.
type PreferenceResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	EventType    string    `json:"event_type"`
	InAppEnabled bool      `json:"in_app_enabled"`
	EmailEnabled bool      `json:"email_enabled"`
	PushEnabled  bool      `json:"push_enabled"`
	MinPriority  int       `json:"min_priority"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ── Buzón in-app ──────────────────────────────────────────────────────────────

// NotificationResponse salida de una notificación del buzón.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	RuleID    string    `json:"rule_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse lista paginada del buzón + contador de no leídas.
type NotificationListResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int                    `json:"unread"`
	Page   PageResponse           `json:"page"`
}
