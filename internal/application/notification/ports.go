package notification

import (
	"context"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RuleSource abastece al motor con las reglas activas de un tipo de evento.
// Implementado por la capa de persistencia.
type RuleSource interface {
	ListActiveByEventType(ctx context.Context, companyID, eventType string) ([]*entity.NotificationRule, error)
}

// PreferenceSource abastece al motor con las preferencias de los usuarios
// para un tipo de evento (una consulta por pasada).
type PreferenceSource interface {
	ListByEventType(ctx context.Context, companyID, eventType string) ([]*entity.NotificationPreference, error)
}

// Rendered es la unidad de salida del motor: una notificación lista para
// entregar a un usuario, con los canales habilitados por su preferencia.
// Vive solo durante la pasada; la retención es del deliverer.
type Rendered struct {
	Title    string
	Message  string
	Type     string // info, warning, critical
	Category string
	UserID   string
	RuleID   string // regla que originó la notificación
	InApp    bool
	Email    bool
	Push     bool
}

// Deliverer recibe cada notificación renderizada. El motor no reintenta:
// el manejo de fallos de entrega es responsabilidad del colaborador.
type Deliverer interface {
	Deliver(ctx context.Context, n *Rendered) error
}
