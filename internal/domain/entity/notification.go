package entity

import "time"

// Tipos de evento que dispara el sistema hacia el motor de notificaciones.
const (
	EventStockLow           = "STOCK_LOW"
	EventStockOut           = "STOCK_OUT"
	EventTransactionCreated = "TRANSACTION_CREATED"
)

// Tipos de notificación (severidad visual en el cliente).
const (
	NotificationTypeInfo     = "info"
	NotificationTypeWarning  = "warning"
	NotificationTypeCritical = "critical"
)

// NotificationRule es una regla declarativa administrada por un admin:
// si la condición matchea los datos del evento, se renderizan las plantillas
// y se notifica a los usuarios según sus preferencias.
// ConditionExpression es un objeto JSON: ruta con puntos -> {operator, value}.
// Las plantillas usan placeholders {{Ruta.Con.Puntos}} resueltos contra el evento.
type NotificationRule struct {
	ID                  string
	CompanyID           string
	Name                string
	EventType           string // STOCK_LOW, TRANSACTION_CREATED, ...
	NotificationType    string // info, warning, critical
	Category            string // inventory, catalog, system
	ConditionExpression string // JSON; vacío o "{}" = matchea siempre
	TitleTemplate       string
	MessageTemplate     string
	IsActive            bool
	Priority            int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NotificationPreference configura, por usuario y tipo de evento, los canales
// habilitados y el umbral de prioridad mínimo para recibir la notificación.
// Única por (UserID, EventType).
type NotificationPreference struct {
	ID           string
	UserID       string
	EventType    string
	InAppEnabled bool
	EmailEnabled bool
	PushEnabled  bool
	MinPriority  int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AnyChannelEnabled indica si al menos un canal está habilitado.
func (p *NotificationPreference) AnyChannelEnabled() bool {
	return p.InAppEnabled || p.EmailEnabled || p.PushEnabled
}

// Notification es el registro in-app persistido para el buzón del usuario.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      string // info, warning, critical
	Category  string
	RuleID    string // regla que la originó
	IsRead    bool
	CreatedAt time.Time
}
