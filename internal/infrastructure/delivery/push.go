package delivery

import (
	"context"

	appnotif "github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

var _ Channel = (*PushChannel)(nil)

// PushChannel registra la notificación en el log.
// TODO: integrar un proveedor real de push cuando el cliente móvil esté listo.
type PushChannel struct {
	log *logger.Logger
}

// NewPushChannel construye el canal push.
func NewPushChannel(log *logger.Logger) *PushChannel {
	if log == nil {
		log = logger.Nop()
	}
	return &PushChannel{log: log.Component("push")}
}

// Send deja constancia de la notificación; no hay proveedor conectado.
func (c *PushChannel) Send(_ context.Context, n *appnotif.Rendered) error {
	c.log.Info().
		Str("user_id", n.UserID).
		Str("title", n.Title).
		Msg("notificación push (stub)")
	return nil
}
