// Package delivery implementa los canales de entrega de notificaciones:
// buzón in-app (PostgreSQL), correo (SMTP) y push (stub con log).
// El dispatcher reparte cada notificación renderizada a los canales que la
// preferencia del usuario dejó habilitados.
package delivery

import (
	"context"
	"errors"

	appnotif "github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

var _ appnotif.Deliverer = (*Dispatcher)(nil)

// Channel es un canal concreto de entrega (in-app, email, push).
type Channel interface {
	Send(ctx context.Context, n *appnotif.Rendered) error
}

// Dispatcher reparte una notificación renderizada a sus canales habilitados.
// Un canal que falla no bloquea a los demás; se acumulan los errores.
type Dispatcher struct {
	inApp Channel
	email Channel // nil si SMTP no está configurado
	push  Channel
	log   *logger.Logger
}

// NewDispatcher construye el dispatcher. email puede ser nil (canal deshabilitado).
func NewDispatcher(inApp, email, push Channel, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{inApp: inApp, email: email, push: push, log: log.Component("delivery")}
}

// Deliver entrega la notificación por cada canal habilitado en la preferencia.
func (d *Dispatcher) Deliver(ctx context.Context, n *appnotif.Rendered) error {
	var errs []error
	if n.InApp && d.inApp != nil {
		if err := d.inApp.Send(ctx, n); err != nil {
			d.log.Error().Err(err).Str("user_id", n.UserID).Msg("fallo entrega in-app")
			errs = append(errs, err)
		}
	}
	if n.Email {
		if d.email == nil {
			d.log.Debug().Str("user_id", n.UserID).Msg("canal email deshabilitado, se omite")
		} else if err := d.email.Send(ctx, n); err != nil {
			d.log.Error().Err(err).Str("user_id", n.UserID).Msg("fallo entrega email")
			errs = append(errs, err)
		}
	}
	if n.Push && d.push != nil {
		if err := d.push.Send(ctx, n); err != nil {
			d.log.Error().Err(err).Str("user_id", n.UserID).Msg("fallo entrega push")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
