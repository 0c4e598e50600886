package delivery

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	appnotif "github.com/jhoicas/almacen-api/internal/application/notification"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/config"
)

var _ Channel = (*EmailChannel)(nil)

// EmailChannel envía la notificación por SMTP al correo del usuario.
type EmailChannel struct {
	cfg   config.SMTPConfig
	users repository.UserRepository
}

// NewEmailChannel construye el canal de correo. Devuelve nil si SMTP no está
// configurado, para que el dispatcher lo trate como canal deshabilitado.
func NewEmailChannel(cfg config.SMTPConfig, users repository.UserRepository) *EmailChannel {
	if !cfg.Enabled() {
		return nil
	}
	return &EmailChannel{cfg: cfg, users: users}
}

// Send resuelve el email del usuario y envía el mensaje.
func (c *EmailChannel) Send(_ context.Context, n *appnotif.Rendered) error {
	user, err := c.users.GetByID(n.UserID)
	if err != nil {
		return fmt.Errorf("resolver destinatario: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.cfg.From)
	m.SetHeader("To", user.Email)
	m.SetHeader("Subject", n.Title)
	m.SetBody("text/plain", n.Message)

	d := gomail.NewDialer(c.cfg.Host, c.cfg.Port, c.cfg.User, c.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("enviar correo: %w", err)
	}
	return nil
}
