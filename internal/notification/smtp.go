package notification

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/go-faster/errors"
)

// SMTPConfig holds connection settings for the SMTP gateway.
type SMTPConfig struct {
	Host     string
	Port     int
	From     string
	Username string
	Password string
}

// SMTPGateway implements Gateway over a plain SMTP connection with
// opportunistic STARTTLS. One connection is dialed per message; the order
// workflow sends a single confirmation per settlement, so pooling is not
// worth the complexity.
type SMTPGateway struct {
	cfg SMTPConfig
}

var _ Gateway = (*SMTPGateway)(nil)

// NewSMTPGateway creates an SMTP-backed notification gateway.
func NewSMTPGateway(cfg SMTPConfig) *SMTPGateway {
	return &SMTPGateway{cfg: cfg}
}

// Send delivers the message via SMTP. The context bounds the dial; a slow
// gateway otherwise blocks the calling operation, so callers should pass a
// deadline.
func (g *SMTPGateway) Send(ctx context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", g.cfg.Host, g.cfg.Port)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "dial smtp %s", addr)
	}

	c, err := smtp.NewClient(conn, g.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return errors.Wrap(err, "smtp handshake")
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: g.cfg.Host}); err != nil {
			return errors.Wrap(err, "starttls")
		}
	}

	if g.cfg.Username != "" {
		auth := smtp.PlainAuth("", g.cfg.Username, g.cfg.Password, g.cfg.Host)
		if err := c.Auth(auth); err != nil {
			return errors.Wrap(err, "smtp auth")
		}
	}

	if err := c.Mail(g.cfg.From); err != nil {
		return errors.Wrap(err, "mail from")
	}
	for _, rcpt := range msg.To {
		if err := c.Rcpt(rcpt); err != nil {
			return errors.Wrapf(err, "rcpt to %s", rcpt)
		}
	}

	w, err := c.Data()
	if err != nil {
		return errors.Wrap(err, "smtp data")
	}
	if _, err := fmt.Fprintf(w, "From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		g.cfg.From, strings.Join(msg.To, ", "), msg.Subject, msg.Body); err != nil {
		_ = w.Close()
		return errors.Wrap(err, "write message")
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(err, "finish message")
	}

	return c.Quit()
}
