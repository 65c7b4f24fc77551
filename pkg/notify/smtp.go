package notify

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"

	"github.com/mallocator/domain-expiry-alert/pkg/config"
	"github.com/mallocator/domain-expiry-alert/pkg/logger"
)

// ErrNoStartTLS is returned when the relay does not offer STARTTLS
var ErrNoStartTLS = errors.New("smtp server does not support STARTTLS")

// SMTPTransport submits mail over STARTTLS with PLAIN authentication
type SMTPTransport struct {
	cfg       *config.Config
	log       *logger.Logger
	tlsConfig *tls.Config
}

// NewSMTPTransport creates a transport for the configured relay
func NewSMTPTransport(cfg *config.Config, log *logger.Logger) *SMTPTransport {
	return &SMTPTransport{
		cfg: cfg,
		log: log,
	}
}

// Send dials the relay, upgrades the connection, authenticates and submits msg
func (t *SMTPTransport) Send(ctx context.Context, from string, to []string, msg []byte) error {
	addr := t.cfg.Addr()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}

	c, err := smtp.NewClient(conn, t.cfg.SMTPServer)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp handshake with %s: %w", addr, err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			t.log.Debugf("Failed to close SMTP connection: %v", err)
		}
	}()

	if ok, _ := c.Extension("STARTTLS"); !ok {
		return fmt.Errorf("%s: %w", addr, ErrNoStartTLS)
	}
	tlsConfig := t.tlsConfig
	if tlsConfig == nil {
		tlsConfig = &tls.Config{ServerName: t.cfg.SMTPServer}
	}
	if err := c.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}

	if t.cfg.EmailPassword != "" {
		auth := smtp.PlainAuth("", t.cfg.EmailSender, t.cfg.EmailPassword, t.cfg.SMTPServer)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	} else {
		t.log.Warnf("EMAIL_PASSWORD not set, sending without authentication")
	}

	if err := c.Mail(from); err != nil {
		return fmt.Errorf("smtp MAIL FROM: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp RCPT TO %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	return c.Quit()
}
