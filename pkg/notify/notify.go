// Package notify provides notification functionality for the domain expiry alert application
package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime/quotedprintable"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mallocator/domain-expiry-alert/pkg/config"
	"github.com/mallocator/domain-expiry-alert/pkg/logger"
	"github.com/mallocator/domain-expiry-alert/pkg/whois"
)

// Subject of the summary email
const Subject = "Domain Expiration Summary"

var summaryTemplate = template.Must(template.New("summary").Parse(`<html>
  <body>
    <h2>Domain Expiration Summary</h2>
    <table border="1" cellpadding="5" cellspacing="0" style="border-collapse: collapse; width: 100%;">
      <thead>
        <tr>
          <th>Domain</th>
          <th>Creation Date</th>
          <th>Last Updated</th>
          <th>Expiry Date</th>
          <th>Registrar</th>
          <th>Days to Expiry</th>
        </tr>
      </thead>
      <tbody>
{{- range .}}
        <tr>
          <td>{{.Domain}}</td>
          <td>{{.CreationDate}}</td>
          <td>{{.LastUpdated}}</td>
          <td>{{.ExpiryDate}}</td>
          <td>{{.Registrar}}</td>
          <td>{{.Days}}</td>
        </tr>
{{- end}}
      </tbody>
    </table>
  </body>
</html>
`))

// Transport delivers a finished message
type Transport interface {
	Send(ctx context.Context, from string, to []string, msg []byte) error
}

// Notifier handles notification operations
type Notifier struct {
	cfg       *config.Config
	log       *logger.Logger
	transport Transport
	now       func() time.Time
}

// New creates a new notifier sending through the configured SMTP relay
func New(cfg *config.Config, log *logger.Logger) *Notifier {
	return &Notifier{
		cfg:       cfg,
		log:       log,
		transport: NewSMTPTransport(cfg, log),
		now:       time.Now,
	}
}

// WithTransport replaces the delivery mechanism
func (n *Notifier) WithTransport(t Transport) *Notifier {
	n.transport = t
	return n
}

// Send renders the summary of records and delivers it as one email to
// every recipient. Delivery failures are returned to the caller.
func (n *Notifier) Send(ctx context.Context, records []whois.Record) error {
	if err := n.cfg.Validate(); err != nil {
		return err
	}

	body, err := RenderHTML(records)
	if err != nil {
		return err
	}

	to := n.cfg.Recipients()
	msg, err := BuildMessage(n.cfg.EmailSender, to, Subject, body, n.now())
	if err != nil {
		return err
	}

	n.log.Infof("Sending summary of %d domains to %s", len(records), strings.Join(to, ", "))
	if err := n.transport.Send(ctx, n.cfg.EmailSender, to, msg); err != nil {
		return fmt.Errorf("failed to send summary email: %w", err)
	}

	n.log.Infof("Summary email sent successfully.")
	return nil
}

// RenderHTML builds the summary document with one table row per record
func RenderHTML(records []whois.Record) (string, error) {
	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, records); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return buf.String(), nil
}

// BuildMessage wraps an HTML body into an RFC 5322 message
func BuildMessage(from string, to []string, subject, html string, date time.Time) ([]byte, error) {
	var buf bytes.Buffer

	headers := []struct{ key, value string }{
		{"From", from},
		{"To", strings.Join(to, ", ")},
		{"Subject", subject},
		{"Date", date.Format(time.RFC1123Z)},
		{"Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), messageIDHost(from))},
		{"MIME-Version", "1.0"},
		{"Content-Type", `text/html; charset="UTF-8"`},
		{"Content-Transfer-Encoding", "quoted-printable"},
	}
	for _, h := range headers {
		fmt.Fprintf(&buf, "%s: %s\r\n", h.key, h.value)
	}
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(html)); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	buf.WriteString("\r\n")

	return buf.Bytes(), nil
}

// messageIDHost picks the domain part of the sender for Message-ID
func messageIDHost(from string) string {
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		return strings.Trim(from[i+1:], "<> ")
	}
	return "localhost"
}
