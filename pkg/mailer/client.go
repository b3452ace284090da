// Package mailer sends contact notifications over SMTP.
// Uses net/smtp directly; a client without credentials is a no-op.
package mailer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

// Config holds SMTP settings. Corresponds to the MAIL_* environment variables.
type Config struct {
	Host     string
	Port     int
	UseTLS   bool // STARTTLS after EHLO
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// Message is a plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// Client はメール送信クライアントのインターフェース
type Client interface {
	// Configured reports whether Send can deliver mail.
	Configured() bool
	// Send delivers msg. It returns ErrNotConfigured when credentials are missing.
	Send(ctx context.Context, msg Message) error
}

// ErrNotConfigured は SMTP が設定されていない場合のエラー
var ErrNotConfigured = errors.New("mailer: not configured")

// SMTPClient is the net/smtp implementation of Client.
type SMTPClient struct {
	cfg Config
}

// NewClient creates an SMTPClient. Missing username or password leaves the
// client unconfigured.
func NewClient(cfg Config) *SMTPClient {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPClient{cfg: cfg}
}

func (c *SMTPClient) Configured() bool {
	return c.cfg.Host != "" && c.cfg.Username != "" && c.cfg.Password != ""
}

// Send dials the server, optionally upgrades with STARTTLS, authenticates
// with PLAIN and delivers msg. The connection deadline follows ctx.
func (c *SMTPClient) Send(ctx context.Context, msg Message) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	if msg.From == "" {
		msg.From = c.cfg.From
	}
	if msg.From == "" {
		msg.From = c.cfg.Username
	}
	if len(msg.To) == 0 {
		return errors.New("mailer: no recipients")
	}

	addr := net.JoinHostPort(c.cfg.Host, strconv.Itoa(c.cfg.Port))
	d := net.Dialer{Timeout: c.cfg.Timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("mailer: dial %s: %w", addr, err)
	}
	deadline := time.Now().Add(c.cfg.Timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)

	sc, err := smtp.NewClient(conn, c.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("mailer: handshake: %w", err)
	}
	defer sc.Close()

	if c.cfg.UseTLS {
		if ok, _ := sc.Extension("STARTTLS"); !ok {
			return errors.New("mailer: server does not support STARTTLS")
		}
		if err := sc.StartTLS(&tls.Config{ServerName: c.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("mailer: starttls: %w", err)
		}
	}

	if err := sc.Auth(smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)); err != nil {
		return fmt.Errorf("mailer: auth: %w", err)
	}
	if err := sc.Mail(msg.From); err != nil {
		return fmt.Errorf("mailer: mail from: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := sc.Rcpt(rcpt); err != nil {
			return fmt.Errorf("mailer: rcpt %s: %w", rcpt, err)
		}
	}

	w, err := sc.Data()
	if err != nil {
		return fmt.Errorf("mailer: data: %w", err)
	}
	if _, err := w.Write(msg.Bytes()); err != nil {
		_ = w.Close()
		return fmt.Errorf("mailer: write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mailer: end data: %w", err)
	}
	return sc.Quit()
}

// Bytes renders msg as an RFC 5322 message with CRLF line endings.
func (m Message) Bytes() []byte {
	var b strings.Builder
	b.WriteString("From: " + m.From + "\r\n")
	b.WriteString("To: " + strings.Join(m.To, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", headerValue(m.Subject)) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	body := strings.ReplaceAll(m.Body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}

// headerValue strips line breaks so user input cannot inject headers.
func headerValue(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
