package mailer

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeSMTP is a minimal SMTP server that accepts one session and records
// the commands and the DATA payload.
type fakeSMTP struct {
	ln       net.Listener
	mu       sync.Mutex
	commands []string
	data     string
	done     chan struct{}
}

func startFakeSMTP(t *testing.T) *fakeSMTP {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &fakeSMTP{ln: ln, done: make(chan struct{})}
	t.Cleanup(func() { _ = ln.Close() })
	go s.serve()
	return s
}

func (s *fakeSMTP) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeSMTP) serve() {
	defer close(s.done)
	conn, err := s.ln.Accept()
	if err != nil {
		return
	}
	defer conn.Close()

	r := bufio.NewReader(conn)
	write := func(line string) { _, _ = conn.Write([]byte(line + "\r\n")) }
	write("220 127.0.0.1 ESMTP fake")

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimRight(line, "\r\n")
		s.mu.Lock()
		s.commands = append(s.commands, line)
		s.mu.Unlock()

		verb := strings.ToUpper(strings.SplitN(line, " ", 2)[0])
		switch verb {
		case "EHLO", "HELO":
			write("250-127.0.0.1")
			write("250 AUTH PLAIN")
		case "AUTH":
			write("235 2.7.0 Authentication successful")
		case "MAIL", "RCPT", "RSET", "NOOP":
			write("250 OK")
		case "DATA":
			write("354 End data with <CR><LF>.<CR><LF>")
			var body strings.Builder
			for {
				l, err := r.ReadString('\n')
				if err != nil {
					return
				}
				if l == ".\r\n" {
					break
				}
				body.WriteString(l)
			}
			s.mu.Lock()
			s.data = body.String()
			s.mu.Unlock()
			write("250 OK queued")
		case "QUIT":
			write("221 Bye")
			return
		default:
			write("502 not implemented")
		}
	}
}

func TestSMTPClient_NotConfigured(t *testing.T) {
	c := NewClient(Config{Host: "smtp.example.com"})
	if c.Configured() {
		t.Fatal("expected client without credentials to be unconfigured")
	}
	err := c.Send(context.Background(), Message{To: []string{"a@example.com"}})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSMTPClient_NoRecipients(t *testing.T) {
	c := NewClient(Config{Host: "127.0.0.1", Username: "u", Password: "p"})
	if err := c.Send(context.Background(), Message{Subject: "x"}); err == nil {
		t.Error("expected error without recipients")
	}
}

func TestSMTPClient_Send(t *testing.T) {
	srv := startFakeSMTP(t)
	c := NewClient(Config{
		Host:     "127.0.0.1",
		Port:     srv.port(),
		Username: "user",
		Password: "secret",
		From:     "site@example.com",
		Timeout:  5 * time.Second,
	})

	err := c.Send(context.Background(), Message{
		To:      []string{"owner@example.com"},
		Subject: "Portfolio Contact: Hi",
		Body:    "line one\nline two",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	select {
	case <-srv.done:
	case <-time.After(5 * time.Second):
		t.Fatal("fake server did not finish")
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	joined := strings.Join(srv.commands, "\n")
	for _, want := range []string{"AUTH PLAIN", "MAIL FROM:<site@example.com>", "RCPT TO:<owner@example.com>", "QUIT"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected command %q in session:\n%s", want, joined)
		}
	}
	if !strings.Contains(srv.data, "Subject: Portfolio Contact: Hi\r\n") {
		t.Errorf("subject header missing from data: %q", srv.data)
	}
	if !strings.Contains(srv.data, "line one\r\nline two") {
		t.Errorf("body missing from data: %q", srv.data)
	}
}

func TestSMTPClient_StartTLSUnsupported(t *testing.T) {
	srv := startFakeSMTP(t)
	c := NewClient(Config{
		Host:     "127.0.0.1",
		Port:     srv.port(),
		UseTLS:   true,
		Username: "user",
		Password: "secret",
		Timeout:  5 * time.Second,
	})

	err := c.Send(context.Background(), Message{To: []string{"owner@example.com"}})
	if err == nil || !strings.Contains(err.Error(), "STARTTLS") {
		t.Errorf("expected STARTTLS error, got %v", err)
	}
}

func TestSMTPClient_DialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	c := NewClient(Config{Host: "127.0.0.1", Port: port, Username: "u", Password: "p", Timeout: time.Second})
	if err := c.Send(context.Background(), Message{To: []string{"a@example.com"}}); err == nil {
		t.Error("expected dial error")
	}
}

func TestMessage_Bytes_StripsHeaderInjection(t *testing.T) {
	m := Message{
		From:    "a@example.com",
		To:      []string{"b@example.com", "c@example.com"},
		Subject: "hello\r\nBcc: evil@example.com",
		Body:    "x",
	}
	out := string(m.Bytes())
	if strings.Contains(out, "\r\nBcc:") {
		t.Errorf("header injection not stripped: %q", out)
	}
	if !strings.Contains(out, "To: b@example.com, c@example.com\r\n") {
		t.Errorf("unexpected To header: %q", out)
	}
	if !strings.HasSuffix(out, "\r\n\r\nx") {
		t.Errorf("unexpected body framing: %q", out)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})
	if c.cfg.Port != 587 {
		t.Errorf("expected default port 587, got %d", c.cfg.Port)
	}
	if c.cfg.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", c.cfg.Timeout)
	}
}
