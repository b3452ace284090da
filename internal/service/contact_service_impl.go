package service

import (
	"context"
	"fmt"
	"time"

	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/pkg/mailer"
)

// ContactConfig holds notification settings for the contact service.
type ContactConfig struct {
	// Recipient receives a copy of every submission (RECIPIENT_EMAIL).
	Recipient string
	// Now stamps the notification body. Defaults to time.Now.
	Now func() time.Time
}

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	notifier mailer.Client
	cfg      ContactConfig
}

// NewContactService creates a ContactService. repo may be nil when the
// database is unavailable; notifier may be nil to disable email.
func NewContactService(repo repository.ContactRepository, notifier mailer.Client, cfg ContactConfig) ContactService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &contactServiceImpl{repo: repo, notifier: notifier, cfg: cfg}
}

// Submit persists c, sets c.ID and then sends the notification email.
func (s *contactServiceImpl) Submit(ctx context.Context, c *model.ContactSubmission) (SubmitResult, error) {
	if s.repo == nil {
		metrics.ContactsTotal.WithLabelValues("unavailable").Inc()
		return SubmitResult{}, repository.ErrStorageUnavailable
	}

	id, err := s.repo.SaveContact(ctx, c.Name, c.Email, c.Subject, c.Message)
	if err != nil {
		metrics.ContactsTotal.WithLabelValues("failed").Inc()
		return SubmitResult{}, fmt.Errorf("save contact: %w", err)
	}
	c.ID = id
	metrics.ContactsTotal.WithLabelValues("saved").Inc()

	outcome := s.notify(ctx, c)
	metrics.NotificationsTotal.WithLabelValues(string(outcome.Status)).Inc()
	return SubmitResult{ID: id, Notification: outcome}, nil
}

func (s *contactServiceImpl) notify(ctx context.Context, c *model.ContactSubmission) NotifyOutcome {
	if s.notifier == nil || !s.notifier.Configured() || s.cfg.Recipient == "" {
		return NotifyOutcome{Status: NotifySkipped}
	}
	if err := s.notifier.Send(ctx, contactEmail(c, s.cfg.Recipient, s.cfg.Now())); err != nil {
		return NotifyOutcome{Status: NotifyFailed, Err: err}
	}
	return NotifyOutcome{Status: NotifySent}
}

func contactEmail(c *model.ContactSubmission, recipient string, now time.Time) mailer.Message {
	body := fmt.Sprintf(`New contact form submission:

Name: %s
Email: %s
Subject: %s

Message:
%s

---
Sent from Portfolio Website
Time: %s
`, c.Name, c.Email, c.Subject, c.Message, now.Format("2006-01-02 15:04:05"))

	return mailer.Message{
		To:      []string{recipient},
		Subject: "Portfolio Contact: " + c.Subject,
		Body:    body,
	}
}
