package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// NotifyStatus is the result of the best-effort email notification.
type NotifyStatus string

const (
	NotifySent    NotifyStatus = "sent"
	NotifySkipped NotifyStatus = "skipped" // mailer not configured
	NotifyFailed  NotifyStatus = "failed"
)

// NotifyOutcome describes what happened to the notification. Err is set
// only when Status is NotifyFailed.
type NotifyOutcome struct {
	Status NotifyStatus
	Err    error
}

// SubmitResult is returned by a successful Submit.
type SubmitResult struct {
	ID           int64
	Notification NotifyOutcome
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit stores a validated contact submission and then notifies the
	// site owner. The returned error concerns the save only; notification
	// problems are reported in SubmitResult.Notification.
	Submit(ctx context.Context, c *model.ContactSubmission) (SubmitResult, error)
}
