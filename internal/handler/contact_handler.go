package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

const (
	maxContactBodyBytes = 64 << 10
	maxMessageLength    = 5000
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	contactService service.ContactService
	validate       *validator.Validate
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &ContactHandler{contactService: contactService, validate: v}
}

// submitRequest is the expected JSON body for POST /api/contact.
// Field order decides which missing field is reported first.
type submitRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (req *submitRequest) trim() {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.trim()

	if field, ok := h.missingField(&req); ok {
		writeError(w, http.StatusBadRequest, "Missing required field: "+field)
		return
	}
	if len([]rune(req.Message)) > maxMessageLength {
		writeError(w, http.StatusBadRequest, "Message too long")
		return
	}

	c := &model.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}

	res, err := h.contactService.Submit(r.Context(), c)
	if err != nil {
		if errors.Is(err, repository.ErrStorageUnavailable) {
			slog.ErrorContext(r.Context(), "contact not saved: database unavailable", "error", err)
			writeError(w, http.StatusServiceUnavailable, "Database not available")
			return
		}
		slog.ErrorContext(r.Context(), "contact not saved", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	switch res.Notification.Status {
	case service.NotifyFailed:
		slog.ErrorContext(r.Context(), "contact notification failed", "contact_id", res.ID, "error", res.Notification.Err)
	case service.NotifySkipped:
		slog.WarnContext(r.Context(), "contact notification skipped: mail not configured", "contact_id", res.ID)
	default:
		slog.InfoContext(r.Context(), "contact saved", "contact_id", res.ID)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Message sent successfully!",
	})
}

// missingField returns the JSON name of the first empty required field.
func (h *ContactHandler) missingField(req *submitRequest) (string, bool) {
	err := h.validate.Struct(req)
	if err == nil {
		return "", false
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), true
	}
	return "request", true
}
