package notification

import (
	"time"

	notificationDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/notification"
)

type Type string

const (
	TypeAcceptance       Type = "acceptance"
	TypeRejection        Type = "rejection"
	TypeDuplicateWarning Type = "duplicate_warning"
	TypeIdentityWarning  Type = "identity_warning"
	TypeJobClosed        Type = "job_closed"
	TypeOffer            Type = "offer"
	TypeEmail            Type = "email"
)

type Notification struct {
	ID             string    `json:"id"`
	RecipientEmail string    `json:"recipient_email"`
	Subject        string    `json:"subject"`
	Message        string    `json:"message"`
	Type           Type      `json:"type"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// Recipient is the applicant-derived view a template renders from.
type Recipient struct {
	ApplicantID string
	Email       string
	FirstName   string
	LastName    string
	JobTitle    string
	AppliedAt   time.Time
}

type Message struct {
	Subject string
	HTML    string
}

// Builder renders one recipient's message at send time.
type Builder func(Recipient) Message

type BulkError struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

type BulkResult struct {
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
	Errors     []BulkError `json:"errors"`
}

func (r *BulkResult) success() {
	r.Successful++
}

func (r *BulkResult) fail(email, msg string) {
	r.Failed++
	r.Errors = append(r.Errors, BulkError{Email: email, Error: msg})
}

func NewNotification(to, subject, html string, kind Type) *Notification {
	if kind == "" {
		kind = TypeEmail
	}
	return &Notification{
		RecipientEmail: to,
		Subject:        subject,
		Message:        html,
		Type:           kind,
		IsRead:         false,
		CreatedAt:      time.Now(),
	}
}

func ToDataModel(n *Notification) *notificationDatamodel.Notification {
	return &notificationDatamodel.Notification{
		ID:             n.ID,
		RecipientEmail: n.RecipientEmail,
		Subject:        n.Subject,
		Message:        n.Message,
		Type:           string(n.Type),
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

func FromDataModel(n *notificationDatamodel.Notification) *Notification {
	return &Notification{
		ID:             n.ID,
		RecipientEmail: n.RecipientEmail,
		Subject:        n.Subject,
		Message:        n.Message,
		Type:           Type(n.Type),
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}
