package notification

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/smart-recruiter/internal"
	notificationDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/notification"
	"github.com/google/uuid"
)

var (
	ErrNotificationNotFound = internal.NewNotFoundError("Notification not found", internal.ErrCodeNotificationNotFound)
	ErrEmailRequired        = internal.NewValidationError("Email query parameter is required", internal.ErrCodeValidationFailed)
	ErrIDsRequired          = internal.NewValidationError("ids array is required in body", internal.ErrCodeEmptySelection)
)

const noEmailAddress = "No email address found"

type RepositoryAPI interface {
	Create(ctx context.Context, n *notificationDatamodel.Notification) error
	ListByRecipient(ctx context.Context, email string) ([]*notificationDatamodel.Notification, error)
	CountUnread(ctx context.Context, email string) (int64, error)
	GetByID(ctx context.Context, id string) (*notificationDatamodel.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) (int64, error)
}

// Relay is the outbound mail transport. Enqueue must not block on delivery.
type Relay interface {
	Enqueue(to, subject, html string) error
}

type Service struct {
	repo   RepositoryAPI
	relay  Relay
	logger *slog.Logger
}

// NewService builds the dispatcher. A nil relay means SMTP is not configured
// and notifications are only persisted.
func NewService(repo RepositoryAPI, relay Relay, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		relay:  relay,
		logger: logger,
	}
}

// Send persists the notification and then hands it to the relay. Only the
// persistence step can fail the call.
func (s *Service) Send(ctx context.Context, to, subject, html string, kind Type) (*Notification, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, internal.NewValidationError(noEmailAddress, internal.ErrCodeInvalidEmail)
	}

	n := NewNotification(to, subject, html, kind)
	n.ID = uuid.NewString()

	if err := s.repo.Create(ctx, ToDataModel(n)); err != nil {
		s.logger.Error("Send: failed to persist notification", "error", err, "recipient", to, "type", kind)
		return nil, internal.NewInternalError("failed to persist notification", err)
	}

	if s.relay == nil {
		s.logger.Debug("Send: email relay not configured, notification stored only", "recipient", to, "type", kind)
		return n, nil
	}

	if err := s.relay.Enqueue(to, subject, html); err != nil {
		s.logger.Warn("Send: email relay rejected message",
			"error", internal.NewDownstreamDeliveryError(to, err),
			"notification_id", n.ID)
	}

	return n, nil
}

// SendBulk sends sequentially; one recipient's failure never stops the batch.
func (s *Service) SendBulk(ctx context.Context, recipients []Recipient, kind Type, build Builder) BulkResult {
	result := BulkResult{Errors: []BulkError{}}

	for _, r := range recipients {
		if strings.TrimSpace(r.Email) == "" {
			result.fail("unknown", noEmailAddress)
			continue
		}

		msg := build(r)
		if _, err := s.Send(ctx, r.Email, msg.Subject, msg.HTML, kind); err != nil {
			result.fail(r.Email, err.Error())
			continue
		}
		result.success()
	}

	s.logger.Info("SendBulk: batch finished",
		"type", kind,
		"successful", result.Successful,
		"failed", result.Failed)

	return result
}

func (s *Service) ListForRecipient(ctx context.Context, email string) ([]*Notification, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmailRequired
	}

	rows, err := s.repo.ListByRecipient(ctx, email)
	if err != nil {
		s.logger.Error("ListForRecipient: failed to load notifications", "error", err)
		return nil, internal.NewInternalError("failed to fetch notifications", err)
	}

	out := make([]*Notification, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) UnreadCount(ctx context.Context, email string) (int64, error) {
	if strings.TrimSpace(email) == "" {
		return 0, internal.NewValidationError("Email is required", internal.ErrCodeValidationFailed)
	}

	count, err := s.repo.CountUnread(ctx, email)
	if err != nil {
		s.logger.Error("UnreadCount: failed to count notifications", "error", err)
		return 0, internal.NewInternalError("failed to fetch unread count", err)
	}
	return count, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	if err := s.ensureExists(ctx, id); err != nil {
		return err
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		s.logger.Error("MarkRead: failed to update notification", "error", err, "notification_id", id)
		return internal.NewInternalError("failed to mark as read", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.ensureExists(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Delete: failed to delete notification", "error", err, "notification_id", id)
		return internal.NewInternalError("failed to delete notification", err)
	}
	return nil
}

func (s *Service) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrIDsRequired
	}

	count, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		s.logger.Error("DeleteMany: failed to delete notifications", "error", err, "count", len(ids))
		return 0, internal.NewInternalError("failed to bulk delete notifications", err)
	}
	return count, nil
}

func (s *Service) ensureExists(ctx context.Context, id string) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to load notification", "error", err, "notification_id", id)
		return internal.NewInternalError("failed to load notification", err)
	}
	if row == nil {
		return ErrNotificationNotFound
	}
	return nil
}
