package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	"github.com/frahmantamala/smart-recruiter/internal/core/common/validation"
	"github.com/frahmantamala/smart-recruiter/internal/core/events"
	"github.com/frahmantamala/smart-recruiter/internal/history"
	"github.com/frahmantamala/smart-recruiter/internal/notification"
)

type ApplicantStore interface {
	Get(ctx context.Context, id string) (*applicant.Applicant, error)
	GetMany(ctx context.Context, ids []string) ([]*applicant.Applicant, error)
	Save(ctx context.Context, a *applicant.Applicant) error
	Delete(ctx context.Context, id string) error
}

type Notifier interface {
	Send(ctx context.Context, to, subject, html string, kind notification.Type) (*notification.Notification, error)
	SendBulk(ctx context.Context, recipients []notification.Recipient, kind notification.Type, build notification.Builder) notification.BulkResult
}

type HistoryRecorder interface {
	Record(ctx context.Context, req history.CreateRecordRequest) (*history.Record, error)
}

// AuditLog appends to the acting HR session's action log.
type AuditLog interface {
	LogAction(ctx context.Context, description string)
}

type Deps struct {
	Applicants ApplicantStore
	Notifier   Notifier
	History    HistoryRecorder
	Audit      AuditLog
	Events     events.Publisher
}

type Service struct {
	applicants ApplicantStore
	notifier   Notifier
	history    HistoryRecorder
	audit      AuditLog
	events     events.Publisher
	clientURL  string
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(deps Deps, clientURL string, logger *slog.Logger) *Service {
	return &Service{
		applicants: deps.Applicants,
		notifier:   deps.Notifier,
		history:    deps.History,
		audit:      deps.Audit,
		events:     deps.Events,
		clientURL:  clientURL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) SetStage(ctx context.Context, id, stage string) (*applicant.Applicant, error) {
	a, err := s.applicants.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := a.Stage
	if err := ChangeStage(a, stage); err != nil {
		return nil, err
	}
	if err := s.applicants.Save(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("applicant stage changed", "applicant_id", id, "from", previous, "to", a.Stage)
	s.publish(ctx, events.NewStageChangedEvent(a.ID, string(a.Stage)))
	s.logAction(ctx, fmt.Sprintf("Moved %s to %s", a.FullName(), a.Stage))
	return a, nil
}

// SendOffer stores the offer and notifies the candidate. A failed notification
// is logged and the offer stays recorded.
func (s *Service) SendOffer(ctx context.Context, id string, req OfferRequest) (*applicant.Applicant, error) {
	a, err := s.applicants.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	IssueOffer(a, Offer{
		Salary:      req.Salary,
		JoiningDate: req.JoiningDate,
		Notes:       req.Notes,
		Rules:       req.Rules,
	}, s.now())
	if err := s.applicants.Save(ctx, a); err != nil {
		return nil, err
	}

	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}
	msg := notification.OfferEmail(s.clientURL, recipientOf(a), notification.OfferDetails{
		Salary:      req.Salary,
		JoiningDate: req.JoiningDate,
		Notes:       notes,
	})
	if _, err := s.notifier.Send(ctx, a.Email, msg.Subject, msg.HTML, notification.TypeOffer); err != nil {
		s.logger.Error("SendOffer: failed to send offer email", "error", err, "applicant_id", id)
	}

	s.logger.Info("offer sent", "applicant_id", id)
	s.publish(ctx, events.NewOfferSentEvent(a.ID, a.Email, req.Salary, req.JoiningDate))
	s.logAction(ctx, fmt.Sprintf("Sent offer to %s", a.FullName()))
	return a, nil
}

// RespondToOffer records the candidate's answer. Creating the employee and the
// history entry are separate calls made by the client.
func (s *Service) RespondToOffer(ctx context.Context, id, response string) (applicant.Stage, error) {
	answer, err := ParseResponse(response)
	if err != nil {
		return "", err
	}

	a, err := s.applicants.Get(ctx, id)
	if err != nil {
		return "", err
	}

	stage, err := AnswerOffer(a, answer)
	if err != nil {
		s.logger.Info("RespondToOffer: rejected", "applicant_id", id, "reason", err.Error())
		return "", err
	}
	if err := s.applicants.Save(ctx, a); err != nil {
		return "", err
	}

	s.logger.Info("offer answered", "applicant_id", id, "response", answer, "stage", stage)
	s.publish(ctx, events.NewOfferRespondedEvent(a.ID, string(answer), string(stage)))
	return stage, nil
}

func (s *Service) BulkAccept(ctx context.Context, ids []string, reason string) (*DecisionResult, error) {
	return s.decide(ctx, ids, reason, decision{
		label:   "accepted",
		kind:    notification.TypeAcceptance,
		build:   notification.AcceptanceEmail,
		outcome: history.StatusAccepted,
	})
}

func (s *Service) BulkReject(ctx context.Context, ids []string, reason string) (*DecisionResult, error) {
	return s.decide(ctx, ids, reason, decision{
		label:   "rejected",
		kind:    notification.TypeRejection,
		build:   notification.RejectionEmail,
		outcome: history.StatusRejected,
	})
}

type decision struct {
	label   string
	kind    notification.Type
	build   notification.Builder
	outcome history.Status
}

// decide processes each id on its own: email, history, then removal. An
// applicant is removed only when both the email and the history entry were
// stored, so a failed one can be retried. There is no transaction around the
// loop.
func (s *Service) decide(ctx context.Context, ids []string, reason string, d decision) (*DecisionResult, error) {
	if len(ids) == 0 {
		return nil, applicant.ErrEmptySelection
	}

	result := &DecisionResult{Errors: []ItemError{}}
	fail := func(id, email string, err error) {
		result.Failed++
		result.Errors = append(result.Errors, ItemError{ApplicantID: id, Email: email, Error: err.Error()})
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	for _, id := range ids {
		a, err := s.applicants.Get(ctx, id)
		if err != nil {
			fail(id, "unknown", err)
			continue
		}

		msg := d.build(recipientOf(a))
		_, sendErr := s.notifier.Send(ctx, a.Email, msg.Subject, msg.HTML, d.kind)
		if sendErr != nil {
			s.logger.Warn("bulk decision email failed", "error", sendErr, "applicant_id", id, "decision", d.label)
		}

		var jobTitle *string
		if t := a.Title(); t != "" {
			jobTitle = &t
		}
		_, histErr := s.history.Record(ctx, history.CreateRecordRequest{
			Name:     a.FullName(),
			Email:    a.Email,
			JobTitle: jobTitle,
			Status:   string(d.outcome),
			Reason:   reasonPtr,
		})
		if histErr != nil {
			s.logger.Warn("bulk decision history write failed", "error", histErr, "applicant_id", id, "decision", d.label)
		}

		switch {
		case sendErr != nil:
			fail(id, a.Email, sendErr)
			continue
		case histErr != nil:
			fail(id, a.Email, histErr)
			continue
		}

		if err := s.applicants.Delete(ctx, id); err != nil {
			fail(id, a.Email, err)
			continue
		}
		result.Successful++
	}

	result.Message = fmt.Sprintf("%d applicant(s) %s, %d failed", result.Successful, d.label, result.Failed)
	s.logger.Info("bulk decision finished", "decision", d.label, "successful", result.Successful, "failed", result.Failed)
	s.publish(ctx, events.NewBulkDecidedEvent(d.label, result.Successful, result.Failed))
	s.logAction(ctx, fmt.Sprintf("Bulk %s %d applicant(s)", d.label, result.Successful))
	return result, nil
}

// Merge keeps the first applicant and discards the rest after warning each one.
// Fields are not reconciled.
func (s *Service) Merge(ctx context.Context, ids []string) (*MergeResult, error) {
	if len(ids) < 2 {
		return nil, ErrMergeSelection
	}

	master, err := s.applicants.Get(ctx, ids[0])
	if err != nil {
		return nil, err
	}

	result := &MergeResult{MasterID: master.ID, Errors: []ItemError{}}
	var discarded []string

	for _, id := range ids[1:] {
		if id == master.ID {
			continue
		}

		a, err := s.applicants.Get(ctx, id)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ItemError{ApplicantID: id, Email: "unknown", Error: err.Error()})
			continue
		}

		msg := notification.DuplicateWarningEmail(recipientOf(a))
		_, sendErr := s.notifier.Send(ctx, a.Email, msg.Subject, msg.HTML, notification.TypeDuplicateWarning)
		if sendErr != nil {
			s.logger.Warn("merge warning email failed", "error", sendErr, "applicant_id", id)
		}

		if err := s.applicants.Delete(ctx, id); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ItemError{ApplicantID: id, Email: a.Email, Error: err.Error()})
			continue
		}
		result.Merged++
		discarded = append(discarded, id)

		if sendErr != nil {
			result.Failed++
			result.Errors = append(result.Errors, ItemError{ApplicantID: id, Email: a.Email, Error: sendErr.Error()})
			continue
		}
		result.Successful++
	}

	result.Message = fmt.Sprintf("Merged %d duplicate(s) into %s", result.Merged, master.FullName())
	s.logger.Info("applicants merged", "master_id", master.ID, "merged", result.Merged, "failed", result.Failed)
	s.publish(ctx, events.NewMergedEvent(master.ID, discarded))
	s.logAction(ctx, fmt.Sprintf("Merged %d duplicate(s) into %s", result.Merged, master.FullName()))
	return result, nil
}

func (s *Service) SendBulkAcceptance(ctx context.Context, ids []string) (*EmailResult, error) {
	return s.sendEmails(ctx, ids, notification.TypeAcceptance, notification.AcceptanceEmail, false, "Sent %d acceptance emails")
}

func (s *Service) SendBulkRejection(ctx context.Context, ids []string) (*EmailResult, error) {
	return s.sendEmails(ctx, ids, notification.TypeRejection, notification.RejectionEmail, false, "Sent %d rejection emails")
}

// SendDuplicateWarning sends once per distinct email among the selection.
func (s *Service) SendDuplicateWarning(ctx context.Context, ids []string) (*EmailResult, error) {
	return s.sendEmails(ctx, ids, notification.TypeDuplicateWarning, notification.DuplicateWarningEmail, true, "Sent %d duplicate warning emails")
}

func (s *Service) SendIdentityWarning(ctx context.Context, ids []string) (*EmailResult, error) {
	return s.sendEmails(ctx, ids, notification.TypeIdentityWarning, notification.IdentityWarningEmail, false, "Sent %d identity mismatch warnings")
}

func (s *Service) sendEmails(ctx context.Context, ids []string, kind notification.Type, build notification.Builder, dedupe bool, format string) (*EmailResult, error) {
	applicants, err := s.applicants.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(applicants) == 0 {
		return nil, applicant.ErrApplicantsMissing
	}
	if dedupe {
		applicants = uniqueByEmail(applicants)
	}

	bulk := s.notifier.SendBulk(ctx, recipientsOf(applicants), kind, build)
	s.logAction(ctx, fmt.Sprintf("Sent %d %s email(s)", bulk.Successful, kind))

	return &EmailResult{
		Message:    fmt.Sprintf(format, bulk.Successful),
		BulkResult: bulk,
	}, nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish lifecycle event", "error", err, "event_type", event.EventType())
	}
}

func (s *Service) logAction(ctx context.Context, description string) {
	if s.audit == nil {
		return
	}
	s.audit.LogAction(ctx, description)
}
