package job

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal"
	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	"github.com/frahmantamala/smart-recruiter/internal/core/common/validation"
	jobDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/job"
	"github.com/frahmantamala/smart-recruiter/internal/core/events"
	"github.com/frahmantamala/smart-recruiter/internal/notification"
	"github.com/google/uuid"
)

var ErrJobNotFound = internal.NewNotFoundError("Job not found", internal.ErrCodeJobNotFound)

type RepositoryAPI interface {
	List(ctx context.Context, status string) ([]*jobDatamodel.Job, error)
	GetByID(ctx context.Context, id string) (*jobDatamodel.Job, error)
	Create(ctx context.Context, j *jobDatamodel.Job) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) (int64, error)
}

// ApplicantStore is the part of the applicant store a job closure touches.
type ApplicantStore interface {
	ListByJob(ctx context.Context, jobID string) ([]*applicant.Applicant, error)
	DeleteByJob(ctx context.Context, jobID string) (int64, error)
}

type BulkNotifier interface {
	SendBulk(ctx context.Context, recipients []notification.Recipient, kind notification.Type, build notification.Builder) notification.BulkResult
}

type Service struct {
	repo       RepositoryAPI
	applicants ApplicantStore
	notifier   BulkNotifier
	events     events.Publisher
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, applicants ApplicantStore, notifier BulkNotifier, publisher events.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		applicants: applicants,
		notifier:   notifier,
		events:     publisher,
		logger:     logger,
	}
}

func (s *Service) List(ctx context.Context, status string) ([]*Job, error) {
	v := validation.NewValidator()
	v.Field("status", status).OneOf(internal.ErrCodeInvalidStatus, StatusNames()...)
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	rows, err := s.repo.List(ctx, status)
	if err != nil {
		s.logger.Error("List: failed to fetch jobs", "error", err)
		return nil, internal.NewInternalError("failed to fetch jobs", err)
	}

	jobs := make([]*Job, 0, len(rows))
	for _, row := range rows {
		jobs = append(jobs, FromDataModel(row))
	}
	return jobs, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Job, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Get: failed to fetch job", "error", err, "job_id", id)
		return nil, internal.NewInternalError("failed to fetch job", err)
	}
	if row == nil {
		return nil, ErrJobNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, req CreateJobRequest) (*Job, error) {
	req.Title = strings.TrimSpace(req.Title)
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	status := StatusOpen
	if req.Status != "" {
		status = Status(req.Status)
	}

	now := time.Now()
	j := &Job{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Department:   req.Department,
		Location:     req.Location,
		Type:         req.Type,
		Description:  req.Description,
		Requirements: req.Requirements,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, ToDataModel(j)); err != nil {
		s.logger.Error("Create: failed to insert job", "error", err)
		return nil, internal.NewInternalError("failed to create job", err)
	}

	s.logger.Info("job created", "job_id", j.ID, "status", j.Status)
	return j, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateJobRequest) (*Job, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	v := validation.NewValidator()
	if req.Title != nil {
		v.Field("title", req.Title).Required().MaxLength(200)
	}
	v.Field("status", req.Status).OneOf(internal.ErrCodeInvalidStatus, StatusNames()...)
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	fields := map[string]interface{}{}
	set := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}
	set("title", req.Title)
	set("department", req.Department)
	set("location", req.Location)
	set("type", req.Type)
	set("description", req.Description)
	set("requirements", req.Requirements)
	set("status", req.Status)

	if len(fields) == 0 {
		return existing, nil
	}
	fields["updated_at"] = time.Now()

	if err := s.repo.Update(ctx, id, fields); err != nil {
		s.logger.Error("Update: failed to update job", "error", err, "job_id", id)
		return nil, internal.NewInternalError("failed to update job", err)
	}
	return s.Get(ctx, id)
}

// Delete closes a job: its applicants are told the position is gone, then the
// job and its applicants are removed. Failed closure emails do not stop the delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	j, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	applicants, err := s.applicants.ListByJob(ctx, id)
	if err != nil {
		return err
	}

	if len(applicants) > 0 {
		recipients := make([]notification.Recipient, 0, len(applicants))
		for _, a := range applicants {
			recipients = append(recipients, notification.Recipient{
				ApplicantID: a.ID,
				Email:       a.Email,
				FirstName:   a.FirstName,
				LastName:    a.LastName,
				JobTitle:    j.Title,
				AppliedAt:   a.AppliedAt,
			})
		}
		result := s.notifier.SendBulk(ctx, recipients, notification.TypeJobClosed, notification.JobClosedEmail(j.Title))
		s.logger.Info("job closure emails sent", "job_id", id, "successful", result.Successful, "failed", result.Failed)
	}

	if _, err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Delete: failed to delete job", "error", err, "job_id", id)
		return internal.NewInternalError("failed to delete job", err)
	}
	if _, err := s.applicants.DeleteByJob(ctx, id); err != nil {
		return err
	}

	s.logger.Info("job deleted", "job_id", id, "applicants_removed", len(applicants))
	if s.events != nil {
		if err := s.events.Publish(ctx, events.NewJobClosedEvent(id, j.Title, len(applicants))); err != nil {
			s.logger.Warn("failed to publish job closed event", "error", err, "job_id", id)
		}
	}
	return nil
}
