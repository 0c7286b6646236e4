package interview

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal"
	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	"github.com/frahmantamala/smart-recruiter/internal/core/common/validation"
	interviewDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/interview"
	"github.com/frahmantamala/smart-recruiter/internal/job"
	"github.com/google/uuid"
)

var ErrInterviewNotFound = internal.NewNotFoundError("Interview not found", internal.ErrCodeInterviewNotFound)

// scheduleLayouts are tried in order; the last one is what a datetime-local input sends.
var scheduleLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"}

type RepositoryAPI interface {
	List(ctx context.Context, filter Filter) ([]*interviewDatamodel.InterviewDetail, error)
	GetByID(ctx context.Context, id string) (*interviewDatamodel.InterviewDetail, error)
	Create(ctx context.Context, i *interviewDatamodel.Interview) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) (int64, error)
}

type ApplicantLookup interface {
	Get(ctx context.Context, id string) (*applicant.Applicant, error)
}

type JobLookup interface {
	Get(ctx context.Context, id string) (*job.Job, error)
}

type Service struct {
	repo       RepositoryAPI
	applicants ApplicantLookup
	jobs       JobLookup
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, applicants ApplicantLookup, jobs JobLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		applicants: applicants,
		jobs:       jobs,
		logger:     logger,
	}
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Interview, error) {
	v := validation.NewValidator()
	v.Field("status", filter.Status).OneOf(internal.ErrCodeInvalidStatus, StatusNames()...)
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: failed to fetch interviews", "error", err)
		return nil, internal.NewInternalError("failed to fetch interviews", err)
	}

	out := make([]*Interview, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Interview, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Get: failed to fetch interview", "error", err, "interview_id", id)
		return nil, internal.NewInternalError("failed to fetch interview", err)
	}
	if row == nil {
		return nil, ErrInterviewNotFound
	}
	return FromDataModel(row), nil
}

func (s *Service) Create(ctx context.Context, req CreateInterviewRequest) (*Interview, error) {
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}
	scheduledAt, appErr := parseSchedule(req.ScheduledAt)
	if appErr != nil {
		return nil, appErr
	}

	if _, err := s.applicants.Get(ctx, req.ApplicantID); err != nil {
		return nil, err
	}
	if _, err := s.jobs.Get(ctx, req.JobID); err != nil {
		return nil, err
	}

	kind := TypeOnline
	if req.Type != "" {
		kind = Type(req.Type)
	}

	now := time.Now()
	i := &Interview{
		ID:          uuid.NewString(),
		ApplicantID: req.ApplicantID,
		JobID:       req.JobID,
		ScheduledAt: scheduledAt,
		Type:        kind,
		MeetingLink: req.MeetingLink,
		Notes:       req.Notes,
		Status:      StatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, ToDataModel(i)); err != nil {
		s.logger.Error("Create: failed to insert interview", "error", err, "applicant_id", req.ApplicantID)
		return nil, internal.NewInternalError("failed to create interview", err)
	}

	s.logger.Info("interview scheduled", "interview_id", i.ID, "applicant_id", i.ApplicantID, "scheduled_at", i.ScheduledAt)
	return s.Get(ctx, i.ID)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateInterviewRequest) (*Interview, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	v := validation.NewValidator()
	v.Field("type", req.Type).OneOf(internal.ErrCodeValidationFailed, TypeNames()...)
	v.Field("status", req.Status).OneOf(internal.ErrCodeInvalidStatus, StatusNames()...)
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	fields := map[string]interface{}{}
	if req.ScheduledAt != nil {
		at, appErr := parseSchedule(*req.ScheduledAt)
		if appErr != nil {
			return nil, appErr
		}
		fields["scheduled_at"] = at
	}
	set := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}
	set("type", req.Type)
	set("meeting_link", req.MeetingLink)
	set("notes", req.Notes)
	set("status", req.Status)

	if len(fields) == 0 {
		return existing, nil
	}
	fields["updated_at"] = time.Now()

	if err := s.repo.Update(ctx, id, fields); err != nil {
		s.logger.Error("Update: failed to update interview", "error", err, "interview_id", id)
		return nil, internal.NewInternalError("failed to update interview", err)
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to delete interview", "error", err, "interview_id", id)
		return internal.NewInternalError("failed to delete interview", err)
	}
	if n == 0 {
		return ErrInterviewNotFound
	}
	return nil
}

func parseSchedule(value string) (time.Time, *internal.AppError) {
	for _, layout := range scheduleLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, internal.NewValidationFieldError("scheduled_at",
		"scheduled_at must be an ISO-8601 date time", internal.ErrCodeValidationFailed)
}
