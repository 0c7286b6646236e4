package applicant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal"
	"github.com/frahmantamala/smart-recruiter/internal/core/common/validation"
	applicantDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/applicant"
	jobDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/job"
	"github.com/google/uuid"
)

var (
	ErrApplicantNotFound = internal.NewNotFoundError("Applicant not found", internal.ErrCodeApplicantNotFound)
	ErrApplicantsMissing = internal.NewNotFoundError("No applicants found", internal.ErrCodeApplicantNotFound)
	ErrJobNotFound       = internal.NewNotFoundError("Job not found", internal.ErrCodeJobNotFound)
	ErrJobNotOpen        = internal.NewValidationError("Job is not open for applications", internal.ErrCodeJobNotOpen)
	ErrEmptySelection    = internal.NewValidationError("applicant_ids array is required", internal.ErrCodeEmptySelection)
)

const jobStatusOpen = "open"

type RepositoryAPI interface {
	List(ctx context.Context, filter Filter) ([]*applicantDatamodel.ApplicantWithJob, error)
	GetByID(ctx context.Context, id string) (*applicantDatamodel.ApplicantWithJob, error)
	GetByIDs(ctx context.Context, ids []string) ([]*applicantDatamodel.ApplicantWithJob, error)
	Create(ctx context.Context, a *applicantDatamodel.Applicant) error
	Save(ctx context.Context, a *applicantDatamodel.Applicant) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	UpdateStage(ctx context.Context, ids []string, stage string, at time.Time) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteByJob(ctx context.Context, jobID string) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// JobReader resolves the job an applicant applies to.
type JobReader interface {
	GetByID(ctx context.Context, id string) (*jobDatamodel.Job, error)
}

type Service struct {
	repo   RepositoryAPI
	jobs   JobReader
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, jobs JobReader, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		jobs:   jobs,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Applicant, error) {
	if filter.Stage != "" && !Stage(filter.Stage).Valid() {
		return nil, invalidStage(filter.Stage)
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: failed to fetch applicants", "error", err)
		return nil, internal.NewInternalError("failed to fetch applicants", err)
	}
	return fromRows(rows), nil
}

func (s *Service) ListByJob(ctx context.Context, jobID string) ([]*Applicant, error) {
	return s.List(ctx, Filter{JobID: jobID})
}

func (s *Service) Get(ctx context.Context, id string) (*Applicant, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Get: failed to fetch applicant", "error", err, "applicant_id", id)
		return nil, internal.NewInternalError("failed to fetch applicant", err)
	}
	if row == nil {
		return nil, ErrApplicantNotFound
	}
	return FromJoined(row), nil
}

// GetMany returns the applicants that exist among ids, in the order requested.
func (s *Service) GetMany(ctx context.Context, ids []string) ([]*Applicant, error) {
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}

	rows, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("GetMany: failed to fetch applicants", "error", err, "count", len(ids))
		return nil, internal.NewInternalError("failed to fetch applicants", err)
	}

	byID := make(map[string]*Applicant, len(rows))
	for _, row := range rows {
		byID[row.ID] = FromJoined(row)
	}

	out := make([]*Applicant, 0, len(rows))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if a, ok := byID[id]; ok && !seen[id] {
			out = append(out, a)
			seen[id] = true
		}
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, req CreateApplicantRequest) (*Applicant, error) {
	req.Email = strings.TrimSpace(req.Email)
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	job, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		s.logger.Error("Create: failed to load job", "error", err, "job_id", req.JobID)
		return nil, internal.NewInternalError("failed to create applicant", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}
	if job.Status != jobStatusOpen {
		s.logger.Info("Create: rejected application for job that is not open", "job_id", job.ID, "job_status", job.Status)
		return nil, ErrJobNotOpen
	}

	a := NewApplicant(req.JobID, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), req.Email)
	a.ID = uuid.NewString()
	a.Phone = emptyToNil(req.Phone)
	a.ResumeURL = emptyToNil(req.ResumeURL)
	a.CoverLetter = emptyToNil(req.CoverLetter)

	if err := s.repo.Create(ctx, ToDataModel(a)); err != nil {
		s.logger.Error("Create: failed to insert applicant", "error", err, "job_id", req.JobID)
		return nil, internal.NewInternalError("failed to create applicant", err)
	}

	title := job.Title
	a.JobTitle = &title

	s.logger.Info("applicant created", "applicant_id", a.ID, "job_id", a.JobID)
	return a, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateApplicantRequest) (*Applicant, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	v := validation.NewValidator()
	v.Field("email", req.Email).NotBlank().Email()
	v.Field("first_name", req.FirstName).NotBlank().MaxLength(100)
	v.Field("last_name", req.LastName).NotBlank().MaxLength(100)
	v.Field("stage", req.Stage).OneOf(internal.ErrCodeInvalidStage, StageNames()...)
	v.Field("status", req.Status).OneOf(internal.ErrCodeInvalidStatus, string(StatusActive), string(StatusArchived))
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	fields := map[string]interface{}{}
	set := func(column string, value *string) {
		if value != nil {
			fields[column] = *value
		}
	}
	set("first_name", req.FirstName)
	set("last_name", req.LastName)
	set("email", req.Email)
	set("phone", req.Phone)
	set("resume_url", req.ResumeURL)
	set("cover_letter", req.CoverLetter)
	set("stage", req.Stage)
	set("status", req.Status)

	if len(fields) == 0 {
		return existing, nil
	}
	fields["updated_at"] = time.Now()

	if err := s.repo.Update(ctx, id, fields); err != nil {
		s.logger.Error("Update: failed to update applicant", "error", err, "applicant_id", id)
		return nil, internal.NewInternalError("failed to update applicant", err)
	}

	return s.Get(ctx, id)
}

// Save writes the full record back, refreshing updated_at. Concurrent writers
// follow last-write-wins.
func (s *Service) Save(ctx context.Context, a *Applicant) error {
	a.UpdatedAt = time.Now()
	if err := s.repo.Save(ctx, ToDataModel(a)); err != nil {
		s.logger.Error("Save: failed to persist applicant", "error", err, "applicant_id", a.ID)
		return internal.NewInternalError("failed to update applicant", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to delete applicant", "error", err, "applicant_id", id)
		return internal.NewInternalError("failed to delete applicant", err)
	}
	if n == 0 {
		return ErrApplicantNotFound
	}
	return nil
}

func (s *Service) DeleteByJob(ctx context.Context, jobID string) (int64, error) {
	n, err := s.repo.DeleteByJob(ctx, jobID)
	if err != nil {
		s.logger.Error("DeleteByJob: failed to delete applicants", "error", err, "job_id", jobID)
		return 0, internal.NewInternalError("failed to delete applicants", err)
	}
	return n, nil
}

// DeleteAll is an administrative reset of the applicant pool.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("DeleteAll: failed to delete applicants", "error", err)
		return 0, internal.NewInternalError("failed to delete all applicants", err)
	}
	s.logger.Warn("all applicants deleted", "count", n)
	return n, nil
}

func (s *Service) BulkUpdateStage(ctx context.Context, ids []string, stage string) (int64, error) {
	if len(ids) == 0 || stage == "" {
		return 0, internal.NewValidationError("applicant_ids (array) and stage are required", internal.ErrCodeEmptySelection)
	}
	if !Stage(stage).Valid() {
		return 0, invalidStage(stage)
	}

	n, err := s.repo.UpdateStage(ctx, ids, stage, time.Now())
	if err != nil {
		s.logger.Error("BulkUpdateStage: failed to update applicants", "error", err, "stage", stage)
		return 0, internal.NewInternalError("failed to bulk update applicants", err)
	}
	return n, nil
}

func invalidStage(stage string) *internal.AppError {
	return internal.NewValidationFieldError("stage",
		fmt.Sprintf("invalid stage %q, must be one of: %s", stage, strings.Join(StageNames(), ", ")),
		internal.ErrCodeInvalidStage)
}

func fromRows(rows []*applicantDatamodel.ApplicantWithJob) []*Applicant {
	out := make([]*Applicant, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromJoined(row))
	}
	return out
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
