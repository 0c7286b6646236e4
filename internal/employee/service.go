package employee

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal"
	"github.com/frahmantamala/smart-recruiter/internal/core/common/validation"
	employeeDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/employee"
	"github.com/frahmantamala/smart-recruiter/internal/history"
	"github.com/google/uuid"
)

var (
	ErrEmployeeNotFound = internal.NewNotFoundError("Employee not found", internal.ErrCodeEmployeeNotFound)
	ErrEmployeeExists   = internal.NewValidationError("Employee with this email already exists", internal.ErrCodeEmployeeExists)
)

type RepositoryAPI interface {
	List(ctx context.Context) ([]*employeeDatamodel.Employee, error)
	GetByID(ctx context.Context, id string) (*employeeDatamodel.Employee, error)
	GetByEmail(ctx context.Context, email string) (*employeeDatamodel.Employee, error)
	Create(ctx context.Context, e *employeeDatamodel.Employee) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type HistoryRecorder interface {
	Record(ctx context.Context, req history.CreateRecordRequest) (*history.Record, error)
}

type Service struct {
	repo    RepositoryAPI
	history HistoryRecorder
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, historyRecorder HistoryRecorder, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		history: historyRecorder,
		logger:  logger,
	}
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to fetch employees", "error", err)
		return nil, internal.NewInternalError("failed to fetch employees", err)
	}
	out := make([]*Employee, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

// Create onboards an employee; an email can be onboarded once.
func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (*Employee, error) {
	req.Email = strings.TrimSpace(req.Email)
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	hired := time.Now()
	if req.HiredDate != nil && *req.HiredDate != "" {
		d, appErr := parseDate(*req.HiredDate)
		if appErr != nil {
			return nil, appErr
		}
		hired = d
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Create: failed to check existing employee", "error", err)
		return nil, internal.NewInternalError("failed to create employee", err)
	}
	if existing != nil {
		return nil, ErrEmployeeExists
	}

	status := StatusActive
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}

	e := &Employee{
		ID:          uuid.NewString(),
		ApplicantID: req.ApplicantID,
		Name:        req.Name,
		Email:       req.Email,
		JobTitle:    req.JobTitle,
		Department:  req.Department,
		HiredDate:   hired,
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, ToDataModel(e)); err != nil {
		s.logger.Error("Create: failed to insert employee", "error", err, "email", req.Email)
		return nil, internal.NewInternalError("failed to create employee", err)
	}

	s.logger.Info("employee onboarded", "employee_id", e.ID, "email", e.Email)
	return e, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (*Employee, error) {
	current, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	v := validation.NewValidator()
	v.Field("name", req.Name).MaxLength(200)
	v.Field("email", req.Email).Email()
	v.Field("status", req.Status).OneOf(internal.ErrCodeInvalidStatus, StatusActive, StatusInactive)
	if appErr := v.Validate(); appErr != nil {
		return nil, appErr
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil && *req.Email != current.Email {
		other, err := s.repo.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, internal.NewInternalError("failed to update employee", err)
		}
		if other != nil {
			return nil, ErrEmployeeExists
		}
		fields["email"] = *req.Email
	}
	if req.JobTitle != nil {
		fields["job_title"] = *req.JobTitle
	}
	if req.Department != nil {
		fields["department"] = *req.Department
	}
	if req.HiredDate != nil {
		d, appErr := parseDate(*req.HiredDate)
		if appErr != nil {
			return nil, appErr
		}
		fields["hired_date"] = d
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if len(fields) == 0 {
		return current, nil
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		s.logger.Error("Update: failed to update employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("failed to update employee", err)
	}
	return s.get(ctx, id)
}

// Deactivate writes the Deactivated history entry first and only then removes
// the employee. A failed history write leaves the employee in place.
func (s *Service) Deactivate(ctx context.Context, id, reason string) error {
	e, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}
	if _, err := s.history.Record(ctx, history.CreateRecordRequest{
		Name:     e.Name,
		Email:    e.Email,
		JobTitle: e.JobTitle,
		Status:   string(history.StatusDeactivated),
		Reason:   reasonPtr,
	}); err != nil {
		s.logger.Error("Deactivate: failed to record history", "error", err, "employee_id", id)
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("Deactivate: failed to delete employee", "error", err, "employee_id", id)
		return internal.NewInternalError("failed to remove employee", err)
	}

	s.logger.Info("employee deactivated", "employee_id", id)
	return nil
}

func (s *Service) get(ctx context.Context, id string) (*Employee, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to fetch employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError("failed to fetch employee", err)
	}
	if row == nil {
		return nil, ErrEmployeeNotFound
	}
	return FromDataModel(row), nil
}

func parseDate(s string) (time.Time, *internal.AppError) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, internal.NewValidationFieldError("hired_date", "hired_date must be a date (YYYY-MM-DD)", internal.ErrCodeValidationFailed)
}
