package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal"
	"github.com/frahmantamala/smart-recruiter/internal/core/common/validation"
	historyDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/history"
	"github.com/google/uuid"
)

type RepositoryAPI interface {
	Create(ctx context.Context, r *historyDatamodel.HistoryRecord) error
	List(ctx context.Context) ([]*historyDatamodel.HistoryRecord, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Record appends one entry. Retried calls append again.
func (s *Service) Record(ctx context.Context, req CreateRecordRequest) (*Record, error) {
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	rec := &Record{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Email:    req.Email,
		JobTitle: req.JobTitle,
		Status:   Status(req.Status),
		Reason:   req.Reason,
		Date:     time.Now(),
	}

	if err := s.repo.Create(ctx, ToDataModel(rec)); err != nil {
		s.logger.Error("Record: failed to create history record", "error", err, "email", req.Email, "status", req.Status)
		return nil, internal.NewInternalError("failed to create history record", err)
	}
	return rec, nil
}

func (s *Service) List(ctx context.Context) ([]*Record, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: failed to fetch history", "error", err)
		return nil, internal.NewInternalError("failed to fetch history", err)
	}
	out := make([]*Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out, nil
}

func (s *Service) Stats(ctx context.Context) ([]StatusCount, error) {
	stats, err := s.repo.CountByStatus(ctx)
	if err != nil {
		s.logger.Error("Stats: failed to count history", "error", err)
		return nil, internal.NewInternalError("failed to fetch stats", err)
	}
	if stats == nil {
		stats = []StatusCount{}
	}
	return stats, nil
}

func (s *Service) ClearAll(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("ClearAll: failed to clear history", "error", err)
		return 0, internal.NewInternalError("failed to clear history", err)
	}
	s.logger.Warn("history cleared", "count", n)
	return n, nil
}
