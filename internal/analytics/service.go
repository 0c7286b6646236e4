package analytics

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal"
	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	"github.com/frahmantamala/smart-recruiter/internal/core/database"
	"github.com/frahmantamala/smart-recruiter/internal/job"
)

const (
	DefaultDays  = 30
	maxDays      = 365
	topJobsLimit = 10
)

var ErrInvalidDays = internal.NewValidationError("days must be a whole number between 1 and 365", internal.ErrCodeValidationFailed)

type Service struct {
	db     database.Querier
	logger *slog.Logger
	now    func() time.Time
}

func NewService(db database.Querier, logger *slog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now()
	d := &Dashboard{}

	counts := []struct {
		dest  *int64
		query string
		args  []interface{}
	}{
		{&d.TotalJobs, `SELECT COUNT(*) FROM jobs`, nil},
		{&d.OpenJobs, `SELECT COUNT(*) FROM jobs WHERE status = ?`, []interface{}{string(job.StatusOpen)}},
		{&d.TotalApplicants, `SELECT COUNT(*) FROM applicants`, nil},
		{&d.RecentApplicants, `SELECT COUNT(*) FROM applicants WHERE applied_at >= ?`, []interface{}{now.AddDate(0, 0, -30)}},
		{&d.ScheduledInterviews, `SELECT COUNT(*) FROM interviews WHERE status = 'scheduled' AND scheduled_at >= ?`, []interface{}{now}},
	}
	for _, c := range counts {
		if err := s.db.Get(ctx, c.dest, c.query, c.args...); err != nil {
			return nil, s.fail("Dashboard", err)
		}
	}

	byStage, err := s.stageCounts(ctx, "")
	if err != nil {
		return nil, s.fail("Dashboard", err)
	}
	d.ApplicantsByStage = byStage

	d.ApplicantsByJob = []JobCount{}
	err = s.db.All(ctx, &d.ApplicantsByJob, `
		SELECT j.id AS job_id, j.title AS job_title, COUNT(a.id) AS count
		FROM jobs j
		LEFT JOIN applicants a ON j.id = a.job_id
		GROUP BY j.id, j.title
		ORDER BY count DESC, j.title ASC
		LIMIT ?`, topJobsLimit)
	if err != nil {
		return nil, s.fail("Dashboard", err)
	}

	return d, nil
}

// ApplicantsByStage returns counts in funnel order.
func (s *Service) ApplicantsByStage(ctx context.Context) ([]StageCount, error) {
	counts, err := s.stageCounts(ctx, "")
	if err != nil {
		return nil, s.fail("ApplicantsByStage", err)
	}
	return counts, nil
}

// ApplicantsOverTime buckets applications per calendar day over the last days days.
func (s *Service) ApplicantsOverTime(ctx context.Context, days int) ([]DayCount, error) {
	if days < 1 || days > maxDays {
		return nil, ErrInvalidDays
	}

	now := s.now()
	y, m, d := now.Date()
	since := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -days)

	var rows []appliedRow
	if err := s.db.All(ctx, &rows, `SELECT applied_at FROM applicants WHERE applied_at >= ?`, since); err != nil {
		return nil, s.fail("ApplicantsOverTime", err)
	}

	buckets := map[string]int64{}
	for _, r := range rows {
		buckets[r.AppliedAt.In(now.Location()).Format("2006-01-02")]++
	}

	out := make([]DayCount, 0, len(buckets))
	for date, count := range buckets {
		out = append(out, DayCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *Service) JobStats(ctx context.Context, jobID string) (*JobStats, error) {
	var id string
	err := s.db.Get(ctx, &id, `SELECT id FROM jobs WHERE id = ?`, jobID)
	if errors.Is(err, database.ErrNoRows) {
		return nil, job.ErrJobNotFound
	}
	if err != nil {
		return nil, s.fail("JobStats", err)
	}

	stats := &JobStats{}
	if err := s.db.Get(ctx, &stats.TotalApplicants, `SELECT COUNT(*) FROM applicants WHERE job_id = ?`, jobID); err != nil {
		return nil, s.fail("JobStats", err)
	}
	if err := s.db.Get(ctx, &stats.TotalInterviews, `SELECT COUNT(*) FROM interviews WHERE job_id = ?`, jobID); err != nil {
		return nil, s.fail("JobStats", err)
	}
	if stats.ApplicantsByStage, err = s.stageCounts(ctx, jobID); err != nil {
		return nil, s.fail("JobStats", err)
	}
	return stats, nil
}

func (s *Service) stageCounts(ctx context.Context, jobID string) ([]StageCount, error) {
	query := `SELECT stage, COUNT(*) AS count FROM applicants`
	var args []interface{}
	if jobID != "" {
		query += ` WHERE job_id = ?`
		args = append(args, jobID)
	}
	query += ` GROUP BY stage`

	counts := []StageCount{}
	if err := s.db.All(ctx, &counts, query, args...); err != nil {
		return nil, err
	}

	rank := make(map[string]int, len(applicant.Stages))
	for i, st := range applicant.Stages {
		rank[string(st)] = i
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return rank[counts[i].Stage] < rank[counts[j].Stage]
	})
	return counts, nil
}

func (s *Service) fail(op string, err error) error {
	s.logger.Error(op+": analytics query failed", "error", err)
	return internal.NewInternalError("failed to fetch analytics", err)
}
