package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	applicantDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/applicant"
	"gorm.io/gorm"
)

const joinedColumns = "a.*, j.title AS job_title"

type ApplicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) applicant.RepositoryAPI {
	return &ApplicantRepository{db: db}
}

func (r *ApplicantRepository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("applicants AS a").
		Select(joinedColumns).
		Joins("LEFT JOIN jobs j ON a.job_id = j.id")
}

func (r *ApplicantRepository) List(ctx context.Context, filter applicant.Filter) ([]*applicantDatamodel.ApplicantWithJob, error) {
	q := r.joined(ctx)
	if filter.Email != "" {
		q = q.Where("a.email = ?", filter.Email)
	}
	if filter.JobID != "" {
		q = q.Where("a.job_id = ?", filter.JobID)
	}
	if filter.Stage != "" {
		q = q.Where("a.stage = ?", filter.Stage)
	}
	if filter.Status != "" {
		q = q.Where("a.status = ?", filter.Status)
	}

	var rows []*applicantDatamodel.ApplicantWithJob
	err := q.Order("a.applied_at DESC").Find(&rows).Error
	return rows, err
}

func (r *ApplicantRepository) GetByID(ctx context.Context, id string) (*applicantDatamodel.ApplicantWithJob, error) {
	var row applicantDatamodel.ApplicantWithJob
	err := r.joined(ctx).Where("a.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *ApplicantRepository) GetByIDs(ctx context.Context, ids []string) ([]*applicantDatamodel.ApplicantWithJob, error) {
	var rows []*applicantDatamodel.ApplicantWithJob
	err := r.joined(ctx).Where("a.id IN ?", ids).Find(&rows).Error
	return rows, err
}

func (r *ApplicantRepository) Create(ctx context.Context, a *applicantDatamodel.Applicant) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicantRepository) Save(ctx context.Context, a *applicantDatamodel.Applicant) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicantRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&applicantDatamodel.Applicant{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *ApplicantRepository) UpdateStage(ctx context.Context, ids []string, stage string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&applicantDatamodel.Applicant{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"stage": stage, "updated_at": at})
	return res.RowsAffected, res.Error
}

func (r *ApplicantRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&applicantDatamodel.Applicant{})
	return res.RowsAffected, res.Error
}

func (r *ApplicantRepository) DeleteByJob(ctx context.Context, jobID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("job_id = ?", jobID).Delete(&applicantDatamodel.Applicant{})
	return res.RowsAffected, res.Error
}

func (r *ApplicantRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&applicantDatamodel.Applicant{})
	return res.RowsAffected, res.Error
}
