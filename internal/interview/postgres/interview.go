package postgres

import (
	"context"
	"errors"

	interviewDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/interview"
	"github.com/frahmantamala/smart-recruiter/internal/interview"
	"gorm.io/gorm"
)

type InterviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) interview.RepositoryAPI {
	return &InterviewRepository{db: db}
}

func (r *InterviewRepository) detail(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("interviews AS i").
		Select("i.*, a.first_name, a.last_name, a.email, j.title AS job_title").
		Joins("LEFT JOIN applicants a ON i.applicant_id = a.id").
		Joins("LEFT JOIN jobs j ON i.job_id = j.id")
}

func (r *InterviewRepository) List(ctx context.Context, filter interview.Filter) ([]*interviewDatamodel.InterviewDetail, error) {
	q := r.detail(ctx)
	if filter.ApplicantID != "" {
		q = q.Where("i.applicant_id = ?", filter.ApplicantID)
	}
	if filter.JobID != "" {
		q = q.Where("i.job_id = ?", filter.JobID)
	}
	if filter.Status != "" {
		q = q.Where("i.status = ?", filter.Status)
	}

	var rows []*interviewDatamodel.InterviewDetail
	err := q.Order("i.scheduled_at ASC").Find(&rows).Error
	return rows, err
}

func (r *InterviewRepository) GetByID(ctx context.Context, id string) (*interviewDatamodel.InterviewDetail, error) {
	var row interviewDatamodel.InterviewDetail
	err := r.detail(ctx).Where("i.id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *InterviewRepository) Create(ctx context.Context, i *interviewDatamodel.Interview) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InterviewRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&interviewDatamodel.Interview{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *InterviewRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&interviewDatamodel.Interview{})
	return res.RowsAffected, res.Error
}
