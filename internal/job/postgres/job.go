package postgres

import (
	"context"
	"errors"

	jobDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/job"
	"github.com/frahmantamala/smart-recruiter/internal/job"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

var _ job.RepositoryAPI = (*JobRepository)(nil)

func (r *JobRepository) List(ctx context.Context, status string) ([]*jobDatamodel.Job, error) {
	q := r.db.WithContext(ctx)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var jobs []*jobDatamodel.Job
	err := q.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*jobDatamodel.Job, error) {
	var j jobDatamodel.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&j).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) Create(ctx context.Context, j *jobDatamodel.Job) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *JobRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&jobDatamodel.Job{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *JobRepository) Delete(ctx context.Context, id string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&jobDatamodel.Job{})
	return res.RowsAffected, res.Error
}
