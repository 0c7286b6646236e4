package postgres

import (
	"context"

	historyDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/history"
	"github.com/frahmantamala/smart-recruiter/internal/history"
	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) history.RepositoryAPI {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, rec *historyDatamodel.HistoryRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *HistoryRepository) List(ctx context.Context) ([]*historyDatamodel.HistoryRecord, error) {
	var rows []*historyDatamodel.HistoryRecord
	err := r.db.WithContext(ctx).Order("date DESC").Find(&rows).Error
	return rows, err
}

func (r *HistoryRepository) CountByStatus(ctx context.Context) ([]history.StatusCount, error) {
	var stats []history.StatusCount
	err := r.db.WithContext(ctx).
		Model(&historyDatamodel.HistoryRecord{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&stats).Error
	return stats, err
}

func (r *HistoryRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&historyDatamodel.HistoryRecord{})
	return res.RowsAffected, res.Error
}
