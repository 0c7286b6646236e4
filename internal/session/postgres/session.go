package postgres

import (
	"context"
	"errors"
	"time"

	sessionDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/session"
	"github.com/frahmantamala/smart-recruiter/internal/session"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) session.RepositoryAPI {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) GetUserByEmail(ctx context.Context, email string) (*sessionDatamodel.HRUser, error) {
	var user sessionDatamodel.HRUser
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *SessionRepository) CreateSession(ctx context.Context, s *sessionDatamodel.HRSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionRepository) GetSession(ctx context.Context, id string) (*sessionDatamodel.HRSession, error) {
	var s sessionDatamodel.HRSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) CloseSession(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&sessionDatamodel.HRSession{}).
		Where("id = ? AND logout_time IS NULL", id).
		Update("logout_time", at).Error
}

func (r *SessionRepository) SetActions(ctx context.Context, id string, actions datatypes.JSON) error {
	return r.db.WithContext(ctx).
		Model(&sessionDatamodel.HRSession{}).
		Where("id = ?", id).
		Update("actions", actions).Error
}

func (r *SessionRepository) ListSessions(ctx context.Context) ([]*sessionDatamodel.HRSession, error) {
	var sessions []*sessionDatamodel.HRSession
	err := r.db.WithContext(ctx).Order("login_time DESC").Find(&sessions).Error
	return sessions, err
}
