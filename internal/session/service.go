package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal"
	"github.com/frahmantamala/smart-recruiter/internal/core/common/validation"
	sessionDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/session"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type RepositoryAPI interface {
	GetUserByEmail(ctx context.Context, email string) (*sessionDatamodel.HRUser, error)
	CreateSession(ctx context.Context, s *sessionDatamodel.HRSession) error
	GetSession(ctx context.Context, id string) (*sessionDatamodel.HRSession, error)
	CloseSession(ctx context.Context, id string, at time.Time) error
	SetActions(ctx context.Context, id string, actions datatypes.JSON) error
	ListSessions(ctx context.Context) ([]*sessionDatamodel.HRSession, error)
}

type Service struct {
	repo   RepositoryAPI
	tokens TokenGenerator
	logger *slog.Logger
	now    func() time.Time

	// serialises action log read-modify-write
	actionsMu sync.Mutex
}

func NewService(repo RepositoryAPI, tokens TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
		now:    time.Now,
	}
}

// Login checks the password and opens a new session.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if appErr := validation.Struct(req); appErr != nil {
		return nil, appErr
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error("Login: failed to load user", "error", err)
		return nil, internal.NewInternalError("failed to log in", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Info("Login: password mismatch", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		LoginTime: s.now(),
		Actions:   []Action{},
	}
	row, err := ToDataModel(sess)
	if err != nil {
		return nil, internal.NewInternalError("failed to log in", err)
	}
	if err := s.repo.CreateSession(ctx, row); err != nil {
		s.logger.Error("Login: failed to open session", "error", err, "user_id", user.ID)
		return nil, internal.NewInternalError("failed to log in", err)
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(sess.ID, sess.Email)
	if err != nil {
		s.logger.Error("Login: failed to sign token", "error", err, "session_id", sess.ID)
		return nil, internal.NewInternalError("failed to log in", err)
	}

	s.logger.Info("hr session opened", "session_id", sess.ID, "user_id", user.ID)
	return &LoginResponse{Token: token, ExpiresAt: expiresAt, Session: sess}, nil
}

// Authenticate resolves a bearer token to its open session.
func (s *Service) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	sess, err := s.get(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrInvalidToken
	}
	if !sess.Active() {
		return nil, ErrSessionClosed
	}
	return sess, nil
}

// Logout stamps logout_time. The token stops working immediately.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess == nil {
		return ErrInvalidToken
	}
	if !sess.Active() {
		return nil
	}

	if err := s.repo.CloseSession(ctx, sessionID, s.now()); err != nil {
		s.logger.Error("Logout: failed to close session", "error", err, "session_id", sessionID)
		return internal.NewInternalError("failed to log out", err)
	}
	s.logger.Info("hr session closed", "session_id", sessionID)
	return nil
}

// LogAction appends to the action log of the session in ctx. Without an open
// session it does nothing. Failures are logged and never returned.
func (s *Service) LogAction(ctx context.Context, description string) {
	sessionID := internal.SessionIDFromContext(ctx)
	if sessionID == "" {
		return
	}

	s.actionsMu.Lock()
	defer s.actionsMu.Unlock()

	sess, err := s.get(ctx, sessionID)
	if err != nil || sess == nil || !sess.Active() {
		return
	}

	sess.Actions = append(sess.Actions, Action{Description: description, Timestamp: s.now()})
	row, err := ToDataModel(sess)
	if err != nil {
		s.logger.Warn("LogAction: failed to encode action log", "error", err, "session_id", sessionID)
		return
	}
	if err := s.repo.SetActions(ctx, sessionID, row.Actions); err != nil {
		s.logger.Warn("LogAction: failed to store action", "error", err, "session_id", sessionID)
	}
}

// Sessions returns the login history, newest first.
func (s *Service) Sessions(ctx context.Context) ([]*Session, error) {
	rows, err := s.repo.ListSessions(ctx)
	if err != nil {
		s.logger.Error("Sessions: failed to list sessions", "error", err)
		return nil, internal.NewInternalError("failed to fetch sessions", err)
	}

	out := make([]*Session, 0, len(rows))
	for _, row := range rows {
		sess, err := FromDataModel(row)
		if err != nil {
			s.logger.Warn("Sessions: skipping session with unreadable action log", "error", err, "session_id", row.ID)
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}

func (s *Service) get(ctx context.Context, id string) (*Session, error) {
	row, err := s.repo.GetSession(ctx, id)
	if err != nil {
		s.logger.Error("failed to load session", "error", err, "session_id", id)
		return nil, internal.NewInternalError("failed to load session", err)
	}
	if row == nil {
		return nil, nil
	}
	sess, err := FromDataModel(row)
	if err != nil {
		return nil, internal.NewInternalError("failed to load session", err)
	}
	return sess, nil
}

// HashPassword is used by the seeder.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
