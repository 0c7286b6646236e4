package session

import (
	"encoding/json"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal"
	sessionDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/session"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/datatypes"
)

var (
	ErrInvalidCredentials = internal.NewUnauthorizedError("Invalid email or password", internal.ErrCodeInvalidCredentials)
	ErrInvalidToken       = internal.NewUnauthorizedError("Invalid token", internal.ErrCodeInvalidToken)
	ErrTokenExpired       = internal.NewUnauthorizedError("Token expired", internal.ErrCodeTokenExpired)
	ErrSessionClosed      = internal.NewUnauthorizedError("Session has been logged out", internal.ErrCodeSessionClosed)
)

// Action is one entry of a session's action log.
type Action struct {
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Session is one HR login, from login to logout.
type Session struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	LoginTime  time.Time  `json:"login_time"`
	LogoutTime *time.Time `json:"logout_time"`
	Actions    []Action   `json:"actions"`
}

func (s *Session) Active() bool {
	return s.LogoutTime == nil
}

// Claims carry the session id; the user is resolved through the session row.
type Claims struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

func ToDataModel(s *Session) (*sessionDatamodel.HRSession, error) {
	actions := s.Actions
	if actions == nil {
		actions = []Action{}
	}
	raw, err := json.Marshal(actions)
	if err != nil {
		return nil, err
	}
	return &sessionDatamodel.HRSession{
		ID:         s.ID,
		UserID:     s.UserID,
		Email:      s.Email,
		Name:       s.Name,
		LoginTime:  s.LoginTime,
		LogoutTime: s.LogoutTime,
		Actions:    datatypes.JSON(raw),
	}, nil
}

func FromDataModel(row *sessionDatamodel.HRSession) (*Session, error) {
	s := &Session{
		ID:         row.ID,
		UserID:     row.UserID,
		Email:      row.Email,
		Name:       row.Name,
		LoginTime:  row.LoginTime,
		LogoutTime: row.LogoutTime,
		Actions:    []Action{},
	}
	if len(row.Actions) > 0 {
		if err := json.Unmarshal(row.Actions, &s.Actions); err != nil {
			return nil, err
		}
	}
	return s, nil
}
