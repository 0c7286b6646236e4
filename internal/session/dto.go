package session

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,applicant_email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Session   *Session  `json:"session"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
