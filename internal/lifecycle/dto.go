package lifecycle

import (
	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	"github.com/frahmantamala/smart-recruiter/internal/notification"
)

type StageRequest struct {
	Stage string `json:"stage"`
}

type OfferRequest struct {
	Salary      string  `json:"salary" validate:"required"`
	JoiningDate string  `json:"joining_date" validate:"required"`
	Notes       *string `json:"notes"`
	Rules       *string `json:"rules"`
}

type OfferResponseRequest struct {
	Response string `json:"response"`
}

type SelectionRequest struct {
	ApplicantIDs []string `json:"applicant_ids"`
}

type DecisionRequest struct {
	ApplicantIDs []string `json:"applicant_ids"`
	Reason       string   `json:"reason"`
}

type OfferSentResponse struct {
	Message   string               `json:"message"`
	Applicant *applicant.Applicant `json:"applicant"`
}

type OfferAnsweredResponse struct {
	Message string          `json:"message"`
	Stage   applicant.Stage `json:"stage"`
}

type ItemError struct {
	ApplicantID string `json:"applicant_id"`
	Email       string `json:"email"`
	Error       string `json:"error"`
}

// DecisionResult aggregates a bulk accept or reject.
type DecisionResult struct {
	Message    string      `json:"message"`
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
	Errors     []ItemError `json:"errors"`
}

type MergeResult struct {
	Message    string      `json:"message"`
	MasterID   string      `json:"master_id"`
	Merged     int         `json:"merged"`
	Successful int         `json:"successful"`
	Failed     int         `json:"failed"`
	Errors     []ItemError `json:"errors"`
}

type EmailResult struct {
	Message string `json:"message"`
	notification.BulkResult
}
