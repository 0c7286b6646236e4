package applicant

import (
	"time"

	applicantDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/applicant"
)

type Stage string

const (
	StageApplied     Stage = "applied"
	StageShortlisted Stage = "shortlisted"
	StageRecommended Stage = "recommended"
	StageHired       Stage = "hired"
	StageDeclined    Stage = "declined"
	StageWithdrawn   Stage = "withdrawn"
)

// Stages is the funnel order.
var Stages = []Stage{StageApplied, StageShortlisted, StageRecommended, StageHired, StageDeclined, StageWithdrawn}

func (s Stage) Valid() bool {
	for _, st := range Stages {
		if s == st {
			return true
		}
	}
	return false
}

func StageNames() []string {
	out := make([]string, len(Stages))
	for i, s := range Stages {
		out[i] = string(s)
	}
	return out
}

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusArchived
}

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
)

type Applicant struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	JobTitle    *string   `json:"job_title,omitempty"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone"`
	ResumeURL   *string   `json:"resume_url"`
	CoverLetter *string   `json:"cover_letter"`
	Stage       Stage     `json:"stage"`
	Status      Status    `json:"status"`
	AppliedAt   time.Time `json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	OfferSalary      *string      `json:"offer_salary"`
	OfferJoiningDate *string      `json:"offer_joining_date"`
	OfferNotes       *string      `json:"offer_notes"`
	OfferRules       *string      `json:"offer_rules"`
	OfferStatus      *OfferStatus `json:"offer_status"`
	OfferSentAt      *time.Time   `json:"offer_sent_at"`
}

func NewApplicant(jobID, firstName, lastName, email string) *Applicant {
	now := time.Now()
	return &Applicant{
		JobID:     jobID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Stage:     StageApplied,
		Status:    StatusActive,
		AppliedAt: now,
		UpdatedAt: now,
	}
}

// HasOffer reports whether an offer was ever sent.
func (a *Applicant) HasOffer() bool {
	return a.OfferSentAt != nil
}

func (a *Applicant) FullName() string {
	return a.FirstName + " " + a.LastName
}

func (a *Applicant) Title() string {
	if a.JobTitle == nil {
		return ""
	}
	return *a.JobTitle
}

func (a *Applicant) Resume() string {
	if a.ResumeURL == nil {
		return ""
	}
	return *a.ResumeURL
}

func ToDataModel(a *Applicant) *applicantDatamodel.Applicant {
	var offerStatus *string
	if a.OfferStatus != nil {
		s := string(*a.OfferStatus)
		offerStatus = &s
	}
	return &applicantDatamodel.Applicant{
		ID:               a.ID,
		JobID:            a.JobID,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		Phone:            a.Phone,
		ResumeURL:        a.ResumeURL,
		CoverLetter:      a.CoverLetter,
		Stage:            string(a.Stage),
		Status:           string(a.Status),
		AppliedAt:        a.AppliedAt,
		UpdatedAt:        a.UpdatedAt,
		OfferSalary:      a.OfferSalary,
		OfferJoiningDate: a.OfferJoiningDate,
		OfferNotes:       a.OfferNotes,
		OfferRules:       a.OfferRules,
		OfferStatus:      offerStatus,
		OfferSentAt:      a.OfferSentAt,
	}
}

func FromDataModel(a *applicantDatamodel.Applicant) *Applicant {
	var offerStatus *OfferStatus
	if a.OfferStatus != nil && *a.OfferStatus != "" {
		s := OfferStatus(*a.OfferStatus)
		offerStatus = &s
	}
	return &Applicant{
		ID:               a.ID,
		JobID:            a.JobID,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		Phone:            a.Phone,
		ResumeURL:        a.ResumeURL,
		CoverLetter:      a.CoverLetter,
		Stage:            Stage(a.Stage),
		Status:           Status(a.Status),
		AppliedAt:        a.AppliedAt,
		UpdatedAt:        a.UpdatedAt,
		OfferSalary:      a.OfferSalary,
		OfferJoiningDate: a.OfferJoiningDate,
		OfferNotes:       a.OfferNotes,
		OfferRules:       a.OfferRules,
		OfferStatus:      offerStatus,
		OfferSentAt:      a.OfferSentAt,
	}
}

func FromJoined(row *applicantDatamodel.ApplicantWithJob) *Applicant {
	a := FromDataModel(&row.Applicant)
	a.JobTitle = row.JobTitle
	return a
}
