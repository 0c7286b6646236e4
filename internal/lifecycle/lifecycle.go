package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/frahmantamala/smart-recruiter/internal"
	"github.com/frahmantamala/smart-recruiter/internal/applicant"
	"github.com/frahmantamala/smart-recruiter/internal/notification"
)

var (
	ErrNoOfferSent     = internal.NewInvalidStateError("No offer found for this candidate", internal.ErrCodeNoOfferSent)
	ErrInvalidResponse = internal.NewValidationError(`Response must be "accepted" or "rejected"`, internal.ErrCodeInvalidResponse)
	ErrMergeSelection  = internal.NewValidationError("At least two applicant ids are required to merge", internal.ErrCodeMergeSelection)
)

// Offer holds the terms HR sends with an offer.
type Offer struct {
	Salary      string
	JoiningDate string
	Notes       *string
	Rules       *string
}

// ChangeStage writes any valid stage regardless of the current one so HR can
// correct mistakes.
func ChangeStage(a *applicant.Applicant, stage string) error {
	st := applicant.Stage(stage)
	if !st.Valid() {
		return internal.NewValidationFieldError("stage",
			fmt.Sprintf("stage must be one of: %s", strings.Join(applicant.StageNames(), ", ")),
			internal.ErrCodeInvalidStage)
	}
	a.Stage = st
	return nil
}

// IssueOffer records the terms and puts the offer in pending. Stage is not touched.
// Sending again replaces the previous terms.
func IssueOffer(a *applicant.Applicant, offer Offer, now time.Time) {
	pending := applicant.OfferPending
	sentAt := now

	a.OfferSalary = &offer.Salary
	a.OfferJoiningDate = &offer.JoiningDate
	a.OfferNotes = offer.Notes
	a.OfferRules = offer.Rules
	a.OfferStatus = &pending
	a.OfferSentAt = &sentAt
}

// ParseResponse accepts only "accepted" or "rejected".
func ParseResponse(response string) (applicant.OfferStatus, error) {
	switch applicant.OfferStatus(response) {
	case applicant.OfferAccepted:
		return applicant.OfferAccepted, nil
	case applicant.OfferRejected:
		return applicant.OfferRejected, nil
	}
	return "", ErrInvalidResponse
}

// AnswerOffer moves a pending offer to its final state and forces the matching
// stage. The applicant is left untouched on error.
func AnswerOffer(a *applicant.Applicant, response applicant.OfferStatus) (applicant.Stage, error) {
	if !a.HasOffer() {
		return "", ErrNoOfferSent
	}
	if a.OfferStatus != nil && *a.OfferStatus != applicant.OfferPending {
		return "", internal.NewInvalidStateError(
			fmt.Sprintf("Offer has already been %s", *a.OfferStatus),
			internal.ErrCodeOfferAnswered)
	}

	stage := applicant.StageDeclined
	if response == applicant.OfferAccepted {
		stage = applicant.StageHired
	}

	status := response
	a.OfferStatus = &status
	a.Stage = stage
	return stage, nil
}

func recipientOf(a *applicant.Applicant) notification.Recipient {
	return notification.Recipient{
		ApplicantID: a.ID,
		Email:       a.Email,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		JobTitle:    a.Title(),
		AppliedAt:   a.AppliedAt,
	}
}

func recipientsOf(applicants []*applicant.Applicant) []notification.Recipient {
	out := make([]notification.Recipient, 0, len(applicants))
	for _, a := range applicants {
		out = append(out, recipientOf(a))
	}
	return out
}

// uniqueByEmail keeps the first applicant per exact email.
func uniqueByEmail(applicants []*applicant.Applicant) []*applicant.Applicant {
	seen := make(map[string]bool, len(applicants))
	out := make([]*applicant.Applicant, 0, len(applicants))
	for _, a := range applicants {
		if seen[a.Email] {
			continue
		}
		seen[a.Email] = true
		out = append(out, a)
	}
	return out
}
