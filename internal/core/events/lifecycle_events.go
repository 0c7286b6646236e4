package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeStageChanged   = "applicant.stage_changed"
	EventTypeOfferSent      = "applicant.offer_sent"
	EventTypeOfferResponded = "applicant.offer_responded"
	EventTypeBulkDecided    = "applicant.bulk_decided"
	EventTypeMerged         = "applicant.merged"
	EventTypeJobClosed      = "job.closed"
)

// LifecycleEventTypes lists every event the recruiting workflow emits.
var LifecycleEventTypes = []string{
	EventTypeStageChanged,
	EventTypeOfferSent,
	EventTypeOfferResponded,
	EventTypeBulkDecided,
	EventTypeMerged,
	EventTypeJobClosed,
}

func newBase(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// NewEvent builds an untyped lifecycle event, used by the CLI publisher.
func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return newBase(eventType, data)
}

type StageChangedEvent struct {
	BaseEvent
	ApplicantID string `json:"applicant_id"`
	Stage       string `json:"stage"`
}

func NewStageChangedEvent(applicantID, stage string) *StageChangedEvent {
	return &StageChangedEvent{
		BaseEvent: newBase(EventTypeStageChanged, map[string]interface{}{
			"applicant_id": applicantID,
			"stage":        stage,
		}),
		ApplicantID: applicantID,
		Stage:       stage,
	}
}

type OfferSentEvent struct {
	BaseEvent
	ApplicantID string `json:"applicant_id"`
	Email       string `json:"email"`
	Salary      string `json:"salary"`
	JoiningDate string `json:"joining_date"`
}

func NewOfferSentEvent(applicantID, email, salary, joiningDate string) *OfferSentEvent {
	return &OfferSentEvent{
		BaseEvent: newBase(EventTypeOfferSent, map[string]interface{}{
			"applicant_id": applicantID,
			"email":        email,
			"salary":       salary,
			"joining_date": joiningDate,
		}),
		ApplicantID: applicantID,
		Email:       email,
		Salary:      salary,
		JoiningDate: joiningDate,
	}
}

type OfferRespondedEvent struct {
	BaseEvent
	ApplicantID string `json:"applicant_id"`
	Response    string `json:"response"`
	Stage       string `json:"stage"`
}

func NewOfferRespondedEvent(applicantID, response, stage string) *OfferRespondedEvent {
	return &OfferRespondedEvent{
		BaseEvent: newBase(EventTypeOfferResponded, map[string]interface{}{
			"applicant_id": applicantID,
			"response":     response,
			"stage":        stage,
		}),
		ApplicantID: applicantID,
		Response:    response,
		Stage:       stage,
	}
}

type BulkDecidedEvent struct {
	BaseEvent
	Decision   string `json:"decision"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
}

func NewBulkDecidedEvent(decision string, successful, failed int) *BulkDecidedEvent {
	return &BulkDecidedEvent{
		BaseEvent: newBase(EventTypeBulkDecided, map[string]interface{}{
			"decision":   decision,
			"successful": successful,
			"failed":     failed,
		}),
		Decision:   decision,
		Successful: successful,
		Failed:     failed,
	}
}

type MergedEvent struct {
	BaseEvent
	MasterID     string   `json:"master_id"`
	DiscardedIDs []string `json:"discarded_ids"`
}

func NewMergedEvent(masterID string, discarded []string) *MergedEvent {
	return &MergedEvent{
		BaseEvent: newBase(EventTypeMerged, map[string]interface{}{
			"master_id":     masterID,
			"discarded_ids": discarded,
		}),
		MasterID:     masterID,
		DiscardedIDs: discarded,
	}
}

type JobClosedEvent struct {
	BaseEvent
	JobID      string `json:"job_id"`
	Title      string `json:"title"`
	Applicants int    `json:"applicants"`
}

func NewJobClosedEvent(jobID, title string, applicants int) *JobClosedEvent {
	return &JobClosedEvent{
		BaseEvent: newBase(EventTypeJobClosed, map[string]interface{}{
			"job_id":     jobID,
			"title":      title,
			"applicants": applicants,
		}),
		JobID:      jobID,
		Title:      title,
		Applicants: applicants,
	}
}
