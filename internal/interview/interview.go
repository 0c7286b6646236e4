package interview

import (
	"strings"
	"time"

	interviewDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/interview"
)

type Type string

const (
	TypeOnline   Type = "online"
	TypeInPerson Type = "in-person"
	TypePhone    Type = "phone"
)

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

func TypeNames() []string {
	return []string{string(TypeOnline), string(TypeInPerson), string(TypePhone)}
}

func StatusNames() []string {
	return []string{string(StatusScheduled), string(StatusCompleted), string(StatusCancelled), string(StatusRescheduled)}
}

type Interview struct {
	ID             string    `json:"id"`
	ApplicantID    string    `json:"applicant_id"`
	JobID          string    `json:"job_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Type           Type      `json:"type"`
	MeetingLink    *string   `json:"meeting_link"`
	Notes          *string   `json:"notes"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	ApplicantName  string    `json:"applicant_name,omitempty"`
	ApplicantEmail string    `json:"applicant_email,omitempty"`
	JobTitle       string    `json:"job_title,omitempty"`
}

func ToDataModel(i *Interview) *interviewDatamodel.Interview {
	return &interviewDatamodel.Interview{
		ID:          i.ID,
		ApplicantID: i.ApplicantID,
		JobID:       i.JobID,
		ScheduledAt: i.ScheduledAt,
		Type:        string(i.Type),
		MeetingLink: i.MeetingLink,
		Notes:       i.Notes,
		Status:      string(i.Status),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func FromDataModel(d *interviewDatamodel.InterviewDetail) *Interview {
	i := &Interview{
		ID:          d.ID,
		ApplicantID: d.ApplicantID,
		JobID:       d.JobID,
		ScheduledAt: d.ScheduledAt,
		Type:        Type(d.Type),
		MeetingLink: d.MeetingLink,
		Notes:       d.Notes,
		Status:      Status(d.Status),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.FirstName != nil || d.LastName != nil {
		i.ApplicantName = strings.TrimSpace(deref(d.FirstName) + " " + deref(d.LastName))
	}
	i.ApplicantEmail = deref(d.Email)
	i.JobTitle = deref(d.JobTitle)
	return i
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
