package interview

type Filter struct {
	ApplicantID string
	JobID       string
	Status      string
}

type CreateInterviewRequest struct {
	ApplicantID string  `json:"applicant_id" validate:"required"`
	JobID       string  `json:"job_id" validate:"required"`
	ScheduledAt string  `json:"scheduled_at" validate:"required"`
	Type        string  `json:"type" validate:"omitempty,oneof=online in-person phone"`
	MeetingLink *string `json:"meeting_link"`
	Notes       *string `json:"notes"`
}

type UpdateInterviewRequest struct {
	ScheduledAt *string `json:"scheduled_at"`
	Type        *string `json:"type"`
	MeetingLink *string `json:"meeting_link"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status"`
}
