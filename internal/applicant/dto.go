package applicant

type Filter struct {
	JobID  string
	Stage  string
	Status string
	Email  string
}

type CreateApplicantRequest struct {
	JobID       string  `json:"job_id" validate:"required"`
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	Email       string  `json:"email" validate:"required,applicant_email"`
	Phone       *string `json:"phone"`
	ResumeURL   *string `json:"resume_url"`
	CoverLetter *string `json:"cover_letter"`
}

// UpdateApplicantRequest only touches fields that are present in the body.
type UpdateApplicantRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	ResumeURL   *string `json:"resume_url"`
	CoverLetter *string `json:"cover_letter"`
	Stage       *string `json:"stage"`
	Status      *string `json:"status"`
}

type BulkUpdateStageRequest struct {
	ApplicantIDs []string `json:"applicant_ids"`
	Stage        string   `json:"stage"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
