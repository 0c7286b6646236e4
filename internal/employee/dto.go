package employee

type CreateEmployeeRequest struct {
	ApplicantID *string `json:"applicant_id"`
	Name        string  `json:"name" validate:"required"`
	Email       string  `json:"email" validate:"required,applicant_email"`
	JobTitle    *string `json:"job_title"`
	Department  *string `json:"department"`
	HiredDate   *string `json:"hired_date"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

type UpdateEmployeeRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	JobTitle   *string `json:"job_title"`
	Department *string `json:"department"`
	HiredDate  *string `json:"hired_date"`
	Status     *string `json:"status"`
}

type DeactivateRequest struct {
	Reason string `json:"reason"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
