package job

type CreateJobRequest struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Department   *string `json:"department"`
	Location     *string `json:"location"`
	Type         *string `json:"type"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Status       string  `json:"status" validate:"omitempty,oneof=open closed draft"`
}

type UpdateJobRequest struct {
	Title        *string `json:"title"`
	Department   *string `json:"department"`
	Location     *string `json:"location"`
	Type         *string `json:"type"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	Status       *string `json:"status"`
}
