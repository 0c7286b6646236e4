package history

type CreateRecordRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required"`
	JobTitle *string `json:"job_title"`
	Status   string  `json:"status" validate:"required,oneof=Accepted Rejected Deactivated"`
	Reason   *string `json:"reason"`
}

type StatusCount struct {
	Status string `json:"status" gorm:"column:status"`
	Count  int64  `json:"count" gorm:"column:count"`
}

type CreatedResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status Status `json:"status"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
