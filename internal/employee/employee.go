package employee

import (
	"time"

	employeeDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/employee"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID          string    `json:"id"`
	ApplicantID *string   `json:"applicant_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	JobTitle    *string   `json:"job_title"`
	Department  *string   `json:"department"`
	HiredDate   time.Time `json:"hired_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:          e.ID,
		ApplicantID: e.ApplicantID,
		Name:        e.Name,
		Email:       e.Email,
		JobTitle:    e.JobTitle,
		Department:  e.Department,
		HiredDate:   e.HiredDate,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:          e.ID,
		ApplicantID: e.ApplicantID,
		Name:        e.Name,
		Email:       e.Email,
		JobTitle:    e.JobTitle,
		Department:  e.Department,
		HiredDate:   e.HiredDate,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
