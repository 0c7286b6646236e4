package job

import (
	"time"

	jobDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/job"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusDraft  Status = "draft"
)

func StatusNames() []string {
	return []string{string(StatusOpen), string(StatusClosed), string(StatusDraft)}
}

type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Department   *string   `json:"department"`
	Location     *string   `json:"location"`
	Type         *string   `json:"type"`
	Description  *string   `json:"description"`
	Requirements *string   `json:"requirements"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (j *Job) IsOpen() bool {
	return j.Status == StatusOpen
}

func ToDataModel(j *Job) *jobDatamodel.Job {
	return &jobDatamodel.Job{
		ID:           j.ID,
		Title:        j.Title,
		Department:   j.Department,
		Location:     j.Location,
		Type:         j.Type,
		Description:  j.Description,
		Requirements: j.Requirements,
		Status:       string(j.Status),
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func FromDataModel(j *jobDatamodel.Job) *Job {
	return &Job{
		ID:           j.ID,
		Title:        j.Title,
		Department:   j.Department,
		Location:     j.Location,
		Type:         j.Type,
		Description:  j.Description,
		Requirements: j.Requirements,
		Status:       Status(j.Status),
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}
