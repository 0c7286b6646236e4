package history

import (
	"time"

	historyDatamodel "github.com/frahmantamala/smart-recruiter/internal/core/datamodel/history"
)

type Status string

const (
	StatusAccepted    Status = "Accepted"
	StatusRejected    Status = "Rejected"
	StatusDeactivated Status = "Deactivated"
)

// Record is an immutable decision entry. There is no update path.
type Record struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JobTitle *string   `json:"job_title"`
	Status   Status    `json:"status"`
	Reason   *string   `json:"reason"`
	Date     time.Time `json:"date"`
}

func ToDataModel(r *Record) *historyDatamodel.HistoryRecord {
	return &historyDatamodel.HistoryRecord{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		JobTitle: r.JobTitle,
		Status:   string(r.Status),
		Reason:   r.Reason,
		Date:     r.Date,
	}
}

func FromDataModel(r *historyDatamodel.HistoryRecord) *Record {
	return &Record{
		ID:       r.ID,
		Name:     r.Name,
		Email:    r.Email,
		JobTitle: r.JobTitle,
		Status:   Status(r.Status),
		Reason:   r.Reason,
		Date:     r.Date,
	}
}
