package analytics

import "time"

type StageCount struct {
	Stage string `db:"stage" json:"stage"`
	Count int64  `db:"count" json:"count"`
}

type JobCount struct {
	JobID    string `db:"job_id" json:"job_id"`
	JobTitle string `db:"job_title" json:"job_title"`
	Count    int64  `db:"count" json:"count"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Dashboard keeps the camelCase keys the HR dashboard reads.
type Dashboard struct {
	TotalJobs           int64        `json:"totalJobs"`
	OpenJobs            int64        `json:"openJobs"`
	TotalApplicants     int64        `json:"totalApplicants"`
	RecentApplicants    int64        `json:"recentApplicants"`
	ScheduledInterviews int64        `json:"scheduledInterviews"`
	ApplicantsByStage   []StageCount `json:"applicantsByStage"`
	ApplicantsByJob     []JobCount   `json:"applicantsByJob"`
}

type JobStats struct {
	TotalApplicants   int64        `json:"totalApplicants"`
	ApplicantsByStage []StageCount `json:"applicantsByStage"`
	TotalInterviews   int64        `json:"totalInterviews"`
}

type appliedRow struct {
	AppliedAt time.Time `db:"applied_at"`
}
