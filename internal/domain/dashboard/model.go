package dashboard

import "time"

// Stats is an aggregate, read-only snapshot of a user's workspace.
type Stats struct {
	TotalProjects        int       `json:"total_projects"`
	TotalClips           int       `json:"total_clips"`
	ReadyClips           int       `json:"ready_clips"`
	ProcessingClips      int       `json:"processing_clips"`
	FailedClips          int       `json:"failed_clips"`
	TotalDurationSeconds float64   `json:"total_duration_seconds"`
	AverageViralScore    *float64  `json:"average_viral_score,omitempty"`
	GeneratedAt          time.Time `json:"generated_at"`
}
