package dto

import "time"

// ExportJobView reports the lifecycle state of a background export job.
// DownloadURL is populated once rendering finished.
type ExportJobView struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	Format      string     `json:"format"`
	Option      string     `json:"option"`
	DownloadURL *string    `json:"download_url,omitempty"`
	Error       *string    `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}
