package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ExportStatus captures background export job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued     ExportStatus = "QUEUED"
	ExportStatusProcessing ExportStatus = "PROCESSING"
	ExportStatusFinished   ExportStatus = "FINISHED"
	ExportStatusFailed     ExportStatus = "FAILED"
)

// ExportJob is a persisted background schedule-export job. The original
// compose request is stored verbatim as JSONB so the worker can re-run
// the composition without the caller's session.
type ExportJob struct {
	ID           string         `db:"id" json:"id"`
	UserID       string         `db:"user_id" json:"user_id"`
	Format       string         `db:"format" json:"format"`
	OptionSlug   string         `db:"option_slug" json:"option_slug"`
	Request      types.JSONText `db:"request" json:"request"`
	Status       ExportStatus   `db:"status" json:"status"`
	ResultPath   *string        `db:"result_path" json:"result_path,omitempty"`
	ResultURL    *string        `db:"result_url" json:"result_url,omitempty"`
	ErrorMessage *string        `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	FinishedAt   *time.Time     `db:"finished_at" json:"finished_at,omitempty"`
}
