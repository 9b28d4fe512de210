package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExtractJob represents one table extraction for data transfer between layers.
type ExtractJob struct {
	ID           uuid.UUID  `json:"id"`
	FilePath     string     `json:"file_path"`
	Pages        string     `json:"pages"`
	Mode         string     `json:"mode"`
	Status       string     `json:"status"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	ErrorMessage *string    `json:"error_message,omitempty"`
	PageCount    int        `json:"page_count"`
	RowCount     int        `json:"row_count"`
	ColCount     int        `json:"col_count"`
}
