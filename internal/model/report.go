package model

import "time"

// Report represents a row in the reports table. Reports are immutable
// once created.
type Report struct {
	ID          int64
	PhotoPath   string
	Location    string
	Description string
	CreatedAt   time.Time
}

// ReportResponse represents a single report in the feed listing.
type ReportResponse struct {
	ID          int64     `json:"id"`
	PhotoPath   string    `json:"photo_path"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
