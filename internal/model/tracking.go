package model

import "time"

// DatasetInfo describes a stored table without its rows.
type DatasetInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Source    string    `json:"source"` // "upload", "local", "url"
	Columns   []string  `json:"columns"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StageTiming records how long one pipeline stage took and how many rows it emitted.
type StageTiming struct {
	Stage    string        `json:"stage"` // "substitute", "filter", "aggregate"
	Duration time.Duration `json:"duration"`
	Rows     int           `json:"rows"`
}

// RunSummary is the history entry kept for each aggregation.
type RunSummary struct {
	ID         string    `json:"id"`
	DatasetID  string    `json:"dataset_id"`
	Hierarchy  []string  `json:"hierarchy"`
	Filter     string    `json:"filter"`
	Groups     int       `json:"groups"`
	Total      int       `json:"total"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
