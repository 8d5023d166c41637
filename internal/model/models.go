package model

import (
	"strings"
	"time"
)

// AggregateRecord is one distinct value combination across the hierarchy path.
type AggregateRecord struct {
	Values     []string `json:"values"`
	Count      int      `json:"count"`
	Percentage float64  `json:"percentage"`
}

// Label is the innermost value of the combination.
func (r AggregateRecord) Label() string {
	if len(r.Values) == 0 {
		return ""
	}
	return r.Values[len(r.Values)-1]
}

// Key joins the values with a unit separator so it cannot collide with cell text.
func (r AggregateRecord) Key() string {
	return strings.Join(r.Values, "\x1f")
}

// ExportResult represents the result of an export operation
type ExportResult struct {
	Type        string    `json:"type"` // "csv", "json", "xlsx", "yaml"
	Path        string    `json:"path"`
	RecordCount int       `json:"record_count"`
	Success     bool      `json:"success"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Message levels shown above the chart.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
)

// Message is a user-visible notice produced instead of, or alongside, a chart.
type Message struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// Info builds an informational message.
func Info(text string) Message {
	return Message{Level: LevelInfo, Text: text}
}

// Warning builds a warning message.
func Warning(text string) Message {
	return Message{Level: LevelWarning, Text: text}
}
