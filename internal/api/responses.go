package api

import (
	"github.com/charliek/logview/internal/domain"
	"github.com/charliek/logview/internal/listener"
)

// StatusResponse represents the response for GET /api/v1/status
type StatusResponse struct {
	Records      int      `json:"records"`
	Received     int64    `json:"received"`
	FramingDrops int64    `json:"framing_drops"`
	DecodeDrops  int64    `json:"decode_drops"`
	Columns      []string `json:"columns"`
	APIVersion   string   `json:"api_version"`
}

// LogsResponse represents the response for GET /api/v1/logs
type LogsResponse struct {
	Logs          []RecordResponse `json:"logs"`
	FilteredCount int              `json:"filtered_count"`
	TotalCount    int              `json:"total_count"`
}

// RecordResponse represents a single record in responses. Created is
// rendered with the same UTC display format the viewer uses.
type RecordResponse struct {
	Created   string         `json:"created"`
	LevelName string         `json:"levelname"`
	Name      string         `json:"name"`
	Msg       string         `json:"msg"`
	Extra     map[string]any `json:"extra,omitempty"`
}

// FieldResponse represents the response for GET /api/v1/records/{row}/{field}
type FieldResponse struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToRecordResponse converts a domain record to its API representation
func ToRecordResponse(rec domain.Record) RecordResponse {
	return RecordResponse{
		Created:   rec.FormatCreated(),
		LevelName: rec.LevelName,
		Name:      rec.Name,
		Msg:       rec.Msg,
		Extra:     rec.Extra,
	}
}

// ToStatusResponse builds a status response from store and listener state
func ToStatusResponse(records int, stats listener.Stats) StatusResponse {
	return StatusResponse{
		Records:      records,
		Received:     stats.Received,
		FramingDrops: stats.FramingDrops,
		DecodeDrops:  stats.DecodeDrops,
		Columns:      domain.Columns(),
		APIVersion:   "v1",
	}
}
