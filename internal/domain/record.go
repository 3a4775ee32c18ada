package domain

import "time"

// Column names for the display projection, in render order.
const (
	ColumnCreated   = "created"
	ColumnLevelName = "levelname"
	ColumnName      = "name"
	ColumnMsg       = "msg"
)

// Columns returns the display column names in their fixed order.
func Columns() []string {
	return []string{ColumnCreated, ColumnLevelName, ColumnName, ColumnMsg}
}

// Record represents a single decoded log event received over the wire.
// Created is kept as the raw float seconds-since-epoch value and only
// rendered to a string when read for display.
type Record struct {
	Created   float64 `json:"created"`
	LevelName string  `json:"levelname"`
	Name      string  `json:"name"`
	Msg       string  `json:"msg"`

	// Extra holds any additional scalar fields present in the decoded
	// payload (pid, thread, filename, lineno, ...). Preserved but not
	// part of the display projection.
	Extra map[string]any `json:"extra,omitempty"`
}

// createdLayout is the display format for the created timestamp.
const createdLayout = "2006-01-02 15:04:05"

// FormatCreated renders the raw created timestamp as an UTC string with
// second precision.
func (r Record) FormatCreated() string {
	return FormatTimestamp(r.Created)
}

// FormatTimestamp renders a float seconds-since-epoch value as
// "YYYY-MM-DD HH:MM:SS" in UTC.
func FormatTimestamp(seconds float64) string {
	sec := int64(seconds)
	nsec := int64((seconds - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC().Format(createdLayout)
}

// CreatedTime returns the created timestamp as a time.Time in UTC.
func (r Record) CreatedTime() time.Time {
	sec := int64(r.Created)
	nsec := int64((r.Created - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}
