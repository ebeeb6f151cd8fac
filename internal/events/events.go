// Package events carries the SSE stream the desktop shell listens on.
package events

import (
	"encoding/json"
	"time"
)

// Event types published by the engine.
const (
	TypeJobAdded        = "job_added"
	TypeScrapeStarted   = "scrape_started"
	TypeScrapeFinished  = "scrape_finished"
	TypeScrapeCancelled = "scrape_cancelled"
	TypeSalaryEstimated = "salary_estimated"
	TypePing            = "ping"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent serializes an event envelope. Marshal errors are swallowed
// on purpose: every payload we publish is a plain struct.
func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
