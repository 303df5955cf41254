package models

import (
	"encoding/json"
	"time"
)

// Tool arguments. Defaults are applied before the JSON payload is decoded,
// so an explicit zero stays zero and is rejected by validation.

type SeriesArgs struct {
	Prices Prices `json:"prices" validate:"required"`
}

// Points returns the length of the input series.
func (a *SeriesArgs) Points() int { return len(a.Prices) }

type RSIArgs struct {
	SeriesArgs
	Period int `json:"period" default:"14"`
}

type MACDArgs struct {
	SeriesArgs
	Fast   int `json:"fast" default:"12"`
	Slow   int `json:"slow" default:"26"`
	Signal int `json:"signal" default:"9"`
}

type EMAArgs struct {
	SeriesArgs
	Period int `json:"period" default:"10"`
}

type SMAArgs struct {
	SeriesArgs
	Period int `json:"period" default:"10"`
}

type BBandsArgs struct {
	SeriesArgs
	Period   int     `json:"period" default:"20"`
	UpperDev float64 `json:"upper_dev" default:"2.0"`
	LowerDev float64 `json:"lower_dev" default:"2.0"`
}

// CallRequest is the body of POST /call.
type CallRequest struct {
	Name      string          `json:"name" validate:"required"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolDescriptor describes a tool for listings.
type ToolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolCallEvent is the audit record emitted for every tool invocation.
type ToolCallEvent struct {
	Tool       string    `json:"tool"`
	Status     string    `json:"status"` // "ok", "invalid", "error"
	Points     int       `json:"points"`
	Cached     bool      `json:"cached"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
