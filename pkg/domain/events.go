package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPatternGenerated EventType = "pattern_generated"
	EventPatternCached    EventType = "pattern_cached"
	EventPatternFailed    EventType = "pattern_failed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// PatternEvent describes one generation request as seen by the generator.
type PatternEvent struct {
	EventBase
	Key      string        `json:"key"`
	Stitch   string        `json:"stitch"`
	Rows     int           `json:"rows,omitempty"`
	Warnings int           `json:"warnings,omitempty"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for generator observability.
// Every field is optional.
type LifecycleHooks struct {
	OnGenerate func(context.Context, *PatternEvent)
	OnCacheHit func(context.Context, *PatternEvent)
	OnError    func(context.Context, *PatternEvent)
}
