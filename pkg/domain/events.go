package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter EventType = "step_enter"
	EventClassify  EventType = "classify"
	EventFallback  EventType = "classifier_fallback"
	EventEstimate  EventType = "estimate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent represents landing on a step.
type StepEvent struct {
	EventBase
	StepID   string `json:"step_id"`
	Category string `json:"category,omitempty"`
}

// ClassifyEvent represents a classifier verdict (remote or fallback path).
type ClassifyEvent struct {
	EventBase
	CategoryID string `json:"category_id,omitempty"`
	Confidence string `json:"confidence"`
	Fallback   bool   `json:"fallback,omitempty"`
}

// EstimateEvent represents a completed calculation.
type EstimateEvent struct {
	EventBase
	Category string   `json:"category,omitempty"`
	Result   Estimate `json:"result"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnStepEnter func(context.Context, *StepEvent)
	OnClassify  func(context.Context, *ClassifyEvent)
	OnFallback  func(context.Context, *ClassifyEvent)
	OnEstimate  func(context.Context, *EstimateEvent)
}
