package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventLoad       EventType = "load"
	EventSave       EventType = "save"
	EventDestroy    EventType = "destroy"
	EventRegenerate EventType = "regenerate"
)

// StoreEvent describes a completed store operation.
type StoreEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	Type       EventType `json:"type"`
	SessionID  string    `json:"session_id"`
	StorageKey string    `json:"storage_key"`

	// Found is only meaningful for EventLoad.
	Found bool `json:"found,omitempty"`

	// NewSessionID is only set for EventRegenerate.
	NewSessionID string `json:"new_session_id,omitempty"`
}

// LifecycleHooks defines callbacks for store observability.
// Hooks run synchronously on the calling goroutine, after the adapter succeeded.
type LifecycleHooks struct {
	OnLoad       func(context.Context, *StoreEvent)
	OnSave       func(context.Context, *StoreEvent)
	OnDestroy    func(context.Context, *StoreEvent)
	OnRegenerate func(context.Context, *StoreEvent)
}
