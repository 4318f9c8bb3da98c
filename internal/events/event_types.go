package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCakePublished EventType = "cake_published"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CakePublishedPayload payload.
type CakePublishedPayload struct {
	Name  string  `json:"name"`
	Brand string  `json:"brand"`
	Price float64 `json:"price"`
}
