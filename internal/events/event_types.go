package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered     EventType = "user_registered"
	EventReportCreated      EventType = "report_created"
	EventDiagnosisRequested EventType = "diagnosis_requested"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// New builds an event with a fresh id and timestamp.
func New(eventType EventType, userID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ReportCreatedPayload payload.
type ReportCreatedPayload struct {
	ReportID string `json:"report_id"`
}

// DiagnosisRequestedPayload payload.
type DiagnosisRequestedPayload struct {
	SymptomCount int    `json:"symptom_count"`
	TopDisease   string `json:"top_disease"`
}
