package events

import "time"

const AlterationDecidedTopic = "timeconsole.alteration.decided.v1"

const EventTypeAlterationDecided = "alteration_decided"

type AlterationDecidedEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	AlterationID string    `json:"alteration_id"`
	PunchID      string    `json:"punch_id,omitempty"`
	Status       string    `json:"status"`
	ReviewedBy   string    `json:"reviewed_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
