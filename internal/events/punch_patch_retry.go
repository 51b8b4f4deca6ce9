package events

import "time"

const PunchPatchRetryTopic = "timeconsole.punch.patch.retry.v1"

const EventTypePunchPatchRetry = "punch_patch_retry"

// PunchPatchRetryEvent asks the consumer to re-apply an approved
// alteration whose punch update failed.
type PunchPatchRetryEvent struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id"`
	AlterationID string    `json:"alteration_id"`
	PunchID      string    `json:"punch_id"`
	Reason       string    `json:"reason"`
	OccurredAt   time.Time `json:"occurred_at"`
}
