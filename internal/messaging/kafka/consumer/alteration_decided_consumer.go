package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-timeconsole/internal/bootstrap"
	"go-timeconsole/internal/events"

	kafkago "github.com/segmentio/kafka-go"
)

// AlterationDecidedAudit records every alteration decision in the audit log.
func AlterationDecidedAudit(audit bootstrap.AuditLogger) HandlerFunc {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.AlterationDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode alteration decided: %v", ErrSkip, err)
		}

		audit.Log(ctx, bootstrap.AuditLog{
			Action:  "ALTERATION_" + event.Status,
			Message: fmt.Sprintf("punch alteration %s %s by %s", event.AlterationID, event.Status, event.ReviewedBy),
			Meta: map[string]any{
				"alteration_id": event.AlterationID,
				"punch_id":      event.PunchID,
				"reviewed_by":   event.ReviewedBy,
				"request_id":    event.RequestID,
				"occurred_at":   event.OccurredAt,
			},
		})
		return nil
	}
}
