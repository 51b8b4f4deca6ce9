package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-timeconsole/internal/events"
	"go-timeconsole/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
)

// PunchPatchReapplier is satisfied by alteration.Service.
type PunchPatchReapplier interface {
	ReapplyPunchPatch(ctx context.Context, id string) error
}

// PunchPatchRetry re-applies the punch patch of an approved alteration.
// Failures that cannot heal on redelivery, such as a missing or no longer
// approved alteration, are skipped.
func PunchPatchRetry(svc PunchPatchReapplier) HandlerFunc {
	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.PunchPatchRetryEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode punch patch retry: %v", ErrSkip, err)
		}
		if event.AlterationID == "" {
			return fmt.Errorf("%w: punch patch retry without alteration id", ErrSkip)
		}

		err := svc.ReapplyPunchPatch(ctx, event.AlterationID)
		if err != nil && !apperror.IsRetryable(err) {
			return fmt.Errorf("%w: alteration %s: %v", ErrSkip, event.AlterationID, err)
		}
		return err
	}
}
