package worker_handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dispatch"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/entity"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
)

// HandleRetractBroadcast cascade-deletes the broadcast's notification
// records and dispatches the retraction so affected residents drop the
// announcement from their view.
func (wh *WorkerHandler) HandleRetractBroadcast(ctx context.Context, raw json.RawMessage) error {
	var payload types.RetractBroadcastPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid retraction payload: %w", err)
	}

	recipients, appErr := wh.Notifications.RetractBroadcast(ctx, payload.BroadcastID)
	if appErr != nil {
		return fmt.Errorf("broadcast retraction failed: %s", appErr.Message)
	}

	wh.Dispatcher.Dispatch(ctx, dispatch.DomainEvent{
		Type:        dispatch.EventBroadcastRemoved,
		EntityID:    payload.BroadcastID,
		ActorID:     payload.AdminID,
		ActorRole:   entity.RoleAdmin,
		Message:     "An announcement was withdrawn",
		Recipients:  recipients,
		BroadcastID: payload.BroadcastID,
	})

	log.Info().
		Str("broadcast_id", payload.BroadcastID).
		Int("recipients", len(recipients)).
		Msg("broadcast retracted")
	return nil
}
