package worker_handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/websocket"
)

// HandleMaterializeNotifications writes the durable per-recipient
// records for one fan-out event, then tells each recipient's sockets to
// refresh their notification list. The direct push deliberately bypasses
// the dispatcher: the originating event already went through it.
func (wh *WorkerHandler) HandleMaterializeNotifications(ctx context.Context, raw json.RawMessage) error {
	var payload types.MaterializeNotificationsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid materialize payload: %w", err)
	}

	created, appErr := wh.Notifications.MaterializeForRecipients(ctx, payload)
	if appErr != nil {
		return fmt.Errorf("notification materialization failed: %s", appErr.Message)
	}

	for _, n := range created {
		wh.Pusher.Push(websocket.RoomForUser(n.RecipientID), websocket.Event{
			EventID:     fmt.Sprintf("%s:notification:%s", payload.EventID, n.RecipientID),
			Type:        "notification_created",
			EntityID:    n.ID.Hex(),
			RecipientID: n.RecipientID,
			Data: map[string]any{
				"notificationType": n.Type,
				"message":          n.Message,
				"relatedEntityId":  n.RelatedEntityID,
			},
			EmittedAt: time.Now(),
		})
	}

	log.Debug().
		Str("event_id", payload.EventID).
		Int("recipients", len(payload.Recipients)).
		Int("created", len(created)).
		Msg("notifications materialized")
	return nil
}
