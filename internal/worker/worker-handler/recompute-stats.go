package worker_handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dispatch"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/websocket"
)

// HandleRecomputeStats rebuilds the dashboard snapshot from source
// records and pushes the result to the admin room. Snapshots are full
// replacements so a stale one is corrected by the next trigger.
func (wh *WorkerHandler) HandleRecomputeStats(ctx context.Context, raw json.RawMessage) error {
	var payload types.RecomputeStatsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid recompute payload: %w", err)
	}

	snapshot, appErr := wh.Stats.Recompute(ctx)
	if appErr != nil {
		return fmt.Errorf("stats recompute failed: %s", appErr.Message)
	}

	wh.Pusher.Push(websocket.AdminRoom, websocket.Event{
		EventID:   dispatch.NewEventID(dispatch.EventStatsSnapshot, "stats"),
		Type:      dispatch.EventStatsSnapshot,
		EntityID:  "stats",
		Data:      map[string]any{"snapshot": snapshot},
		EmittedAt: time.Now(),
	})

	log.Debug().
		Str("trigger_event", payload.TriggerEventID).
		Str("trigger_type", payload.TriggerType).
		Int64("total_complaints", snapshot.TotalComplaints).
		Msg("stats snapshot recomputed")
	return nil
}
