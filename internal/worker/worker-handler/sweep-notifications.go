package worker_handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
)

func (wh *WorkerHandler) HandleSweepNotifications(ctx context.Context, raw json.RawMessage) error {
	var payload types.SweepNotificationsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invalid sweep payload: %w", err)
	}

	removed, appErr := wh.Notifications.SweepExpired(ctx)
	if appErr != nil {
		return fmt.Errorf("notification sweep failed: %s", appErr.Message)
	}

	log.Info().Int64("removed", removed).Msg("expired notifications swept")
	return nil
}
