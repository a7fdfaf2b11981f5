package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/queue"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
)

// StartSweepScheduler enqueues a sweep job on a fixed interval. The sweep
// runs through the normal queue so it shares the retry and DLQ machinery.
func (wp *WorkerPool) StartSweepScheduler(ctx context.Context, interval time.Duration, producer queue.Producer) {
	wp.wg.Add(1)
	go func() {
		defer wp.wg.Done()

		log.Info().Dur("interval", interval).Msg("notification sweep scheduler started")
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("notification sweep scheduler stopping")
				return
			case <-ticker.C:
				job := queue.NewJob(queue.JobSweepExpiredNotifs, types.SweepNotificationsPayload{
					RequestedAt: time.Now(),
				}, 3)
				if err := producer.Enqueue(ctx, job); err != nil {
					log.Error().Err(err).Msg("failed to schedule notification sweep")
				}
			}
		}
	}()
}
