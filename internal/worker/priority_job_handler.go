package worker

import (
	"context"
	"fmt"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/queue"
	worker_handler "github.com/AbhinavSharma486/FixMySociety-sub001/internal/worker/worker-handler"
)

func HandleJob(ctx context.Context, job queue.Job, wh *worker_handler.WorkerHandler) error {
	switch job.Type {
	case queue.JobRecomputeStats:
		return wh.HandleRecomputeStats(ctx, job.Payload)
	case queue.JobMaterializeNotifs:
		return wh.HandleMaterializeNotifications(ctx, job.Payload)
	case queue.JobRetractBroadcast:
		return wh.HandleRetractBroadcast(ctx, job.Payload)
	case queue.JobSweepExpiredNotifs:
		return wh.HandleSweepNotifications(ctx, job.Payload)
	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}
