package worker

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/queue"
	worker_handler "github.com/AbhinavSharma486/FixMySociety-sub001/internal/worker/worker-handler"
)

type DLQConfig struct {
	DatabaseName   string
	CollectionName string
	MaxRetryCount  int
	RetryInterval  time.Duration
	BackoffFactor  float64
	BatchSize      int
}

func DefaultDLQConfig() DLQConfig {
	return DLQConfig{
		DatabaseName:   "fixmysociety",
		CollectionName: "engine_dlq",
		MaxRetryCount:  5,
		RetryInterval:  1 * time.Minute,
		BackoffFactor:  2.0,
		BatchSize:      20,
	}
}

type WorkerPool struct {
	Redis      *redis.Client
	Mongo      *mongo.Client
	WorkerNum  int
	JobChannel chan string
	DLQConfig  DLQConfig
	Handler    *worker_handler.WorkerHandler
	wg         sync.WaitGroup
}

func NewWorkerPool(redis *redis.Client, mongo *mongo.Client, workerNum int, handler *worker_handler.WorkerHandler) *WorkerPool {
	return &WorkerPool{
		Redis:      redis,
		Mongo:      mongo,
		WorkerNum:  workerNum,
		JobChannel: make(chan string, 100),
		DLQConfig:  DefaultDLQConfig(),
		Handler:    handler,
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	log.Info().Msgf("Starting worker pool with %d workers", wp.WorkerNum)

	for i := 0; i < wp.WorkerNum; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, i)
	}

	go func() {
		defer close(wp.JobChannel)
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("Stopping worker pool")
				return
			default:
				// lowest score first: priority band, then expiry within it
				result, err := wp.Redis.ZRangeByScore(ctx, queue.QueueKey, &redis.ZRangeBy{
					Min:    "-inf",
					Max:    "+inf",
					Offset: 0,
					Count:  1,
				}).Result()

				if err != nil {
					if err != redis.Nil {
						log.Error().Err(err).Msg("Worker: failed to pop job")
					}
					continue
				}

				if len(result) == 0 {
					time.Sleep(1 * time.Second)
					continue
				}

				payload := result[0]
				wp.Redis.ZRem(ctx, queue.QueueKey, payload)
				wp.JobChannel <- payload
			}
		}
	}()
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	defer wp.wg.Done()
	log.Info().Msgf("Worker %d started", id)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("Worker %d stopping", id)
			return
		case payload, ok := <-wp.JobChannel:
			if !ok {
				return
			}

			var job queue.Job
			if err := json.Unmarshal([]byte(payload), &job); err != nil {
				log.Warn().Err(err).Msgf("Worker %d: Failed to unmarshal job payload", id)
				continue
			}

			// a retried job waits out its backoff before running again
			if job.NotBefore > time.Now().Unix() {
				wp.Redis.ZAdd(ctx, queue.QueueKey, redis.Z{
					Score:  float64(job.Priority)*1e10 + float64(job.ExpireAt),
					Member: payload,
				})
				time.Sleep(500 * time.Millisecond)
				continue
			}

			if err := HandleJob(ctx, job, wp.Handler); err != nil {
				job.Retry++
				job.ErrorMsg = err.Error()

				now := time.Now().Unix()
				if job.Retry >= job.MaxRetry || now > job.ExpireAt {
					log.Error().Str("job_id", job.ID).Msg("Job moved to DLQ")
					dlqBytes, _ := json.Marshal(job)
					wp.Redis.RPush(ctx, queue.DLQKey, dlqBytes)

					sendDLA(job)
				} else {
					// exponential backoff before the next attempt
					delay := time.Duration(5*(1<<job.Retry)) * time.Second
					job.NotBefore = time.Now().Add(delay).Unix()

					jobBytes, _ := json.Marshal(job)
					wp.Redis.ZAdd(ctx, queue.QueueKey, redis.Z{
						Score:  float64(job.Priority)*1e10 + float64(job.ExpireAt),
						Member: jobBytes,
					})
					log.Warn().Str("job_id", job.ID).Msgf("Retrying in %v seconds (%d/%d)", delay.Seconds(), job.Retry, job.MaxRetry)
				}
			}
		}
	}
}

var dlaCache = make(map[string]time.Time)
var dlaMu sync.Mutex

// sendDLA raises one alert per job type per 10 minutes so a burst of
// identical failures does not flood the log.
func sendDLA(job queue.Job) {
	dlaMu.Lock()
	defer dlaMu.Unlock()

	now := time.Now()
	lastAlert, ok := dlaCache[job.Type]
	if ok && now.Sub(lastAlert) < 10*time.Minute {
		return
	}

	log.Error().Str("job_id", job.ID).Str("type", job.Type).Str("error", job.ErrorMsg).Msg("Dead Letter Alert: Job failed permanently")

	dlaCache[job.Type] = now
}

func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
	log.Info().Msg("All workers have stopped")
}
