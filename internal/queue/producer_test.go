package queue

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
)

func newTestProducer(t *testing.T) (Producer, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewProducer(client), client
}

func TestEnqueue_StoresJobInPriorityOrder(t *testing.T) {
	producer, client := newTestProducer(t)
	ctx := context.Background()

	low := NewJob(JobSweepExpiredNotifs, types.SweepNotificationsPayload{}, 1)
	high := NewJob(JobRecomputeStats, types.RecomputeStatsPayload{TriggerType: "status_changed"}, 0)

	require.NoError(t, producer.Enqueue(ctx, low))
	require.NoError(t, producer.Enqueue(ctx, high))

	members, err := client.ZRangeByScore(ctx, QueueKey, &redis.ZRangeBy{Min: "-inf", Max: "+inf"}).Result()
	require.NoError(t, err)
	require.Len(t, members, 2)

	var first Job
	require.NoError(t, json.Unmarshal([]byte(members[0]), &first))
	assert.Equal(t, JobRecomputeStats, first.Type, "lower priority score should be dequeued first")
}

func TestNewJob_Defaults(t *testing.T) {
	job := NewJob(JobRetractBroadcast, types.RetractBroadcastPayload{BroadcastID: "b1"}, 2)

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, JobRetractBroadcast, job.Type)
	assert.Equal(t, 3, job.MaxRetry)
	assert.Greater(t, job.ExpireAt, job.CreatedAt)

	var payload types.RetractBroadcastPayload
	require.NoError(t, json.Unmarshal(job.Payload, &payload))
	assert.Equal(t, "b1", payload.BroadcastID)
}
