package dispatch

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dedupe"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/queue"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/websocket"
)

type recordingPusher struct {
	mu     sync.Mutex
	pushes []struct {
		Room  string
		Event websocket.Event
	}
}

func (p *recordingPusher) Push(room string, ev websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, struct {
		Room  string
		Event websocket.Event
	}{room, ev})
}

func (p *recordingPusher) rooms() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var rooms []string
	for _, push := range p.pushes {
		rooms = append(rooms, push.Room)
	}
	return rooms
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *recordingPusher, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	pusher := &recordingPusher{}
	d := NewDispatcher(pusher, dedupe.New(10*time.Second, 1000), queue.NewProducer(client))
	return d, pusher, client
}

func drainQueue(t *testing.T, client *redis.Client) []queue.Job {
	t.Helper()
	members, err := client.ZRangeByScore(context.Background(), queue.QueueKey, &redis.ZRangeBy{Min: "-inf", Max: "+inf"}).Result()
	require.NoError(t, err)
	jobs := make([]queue.Job, 0, len(members))
	for _, m := range members {
		var job queue.Job
		require.NoError(t, json.Unmarshal([]byte(m), &job))
		jobs = append(jobs, job)
	}
	return jobs
}

func TestDispatch_ComplaintEventRoomsAndStatsJob(t *testing.T) {
	d, pusher, client := newTestDispatcher(t)

	d.Dispatch(context.Background(), DomainEvent{
		Type:         EventStatusChanged,
		EntityID:     "c1",
		BuildingName: "Maple Court",
		ActorID:      "admin1",
		ActorRole:    "admin",
		Message:      "status moved to Resolved",
		Recipients:   []string{"owner1"},
		Data:         map[string]any{"oldStatus": "Pending", "newStatus": "Resolved", "title": "leaky tap"},
	})

	rooms := pusher.rooms()
	assert.Contains(t, rooms, "building:Maple Court")
	assert.Contains(t, rooms, websocket.AdminRoom)
	assert.Contains(t, rooms, "complaint:c1")
	assert.Contains(t, rooms, "user:owner1")

	// recipient push carries the recipient id
	for _, push := range pusher.pushes {
		if push.Room == "user:owner1" {
			assert.Equal(t, "owner1", push.Event.RecipientID)
		}
		assert.NotEmpty(t, push.Event.EventID, "every push carries the stable event id")
	}

	jobs := drainQueue(t, client)
	jobTypes := make([]string, 0, len(jobs))
	for _, j := range jobs {
		jobTypes = append(jobTypes, j.Type)
	}
	assert.Contains(t, jobTypes, queue.JobRecomputeStats, "status change must trigger async recomputation")
	assert.Contains(t, jobTypes, queue.JobMaterializeNotifs, "owner must get a durable record")
}

func TestDispatch_SameEventIDSuppressed(t *testing.T) {
	d, pusher, _ := newTestDispatcher(t)

	ev := DomainEvent{
		EventID:      "c1:status_changed:42",
		Type:         EventStatusChanged,
		EntityID:     "c1",
		BuildingName: "Maple Court",
	}

	d.Dispatch(context.Background(), ev)
	first := len(pusher.rooms())
	require.Greater(t, first, 0)

	d.Dispatch(context.Background(), ev)
	assert.Equal(t, first, len(pusher.rooms()), "second delivery of the same eventId must be suppressed")
}

func TestDispatch_NotificationPayload(t *testing.T) {
	d, _, client := newTestDispatcher(t)

	d.Dispatch(context.Background(), DomainEvent{
		Type:        EventBroadcastCreated,
		EntityID:    "b1",
		BroadcastID: "b1",
		ActorID:     "admin1",
		ActorRole:   "admin",
		Message:     "water outage tomorrow",
		Recipients:  []string{"r1", "r2", "r3"},
	})

	jobs := drainQueue(t, client)
	var found bool
	for _, j := range jobs {
		if j.Type != queue.JobMaterializeNotifs {
			continue
		}
		found = true
		var payload types.MaterializeNotificationsPayload
		require.NoError(t, json.Unmarshal(j.Payload, &payload))
		assert.Equal(t, "admin_message", payload.Type)
		assert.Equal(t, []string{"r1", "r2", "r3"}, payload.Recipients)
		assert.Equal(t, "b1", payload.BroadcastID)
	}
	assert.True(t, found, "broadcast must enqueue a materialization job")
}

func TestDispatch_EnqueueFailureDoesNotBlockDelivery(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	pusher := &recordingPusher{}
	d := NewDispatcher(pusher, dedupe.New(10*time.Second, 1000), queue.NewProducer(client))

	mr.Close() // queue backend gone

	d.Dispatch(context.Background(), DomainEvent{
		Type:         EventComplaintCreated,
		EntityID:     "c2",
		BuildingName: "Maple Court",
		Recipients:   []string{"admin1"},
	})

	assert.NotEmpty(t, pusher.rooms(), "primary delivery must proceed even when the queue fails")
}

func TestRooms_BuildingAndBroadcastEvents(t *testing.T) {
	buildingEv := DomainEvent{Type: EventBuildingUpdated, EntityID: "bld1", BuildingName: "Oak Villa"}
	assert.ElementsMatch(t, []string{websocket.AdminRoom, "building:Oak Villa"}, buildingEv.Rooms())

	globalBroadcast := DomainEvent{Type: EventBroadcastCreated, EntityID: "br1", Recipients: []string{"r1", "r2"}}
	assert.ElementsMatch(t, []string{websocket.AdminRoom, "user:r1", "user:r2"}, globalBroadcast.Rooms())

	retraction := DomainEvent{Type: EventBroadcastRemoved, EntityID: "br1", Recipients: []string{"r1"}}
	assert.ElementsMatch(t, []string{websocket.AdminRoom, "user:r1"}, retraction.Rooms())
}

func TestAffectsAggregates(t *testing.T) {
	assert.True(t, DomainEvent{Type: EventComplaintDeleted}.AffectsAggregates())
	assert.True(t, DomainEvent{Type: EventBuildingCreated}.AffectsAggregates())
	assert.False(t, DomainEvent{Type: EventBroadcastCreated}.AffectsAggregates())
	assert.False(t, DomainEvent{Type: EventComplaintLiked}.AffectsAggregates(), "likes do not change status or occupancy counts")
}
