package dispatch

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/dedupe"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/queue"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/utils/types"
	"github.com/AbhinavSharma486/FixMySociety-sub001/internal/websocket"
)

// RoomPusher is the multicast transport contract. Reliable within one
// process; every room member receives one copy.
type RoomPusher interface {
	Push(room string, ev websocket.Event)
}

// Sink is what the use-case layer sees of the dispatcher.
type Sink interface {
	Dispatch(ctx context.Context, ev DomainEvent)
}

// Dispatcher is the central point through which every domain mutation
// becomes zero-or-more room deliveries. Delivery is best effort, at most
// once per dedup key; the durable notification records written by the
// worker remain the catch-up path for anyone the push misses.
type Dispatcher struct {
	pusher   RoomPusher
	dedup    *dedupe.Cache
	producer queue.Producer
}

func NewDispatcher(pusher RoomPusher, dedup *dedupe.Cache, producer queue.Producer) *Dispatcher {
	return &Dispatcher{
		pusher:   pusher,
		dedup:    dedup,
		producer: producer,
	}
}

// Dispatch tags the event with its stable identity, gates it through the
// dedup layer, fans it out, and schedules the async side effects. A
// failure in stats recomputation or notification materialization is
// logged and never fails the primary delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, ev DomainEvent) {
	if ev.EventID == "" {
		ev.EventID = NewEventID(ev.Type, ev.EntityID)
	}
	if ev.EmittedAt.IsZero() {
		ev.EmittedAt = time.Now()
	}

	if !d.dedup.ShouldProcess(ev.EventID) {
		log.Debug().Str("eventID", ev.EventID).Str("type", ev.Type).Msg("dispatch: duplicate event suppressed")
		return
	}

	wire := ev.Wire()
	for _, room := range ev.Rooms() {
		roomWire := wire
		if userID, ok := strings.CutPrefix(room, "user:"); ok {
			roomWire.RecipientID = userID
		}
		d.pusher.Push(room, roomWire)
	}

	if notifType := ev.NotificationType(); notifType != "" && len(ev.Recipients) > 0 {
		job := queue.NewJob(queue.JobMaterializeNotifs, types.MaterializeNotificationsPayload{
			EventID:         ev.EventID,
			Type:            notifType,
			SenderID:        ev.ActorID,
			SenderRole:      ev.ActorRole,
			Message:         ev.Message,
			RelatedEntityID: ev.EntityID,
			BroadcastID:     ev.BroadcastID,
			Recipients:      ev.Recipients,
			EmittedAt:       ev.EmittedAt,
		}, 1)
		if err := d.producer.Enqueue(ctx, job); err != nil {
			log.Error().Err(err).Str("eventID", ev.EventID).Msg("dispatch: failed to enqueue notification materialization")
		}
	}

	if ev.AffectsAggregates() {
		job := queue.NewJob(queue.JobRecomputeStats, types.RecomputeStatsPayload{
			TriggerEventID: ev.EventID,
			TriggerType:    ev.Type,
			RequestedAt:    time.Now(),
		}, 2)
		if err := d.producer.Enqueue(ctx, job); err != nil {
			// eventual consistency: the next mutation retriggers recompute
			log.Error().Err(err).Str("eventID", ev.EventID).Msg("dispatch: failed to enqueue stats recompute")
		}
	}

	log.Debug().Str("eventID", ev.EventID).Str("type", ev.Type).Msg("dispatch: event delivered")
}
