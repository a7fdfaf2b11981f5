package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Hub is the room-scoped multicast transport. Delivery is fire-and-forget
// with no acknowledgment or backpressure: a slow or disconnected receiver
// never blocks dispatch to others.
type Hub struct {
	// Room management. clientRooms is the reverse index used to tear a
	// connection out of every room on disconnect.
	rooms       map[string]map[*Client]struct{}
	clientRooms map[*Client]map[string]struct{}
	mu          sync.RWMutex

	// Hub lifecycle
	ctx    context.Context
	cancel context.CancelFunc

	// Metrics
	stats   HubStats
	statsMu sync.RWMutex

	// Cleanup
	cleanupTicker *time.Ticker
}

type HubStats struct {
	TotalRooms       int       `json:"total_rooms"`
	TotalClients     int       `json:"total_clients"`
	TotalConnections int64     `json:"total_connections"`
	EventsSent       int64     `json:"events_sent"`
	LastReset        time.Time `json:"last_reset"`
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	hub := &Hub{
		rooms:       make(map[string]map[*Client]struct{}),
		clientRooms: make(map[*Client]map[string]struct{}),
		ctx:         ctx,
		cancel:      cancel,
		stats: HubStats{
			LastReset: time.Now(),
		},
		cleanupTicker: time.NewTicker(1 * time.Minute),
	}

	go hub.cleanupRoutine()

	return hub
}

// Register binds a client to its identity-derived rooms. Those rooms are
// fixed for the connection's lifetime; complaint-thread rooms come and go
// through JoinRoom/LeaveRoom.
func (h *Hub) Register(client *Client, rooms ...string) {
	h.mu.Lock()
	if h.clientRooms[client] == nil {
		h.clientRooms[client] = make(map[string]struct{})
	}
	for _, roomID := range rooms {
		if h.rooms[roomID] == nil {
			h.rooms[roomID] = make(map[*Client]struct{})
		}
		h.rooms[roomID][client] = struct{}{}
		h.clientRooms[client][roomID] = struct{}{}
	}
	h.mu.Unlock()

	client.hub = h

	h.updateStats(func(stats *HubStats) {
		stats.TotalConnections++
	})

	log.Info().Str("clientID", client.ID).Str("userID", client.Identity.UserID).Str("role", client.Identity.Role).Strs("rooms", rooms).Msg("ws: client registered")
}

// JoinRoom adds a client to one room. Idempotent.
func (h *Hub) JoinRoom(roomID string, client *Client) {
	h.mu.Lock()
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][client] = struct{}{}
	if h.clientRooms[client] == nil {
		h.clientRooms[client] = make(map[string]struct{})
	}
	h.clientRooms[client][roomID] = struct{}{}
	size := len(h.rooms[roomID])
	h.mu.Unlock()

	log.Info().Str("roomID", roomID).Str("clientID", client.ID).Int("roomSize", size).Msg("ws: client joined room")
}

// LeaveRoom removes a client from one room. Idempotent, always permitted.
func (h *Hub) LeaveRoom(roomID string, client *Client) {
	h.mu.Lock()
	if clients, ok := h.rooms[roomID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.rooms, roomID)
		}
	}
	if rooms, ok := h.clientRooms[client]; ok {
		delete(rooms, roomID)
	}
	h.mu.Unlock()

	log.Info().Str("roomID", roomID).Str("clientID", client.ID).Msg("ws: client left room")
}

// Unregister tears a client out of every room it is in.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	rooms := h.clientRooms[client]
	for roomID := range rooms {
		if clients, ok := h.rooms[roomID]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	delete(h.clientRooms, client)
	h.mu.Unlock()

	log.Info().Str("clientID", client.ID).Str("userID", client.Identity.UserID).Msg("ws: client unregistered")
}

// InRoom reports whether the client is currently a member of roomID.
func (h *Hub) InRoom(roomID string, client *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[roomID][client]
	return ok
}

// Push delivers one event to every active member of a room. Multicast
// semantics: each member receives one copy. Implements the dispatcher's
// RoomPusher contract.
func (h *Hub) Push(roomID string, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("roomID", roomID).Msg("ws: failed to marshal event")
		return
	}

	// Snapshot targets to minimize lock time
	h.mu.RLock()
	var targets []*Client
	if clients, ok := h.rooms[roomID]; ok {
		targets = make([]*Client, 0, len(clients))
		for client := range clients {
			if client.IsClientActive() {
				targets = append(targets, client)
			}
		}
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	// Send outside the lock (parallel sending, bounded)
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 50)

	for _, client := range targets {
		wg.Add(1)
		go func(c *Client) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() {
				<-semaphore
			}()
			select {
			case c.Send <- data:
				// success
			case <-c.ctx.Done():
				// client is closing
			default:
				log.Warn().Str("roomID", roomID).Str("clientID", c.ID).Msg("ws: slow consumer, dropping event")
				go c.Close()
			}
		}(client)
	}

	wg.Wait()

	h.updateStats(func(stats *HubStats) {
		stats.EventsSent += int64(len(targets))
	})

	log.Debug().Str("roomID", roomID).Int("targets", len(targets)).Str("eventType", ev.Type).Msg("ws: push completed")
}

// GetRoomClients returns all active clients in a room.
func (h *Hub) GetRoomClients(roomID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var clients []*Client
	if roomClients, ok := h.rooms[roomID]; ok {
		for client := range roomClients {
			if client.IsClientActive() {
				clients = append(clients, client)
			}
		}
	}

	return clients
}

// IsUserOnline checks if a user has any active connection.
func (h *Hub) IsUserOnline(userID string) bool {
	return len(h.GetRoomClients(RoomForUser(userID))) > 0 ||
		len(h.GetRoomClients(RoomForAdmin(userID))) > 0
}

func (h *Hub) GetRoomStats(roomID string) map[string]interface{} {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := map[string]interface{}{
		"room_id": roomID,
		"exists":  false,
	}

	if clients, ok := h.rooms[roomID]; ok {
		activeClients := 0
		uniqueUsers := make(map[string]bool)

		for client := range clients {
			if client.IsClientActive() {
				activeClients++
				uniqueUsers[client.Identity.UserID] = true
			}
		}

		stats["exists"] = true
		stats["total_connections"] = len(clients)
		stats["active_connections"] = activeClients
		stats["unique_users"] = len(uniqueUsers)
	}

	return stats
}

func (h *Hub) GetHubStats() HubStats {
	h.statsMu.RLock()
	defer h.statsMu.RUnlock()

	h.mu.RLock()
	h.stats.TotalRooms = len(h.rooms)
	h.stats.TotalClients = len(h.clientRooms)
	h.mu.RUnlock()

	return h.stats
}

func (h *Hub) updateStats(fn func(*HubStats)) {
	h.statsMu.Lock()
	fn(&h.stats)
	h.statsMu.Unlock()
}

func (h *Hub) cleanupRoutine() {
	defer h.cleanupTicker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.cleanupTicker.C:
			h.performCleanup()
		}
	}
}

func (h *Hub) performCleanup() {
	now := time.Now()
	inactiveThreshold := 2 * time.Minute

	var toRemove []*Client

	h.mu.RLock()
	for client := range h.clientRooms {
		if !client.IsClientActive() || now.Sub(client.GetLastSeen()) > inactiveThreshold {
			toRemove = append(toRemove, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range toRemove {
		log.Info().Str("clientID", client.ID).Msg("ws: cleaning up inactive client")
		client.Close()
		h.Unregister(client)
	}

	log.Debug().Int("cleaned", len(toRemove)).Msg("ws: cleanup routine completed")
}

// Close gracefully shuts down the hub.
func (h *Hub) Close() {
	log.Info().Msg("ws: shutting down hub")

	h.cancel()

	h.mu.RLock()
	var allClients []*Client
	for client := range h.clientRooms {
		allClients = append(allClients, client)
	}
	h.mu.RUnlock()

	for _, client := range allClients {
		client.Close()
	}

	log.Info().Int("clients", len(allClients)).Msg("ws: hub shutdown completed")
}
