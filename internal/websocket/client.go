package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Identity is what authentication hands us: the connection arrives already
// identified as "resident of building B" or "admin".
type Identity struct {
	UserID   string
	Role     string
	Building string
}

func (id Identity) IsAdmin() bool {
	return id.Role == "admin"
}

type Client struct {
	ID       string
	Identity Identity
	Conn     *websocket.Conn
	Send     chan []byte

	ConnectedAt time.Time

	hub        *Hub
	membership *Membership

	ctx    context.Context
	cancel context.CancelFunc

	lastSeenMu sync.RWMutex
	lastSeen   time.Time

	closeOnce sync.Once
}

func NewClient(id string, identity Identity, conn *websocket.Conn) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now()
	return &Client{
		ID:          id,
		Identity:    identity,
		Conn:        conn,
		Send:        make(chan []byte, 256),
		ConnectedAt: now,
		lastSeen:    now,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the read/write pumps. Called once by the ws handler after
// the client is registered; tests register inert clients and never Start.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

func (c *Client) IsClientActive() bool {
	select {
	case <-c.ctx.Done():
		return false
	default:
		return true
	}
}

func (c *Client) GetLastSeen() time.Time {
	c.lastSeenMu.RLock()
	defer c.lastSeenMu.RUnlock()
	return c.lastSeen
}

func (c *Client) touch() {
	c.lastSeenMu.Lock()
	c.lastSeen = time.Now()
	c.lastSeenMu.Unlock()
}

// SendEvent queues an event for this connection only. Best effort: a full
// buffer drops the frame rather than blocking the caller.
func (c *Client) SendEvent(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("clientID", c.ID).Msg("ws: failed to marshal event")
		return
	}

	select {
	case c.Send <- data:
	case <-c.ctx.Done():
	default:
		log.Warn().Str("clientID", c.ID).Msg("ws: client buffer full, dropping event")
	}
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		if c.Conn != nil {
			_ = c.Conn.Close()
		}
	})
}

// writePump: take data from c.Send and send to socket + ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			if _, err := w.Write(msg); err != nil {
				_ = w.Close()
				return
			}

			_ = w.Close()

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// readPump: handle pong for keep-alive and the join/leave complaint-room
// frames. Any read error tears the connection down, which removes the
// client from every room it joined.
func (c *Client) readPump() {
	defer func() {
		if c.hub != nil {
			c.hub.Unregister(c)
		}
		c.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		c.touch()
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}
		c.touch()
		c.handleFrame(data)
	}
}

func (c *Client) handleFrame(data []byte) {
	var frame IncomingFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		c.SendEvent(NewErrorEvent("invalid frame"))
		return
	}

	switch frame.Action {
	case ActionJoinComplaint:
		if c.membership == nil {
			c.SendEvent(NewErrorEvent("complaint rooms unavailable"))
			return
		}
		if appErr := c.membership.JoinComplaintRoom(c.ctx, c, frame.ComplaintID); appErr != nil {
			// authorization failure is local to this connection, no disconnect
			c.SendEvent(NewErrorEvent(appErr.Message))
		}
	case ActionLeaveComplaint:
		if c.membership != nil {
			c.membership.LeaveComplaintRoom(c, frame.ComplaintID)
		}
	default:
		c.SendEvent(NewErrorEvent("unknown action: " + frame.Action))
	}
}
