package websocket

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: limit your cors, don't get true so easy in production
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	Hub           *Hub
	Membership    *Membership
	authenticator AuthenticatorFunc
}

func NewWebSocketHandler(hub *Hub, membership *Membership, auth AuthenticatorFunc) *WebSocketHandler {
	return &WebSocketHandler{
		Hub:           hub,
		Membership:    membership,
		authenticator: auth,
	}
}

// HandleWS upgrades the connection, derives the identity rooms, and starts
// the client pumps.
func (h *WebSocketHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	identity, err := h.authenticator(r)
	if err != nil {
		log.Warn().Err(err).Msg("ws: authentication failed")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}

	client := NewClient(uuid.New().String(), *identity, conn)
	client.membership = h.Membership

	h.Hub.Register(client, BaseRooms(*identity)...)
	client.Start()
}
