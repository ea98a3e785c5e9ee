package transport

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/darkhorsekelly/mesh/internal/game"
	"github.com/darkhorsekelly/mesh/internal/meshrr"
	"github.com/darkhorsekelly/mesh/pkg/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub maintains the set of active websocket clients for one game and
// broadcasts outbound frames to all of them — every client sees the
// same authoritative TICK_EXECUTED/PENDING_ACTIONS_UPDATE stream
// (§6.1). STATE_UPDATE and ERROR frames go only to the client whose
// request produced them.
type Hub struct {
	session   *game.Session
	clients   map[*websocket.Conn]bool
	broadcast chan OutboundFrame
	mutex     sync.Mutex
}

// NewHub constructs a Hub bound to session. Call Run in its own
// goroutine before accepting connections.
func NewHub(session *game.Session) *Hub {
	return &Hub{
		session:   session,
		broadcast: make(chan OutboundFrame, 256),
		clients:   make(map[*websocket.Conn]bool),
	}
}

func (h *Hub) Run() {
	for frame := range h.broadcast {
		data, err := json.Marshal(frame)
		if err != nil {
			log.Printf("[transport] failed to encode outbound frame: %v", err)
			continue
		}
		h.mutex.Lock()
		for client := range h.clients {
			_ = client.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("[transport] websocket write error: %v", err)
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mutex.Unlock()
	}
}

// Broadcast queues frame for delivery to every connected client.
func (h *Hub) Broadcast(frame OutboundFrame) {
	h.broadcast <- frame
}

// Subscribe upgrades the connection and runs its read loop: every
// inbound frame is dispatched against the session, with results either
// broadcast (queue/tick) or sent directly back to the sender (request
// state, errors).
func (h *Hub) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[transport] failed to upgrade websocket: %v", err)
		return
	}

	h.mutex.Lock()
	h.clients[conn] = true
	h.mutex.Unlock()
	log.Printf("[transport] client connected, total=%d", len(h.clients))

	defer func() {
		h.mutex.Lock()
		delete(h.clients, conn)
		h.mutex.Unlock()
		conn.Close()
		log.Printf("[transport] client disconnected, total=%d", len(h.clients))
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[transport] websocket error: %v", err)
			}
			return
		}
		h.handleFrame(conn, data)
	}
}

func (h *Hub) handleFrame(conn *websocket.Conn, data []byte) {
	var in InboundFrame
	if err := json.Unmarshal(data, &in); err != nil {
		malformed := meshrr.New(meshrr.KindTransportInvariant, "malformed frame")
		h.reply(conn, errorFrame(malformed.Error()))
		return
	}

	ctx := context.Background()
	switch in.Type {
	case CmdRequestState:
		state, pending := h.session.Snapshot()
		h.reply(conn, stateUpdateFrame(EventStateUpdate, state, pending))

	case CmdQueueAction:
		if in.Action == nil {
			invariant := meshrr.New(meshrr.KindTransportInvariant, "queue action requires an action payload")
			h.reply(conn, errorFrame(invariant.Error()))
			return
		}
		if in.Action.ID == "" {
			in.Action.ID = uuid.NewString()
		}
		if err := h.session.QueueAction(ctx, *in.Action); err != nil {
			h.reply(conn, errorFrame(err.Error()))
			return
		}
		h.Broadcast(pendingActionsFrame([]models.Action{*in.Action}))

	case CmdExecuteTick:
		state, _, err := h.session.ExecuteTick(ctx)
		if err != nil {
			h.reply(conn, errorFrame(err.Error()))
			return
		}
		_, pending := h.session.Snapshot()
		h.Broadcast(stateUpdateFrame(EventTickExecuted, state, pending))

	default:
		unknown := meshrr.New(meshrr.KindTransportInvariant, "unknown frame type: "+in.Type)
		h.reply(conn, errorFrame(unknown.Error()))
	}
}

func (h *Hub) reply(conn *websocket.Conn, frame OutboundFrame) {
	data, err := json.Marshal(frame)
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	_ = conn.WriteMessage(websocket.TextMessage, data)
}
