package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"rps-arena/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// frame is one queued write. A non-zero closeCode ends the connection after
// everything queued before it has been written.
type frame struct {
	msg         outbound
	closeCode   int
	closeReason string
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan frame
	done chan struct{}
	once sync.Once
}

// close sends a close frame and tears the socket down. The read loop then
// fails and runs the disconnect path.
func (c *client) close(code int, reason string, timeout time.Duration) {
	c.once.Do(func() {
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(code, reason),
			time.Now().Add(timeout),
		)
		_ = c.conn.Close()
	})
}

// Hub tracks live connections and the room broadcast groups they belong to.
// It implements room.Broadcaster.
type Hub struct {
	mu          sync.RWMutex
	clients     map[string]*client
	rooms       map[string]map[string]struct{}
	roomManager RoomManager
	cfg         config.ServerConfig
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

func NewHub(cfg config.ServerConfig, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		clients: make(map[string]*client),
		rooms:   make(map[string]map[string]struct{}),
		cfg:     cfg,
		logger:  logger.With("component", "ws_hub"),
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// SetRoomManager wires the manager that receives client events. It must be
// called before the hub serves connections.
func (h *Hub) SetRoomManager(rm RoomManager) {
	h.roomManager = rm
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if len(h.cfg.AllowedOrigins) == 0 || origin == "" {
		return true
	}
	return slices.Contains(h.cfg.AllowedOrigins, origin)
}

func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade connection", "error", err)
		return
	}

	cl := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan frame, h.cfg.SendBuffer),
		done: make(chan struct{}),
	}
	h.register(cl)
	h.logger.Info("user connected", "conn", cl.id, "remote", conn.RemoteAddr().String())

	defer func() {
		close(cl.done)
		h.unregister(cl)
		h.roomManager.Disconnect(cl.id)
		cl.close(websocket.CloseNormalClosure, "", h.cfg.WriteTimeout)
		h.logger.Info("user disconnected", "conn", cl.id)
	}()

	conn.SetReadLimit(h.cfg.ReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(h.cfg.PongWait))
	})
	go h.writePump(cl)

	h.enqueue(cl, frame{msg: outbound{Event: EventConnected, Data: ConnectedPayload{SocketID: cl.id}}})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("read error", "conn", cl.id, "error", err)
			}
			return
		}
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			h.logger.Warn("invalid frame", "conn", cl.id, "error", err)
			continue
		}
		h.dispatch(cl, env)
	}
}

func (h *Hub) dispatch(cl *client, env Envelope) {
	switch env.Event {
	case EventJoinRoom:
		var roomKey string
		if err := json.Unmarshal(env.Data, &roomKey); err != nil {
			h.logger.Warn("invalid join-room payload", "conn", cl.id, "error", err)
			return
		}
		if err := h.roomManager.Join(roomKey, cl.id); err != nil {
			h.logger.Debug("join rejected", "conn", cl.id, "room", roomKey, "error", err)
		}
	case EventPlayerMove:
		var p MovePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			h.logger.Warn("invalid player-move payload", "conn", cl.id, "error", err)
			return
		}
		if err := h.roomManager.SubmitMove(p.RoomID, cl.id, p.Move); err != nil {
			h.logger.Debug("move rejected", "conn", cl.id, "room", p.RoomID, "error", err)
		}
	default:
		h.logger.Warn("unknown event", "conn", cl.id, "event", env.Event)
	}
}

// writePump is the only goroutine that writes data frames to cl. It also
// sends the keepalive pings.
func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(h.cfg.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-cl.done:
			return
		case f := <-cl.send:
			if f.closeCode != 0 {
				cl.close(f.closeCode, f.closeReason, h.cfg.WriteTimeout)
				return
			}
			_ = cl.conn.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := cl.conn.WriteJSON(f.msg); err != nil {
				h.logger.Warn("failed to send message", "conn", cl.id, "event", f.msg.Event, "error", err)
				cl.close(websocket.CloseInternalServerErr, "", h.cfg.WriteTimeout)
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(h.cfg.WriteTimeout)
			if err := cl.conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				h.logger.Debug("ping failed", "conn", cl.id, "error", err)
				return
			}
		}
	}
}

// enqueue hands f to cl's write pump without blocking. A client whose queue
// is full is dropped.
func (h *Hub) enqueue(cl *client, f frame) {
	select {
	case cl.send <- f:
	default:
		h.logger.Warn("send queue full, dropping client", "conn", cl.id, "event", f.msg.Event)
		go cl.close(websocket.CloseTryAgainLater, "send queue full", h.cfg.WriteTimeout)
	}
}

func (h *Hub) register(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[cl.id] = cl
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, cl.id)
	for key, members := range h.rooms {
		delete(members, cl.id)
		if len(members) == 0 {
			delete(h.rooms, key)
		}
	}
}

func (h *Hub) Subscribe(roomKey, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[roomKey]; !ok {
		h.rooms[roomKey] = make(map[string]struct{})
	}
	h.rooms[roomKey][connID] = struct{}{}
}

func (h *Hub) Release(roomKey string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.rooms, roomKey)
}

func (h *Hub) Broadcast(roomKey string, event string, data interface{}) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.rooms[roomKey]))
	for id := range h.rooms[roomKey] {
		if cl, ok := h.clients[id]; ok {
			targets = append(targets, cl)
		}
	}
	h.mu.RUnlock()

	f := frame{msg: outbound{Event: event, Data: data}}
	for _, cl := range targets {
		h.enqueue(cl, f)
	}
}

func (h *Hub) Send(connID string, event string, data interface{}) {
	h.mu.RLock()
	cl, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	h.enqueue(cl, frame{msg: outbound{Event: event, Data: data}})
}

func (h *Hub) Kick(connID string) {
	h.mu.RLock()
	cl, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	h.enqueue(cl, frame{closeCode: websocket.ClosePolicyViolation, closeReason: "room full"})
}

// Shutdown closes every live connection.
func (h *Hub) Shutdown() {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		targets = append(targets, cl)
	}
	h.mu.RUnlock()

	for _, cl := range targets {
		cl.close(websocket.CloseGoingAway, "server shutting down", h.cfg.WriteTimeout)
	}
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
