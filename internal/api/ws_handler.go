package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/taskboard/taskboard-api/internal/api/shared"
	"github.com/taskboard/taskboard-api/internal/platform/logger"
	"github.com/taskboard/taskboard-api/internal/service"
	"github.com/taskboard/taskboard-api/internal/service/auth"
	"github.com/taskboard/taskboard-api/internal/ws"
)

// WSHandler upgrades authenticated requests to WebSocket connections and
// registers them for task lifecycle notifications. Browsers cannot set
// an Authorization header on WebSocket handshakes, so the access token
// travels in the token query parameter instead.
type WSHandler struct {
	registry    *ws.Registry
	jwtService  auth.JWTService
	userService service.UserService
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// NewWSHandler creates a new WSHandler with the given dependencies.
func NewWSHandler(
	registry *ws.Registry,
	jwtService auth.JWTService,
	userService service.UserService,
	log *slog.Logger,
) *WSHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WSHandler{
		registry:    registry,
		jwtService:  jwtService,
		userService: userService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: log.With(slog.String("component", "ws_handler")),
	}
}

// Subscribe handles GET /ws/tasks?token=<access-token>. The connection
// stays registered until the client disconnects; subscribers only ever
// receive, inbound frames are drained and discarded.
func (h *WSHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	token := r.URL.Query().Get("token")
	if token == "" {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "token query parameter required")
		return
	}

	claims, err := h.jwtService.ValidateToken(r.Context(), token)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// The token may outlive the account; confirm the subject exists.
	if _, err := h.userService.GetByID(r.Context(), claims.UserID); err != nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written its own error response.
		log.Warn("websocket upgrade failed",
			slog.String("error", err.Error()),
			slog.Int64("user_id", claims.UserID))
		return
	}

	subscriber := newSubscriberConn(conn)
	h.registry.Register(subscriber, claims.UserID)
	log.Info("websocket subscriber connected", slog.Int64("user_id", claims.UserID))

	defer func() {
		h.registry.Unregister(subscriber, claims.UserID)
		_ = subscriber.Close()
		log.Info("websocket subscriber disconnected", slog.Int64("user_id", claims.UserID))
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writeWait bounds how long a single frame write may block. A peer that
// has stalled without closing (full TCP window, dead NAT entry) becomes
// a write timeout, which the registry handles like any other send
// failure instead of wedging delivery to every other subscriber.
const writeWait = 10 * time.Second

// subscriberConn adapts a gorilla connection to the registry's Conn
// interface. Gorilla connections allow only one concurrent writer, so
// Send serializes under a mutex.
type subscriberConn struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	writeTimeout time.Duration
}

func newSubscriberConn(conn *websocket.Conn) *subscriberConn {
	return &subscriberConn{conn: conn, writeTimeout: writeWait}
}

// Send writes the payload as a single text frame, bounded by the write
// deadline.
func (c *subscriberConn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Close closes the underlying connection. Safe to call more than once.
func (c *subscriberConn) Close() error {
	return c.conn.Close()
}
