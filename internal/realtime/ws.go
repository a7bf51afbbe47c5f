package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Rohan-debug788/SkillSwap/pkg/errors"
	"github.com/Rohan-debug788/SkillSwap/pkg/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	eventTimeout = 10 * time.Second
)

// WSOptions tunes each WebSocket connection.
type WSOptions struct {
	MaxMessageBytes int64
	EventsPerSecond float64
	EventBurst      int
	SendBuffer      int
}

// Client is a WebSocket connection owned by one authenticated user.
type Client struct {
	id      string
	userID  string
	conn    *websocket.Conn
	send    chan Event
	done    chan struct{}
	once    sync.Once
	limiter *rate.Limiter
}

func (c *Client) ID() string     { return c.id }
func (c *Client) UserID() string { return c.userID }

// Send queues evt without blocking. A full queue means the peer is not
// reading, so the connection is closed instead of reordering or waiting.
func (c *Client) Send(evt Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- evt:
		return true
	default:
		logger.Warn("Closing slow real-time connection", "user_id", c.userID, "conn_id", c.id)
		c.close(websocket.ClosePolicyViolation, "too slow")
		return false
	}
}

// close sends a close frame with code and reason, then drops the socket.
func (c *Client) close(code int, reason string) {
	c.once.Do(func() {
		close(c.done)
		msg := websocket.FormatCloseMessage(code, reason)
		_ = c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		_ = c.conn.Close()
	})
}

// WSHandler upgrades authenticated HTTP requests to gateway connections.
type WSHandler struct {
	gateway  *Gateway
	opts     WSOptions
	upgrader websocket.Upgrader
}

func NewWSHandler(gateway *Gateway, opts WSOptions) *WSHandler {
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 256
	}
	if opts.MaxMessageBytes <= 0 {
		opts.MaxMessageBytes = 4096
	}
	if opts.EventsPerSecond <= 0 {
		opts.EventsPerSecond = 10
	}
	if opts.EventBurst <= 0 {
		opts.EventBurst = 20
	}
	return &WSHandler{
		gateway: gateway,
		opts:    opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// tokenFromRequest reads a bearer header or the token query parameter.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := h.gateway.Authenticate(r.Context(), tokenFromRequest(r))
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"code":    http.StatusUnauthorized,
			"message": errors.MessageOf(err, "authentication error"),
			"error":   errors.ErrCodeUnauthorized,
		})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	client := &Client{
		id:      uuid.NewString(),
		userID:  userID,
		conn:    conn,
		send:    make(chan Event, h.opts.SendBuffer),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(rate.Limit(h.opts.EventsPerSecond), h.opts.EventBurst),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.gateway.Connect(ctx, client)
	defer h.gateway.Disconnect(ctx, client)
	defer client.close(websocket.CloseNormalClosure, "")

	go h.writePump(client)
	h.readPump(ctx, client)
}

func (h *WSHandler) readPump(ctx context.Context, c *Client) {
	c.conn.SetReadLimit(h.opts.MaxMessageBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("WebSocket unexpected close", "user_id", c.userID, "error", err)
			}
			return
		}

		if !c.limiter.Allow() {
			c.Send(Event{Event: EventError, Data: ErrorPayload{
				Code:    errors.ErrCodeRateLimitExceeded,
				Message: "too many events, slow down",
			}})
			continue
		}

		evtCtx, cancel := context.WithTimeout(ctx, eventTimeout)
		h.gateway.Dispatch(evtCtx, c, raw)
		cancel()
	}
}

func (h *WSHandler) writePump(c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close(websocket.CloseGoingAway, "")
	}()

	for {
		select {
		case <-c.done:
			return
		case evt := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(evt); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
