// internal/handlers/realtime.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/events"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPongTimeout  = 60 * time.Second
	// Pings must go out before the peer's pong deadline lapses.
	wsPingInterval    = (wsPongTimeout * 9) / 10
	wsMaxInboundBytes = 4096
	sseKeepAlive      = 25 * time.Second
)

// RealtimeHandler streams bus events to browsers over WebSocket or Server-Sent Events.
type RealtimeHandler struct {
	bus      *events.Bus
	upgrader websocket.Upgrader
}

func NewRealtimeHandler(bus *events.Bus, allowedOrigins []string) *RealtimeHandler {
	return &RealtimeHandler{
		bus: bus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// GET /ws
func (h *RealtimeHandler) ServeWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logrus.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	sub := h.bus.Subscribe()
	defer h.bus.Unsubscribe(sub)

	logger := logrus.WithFields(logrus.Fields{
		"subscriber": sub.ID,
		"remote":     c.ClientIP(),
		"transport":  "websocket",
	})
	logger.Info("Real-time client connected")
	defer logger.Info("Real-time client disconnected")

	// Inbound messages are discarded; reading only detects the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(wsMaxInboundBytes)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongTimeout))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-sub.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				logger.WithError(err).Debug("WebSocket write failed")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// GET /api/events
func (h *RealtimeHandler) ServeSSE(c *gin.Context) {
	sub := h.bus.Subscribe()
	defer h.bus.Unsubscribe(sub)

	logger := logrus.WithFields(logrus.Fields{
		"subscriber": sub.ID,
		"remote":     c.ClientIP(),
		"transport":  "sse",
	})
	logger.Info("Real-time client connected")
	defer logger.Info("Real-time client disconnected")

	c.Header("Content-Type", sse.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	// The stream outlives the server's write timeout.
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})
	c.Writer.Flush()

	ticker := time.NewTicker(sseKeepAlive)
	defer ticker.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			c.Render(-1, sse.Event{
				Id:    strconv.FormatUint(ev.Seq, 10),
				Event: string(ev.Kind),
				Data:  ev.Payload,
			})
			c.Writer.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(c.Writer, ": keepalive\n\n"); err != nil {
				return
			}
			c.Writer.Flush()
		}
	}
}
