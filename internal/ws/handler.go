package ws

import (
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/systemapi/bridge/internal/logging"
	"github.com/systemapi/bridge/internal/native"
	"github.com/systemapi/bridge/internal/shared/types"
)

const defaultInterval = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the UI shell runs on a different origin in dev
	},
}

// Handler manages WebSocket connections.
type Handler struct {
	bridge *native.Bridge
	logger *logging.Logger
}

// NewHandler creates a WebSocket handler.
func NewHandler(bridge *native.Bridge, logger *logging.Logger) *Handler {
	return &Handler{bridge: bridge, logger: logger}
}

// conn wraps a websocket connection with a write lock, since snapshots
// are pushed from a ticker goroutine while the read loop answers pings.
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

// HandleConnection upgrades the request and serves the message loop.
// Clients send {"type": "subscribe"} to receive periodic snapshots,
// "unsubscribe" to stop, "snapshot" for a one-shot, and "ping" for
// keepalive.
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	clientID := uuid.NewString()
	cn := &conn{ws: ws}

	h.logger.Debug("websocket client connected", zap.String("client_id", clientID))
	if err := cn.send(gin.H{"type": "hello", "client_id": clientID}); err != nil {
		return
	}

	var (
		stop   chan struct{}
		ticked sync.WaitGroup
	)
	stopStream := func() {
		if stop != nil {
			close(stop)
			ticked.Wait()
			stop = nil
		}
	}
	defer stopStream()

	for {
		var msg types.WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			h.logger.Debug("websocket client gone",
				zap.String("client_id", clientID),
				zap.Error(err),
			)
			return
		}

		switch msg.Type {
		case "ping":
			cn.send(gin.H{"type": "pong", "timestamp": time.Now().Unix()})

		case "snapshot":
			cn.send(gin.H{"type": "snapshot", "data": h.snapshot()})

		case "subscribe":
			stopStream()
			interval := defaultInterval
			if msg.IntervalMS > 0 {
				interval = time.Duration(msg.IntervalMS) * time.Millisecond
			}
			stop = make(chan struct{})
			ticked.Add(1)
			go h.stream(cn, interval, stop, &ticked)

		case "unsubscribe":
			stopStream()
			cn.send(gin.H{"type": "unsubscribed"})

		default:
			cn.send(gin.H{"type": "error", "error": "unknown message type"})
		}
	}
}

func (h *Handler) stream(cn *conn, interval time.Duration, stop <-chan struct{}, done *sync.WaitGroup) {
	defer done.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Immediate first snapshot so subscribers do not wait a full tick.
	if err := cn.send(gin.H{"type": "snapshot", "data": h.snapshot()}); err != nil {
		return
	}

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := cn.send(gin.H{"type": "snapshot", "data": h.snapshot()}); err != nil {
				return
			}
		}
	}
}

// snapshot gathers what the bridge can currently answer. Individual
// failures degrade the snapshot instead of aborting it.
func (h *Handler) snapshot() gin.H {
	data := gin.H{
		"platform":       runtime.GOOS,
		"arch":           runtime.GOARCH,
		"library_loaded": h.bridge.Manager().Loaded(),
		"timestamp":      time.Now().Unix(),
	}

	if name, err := h.bridge.HostName(); err == nil {
		data["hostname"] = name
	}
	if total, err := h.bridge.TotalMemory(); err == nil && total != 0 {
		data["total_memory"] = total
	}
	if pid, err := h.bridge.ProcessID(); err == nil {
		data["pid"] = pid
	}
	return data
}
