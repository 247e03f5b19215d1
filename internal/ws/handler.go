package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"webbridge/internal/bridge"
	"webbridge/internal/infrastructure/monitoring"
	"webbridge/internal/logging"
	"webbridge/internal/service"
	"webbridge/internal/shared/types"
	"webbridge/internal/shared/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// executeTimeout bounds one streamed execution. Generous: a crawl behind a
// cold uv sandbox is the slowest legitimate case.
const executeTimeout = 15 * time.Minute

// Handler manages WebSocket connections
type Handler struct {
	registry *service.Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(registry *service.Registry, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		registry: registry,
		metrics:  metrics,
		logger:   logger.Component("ws"),
	}
}

// wsConn serializes writes. Progress lines arrive concurrently from the
// worker's stdout and stderr copiers, and gorilla connections allow only one
// writer at a time.
type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) writeJSON(data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(data)
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	raw, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer raw.Close()
	raw.SetReadLimit(utils.MaxMessageSize)

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	conn := &wsConn{conn: raw}
	reqCtx := c.Request.Context()

	h.send(conn, map[string]interface{}{
		"type":    "system",
		"message": "Connected to webbridge service",
	})

	for {
		var msg types.WSMessage
		if err := raw.ReadJSON(&msg); err != nil {
			h.logger.Debug("WebSocket closed", zap.Error(err))
			break
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "execute":
			h.handleExecute(conn, msg, reqCtx)
		case "ping":
			h.send(conn, map[string]interface{}{"type": "pong"})
		default:
			h.sendError(conn, "unknown message type")
		}
	}
}

// handleExecute runs one tool and streams worker output lines to the client
// while it runs.
func (h *Handler) handleExecute(conn *wsConn, msg types.WSMessage, reqCtx context.Context) {
	if err := utils.ValidateToolID(msg.ToolID, "tool_id", true); err != nil {
		h.sendError(conn, err.Error())
		return
	}
	if err := utils.ValidateParams(msg.Params); err != nil {
		h.sendError(conn, err.Error())
		return
	}

	h.send(conn, map[string]interface{}{
		"type":      "execution_start",
		"tool_id":   msg.ToolID,
		"timestamp": time.Now().Unix(),
	})

	ctx, cancel := context.WithTimeout(reqCtx, executeTimeout)
	defer cancel()

	ctx = bridge.WithProgress(ctx, func(stream, line string) {
		h.send(conn, map[string]interface{}{
			"type":      "progress",
			"stream":    stream,
			"line":      line,
			"timestamp": time.Now().Unix(),
		})
	})

	result, err := h.registry.Execute(ctx, msg.ToolID, msg.Params, nil)
	if err != nil {
		h.sendError(conn, err.Error())
		return
	}

	h.send(conn, map[string]interface{}{
		"type":      "result",
		"result":    result,
		"timestamp": time.Now().Unix(),
	})

	h.send(conn, map[string]interface{}{
		"type":      "complete",
		"timestamp": time.Now().Unix(),
	})
}

func (h *Handler) send(conn *wsConn, data map[string]interface{}) error {
	if h.metrics != nil {
		if msgType, ok := data["type"].(string); ok {
			h.metrics.RecordWSMessage("out", msgType)
		}
	}
	return conn.writeJSON(data)
}

func (h *Handler) sendError(conn *wsConn, msg string) error {
	return h.send(conn, map[string]interface{}{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}
