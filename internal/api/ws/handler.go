package ws

import (
	"net/http"
	"time"

	"github.com/GriffinCanCode/manifestgen/internal/domain/generator"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/logging"
	"github.com/GriffinCanCode/manifestgen/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/manifestgen/internal/shared/types"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	sendQueueSize = 32
	writeTimeout  = 10 * time.Second
	pongTimeout   = 60 * time.Second
	pingInterval  = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler manages WebSocket connections
type Handler struct {
	store   *generator.Store
	metrics *monitoring.Metrics
	logger  *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(store *generator.Store, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{store: store, metrics: metrics, logger: logger.Named("ws")}
}

// HandleConnection upgrades the request and streams state until the
// client goes away
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	out := make(chan types.WSMessage, sendQueueSize)
	done := make(chan struct{})
	defer close(done)

	enqueue := func(msg types.WSMessage) bool {
		select {
		case out <- msg:
			return true
		case <-done:
			return false
		default:
			return false
		}
	}

	// subscribe before the snapshot so no commit falls in between
	overflow := make(chan struct{}, 1)
	unsubscribe := h.store.Subscribe(func(m generator.Mutation, state types.State) {
		s := state
		if !enqueue(types.WSMessage{Type: "state", Mutation: m.Kind().String(), State: &s}) {
			select {
			case overflow <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	snapshot := h.store.State()
	enqueue(types.WSMessage{Type: "state", State: &snapshot})

	readDone := make(chan struct{})
	go h.readLoop(conn, enqueue, readDone)

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg := <-out:
			if err := h.send(conn, msg); err != nil {
				h.logger.Debug("websocket write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-overflow:
			h.logger.Warn("websocket client too slow, closing")
			return
		case <-readDone:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

// readLoop handles client messages until the connection fails
func (h *Handler) readLoop(conn *websocket.Conn, enqueue func(types.WSMessage) bool, done chan<- struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(pongTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "ping":
			enqueue(types.WSMessage{Type: "pong"})
		default:
			enqueue(types.WSMessage{Type: "error", Message: "unknown message type"})
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, msg types.WSMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		return err
	}
	if h.metrics != nil {
		h.metrics.RecordWSMessage("out", msg.Type)
	}
	return nil
}
