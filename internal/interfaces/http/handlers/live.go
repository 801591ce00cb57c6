// internal/interfaces/http/handlers/live.go
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cryai2821/pizza-wale-fe/internal/config"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/order"
	"github.com/cryai2821/pizza-wale-fe/internal/domain/tracking"
	"github.com/cryai2821/pizza-wale-fe/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const pingInterval = 30 * time.Second

// errOrderSettled ends a live view once the order can no longer change
var errOrderSettled = errors.New("order reached a terminal status")

// LiveHandler streams an order's merged status to the browser
type LiveHandler struct {
	orderService    *order.Service
	trackingService *tracking.Service
	upgrader        websocket.Upgrader
	config          *config.Config
	logger          *logrus.Logger
}

// NewLiveHandler creates a new live order handler
func NewLiveHandler(orderService *order.Service, trackingService *tracking.Service, cfg *config.Config, logger *logrus.Logger) *LiveHandler {
	return &LiveHandler{
		orderService:    orderService,
		trackingService: trackingService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || middleware.IsOriginAllowed(origin, cfg.Security.CORSAllowedOrigins)
			},
			HandshakeTimeout: 10 * time.Second,
		},
		config: cfg,
		logger: logger,
	}
}

// liveFrame is one message on the live socket
type liveFrame struct {
	Type   string          `json:"type"`
	Order  gin.H           `json:"order,omitempty"`
	Health tracking.Health `json:"health,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Live handles GET /orders/:id/live. The first frame is the polled order;
// after that every status change and every feed health change is pushed.
// The socket is closed once the order is completed or cancelled.
func (h *LiveHandler) Live(c *gin.Context) {
	polled, err := h.orderService.Get(c.Request.Context(), middleware.GetTokenFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request.Context()))
	defer cancel()

	go readPump(conn, cancel)
	go pingLoop(ctx, conn)

	log := h.logger.WithFields(logrus.Fields{
		"order_id":   polled.ID,
		"session_id": middleware.GetSessionID(c),
	})
	log.Debug("Live order view opened")

	tracker := tracking.NewTracker(*polled)
	current := tracker.Current()
	if err := h.write(conn, h.orderFrame(current)); err != nil {
		return
	}
	if current.Status.IsTerminal() {
		h.close(conn)
		return
	}

	sub := h.trackingService.Watch(ctx, *polled)
	defer sub.Stop()

	err = tracker.Follow(ctx, sub, func(ev tracking.Event, merged order.Order) error {
		if ev.Update != nil {
			if err := h.write(conn, h.orderFrame(merged)); err != nil {
				return err
			}
			if merged.Status.IsTerminal() {
				return errOrderSettled
			}
			return nil
		}

		frame := liveFrame{Type: "health", Health: ev.Health}
		if ev.Err != nil {
			frame.Error = ev.Err.Error()
		}
		return h.write(conn, frame)
	})
	log = log.WithField("feed_health", sub.Health())
	if feedErr := sub.LastError(); feedErr != nil {
		log = log.WithField("feed_error", feedErr.Error())
	}
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, errOrderSettled) {
		log = log.WithError(err)
	}
	log.Debug("Live order view ended")

	h.close(conn)
}

func (h *LiveHandler) close(conn *websocket.Conn) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(h.config.Feed.LiveWriteTimeout))
}

func (h *LiveHandler) orderFrame(o order.Order) liveFrame {
	return liveFrame{Type: "order", Order: orderView(&o, h.config.Shop.Name)}
}

func (h *LiveHandler) write(conn *websocket.Conn, frame liveFrame) error {
	if err := conn.SetWriteDeadline(time.Now().Add(h.config.Feed.LiveWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(frame)
}

// readPump discards client messages and cancels the view once the client
// goes away
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(2 * pingInterval))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(2 * pingInterval))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}
}
