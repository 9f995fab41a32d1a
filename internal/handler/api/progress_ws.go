package api

import (
	"net/http"
	"sync"
	"time"

	models "TrendML/internal/domain/models"
	xlogger "TrendML/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
	wsSendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ProgressHub fans pipeline progress events out to websocket subscribers.
// It implements the ProgressSink consumed by the dataset usecase. Emit never
// blocks; slow subscribers drop events.
type ProgressHub struct {
	mu      sync.RWMutex
	clients map[*wsClient]struct{}
	l       *xlogger.Logger
}

type wsClient struct {
	conn *websocket.Conn
	send chan models.ProgressEvent
}

func NewProgressHub(l *xlogger.Logger) *ProgressHub {
	return &ProgressHub{
		clients: make(map[*wsClient]struct{}),
		l:       l,
	}
}

func (h *ProgressHub) RegisterRoutes(e *echo.Echo) {
	e.GET("/ws/progress", h.Serve)
}

// Emit broadcasts ev to every connected subscriber.
func (h *ProgressHub) Emit(ev models.ProgressEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			// subscriber is not keeping up
		}
	}
}

// Serve upgrades the connection and streams progress events until the peer
// goes away.
func (h *ProgressHub) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		if h.l != nil {
			h.l.Warn("ws upgrade failed", xlogger.Error(err))
		}
		return err
	}

	client := &wsClient{
		conn: conn,
		send: make(chan models.ProgressEvent, wsSendBuffer),
	}
	h.add(client)
	if h.l != nil {
		h.l.Debug("ws subscriber connected", xlogger.String("remote", conn.RemoteAddr().String()))
	}

	go h.writeLoop(client)
	h.readLoop(client)
	return nil
}

func (h *ProgressHub) add(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *ProgressHub) remove(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// readLoop drains the connection so close and pong frames are processed.
func (h *ProgressHub) readLoop(c *wsClient) {
	defer func() {
		h.remove(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *ProgressHub) writeLoop(c *wsClient) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case ev, ok := <-c.send:
			if !ok {
				_ = c.conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(wsWriteWait))
				return
			}
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
