package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"carbon-shop/marketplace-backend/internal/notifications"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 64
)

// ErrBroadcastFull is returned when the hub cannot accept another event.
var ErrBroadcastFull = errors.New("broadcast channel full")

// ErrClosed is returned once the manager has been shut down.
var ErrClosed = errors.New("websocket manager closed")

// Manager upgrades mediator connections and streams audit events to them.
// The feed is one-way: client messages other than control frames are ignored.
type Manager struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
	stopOnce sync.Once
}

// Connection represents a WebSocket client connection
type Connection struct {
	ID          string
	UserID      int64
	Conn        *websocket.Conn
	Send        chan notifications.Event
	ConnectedAt time.Time
}

// Hub owns the connection set; only its run goroutine touches connections.
type Hub struct {
	connections map[*Connection]bool
	broadcast   chan notifications.Event
	register    chan *Connection
	unregister  chan *Connection
	stop        chan struct{}
	count       atomic.Int64
	logger      *zap.Logger
}

// NewManager creates a new WebSocket manager
func NewManager(logger *zap.Logger) *Manager {
	hub := &Hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan notifications.Event, 256),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		stop:        make(chan struct{}),
		logger:      logger,
	}

	go hub.run()

	return &Manager{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Callers are authenticated by bearer token before the upgrade.
				return true
			},
		},
	}
}

// HandleConnection upgrades the request and subscribes it to the event feed.
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request, userID int64) (*Connection, error) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:          uuid.New().String(),
		UserID:      userID,
		Conn:        conn,
		Send:        make(chan notifications.Event, sendBuffer),
		ConnectedAt: time.Now(),
	}

	select {
	case m.hub.register <- connection:
	case <-m.hub.stop:
		conn.Close()
		return nil, ErrClosed
	}

	go m.readPump(connection)
	go m.writePump(connection)

	return connection, nil
}

// Publish implements notifications.Publisher by broadcasting to all mediators.
func (m *Manager) Publish(_ context.Context, event notifications.Event) error {
	select {
	case <-m.hub.stop:
		return ErrClosed
	default:
	}

	select {
	case m.hub.broadcast <- event:
		return nil
	default:
		return ErrBroadcastFull
	}
}

// GetConnectionCount returns the number of subscribed connections
func (m *Manager) GetConnectionCount() int {
	return int(m.hub.count.Load())
}

// Close disconnects every client and stops the hub.
func (m *Manager) Close() {
	m.stopOnce.Do(func() {
		close(m.hub.stop)
	})
}

// readPump drains control frames so pongs extend the read deadline.
func (m *Manager) readPump(conn *Connection) {
	defer func() {
		select {
		case m.hub.unregister <- conn:
		case <-m.hub.stop:
		}
		conn.Conn.Close()
	}()

	conn.Conn.SetReadLimit(512)
	conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.Conn.SetPongHandler(func(string) error {
		conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.logger.Warn("WebSocket read error", zap.Error(err), zap.String("connection_id", conn.ID))
			}
			return
		}
	}
}

// writePump pumps events from the hub to the WebSocket connection
func (m *Manager) writePump(conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-conn.Send:
			conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// run runs the hub in its own goroutine
func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.connections[conn] = true
			h.count.Add(1)
			h.logger.Debug("Connection registered", zap.String("connection_id", conn.ID), zap.Int64("user_id", conn.UserID))

		case conn := <-h.unregister:
			h.remove(conn)

		case event := <-h.broadcast:
			for conn := range h.connections {
				select {
				case conn.Send <- event:
				default:
					// slow consumer
					h.remove(conn)
				}
			}

		case <-h.stop:
			for conn := range h.connections {
				h.remove(conn)
			}
			return
		}
	}
}

func (h *Hub) remove(conn *Connection) {
	if _, ok := h.connections[conn]; !ok {
		return
	}
	delete(h.connections, conn)
	close(conn.Send)
	h.count.Add(-1)
	h.logger.Debug("Connection unregistered", zap.String("connection_id", conn.ID), zap.Int64("user_id", conn.UserID))
}
