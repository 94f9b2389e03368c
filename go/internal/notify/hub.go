package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// HubConfig holds configuration for notification WebSocket connections
type HubConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

func DefaultHubConfig() HubConfig {
	return HubConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

// Hub pushes notifications to every connected UI client
type Hub struct {
	mu          sync.RWMutex
	connections map[*client]bool

	upgrader    websocket.Upgrader
	config      HubConfig
	broadcastCh chan Notification
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

func NewHub(config HubConfig) *Hub {
	return &Hub{
		connections: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan Notification, 256),
	}
}

// Start processes broadcasts until ctx is done
func (h *Hub) Start(ctx context.Context) {
	log.Info().Msg("notification hub started")

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			log.Info().Msg("notification hub shutting down")
			return
		case n := <-h.broadcastCh:
			h.broadcast(n)
		}
	}
}

// Deliver queues n for broadcast, dropping it if the queue is full
func (h *Hub) Deliver(n Notification) {
	select {
	case h.broadcastCh <- n:
	default:
		log.Warn().Str("notification_id", n.ID.String()).Msg("broadcast channel full, dropping notification")
	}
}

// ServeHTTP upgrades the request and registers the connection
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return
	}

	c := &client{
		id:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, 64),
		hub:  h,
	}
	h.register(c)

	go c.writePump()
	go c.readPump()

	log.Info().Str("connection_id", c.id).Msg("notification connection established")
}

// ConnectionCount returns the number of connected clients
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
		log.Info().Str("connection_id", c.id).Msg("notification connection unregistered")
	}
}

func (h *Hub) broadcast(n Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal notification for broadcast")
		return
	}

	// Sends happen under the read lock so unregister cannot close a send
	// channel in between.
	var slow []*client
	h.mu.RLock()
	for c := range h.connections {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Warn().Str("connection_id", c.id).Msg("connection send buffer full, closing connection")
		h.unregister(c)
		c.conn.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.connections))
	for c := range h.connections {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		h.unregister(c)
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.hub.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().Err(err).Str("connection_id", c.id).Msg("failed to write notification")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().Err(err).Str("connection_id", c.id).Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump only services control frames; clients never send commands
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("connection_id", c.id).Msg("unexpected WebSocket close error")
			}
			return
		}
	}
}

