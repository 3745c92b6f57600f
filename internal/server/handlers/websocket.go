// internal/server/handlers/websocket.go

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"sentimentdash/internal/domain/dashboard"
	"sentimentdash/internal/logger"
)

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64

	// Time allowed for one rerun
	RenderTimeout time.Duration
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 64 * 1024,
		RenderTimeout:  30 * time.Second,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serverMessage is sent from the server to the UI
type serverMessage struct {
	Type     string           `json:"type"`
	ClientID string           `json:"client_id,omitempty"`
	Views    *dashboard.Views `json:"views,omitempty"`
	Error    string           `json:"error,omitempty"`
	Time     time.Time        `json:"time"`
}

// WebSocketClient is one connected dashboard
type WebSocketClient struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	handler *DashboardHandler
	config  WebSocketConfig
	log     logger.Logger

	closeOnce sync.Once
}

// DashboardWebSocket streams a fresh set of views for every criteria message
func (h *DashboardHandler) DashboardWebSocket(config WebSocketConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Warn("Failed to upgrade to WebSocket", logger.Error(err))
			return
		}

		client := &WebSocketClient{
			id:      uuid.New().String(),
			conn:    conn,
			send:    make(chan []byte, 16),
			handler: h,
			config:  config,
			log:     h.log,
		}
		client.log = h.log.With(logger.String("client_id", client.id))

		if h.metrics != nil {
			h.metrics.WebSocketConns.Inc()
		}

		client.push(serverMessage{Type: "welcome", ClientID: client.id})

		go client.writePump()
		go client.readPump()

		client.log.Info("New WebSocket connection", logger.String("remote_addr", r.RemoteAddr))
	}
}

// readPump handles criteria messages until the connection drops. It is the
// only sender on c.send and closes it on exit.
func (c *WebSocketClient) readPump() {
	defer func() {
		close(c.send)
		c.closeConnection()
	}()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("WebSocket error", logger.Error(err))
			}
			break
		}

		c.push(c.processIncomingMessage(message))
	}
}

// writePump pumps queued messages to the WebSocket connection
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(c.config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// processIncomingMessage reruns the dashboard for one criteria message
func (c *WebSocketClient) processIncomingMessage(message []byte) serverMessage {
	var msg CriteriaMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		return serverMessage{Type: "error", Error: "malformed message"}
	}
	if msg.Type != "criteria" {
		return serverMessage{Type: "error", Error: "unknown message type: " + msg.Type}
	}

	criteria, err := msg.Criteria()
	if err != nil {
		return serverMessage{Type: "error", Error: err.Error()}
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.config.RenderTimeout)
	defer cancel()

	views, err := c.handler.Rerun(ctx, criteria, TransportWebSocket)
	if err != nil {
		c.log.Error("Failed to render dashboard", logger.Error(err))
		return serverMessage{Type: "error", Error: "Failed to load data"}
	}

	return serverMessage{Type: "views", Views: &views}
}

func (c *WebSocketClient) push(msg serverMessage) {
	msg.Time = time.Now().UTC()
	data, err := json.Marshal(msg)
	if err != nil {
		c.log.Error("Failed to marshal WebSocket message", logger.Error(err))
		return
	}
	select {
	case c.send <- data:
	default:
		c.log.Warn("WebSocket send buffer full, dropping message", logger.String("type", msg.Type))
	}
}

// closeConnection closes the WebSocket connection once
func (c *WebSocketClient) closeConnection() {
	c.closeOnce.Do(func() {
		c.conn.Close()
		if c.handler.metrics != nil {
			c.handler.metrics.WebSocketConns.Dec()
		}
		c.log.Info("WebSocket connection closed")
	})
}
