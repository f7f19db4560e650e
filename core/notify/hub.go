// Package notify pushes status changes to connected browser UIs over
// websockets. It only reports; it never consumes the panic signal.
package notify

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"bellsync/logger"
	"bellsync/model"

	"github.com/gorilla/websocket"
)

// MessageType names a status feed message.
type MessageType string

const (
	MsgTypeHello          MessageType = "hello"           // sent once on connect
	MsgTypePanicSubmitted MessageType = "panic_submitted" // a new panic was raised
	MsgTypePanicDelivered MessageType = "panic_delivered" // a device picked it up
	MsgTypeDataChanged    MessageType = "data_changed"    // songs or events changed
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
	sendBuffer     = 16
)

// Message is the envelope of every feed frame.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// Client is one websocket subscriber.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub fans feed messages out to every connected client.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu   sync.RWMutex
	done chan struct{}
	once sync.Once

	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Run is the hub's main loop; it returns after Stop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			logger.Debug("status client connected", logger.String("remote", client.conn.RemoteAddr().String()))

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeClient(client)
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow reader; drop it rather than stall everyone else.
					h.removeClient(client)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for client := range h.clients {
				h.removeClient(client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and closes every client.
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.done) })
}

// removeClient must be called with mu held.
func (h *Hub) removeClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	logger.Debug("status client disconnected", logger.String("remote", client.conn.RemoteAddr().String()))
}

// ClientCount reports how many subscribers are connected.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish queues a message for every client. It never blocks; when the
// queue is full the message is dropped.
func (h *Hub) Publish(msgType MessageType, data any) {
	payload, err := encode(msgType, data)
	if err != nil {
		logger.Error("failed to encode status message", logger.String("type", string(msgType)), logger.ErrorField(err))
		return
	}
	select {
	case h.broadcast <- payload:
	case <-h.done:
	default:
		logger.Warn("status feed queue full, dropping message", logger.String("type", string(msgType)))
	}
}

func (h *Hub) PanicSubmitted(rec model.PanicRecord) { h.Publish(MsgTypePanicSubmitted, rec) }
func (h *Hub) PanicDelivered(rec model.PanicRecord) { h.Publish(MsgTypePanicDelivered, rec) }
func (h *Hub) DataChanged() { h.Publish(MsgTypeDataChanged, nil) }

// Serve upgrades the request, sends hello as the first frame, and then
// blocks until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, hello any) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	if payload, err := encode(MsgTypeHello, hello); err == nil {
		client.send <- payload
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return nil
	}

	go client.writePump()
	client.readPump()
	return nil
}

func encode(msgType MessageType, data any) ([]byte, error) {
	msg := Message{Type: msgType, Timestamp: time.Now().UnixMilli()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = raw
	}
	return json.Marshal(msg)
}

// readPump discards inbound frames; it exists to process pongs and to notice
// the client leaving.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("status feed read error", logger.ErrorField(err))
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
