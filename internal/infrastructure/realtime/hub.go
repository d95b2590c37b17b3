package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rafabene/blog-backend/internal/domain/entities"
	"github.com/rafabene/blog-backend/internal/domain/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 16
)

// Upgrader aceita qualquer origem; o CORS da API já restringe os clientes HTTP
var Upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message é o envelope enviado aos assinantes
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
	Time    time.Time   `json:"time"`
}

type commentPayload struct {
	ID        string         `json:"id"`
	PostID    string         `json:"postId"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	User      *commenterInfo `json:"user,omitempty"`
}

type commenterInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub distribui eventos de comentários para as conexões inscritas em cada post
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*client]struct{}
	logger ports.Logger
}

// NewHub cria um novo Hub
func NewHub(logger ports.Logger) *Hub {
	return &Hub{
		rooms:  make(map[string]map[*client]struct{}),
		logger: logger.With("component", "realtime"),
	}
}

var _ ports.CommentPublisher = (*Hub)(nil)

// PublishComment envia o comentário aos assinantes do post; clientes lentos perdem a mensagem
func (h *Hub) PublishComment(comment *entities.Comment) {
	payload := commentPayload{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	if comment.Author != nil {
		payload.User = &commenterInfo{ID: comment.Author.ID, Name: comment.Author.Name}
	}

	h.Broadcast(comment.PostID, Message{Type: "comment", Payload: payload, Time: time.Now().UTC()})
}

// Broadcast serializa a mensagem uma única vez e a entrega a todos os clientes da sala
func (h *Hub) Broadcast(room string, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Warn("failed to marshal websocket message", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.rooms[room] {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("websocket client too slow, dropping message", "room", room)
		}
	}
}

// Serve registra a conexão na sala e bloqueia até o cliente desconectar
func (h *Hub) Serve(conn *websocket.Conn, room string) {
	c := &client{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.register(room, c)
	defer h.unregister(room, c)

	go h.writePump(c)
	h.readPump(c)
}

// ClientCount retorna o número de conexões na sala
func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) register(room string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*client]struct{})
	}
	h.rooms[room][c] = struct{}{}
	h.logger.Debug("websocket client connected", "room", room, "total", len(h.rooms[room]))
}

func (h *Hub) unregister(room string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.rooms[room]
	if !ok {
		return
	}
	if _, ok := clients[c]; ok {
		delete(clients, c)
		close(c.send)
	}
	if len(clients) == 0 {
		delete(h.rooms, room)
	}
	h.logger.Debug("websocket client disconnected", "room", room)
}

// readPump descarta mensagens do cliente e mantém o deadline via pong
func (h *Hub) readPump(c *client) {
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
