package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/fencing-tournament/models"
)

const MessageRankingsUpdated = "RANKINGS_UPDATED"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 256
)

type Message struct {
	Type    string      `json:"type"`
	EventID int         `json:"event_id"`
	Payload interface{} `json:"payload"`
}

// RankingEntry is one line of the standings pushed to subscribers.
type RankingEntry struct {
	Position int    `json:"position"`
	PlayerID int    `json:"player_id"`
	Username string `json:"username,omitempty"`
	Score    int    `json:"score"`
}

type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	EventID  int
	isClosed bool
	mu       sync.Mutex
}

func NewClient(hub *Hub, conn *websocket.Conn, eventID int) *Client {
	return &Client{
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan []byte, sendBufferSize),
		EventID: eventID,
	}
}

// Hub fans ranking snapshots out to the clients watching each event.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	rooms      map[int]map[*Client]bool
	mu         sync.RWMutex
	done       chan struct{}
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[int]map[*Client]bool),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.EventID]; !ok {
				h.rooms[client.EventID] = make(map[*Client]bool)
			}
			h.rooms[client.EventID][client] = true
			size := len(h.rooms[client.EventID])
			h.mu.Unlock()
			h.logger.Debug("live client registered", slog.Int("event_id", client.EventID), slog.Int("clients", size))

		case client := <-h.Unregister:
			h.mu.Lock()
			h.removeLocked(client)
			h.mu.Unlock()

		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for _, room := range h.rooms {
				for client := range room {
					h.removeLocked(client)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) removeLocked(client *Client) {
	room, ok := h.rooms[client.EventID]
	if !ok || !room[client] {
		return
	}
	client.close()
	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, client.EventID)
	}
	h.logger.Debug("live client unregistered", slog.Int("event_id", client.EventID), slog.Int("clients", len(room)))
}

// Join registers c with its event room. It reports false once the hub has stopped.
func (h *Hub) Join(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregister(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// RoomSize returns the number of clients watching eventID.
func (h *Hub) RoomSize(eventID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[eventID])
}

// BroadcastToRoom sends message to every client of the event. Slow clients are skipped.
func (h *Hub) BroadcastToRoom(eventID int, message interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	roomClients, ok := h.rooms[eventID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("failed to marshal live message", slog.Int("event_id", eventID), slog.Any("error", err))
		return
	}

	for client := range roomClients {
		if !client.trySend(messageBytes) {
			h.logger.Warn("live client send buffer full, message dropped", slog.Int("event_id", eventID))
		}
	}
}

// PublishRankings broadcasts the ordered standings of an event.
func (h *Hub) PublishRankings(eventID int, rankings []models.PlayerRank) {
	entries := make([]RankingEntry, 0, len(rankings))
	for i, pr := range rankings {
		entry := RankingEntry{Position: i + 1, PlayerID: pr.PlayerID, Score: pr.Score}
		if pr.Player != nil {
			entry.Username = pr.Player.Username
		}
		entries = append(entries, entry)
	}
	h.BroadcastToRoom(eventID, Message{Type: MessageRankingsUpdated, EventID: eventID, Payload: entries})
}

func (c *Client) trySend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isClosed {
		return true
	}
	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.isClosed {
		close(c.Send)
		c.isClosed = true
	}
}

// ReadPump drains incoming frames so pongs and close messages are processed.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { return c.Conn.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("live client closed unexpectedly", slog.Int("event_id", c.EventID), slog.Any("error", err))
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Hub.logger.Debug("live client write failed", slog.Int("event_id", c.EventID), slog.Any("error", err))
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
