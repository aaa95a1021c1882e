package wshub

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coder/websocket"
)

// Frame is the JSON envelope for every message on the wire, in both
// directions.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Client represents a single WebSocket connection in the hub.
type Client struct {
	PlayerID string
	Conn     *websocket.Conn
	Send     chan []byte
}

// WritePump reads from the Send channel and writes to the WebSocket connection.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		}
	}
}

// Hub manages WebSocket connections and their room membership. It is the
// delivery layer for game events; it never interprets them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	rooms   map[string]map[string]struct{}
	// roomOf lets LeaveRoom work without knowing the room.
	roomOf map[string]string
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]struct{}),
		roomOf:  make(map[string]string),
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.PlayerID] = c
}

// Unregister removes a client, its room membership, and closes its Send
// channel.
func (h *Hub) Unregister(playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c, ok := h.clients[playerID]
	if !ok {
		return
	}
	close(c.Send)
	delete(h.clients, playerID)
	h.leaveRoomLocked(playerID)
}

// JoinRoom records a player's room membership so room-scoped events reach
// them. A player is in at most one room.
func (h *Hub) JoinRoom(playerID, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(playerID)
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[string]struct{})
	}
	h.rooms[roomID][playerID] = struct{}{}
	h.roomOf[playerID] = roomID
}

// LeaveRoom removes a player from whatever room it is in.
func (h *Hub) LeaveRoom(playerID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(playerID)
}

func (h *Hub) leaveRoomLocked(playerID string) {
	roomID, ok := h.roomOf[playerID]
	if !ok {
		return
	}
	delete(h.roomOf, playerID)
	if members := h.rooms[roomID]; members != nil {
		delete(members, playerID)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

// RoomClients reports how many connected clients a room has.
func (h *Hub) RoomClients(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ToRoom sends an event to every client in a room. Non-blocking: drops if
// a client's channel is full.
func (h *Hub) ToRoom(roomID, event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id := range h.rooms[roomID] {
		if c, ok := h.clients[id]; ok {
			send(c, data)
		}
	}
}

// ToPlayer sends an event to a single client, if connected.
func (h *Hub) ToPlayer(playerID, event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if c, ok := h.clients[playerID]; ok {
		send(c, data)
	}
}

// Broadcast sends an event to every connected client.
func (h *Hub) Broadcast(event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, c := range h.clients {
		send(c, data)
	}
}

func encode(event string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[WSHub] Marshal error for %s: %v\n", event, err)
		return nil, err
	}
	data, err := json.Marshal(Frame{Event: event, Data: raw})
	if err != nil {
		log.Printf("[WSHub] Marshal error for %s: %v\n", event, err)
		return nil, err
	}
	return data, nil
}

func send(c *Client, data []byte) {
	select {
	case c.Send <- data:
	default:
		// Drop message if channel full
	}
}
