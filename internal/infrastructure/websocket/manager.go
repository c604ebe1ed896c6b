package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"nyayapath/internal/domain/entity"
	"nyayapath/pkg/logger"
)

// Client is one player's WebSocket connection.
type Client struct {
	PlayerID string
	Conn     *websocket.Conn
	Send     chan []byte
}

// Event is the wire envelope for server pushes.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Manager tracks active connections, one per player, and implements the
// battle and chat push seams.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if old, ok := m.clients[client.PlayerID]; ok {
					close(old.Send)
				}
				m.clients[client.PlayerID] = client
				m.mutex.Unlock()
				logger.Debug("Client registered: %s", client.PlayerID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.PlayerID]; ok && current == client {
					delete(m.clients, client.PlayerID)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("Client unregistered: %s", client.PlayerID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// PushBattleState sends a battle transition to the player's connection,
// if one exists. Best-effort: a full buffer drops the event rather than
// blocking the state machine.
func (m *Manager) PushBattleState(playerID string, state *entity.BattleState) {
	m.send(playerID, Event{Type: "battle_state", Payload: state})
}

// PushChatMessage delivers a figure's reply.
func (m *Manager) PushChatMessage(playerID string, message *entity.Message) {
	m.send(playerID, Event{Type: "chat_message", Payload: message})
}

func (m *Manager) send(playerID string, event Event) {
	m.mutex.RLock()
	client, ok := m.clients[playerID]
	m.mutex.RUnlock()
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal websocket event: %v", err)
		return
	}

	select {
	case client.Send <- data:
	default:
		logger.Warn("Dropping websocket event for %s: send buffer full", playerID)
	}
}

// ReadPump drains the connection until the client goes away. Incoming
// frames are ignored; all client actions go through the REST API.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Websocket read error for %s: %v", c.PlayerID, err)
			}
			break
		}
	}
}

// WritePump sends queued events to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("Websocket write error for %s: %v", c.PlayerID, err)
			return
		}
	}
}
