package ws

import (
	"sync"

	"github.com/michealohagwam/dta-backend-clean/internal/logger"
)

// Event is the wire format for realtime pushes.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type Manager struct {
	clients    map[string]*Client // keyed by user ID
	register   chan *Client
	unregister chan *Client
	broadcast  chan Event
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Event),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if old, ok := m.clients[client.UserID]; ok {
				close(old.Send)
			}
			m.clients[client.UserID] = client
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if current, ok := m.clients[client.UserID]; ok && current == client {
				close(client.Send)
				delete(m.clients, client.UserID)
			}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client unregistered", "user_id", client.UserID, "total", total)

		case event := <-m.broadcast:
			m.broadcastEvent(event)
		}
	}
}

// BroadcastToUser pushes an event to one user's connection, if any. A full
// send buffer drops the client rather than blocking the caller.
func (m *Manager) BroadcastToUser(userID string, event string, payload any) {
	m.mu.RLock()
	client, ok := m.clients[userID]
	m.mu.RUnlock()
	if !ok {
		return
	}

	select {
	case client.Send <- Event{Event: event, Data: payload}:
	default:
		go func() { m.unregister <- client }()
		logger.Warn("ws client dropped: full send buffer", "user_id", userID)
	}
}

// BroadcastAll pushes an event to every connected client.
func (m *Manager) BroadcastAll(event string, payload any) {
	m.broadcast <- Event{Event: event, Data: payload}
}

func (m *Manager) broadcastEvent(event Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for userID, client := range m.clients {
		select {
		case client.Send <- event:
		default:
			go func(c *Client) { m.unregister <- c }(client)
			logger.Warn("ws client dropped: full send buffer", "user_id", userID)
		}
	}
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clients[userID]
	return ok
}
