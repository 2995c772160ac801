package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var ErrNotConnected = errors.New("user not connected")

const writeTimeout = 5 * time.Second

// Event is the envelope pushed to portal clients.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type client struct {
	conn *websocket.Conn
	// gorilla connections support one concurrent writer
	writeMu sync.Mutex
}

// Manager keeps track of active user websocket connections.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*client // userID -> client
}

func NewManager() *Manager {
	return &Manager{connections: make(map[string]*client)}
}

// Register registers a user connection, replacing any existing one.
func (m *Manager) Register(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.connections[userID]; ok && old.conn != conn {
		// close old connection to avoid leaks
		_ = old.conn.Close()
	}
	m.connections[userID] = &client{conn: conn}
}

// Unregister removes a user connection if it is still the registered one.
func (m *Manager) Unregister(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.connections[userID]; ok && c.conn == conn {
		delete(m.connections, userID)
	}
	_ = conn.Close()
}

// Send writes a text message to a user if connected.
func (m *Manager) Send(userID string, payload []byte) error {
	m.mu.RLock()
	c, ok := m.connections[userID]
	m.mu.RUnlock()
	if !ok || c == nil {
		return ErrNotConnected
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Notify pushes {"type": eventType, "data": data} to the user.
func (m *Manager) Notify(userID, eventType string, data interface{}) error {
	if !m.IsConnected(userID) {
		return ErrNotConnected
	}
	payload, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		return err
	}
	return m.Send(userID, payload)
}

// IsConnected returns whether a user is currently connected.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.connections[userID]
	return ok
}

// List returns a copy of current connected user IDs.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.connections))
	for id := range m.connections {
		ids = append(ids, id)
	}
	return ids
}

// CloseAll drops every connection, used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.connections {
		_ = c.conn.Close()
		delete(m.connections, id)
	}
}
