package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// newServer upgrades every request and registers it under the user query param.
func newServer(t *testing.T, m *Manager) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		userID := r.URL.Query().Get("user")
		m.Register(userID, conn)
		defer m.Unregister(userID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestManager_NotifyConnectedUser(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	m := NewManager()
	srv := newServer(t, m)
	conn := dial(t, srv, "user-1")

	require.Eventually(t, func() bool { return m.IsConnected("user-1") }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"user-1"}, m.List())

	require.NoError(t, m.Notify("user-1", "message", map[string]string{"content": "Bonjour"}))

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, "message", event.Type)
	assert.Equal(t, "Bonjour", event.Data["content"])

	assert.ErrorIs(t, m.Notify("user-2", "message", nil), ErrNotConnected)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return !m.IsConnected("user-1") }, time.Second, 10*time.Millisecond)

	m.CloseAll()
	srv.Close()
}

func TestManager_ReplacesPreviousConnection(t *testing.T) {
	m := NewManager()
	srv := newServer(t, m)

	first := dial(t, srv, "user-1")
	defer first.Close()
	require.Eventually(t, func() bool { return m.IsConnected("user-1") }, time.Second, 10*time.Millisecond)

	second := dial(t, srv, "user-1")
	defer second.Close()

	// the first socket is closed by the server once replaced
	_ = first.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := first.ReadMessage()
	assert.Error(t, err)

	require.NoError(t, m.Notify("user-1", "ping", nil))
	_ = second.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := second.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ping","data":null}`, string(raw))
}
