package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sage-portal/auth"
	"sage-portal/cache"
	"sage-portal/db"
	"sage-portal/entities"
	"sage-portal/geo"
	"sage-portal/repositories"
	"sage-portal/services"
	"sage-portal/usecases"
	"sage-portal/ws"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type failingPinger struct{ err error }

func (p failingPinger) Ping(ctx context.Context) error { return p.err }

func TestKeepAliveHandler(t *testing.T) {
	h := NewKeepAliveHandler(services.NewKeepAlive(failingPinger{err: errors.New("connection refused")}, time.Minute, nil))
	r := gin.New()
	r.Any("/api/keep-alive", h.Ping)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/keep-alive", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "connection refused", body["error"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/keep-alive", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String())
}

func TestCacheHandler(t *testing.T) {
	memory := cache.NewMemoryLocationCache(time.Minute)
	memory.Set("ip:1.2.3.4", &geo.Location{City: "Nice"})
	h := NewCacheHandler(memory)

	r := gin.New()
	r.GET("/stats", h.GetCacheStats)
	r.POST("/purge", h.PurgeCache)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"backend":"memory"`)
	assert.Contains(t, rec.Body.String(), `"entries":1`)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/purge", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"removed":0`)
}

func TestWebsocketPingAndMarkRead(t *testing.T) {
	database, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	profiles := repositories.NewProfilePgRepository(database)
	sender := &entities.Profile{Email: "admin@example.com", Role: entities.RoleAdmin}
	recipient := &entities.Profile{Email: "client@example.com"}
	require.NoError(t, profiles.Create(sender))
	require.NoError(t, profiles.Create(recipient))

	mgr := ws.NewManager()
	defer mgr.CloseAll()
	messages := usecases.NewMessageUseCase(repositories.NewMessagePgRepository(database), profiles, mgr, nil)
	h := NewWSHandler(mgr, messages)

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		auth.SetClaims(c, &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: c.Query("as")}})
	}, h.HandleUserWS)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?as=" + recipient.ID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return mgr.IsConnected(recipient.ID) }, time.Second, 10*time.Millisecond)

	var event ws.Event
	require.NoError(t, conn.WriteJSON(gin.H{"type": "ping"}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "pong", event.Type)

	msg, err := messages.SendMessage(sender.ID, usecases.MessageRequest{RecipientID: recipient.ID, Content: "Bonjour"})
	require.NoError(t, err)
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, usecases.EventMessage, event.Type)

	require.NoError(t, conn.WriteJSON(gin.H{"type": "mark_read", "message_id": msg.ID}))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "message_read", event.Type)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	h.GetConnectedUsers(c)
	assert.Contains(t, rec.Body.String(), recipient.ID)
}
