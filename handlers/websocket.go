package handlers

import (
	"encoding/json"
	"net/http"

	"sage-portal/auth"
	"sage-portal/logger"
	"sage-portal/usecases"
	"sage-portal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// incomingMessage is the envelope sent by portal clients.
type incomingMessage struct {
	Type      string `json:"type"` // ping | mark_read
	MessageID string `json:"message_id,omitempty"`
}

// WSHandler groups dependencies for websocket flows
type WSHandler struct {
	mgr      *ws.Manager
	messages *usecases.MessageUseCase
}

func NewWSHandler(mgr *ws.Manager, messages *usecases.MessageUseCase) *WSHandler {
	return &WSHandler{mgr: mgr, messages: messages}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleUserWS upgrades to websocket and keeps the connection registered
// for realtime notifications.
// GET /ws?token=<session token>
func (h *WSHandler) HandleUserWS(c *gin.Context) {
	userID := auth.UserID(c)
	log := logger.L().With(zap.String("user_id", userID))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	h.mgr.Register(userID, conn)
	log.Debug("user connected")

	defer func() {
		h.mgr.Unregister(userID, conn)
		log.Debug("user disconnected")
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("websocket read failed", zap.Error(err))
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var msg incomingMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug("invalid websocket payload", zap.Error(err))
			continue
		}

		switch msg.Type {
		case "ping":
			_ = h.mgr.Notify(userID, "pong", nil)
		case "mark_read":
			if err := h.messages.MarkAsRead(msg.MessageID, userID); err != nil {
				_ = h.mgr.Notify(userID, "error", gin.H{"error": err.Error()})
				continue
			}
			_ = h.mgr.Notify(userID, "message_read", gin.H{"id": msg.MessageID})
		default:
			log.Debug("unknown websocket message type", zap.String("type", msg.Type))
		}
	}
}

// GetConnectedUsers GET /api/v1/admin/connected-users
func (h *WSHandler) GetConnectedUsers(c *gin.Context) {
	users := h.mgr.List()
	c.JSON(http.StatusOK, gin.H{"data": users, "count": len(users)})
}
