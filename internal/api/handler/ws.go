package handler

import (
	"net/http"
	"strconv"

	"pairchat/backend/internal/chathub"
	"pairchat/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket оновлює HTTP-з'єднання до WebSocket та приєднує сесію до
// розмови з користувачем із path-параметра. Ключ розмови виводиться з пари
// {поточний користувач, співрозмовник} - однаковий для обох сторін.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	userID := currentUserID(c)

	self, err := h.Storage.GetUserByID(userID)
	if err != nil || self == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return
	}

	peerID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || peerID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid peer id"})
		return
	}
	peer, err := h.Storage.GetUserByID(uint(peerID))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve peer"})
		return
	}
	if peer == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Peer not found"})
		return
	}
	// Роль визначає, кому можна писати: звичайний користувач - лише операторам.
	if !self.IsOperator && !peer.IsOperator {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Peer is not an operator"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		SessionID:       uuid.New().String(),
		UserID:          self.ID,
		DisplayName:     self.DisplayName,
		ConversationKey: chathub.PairKey(self.ID, peer.ID),
		Conn:            conn,
		Hub:             h.Hub,
		Send:            make(chan models.ChatMessage, chathub.SendBufferSize),
	}

	// Реєстрація сесії в Hub та запуск pumps
	h.Hub.RegisterCh <- client
	client.Run()
}
