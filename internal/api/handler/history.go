package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type historyEntry struct {
	SenderUsername string `json:"sender_username"`
	SenderID       uint   `json:"sender_id"`
	Text           string `json:"text"`
	Timestamp      string `json:"timestamp"`
}

// GetHistory повертає всю переписку між поточним користувачем та
// співрозмовником, за зростанням часу. Чистий read - нічого не змінює.
func (h *Handler) GetHistory(c *gin.Context) {
	userID := currentUserID(c)

	peerID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || peerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid peer id"})
		return
	}

	self, err := h.Storage.GetUserByID(userID)
	if err != nil || self == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown user"})
		return
	}
	peer, err := h.Storage.GetUserByID(uint(peerID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve peer"})
		return
	}
	if peer == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Peer not found"})
		return
	}

	messages, err := h.Storage.GetHistory(self.ID, peer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	usernames := map[uint]string{
		self.ID: self.Username,
		peer.ID: peer.Username,
	}

	entries := make([]historyEntry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, historyEntry{
			SenderUsername: usernames[m.SenderID],
			SenderID:       m.SenderID,
			Text:           m.Text,
			Timestamp:      m.CreatedAt.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, gin.H{"messages": entries})
}

// MarkRead позначає прочитаними повідомлення від співрозмовника до поточного
// користувача та скидає лічильник непрочитаного.
func (h *Handler) MarkRead(c *gin.Context) {
	userID := currentUserID(c)

	peerID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil || peerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid peer id"})
		return
	}

	if err := h.Storage.MarkMessagesRead(uint(peerID), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages read"})
		return
	}
	if err := h.Storage.ResetUnread(userID, uint(peerID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset unread counter"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
