package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type contactEntry struct {
	ID          uint     `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name"`
	Online      bool     `json:"online"`
	Unread      int64    `json:"unread"`
	Specialties []string `json:"specialties,omitempty"`
}

// GetContacts повертає операторів, до яких може писати поточний користувач,
// з прапорцем присутності та кількістю непрочитаного.
func (h *Handler) GetContacts(c *gin.Context) {
	userID := currentUserID(c)

	operators, err := h.Storage.GetOperators()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list contacts"})
		return
	}

	online, err := h.Storage.GetOnlineUserIDs()
	if err != nil {
		// Присутність - best effort; список контактів важливіший
		log.Printf("WARNING: failed to read presence set: %v", err)
		online = map[uint]bool{}
	}

	contacts := make([]contactEntry, 0, len(operators))
	for _, op := range operators {
		if op.ID == userID {
			continue
		}
		unread, err := h.Storage.GetUnread(userID, op.ID)
		if err != nil {
			log.Printf("WARNING: failed to read unread counter for %d/%d: %v", userID, op.ID, err)
		}
		contacts = append(contacts, contactEntry{
			ID:          op.ID,
			Username:    op.Username,
			DisplayName: op.DisplayName,
			Online:      online[op.ID],
			Unread:      unread,
			Specialties: op.Specialties,
		})
	}

	c.JSON(http.StatusOK, gin.H{"contacts": contacts})
}
