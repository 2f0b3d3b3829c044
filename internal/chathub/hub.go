package chathub

import (
	"log"
	"strings"

	"pairchat/backend/internal/models"
	"pairchat/backend/internal/storage"
)

// OfflineNotifier отримує сповіщення, коли одержувач не має живої сесії
// у розмові. Повідомлення на цей момент вже збережено в БД.
type OfflineNotifier interface {
	NotifyOffline(recipient *models.User, senderName, preview string)
}

// Hub is the single owner of registry mutations and the broadcast dispatcher.
// All join/leave/incoming traffic flows through its channels and is processed
// by one goroutine (Run), which serializes per-conversation message order.
type Hub struct {
	registry *Registry

	RegisterCh   chan Client
	UnregisterCh chan Client
	IncomingCh   chan models.ChatMessage

	Storage  storage.Storage
	notifier OfflineNotifier
}

// NewHub створює Hub над переданим Registry та Storage.
func NewHub(reg *Registry, s storage.Storage) *Hub {
	return &Hub{
		registry:     reg,
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		IncomingCh:   make(chan models.ChatMessage),
		Storage:      s,
	}
}

// SetNotifier wires an optional offline-recipient notifier.
func (h *Hub) SetNotifier(n OfflineNotifier) {
	h.notifier = n
}

// Registry returns the registry the hub was constructed with.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Run - головний диспетчер. Запускається однією goroutine з main.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.RegisterCh:
			h.register(c)
		case c := <-h.UnregisterCh:
			h.unregister(c)
		case msg := <-h.IncomingCh:
			h.handleIncoming(msg)
		}
	}
}

func (h *Hub) register(c Client) {
	h.registry.Join(c.GetConversationKey(), c)
	if err := h.Storage.SetUserOnline(c.GetUserID()); err != nil {
		log.Printf("WARNING: failed to mark user %d online: %v", c.GetUserID(), err)
	}
	log.Printf("session %s joined %s (user %d)", c.GetSessionID(), c.GetConversationKey(), c.GetUserID())
}

// unregister is unconditional cleanup: it runs for normal closes, errors and
// timeouts alike, and is safe to hit twice for the same session.
func (h *Hub) unregister(c Client) {
	key := c.GetConversationKey()
	if !h.registry.Contains(key, c) {
		return
	}
	h.registry.Leave(key, c)
	c.Close()

	if h.registry.SessionsForUser(c.GetUserID()) == 0 {
		if err := h.Storage.SetUserOffline(c.GetUserID()); err != nil {
			log.Printf("WARNING: failed to mark user %d offline: %v", c.GetUserID(), err)
		}
	}
	log.Printf("session %s left %s", c.GetSessionID(), key)
}

// handleIncoming runs the per-message pipeline: validate, resolve the
// recipient, persist, then broadcast. Invalid sends are dropped silently -
// the sender learns nothing, matching the permissive protocol.
func (h *Hub) handleIncoming(msg models.ChatMessage) {
	if strings.TrimSpace(msg.Text) == "" || msg.RecipientID == 0 {
		return
	}

	recipient, err := h.Storage.GetUserByID(msg.RecipientID)
	if err != nil {
		log.Printf("ERROR: recipient lookup %d: %v", msg.RecipientID, err)
		return
	}
	if recipient == nil {
		log.Printf("dropping message from %d: unknown recipient %d", msg.SenderID, msg.RecipientID)
		return
	}

	// Durable write first. A message that could not be recorded is never
	// broadcast, so delivered history always matches stored history.
	stored, err := h.Storage.SaveMessage(msg.SenderID, msg.RecipientID, msg.Text)
	if err != nil {
		log.Printf("ERROR: failed to save message from %d to %d: %v", msg.SenderID, msg.RecipientID, err)
		return
	}
	msg.Timestamp = stored.CreatedAt

	h.broadcast(msg.ConversationKey, msg)

	if !h.registry.UserPresent(msg.ConversationKey, recipient.ID) {
		if err := h.Storage.IncrUnread(recipient.ID, msg.SenderID); err != nil {
			log.Printf("WARNING: unread counter for user %d: %v", recipient.ID, err)
		}
		if h.notifier != nil {
			h.notifier.NotifyOffline(recipient, msg.SenderName, msg.Text)
		}
	}
}

// broadcast delivers msg to every session in the key's snapshot, including
// the sender's own session - the sender sees its message through the same
// path as everyone else. A recipient whose buffer is full is dropped from
// the conversation; the remaining deliveries proceed regardless.
func (h *Hub) broadcast(key string, msg models.ChatMessage) {
	for _, client := range h.registry.Snapshot(key) {
		select {
		case client.GetSendChannel() <- msg:
		default:
			log.Printf("dropping slow session %s in %s", client.GetSessionID(), key)
			h.unregister(client)
		}
	}
}
