package models

import "time"

// InboundPayload - те, що клієнт надсилає через WebSocket.
// Timestamp клієнта є лише довідковим; у базу йде серверний час.
type InboundPayload struct {
	Message     string `json:"message"`
	RecipientID uint   `json:"recipient_id"`
	Timestamp   string `json:"timestamp"`
}

// OutboundPayload is what every joined connection receives on broadcast.
type OutboundPayload struct {
	Message   string `json:"message"`
	Sender    string `json:"sender"`
	SenderID  uint   `json:"sender_id"`
	Timestamp string `json:"timestamp"`
}

// ChatMessage is the hub-internal envelope for one inbound message.
// ConversationKey, SenderID and SenderName are stamped by the session that
// read the payload, never taken from the payload itself.
type ChatMessage struct {
	ConversationKey string
	SenderID        uint
	SenderName      string
	RecipientID     uint
	Text            string
	// Timestamp is filled in after the durable write succeeds.
	Timestamp time.Time
}

// Outbound converts the envelope to the wire form sent to clients.
func (m ChatMessage) Outbound() OutboundPayload {
	return OutboundPayload{
		Message:   m.Text,
		Sender:    m.SenderName,
		SenderID:  m.SenderID,
		Timestamp: m.Timestamp.Format(time.RFC3339),
	}
}
