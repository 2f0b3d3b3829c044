package chathub

import "pairchat/backend/internal/models"

// Client is the interface for one live connection joined to a conversation.
// It abstracts the underlying transport, allowing the hub to manage
// different client types uniformly (WebSocket in production, mocks in tests).
type Client interface {
	// GetSessionID returns the unique identifier of this connection.
	// Two tabs of the same user are two distinct sessions.
	GetSessionID() string
	// GetUserID returns the authenticated user behind the connection.
	GetUserID() uint
	// GetDisplayName returns the user's display name, used as the broadcast sender.
	GetDisplayName() string
	// GetConversationKey returns the key the session joined at connect time.
	// All broadcasts for this session use this key, never one derived from payloads.
	GetConversationKey() string

	// GetSendChannel returns the channel the hub pushes outbound messages into.
	// It is a send-only channel from the hub's point of view.
	GetSendChannel() chan<- models.ChatMessage

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the client's outbound channel. Safe to call more than once.
	Close()
}
