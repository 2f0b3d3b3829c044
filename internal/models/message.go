package models

import "gorm.io/gorm"

// Message represents a saved chat message in the PostgreSQL database.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt fields;
// CreatedAt is the durable, server-assigned timestamp of the message.
type Message struct {
	gorm.Model

	// SenderID is the user ID of the message author.
	SenderID uint `gorm:"not null;index:idx_pair_msg"`
	// RecipientID is the user ID of the addressee.
	RecipientID uint `gorm:"not null;index:idx_pair_msg"`
	// Text is the message body. Empty messages are never persisted.
	Text string `gorm:"type:text;not null"`
	// IsRead is set once the recipient has acknowledged the conversation.
	IsRead bool `gorm:"default:false;index"`
}
