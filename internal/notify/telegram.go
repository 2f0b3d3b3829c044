// Package notify sends out-of-band alerts when a message arrives for a
// recipient without a live session. The message itself is already durable;
// the alert is best effort.
package notify

import (
	"fmt"
	"log"

	"pairchat/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier шле сповіщення у налаштований Telegram-чат служби підтримки.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier authorizes the bot and returns a notifier bound to chatID.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to authorize telegram bot: %w", err)
	}
	log.Printf("Telegram notifier authorized as @%s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// NotifyOffline повідомляє чат підтримки про повідомлення для офлайн-одержувача.
// Помилка надсилання лише логується - доставка в історію вже гарантована.
func (n *TelegramNotifier) NotifyOffline(recipient *models.User, senderName, preview string) {
	text := fmt.Sprintf("📨 %s has a new message from %s:\n%s",
		recipient.DisplayName, senderName, truncate(preview, 120))

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Printf("WARNING: telegram notify for user %d failed: %v", recipient.ID, err)
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
