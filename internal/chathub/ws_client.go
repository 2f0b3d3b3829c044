package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"pairchat/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// SendBufferSize is the outbound queue per session; a session that falls
	// this far behind is dropped by the hub.
	SendBufferSize = 256
)

// WebSocketClient реалізує інтерфейс chathub.Client поверх gorilla/websocket.
// Одна фізична WS-сесія = один WebSocketClient; після disconnect завжди
// створюється нова сесія з новим приєднанням.
type WebSocketClient struct {
	SessionID       string
	UserID          uint
	DisplayName     string
	ConversationKey string
	Conn            *websocket.Conn
	Hub             *Hub
	Send            chan models.ChatMessage

	closeOnce sync.Once
}

// --- Реалізація методів інтерфейсу ---

func (c *WebSocketClient) GetSessionID() string                       { return c.SessionID }
func (c *WebSocketClient) GetUserID() uint                            { return c.UserID }
func (c *WebSocketClient) GetDisplayName() string                     { return c.DisplayName }
func (c *WebSocketClient) GetConversationKey() string                 { return c.ConversationKey }
func (c *WebSocketClient) GetSendChannel() chan<- models.ChatMessage { return c.Send }

// Run запускає 'pumps' для WebSocket
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close закриває Send канал (що зупинить writePump). Безпечний для повторного виклику.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
	// readPump зупиниться сам, коли Conn.Close() буде викликано в його defer
}

// readPump читає повідомлення з WebSocket і передає їх у Hub.
// Важливо: ключ розмови та відправник штампуються з сесії, а не з payload -
// сесія не може вкинути повідомлення в чужу розмову.
func (c *WebSocketClient) readPump() {
	// Unregister runs no matter how the connection ended.
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var payload models.InboundPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			// Пропускаємо невірне повідомлення, з'єднання лишається відкритим
			log.Printf("Error decoding JSON from session %s: %v", c.SessionID, err)
			continue
		}

		c.Hub.IncomingCh <- models.ChatMessage{
			ConversationKey: c.ConversationKey,
			SenderID:        c.UserID,
			SenderName:      c.DisplayName,
			RecipientID:     payload.RecipientID,
			Text:            payload.Message,
		}
	}
}

// writePump читає повідомлення з каналу Send і записує їх у WebSocket.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Канал закрито хабом, закриваємо з'єднання WS
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			dataToWrite, err := json.Marshal(message.Outbound())
			if err != nil {
				log.Printf("Error encoding JSON for session %s: %v", c.SessionID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(dataToWrite)

			// Перевіряємо, чи є ще повідомлення у каналі (для ефективності)
			n := len(c.Send)
			for i := 0; i < n; i++ {
				nextMsg, ok := <-c.Send
				if !ok {
					break
				}
				extraData, _ := json.Marshal(nextMsg.Outbound())
				w.Write(extraData)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			// Надсилаємо Ping для підтримки з'єднання активним
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
