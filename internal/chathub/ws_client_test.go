package chathub_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pairchat/backend/internal/chathub"
	"pairchat/backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// newWSPair returns the server side of a live WebSocket connection and the
// dialed peer that reads what the session writes.
func newWSPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()

	connCh := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		connCh <- conn
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	peer, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { peer.Close() })

	return <-connCh, peer
}

// Queued messages are flushed to the socket when the session is closed with
// messages still buffered: every real message goes out, no zero-value frames
// are written, and the connection ends with a close frame.
func TestWebSocketClient_FlushesQueuedMessagesOnClose(t *testing.T) {
	storageMock := new(MockStorage)
	storageMock.On("SetUserOnline", mock.AnythingOfType("uint")).Return(nil)
	storageMock.On("SetUserOffline", mock.AnythingOfType("uint")).Return(nil)

	hub := newTestHub(storageMock)
	go hub.Run()

	serverConn, peer := newWSPair(t)

	client := &chathub.WebSocketClient{
		SessionID:       "s1",
		UserID:          1,
		DisplayName:     "alice",
		ConversationKey: chathub.PairKey(1, 2),
		Conn:            serverConn,
		Hub:             hub,
		Send:            make(chan models.ChatMessage, 8),
	}

	ts := time.Now()
	for _, text := range []string{"one", "two", "three"} {
		client.Send <- models.ChatMessage{
			ConversationKey: client.ConversationKey,
			SenderID:        1,
			SenderName:      "alice",
			RecipientID:     2,
			Text:            text,
			Timestamp:       ts,
		}
	}

	// Channel closed before the pumps start: everything buffered must still
	// be delivered before the close frame.
	client.Close()
	client.Run()

	peer.SetReadDeadline(time.Now().Add(2 * time.Second))

	var got []models.OutboundPayload
	for {
		_, raw, err := peer.ReadMessage()
		if err != nil {
			break
		}
		// Batched writes concatenate JSON objects into one frame.
		dec := json.NewDecoder(bytes.NewReader(raw))
		for {
			var payload models.OutboundPayload
			if err := dec.Decode(&payload); err != nil {
				break
			}
			got = append(got, payload)
		}
	}

	assert.Len(t, got, 3)
	texts := make([]string, 0, len(got))
	for _, payload := range got {
		assert.NotEmpty(t, payload.Message, "no zero-value frames may be written")
		assert.Equal(t, "alice", payload.Sender)
		texts = append(texts, payload.Message)
	}
	assert.Equal(t, []string{"one", "two", "three"}, texts)
}
