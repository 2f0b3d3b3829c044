package chathub_test

import (
	"sync"

	"pairchat/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of the storage.Storage interface.
// It uses testify/mock to allow flexible expectation setting in tests.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetOperators() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) SetOperator(username string, operator bool) error {
	args := m.Called(username, operator)
	return args.Error(0)
}

func (m *MockStorage) SaveMessage(senderID, recipientID uint, text string) (*models.Message, error) {
	args := m.Called(senderID, recipientID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) GetHistory(userA, userB uint) ([]models.Message, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) MarkMessagesRead(senderID, recipientID uint) error {
	args := m.Called(senderID, recipientID)
	return args.Error(0)
}

func (m *MockStorage) SetUserOnline(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) SetUserOffline(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) GetOnlineUserIDs() (map[uint]bool, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]bool), args.Error(1)
}

func (m *MockStorage) IncrUnread(recipientID, senderID uint) error {
	args := m.Called(recipientID, senderID)
	return args.Error(0)
}

func (m *MockStorage) ResetUnread(recipientID, senderID uint) error {
	args := m.Called(recipientID, senderID)
	return args.Error(0)
}

func (m *MockStorage) GetUnread(recipientID, senderID uint) (int64, error) {
	args := m.Called(recipientID, senderID)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotifier records offline notifications.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyOffline(recipient *models.User, senderName, preview string) {
	m.Called(recipient, senderName, preview)
}

// mockClient is a test double for the chathub.Client interface.
// RecvChannel buffers what the hub delivered to this session.
type mockClient struct {
	sessionID       string
	userID          uint
	displayName     string
	conversationKey string
	RecvChannel     chan models.ChatMessage

	closeOnce sync.Once
}

func newMockClient(sessionID string, userID uint, displayName string, buffer int) *mockClient {
	return &mockClient{
		sessionID:   sessionID,
		userID:      userID,
		displayName: displayName,
		RecvChannel: make(chan models.ChatMessage, buffer),
	}
}

func (c *mockClient) GetSessionID() string       { return c.sessionID }
func (c *mockClient) GetUserID() uint            { return c.userID }
func (c *mockClient) GetDisplayName() string     { return c.displayName }
func (c *mockClient) GetConversationKey() string { return c.conversationKey }

func (c *mockClient) GetSendChannel() chan<- models.ChatMessage { return c.RecvChannel }

func (c *mockClient) Run() {}

func (c *mockClient) Close() {
	c.closeOnce.Do(func() {
		close(c.RecvChannel)
	})
}

// Received drains and returns everything delivered so far.
func (c *mockClient) Received() []models.ChatMessage {
	var messages []models.ChatMessage
	for {
		select {
		case msg, ok := <-c.RecvChannel:
			if !ok {
				return messages
			}
			messages = append(messages, msg)
		default:
			return messages
		}
	}
}
