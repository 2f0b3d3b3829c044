package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"pairchat/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the persistence contract the hub and handlers depend on.
// PostgreSQL (via GORM) owns users and message history; Redis keeps the
// volatile presence set and unread counters.
type Storage interface {
	SaveUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetOperators() ([]models.User, error)
	SetOperator(username string, operator bool) error

	SaveMessage(senderID, recipientID uint, text string) (*models.Message, error)
	GetHistory(userA, userB uint) ([]models.Message, error)
	MarkMessagesRead(senderID, recipientID uint) error

	SetUserOnline(userID uint) error
	SetUserOffline(userID uint) error
	GetOnlineUserIDs() (map[uint]bool, error)
	IncrUnread(recipientID, senderID uint) error
	ResetUnread(recipientID, senderID uint) error
	GetUnread(recipientID, senderID uint) (int64, error)
}

const onlineSetKey = "online_users"

func unreadKey(recipientID, senderID uint) string {
	return fmt.Sprintf("unread:%d:%d", recipientID, senderID)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// SaveUser зберігає користувача в PostgreSQL
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// GetUserByID повертає користувача за ID, або nil без помилки, якщо не знайдено.
func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername повертає користувача за username, або nil, якщо не знайдено.
func (s *Service) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOperators returns all support-staff users.
func (s *Service) GetOperators() ([]models.User, error) {
	var operators []models.User
	if err := s.DB.Where("is_operator = ?", true).Order("username asc").Find(&operators).Error; err != nil {
		log.Printf("ERROR: Failed to list operators: %v", err)
		return nil, err
	}
	return operators, nil
}

// SetOperator вмикає або вимикає прапорець оператора для користувача.
func (s *Service) SetOperator(username string, operator bool) error {
	res := s.DB.Model(&models.User{}).
		Where("username = ?", username).
		Update("is_operator", operator)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %q not found", username)
	}
	return nil
}

// SaveMessage durably records one message. The timestamp is assigned here,
// by the store, at the moment of the write; the returned record carries it.
func (s *Service) SaveMessage(senderID, recipientID uint, text string) (*models.Message, error) {
	msg := models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Text:        text,
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message from %d to %d: %v", senderID, recipientID, err)
		return nil, err
	}
	return &msg, nil
}

// GetHistory returns every message between the two users, both directions,
// oldest first; ties on created_at break by insertion order. Pure read.
func (s *Service) GetHistory(userA, userB uint) ([]models.Message, error) {
	var history []models.Message
	err := s.DB.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("created_at asc").
		Order("id asc").
		Find(&history).Error
	if err != nil {
		log.Printf("ERROR: Failed to get history for %d/%d: %v", userA, userB, err)
		return nil, err
	}
	return history, nil
}

// MarkMessagesRead позначає прочитаними всі повідомлення від sender до recipient.
func (s *Service) MarkMessagesRead(senderID, recipientID uint) error {
	return s.DB.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", senderID, recipientID, false).
		Update("is_read", true).Error
}

// SetUserOnline додає користувача до множини присутності в Redis.
func (s *Service) SetUserOnline(userID uint) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.SAdd(s.Ctx, onlineSetKey, strconv.FormatUint(uint64(userID), 10)).Err()
}

// SetUserOffline видаляє користувача з множини присутності.
func (s *Service) SetUserOffline(userID uint) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.SRem(s.Ctx, onlineSetKey, strconv.FormatUint(uint64(userID), 10)).Err()
}

// GetOnlineUserIDs повертає множину ID користувачів, які зараз онлайн.
func (s *Service) GetOnlineUserIDs() (map[uint]bool, error) {
	online := make(map[uint]bool)
	if s.Redis == nil {
		return online, nil
	}
	members, err := s.Redis.SMembers(s.Ctx, onlineSetKey).Result()
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			continue
		}
		online[uint(id)] = true
	}
	return online, nil
}

// IncrUnread збільшує лічильник непрочитаного для пари одержувач/відправник.
func (s *Service) IncrUnread(recipientID, senderID uint) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Incr(s.Ctx, unreadKey(recipientID, senderID)).Err()
}

// ResetUnread обнуляє лічильник непрочитаного.
func (s *Service) ResetUnread(recipientID, senderID uint) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(s.Ctx, unreadKey(recipientID, senderID)).Err()
}

// GetUnread повертає лічильник непрочитаного; 0, якщо ключа немає.
func (s *Service) GetUnread(recipientID, senderID uint) (int64, error) {
	if s.Redis == nil {
		return 0, nil
	}
	val, err := s.Redis.Get(s.Ctx, unreadKey(recipientID, senderID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}
