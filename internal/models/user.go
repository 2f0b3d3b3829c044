package models

import (
	"github.com/lib/pq" // Необхідний для pq.StringArray
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User представляє учасника чату.
// Звичайні користувачі пишуть операторам; оператори відповідають усім.
type User struct {
	gorm.Model

	Username    string `gorm:"uniqueIndex;not null" json:"username"`
	DisplayName string `gorm:"not null" json:"display_name"`
	// PasswordHash is a bcrypt hash; never serialized.
	PasswordHash string `gorm:"not null" json:"-"`
	// IsOperator marks support staff. Regular users may only contact operators.
	IsOperator bool `gorm:"default:false;index" json:"is_operator"`
	// Specialties - теги оператора (наприклад, "billing", "tech")
	Specialties pq.StringArray `gorm:"type:text[]" json:"specialties,omitempty"`
}

// SetPassword hashes the plaintext password and stores the hash.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
