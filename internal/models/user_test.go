package models_test

import (
	"reflect"
	"strings"
	"testing"

	"pairchat/backend/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

// TestUserSetPassword verifies hashing never stores the plaintext and that
// verification round-trips.
func TestUserSetPassword(t *testing.T) {
	user := &models.User{Username: "alice", DisplayName: "Alice"}

	err := user.SetPassword("correct horse battery staple")

	assert.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "correct horse", "hash must not contain the plaintext")
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2"), "expected a bcrypt hash")

	assert.True(t, user.CheckPassword("correct horse battery staple"))
	assert.False(t, user.CheckPassword("wrong password"))
	assert.False(t, user.CheckPassword(""))
}

func TestUserCheckPassword_EmptyHash(t *testing.T) {
	user := &models.User{Username: "bob"}
	assert.False(t, user.CheckPassword("anything"), "no hash set means no password matches")
}

// TestUserStructTags verifies that struct tags are correctly defined for GORM and JSON.
func TestUserStructTags(t *testing.T) {
	userType := reflect.TypeOf(models.User{})

	usernameField, found := userType.FieldByName("Username")
	assert.True(t, found, "Username field should exist")
	assert.Contains(t, usernameField.Tag.Get("gorm"), "uniqueIndex", "Username should have unique index")

	hashField, found := userType.FieldByName("PasswordHash")
	assert.True(t, found, "PasswordHash field should exist")
	assert.Equal(t, "-", hashField.Tag.Get("json"), "PasswordHash must never be serialized")

	operatorField, found := userType.FieldByName("IsOperator")
	assert.True(t, found, "IsOperator field should exist")
	assert.Contains(t, operatorField.Tag.Get("gorm"), "default:false")

	specField, found := userType.FieldByName("Specialties")
	assert.True(t, found, "Specialties field should exist")
	assert.Contains(t, specField.Tag.Get("gorm"), "type:text[]", "Specialties should use PostgreSQL array type")
}

func TestUserSpecialtiesArray(t *testing.T) {
	user := models.User{
		Username:    "op1",
		DisplayName: "Operator One",
		IsOperator:  true,
		Specialties: pq.StringArray{"billing", "tech"},
	}

	assert.Len(t, user.Specialties, 2)
	assert.Contains(t, user.Specialties, "billing")
	assert.Contains(t, user.Specialties, "tech")
}
