package handler

// Minimal same-package test for the unexported token helpers; everything
// observable from outside goes through middleware_test.go.

import (
	"testing"

	"pairchat/backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	h := &Handler{Cfg: &config.Config{JWTSecret: "test-secret"}}

	token, err := h.issueToken(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := h.parseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}
