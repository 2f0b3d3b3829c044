package handler

import (
	"pairchat/backend/internal/chathub"
	"pairchat/backend/internal/config"
	"pairchat/backend/internal/storage"
)

// Handler містить посилання на Hub, Storage та конфіг.
type Handler struct {
	Hub     *chathub.Hub
	Storage storage.Storage
	Cfg     *config.Config
}

func NewHandler(hub *chathub.Hub, s storage.Storage, cfg *config.Config) *Handler {
	return &Handler{Hub: hub, Storage: s, Cfg: cfg}
}
