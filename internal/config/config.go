package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken    string `env:"BOT_TOKEN,required"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// AdminChatID is the organizer chat: the only place admin commands are
	// accepted and the destination of audit notifications.
	AdminChatID int64 `env:"ADMIN_CHAT_ID,required"`

	// EvidenceDir is where downloaded photo evidence is kept.
	EvidenceDir string `env:"EVIDENCE_DIR" envDefault:"evidence"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// IsAdminChat reports whether the chat is the organizer chat.
func (c *Config) IsAdminChat(chatID int64) bool {
	return chatID == c.AdminChatID
}
