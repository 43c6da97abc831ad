package config

import "time"

const (
	// ConfirmToken is the literal argument required by /start_quest and
	// /stop_quest before the transition is performed.
	ConfirmToken = "yes"

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Timeout for any single external call (chat API, media download).
	CollaboratorTimeout = 10 * time.Second

	// Broadcast fan-out concurrency.
	BroadcastConcurrency = 8

	// Default task cost in points.
	DefaultTaskCost = 1
)
