package handler

import (
	"github.com/go-telegram/bot"
	"github.com/mkuznetsova/questbot/internal/config"
	"github.com/mkuznetsova/questbot/internal/quest"
	"github.com/mkuznetsova/questbot/internal/repository"
	"github.com/mkuznetsova/questbot/internal/storage"
)

// Handler holds all dependencies needed by command and chat event handlers.
type Handler struct {
	bot         *bot.Bot
	cfg         *config.Config
	lifecycle   *quest.Lifecycle
	roster      *quest.Roster
	engine      *quest.Engine
	score       *quest.Aggregator
	teams       *repository.TeamRepo
	members     *repository.MemberRepo
	settings    *repository.SettingRepo
	evidence    *storage.EvidenceStore
	botID       int64
	botUsername string
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot         *bot.Bot
	Cfg         *config.Config
	Lifecycle   *quest.Lifecycle
	Roster      *quest.Roster
	Engine      *quest.Engine
	Score       *quest.Aggregator
	Teams       *repository.TeamRepo
	Members     *repository.MemberRepo
	Settings    *repository.SettingRepo
	Evidence    *storage.EvidenceStore
	BotID       int64
	BotUsername string
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:         deps.Bot,
		cfg:         deps.Cfg,
		lifecycle:   deps.Lifecycle,
		roster:      deps.Roster,
		engine:      deps.Engine,
		score:       deps.Score,
		teams:       deps.Teams,
		members:     deps.Members,
		settings:    deps.Settings,
		evidence:    deps.Evidence,
		botID:       deps.BotID,
		botUsername: deps.BotUsername,
	}
}
