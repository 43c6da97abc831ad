package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	questbot "github.com/mkuznetsova/questbot"
	"github.com/mkuznetsova/questbot/internal/config"
	"github.com/mkuznetsova/questbot/internal/handler"
	"github.com/mkuznetsova/questbot/internal/middleware"
	"github.com/mkuznetsova/questbot/internal/quest"
	"github.com/mkuznetsova/questbot/internal/repository"
	"github.com/mkuznetsova/questbot/internal/storage"
	"github.com/mkuznetsova/questbot/internal/telegram"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Run migrations
	migrationsFS, err := fs.Sub(questbot.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	teams := repository.NewTeamRepo(pool)
	members := repository.NewMemberRepo(pool)
	tasks := repository.NewTaskRepo(pool)
	submissions := repository.NewSubmissionRepo(pool)
	state := repository.NewQuestStateRepo(pool)
	settings := repository.NewSettingRepo(pool)

	// Photo evidence storage
	evidence, err := storage.NewEvidenceStore(cfg.EvidenceDir)
	if err != nil {
		slog.Error("failed to init evidence store", "error", err)
		os.Exit(1)
	}

	// Handler pointer for use in the default handler closure
	var h *handler.Handler

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil {
				return
			}
			h.HandleDefault(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	slog.Info("bot info retrieved", "id", me.ID, "username", me.Username)

	// Initialize the quest engine
	chatAPI := telegram.NewChatAPI(b)
	roster := quest.NewRoster(teams, members, state, chatAPI, cfg.AdminChatID)
	lifecycle := quest.NewLifecycle(state, teams, roster, config.ConfirmToken)
	score := quest.NewAggregator(teams, tasks, submissions)
	engine := quest.NewEngine(state, teams, tasks, submissions, settings, score)

	// Initialize handler
	h = handler.New(handler.Deps{
		Bot:         b,
		Cfg:         cfg,
		Lifecycle:   lifecycle,
		Roster:      roster,
		Engine:      engine,
		Score:       score,
		Teams:       teams,
		Members:     members,
		Settings:    settings,
		Evidence:    evidence,
		BotID:       me.ID,
		BotUsername: me.Username,
	})

	// Register all handlers
	h.Register()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}
