package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/insta-competitor-bot/internal/domain"
	"github.com/orgball2608/insta-competitor-bot/internal/scenes"
	"github.com/orgball2608/insta-competitor-bot/internal/storage"
	"github.com/orgball2608/insta-competitor-bot/internal/telegram"
	"github.com/orgball2608/insta-competitor-bot/pkg/logger"
	"go.uber.org/fx"
)

const msgWelcome = "Привет! Я помогу отслеживать Instagram-конкурентов.\n\n" +
	"/projects — проекты\n" +
	"/competitors — конкуренты\n" +
	"/hashtags — хэштеги\n" +
	"/scrape — запуск скрейпинга\n" +
	"/reels — собранные Reels"

// commandScenes maps bot commands to scene names.
var commandScenes = map[string]string{
	"projects":    scenes.SceneProjects,
	"competitors": scenes.SceneCompetitors,
	"hashtags":    scenes.SceneHashtags,
	"scrape":      scenes.SceneScraping,
	"reels":       scenes.SceneReels,
}

// stubCommands are registered topics that answer with a notice while the
// sections are built out.
var stubCommands = map[string]bool{
	"analytics":     true,
	"notifications": true,
	"collections":   true,
	"chatbot":       true,
}

// menuScenes maps the persistent menu button labels to the same targets as
// the commands. Matching is exact-text.
var menuScenes = map[string]string{
	"📁 Проекты":    scenes.SceneProjects,
	"👥 Конкуренты": scenes.SceneCompetitors,
	"#️⃣ Хэштеги":   scenes.SceneHashtags,
	"🔎 Скрейпинг":  scenes.SceneScraping,
	"🎬 Reels":      scenes.SceneReels,
}

var menuStubs = map[string]bool{
	"📊 Аналитика":   true,
	"🔔 Уведомления": true,
	"📚 Коллекции":   true,
	"🤖 Чат-бот":     true,
}

type Opts struct {
	fx.In

	Telegram telegram.Client
	Storage  storage.Adapter
	Manager  *scenes.Manager
	Logger   logger.Logger
}

// Bot owns the update loop: commands and menu buttons request scene entry,
// callbacks and free text are routed into the active scene.
type Bot struct {
	tg      telegram.Client
	storage storage.Adapter
	manager *scenes.Manager
	logger  logger.Logger
}

func New(opts Opts) *Bot {
	return &Bot{
		tg:      opts.Telegram,
		storage: opts.Storage,
		manager: opts.Manager,
		logger:  opts.Logger.WithComponent("Bot"),
	}
}

// Run consumes updates until the context is cancelled. Telegram delivers
// updates for one chat in order; chats interleave freely.
func (b *Bot) Run(ctx context.Context) {
	if err := b.registerCommands(); err != nil {
		b.logger.Warn("Failed to register bot commands", "error", err)
	}

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = 30
	updates := b.tg.GetUpdatesChan(updateCfg)

	b.logger.Info("Bot update loop started")
	for {
		select {
		case <-ctx.Done():
			b.tg.StopReceivingUpdates()
			b.logger.Info("Bot update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.Message == nil {
			return
		}
		b.manager.HandleCallback(ctx, cb.Message.Chat.ID, cb.ID, cb.Data)

	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if scene, ok := menuScenes[msg.Text]; ok {
		b.manager.Enter(ctx, scene, chatID)
		return
	}
	if menuStubs[msg.Text] {
		b.tg.SendMessage(chatID, scenes.MsgSectionStub)
		return
	}

	b.manager.HandleText(ctx, chatID, msg.Text)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	cmd := msg.Command()

	switch {
	case cmd == "start":
		b.registerUser(ctx, msg)
		b.tg.SendMessage(chatID, msgWelcome)

	case commandScenes[cmd] != "":
		b.manager.Enter(ctx, commandScenes[cmd], chatID)

	case stubCommands[cmd]:
		b.tg.SendMessage(chatID, scenes.MsgSectionStub)

	default:
		b.logger.Debug("Ignoring unknown command", "command", cmd, "chat_id", chatID)
	}
}

// registerUser creates the user row on first contact, carrying over the
// Telegram profile fields.
func (b *Bot) registerUser(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	profile := domain.UserProfile{
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
		LastName:  msg.From.LastName,
	}
	if _, err := b.storage.FindOrCreateUser(ctx, msg.Chat.ID, profile); err != nil {
		b.logger.Error("Failed to register user", "chat_id", msg.Chat.ID, "error", err)
	}
}

func (b *Bot) registerCommands() error {
	return b.tg.SetCommands([]tgbotapi.BotCommand{
		{Command: "projects", Description: "Проекты"},
		{Command: "competitors", Description: "Конкуренты"},
		{Command: "hashtags", Description: "Хэштеги"},
		{Command: "scrape", Description: "Запуск скрейпинга"},
		{Command: "reels", Description: "Собранные Reels"},
		{Command: "analytics", Description: "Аналитика"},
		{Command: "notifications", Description: "Уведомления"},
		{Command: "collections", Description: "Коллекции"},
		{Command: "chatbot", Description: "Чат-бот"},
	})
}
