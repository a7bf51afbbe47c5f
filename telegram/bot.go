package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rohan-debug788/SkillSwap/internal/config"
	"github.com/Rohan-debug788/SkillSwap/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const sendTimeout = 10 * time.Second

// sender is the slice of the Bot API the notifier uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TokenVerifier resolves a SkillSwap access token to a user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// ChatLinker stores the Telegram chat a user wants notices in.
type ChatLinker interface {
	LinkTelegramChat(ctx context.Context, userID string, chatID int64) error
}

// Bot sends offline notices and lets users link their chat with /link <token>.
type Bot struct {
	api      *tgbotapi.BotAPI
	sender   sender
	verifier TokenVerifier
	linker   ChatLinker
}

func InitBot(cfg *config.Config, verifier TokenVerifier, linker ChatLinker) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	if cfg.AppEnv == "development" {
		api.Debug = true
	}

	logger.Info("Authorized on account", "username", api.Self.UserName)
	return &Bot{api: api, sender: api, verifier: verifier, linker: linker}, nil
}

// SendNotice delivers a plain text message to chatID.
func (b *Bot) SendNotice(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.sender.Send(msg); err != nil {
		return fmt.Errorf("send telegram notice: %w", err)
	}
	return nil
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	logger.Info("Telegram bot listening for updates")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
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
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}

	chatID := update.Message.Chat.ID
	switch update.Message.Command() {
	case "start":
		b.reply(ctx, chatID, "Welcome to SkillSwap! Send /link <access token> to get notified about requests and messages while you are away.")
	case "link":
		b.handleLink(ctx, chatID, strings.TrimSpace(update.Message.CommandArguments()))
	default:
		b.reply(ctx, chatID, "Unknown command. Try /link <access token>.")
	}
}

func (b *Bot) handleLink(ctx context.Context, chatID int64, token string) {
	if token == "" {
		b.reply(ctx, chatID, "Usage: /link <access token>")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	userID, err := b.verifier.Verify(ctx, token)
	if err != nil {
		b.reply(ctx, chatID, "That token is invalid or expired.")
		return
	}
	if err := b.linker.LinkTelegramChat(ctx, userID, chatID); err != nil {
		logger.Error("Failed to link telegram chat", "user_id", userID, "error", err)
		b.reply(ctx, chatID, "Could not link your account right now, please try again later.")
		return
	}

	logger.Info("Telegram chat linked", "user_id", userID)
	b.reply(ctx, chatID, "Linked! You will get a notice here when something happens while you are offline.")
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.SendNotice(ctx, chatID, text); err != nil {
		logger.Warn("Failed to reply on telegram", "chat_id", chatID, "error", err)
	}
}
