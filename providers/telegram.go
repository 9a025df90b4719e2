package providers

import (
	"context"
	"errors"
	"fmt"

	"ordergrab/config"
	"ordergrab/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	if chatID == 0 {
		return nil, errors.New("telegram admin chat id is required")
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to start telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text))
	return err
}

// SetupTelegram registers the telegram notifier when a bot token is configured.
func SetupTelegram(cfg *config.Config) error {
	if cfg.TelegramBotToken == "" {
		return nil
	}
	n, err := NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
	if err != nil {
		return err
	}
	RegisterNotifier("telegram", n)
	logging.Logger.Info("✅ Telegram notifications enabled", zap.String("bot", n.bot.Self.UserName))
	return nil
}
