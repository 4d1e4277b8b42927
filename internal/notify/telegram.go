package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mhakimi/tribeland/pkg/logger"
)

// Notifier delivers operational alerts from the tick scheduler. The tick
// engine itself never blocks on it; the scheduler loop calls it after a
// failed tick has already rolled back.
type Notifier interface {
	TickFailed(runID string, tickErr error)
}

// TelegramNotifier posts alerts to an ops chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram notifier: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) TickFailed(runID string, tickErr error) {
	text := fmt.Sprintf("⚠️ Game tick failed\nrun: %s\nerror: %v", runID, tickErr)
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		logger.Error("Failed to deliver tick failure alert", "error", err)
	}
}

// NopNotifier is used when no alert transport is configured.
type NopNotifier struct{}

func (NopNotifier) TickFailed(runID string, tickErr error) {}
