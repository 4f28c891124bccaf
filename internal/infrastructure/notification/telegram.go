package notification

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stayhub/wallet-service/internal/application/interfaces"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/pkg/logger"
)

// TelegramNotifier posts wallet events to the operations chat. User
// messages are tagged with the user id so the support team can relay
// them; the delivery model is fire-and-forget either way.
type TelegramNotifier struct {
	bot       *tgbotapi.BotAPI
	opsChatID int64
	logger    logger.Logger
}

func NewTelegramNotifier(token string, opsChatID int64, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" {
		return nil, errors.New("empty telegram bot token")
	}
	if opsChatID == 0 {
		return nil, errors.New("no telegram ops chat configured")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, opsChatID: opsChatID, logger: logger}, nil
}

var _ interfaces.Notifier = (*TelegramNotifier)(nil)

func (n *TelegramNotifier) Send(_ context.Context, id user.ID, text string) error {
	msg := tgbotapi.NewMessage(n.opsChatID, fmt.Sprintf("[user %d] %s", id, text))

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}

	return nil
}

func (n *TelegramNotifier) Alert(_ context.Context, text string) error {
	msg := tgbotapi.NewMessage(n.opsChatID, text)

	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("send telegram alert: %w", err)
	}

	return nil
}
