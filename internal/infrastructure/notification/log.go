package notification

import (
	"context"

	"github.com/stayhub/wallet-service/internal/application/interfaces"
	"github.com/stayhub/wallet-service/internal/domain/entities/user"
	"github.com/stayhub/wallet-service/pkg/logger"
)

// LogNotifier writes notifications to the application log. Used when
// no delivery channel is configured.
type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(logger logger.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ interfaces.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) Send(ctx context.Context, id user.ID, text string) error {
	n.logger.With(ctx, "user_id", id).Infof("notification: %s", text)
	return nil
}

func (n *LogNotifier) Alert(ctx context.Context, text string) error {
	n.logger.With(ctx, "channel", "ops").Infof("notification: %s", text)
	return nil
}
