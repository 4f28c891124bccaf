package interfaces

import (
	"context"
	"io"

	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

// Notifier delivers outbound messages on state transitions. Delivery
// is best effort: callers log failures and never propagate them.
type Notifier interface {
	// Send addresses the user behind the given ID.
	Send(ctx context.Context, id user.ID, text string) error
	// Alert addresses the operations channel.
	Alert(ctx context.Context, text string) error
}

// DocumentStore persists raw document bytes and returns a stable
// reference. The core stores only the reference string, never bytes.
type DocumentStore interface {
	Save(ctx context.Context, name string, r io.Reader) (ref string, err error)
}
