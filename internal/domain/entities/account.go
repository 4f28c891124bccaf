package entities

import (
	"time"

	"github.com/stayhub/wallet-service/internal/domain/entities/user"
)

// Account holds one balance record per user. Balance is kept in the
// smallest currency unit and never goes negative.
type Account struct {
	UserID    user.ID
	Balance   int64
	UpdatedAt time.Time
}
