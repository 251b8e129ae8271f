package session

import (
	"context"
	"errors"
)

// Session tracks one user's progress through the order flow. Amount == 0
// means no plan has been selected yet; a session with Amount set always
// carries the UDID it was derived from.
type Session struct {
	UDID      string `json:"udid"`
	Amount    int    `json:"amount,omitempty"`
	PaymentID string `json:"payment_id,omitempty"`
}

// PaymentPending reports whether the user has picked a plan and the bot is
// waiting for a payment screenshot.
func (s Session) PaymentPending() bool {
	return s.Amount != 0
}

// ErrNotFound is returned by Store.Get when the user has no active session.
var ErrNotFound = errors.New("session not found")

// Store keeps per-user sessions. Operations on a single user's key must be
// linearizable; there is no cross-key atomicity requirement.
type Store interface {
	Get(ctx context.Context, userID int64) (Session, error)
	Set(ctx context.Context, userID int64, s Session) error
	Clear(ctx context.Context, userID int64) error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
