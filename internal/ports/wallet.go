package ports

import "context"

// PrizeAward is a single currency grant for a user.
type PrizeAward struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// WalletPort manages game currency. Used to settle the season prize when a
// human houseguest wins the jury vote.
type WalletPort interface {
	// Balance retrieves the current coin balance for a user.
	Balance(ctx context.Context, userID string) (int64, error)

	// Award applies the given prize grants.
	Award(ctx context.Context, awards []PrizeAward) error
}
