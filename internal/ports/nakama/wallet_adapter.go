package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"housegame/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaWalletAdapter implements ports.WalletPort using Nakama's wallet system.
type NakamaWalletAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaWalletAdapter creates a new wallet adapter.
func NewNakamaWalletAdapter(nk runtime.NakamaModule) *NakamaWalletAdapter {
	return &NakamaWalletAdapter{
		nk: nk,
	}
}

// Balance retrieves the current gold balance for a user.
func (a *NakamaWalletAdapter) Balance(ctx context.Context, userID string) (int64, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}

	var wallet map[string]int64
	if err := json.Unmarshal([]byte(account.Wallet), &wallet); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return wallet["gold"], nil
}

// Award credits prize gold to the given users.
func (a *NakamaWalletAdapter) Award(ctx context.Context, awards []ports.PrizeAward) error {
	for _, award := range awards {
		if award.Amount <= 0 {
			continue
		}

		changes := map[string]int64{
			"gold": award.Amount,
		}

		_, _, err := a.nk.WalletUpdate(ctx, award.UserID, changes, award.Metadata, true)
		if err != nil {
			return fmt.Errorf("failed to update wallet for user %s: %w", award.UserID, err)
		}
	}
	return nil
}

var _ ports.WalletPort = (*NakamaWalletAdapter)(nil)
