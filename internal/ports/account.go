package ports

import "context"

// AccountPort updates account profiles.
type AccountPort interface {
	// UpdateProfile applies the given username and display name to the account.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}

// WelcomeBonusPort grants the welcome bonus at most once per user.
type WelcomeBonusPort interface {
	// GrantWelcomeBonusOnce attempts to grant a one-time welcome bonus.
	// Returns granted=false when the bonus was already granted.
	GrantWelcomeBonusOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error)
}
