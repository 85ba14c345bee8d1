package ports

import (
	"context"

	"housegame/internal/domain"
)

// MinigameLauncher hands an outstanding competition to the external resolver.
// The engine parks in the matching minigame sub-phase until the resolver
// reports a winner back through the minigame-result command; it never polls.
type MinigameLauncher interface {
	Launch(ctx context.Context, contest domain.MinigameContext) error
}
