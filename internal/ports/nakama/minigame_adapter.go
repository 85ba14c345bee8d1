package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"housegame/internal/domain"
	"housegame/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// DispatcherMinigameLauncher implements ports.MinigameLauncher by broadcasting
// a minigame start message to the connected contestants.
type DispatcherMinigameLauncher struct {
	dispatcher runtime.MatchDispatcher
	presences  map[string]runtime.Presence
}

// NewDispatcherMinigameLauncher creates a launcher bound to a match dispatcher.
func NewDispatcherMinigameLauncher(dispatcher runtime.MatchDispatcher, presences map[string]runtime.Presence) *DispatcherMinigameLauncher {
	return &DispatcherMinigameLauncher{
		dispatcher: dispatcher,
		presences:  presences,
	}
}

// Launch notifies the contest participants that their minigame is live.
// AI participants have no presence and are skipped; if no participant is
// connected the message goes to everyone so spectators can watch.
func (l *DispatcherMinigameLauncher) Launch(ctx context.Context, contest domain.MinigameContext) error {
	payload, err := json.Marshal(minigameView{
		PhaseKey:       contest.PhaseKey,
		ParticipantIDs: contest.ParticipantIDs,
		Seed:           contest.Seed,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal minigame start: %w", err)
	}

	var recipients []runtime.Presence
	for _, id := range contest.ParticipantIDs {
		if p, ok := l.presences[id]; ok {
			recipients = append(recipients, p)
		}
	}
	if len(recipients) == 0 {
		recipients = nil
	}

	if err := l.dispatcher.BroadcastMessage(OpMinigameStart, payload, recipients, nil, true); err != nil {
		return fmt.Errorf("failed to broadcast minigame start: %w", err)
	}
	return nil
}

var _ ports.MinigameLauncher = (*DispatcherMinigameLauncher)(nil)
