package app

import "housegame/internal/domain"

// EventKind identifies emitted engine events for host dispatch.
type EventKind string

const (
	EventSeasonStarted   EventKind = "season_started"
	EventStateChanged    EventKind = "state_changed"
	EventMinigameStarted EventKind = "minigame_started"
	EventSeasonEnded     EventKind = "season_ended"
)

// Event is an engine event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // competitor ids; empty means broadcast
}

type SeasonStartedPayload struct {
	Season int
	Week   int
}

type StateChangedPayload struct {
	Phase domain.Phase
	Week  int
}

type MinigameStartedPayload struct {
	Context domain.MinigameContext
}

type SeasonEndedPayload struct {
	WinnerID string
	Votes    map[string]string
}
