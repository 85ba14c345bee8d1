package app

import (
	"errors"
	"fmt"

	"housegame/internal/domain"
)

// Service contains the house-game use-cases operating on domain state. Every
// command takes the current state, validates it against its gate, and returns
// a fresh state value; the input state is never mutated. Rejected commands
// return the input state unchanged together with a sentinel error; the host
// logs and drops it, so players see rejected commands as silent no-ops.
type Service struct {
	jurySize   int
	povPlayers int
}

// NewService constructs a Service. Non-positive tuning values fall back to
// the standard seven-member jury and six-player veto competition.
func NewService(jurySize, povPlayers int) *Service {
	if jurySize <= 0 {
		jurySize = 7
	}
	if povPlayers <= 0 {
		povPlayers = 6
	}
	return &Service{jurySize: jurySize, povPlayers: povPlayers}
}

var (
	ErrTerminalPhase     = errors.New("season has reached the jury vote")
	ErrPrematureCommand  = errors.New("command fired while its gate is closed")
	ErrInvalidSelection  = errors.New("selection outside the legal pool")
	ErrTooFewCompetitors = errors.New("not enough competitors to start a season")
	ErrSeasonFinished    = errors.New("season already has a winner")
)

// CastEntry seeds one competitor into a new season.
type CastEntry struct {
	ID    string
	Name  string
	Human bool
}

// StartSeason builds the initial state for a season: full cast, week one,
// phase week_start, and the supplied RNG seed.
func (s *Service) StartSeason(season int, seed uint32, cast []CastEntry) (*domain.GameState, []Event, error) {
	if len(cast) < MinCastSize {
		return nil, nil, ErrTooFewCompetitors
	}

	g := &domain.GameState{
		Season:      season,
		Week:        1,
		Phase:       domain.PhaseWeekStart,
		Seed:        seed,
		Competitors: make(map[string]*domain.Competitor, len(cast)),
		Votes:       make(map[string]string),
	}
	for _, entry := range cast {
		if entry.ID == "" || g.Competitors[entry.ID] != nil {
			return nil, nil, ErrInvalidSelection
		}
		g.Competitors[entry.ID] = &domain.Competitor{
			ID:     entry.ID,
			Name:   entry.Name,
			Status: domain.StatusActive,
			Human:  entry.Human,
		}
		g.CastOrder = append(g.CastOrder, entry.ID)
	}

	g.AppendTv(domain.TvGame, fmt.Sprintf("Season %d begins with %d houseguests.", season, len(cast)))

	events := []Event{{
		Kind:    EventSeasonStarted,
		Payload: SeasonStartedPayload{Season: season, Week: 1},
	}}
	return g, events, nil
}

func stateChanged(g *domain.GameState) Event {
	return Event{
		Kind:    EventStateChanged,
		Payload: StateChangedPayload{Phase: g.Phase, Week: g.Week},
	}
}

// nameOf resolves a competitor display name for feed text.
func nameOf(g *domain.GameState, id string) string {
	if c := g.Competitor(id); c != nil {
		return c.Name
	}
	return id
}
