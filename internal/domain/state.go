package domain

// MinigameContext describes an outstanding human-involving competition. It is
// created when a final-three part includes a human competitor and destroyed
// when the external resolver supplies the winner.
type MinigameContext struct {
	PhaseKey       string
	ParticipantIDs []string
	Seed           uint32
}

// Includes reports whether id is one of the minigame participants.
func (m *MinigameContext) Includes(id string) bool {
	if m == nil {
		return false
	}
	for _, pid := range m.ParticipantIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// GameState is the authoritative state of one season. Commands never mutate a
// GameState in place; they clone it, apply the transition, and hand the new
// value back to the host, which owns the single live instance.
type GameState struct {
	Season int
	Week   int
	Phase  Phase
	Seed   uint32

	Competitors map[string]*Competitor
	CastOrder   []string

	HOHID       string
	LastHOHID   string
	NomineeIDs  []string
	POVWinnerID string

	PendingNominee1ID string
	ReplacementNeeded bool

	AwaitingNominations    bool
	AwaitingPovDecision    bool
	AwaitingPovSaveTarget  bool
	AwaitingHumanVote      bool
	AwaitingTieBreak       bool
	AwaitingFinal3Eviction bool

	TiedNomineeIDs []string

	F3Part1WinnerID string
	F3Part2WinnerID string

	Minigame *MinigameContext

	// Votes maps voter id to nominee id for the current eviction.
	Votes map[string]string

	WinnerID string

	TvFeed []TvEvent
}

// Gated reports whether a pending decision blocks Advance.
func (g *GameState) Gated() bool {
	return g.AwaitingNominations ||
		g.AwaitingPovDecision ||
		g.AwaitingPovSaveTarget ||
		g.AwaitingHumanVote ||
		g.AwaitingTieBreak ||
		g.AwaitingFinal3Eviction ||
		g.Minigame != nil
}

// Clone returns a deep copy. The receiver is left untouched by any mutation of
// the copy.
func (g *GameState) Clone() *GameState {
	next := *g

	next.Competitors = make(map[string]*Competitor, len(g.Competitors))
	for id, c := range g.Competitors {
		cc := *c
		next.Competitors[id] = &cc
	}
	next.CastOrder = append([]string(nil), g.CastOrder...)
	next.NomineeIDs = append([]string(nil), g.NomineeIDs...)
	next.TiedNomineeIDs = append([]string(nil), g.TiedNomineeIDs...)
	next.TvFeed = append([]TvEvent(nil), g.TvFeed...)

	next.Votes = make(map[string]string, len(g.Votes))
	for voter, target := range g.Votes {
		next.Votes[voter] = target
	}

	if g.Minigame != nil {
		mg := *g.Minigame
		mg.ParticipantIDs = append([]string(nil), g.Minigame.ParticipantIDs...)
		next.Minigame = &mg
	}

	return &next
}

// Competitor returns the cast member with the given id, or nil.
func (g *GameState) Competitor(id string) *Competitor {
	return g.Competitors[id]
}

// IsNominee reports whether id is currently on the block.
func (g *GameState) IsNominee(id string) bool {
	for _, nid := range g.NomineeIDs {
		if nid == id {
			return true
		}
	}
	return false
}
