package nakama

import "housegame/internal/domain"

// Client command payloads. All wire payloads are JSON.

type targetPayload struct {
	TargetID string `json:"target_id"`
}

type povDecisionPayload struct {
	UseVeto bool `json:"use_veto"`
}

type startSeasonPayload struct {
	// Seed pins the season RNG for reproducible runs; zero means the host
	// derives one.
	Seed uint32 `json:"seed,omitempty"`
}

type minigameResultPayload struct {
	WinnerID string `json:"winner_id"`
}

type tvEventPayload struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

type finalizeSeasonPayload struct {
	// Votes maps juror id to finalist id for human jurors.
	Votes map[string]string `json:"votes"`
}

// Server event payloads.

type playerJoinedEvent struct {
	UserID string `json:"user_id"`
	Seat   int    `json:"seat"`
	Owner  bool   `json:"owner"`
}

type playerLeftEvent struct {
	UserID string `json:"user_id"`
}

type seasonStartedEvent struct {
	Season int `json:"season"`
	Week   int `json:"week"`
}

type seasonEndedEvent struct {
	WinnerID string            `json:"winner_id"`
	Votes    map[string]string `json:"votes"`
}

type competitorView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	Human          bool   `json:"human"`
	HOHWins        int    `json:"hoh_wins"`
	POVWins        int    `json:"pov_wins"`
	TimesNominated int    `json:"times_nominated"`
}

type tvEventView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Kind      string `json:"kind"`
	Timestamp int64  `json:"timestamp"`
}

type minigameView struct {
	PhaseKey       string   `json:"phase_key"`
	ParticipantIDs []string `json:"participant_ids"`
	Seed           uint32   `json:"seed"`
}

// stateSnapshot is the full read surface clients render from.
type stateSnapshot struct {
	Season      int              `json:"season"`
	Week        int              `json:"week"`
	Phase       string           `json:"phase"`
	HOHID       string           `json:"hoh_id,omitempty"`
	NomineeIDs  []string         `json:"nominee_ids,omitempty"`
	POVWinnerID string           `json:"pov_winner_id,omitempty"`
	WinnerID    string           `json:"winner_id,omitempty"`
	Gates       gatesView        `json:"gates"`
	Tied        []string         `json:"tied_nominee_ids,omitempty"`
	Minigame    *minigameView    `json:"minigame,omitempty"`
	Competitors []competitorView `json:"competitors"`
	TvFeed      []tvEventView    `json:"tv_feed"`
}

type gatesView struct {
	Nominations    bool `json:"nominations"`
	PovDecision    bool `json:"pov_decision"`
	PovSaveTarget  bool `json:"pov_save_target"`
	HumanVote      bool `json:"human_vote"`
	TieBreak       bool `json:"tie_break"`
	Final3Eviction bool `json:"final3_eviction"`
	Replacement    bool `json:"replacement"`
}

// buildSnapshot converts engine state into the wire snapshot.
func buildSnapshot(g *domain.GameState) stateSnapshot {
	snap := stateSnapshot{
		Season:      g.Season,
		Week:        g.Week,
		Phase:       g.Phase.String(),
		HOHID:       g.HOHID,
		NomineeIDs:  append([]string(nil), g.NomineeIDs...),
		POVWinnerID: g.POVWinnerID,
		WinnerID:    g.WinnerID,
		Tied:        append([]string(nil), g.TiedNomineeIDs...),
		Gates: gatesView{
			Nominations:    g.AwaitingNominations,
			PovDecision:    g.AwaitingPovDecision,
			PovSaveTarget:  g.AwaitingPovSaveTarget,
			HumanVote:      g.AwaitingHumanVote,
			TieBreak:       g.AwaitingTieBreak,
			Final3Eviction: g.AwaitingFinal3Eviction,
			Replacement:    g.ReplacementNeeded,
		},
	}
	if g.Minigame != nil {
		snap.Minigame = &minigameView{
			PhaseKey:       g.Minigame.PhaseKey,
			ParticipantIDs: append([]string(nil), g.Minigame.ParticipantIDs...),
			Seed:           g.Minigame.Seed,
		}
	}
	for _, id := range g.CastOrder {
		c := g.Competitors[id]
		if c == nil {
			continue
		}
		snap.Competitors = append(snap.Competitors, competitorView{
			ID:             c.ID,
			Name:           c.Name,
			Status:         string(c.Status),
			Human:          c.Human,
			HOHWins:        c.HOHWins,
			POVWins:        c.POVWins,
			TimesNominated: c.TimesNominated,
		})
	}
	for _, ev := range g.TvFeed {
		snap.TvFeed = append(snap.TvFeed, tvEventView{
			ID:        ev.ID,
			Text:      ev.Text,
			Kind:      string(ev.Kind),
			Timestamp: ev.Timestamp,
		})
	}
	return snap
}

// matchLabel advertises lobby state for match listing queries.
type matchLabel struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}
