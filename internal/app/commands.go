package app

import (
	"fmt"

	"housegame/internal/bot"
	"housegame/internal/domain"
)

// SelectNominee1 records the first of the human HOH's two nominations.
func (s *Service) SelectNominee1(g *domain.GameState, id string) (*domain.GameState, []Event, error) {
	if !g.AwaitingNominations || g.PendingNominee1ID != "" {
		return g, nil, ErrPrematureCommand
	}
	if !g.IsAlive(id) || id == g.HOHID {
		return g, nil, ErrInvalidSelection
	}

	next := g.Clone()
	next.PendingNominee1ID = id
	return next, []Event{stateChanged(next)}, nil
}

// FinalizeNominations records the second nomination, closes the gate, and
// puts both competitors on the block.
func (s *Service) FinalizeNominations(g *domain.GameState, id string) (*domain.GameState, []Event, error) {
	if !g.AwaitingNominations || g.PendingNominee1ID == "" {
		return g, nil, ErrPrematureCommand
	}
	if !g.IsAlive(id) || id == g.HOHID || id == g.PendingNominee1ID {
		return g, nil, ErrInvalidSelection
	}

	next := g.Clone()
	first := next.PendingNominee1ID
	next.AddNominee(first)
	next.AddNominee(id)
	next.PendingNominee1ID = ""
	next.AwaitingNominations = false
	next.AppendTv(domain.TvGame, fmt.Sprintf("%s nominates %s and %s for eviction.",
		nameOf(next, next.HOHID), nameOf(next, first), nameOf(next, id)))
	return next, []Event{stateChanged(next)}, nil
}

// SubmitPovDecision resolves the human veto holder's use-or-not choice.
func (s *Service) SubmitPovDecision(g *domain.GameState, useVeto bool) (*domain.GameState, []Event, error) {
	if !g.AwaitingPovDecision {
		return g, nil, ErrPrematureCommand
	}

	next := g.Clone()
	next.AwaitingPovDecision = false
	if useVeto {
		next.AwaitingPovSaveTarget = true
		next.AppendTv(domain.TvGame, fmt.Sprintf("%s decides to use the Power of Veto.", nameOf(next, next.POVWinnerID)))
	} else {
		next.Phase = domain.PhasePOVCeremonyResults
		next.AppendTv(domain.TvGame, fmt.Sprintf("%s decides not to use the Power of Veto.", nameOf(next, next.POVWinnerID)))
	}
	return next, []Event{stateChanged(next)}, nil
}

// SubmitPovSaveTarget pulls the chosen nominee off the block and arranges the
// replacement nomination.
func (s *Service) SubmitPovSaveTarget(g *domain.GameState, id string) (*domain.GameState, []Event, error) {
	if !g.AwaitingPovSaveTarget {
		return g, nil, ErrPrematureCommand
	}
	if !g.IsNominee(id) {
		return g, nil, ErrInvalidSelection
	}

	next := g.Clone()
	next.AwaitingPovSaveTarget = false
	s.applyVetoSave(next, id)
	return next, []Event{stateChanged(next)}, nil
}

// SetReplacementNominee records the human HOH's replacement nomination after
// a veto save.
func (s *Service) SetReplacementNominee(g *domain.GameState, id string) (*domain.GameState, []Event, error) {
	if !g.ReplacementNeeded {
		return g, nil, ErrPrematureCommand
	}
	if !g.IsAlive(id) || id == g.HOHID || id == g.POVWinnerID || g.IsNominee(id) {
		return g, nil, ErrInvalidSelection
	}

	next := g.Clone()
	next.ReplacementNeeded = false
	next.AddNominee(id)
	next.AppendTv(domain.TvGame, fmt.Sprintf("%s names %s as the replacement nominee.",
		nameOf(next, next.HOHID), nameOf(next, id)))
	return next, []Event{stateChanged(next)}, nil
}

// SubmitHumanVote records one human eviction vote. The gate closes once every
// eligible human has voted.
func (s *Service) SubmitHumanVote(g *domain.GameState, voterID, targetID string) (*domain.GameState, []Event, error) {
	if !g.AwaitingHumanVote {
		return g, nil, ErrPrematureCommand
	}
	voter := g.Competitor(voterID)
	if voter == nil || !voter.Human || !voter.InHouse() {
		return g, nil, ErrInvalidSelection
	}
	if voterID == g.HOHID || g.IsNominee(voterID) {
		return g, nil, ErrInvalidSelection
	}
	if _, voted := g.Votes[voterID]; voted {
		return g, nil, ErrInvalidSelection
	}
	if !g.IsNominee(targetID) {
		return g, nil, ErrInvalidSelection
	}

	next := g.Clone()
	next.Votes[voterID] = targetID
	next.AppendTv(domain.TvVote, fmt.Sprintf("%s casts a vote to evict.", voter.Name))

	pending := false
	for _, id := range next.EligibleVoterIDs() {
		c := next.Competitor(id)
		if c.Human {
			if _, voted := next.Votes[id]; !voted {
				pending = true
				break
			}
		}
	}
	if !pending {
		next.AwaitingHumanVote = false
	}
	return next, []Event{stateChanged(next)}, nil
}

// SubmitTieBreak resolves a tied eviction with the human HOH's casting vote.
func (s *Service) SubmitTieBreak(g *domain.GameState, id string) (*domain.GameState, []Event, error) {
	if !g.AwaitingTieBreak {
		return g, nil, ErrPrematureCommand
	}
	tied := false
	for _, tid := range g.TiedNomineeIDs {
		if tid == id {
			tied = true
			break
		}
	}
	if !tied {
		return g, nil, ErrInvalidSelection
	}

	next := g.Clone()
	counts := make(map[string]int, len(next.NomineeIDs))
	for _, target := range next.Votes {
		counts[target]++
	}
	s.evictWeekly(next, id, counts, true)
	return next, []Event{stateChanged(next)}, nil
}

// FinalizeFinal4Eviction records the veto holder's lone Final 4 vote.
func (s *Service) FinalizeFinal4Eviction(g *domain.GameState, id string) (*domain.GameState, []Event, error) {
	if g.Phase != domain.PhaseFinal4Eviction {
		return g, nil, ErrPrematureCommand
	}
	if !g.IsNominee(id) {
		return g, nil, ErrInvalidSelection
	}

	next := g.Clone()
	s.evictFinal4(next, id)
	return next, []Event{stateChanged(next)}, nil
}

// FinalizeFinal3Eviction records the final HOH's direct eviction.
func (s *Service) FinalizeFinal3Eviction(g *domain.GameState, id string) (*domain.GameState, []Event, error) {
	if !g.AwaitingFinal3Eviction {
		return g, nil, ErrPrematureCommand
	}
	if !g.IsAlive(id) || id == g.HOHID {
		return g, nil, ErrInvalidSelection
	}

	next := g.Clone()
	next.AwaitingFinal3Eviction = false
	s.evictFinal3(next, id)
	return next, []Event{stateChanged(next)}, nil
}

// ApplyF3MinigameWinner resolves an outstanding minigame with the winner the
// external resolver reports.
func (s *Service) ApplyF3MinigameWinner(g *domain.GameState, winnerID string) (*domain.GameState, []Event, error) {
	if g.Minigame == nil {
		return g, nil, ErrPrematureCommand
	}
	if !g.Minigame.Includes(winnerID) {
		return g, nil, ErrInvalidSelection
	}

	next := g.Clone()
	key := next.Minigame.PhaseKey
	next.Minigame = nil
	switch key {
	case MinigameKeyFinal3Comp1:
		s.completeFinal3Part(next, 1, winnerID)
	case MinigameKeyFinal3Comp2:
		s.completeFinal3Part(next, 2, winnerID)
	default:
		s.completeFinal3Part(next, 3, winnerID)
	}
	return next, []Event{stateChanged(next)}, nil
}

// AddTvEvent injects a flavor entry directly into the feed.
func (s *Service) AddTvEvent(g *domain.GameState, text string, kind domain.TvKind) (*domain.GameState, []Event, error) {
	if text == "" || !domain.ValidTvKind(kind) {
		return g, nil, ErrInvalidSelection
	}

	next := g.Clone()
	next.AppendTv(kind, text)
	return next, []Event{stateChanged(next)}, nil
}

// FinalizeSeason tallies the jury vote and records the winner. Human juror
// votes arrive from the host; AI jurors each consume one draw. A tied jury
// resolves off the raw seed, which then advances. Legal only at the jury
// phase, once.
func (s *Service) FinalizeSeason(g *domain.GameState, humanVotes map[string]string) (*domain.GameState, []Event, error) {
	if g.Phase != domain.PhaseJury {
		return g, nil, ErrPrematureCommand
	}
	if g.WinnerID != "" {
		return g, nil, ErrSeasonFinished
	}

	next := g.Clone()
	finalists := next.AliveIDs()
	if len(finalists) != 2 {
		return g, nil, ErrInvalidSelection
	}

	votes := make(map[string]string)
	counts := make(map[string]int, 2)
	for _, jurorID := range next.CastOrder {
		juror := next.Competitor(jurorID)
		if juror == nil || juror.Status != domain.StatusJury {
			continue
		}
		target := humanVotes[jurorID]
		if !juror.Human || (target != finalists[0] && target != finalists[1]) {
			target = bot.Pick(next, finalists)
		}
		votes[jurorID] = target
		counts[target]++
	}

	winner := finalists[0]
	switch {
	case counts[finalists[1]] > counts[finalists[0]]:
		winner = finalists[1]
	case counts[finalists[1]] == counts[finalists[0]]:
		winner = finalists[int(next.Seed%2)]
		next.Draw()
	}

	next.WinnerID = winner
	next.Votes = votes
	next.AppendTv(domain.TvTwist, fmt.Sprintf("%s wins the season by a jury vote of %d to %d.",
		nameOf(next, winner), counts[winner], len(votes)-counts[winner]))

	events := []Event{
		{Kind: EventSeasonEnded, Payload: SeasonEndedPayload{WinnerID: winner, Votes: votes}},
		stateChanged(next),
	}
	return next, events, nil
}
