package app

import (
	"fmt"

	"housegame/internal/bot"
	"housegame/internal/domain"
)

// Advance moves the season one step along the weekly sequence, resolving AI
// decisions along the way. It is a permanent no-op at the jury phase and
// while any pending decision gate is open.
func (s *Service) Advance(g *domain.GameState) (*domain.GameState, []Event, error) {
	if g.Phase.Terminal() {
		return g, nil, ErrTerminalPhase
	}
	if g.Gated() {
		return g, nil, ErrPrematureCommand
	}

	next := g.Clone()
	var events []Event

	switch g.Phase {
	case domain.PhaseWeekStart:
		next.Phase = domain.PhaseHOHComp
		next.AppendTv(domain.TvGame, fmt.Sprintf("Week %d: the house gathers for the Head of Household competition.", next.Week))

	case domain.PhaseHOHComp:
		s.resolveHOHComp(next)

	case domain.PhaseHOHResults:
		next.Phase = domain.PhaseSocial1
		bot.SocialBeat(next)

	case domain.PhaseSocial1:
		s.openNominations(next)

	case domain.PhaseNominations:
		next.Phase = domain.PhaseNominationResults

	case domain.PhaseNominationResults:
		next.Phase = domain.PhasePOVComp

	case domain.PhasePOVComp:
		s.resolvePOVComp(next)

	case domain.PhasePOVResults:
		events = append(events, s.afterPOVResults(next)...)

	case domain.PhasePOVCeremony:
		next.Phase = domain.PhasePOVCeremonyResults

	case domain.PhasePOVCeremonyResults:
		next.Phase = domain.PhaseSocial2
		bot.SocialBeat(next)

	case domain.PhaseSocial2:
		s.openLiveVote(next)

	case domain.PhaseLiveVote:
		s.resolveEviction(next)

	case domain.PhaseEvictionResults:
		next.Phase = domain.PhaseWeekEnd

	case domain.PhaseWeekEnd:
		s.closeWeek(next)

	case domain.PhaseFinal4Eviction:
		// Parked on the lone vote of the veto holder.
		return g, nil, ErrPrematureCommand

	case domain.PhaseFinal3:
		next.Phase = domain.PhaseFinal3Comp1
		next.AppendTv(domain.TvGame, "Part one of the final Head of Household competition begins.")

	case domain.PhaseFinal3Comp1:
		events = append(events, s.runFinal3Part(next, 1)...)

	case domain.PhaseFinal3Comp2:
		events = append(events, s.runFinal3Part(next, 2)...)

	case domain.PhaseFinal3Comp3:
		events = append(events, s.runFinal3Part(next, 3)...)

	case domain.PhaseFinal3Decision:
		// Parked on the final Head of Household's eviction choice.
		return g, nil, ErrPrematureCommand

	default:
		return g, nil, ErrPrematureCommand
	}

	events = append(events, stateChanged(next))
	return next, events, nil
}

// resolveHOHComp crowns a Head of Household drawn from the alive pool,
// excluding last week's winner when enough competitors remain.
func (s *Service) resolveHOHComp(next *domain.GameState) {
	pool := next.AliveIDs()
	if next.LastHOHID != "" && len(pool) > 2 {
		filtered := pool[:0]
		for _, id := range pool {
			if id != next.LastHOHID {
				filtered = append(filtered, id)
			}
		}
		pool = filtered
	}
	winner := bot.Pick(next, pool)
	if winner == "" {
		next.AppendTv(domain.TvTwist, "No one is able to compete for Head of Household this week.")
		next.Phase = domain.PhaseHOHResults
		return
	}
	next.MarkHOH(winner)
	next.AppendTv(domain.TvGame, fmt.Sprintf("%s wins Head of Household.", nameOf(next, winner)))
	next.Phase = domain.PhaseHOHResults
}

// openNominations runs the nomination ceremony. A human HOH opens the
// two-step nomination gate; an AI HOH draws both nominees immediately. A
// starved pool skips straight to the results phase.
func (s *Service) openNominations(next *domain.GameState) {
	var pool []string
	for _, id := range next.AliveIDs() {
		if id != next.HOHID {
			pool = append(pool, id)
		}
	}
	if len(pool) < 2 {
		next.AppendTv(domain.TvTwist, "Not enough houseguests remain to hold a nomination ceremony.")
		next.Phase = domain.PhaseNominationResults
		return
	}

	next.Phase = domain.PhaseNominations
	hoh := next.Competitor(next.HOHID)
	if hoh != nil && hoh.Human {
		next.AwaitingNominations = true
		next.AppendTv(domain.TvGame, fmt.Sprintf("%s must name two nominees for eviction.", hoh.Name))
		return
	}

	first, second := bot.PickTwo(next, pool)
	next.AddNominee(first)
	next.AddNominee(second)
	next.AppendTv(domain.TvGame, fmt.Sprintf("%s nominates %s and %s for eviction.",
		nameOf(next, next.HOHID), nameOf(next, first), nameOf(next, second)))
}

// resolvePOVComp picks the veto players (HOH, nominees, random fill to the
// cap) and draws the winner.
func (s *Service) resolvePOVComp(next *domain.GameState) {
	players := make([]string, 0, s.povPlayers)
	seen := make(map[string]bool)
	add := func(id string) {
		if id != "" && next.IsAlive(id) && !seen[id] {
			players = append(players, id)
			seen[id] = true
		}
	}
	add(next.HOHID)
	for _, id := range next.NomineeIDs {
		add(id)
	}

	var rest []string
	for _, id := range next.AliveIDs() {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	for len(players) < s.povPlayers && len(rest) > 0 {
		idx := next.DrawIndex(len(rest))
		players = append(players, rest[idx])
		rest = append(rest[:idx], rest[idx+1:]...)
	}

	winner := bot.Pick(next, players)
	if winner == "" {
		next.AppendTv(domain.TvTwist, "The veto competition cannot be played this week.")
		next.Phase = domain.PhasePOVResults
		return
	}
	next.MarkPOV(winner)
	next.AppendTv(domain.TvGame, fmt.Sprintf("%s wins the Power of Veto.", nameOf(next, winner)))
	next.Phase = domain.PhasePOVResults
}

// afterPOVResults branches into the Final 4 bypass at four alive, otherwise
// into the veto ceremony.
func (s *Service) afterPOVResults(next *domain.GameState) []Event {
	if next.AliveCount() == 4 {
		return s.enterFinal4(next)
	}
	s.enterPOVCeremony(next)
	return nil
}

// enterPOVCeremony opens the veto decision. A human holder gets the decision
// gate; an AI holder saves itself when nominated and otherwise leaves the
// nominations intact.
func (s *Service) enterPOVCeremony(next *domain.GameState) {
	next.Phase = domain.PhasePOVCeremony
	holder := next.Competitor(next.POVWinnerID)
	if holder == nil {
		next.Phase = domain.PhasePOVCeremonyResults
		return
	}
	if holder.Human {
		next.AwaitingPovDecision = true
		next.AppendTv(domain.TvGame, fmt.Sprintf("%s must decide whether to use the Power of Veto.", holder.Name))
		return
	}
	if next.IsNominee(holder.ID) {
		s.applyVetoSave(next, holder.ID)
		return
	}
	next.AppendTv(domain.TvGame, fmt.Sprintf("%s decides not to use the Power of Veto.", holder.Name))
}

// applyVetoSave pulls the saved nominee off the block and arranges the
// replacement: a human HOH gets the replacement gate, an AI HOH draws one.
func (s *Service) applyVetoSave(next *domain.GameState, savedID string) {
	holderName := nameOf(next, next.POVWinnerID)
	next.RemoveNominee(savedID)
	if savedID == next.POVWinnerID {
		next.AppendTv(domain.TvGame, fmt.Sprintf("%s uses the Power of Veto on themselves.", holderName))
	} else {
		next.AppendTv(domain.TvGame, fmt.Sprintf("%s uses the Power of Veto on %s.", holderName, nameOf(next, savedID)))
	}

	hoh := next.Competitor(next.HOHID)
	if hoh != nil && hoh.Human {
		next.ReplacementNeeded = true
		next.AppendTv(domain.TvGame, fmt.Sprintf("%s must name a replacement nominee.", hoh.Name))
		return
	}

	pool := s.replacementPool(next)
	if len(pool) == 0 {
		next.AppendTv(domain.TvTwist, "No eligible replacement nominee remains.")
		return
	}
	replacement := bot.Pick(next, pool)
	next.AddNominee(replacement)
	next.AppendTv(domain.TvGame, fmt.Sprintf("%s names %s as the replacement nominee.",
		nameOf(next, next.HOHID), nameOf(next, replacement)))
}

func (s *Service) replacementPool(next *domain.GameState) []string {
	var pool []string
	for _, id := range next.AliveIDs() {
		if id == next.HOHID || id == next.POVWinnerID || next.IsNominee(id) {
			continue
		}
		pool = append(pool, id)
	}
	return pool
}

// openLiveVote records every AI vote and, when human voters remain, opens the
// human vote gate.
func (s *Service) openLiveVote(next *domain.GameState) {
	next.Phase = domain.PhaseLiveVote
	if len(next.NomineeIDs) == 0 {
		next.AppendTv(domain.TvTwist, "No nominees stand for eviction this week.")
		return
	}

	humanPending := false
	for _, voter := range next.EligibleVoterIDs() {
		c := next.Competitor(voter)
		if c.Human {
			humanPending = true
			continue
		}
		next.Votes[voter] = bot.Pick(next, next.NomineeIDs)
	}
	if humanPending {
		next.AwaitingHumanVote = true
	}
	next.AppendTv(domain.TvVote, "The house casts its votes one by one.")
}

// resolveEviction tallies the vote. A tie parks on the human HOH's tie-break
// or resolves deterministically for an AI HOH.
func (s *Service) resolveEviction(next *domain.GameState) {
	next.Phase = domain.PhaseEvictionResults
	if len(next.NomineeIDs) == 0 {
		next.AppendTv(domain.TvTwist, "With no nominees, no one is evicted this week.")
		return
	}

	counts := make(map[string]int, len(next.NomineeIDs))
	for _, target := range next.Votes {
		counts[target]++
	}

	max := -1
	var tied []string
	for _, id := range next.NomineeIDs {
		switch {
		case counts[id] > max:
			max = counts[id]
			tied = []string{id}
		case counts[id] == max:
			tied = append(tied, id)
		}
	}

	if len(tied) > 1 {
		hoh := next.Competitor(next.HOHID)
		if hoh != nil && hoh.Human {
			next.AwaitingTieBreak = true
			next.TiedNomineeIDs = tied
			next.AppendTv(domain.TvVote, fmt.Sprintf("The vote is tied. %s must break the tie.", hoh.Name))
			return
		}
		// AI tie-break keys off the raw seed, then advances the stream.
		idx := int(next.Seed % uint32(len(tied)))
		next.Draw()
		s.evictWeekly(next, tied[idx], counts, true)
		return
	}

	s.evictWeekly(next, tied[0], counts, false)
}

// evictWeekly finalizes the weekly eviction and writes the vote narrative.
func (s *Service) evictWeekly(next *domain.GameState, evictedID string, counts map[string]int, tieBroken bool) {
	status := next.Evict(evictedID, s.jurySize)
	if status == "" {
		return
	}
	next.AwaitingTieBreak = false
	next.TiedNomineeIDs = nil

	text := fmt.Sprintf("%s is evicted by a vote of %d.", nameOf(next, evictedID), counts[evictedID])
	if tieBroken {
		text = fmt.Sprintf("%s breaks the tie: %s is evicted.", nameOf(next, next.HOHID), nameOf(next, evictedID))
	}
	if status == domain.StatusJury {
		text += " They head to the jury house."
	}
	next.AppendTv(domain.TvVote, text)
}

// closeWeek loops into a new week or branches into the endgame.
func (s *Service) closeWeek(next *domain.GameState) {
	switch next.AliveCount() {
	case 2:
		next.Phase = domain.PhaseJury
		next.AppendTv(domain.TvTwist, "The final two will face the jury.")
	case 3:
		s.enterFinal3(next)
	default:
		next.ResetWeeklyRoles()
		next.Week++
		next.Phase = domain.PhaseWeekStart
		next.AppendTv(domain.TvGame, fmt.Sprintf("Week %d begins.", next.Week))
	}
}
