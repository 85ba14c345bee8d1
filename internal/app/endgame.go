package app

import (
	"fmt"

	"housegame/internal/bot"
	"housegame/internal/domain"
)

// Minigame phase keys handed to the external competition resolver.
const (
	MinigameKeyFinal3Comp1 = "final3_comp1"
	MinigameKeyFinal3Comp2 = "final3_comp2"
	MinigameKeyFinal3Comp3 = "final3_comp3"
)

// enterFinal4 applies the Final 4 bypass: the veto ceremony is skipped, the
// two competitors holding neither HOH nor veto go on the block, and the veto
// holder alone decides the eviction. This branch is unconditional; no weekly
// configuration can suppress it.
func (s *Service) enterFinal4(next *domain.GameState) []Event {
	next.Phase = domain.PhaseFinal4Eviction

	var candidates []string
	for _, id := range next.AliveIDs() {
		if id == next.HOHID || id == next.POVWinnerID {
			continue
		}
		candidates = append(candidates, id)
	}

	// Keep nominees that are still eligible, then fill the block back to two.
	for _, id := range append([]string(nil), next.NomineeIDs...) {
		eligible := false
		for _, cid := range candidates {
			if cid == id {
				eligible = true
				break
			}
		}
		if !eligible {
			next.RemoveNominee(id)
		}
	}
	for len(next.NomineeIDs) < 2 {
		var open []string
		for _, id := range candidates {
			if !next.IsNominee(id) {
				open = append(open, id)
			}
		}
		if len(open) == 0 {
			break
		}
		next.AddNominee(bot.Pick(next, open))
	}

	next.AppendTv(domain.TvTwist, fmt.Sprintf("Final 4: only %s, holder of the Power of Veto, votes this week.",
		nameOf(next, next.POVWinnerID)))

	holder := next.Competitor(next.POVWinnerID)
	if holder != nil && holder.Human {
		// Parked until FinalizeFinal4Eviction arrives.
		return nil
	}
	target := bot.Pick(next, next.NomineeIDs)
	if target == "" {
		s.enterFinal3(next)
		return nil
	}
	s.evictFinal4(next, target)
	return nil
}

// evictFinal4 records the sole Final 4 vote and routes into the final three.
func (s *Service) evictFinal4(next *domain.GameState, evictedID string) {
	voterName := nameOf(next, next.POVWinnerID)
	if next.Evict(evictedID, s.jurySize) == "" {
		return
	}
	next.AppendTv(domain.TvVote, fmt.Sprintf("%s casts the sole vote to evict %s.", voterName, nameOf(next, evictedID)))
	s.enterFinal3(next)
}

// enterFinal3 resets the weekly roles and opens the three-part final.
func (s *Service) enterFinal3(next *domain.GameState) {
	next.ResetWeeklyRoles()
	next.Phase = domain.PhaseFinal3
	next.AppendTv(domain.TvTwist, "Only three remain. The three-part final competition begins.")
}

// runFinal3Part resolves one part of the final bracket, or parks in a
// minigame sub-phase when a human competes in it.
func (s *Service) runFinal3Part(next *domain.GameState, part int) []Event {
	participants := s.final3Participants(next, part)
	if len(participants) < 2 {
		// Roster damage outside normal play; resolve with whoever remains.
		if len(participants) == 1 {
			s.completeFinal3Part(next, part, participants[0])
		}
		return nil
	}

	humanInvolved := false
	for _, id := range participants {
		if c := next.Competitor(id); c != nil && c.Human {
			humanInvolved = true
			break
		}
	}

	if humanInvolved {
		key, phase := final3MinigamePhase(part)
		next.Phase = phase
		next.Minigame = &domain.MinigameContext{
			PhaseKey:       key,
			ParticipantIDs: participants,
			Seed:           next.Seed,
		}
		next.AppendTv(domain.TvGame, fmt.Sprintf("Part %d of the final competition is underway.", part))
		return []Event{{
			Kind:       EventMinigameStarted,
			Payload:    MinigameStartedPayload{Context: *next.Minigame},
			Recipients: participants,
		}}
	}

	s.completeFinal3Part(next, part, bot.Pick(next, participants))
	return nil
}

func (s *Service) final3Participants(next *domain.GameState, part int) []string {
	switch part {
	case 1:
		return next.AliveIDs()
	case 2:
		var losers []string
		for _, id := range next.AliveIDs() {
			if id != next.F3Part1WinnerID {
				losers = append(losers, id)
			}
		}
		return losers
	default:
		var finalists []string
		for _, id := range []string{next.F3Part1WinnerID, next.F3Part2WinnerID} {
			if next.IsAlive(id) {
				finalists = append(finalists, id)
			}
		}
		return finalists
	}
}

func final3MinigamePhase(part int) (string, domain.Phase) {
	switch part {
	case 1:
		return MinigameKeyFinal3Comp1, domain.PhaseFinal3Comp1Minigame
	case 2:
		return MinigameKeyFinal3Comp2, domain.PhaseFinal3Comp2Minigame
	default:
		return MinigameKeyFinal3Comp3, domain.PhaseFinal3Comp3Minigame
	}
}

// completeFinal3Part records a part winner and advances the bracket. The part
// three winner becomes the final Head of Household and must evict directly:
// a human winner opens the eviction gate, an AI winner draws immediately.
func (s *Service) completeFinal3Part(next *domain.GameState, part int, winner string) {
	switch part {
	case 1:
		next.F3Part1WinnerID = winner
		next.Phase = domain.PhaseFinal3Comp2
		next.AppendTv(domain.TvGame, fmt.Sprintf("%s wins part one of the final competition.", nameOf(next, winner)))
	case 2:
		next.F3Part2WinnerID = winner
		next.Phase = domain.PhaseFinal3Comp3
		next.AppendTv(domain.TvGame, fmt.Sprintf("%s wins part two of the final competition.", nameOf(next, winner)))
	default:
		next.MarkHOH(winner)
		next.AppendTv(domain.TvGame, fmt.Sprintf("%s wins the final Head of Household competition.", nameOf(next, winner)))
		if c := next.Competitor(winner); c != nil && c.Human {
			next.AwaitingFinal3Eviction = true
			next.Phase = domain.PhaseFinal3Decision
			return
		}
		var remaining []string
		for _, id := range next.AliveIDs() {
			if id != winner {
				remaining = append(remaining, id)
			}
		}
		s.evictFinal3(next, bot.Pick(next, remaining))
	}
}

// evictFinal3 records the final HOH's direct eviction and routes to week_end,
// from which the next advance reaches the jury.
func (s *Service) evictFinal3(next *domain.GameState, evictedID string) {
	hohName := nameOf(next, next.HOHID)
	if next.Evict(evictedID, s.jurySize) == "" {
		return
	}
	next.AppendTv(domain.TvVote, fmt.Sprintf("%s evicts %s, sending the final juror to the jury house.", hohName, nameOf(next, evictedID)))
	next.Phase = domain.PhaseWeekEnd
}
