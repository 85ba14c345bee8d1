package domain

// Phase represents a step of the weekly cycle or the endgame.
type Phase string

const (
	// Weekly cycle, in order.
	PhaseWeekStart          Phase = "week_start"
	PhaseHOHComp            Phase = "hoh_comp"
	PhaseHOHResults         Phase = "hoh_results"
	PhaseSocial1            Phase = "social_1"
	PhaseNominations        Phase = "nominations"
	PhaseNominationResults  Phase = "nomination_results"
	PhasePOVComp            Phase = "pov_comp"
	PhasePOVResults         Phase = "pov_results"
	PhasePOVCeremony        Phase = "pov_ceremony"
	PhasePOVCeremonyResults Phase = "pov_ceremony_results"
	PhaseSocial2            Phase = "social_2"
	PhaseLiveVote           Phase = "live_vote"
	PhaseEvictionResults    Phase = "eviction_results"
	PhaseWeekEnd            Phase = "week_end"

	// Endgame variants.
	PhaseFinal4Eviction       Phase = "final4_eviction"
	PhaseFinal3               Phase = "final3"
	PhaseFinal3Comp1          Phase = "final3_comp1"
	PhaseFinal3Comp1Minigame  Phase = "final3_comp1_minigame"
	PhaseFinal3Comp2          Phase = "final3_comp2"
	PhaseFinal3Comp2Minigame  Phase = "final3_comp2_minigame"
	PhaseFinal3Comp3          Phase = "final3_comp3"
	PhaseFinal3Comp3Minigame  Phase = "final3_comp3_minigame"
	PhaseFinal3Decision       Phase = "final3_decision"

	// PhaseJury is terminal: Advance becomes a permanent no-op.
	PhaseJury Phase = "jury"
)

// String returns the wire representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// Terminal reports whether the season has reached the jury vote.
func (p Phase) Terminal() bool {
	return p == PhaseJury
}
