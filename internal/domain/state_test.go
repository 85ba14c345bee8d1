package domain

import "testing"

func TestCloneIsDeep(t *testing.T) {
	g := makeHouse("a", "b", "c", "d")
	g.MarkHOH("a")
	g.AddNominee("b")
	g.Votes["c"] = "b"
	g.Minigame = &MinigameContext{PhaseKey: "final3_comp1", ParticipantIDs: []string{"a", "b"}, Seed: 5}
	g.AppendTv(TvGame, "hello")

	c := g.Clone()
	c.Competitors["a"].Status = StatusEvicted
	c.NomineeIDs[0] = "d"
	c.Votes["c"] = "d"
	c.Minigame.ParticipantIDs[0] = "d"
	c.TvFeed[0].Text = "mutated"
	c.CastOrder[0] = "z"

	if g.Competitors["a"].Status != StatusHOH {
		t.Fatalf("clone mutation leaked into competitor map")
	}
	if g.NomineeIDs[0] != "b" {
		t.Fatalf("clone mutation leaked into nominees")
	}
	if g.Votes["c"] != "b" {
		t.Fatalf("clone mutation leaked into votes")
	}
	if g.Minigame.ParticipantIDs[0] != "a" {
		t.Fatalf("clone mutation leaked into minigame context")
	}
	if g.TvFeed[0].Text != "hello" {
		t.Fatalf("clone mutation leaked into feed")
	}
	if g.CastOrder[0] != "a" {
		t.Fatalf("clone mutation leaked into cast order")
	}
}

func TestGatedCoversEveryGate(t *testing.T) {
	tests := []struct {
		name string
		set  func(*GameState)
	}{
		{"nominations", func(g *GameState) { g.AwaitingNominations = true }},
		{"pov decision", func(g *GameState) { g.AwaitingPovDecision = true }},
		{"pov save target", func(g *GameState) { g.AwaitingPovSaveTarget = true }},
		{"human vote", func(g *GameState) { g.AwaitingHumanVote = true }},
		{"tie break", func(g *GameState) { g.AwaitingTieBreak = true }},
		{"final3 eviction", func(g *GameState) { g.AwaitingFinal3Eviction = true }},
		{"minigame", func(g *GameState) { g.Minigame = &MinigameContext{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &GameState{}
			if g.Gated() {
				t.Fatalf("fresh state should not be gated")
			}
			tt.set(g)
			if !g.Gated() {
				t.Fatalf("gate %q not reflected by Gated()", tt.name)
			}
		})
	}
}

func TestMinigameIncludes(t *testing.T) {
	var m *MinigameContext
	if m.Includes("a") {
		t.Fatalf("nil minigame should include no one")
	}
	m = &MinigameContext{ParticipantIDs: []string{"a", "b"}}
	if !m.Includes("a") || m.Includes("c") {
		t.Fatalf("Includes misreported membership")
	}
}

func TestPhaseTerminal(t *testing.T) {
	if PhaseWeekStart.Terminal() || PhaseFinal3Decision.Terminal() {
		t.Fatalf("non-jury phase reported terminal")
	}
	if !PhaseJury.Terminal() {
		t.Fatalf("jury phase not terminal")
	}
}
