package app

import (
	"errors"
	"testing"

	"housegame/internal/domain"
)

func buildGame(seed uint32, humans map[string]bool, ids ...string) *domain.GameState {
	g := &domain.GameState{
		Season:      1,
		Week:        1,
		Phase:       domain.PhaseWeekStart,
		Seed:        seed,
		Competitors: make(map[string]*domain.Competitor, len(ids)),
		Votes:       make(map[string]string),
	}
	for _, id := range ids {
		g.Competitors[id] = &domain.Competitor{
			ID:     id,
			Name:   id,
			Status: domain.StatusActive,
			Human:  humans[id],
		}
		g.CastOrder = append(g.CastOrder, id)
	}
	return g
}

func aiCast(ids ...string) []CastEntry {
	var cast []CastEntry
	for _, id := range ids {
		cast = append(cast, CastEntry{ID: id, Name: id})
	}
	return cast
}

func TestStartSeason(t *testing.T) {
	s := NewService(7, 6)
	cast := aiCast("a", "b", "c", "d", "e")
	cast[0].Human = true

	g, events, err := s.StartSeason(2, 77, cast)
	if err != nil {
		t.Fatalf("StartSeason: %v", err)
	}
	if g.Season != 2 || g.Week != 1 || g.Phase != domain.PhaseWeekStart || g.Seed != 77 {
		t.Fatalf("initial state wrong: season=%d week=%d phase=%s seed=%d", g.Season, g.Week, g.Phase, g.Seed)
	}
	if len(g.Competitors) != 5 || len(g.CastOrder) != 5 {
		t.Fatalf("roster size wrong: %d/%d", len(g.Competitors), len(g.CastOrder))
	}
	if !g.Competitors["a"].Human || g.Competitors["b"].Human {
		t.Fatalf("human flags not carried over")
	}
	if len(g.TvFeed) != 1 || g.TvFeed[0].Kind != domain.TvGame {
		t.Fatalf("expected one opening feed entry, got %+v", g.TvFeed)
	}
	if len(events) != 1 || events[0].Kind != EventSeasonStarted {
		t.Fatalf("events = %+v", events)
	}
}

func TestStartSeasonRejections(t *testing.T) {
	s := NewService(7, 6)

	if _, _, err := s.StartSeason(1, 1, aiCast("a", "b", "c")); !errors.Is(err, ErrTooFewCompetitors) {
		t.Fatalf("short cast: err = %v", err)
	}
	if _, _, err := s.StartSeason(1, 1, aiCast("a", "b", "c", "a")); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("duplicate id: err = %v", err)
	}
	if _, _, err := s.StartSeason(1, 1, aiCast("a", "b", "c", "")); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("empty id: err = %v", err)
	}
}

func TestAdvanceTerminalNoOp(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(1, nil, "a", "b", "c", "d")
	g.Phase = domain.PhaseJury

	for i := 0; i < 3; i++ {
		next, events, err := s.Advance(g)
		if !errors.Is(err, ErrTerminalPhase) {
			t.Fatalf("Advance at jury: err = %v", err)
		}
		if next != g || events != nil {
			t.Fatalf("terminal Advance must return the input state untouched")
		}
	}
}

func TestAdvanceBlockedWhileGated(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(1, nil, "a", "b", "c", "d")
	g.Phase = domain.PhaseNominations
	g.AwaitingNominations = true

	next, _, err := s.Advance(g)
	if !errors.Is(err, ErrPrematureCommand) {
		t.Fatalf("gated Advance: err = %v", err)
	}
	if next != g {
		t.Fatalf("gated Advance must return the input state")
	}
}

func TestHumanNominationFlow(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(9, map[string]bool{"a": true}, "a", "b", "c", "d", "e")
	g.MarkHOH("a")
	g.Phase = domain.PhaseSocial1

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance into nominations: %v", err)
	}
	if g.Phase != domain.PhaseNominations || !g.AwaitingNominations {
		t.Fatalf("human HOH should open the nomination gate: phase=%s gate=%v", g.Phase, g.AwaitingNominations)
	}

	// A premature finalize and illegal picks bounce.
	if _, _, err := s.FinalizeNominations(g, "b"); !errors.Is(err, ErrPrematureCommand) {
		t.Fatalf("finalize before first pick: err = %v", err)
	}
	if _, _, err := s.SelectNominee1(g, "a"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("self-nomination: err = %v", err)
	}

	g, _, err = s.SelectNominee1(g, "b")
	if err != nil {
		t.Fatalf("SelectNominee1: %v", err)
	}
	if g.PendingNominee1ID != "b" || len(g.NomineeIDs) != 0 {
		t.Fatalf("first pick should stay pending: %+v", g)
	}
	if _, _, err := s.SelectNominee1(g, "c"); !errors.Is(err, ErrPrematureCommand) {
		t.Fatalf("second SelectNominee1: err = %v", err)
	}
	if _, _, err := s.FinalizeNominations(g, "b"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("duplicate nominee: err = %v", err)
	}

	g, _, err = s.FinalizeNominations(g, "c")
	if err != nil {
		t.Fatalf("FinalizeNominations: %v", err)
	}
	if g.AwaitingNominations || g.PendingNominee1ID != "" {
		t.Fatalf("gate should close after finalize")
	}
	if len(g.NomineeIDs) != 2 || !g.IsNominee("b") || !g.IsNominee("c") {
		t.Fatalf("NomineeIDs = %v", g.NomineeIDs)
	}
	if g.Competitors["b"].Status != domain.StatusNominated {
		t.Fatalf("nominee status = %s", g.Competitors["b"].Status)
	}

	g, _, err = s.Advance(g)
	if err != nil || g.Phase != domain.PhaseNominationResults {
		t.Fatalf("Advance out of nominations: phase=%s err=%v", g.Phase, err)
	}
}

func TestAINominationsImmediate(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(21, nil, "a", "b", "c", "d", "e")
	g.MarkHOH("a")
	g.Phase = domain.PhaseSocial1

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if g.Phase != domain.PhaseNominations || g.AwaitingNominations {
		t.Fatalf("AI HOH should not open a gate: phase=%s gate=%v", g.Phase, g.AwaitingNominations)
	}
	if len(g.NomineeIDs) != 2 {
		t.Fatalf("NomineeIDs = %v", g.NomineeIDs)
	}
	if g.NomineeIDs[0] == g.NomineeIDs[1] {
		t.Fatalf("duplicate AI nominees")
	}
	for _, id := range g.NomineeIDs {
		if id == "a" {
			t.Fatalf("HOH nominated themselves")
		}
	}
}

func TestStarvedNominationPoolSkips(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(5, nil, "a", "b", "c", "d")
	g.Competitors["c"].Status = domain.StatusJury
	g.Competitors["d"].Status = domain.StatusJury
	g.MarkHOH("a")
	g.Phase = domain.PhaseSocial1

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if g.Phase != domain.PhaseNominationResults {
		t.Fatalf("starved pool should skip to results, got %s", g.Phase)
	}
	if len(g.NomineeIDs) != 0 {
		t.Fatalf("NomineeIDs = %v", g.NomineeIDs)
	}
	if g.TvFeed[0].Kind != domain.TvTwist {
		t.Fatalf("expected twist entry, got %s", g.TvFeed[0].Kind)
	}
}

func TestHumanVetoDeclineSkipsCeremony(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(31, map[string]bool{"c": true}, "a", "b", "c", "d", "e", "f")
	g.MarkHOH("a")
	g.AddNominee("d")
	g.AddNominee("e")
	g.MarkPOV("c")
	g.Phase = domain.PhasePOVResults

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance into ceremony: %v", err)
	}
	if g.Phase != domain.PhasePOVCeremony || !g.AwaitingPovDecision {
		t.Fatalf("human holder should open the decision gate: phase=%s", g.Phase)
	}

	g, _, err = s.SubmitPovDecision(g, false)
	if err != nil {
		t.Fatalf("SubmitPovDecision: %v", err)
	}
	if g.Phase != domain.PhasePOVCeremonyResults || g.AwaitingPovDecision {
		t.Fatalf("decline should land on ceremony results, got %s", g.Phase)
	}
	if len(g.NomineeIDs) != 2 {
		t.Fatalf("decline must leave the block intact: %v", g.NomineeIDs)
	}
}

func TestHumanVetoSaveAndReplacement(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(8, map[string]bool{"a": true, "c": true}, "a", "b", "c", "d", "e", "f")
	g.MarkHOH("a")
	g.AddNominee("d")
	g.AddNominee("e")
	g.MarkPOV("c")
	g.Phase = domain.PhasePOVCeremony
	g.AwaitingPovDecision = true

	g, _, err := s.SubmitPovDecision(g, true)
	if err != nil {
		t.Fatalf("SubmitPovDecision: %v", err)
	}
	if !g.AwaitingPovSaveTarget {
		t.Fatalf("use should open the save-target gate")
	}

	if _, _, err := s.SubmitPovSaveTarget(g, "b"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("saving a non-nominee: err = %v", err)
	}

	g, _, err = s.SubmitPovSaveTarget(g, "d")
	if err != nil {
		t.Fatalf("SubmitPovSaveTarget: %v", err)
	}
	if g.IsNominee("d") || g.Competitors["d"].Status != domain.StatusActive {
		t.Fatalf("saved nominee still on the block")
	}
	if !g.ReplacementNeeded {
		t.Fatalf("human HOH should owe a replacement")
	}

	// Replacement cannot be the HOH, the veto holder, or a sitting nominee.
	for _, bad := range []string{"a", "c", "e"} {
		if _, _, err := s.SetReplacementNominee(g, bad); !errors.Is(err, ErrInvalidSelection) {
			t.Fatalf("replacement %q: err = %v", bad, err)
		}
	}

	g, _, err = s.SetReplacementNominee(g, "f")
	if err != nil {
		t.Fatalf("SetReplacementNominee: %v", err)
	}
	if g.ReplacementNeeded || len(g.NomineeIDs) != 2 || !g.IsNominee("f") {
		t.Fatalf("replacement not applied: %v", g.NomineeIDs)
	}
}

func TestAIVetoSavesSelf(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(13, nil, "a", "b", "c", "d", "e", "f")
	g.MarkHOH("a")
	g.AddNominee("d")
	g.AddNominee("e")
	g.MarkPOV("d") // nominated AI wins the veto
	g.Phase = domain.PhasePOVResults

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if g.IsNominee("d") {
		t.Fatalf("nominated AI holder should save itself")
	}
	if len(g.NomineeIDs) != 2 {
		t.Fatalf("AI HOH should have drawn a replacement: %v", g.NomineeIDs)
	}
	replacement := g.NomineeIDs[1]
	if replacement == "a" || replacement == "d" || replacement == "e" {
		t.Fatalf("illegal replacement %q", replacement)
	}
}

func TestAIVetoDeclinesWhenSafe(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(13, nil, "a", "b", "c", "d", "e", "f")
	g.MarkHOH("a")
	g.AddNominee("d")
	g.AddNominee("e")
	g.MarkPOV("c")
	g.Phase = domain.PhasePOVResults

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if g.Phase != domain.PhasePOVCeremony || g.Gated() {
		t.Fatalf("AI decline should pass through the ceremony ungated: %s", g.Phase)
	}
	if len(g.NomineeIDs) != 2 || !g.IsNominee("d") || !g.IsNominee("e") {
		t.Fatalf("declined veto must leave the block intact: %v", g.NomineeIDs)
	}
}

func TestAddTvEvent(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(1, nil, "a", "b", "c", "d")

	if _, _, err := s.AddTvEvent(g, "", domain.TvDiary); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("empty text: err = %v", err)
	}
	if _, _, err := s.AddTvEvent(g, "x", domain.TvKind("drama")); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("bad kind: err = %v", err)
	}

	next, events, err := s.AddTvEvent(g, "a confessional moment", domain.TvDiary)
	if err != nil {
		t.Fatalf("AddTvEvent: %v", err)
	}
	if len(next.TvFeed) != 1 || next.TvFeed[0].Kind != domain.TvDiary {
		t.Fatalf("feed = %+v", next.TvFeed)
	}
	if len(g.TvFeed) != 0 {
		t.Fatalf("input state mutated")
	}
	if len(events) != 1 || events[0].Kind != EventStateChanged {
		t.Fatalf("events = %+v", events)
	}
}
