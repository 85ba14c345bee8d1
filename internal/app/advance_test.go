package app

import (
	"errors"
	"strings"
	"testing"

	"housegame/internal/domain"
)

func TestOpenLiveVoteRecordsAIVotes(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(25, nil, "a", "b", "c", "d", "e", "f")
	g.MarkHOH("a")
	g.AddNominee("b")
	g.AddNominee("c")
	g.Phase = domain.PhaseSocial2

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if g.Phase != domain.PhaseLiveVote || g.AwaitingHumanVote {
		t.Fatalf("all-AI vote should not gate: phase=%s", g.Phase)
	}
	if len(g.Votes) != 3 {
		t.Fatalf("votes = %v, want one per eligible voter", g.Votes)
	}
	for voter, target := range g.Votes {
		if voter == "a" || g.IsNominee(voter) {
			t.Fatalf("ineligible voter %s recorded", voter)
		}
		if target != "b" && target != "c" {
			t.Fatalf("vote for non-nominee %s", target)
		}
	}
}

func TestHumanVoteGate(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(25, map[string]bool{"d": true, "e": true}, "a", "b", "c", "d", "e", "f")
	g.MarkHOH("a")
	g.AddNominee("b")
	g.AddNominee("c")
	g.Phase = domain.PhaseSocial2

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if !g.AwaitingHumanVote {
		t.Fatalf("pending human voters should gate the vote")
	}
	if len(g.Votes) != 1 {
		t.Fatalf("AI votes = %v, want just f's", g.Votes)
	}

	// Illegal ballots bounce.
	if _, _, err := s.SubmitHumanVote(g, "a", "b"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("HOH voting: err = %v", err)
	}
	if _, _, err := s.SubmitHumanVote(g, "f", "b"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("AI submitted as human: err = %v", err)
	}
	if _, _, err := s.SubmitHumanVote(g, "d", "f"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("vote for non-nominee: err = %v", err)
	}

	g, _, err = s.SubmitHumanVote(g, "d", "b")
	if err != nil {
		t.Fatalf("first human vote: %v", err)
	}
	if !g.AwaitingHumanVote {
		t.Fatalf("gate closed with a human ballot outstanding")
	}
	if _, _, err := s.SubmitHumanVote(g, "d", "c"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("double vote: err = %v", err)
	}

	g, _, err = s.SubmitHumanVote(g, "e", "c")
	if err != nil {
		t.Fatalf("second human vote: %v", err)
	}
	if g.AwaitingHumanVote {
		t.Fatalf("gate should close once every human has voted")
	}
	if g.Votes["d"] != "b" || g.Votes["e"] != "c" {
		t.Fatalf("votes = %v", g.Votes)
	}
}

func TestResolveEvictionMajority(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(3, nil, "a", "b", "c", "d", "e", "f", "g")
	g.MarkHOH("a")
	g.AddNominee("b")
	g.AddNominee("c")
	g.Votes = map[string]string{"d": "b", "e": "b", "f": "c"}
	g.Phase = domain.PhaseLiveVote

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if g.Phase != domain.PhaseEvictionResults {
		t.Fatalf("phase = %s", g.Phase)
	}
	if g.Competitors["b"].InHouse() {
		t.Fatalf("majority target survived")
	}
	if !g.Competitors["c"].InHouse() {
		t.Fatalf("minority target evicted")
	}
	if !strings.Contains(g.TvFeed[0].Text, "evicted by a vote of 2") {
		t.Fatalf("vote narrative = %q", g.TvFeed[0].Text)
	}
}

func TestResolveEvictionTieHumanHOH(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(3, map[string]bool{"a": true}, "a", "b", "c", "d", "e", "f")
	g.MarkHOH("a")
	g.AddNominee("b")
	g.AddNominee("c")
	g.Votes = map[string]string{"d": "b", "e": "c"}
	g.Phase = domain.PhaseLiveVote

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if !g.AwaitingTieBreak || len(g.TiedNomineeIDs) != 2 {
		t.Fatalf("tie should gate on the human HOH: %+v", g)
	}
	if g.Competitors["b"].InHouse() == false || g.Competitors["c"].InHouse() == false {
		t.Fatalf("tie evicted someone before the tie-break")
	}

	if _, _, err := s.SubmitTieBreak(g, "d"); !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("tie-break outside tied pool: err = %v", err)
	}

	g, _, err = s.SubmitTieBreak(g, "c")
	if err != nil {
		t.Fatalf("SubmitTieBreak: %v", err)
	}
	if g.AwaitingTieBreak || g.TiedNomineeIDs != nil {
		t.Fatalf("tie-break gate not cleared")
	}
	if g.Competitors["c"].InHouse() {
		t.Fatalf("tie-break target survived")
	}
	if !strings.Contains(g.TvFeed[0].Text, "breaks the tie") {
		t.Fatalf("tie narrative = %q", g.TvFeed[0].Text)
	}
}

func TestResolveEvictionTieAIHOH(t *testing.T) {
	s := NewService(7, 6)
	seed := uint32(40)
	g := buildGame(seed, nil, "a", "b", "c", "d", "e", "f")
	g.MarkHOH("a")
	g.AddNominee("b")
	g.AddNominee("c")
	g.Votes = map[string]string{"d": "b", "e": "c"}
	g.Phase = domain.PhaseLiveVote

	// The AI tie-break keys off the raw seed before drawing.
	want := []string{"b", "c"}[int(seed%2)]

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if g.AwaitingTieBreak {
		t.Fatalf("AI HOH should resolve the tie immediately")
	}
	if g.Competitors[want].InHouse() {
		t.Fatalf("expected %s evicted on seed %d", want, seed)
	}
	if g.Seed == seed {
		t.Fatalf("AI tie-break should advance the seed stream")
	}
}

func TestCloseWeekLoopsAndBranches(t *testing.T) {
	s := NewService(7, 6)

	// Five alive: a fresh week begins.
	g := buildGame(2, nil, "a", "b", "c", "d", "e")
	g.MarkHOH("a")
	g.Phase = domain.PhaseWeekEnd
	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if g.Phase != domain.PhaseWeekStart || g.Week != 2 {
		t.Fatalf("week rollover: phase=%s week=%d", g.Phase, g.Week)
	}
	if g.LastHOHID != "a" || g.HOHID != "" {
		t.Fatalf("outgoing HOH not recorded: last=%s hoh=%s", g.LastHOHID, g.HOHID)
	}

	// Three alive: the final three begins.
	g = buildGame(2, nil, "a", "b", "c", "d")
	g.Competitors["d"].Status = domain.StatusJury
	g.Phase = domain.PhaseWeekEnd
	g, _, err = s.Advance(g)
	if err != nil || g.Phase != domain.PhaseFinal3 {
		t.Fatalf("three alive: phase=%s err=%v", g.Phase, err)
	}

	// Two alive: the jury convenes and the season parks.
	g = buildGame(2, nil, "a", "b", "c", "d")
	g.Competitors["c"].Status = domain.StatusJury
	g.Competitors["d"].Status = domain.StatusJury
	g.Phase = domain.PhaseWeekEnd
	g, _, err = s.Advance(g)
	if err != nil || g.Phase != domain.PhaseJury {
		t.Fatalf("two alive: phase=%s err=%v", g.Phase, err)
	}
}

func TestNewHOHExcludesLastWinner(t *testing.T) {
	s := NewService(7, 6)
	for seed := uint32(0); seed < 25; seed++ {
		g := buildGame(seed, nil, "a", "b", "c", "d", "e")
		g.LastHOHID = "a"
		g.Phase = domain.PhaseHOHComp
		next, _, err := s.Advance(g)
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if next.HOHID == "" {
			t.Fatalf("seed %d: no HOH crowned", seed)
		}
		if next.HOHID == "a" {
			t.Fatalf("seed %d: outgoing HOH repeated", seed)
		}
	}
}

func TestNewHOHAllowsRepeatAtTwoAlive(t *testing.T) {
	s := NewService(7, 6)
	g := buildGame(6, nil, "a", "b", "c")
	g.Competitors["c"].Status = domain.StatusJury
	g.LastHOHID = "a"
	g.Phase = domain.PhaseHOHComp

	g, _, err := s.Advance(g)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if g.HOHID != "a" && g.HOHID != "b" {
		t.Fatalf("HOH = %q", g.HOHID)
	}
}
