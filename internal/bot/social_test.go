package bot

import (
	"testing"

	"housegame/internal/domain"
)

func TestSocialBeatWritesOneEntry(t *testing.T) {
	g := house(11, "a", "b", "c", "d")
	SocialBeat(g)
	if len(g.TvFeed) != 1 {
		t.Fatalf("feed length = %d, want 1", len(g.TvFeed))
	}
	if g.TvFeed[0].Kind != domain.TvSocial {
		t.Fatalf("feed kind = %s, want %s", g.TvFeed[0].Kind, domain.TvSocial)
	}
	if g.TvFeed[0].Text == "" {
		t.Fatalf("empty social text")
	}
}

func TestSocialBeatDeterministicText(t *testing.T) {
	first := house(42, "a", "b", "c", "d")
	second := house(42, "a", "b", "c", "d")
	SocialBeat(first)
	SocialBeat(second)
	if first.TvFeed[0].Text != second.TvFeed[0].Text {
		t.Fatalf("same seed produced %q and %q", first.TvFeed[0].Text, second.TvFeed[0].Text)
	}
	if first.Seed != second.Seed {
		t.Fatalf("same seed diverged: %d vs %d", first.Seed, second.Seed)
	}
}

func TestSocialBeatSkipsTinyHouse(t *testing.T) {
	g := house(3, "a")
	before := g.Seed
	SocialBeat(g)
	if len(g.TvFeed) != 0 {
		t.Fatalf("lone competitor produced a social beat")
	}
	if g.Seed != before {
		t.Fatalf("skipped beat still consumed draws")
	}
}
