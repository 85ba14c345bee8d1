package bot

import (
	"fmt"

	"housegame/internal/domain"
)

var socialTemplates = []string{
	"%s and %s talk game by the pool.",
	"%s pulls %s aside for a quiet deal in the pantry.",
	"%s and %s clash over the dishes.",
	"%s trades votes with %s in the bedroom.",
}

// SocialBeat writes one house-flavor entry for a pair of alive competitors,
// consuming three steps of the seeded stream (pair selection plus template).
// Skips silently when fewer than two competitors remain.
func SocialBeat(g *domain.GameState) {
	alive := g.AliveIDs()
	if len(alive) < 2 {
		return
	}
	a, b := PickTwo(g, alive)
	template := socialTemplates[g.DrawIndex(len(socialTemplates))]
	g.AppendTv(domain.TvSocial, fmt.Sprintf(template, g.Competitor(a).Name, g.Competitor(b).Name))
}
