package bot

import "housegame/internal/domain"

// Pick makes a uniform AI choice from the pool, consuming exactly one step of
// the state's seeded stream. Returns "" for an empty pool without drawing.
func Pick(g *domain.GameState, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[g.DrawIndex(len(pool))]
}

// PickTwo makes two distinct uniform AI choices from the pool, consuming two
// steps. The pool must hold at least two entries.
func PickTwo(g *domain.GameState, pool []string) (string, string) {
	first := g.DrawIndex(len(pool))
	second := g.DrawIndex(len(pool) - 1)
	if second >= first {
		second++
	}
	return pool[first], pool[second]
}
