package domain

// Next advances the mulberry32 stream by one step and returns a value in
// [0, 1) together with the new seed. Every stochastic decision in the engine
// consumes exactly one step, and the returned seed is written back into
// GameState.Seed, so replaying a season from the same initial seed with the
// same human decisions reproduces identical outcomes.
func Next(seed uint32) (float64, uint32) {
	s := seed + 0x6D2B79F5
	t := s
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	t ^= t >> 14
	return float64(t) / 4294967296.0, s
}

// Draw consumes one step of the seeded stream and persists the new seed.
func (g *GameState) Draw() float64 {
	v, seed := Next(g.Seed)
	g.Seed = seed
	return v
}

// DrawIndex consumes one step and returns an index in [0, n).
func (g *GameState) DrawIndex(n int) int {
	if n <= 0 {
		return 0
	}
	return int(g.Draw() * float64(n))
}
