package domain

// Roster derivations are pure reads over competitor status; the status field
// itself is only ever written by the transition helpers below.

// Alive returns the competitors still in the house, in cast order.
func (g *GameState) Alive() []*Competitor {
	var out []*Competitor
	for _, id := range g.CastOrder {
		if c := g.Competitors[id]; c != nil && c.InHouse() {
			out = append(out, c)
		}
	}
	return out
}

// AliveIDs returns the ids of competitors still in the house, in cast order.
func (g *GameState) AliveIDs() []string {
	var out []string
	for _, id := range g.CastOrder {
		if c := g.Competitors[id]; c != nil && c.InHouse() {
			out = append(out, id)
		}
	}
	return out
}

// AliveCount returns the number of competitors still in the house.
func (g *GameState) AliveCount() int {
	n := 0
	for _, c := range g.Competitors {
		if c.InHouse() {
			n++
		}
	}
	return n
}

// IsAlive reports whether the competitor with the given id is still in the house.
func (g *GameState) IsAlive(id string) bool {
	c := g.Competitors[id]
	return c != nil && c.InHouse()
}

// JuryMembers returns the competitors who were evicted into the jury, in cast order.
func (g *GameState) JuryMembers() []*Competitor {
	var out []*Competitor
	for _, id := range g.CastOrder {
		if c := g.Competitors[id]; c != nil && c.Status == StatusJury {
			out = append(out, c)
		}
	}
	return out
}

// EvictedOut returns the competitors out of the house (pre-jury and jury), in cast order.
func (g *GameState) EvictedOut() []*Competitor {
	var out []*Competitor
	for _, id := range g.CastOrder {
		if c := g.Competitors[id]; c != nil && !c.InHouse() {
			out = append(out, c)
		}
	}
	return out
}

// Nominees returns the competitors currently on the block, in nomination order.
func (g *GameState) Nominees() []*Competitor {
	var out []*Competitor
	for _, id := range g.NomineeIDs {
		if c := g.Competitors[id]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// EligibleVoterIDs returns the alive competitors allowed to vote in the weekly
// eviction: everyone except the HOH and the nominees.
func (g *GameState) EligibleVoterIDs() []string {
	var out []string
	for _, id := range g.AliveIDs() {
		if id == g.HOHID || g.IsNominee(id) {
			continue
		}
		out = append(out, id)
	}
	return out
}

// MarkHOH crowns the weekly Head of Household.
func (g *GameState) MarkHOH(id string) {
	c := g.Competitors[id]
	if c == nil || !c.InHouse() {
		return
	}
	c.Status = StatusHOH
	c.HOHWins++
	g.HOHID = id
}

// MarkPOV records a Power of Veto win, merging with the holder's current role.
func (g *GameState) MarkPOV(id string) {
	c := g.Competitors[id]
	if c == nil || !c.InHouse() {
		return
	}
	switch c.Status {
	case StatusHOH:
		c.Status = StatusHOHPOV
	case StatusNominated:
		c.Status = StatusNominatedPOV
	default:
		c.Status = StatusPOV
	}
	c.POVWins++
	g.POVWinnerID = id
}

// AddNominee puts a competitor on the block.
func (g *GameState) AddNominee(id string) {
	c := g.Competitors[id]
	if c == nil || !c.InHouse() || g.IsNominee(id) {
		return
	}
	if c.HoldsVeto() {
		c.Status = StatusNominatedPOV
	} else {
		c.Status = StatusNominated
	}
	c.TimesNominated++
	g.NomineeIDs = append(g.NomineeIDs, id)
}

// RemoveNominee takes a competitor off the block, restoring their prior role.
func (g *GameState) RemoveNominee(id string) {
	c := g.Competitors[id]
	if c == nil || !g.IsNominee(id) {
		return
	}
	out := g.NomineeIDs[:0]
	for _, nid := range g.NomineeIDs {
		if nid != id {
			out = append(out, nid)
		}
	}
	g.NomineeIDs = out
	if c.Status == StatusNominatedPOV {
		c.Status = StatusPOV
	} else if c.Status == StatusNominated {
		c.Status = StatusActive
	}
}

// Evict removes a competitor from the house. The departing competitor joins
// the jury when the post-eviction alive count is within jury range, otherwise
// they are evicted outright. Returns the resulting status, or "" when the
// eviction was refused because it would drop the house below two.
func (g *GameState) Evict(id string, jurySize int) Status {
	c := g.Competitors[id]
	if c == nil || !c.InHouse() {
		return ""
	}
	if g.AliveCount() <= 2 {
		return ""
	}

	out := g.NomineeIDs[:0]
	for _, nid := range g.NomineeIDs {
		if nid != id {
			out = append(out, nid)
		}
	}
	g.NomineeIDs = out

	if g.AliveCount()-1 <= jurySize+1 {
		c.Status = StatusJury
	} else {
		c.Status = StatusEvicted
	}
	return c.Status
}

// ResetWeeklyRoles returns every alive competitor to baseline and clears the
// week-scoped fields. Runs when a new week or the final three begins.
func (g *GameState) ResetWeeklyRoles() {
	for _, c := range g.Competitors {
		if c.InHouse() {
			c.Status = StatusActive
		}
	}
	g.LastHOHID = g.HOHID
	g.HOHID = ""
	g.POVWinnerID = ""
	g.NomineeIDs = nil
	g.PendingNominee1ID = ""
	g.ReplacementNeeded = false
	g.TiedNomineeIDs = nil
	g.F3Part1WinnerID = ""
	g.F3Part2WinnerID = ""
	g.Votes = make(map[string]string)
}
