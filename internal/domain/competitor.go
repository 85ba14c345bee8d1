package domain

// Status tracks a competitor's current standing in the house.
type Status string

const (
	StatusActive       Status = "active"
	StatusNominated    Status = "nominated"
	StatusHOH          Status = "hoh"
	StatusPOV          Status = "pov"
	StatusHOHPOV       Status = "hoh_pov"
	StatusNominatedPOV Status = "nominated_pov"
	StatusEvicted      Status = "evicted"
	StatusJury         Status = "jury"
)

// Competitor is a single cast member. Competitors are never removed from the
// roster; elimination is a status transition.
type Competitor struct {
	ID     string
	Name   string
	Status Status
	Human  bool

	HOHWins        int
	POVWins        int
	TimesNominated int
}

// InHouse reports whether the competitor is still playing.
func (c *Competitor) InHouse() bool {
	return c.Status != StatusEvicted && c.Status != StatusJury
}

// OnBlock reports whether the competitor is currently nominated.
func (c *Competitor) OnBlock() bool {
	return c.Status == StatusNominated || c.Status == StatusNominatedPOV
}

// HoldsVeto reports whether the competitor currently holds the Power of Veto.
func (c *Competitor) HoldsVeto() bool {
	return c.Status == StatusPOV || c.Status == StatusHOHPOV || c.Status == StatusNominatedPOV
}
