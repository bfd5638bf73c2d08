package combat

import (
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/rng"
)

// InvasionMode selects between the two ground-combat variants spec.md §4.6
// names: a cautious Invasion (lower infrastructure loss, slower) and an
// aggressive Blitz (higher infrastructure loss, resolves in one round).
type InvasionMode int

const (
	ModeInvasion InvasionMode = iota
	ModeBlitz
)

// GroundForce is one side of a planetary ground battle: armies/marines on
// the attacking transport, or the colony's garrison on defense.
type GroundForce struct {
	Armies         int
	Marines        int
	GroundBatteries int
}

func (g GroundForce) strength() int {
	return g.Armies + 2*g.Marines + 3*g.GroundBatteries
}

// GroundResult is the outcome of one ground-combat resolution.
type GroundResult struct {
	AttackerWon              bool
	AttackerLosses           int
	DefenderLosses           int
	InfrastructureLossPct    float64
}

// ResolveGround resolves a single ground-combat engagement. Blitz trades a
// single decisive roll (spec.md's "higher infrastructure loss, faster
// resolution") for speed; Invasion grinds down strength over successive
// D10 exchanges, each side losing units proportional to the other's
// rolled effectiveness, until one side's strength reaches zero or ten
// exchanges have been fought.
func ResolveGround(cfg *config.Config, stream *rng.Stream, mode InvasionMode, attacker, defender GroundForce) GroundResult {
	aStr, dStr := attacker.strength(), defender.strength()

	var result GroundResult
	switch mode {
	case ModeBlitz:
		aRoll := stream.D10() * aStr
		dRoll := stream.D10() * dStr
		result.AttackerWon = aRoll > dRoll
		result.InfrastructureLossPct = cfg.Combat.BlitzInfrastructureLossPct
		if result.AttackerWon {
			result.DefenderLosses = dStr
			result.AttackerLosses = aStr / 4
		} else {
			result.AttackerLosses = aStr
			result.DefenderLosses = dStr / 4
		}
	default: // ModeInvasion
		result.InfrastructureLossPct = cfg.Combat.InvasionInfrastructureLossPct
		for round := 0; round < 10 && aStr > 0 && dStr > 0; round++ {
			aRoll := stream.D10()
			dRoll := stream.D10()
			aLoss := dRoll
			dLoss := aRoll
			if aLoss > aStr {
				aLoss = aStr
			}
			if dLoss > dStr {
				dLoss = dStr
			}
			aStr -= aLoss
			dStr -= dLoss
			result.AttackerLosses += aLoss
			result.DefenderLosses += dLoss
		}
		result.AttackerWon = dStr <= 0 && aStr > 0
	}
	return result
}
