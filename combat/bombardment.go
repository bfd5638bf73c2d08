package combat

import (
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/rng"
)

// BombardmentTarget is the planetary-defense state bombardment fires
// against (spec.md §4.6 Planetary Bombardment: shields, Planet-Breakers).
type BombardmentTarget struct {
	ShieldLevel      int  // 0 = none
	IUPresent        int
	PUPresent        int
	HasPlanetBreaker bool // attacker wields a Planet-Breaker weapon, bypasses shields
}

// BombardmentResult is the outcome of one bombardment run.
type BombardmentResult struct {
	Rounds       int
	IULost       int
	PULost       int
	ShieldBlocks int
}

// Bombard resolves up to cfg.Combat.MaxBombardmentRounds rounds of orbital
// bombardment against a colony (spec.md §4.6). Each round, the shield may
// block the round outright with probability
// ShieldLevel*ShieldBlockChancePerLevel, reducing applied damage by
// ShieldLevel*ShieldBlockPctPerLevel when it doesn't. A Planet-Breaker
// bypasses the shield entirely.
func Bombard(cfg *config.Config, stream *rng.Stream, target *BombardmentTarget, attackPower int) BombardmentResult {
	var result BombardmentResult
	iu, pu := target.IUPresent, target.PUPresent

	for round := 1; round <= cfg.Combat.MaxBombardmentRounds; round++ {
		if iu <= 0 && pu <= 0 {
			break
		}
		result.Rounds = round

		damage := attackPower
		if target.ShieldLevel > 0 && !target.HasPlanetBreaker {
			blockChance := float64(target.ShieldLevel) * cfg.Combat.ShieldBlockChancePerLevel
			if stream.Float64() < blockChance {
				result.ShieldBlocks++
				continue
			}
			reduction := float64(target.ShieldLevel) * cfg.Combat.ShieldBlockPctPerLevel
			damage = int(float64(damage) * (1 - reduction))
		}

		iuLoss := int(float64(damage) * cfg.Combat.BombardmentIUCasualtyRate)
		puLoss := int(float64(damage) * cfg.Combat.BombardmentPUCasualtyRate)
		if iuLoss > iu {
			iuLoss = iu
		}
		if puLoss > pu {
			puLoss = pu
		}
		iu -= iuLoss
		pu -= puLoss
		result.IULost += iuLoss
		result.PULost += puLoss
	}
	return result
}
