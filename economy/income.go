// Package economy implements the Income Phase formulas, research/tech cost
// curves, construction funding, the maintenance shortfall cascade, and
// Space-Guild population transfers (spec.md §4.5).
package economy

import (
	"math"

	"github.com/greenm01/ec4x/colonies"
	"github.com/greenm01/ec4x/config"
)

// ELModifier returns the economic-level production multiplier, capped per
// spec.md §8: "EL_modifier caps at 1.50 regardless of EL."
func ELModifier(cfg *config.Config, level int) float64 {
	bonus := float64(level) * cfg.Economy.ELModifierPerLevel
	if bonus > cfg.Economy.ELModifierCap {
		bonus = cfg.Economy.ELModifierCap
	}
	return 1.0 + bonus
}

// GrossColonialOutput computes GCO per spec.md §4.5:
//
//	GCO = PU * RAW_INDEX(planetClass, resources) + IU * EL_modifier * (1 + productionGrowth)
//
// truncated to an integer (spec.md §8 scenario 1: 152.5 -> 152).
func GrossColonialOutput(cfg *config.Config, c *colonies.Colony, elLevel int) int {
	rawIndex := cfg.Economy.RawIndex[c.PlanetClass][c.ResourceRating]
	elMod := ELModifier(cfg, elLevel)
	gco := float64(c.PopulationUnits)*rawIndex +
		float64(c.IndustrialUnits)*elMod*(1+cfg.Economy.ProductionGrowth)
	return int(math.Floor(gco))
}

// NetColonyValue computes NCV = GCO * taxRate / 100 (spec.md §4.5), the
// treasury income this colony contributes this turn. Integer division
// matches spec.md §8 scenario 1: 152*50/100 = 76.
func NetColonyValue(gco, taxRatePct int) int {
	return gco * taxRatePct / 100
}

// TaxPenalty returns the prestige penalty for a rolling-average tax rate,
// per the schedule in spec.md §4.5 (0 @ <=50%, escalating at 60/70/80/90/>90).
func TaxPenalty(cfg *config.Config, rollingAveragePct float64) int {
	penalty := 0
	for _, t := range cfg.Economy.TaxPenaltyThresholds {
		if rollingAveragePct >= float64(t.RatePct) {
			penalty = t.PrestigePenalty
		}
	}
	return penalty
}

// PopulationGrowth computes the next turn's PU delta, modulated by morale
// and tax efficiency, clamped so the colony never exceeds its planet
// class's maxPU (spec.md §3 invariant).
func PopulationGrowth(cfg *config.Config, c *colonies.Colony, moraleTaxEfficiency float64) int {
	maxPU := cfg.Economy.PlanetClassMaxPU[c.PlanetClass]
	if c.PopulationUnits >= maxPU {
		return 0
	}
	growth := float64(c.PopulationUnits) * cfg.Economy.PopulationGrowthBase * moraleTaxEfficiency
	delta := int(math.Floor(growth))
	if c.PopulationUnits+delta > maxPU {
		delta = maxPU - c.PopulationUnits
	}
	if delta < 0 {
		delta = 0
	}
	return delta
}
