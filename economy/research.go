package economy

import (
	"math"

	"github.com/greenm01/ec4x/config"
)

// ERPCost returns the PP cost of one ERP, spec.md §4.5:
//
//	ERP_cost = 5 + log10(GHO)
//
// GHO (Gross House Output) is clamped to at least 1 to keep log10 defined
// and non-negative for a house with no production yet.
func ERPCost(cfg *config.Config, grossHouseOutput int) float64 {
	gho := float64(grossHouseOutput)
	if gho < 1 {
		gho = 1
	}
	return cfg.Economy.ERPCostBase + math.Log10(gho)
}

// TechUpgradeCost returns the PP cost to advance a tech field from
// targetLevel-1 to targetLevel, per spec.md §4.5/§8:
//
//	cost(L) = base + L*step                          for L <= cap
//	cost(L) = cost(cap) + (L-cap)*stepAfterCap        for L > cap
//
// Boundary values required by spec.md §8: cost(5) = 40+50 = 90,
// cost(6) = 90+15 = 105. The same structure applies to every tech field
// (EL, SL, and the rest of the glossary's levels).
func TechUpgradeCost(cfg *config.Config, targetLevel int) int {
	base, step := cfg.Economy.TechUpgradeBase, cfg.Economy.TechUpgradeStep
	cap := cfg.Economy.TechUpgradeStepCap
	afterStep := cfg.Economy.TechUpgradeStepAfterCap
	if targetLevel <= cap {
		return base + targetLevel*step
	}
	capCost := base + cap*step
	return capCost + (targetLevel-cap)*afterStep
}

// IUCostMultiplier returns the construction-cost multiplier for adding
// industrial units, scaled by how full the colony's population capacity
// already is (spec.md §4.5: "base x multiplier in [1.0,2.5] based on PU
// percentage").
func IUCostMultiplier(cfg *config.Config, puPercent float64) float64 {
	if puPercent < 0 {
		puPercent = 0
	}
	if puPercent > 1 {
		puPercent = 1
	}
	span := cfg.Economy.IUCostMultiplierMax - cfg.Economy.IUCostMultiplierMin
	return cfg.Economy.IUCostMultiplierMin + span*puPercent
}

// IUCost returns the PP cost of the next industrial unit at the given
// population-fullness ratio.
func IUCost(cfg *config.Config, puPercent float64) int {
	return int(math.Round(cfg.Economy.IUBaseCost * IUCostMultiplier(cfg, puPercent)))
}
