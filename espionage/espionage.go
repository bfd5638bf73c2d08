// Package espionage implements the C8 Espionage Kernel (spec.md §4.8): EBP
// (offensive) and CIP (defensive) budgets, PP-to-points investment, the
// over-investment penalty, the seven named offensive actions, and the
// detection-probability lookup (including the starbase detection bonus).
// Grounded on houses.EspionageBudget for the budget shape and on the
// economy package's config-table-lookup idiom (economy/income.go's
// ELModifier) for the detection-table and action-cost lookups here.
package espionage

import (
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/houses"
)

// Invest converts pp production points into EBP/CIP at the configured
// rate, splitting by share (spec.md §4.8: "Investment is a PP conversion
// at configured rate"). share is the fraction of the investment routed to
// EBP; the remainder goes to CIP.
func Invest(cfg *config.Config, budget *houses.EspionageBudget, pp int, ebpShare float64) {
	points := int(float64(pp) * cfg.Espionage.InvestmentConversionRate)
	ebp := int(float64(points) * ebpShare)
	cip := points - ebp
	budget.EBP += ebp
	budget.CIP += cip
	budget.InvestedThisTurn += pp
}

// OverInvestmentPenalty returns the PP penalty applied when a house's
// per-turn espionage investment exceeds its configured budget share of
// gross house output (spec.md §4.8: "over-investment triggers a
// penalty").
func OverInvestmentPenalty(cfg *config.Config, budget *houses.EspionageBudget, grossHouseOutput int) int {
	cap := int(float64(grossHouseOutput) * cfg.Espionage.BudgetSharePct)
	if budget.InvestedThisTurn <= cap {
		return 0
	}
	excess := budget.InvestedThisTurn - cap
	return int(float64(excess) * cfg.Espionage.OverInvestmentPenaltyPct)
}

// ActionCost returns the EBP cost and duration of a named offensive
// action, and whether the name is recognized.
func ActionCost(cfg *config.Config, name string) (cost, durationTurns int, ok bool) {
	for _, a := range cfg.Espionage.Actions {
		if a.Name == name {
			return a.EBPCost, a.DurationTurns, true
		}
	}
	return 0, 0, false
}

// DetectionProbability looks up the chance an action is detected, indexed
// by the attacker's Espionage Level of Investment (ELI) and the defender's
// Counter-Intelligence Points (CIP) level, with starbasePresent adding the
// configured bonus to the defender's effective CIP level before the
// lookup (spec.md §4.8).
func DetectionProbability(cfg *config.Config, attackerELI, defenderCIC int, starbasePresent bool) float64 {
	if starbasePresent {
		defenderCIC += cfg.Espionage.StarbaseDetectionBonus
	}
	row, ok := cfg.Espionage.DetectionTable[attackerELI]
	if !ok {
		return 1.0 // unconfigured attacker tier: treat as certain detection
	}
	if p, ok := row[defenderCIC]; ok {
		return p
	}
	// Fall back to the highest configured CIC tier not exceeding
	// defenderCIC, since a stronger defender is never easier to evade than
	// the table's best-known point.
	best, found := 0.0, false
	bestCIC := -1
	for cic, p := range row {
		if cic <= defenderCIC && cic > bestCIC {
			bestCIC, best, found = cic, p, true
		}
	}
	if !found {
		return 0.0
	}
	return best
}

// Outcome is the result of attempting one offensive action.
type Outcome struct {
	Detected       bool
	PrestigeDelta  int // applied to the attacker on detection
	ScoutDestroyed bool
}

// ResolveDetection applies spec.md §4.8's detection consequences: on
// detection the attacker's prestige decreases and the defender receives a
// detection event (represented here simply as Detected=true for the
// caller to log); scout destruction is left to the caller's roll since it
// depends on the specific action's scout-presence precondition.
func ResolveDetection(cfg *config.Config, detected bool) Outcome {
	if !detected {
		return Outcome{}
	}
	return Outcome{Detected: true, PrestigeDelta: cfg.Prestige.SourceAmounts["EspionageDetected"]}
}
