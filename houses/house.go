// Package houses models the House entity: the per-player record holding
// treasury, prestige, tech levels, diplomatic relations, espionage budgets,
// tax policy, and violation history (spec.md §3).
package houses

import (
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/ids"
)

// DiplomaticState is one edge of a House's relation graph.
type DiplomaticState string

const (
	StateNeutral         DiplomaticState = "Neutral"
	StateNonAggression   DiplomaticState = "NonAggression"
	StateEnemy           DiplomaticState = "Enemy"
)

// Relation records a diplomatic state and the turn it began, so cooldowns
// and "sinceTurn" reporting (spec.md §3) can be computed without a
// separate event log lookup.
type Relation struct {
	State     DiplomaticState
	SinceTurn int
}

// Violation records one broken-pact or similar event against this house,
// used to drive Dishonored/DiplomaticallyIsolated status (spec.md §4.7).
type Violation struct {
	Turn        int
	AgainstHouse ids.HouseId
	Kind        string
}

// EspionageBudget tracks offensive/defensive investment points and how much
// of this turn's projected treasury has already been committed, so the
// over-investment penalty (spec.md §4.8) has something to compare against.
type EspionageBudget struct {
	EBP               int
	CIP               int
	InvestedThisTurn  int
}

// TaxPolicy is the house's current rate and its rolling average, which
// drives the high-tax prestige penalty schedule (spec.md §4.5).
type TaxPolicy struct {
	CurrentRate    int       // 0..100
	History        []int     // most recent up to 6 turns, oldest first
	RollingAverage float64
}

// PushRate records this turn's rate into the rolling window (capped at 6
// entries, spec.md §4.5 "rolling 6-turn average") and recomputes the
// average.
func (tp *TaxPolicy) PushRate(rate int) {
	tp.CurrentRate = rate
	tp.History = append(tp.History, rate)
	const window = 6
	if len(tp.History) > window {
		tp.History = tp.History[len(tp.History)-window:]
	}
	sum := 0
	for _, r := range tp.History {
		sum += r
	}
	tp.RollingAverage = float64(sum) / float64(len(tp.History))
}

// EspionageEffect is one ongoing, maturing effect a detected-or-not
// offensive action left on its target (spec.md §4.8: "a defined effect...
// and duration for ongoing ones"), ticked down once per Income Phase.
type EspionageEffect struct {
	Action         string
	Source         ids.HouseId
	RemainingTurns int
	PerTurnPct     float64 // treasury debuff fraction, captured at apply time
}

// House is the per-player record (spec.md §3).
type House struct {
	ID       ids.HouseId
	Name     string
	Treasury int // invariant: never negative after pipeline completion (I2)
	Prestige int // may be negative

	TechTree map[config.TechField]int
	// ResearchProgress banks PP invested toward a field's next level that
	// hasn't yet crossed economy.TechUpgradeCost (spec.md §4.5).
	ResearchProgress map[config.TechField]int

	DiplomaticRelations map[ids.HouseId]Relation
	Espionage           EspionageBudget
	TaxPolicy           TaxPolicy
	ViolationHistory    []Violation

	ActiveEspionageEffects []EspionageEffect

	// ConsecutiveShortfallTurns and ConsecutiveNegativePrestigeTurns persist
	// the maintenance-shortfall and DefensiveCollapse streaks across turns
	// (spec.md §4.5/§4.7), fed back in as the prevStreak argument each turn.
	ConsecutiveShortfallTurns        int
	ConsecutiveNegativePrestigeTurns int

	Eliminated     bool
	FallbackRoutes []ids.SystemId

	Version int64
}

// New constructs a House with zeroed tech levels and empty relation/violation
// sets, ready for the entity store.
func New(id ids.HouseId, name string, startingTreasury int) *House {
	return &House{
		ID:                  id,
		Name:                name,
		Treasury:            startingTreasury,
		TechTree:            make(map[config.TechField]int),
		ResearchProgress:    make(map[config.TechField]int),
		DiplomaticRelations: make(map[ids.HouseId]Relation),
		Version:             1,
	}
}

// Clone returns a deep copy, required by the entity store's copy-by-value
// read-modify-write discipline (spec.md §4.2/§9): callers must never retain
// a mutable reference to a record returned by Get.
func (h *House) Clone() *House {
	cp := *h
	cp.TechTree = make(map[config.TechField]int, len(h.TechTree))
	for k, v := range h.TechTree {
		cp.TechTree[k] = v
	}
	cp.ResearchProgress = make(map[config.TechField]int, len(h.ResearchProgress))
	for k, v := range h.ResearchProgress {
		cp.ResearchProgress[k] = v
	}
	cp.DiplomaticRelations = make(map[ids.HouseId]Relation, len(h.DiplomaticRelations))
	for k, v := range h.DiplomaticRelations {
		cp.DiplomaticRelations[k] = v
	}
	cp.ViolationHistory = append([]Violation(nil), h.ViolationHistory...)
	cp.ActiveEspionageEffects = append([]EspionageEffect(nil), h.ActiveEspionageEffects...)
	cp.FallbackRoutes = append([]ids.SystemId(nil), h.FallbackRoutes...)
	cp.TaxPolicy.History = append([]int(nil), h.TaxPolicy.History...)
	return &cp
}

// RecentViolations counts violations within the last windowTurns as of
// currentTurn, driving Dishonored/DiplomaticallyIsolated thresholds.
func (h *House) RecentViolations(currentTurn, windowTurns int) int {
	n := 0
	for _, v := range h.ViolationHistory {
		if currentTurn-v.Turn <= windowTurns {
			n++
		}
	}
	return n
}
