// Package combat implements the multi-theater CER combat kernel (spec.md
// §4.6): space combat (ambush/intercept/main engagement phases), planetary
// bombardment, and planetary ground combat, plus after-action intelligence
// reports. Grounded on the teacher's formation_combat.go (CombatContext,
// targeting/direction helpers) and battle_report.go (per-house mirrored
// report shape), generalized from galaxyCore's formation-counter model to
// EC4X's CER (1d10 + modifiers) model.
package combat

import (
	"sort"

	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/diplomacy"
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/rng"
	"github.com/greenm01/ec4x/ships"
)

// DiplomaticFilter reports the relation between two houses for targeting
// purposes (spec.md §4.6: "only Enemy units targetable; NonAggression and
// Neutral excluded"). Combat depends on diplomacy.Provider's narrow read
// interface rather than the full diplomacy.State, so it never needs to
// know how relations are stored or mutated.
type DiplomaticFilter = diplomacy.Provider

// Unit is one combat participant: a ship plus the situational flags combat
// needs (ambush/detection/fighter status, owning side).
type Unit struct {
	Ship       *ships.Ship
	SquadronID ids.SquadronId
	Owner      ids.HouseId
	Role       ships.Role

	IsRaider           bool // undetected ambusher this round
	Detected           bool
	IsFighter          bool // colony-owned or carrier-deployed
	ColonyOwnedFighter bool // never retreats (spec.md §4.6)
	CarrierSquadronID  ids.SquadronId

	InsertionOrder int // tie-break order (spec.md §4.6)
}

// Side is one combatant fleet-grouping in a theater.
type Side struct {
	House       ids.HouseId
	Units       []*Unit
	HasScout    bool
	HasStarbase bool
	MoraleCER   int // -2..+2 (spec.md §4.6)
	ROE         int // 0..10, rules of engagement (spec.md §4.6 Retreat)
}

// Phase is one of the three ordered space-combat phases (spec.md §4.6).
type Phase int

const (
	PhaseAmbush Phase = iota
	PhaseIntercept
	PhaseMain
)

// Hit records one attack roll and its outcome for the after-action report.
type Hit struct {
	Phase     Phase
	Attacker  ids.ShipId
	AttackerOwner ids.HouseId
	Target    ids.ShipId
	TargetOwner ids.HouseId
	TargetRole ships.Role
	Roll      int
	CER       int
	Destroyed bool
}

// Result is the full outcome of a space-combat engagement.
type Result struct {
	NoContact     bool
	Rounds        int
	Hits          []Hit
	DesperationApplied bool
}

// cer computes an attacking unit's Combat Effectiveness Rating modifier
// (added to the 1d10 roll), per spec.md §4.6: the side's morale -2..+2,
// scout presence +1, starbase +2, ambush bonus and any desperation bonus.
// Tech levels are not applied (cfg.Combat.TechCERModifier is not read here).
func cer(cfg *config.Config, side *Side, u *Unit, phase Phase, desperationBonus int) int {
	total := side.MoraleCER
	if side.HasScout {
		total += cfg.Combat.ScoutPresenceCERBonus
	}
	if side.HasStarbase {
		total += cfg.Combat.StarbaseCERBonus
	}
	if phase == PhaseAmbush {
		total += cfg.Combat.AmbushCERBonus
	}
	total += desperationBonus
	return total
}

// roleBucketPriority returns the ordered list of target-role buckets for an
// attacker's role, per spec.md §4.6's configured targeting priority.
func roleBucketPriority(cfg *config.Config, attackerRole ships.Role) []string {
	if order, ok := cfg.Combat.TargetingBuckets[string(attackerRole)]; ok {
		return order
	}
	return []string{"Capital", "Escort", "Fighter", "Auxiliary", "SpecialWeapon"}
}

// selectTarget applies the targeting policy of spec.md §4.6: diplomatic
// filter (Enemy only), role-bucket priority, then tie-break by highest AS,
// then lowest current HP (approximated by EffectiveDS, since HP buckets are
// not separately tracked per ship), then insertion order.
func selectTarget(cfg *config.Config, attacker *Unit, enemyUnits []*Unit) *Unit {
	buckets := roleBucketPriority(cfg, attacker.Role)
	for _, bucket := range buckets {
		var candidates []*Unit
		for _, u := range enemyUnits {
			if u.Ship.CombatState == ships.Destroyed {
				continue
			}
			if string(u.Role) == bucket {
				candidates = append(candidates, u)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			ai, aj := candidates[i].Ship.EffectiveAS(), candidates[j].Ship.EffectiveAS()
			if ai != aj {
				return ai > aj
			}
			di, dj := candidates[i].Ship.EffectiveDS(), candidates[j].Ship.EffectiveDS()
			if di != dj {
				return di < dj
			}
			return candidates[i].InsertionOrder < candidates[j].InsertionOrder
		})
		return candidates[0]
	}
	return nil
}

func enemyUnitsOf(cfg *config.Config, filter DiplomaticFilter, self *Unit, sides []*Side) []*Unit {
	var out []*Unit
	for _, s := range sides {
		if s.House == self.Owner {
			continue
		}
		if filter != nil && filter.Relation(self.Owner, s.House) != diplomacy.RelationEnemy {
			continue
		}
		out = append(out, s.Units...)
	}
	return out
}

// Resolve runs a full space-combat engagement between sides, phase by
// phase, round by round, until fewer than two sides have undestroyed units
// or maxRounds rounds have been fought (spec.md §4.6). After
// DesperationRounds consecutive rounds without a hit, every attack gets the
// desperation CER bonus until a hit lands again.
//
// A malformed setup (both sides empty) resolves as NoContact, per spec.md
// §4.6's "Failure semantics."
func Resolve(cfg *config.Config, stream *rng.Stream, filter DiplomaticFilter, sides []*Side, maxRounds int) *Result {
	totalUnits := 0
	for _, s := range sides {
		totalUnits += len(s.Units)
	}
	if totalUnits == 0 || len(sides) < 2 {
		return &Result{NoContact: true}
	}

	result := &Result{}
	consecutiveNoDamage := 0
	desperationBonus := 0

	for round := 1; round <= maxRounds; round++ {
		if !anySideHasCombatants(sides) {
			break
		}
		damageThisRound := 0

		phases := []Phase{PhaseAmbush, PhaseIntercept, PhaseMain}
		for _, phase := range phases {
			for _, side := range sides {
				for _, u := range side.Units {
					if !unitActsInPhase(u, phase) {
						continue
					}
					if u.Ship.CombatState == ships.Destroyed {
						continue
					}
					enemies := enemyUnitsOf(cfg, filter, u, sides)
					target := selectTarget(cfg, u, enemies)
					if target == nil {
						continue
					}
					roll := stream.D10()
					c := cer(cfg, side, u, phase, desperationBonus)
					hitThreshold := target.Ship.EffectiveDS()
					hit := roll+c >= hitThreshold
					h := Hit{
						Phase: phase, Attacker: u.Ship.ID, AttackerOwner: u.Owner,
						Target: target.Ship.ID, TargetOwner: target.Owner, TargetRole: target.Role,
						Roll: roll, CER: c,
					}
					if hit {
						h.Destroyed = target.Ship.ApplyHit()
						damageThisRound++
					}
					result.Hits = append(result.Hits, h)
				}
			}
		}

		result.Rounds = round
		if damageThisRound == 0 {
			consecutiveNoDamage++
		} else {
			consecutiveNoDamage = 0
			desperationBonus = 0
		}
		if consecutiveNoDamage >= cfg.Combat.DesperationRounds {
			desperationBonus = cfg.Combat.DesperationCERBonus
			result.DesperationApplied = true
		}
	}
	return result
}

func unitActsInPhase(u *Unit, phase Phase) bool {
	switch phase {
	case PhaseAmbush:
		return u.IsRaider && !u.Detected
	case PhaseIntercept:
		return u.IsFighter
	case PhaseMain:
		return u.Detected || (!u.IsRaider && !u.IsFighter)
	}
	return false
}

func anySideHasCombatants(sides []*Side) bool {
	alive := map[ids.HouseId]bool{}
	for _, s := range sides {
		for _, u := range s.Units {
			if u.Ship.CombatState != ships.Destroyed {
				alive[s.House] = true
			}
		}
	}
	return len(alive) >= 2
}
