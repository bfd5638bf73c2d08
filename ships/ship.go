// Package ships models Ships, Squadrons, Fleets, and ground units — the
// combat-bearing entities of spec.md §3. The teacher (galaxyCore) models a
// ship type as a static blueprint plus HP-bucketed runtime stacks
// (ships/ship.go, ships/stack.go); EC4X plays at house scale rather than
// browser-game scale, so each Ship keeps its own identity and combatState
// the way spec.md's invariants require ("for every ship s: combatState(s)
// moves forward-only") instead of bucketing by HP bracket.
package ships

import "github.com/greenm01/ec4x/ids"

// Role buckets a ship class for targeting-policy grouping (spec.md §4.6).
type Role string

const (
	RoleCapital       Role = "Capital"
	RoleEscort        Role = "Escort"
	RoleAuxiliary     Role = "Auxiliary"
	RoleSpecialWeapon Role = "SpecialWeapon"
	RoleFighter       Role = "Fighter"
)

// ShipClass is a ship type's static blueprint — the teacher's role for
// ships.Ship in ships/ship.go, generalized to EC4X's AS/DS/HP/cost model
// (spec.md §4.6 AS = attack strength, DS = defense strength).
type ShipClass struct {
	Name  string
	Role  Role
	AS    int
	DS    int
	HP    int
	Cost  int
	Speed int
}

// CombatState is a ship's damage state. Spec.md §3: "a ship may never skip
// Undamaged -> Crippled -> Destroyed; a single damage application may move
// at most one step."
type CombatState int

const (
	Undamaged CombatState = iota
	Crippled
	Destroyed
)

func (cs CombatState) String() string {
	switch cs {
	case Undamaged:
		return "Undamaged"
	case Crippled:
		return "Crippled"
	case Destroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Advance moves the state exactly one step toward Destroyed, or reports
// false if it is already Destroyed. This is the only legal mutation of
// CombatState in the engine — nothing else may skip a step.
func (cs CombatState) Advance() (next CombatState, moved bool) {
	switch cs {
	case Undamaged:
		return Crippled, true
	case Crippled:
		return Destroyed, true
	default:
		return Destroyed, false
	}
}

// CargoType is what a spacelift ship (ETAC/TroopTransport) carries.
type CargoType string

const (
	CargoNone      CargoType = "None"
	CargoMarines   CargoType = "Marines"
	CargoColonists CargoType = "Colonists"
)

// Cargo is present only on ETAC/TroopTransport ship instances (spec.md §3
// "Spacelift ship").
type Cargo struct {
	Type     CargoType
	Quantity int
	Capacity int
}

// Ship is a single combat-bearing unit instance (spec.md §3).
type Ship struct {
	ID          ids.ShipId
	Owner       ids.HouseId // denormalized for store owner-indexing
	SquadronID  ids.SquadronId
	Class       ShipClass
	CombatState CombatState
	Cargo       *Cargo // non-nil only for ETAC/TroopTransport instances

	Version int64
}

// IsSpacelift reports whether this ship is a colonist/troop transport.
func (s *Ship) IsSpacelift() bool { return s.Cargo != nil }

// Clone returns a deep copy for the entity store's read-modify-write
// discipline (spec.md §4.2/§9).
func (s *Ship) Clone() *Ship {
	cp := *s
	if s.Cargo != nil {
		c := *s.Cargo
		cp.Cargo = &c
	}
	return &cp
}

// ApplyHit advances the ship exactly one combat-state step and reports
// whether it is now destroyed.
func (s *Ship) ApplyHit() (destroyed bool) {
	next, moved := s.CombatState.Advance()
	if moved {
		s.CombatState = next
	}
	return s.CombatState == Destroyed
}

// EffectiveAS returns current attack strength: full AS while Undamaged or
// Crippled (spec.md §4.6 "Crippled squadrons: full AS, reduced DS"), zero
// once Destroyed.
func (s *Ship) EffectiveAS() int {
	if s.CombatState == Destroyed {
		return 0
	}
	return s.Class.AS
}

// EffectiveDS returns current defense strength, halved (rounded down) while
// Crippled.
func (s *Ship) EffectiveDS() int {
	switch s.CombatState {
	case Destroyed:
		return 0
	case Crippled:
		return s.Class.DS / 2
	default:
		return s.Class.DS
	}
}

// CanUseRestrictedLane reports whether this ship may traverse a Restricted
// lane: never while Crippled, never if it is a spacelift ship (spec.md
// §4.3/§4.6).
func (s *Ship) CanUseRestrictedLane() bool {
	return s.CombatState != Crippled && !s.IsSpacelift()
}

// Load fills the ship's cargo bay up to capacity; callers (the order
// validator) must already have checked colony ownership and inventory.
func (c *Cargo) Load(kind CargoType, qty int) {
	c.Type = kind
	c.Quantity += qty
	if c.Quantity > c.Capacity {
		c.Quantity = c.Capacity
	}
}

// Unload empties the cargo bay, returning what was carried.
func (c *Cargo) Unload() (CargoType, int) {
	kind, qty := c.Type, c.Quantity
	c.Quantity = 0
	c.Type = CargoNone
	return kind, qty
}
