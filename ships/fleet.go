package ships

import "github.com/greenm01/ec4x/ids"

// FleetStatus is a fleet's readiness posture (spec.md §3).
type FleetStatus string

const (
	StatusActive     FleetStatus = "Active"
	StatusReserve    FleetStatus = "Reserve"
	StatusMothballed FleetStatus = "Mothballed"
)

// MissionState is the fleet's current order-driven activity. Collapsing the
// teacher's several discriminated-by-presence fields (ShipStack.Movement /
// Battle / Gathering) into one closed tag follows spec.md §9's guidance
// against "scattered" state and open-ended dispatch.
type MissionState string

const (
	MissionIdle       MissionState = "Idle"
	MissionMoving     MissionState = "Moving"
	MissionBlockading MissionState = "Blockading"
	MissionColonizing MissionState = "Colonizing"
	MissionInvading   MissionState = "Invading"
	MissionPatrolling MissionState = "Patrolling"
)

// Command is a fleet's current standing order, set by the Command Phase and
// advanced turn over turn until complete.
type Command struct {
	Kind        MissionState
	Destination ids.SystemId
	Path        []ids.SystemId // remaining systems, including destination
}

// Fleet groups squadrons and spacelift ships under one owner and location
// (spec.md §3).
type Fleet struct {
	ID             ids.FleetId
	Owner          ids.HouseId
	Location       ids.SystemId
	Status         FleetStatus
	SquadronIDs    []ids.SquadronId
	SpaceliftIDs   []ids.ShipId // carried separately from combat squadrons
	MissionState   MissionState
	CurrentCommand *Command

	// CreatedTurn is the turn this fleet was formed, used by the
	// maintenance shortfall cascade to disband oldest-first (spec.md §4.5).
	CreatedTurn int

	Version int64
}

// Clone returns a deep copy for the entity store.
func (f *Fleet) Clone() *Fleet {
	cp := *f
	cp.SquadronIDs = append([]ids.SquadronId(nil), f.SquadronIDs...)
	cp.SpaceliftIDs = append([]ids.ShipId(nil), f.SpaceliftIDs...)
	if f.CurrentCommand != nil {
		cmd := *f.CurrentCommand
		cmd.Path = append([]ids.SystemId(nil), f.CurrentCommand.Path...)
		cp.CurrentCommand = &cmd
	}
	return &cp
}

// FleetView bundles a fleet with its resolved ship instances, enough to
// answer starmap.FleetCapability and combat-roster questions without every
// caller re-resolving squadrons/ships from the store.
type FleetView struct {
	Fleet     *Fleet
	Squadrons []*Squadron
	Ships     []*Ship // all ships across all squadrons, plus spacelift ships
}

// HasCrippledShip implements starmap.FleetCapability.
func (v *FleetView) HasCrippledShip() bool {
	for _, s := range v.Ships {
		if s.CombatState == Crippled {
			return true
		}
	}
	return false
}

// HasSpaceliftShip implements starmap.FleetCapability.
func (v *FleetView) HasSpaceliftShip() bool {
	for _, s := range v.Ships {
		if s.IsSpacelift() {
			return true
		}
	}
	return false
}

// CombatStrength sums effective AS across all non-destroyed ships; used for
// quick fleet-vs-fleet comparisons outside full combat resolution (e.g.
// disband-salvage ordering, retreat evaluation).
func (v *FleetView) CombatStrength() int {
	total := 0
	for _, s := range v.Ships {
		total += s.EffectiveAS()
	}
	return total
}
