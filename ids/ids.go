// Package ids defines the opaque, monotonically assigned identifiers used
// throughout the engine. Each kind is its own Go type so that a SystemId can
// never be passed where a FleetId is expected — the compiler rejects the
// cross-kind reference spec.md requires to "fail construction."
package ids

import "fmt"

// HouseId identifies a player house.
type HouseId uint64

// SystemId identifies a starmap system.
type SystemId uint64

// FleetId identifies a fleet.
type FleetId uint64

// SquadronId identifies a squadron (flagship + escorts).
type SquadronId uint64

// ShipId identifies a single ship.
type ShipId uint64

// ColonyId identifies a colony.
type ColonyId uint64

// GroundUnitId identifies an army/marine/battery/shield unit.
type GroundUnitId uint64

// FacilityId identifies a colony facility (shipyard, spaceport, starbase, ...).
type FacilityId uint64

func (id HouseId) String() string      { return fmt.Sprintf("house:%d", uint64(id)) }
func (id SystemId) String() string     { return fmt.Sprintf("system:%d", uint64(id)) }
func (id FleetId) String() string      { return fmt.Sprintf("fleet:%d", uint64(id)) }
func (id SquadronId) String() string   { return fmt.Sprintf("squadron:%d", uint64(id)) }
func (id ShipId) String() string       { return fmt.Sprintf("ship:%d", uint64(id)) }
func (id ColonyId) String() string     { return fmt.Sprintf("colony:%d", uint64(id)) }
func (id GroundUnitId) String() string { return fmt.Sprintf("groundunit:%d", uint64(id)) }
func (id FacilityId) String() string   { return fmt.Sprintf("facility:%d", uint64(id)) }

// Nil is the zero value for any id kind; used as a sentinel for "unset".
const Nil = 0

// Generator hands out monotonically increasing ids for a single kind. It is
// not safe for concurrent use from multiple goroutines without external
// synchronization — the turn pipeline is single-threaded per game (spec.md
// §5), so callers hold the id generator behind the same game-scoped lock
// that guards the entity store.
type Generator struct {
	next uint64
}

// NewGenerator returns a Generator that begins issuing ids at 1 (0 is
// reserved as Nil).
func NewGenerator() *Generator {
	return &Generator{next: 1}
}

// Next issues the next raw id value. Typed wrappers call this and cast.
func (g *Generator) Next() uint64 {
	v := g.next
	g.next++
	return v
}

func (g *Generator) NextHouse() HouseId           { return HouseId(g.Next()) }
func (g *Generator) NextSystem() SystemId         { return SystemId(g.Next()) }
func (g *Generator) NextFleet() FleetId           { return FleetId(g.Next()) }
func (g *Generator) NextSquadron() SquadronId     { return SquadronId(g.Next()) }
func (g *Generator) NextShip() ShipId             { return ShipId(g.Next()) }
func (g *Generator) NextColony() ColonyId         { return ColonyId(g.Next()) }
func (g *Generator) NextGroundUnit() GroundUnitId { return GroundUnitId(g.Next()) }
func (g *Generator) NextFacility() FacilityId     { return FacilityId(g.Next()) }

// Snapshot returns the generator's current counter, for the entity store's
// phase-rollback snapshot (spec.md §5 "integrity error" rollback must undo
// any ids issued during the failed phase, or a retried phase would skip
// values and leave gaps).
func (g *Generator) Snapshot() uint64 { return g.next }

// Restore resets the counter to a value previously returned by Snapshot.
func (g *Generator) Restore(next uint64) { g.next = next }
