package colonies

import (
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/ids"
)

// Marines is a simple on-colony inventory of loadable marine units, kept
// separate from ships.GroundUnit so cargo-loading orders (spec.md §4.4
// "invade orders require loaded marines") can check/decrement it without
// resolving every ground unit entity.
type Marines struct {
	Available int
}

// Colony is a populated, industrialized world (spec.md §3).
type Colony struct {
	ID       ids.ColonyId
	SystemID ids.SystemId
	Owner    ids.HouseId

	PopulationUnits int // PU; invariant populationUnits <= PlanetClass.maxPU
	IndustrialUnits int // IU

	GrossOutput int // cached GCO, recomputed each Income Phase
	TaxRate     int // 0..100

	Infrastructure       int
	InfrastructureDamage float64 // 0..1
	ResourceRating       config.ResourceRating
	PlanetClass          config.PlanetClass

	FacilityIDs    []ids.FacilityId
	GroundUnitIDs  []ids.GroundUnitId
	FighterSquadronIDs []ids.SquadronId
	Spaceports     int
	Shipyards      int
	Starbases      int
	Marines        Marines

	ConstructionQueue Queue

	Version int64
}

// Clone returns a deep copy for the entity store.
func (c *Colony) Clone() *Colony {
	cp := *c
	cp.FacilityIDs = append([]ids.FacilityId(nil), c.FacilityIDs...)
	cp.GroundUnitIDs = append([]ids.GroundUnitId(nil), c.GroundUnitIDs...)
	cp.FighterSquadronIDs = append([]ids.SquadronId(nil), c.FighterSquadronIDs...)
	cp.ConstructionQueue.Projects = append([]ConstructionProject(nil), c.ConstructionQueue.Projects...)
	return &cp
}

// MaxPopulation returns this colony's population ceiling (invariant I in
// spec.md §3).
func (c *Colony) MaxPopulation(cfg *config.Config) int {
	return cfg.Economy.PlanetClassMaxPU[c.PlanetClass]
}

// SlotsByKind returns the dock-slot capacity for each facility kind present
// on this colony, used by the construction queue's AdvanceAll.
func (c *Colony) SlotsByKind(cfg *config.Config) map[FacilityKind]int {
	slots := make(map[FacilityKind]int)
	if c.Spaceports > 0 {
		slots[FacilitySpaceport] = c.Spaceports * cfg.Construction.SpaceportDockSlots
	}
	if c.Shipyards > 0 {
		slots[FacilityShipyard] = c.Shipyards * cfg.Construction.ShipyardDockSlots
	}
	return slots
}
