package ships

import "github.com/greenm01/ec4x/ids"

// GroundUnitClass is one of the four ground-asset kinds (spec.md §3).
type GroundUnitClass string

const (
	ClassArmy            GroundUnitClass = "Army"
	ClassMarine          GroundUnitClass = "Marine"
	ClassGroundBattery   GroundUnitClass = "GroundBattery"
	ClassPlanetaryShield GroundUnitClass = "PlanetaryShield"
)

// GarrisonLocationType is where a ground unit is currently stationed.
type GarrisonLocationType string

const (
	GarrisonColony GarrisonLocationType = "Colony"
	GarrisonShip   GarrisonLocationType = "Ship" // marines loaded aboard a transport
)

// Garrison locates a ground unit (spec.md §3).
type Garrison struct {
	LocationType GarrisonLocationType
	ColonyID     ids.ColonyId
	ShipID       ids.ShipId
}

// GroundUnit is an Army/Marine/GroundBattery/PlanetaryShield instance.
type GroundUnit struct {
	ID       ids.GroundUnitId
	HouseID  ids.HouseId
	Class    GroundUnitClass
	Garrison Garrison

	Version int64
}

// Clone returns a deep copy for the entity store.
func (g *GroundUnit) Clone() *GroundUnit {
	cp := *g
	return &cp
}
