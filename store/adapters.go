package store

import (
	"github.com/greenm01/ec4x/colonies"
	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/ships"
)

// The adapter types below satisfy Entity[ID] for each domain type without
// requiring the leaf packages (ships, colonies, houses) to import store —
// store is the only package that knows about the generic Table machinery,
// keeping the dependency graph one-directional (spec.md §9's package
// layout: entity-type packages are leaves).

type shipEntity struct{ *ships.Ship }

func (s shipEntity) EntityID() ids.ShipId      { return s.Ship.ID }
func (s shipEntity) OwnerID() ids.HouseId      { return s.Ship.Owner }
func (s shipEntity) EntityVersion() int64      { return s.Ship.Version }
func (s shipEntity) SetVersion(v int64)        { s.Ship.Version = v }
func (s shipEntity) Clone() Entity[ids.ShipId] { return shipEntity{s.Ship.Clone()} }

type squadronEntity struct{ *ships.Squadron }

func (s squadronEntity) EntityID() ids.SquadronId  { return s.Squadron.ID }
func (s squadronEntity) OwnerID() ids.HouseId      { return s.Squadron.Owner }
func (s squadronEntity) EntityVersion() int64      { return s.Squadron.Version }
func (s squadronEntity) SetVersion(v int64)        { s.Squadron.Version = v }
func (s squadronEntity) Clone() Entity[ids.SquadronId] { return squadronEntity{s.Squadron.Clone()} }

type fleetEntity struct{ *ships.Fleet }

func (f fleetEntity) EntityID() ids.FleetId      { return f.Fleet.ID }
func (f fleetEntity) OwnerID() ids.HouseId       { return f.Fleet.Owner }
func (f fleetEntity) EntityVersion() int64       { return f.Fleet.Version }
func (f fleetEntity) SetVersion(v int64)         { f.Fleet.Version = v }
func (f fleetEntity) Clone() Entity[ids.FleetId] { return fleetEntity{f.Fleet.Clone()} }

type groundUnitEntity struct{ *ships.GroundUnit }

func (g groundUnitEntity) EntityID() ids.GroundUnitId      { return g.GroundUnit.ID }
func (g groundUnitEntity) OwnerID() ids.HouseId            { return g.GroundUnit.HouseID }
func (g groundUnitEntity) EntityVersion() int64            { return g.GroundUnit.Version }
func (g groundUnitEntity) SetVersion(v int64)              { g.GroundUnit.Version = v }
func (g groundUnitEntity) Clone() Entity[ids.GroundUnitId] { return groundUnitEntity{g.GroundUnit.Clone()} }

type colonyEntity struct{ *colonies.Colony }

func (c colonyEntity) EntityID() ids.ColonyId      { return c.Colony.ID }
func (c colonyEntity) OwnerID() ids.HouseId        { return c.Colony.Owner }
func (c colonyEntity) EntityVersion() int64        { return c.Colony.Version }
func (c colonyEntity) SetVersion(v int64)          { c.Colony.Version = v }
func (c colonyEntity) Clone() Entity[ids.ColonyId] { return colonyEntity{c.Colony.Clone()} }

type houseEntity struct{ *houses.House }

func (h houseEntity) EntityID() ids.HouseId      { return h.House.ID }
func (h houseEntity) OwnerID() ids.HouseId       { return h.House.ID } // a house owns itself
func (h houseEntity) EntityVersion() int64       { return h.House.Version }
func (h houseEntity) SetVersion(v int64)         { h.House.Version = v }
func (h houseEntity) Clone() Entity[ids.HouseId] { return houseEntity{h.House.Clone()} }
