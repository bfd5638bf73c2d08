package store

import (
	"github.com/greenm01/ec4x/colonies"
	"github.com/greenm01/ec4x/economy"
	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/intel"
	"github.com/greenm01/ec4x/ships"
)

// GameState is the full per-game aggregate the turn pipeline operates on:
// one Table per entity kind, plus the game's starmap reference (held
// outside the store since lanes/systems are immutable after map
// generation — spec.md §4.3). Grounded on players.PlayerGameState's
// per-player denormalized collections, generalized to one store shared by
// every house in the game rather than one document per player.
type GameState struct {
	GameID string
	Turn   int

	Houses      *Table[ids.HouseId, houseEntity]
	Colonies    *Table[ids.ColonyId, colonyEntity]
	Fleets      *Table[ids.FleetId, fleetEntity]
	Squadrons   *Table[ids.SquadronId, squadronEntity]
	Ships       *Table[ids.ShipId, shipEntity]
	GroundUnits *Table[ids.GroundUnitId, groundUnitEntity]

	// IDGen issues ids for entities created mid-pipeline (new colonies from
	// Colonize orders, and any future construction-deployed entity).
	IDGen *ids.Generator

	// Intel holds each house's C9 Intelligence DB (spec.md §4.9), keyed by
	// the observing house. Lazily created by IntelDB on first access, since
	// most games never query most houses' intel in a given turn.
	Intel map[ids.HouseId]*intel.DB

	// Transfers holds every Space-Guild population transfer currently in
	// flight or just resolved this turn (spec.md §4.5). PopulationTransfer.ID
	// is a plain int, so these live as a flat slice rather than a full
	// store.Table entity kind.
	Transfers      []economy.PopulationTransfer
	NextTransferID int
}

// New returns an empty GameState for gameID at turn 0.
func New(gameID string) *GameState {
	return &GameState{
		GameID:      gameID,
		Houses:      NewTable[ids.HouseId, houseEntity](),
		Colonies:    NewTable[ids.ColonyId, colonyEntity](),
		Fleets:      NewTable[ids.FleetId, fleetEntity](),
		Squadrons:   NewTable[ids.SquadronId, squadronEntity](),
		Ships:       NewTable[ids.ShipId, shipEntity](),
		GroundUnits: NewTable[ids.GroundUnitId, groundUnitEntity](),
		IDGen:       ids.NewGenerator(),
		Intel:       make(map[ids.HouseId]*intel.DB),
	}
}

// IntelDB returns house's intelligence store, creating an empty one on
// first access.
func (g *GameState) IntelDB(house ids.HouseId) *intel.DB {
	db, ok := g.Intel[house]
	if !ok {
		db = intel.NewDB(uint64(house))
		g.Intel[house] = db
	}
	return db
}

// PutHouse, PutColony, etc. wrap Insert/Update with the entity-adapter
// boxing the generic Table requires, so callers outside this package never
// need to know the adapter types exist.
func (g *GameState) PutHouse(h *houses.House) error   { return insertOrUpdate(g.Houses, houseEntity{h}) }
func (g *GameState) PutColony(c *colonies.Colony) error {
	return insertOrUpdate(g.Colonies, colonyEntity{c})
}
func (g *GameState) PutFleet(f *ships.Fleet) error { return insertOrUpdate(g.Fleets, fleetEntity{f}) }
func (g *GameState) PutSquadron(s *ships.Squadron) error {
	return insertOrUpdate(g.Squadrons, squadronEntity{s})
}
func (g *GameState) PutShip(s *ships.Ship) error { return insertOrUpdate(g.Ships, shipEntity{s}) }
func (g *GameState) PutGroundUnit(u *ships.GroundUnit) error {
	return insertOrUpdate(g.GroundUnits, groundUnitEntity{u})
}

// insertOrUpdate inserts a brand-new entity (version 0) or updates an
// existing one, matching the store's exposed Put* convenience above to the
// lower-level Insert/Update split Table offers for explicit callers.
func insertOrUpdate[ID comparable, T Entity[ID]](t *Table[ID, T], e T) error {
	if !t.Contains(e.EntityID()) {
		return t.Insert(e)
	}
	return t.Update(e)
}

// GetHouse, GetColony, etc. unwrap the adapter and return the plain domain
// pointer callers expect.
func (g *GameState) GetHouse(id ids.HouseId) (*houses.House, error) {
	e, err := g.Houses.Get(id)
	if err != nil {
		return nil, err
	}
	return e.House, nil
}

func (g *GameState) GetColony(id ids.ColonyId) (*colonies.Colony, error) {
	e, err := g.Colonies.Get(id)
	if err != nil {
		return nil, err
	}
	return e.Colony, nil
}

func (g *GameState) GetFleet(id ids.FleetId) (*ships.Fleet, error) {
	e, err := g.Fleets.Get(id)
	if err != nil {
		return nil, err
	}
	return e.Fleet, nil
}

func (g *GameState) GetShip(id ids.ShipId) (*ships.Ship, error) {
	e, err := g.Ships.Get(id)
	if err != nil {
		return nil, err
	}
	return e.Ship, nil
}

// Snapshot is an opaque, fully independent copy of a GameState, used by the
// turn pipeline to roll back to the start of a phase when an integrity
// error is detected mid-phase (spec.md §5 "Pipeline"). It is cheap relative
// to a full BSON round-trip through persist because it stays in memory.
type Snapshot struct {
	turn        int
	houses      map[ids.HouseId]houseEntity
	colonies    map[ids.ColonyId]colonyEntity
	fleets      map[ids.FleetId]fleetEntity
	squadrons   map[ids.SquadronId]squadronEntity
	ships       map[ids.ShipId]shipEntity
	groundUnits map[ids.GroundUnitId]groundUnitEntity

	idGenNext      uint64
	intel          map[ids.HouseId]*intel.DB
	transfers      []economy.PopulationTransfer
	nextTransferID int
}

// Snapshot captures the current state of every table.
func (g *GameState) Snapshot() *Snapshot {
	intelCopy := make(map[ids.HouseId]*intel.DB, len(g.Intel))
	for h, db := range g.Intel {
		intelCopy[h] = db.Clone()
	}
	return &Snapshot{
		turn:        g.Turn,
		houses:      g.Houses.snapshot(),
		colonies:    g.Colonies.snapshot(),
		fleets:      g.Fleets.snapshot(),
		squadrons:   g.Squadrons.snapshot(),
		ships:       g.Ships.snapshot(),
		groundUnits: g.GroundUnits.snapshot(),

		idGenNext:      g.IDGen.Snapshot(),
		intel:          intelCopy,
		transfers:      append([]economy.PopulationTransfer(nil), g.Transfers...),
		nextTransferID: g.NextTransferID,
	}
}

// Restore replaces every table's contents with a prior Snapshot's, undoing
// all mutation since it was taken.
func (g *GameState) Restore(s *Snapshot) {
	g.Turn = s.turn
	g.Houses.restore(s.houses)
	g.Colonies.restore(s.colonies)
	g.Fleets.restore(s.fleets)
	g.Squadrons.restore(s.squadrons)
	g.Ships.restore(s.ships)
	g.GroundUnits.restore(s.groundUnits)

	g.IDGen.Restore(s.idGenNext)
	g.Intel = s.intel
	g.Transfers = append([]economy.PopulationTransfer(nil), s.transfers...)
	g.NextTransferID = s.nextTransferID
}
