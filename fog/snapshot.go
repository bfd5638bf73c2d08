// Package fog implements the C11 Fog Filter & Delta (spec.md §4.11): a
// per-house derivation of a filtered view of the shared GameState, plus a
// diff against the previous turn's view for delta publication. Grounded on
// intel.DB's per-house records (which this package consults for the
// systems whose coordinates and lanes a house has learned) and on
// orbitables.System/Colonization's "only show what this player can see"
// embedding discipline, generalized from one colonized system's defending
// fleet to a whole-game per-house snapshot.
package fog

import (
	"sort"

	"github.com/greenm01/ec4x/colonies"
	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/intel"
	"github.com/greenm01/ec4x/ships"
	"github.com/greenm01/ec4x/starmap"
	"github.com/greenm01/ec4x/store"
)

// SystemView is what a house knows about one system: its coordinates and
// lanes (once ever scouted), plus any currently-visible foreign presence.
type SystemView struct {
	ID           ids.SystemId
	Coords       starmap.HexCoord
	Lanes        []starmap.Lane
	VisibleFleets   []ids.FleetId
	VisibleColonies []ids.ColonyId
}

// PlayerStateSnapshot is the filtered view one house receives (spec.md
// §4.11): its own entities verbatim, plus whatever of the rest of the game
// its intel and current presence entitle it to see.
type PlayerStateSnapshot struct {
	GameID string
	Turn   int
	House  ids.HouseId

	OwnHouse    *houses.House
	OwnColonies []*colonies.Colony
	OwnFleets   []*ships.Fleet
	OwnShips    []*ships.Ship

	Systems map[ids.SystemId]*SystemView

	// ForeignColonies/ForeignFleets hold only entities judged visible this
	// turn (present in a system the house has a fleet in, or in or adjacent
	// to a system where it has a starbase) — never the full foreign roster.
	ForeignColonies map[ids.ColonyId]*colonies.Colony
	ForeignFleets   map[ids.FleetId]*ships.Fleet
}

// buildPlayerSnapshot computes house's filtered view of state as of turn,
// consulting db for what has ever been scouted (system shape) per spec.md
// §4.11's visibility list: own entities verbatim; ever-scouted systems'
// coords+lanes; foreign fleets/colonies only when currently visible, which
// is judged from the house's own fleet and starbase positions, not from db.
func buildPlayerSnapshot(state *store.GameState, m *starmap.Map, db *intel.DB, house ids.HouseId, turn int) *PlayerStateSnapshot {
	snap := &PlayerStateSnapshot{
		GameID:          state.GameID,
		Turn:            turn,
		House:           house,
		Systems:         make(map[ids.SystemId]*SystemView),
		ForeignColonies: make(map[ids.ColonyId]*colonies.Colony),
		ForeignFleets:   make(map[ids.FleetId]*ships.Fleet),
	}

	if h, err := state.GetHouse(house); err == nil {
		snap.OwnHouse = h
	}
	for _, c := range sortedOwnColonies(state, house) {
		snap.OwnColonies = append(snap.OwnColonies, c)
	}
	for _, f := range sortedOwnFleets(state, house) {
		snap.OwnFleets = append(snap.OwnFleets, f)
	}

	presentSystems := make(map[ids.SystemId]bool)
	for _, f := range snap.OwnFleets {
		presentSystems[f.Location] = true
	}
	for _, c := range snap.OwnColonies {
		if c.Starbases > 0 {
			presentSystems[c.SystemID] = true
			for _, lane := range m.Neighbors(c.SystemID) {
				presentSystems[lane.Neighbor] = true
			}
		}
	}

	for _, colony := range state.Colonies.All() {
		c := colony.Colony
		if c.Owner == house {
			continue
		}
		if visibleColony(m, presentSystems, c) {
			snap.ForeignColonies[c.ID] = c
		}
	}
	for _, fleet := range state.Fleets.All() {
		f := fleet.Fleet
		if f.Owner == house {
			continue
		}
		if presentSystems[f.Location] {
			snap.ForeignFleets[f.ID] = f
		}
	}

	for key := range db.All() {
		if key.Kind != intel.TargetSystem {
			continue
		}
		sysID := ids.SystemId(key.ID)
		sys := m.System(sysID)
		if sys == nil {
			continue
		}
		snap.Systems[sysID] = &SystemView{ID: sys.ID, Coords: sys.Coords, Lanes: sys.Lanes}
	}
	for sysID := range presentSystems {
		sys := m.System(sysID)
		if sys == nil {
			continue
		}
		view, ok := snap.Systems[sysID]
		if !ok {
			view = &SystemView{ID: sys.ID, Coords: sys.Coords, Lanes: sys.Lanes}
			snap.Systems[sysID] = view
		}
		for _, f := range snap.ForeignFleets {
			if f.Location == sysID {
				view.VisibleFleets = append(view.VisibleFleets, f.ID)
			}
		}
		for _, c := range snap.ForeignColonies {
			if c.SystemID == sysID {
				view.VisibleColonies = append(view.VisibleColonies, c.ID)
			}
		}
		sort.Slice(view.VisibleFleets, func(i, j int) bool { return view.VisibleFleets[i] < view.VisibleFleets[j] })
		sort.Slice(view.VisibleColonies, func(i, j int) bool { return view.VisibleColonies[i] < view.VisibleColonies[j] })
	}

	return snap
}

// visibleColony reports whether a foreign colony is currently visible to a
// house: present in a system the house occupies (spec.md §4.11 "currently
// visible" test — starbase surveillance of adjacent systems is resolved by
// the caller expanding presentSystems before calling, not by this function).
func visibleColony(m *starmap.Map, presentSystems map[ids.SystemId]bool, c *colonies.Colony) bool {
	return presentSystems[c.SystemID]
}

func sortedOwnColonies(state *store.GameState, house ids.HouseId) []*colonies.Colony {
	all := state.Colonies.ByOwner(house)
	out := make([]*colonies.Colony, 0, len(all))
	for _, c := range all {
		out = append(out, c.Colony)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func sortedOwnFleets(state *store.GameState, house ids.HouseId) []*ships.Fleet {
	all := state.Fleets.ByOwner(house)
	out := make([]*ships.Fleet, 0, len(all))
	for _, f := range all {
		out = append(out, f.Fleet)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BuildPlayerSnapshot is the exported entry point for buildPlayerSnapshot
// (spec.md §4.11 names it in lowerCamel as an internal operation; exported
// here so callers outside the package can build a snapshot).
func BuildPlayerSnapshot(state *store.GameState, m *starmap.Map, db *intel.DB, house ids.HouseId, turn int) *PlayerStateSnapshot {
	return buildPlayerSnapshot(state, m, db, house, turn)
}
