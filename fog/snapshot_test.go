package fog

import (
	"testing"

	"github.com/greenm01/ec4x/colonies"
	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/intel"
	"github.com/greenm01/ec4x/ships"
	"github.com/greenm01/ec4x/starmap"
	"github.com/greenm01/ec4x/store"
)

func newTestState(t *testing.T) (*store.GameState, *starmap.Map) {
	t.Helper()
	g := store.New("game-1")
	if err := g.PutHouse(houses.New(1, "House A", 1000)); err != nil {
		t.Fatalf("PutHouse: %v", err)
	}
	if err := g.PutHouse(houses.New(2, "House B", 1000)); err != nil {
		t.Fatalf("PutHouse: %v", err)
	}
	if err := g.PutColony(&colonies.Colony{ID: 1, SystemID: 1, Owner: 1}); err != nil {
		t.Fatalf("PutColony: %v", err)
	}
	if err := g.PutColony(&colonies.Colony{ID: 2, SystemID: 2, Owner: 2}); err != nil {
		t.Fatalf("PutColony: %v", err)
	}
	if err := g.PutFleet(&ships.Fleet{ID: 1, Owner: 1, Location: 1, Version: 0}); err != nil {
		t.Fatalf("PutFleet: %v", err)
	}
	if err := g.PutFleet(&ships.Fleet{ID: 2, Owner: 2, Location: 2, Version: 0}); err != nil {
		t.Fatalf("PutFleet: %v", err)
	}

	m := starmap.NewMap()
	m.AddSystem(&starmap.System{ID: 1})
	m.AddSystem(&starmap.System{ID: 2})
	return g, m
}

func TestBuildPlayerSnapshotHidesUnvisitedForeignEntities(t *testing.T) {
	g, m := newTestState(t)
	db := intel.NewDB(1)

	snap := BuildPlayerSnapshot(g, m, db, 1, 1)
	if len(snap.OwnColonies) != 1 || snap.OwnColonies[0].ID != 1 {
		t.Fatalf("OwnColonies = %+v, want [colony 1]", snap.OwnColonies)
	}
	if _, ok := snap.ForeignColonies[2]; ok {
		t.Error("house 1 should not see house 2's colony in system 2 (no presence there)")
	}
}

func TestBuildPlayerSnapshotRevealsForeignEntitiesInOwnSystem(t *testing.T) {
	g, m := newTestState(t)
	// Move house 2's fleet into system 1, where house 1 is present.
	f2, _ := g.GetFleet(2)
	f2.Location = 1
	if err := g.PutFleet(f2); err != nil {
		t.Fatalf("PutFleet: %v", err)
	}
	db := intel.NewDB(1)

	snap := BuildPlayerSnapshot(g, m, db, 1, 1)
	if _, ok := snap.ForeignFleets[2]; !ok {
		t.Error("house 1 should see house 2's fleet co-located in system 1")
	}
}

func TestDiffPlayerStateReportsNewlyRevealedForeignFleet(t *testing.T) {
	g, m := newTestState(t)
	db := intel.NewDB(1)
	prev := BuildPlayerSnapshot(g, m, db, 1, 1)

	f2, _ := g.GetFleet(2)
	f2.Location = 1
	if err := g.PutFleet(f2); err != nil {
		t.Fatalf("PutFleet: %v", err)
	}
	current := BuildPlayerSnapshot(g, m, db, 1, 2)

	delta := DiffPlayerState(prev, current)
	found := false
	for _, id := range delta.ForeignFleetsRevealed {
		if id == 2 {
			found = true
		}
	}
	if !found {
		t.Errorf("ForeignFleetsRevealed = %v, want to contain fleet 2", delta.ForeignFleetsRevealed)
	}
}

func TestFormatDeltaPayloadIsDeterministic(t *testing.T) {
	d := &Delta{GameID: "game-1", Turn: 3, House: 1, TreasuryDelta: 50}
	a := FormatDeltaPayload("game-1", d)
	b := FormatDeltaPayload("game-1", d)
	if string(a) != string(b) {
		t.Error("FormatDeltaPayload is not deterministic across identical calls")
	}
}
