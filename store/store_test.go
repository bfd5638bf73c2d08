package store

import (
	"testing"

	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/ships"
)

func TestPutGetRoundTripsByValue(t *testing.T) {
	g := New("game-1")
	h := houses.New(1, "House Atreides", 1000)
	if err := g.PutHouse(h); err != nil {
		t.Fatalf("PutHouse: %v", err)
	}

	got, err := g.GetHouse(1)
	if err != nil {
		t.Fatalf("GetHouse: %v", err)
	}
	got.Treasury = 999999
	reread, err := g.GetHouse(1)
	if err != nil {
		t.Fatalf("GetHouse: %v", err)
	}
	if reread.Treasury == 999999 {
		t.Error("mutating a Get() result leaked into the store — Clone discipline broken")
	}
}

func TestUpdateRejectsStaleVersion(t *testing.T) {
	g := New("game-1")
	h := houses.New(1, "House Harkonnen", 500)
	_ = g.PutHouse(h)

	stale, _ := g.GetHouse(1)
	fresh, _ := g.GetHouse(1)
	fresh.Treasury = 400
	if err := g.PutHouse(fresh); err != nil {
		t.Fatalf("first update: %v", err)
	}

	stale.Treasury = 999
	if err := g.PutHouse(stale); err == nil {
		t.Error("expected a version conflict writing back a stale read")
	}
}

func TestSnapshotRestoreUndoesMutation(t *testing.T) {
	g := New("game-2")
	_ = g.PutHouse(houses.New(1, "House Corrino", 1000))
	_ = g.PutShip(&ships.Ship{ID: 1, Owner: 1, Class: ships.ShipClass{Name: "Scout", AS: 2, DS: 3}})

	snap := g.Snapshot()

	h, _ := g.GetHouse(1)
	h.Treasury = 0
	_ = g.PutHouse(h)
	_ = g.Ships.Delete(1)

	if g.Ships.Len() != 0 {
		t.Fatal("setup failed: ship should be deleted before restore")
	}

	g.Restore(snap)

	restored, _ := g.GetHouse(1)
	if restored.Treasury != 1000 {
		t.Errorf("Treasury after restore = %d, want 1000", restored.Treasury)
	}
	if g.Ships.Len() != 1 {
		t.Errorf("Ships.Len() after restore = %d, want 1", g.Ships.Len())
	}
}

func TestByOwnerFiltersCorrectly(t *testing.T) {
	g := New("game-3")
	_ = g.PutShip(&ships.Ship{ID: 1, Owner: 1})
	_ = g.PutShip(&ships.Ship{ID: 2, Owner: 1})
	_ = g.PutShip(&ships.Ship{ID: 3, Owner: 2})

	owned := g.Ships.ByOwner(1)
	if len(owned) != 2 {
		t.Errorf("ByOwner(1) returned %d ships, want 2", len(owned))
	}
}
