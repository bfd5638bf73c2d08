package starmap

import (
	"testing"

	"github.com/greenm01/ec4x/ids"
)

type fakeFleet struct {
	crippled, spacelift bool
}

func (f fakeFleet) HasCrippledShip() bool   { return f.crippled }
func (f fakeFleet) HasSpaceliftShip() bool  { return f.spacelift }

type fakeFog struct {
	friendly map[ids.SystemId]bool
}

func (f fakeFog) IsFriendly(id ids.SystemId) bool { return f.friendly[id] }

func threeSystemLine(middleLane, lastLane LaneType) *Map {
	m := NewMap()
	s1 := &System{ID: 1, Coords: HexCoord{0, 0}}
	s2 := &System{ID: 2, Coords: HexCoord{1, 0}}
	s3 := &System{ID: 3, Coords: HexCoord{2, 0}}
	m.AddSystem(s1)
	m.AddSystem(s2)
	m.AddSystem(s3)
	m.Connect(1, 2, middleLane)
	m.Connect(2, 3, lastLane)
	return m
}

func TestFindPathBasic(t *testing.T) {
	m := threeSystemLine(LaneMajor, LaneMajor)
	path, ok := m.FindPath(1, 3, fakeFleet{})
	if !ok {
		t.Fatal("expected a path")
	}
	want := []ids.SystemId{1, 2, 3}
	if len(path.Systems) != len(want) {
		t.Fatalf("path = %v, want %v", path.Systems, want)
	}
	for i, id := range want {
		if path.Systems[i] != id {
			t.Fatalf("path = %v, want %v", path.Systems, want)
		}
	}
}

func TestRestrictedLaneBlocksCrippledShip(t *testing.T) {
	m := threeSystemLine(LaneRestricted, LaneMajor)
	_, ok := m.FindPath(1, 3, fakeFleet{crippled: true})
	if ok {
		t.Fatal("expected no path for a crippled ship crossing a Restricted lane")
	}
}

func TestRestrictedLaneBlocksSpaceliftShip(t *testing.T) {
	m := threeSystemLine(LaneRestricted, LaneMajor)
	_, ok := m.FindPath(1, 3, fakeFleet{spacelift: true})
	if ok {
		t.Fatal("expected no path for a spacelift ship crossing a Restricted lane")
	}
}

func TestRestrictedLanePassableForIntactFleet(t *testing.T) {
	m := threeSystemLine(LaneRestricted, LaneMajor)
	_, ok := m.FindPath(1, 3, fakeFleet{})
	if !ok {
		t.Fatal("expected a path for an intact fleet across a Restricted lane")
	}
}

// TestCalculateETAFriendlyThenHostileMajor matches spec.md §8 scenario 3:
// S1->S2 Major/friendly, S2->S3 Major/hostile, ETA = 2 turns.
func TestCalculateETAFriendlyThenHostileMajor(t *testing.T) {
	m := threeSystemLine(LaneMajor, LaneMajor)
	path, ok := m.FindPath(1, 3, fakeFleet{})
	if !ok {
		t.Fatal("expected a path")
	}
	fog := fakeFog{friendly: map[ids.SystemId]bool{1: true, 2: true}} // S3 hostile
	eta, ok := CalculateETA(path, m, fog, 2, 1)
	if !ok {
		t.Fatal("expected a valid ETA")
	}
	if eta != 2 {
		t.Errorf("ETA = %d, want 2", eta)
	}
}

func TestCalculateETATwoFriendlyMajorJumpsShareATurn(t *testing.T) {
	m := threeSystemLine(LaneMajor, LaneMajor)
	path, ok := m.FindPath(1, 3, fakeFleet{})
	if !ok {
		t.Fatal("expected a path")
	}
	fog := fakeFog{friendly: map[ids.SystemId]bool{1: true, 2: true, 3: true}}
	eta, ok := CalculateETA(path, m, fog, 2, 1)
	if !ok {
		t.Fatal("expected a valid ETA")
	}
	if eta != 1 {
		t.Errorf("ETA = %d, want 1 (two friendly major jumps fit in one turn)", eta)
	}
}
