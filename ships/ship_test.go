package ships

import "testing"

func TestCombatStateNeverSkipsAStep(t *testing.T) {
	s := &Ship{Class: ShipClass{AS: 5, DS: 3}}
	if s.ApplyHit() {
		t.Fatal("first hit should cripple, not destroy")
	}
	if s.CombatState != Crippled {
		t.Fatalf("state = %v, want Crippled", s.CombatState)
	}
	if s.ApplyHit() != true {
		t.Fatal("second hit should destroy")
	}
	if s.CombatState != Destroyed {
		t.Fatalf("state = %v, want Destroyed", s.CombatState)
	}
	// A destroyed ship absorbs further hits without changing state.
	if s.ApplyHit() != true {
		t.Fatal("hitting a destroyed ship should report destroyed")
	}
	if s.CombatState != Destroyed {
		t.Fatalf("state regressed from Destroyed: %v", s.CombatState)
	}
}

func TestCrippledShipKeepsFullASHalvesDS(t *testing.T) {
	s := &Ship{Class: ShipClass{AS: 10, DS: 8}, CombatState: Crippled}
	if s.EffectiveAS() != 10 {
		t.Errorf("EffectiveAS = %d, want 10", s.EffectiveAS())
	}
	if s.EffectiveDS() != 4 {
		t.Errorf("EffectiveDS = %d, want 4", s.EffectiveDS())
	}
}

func TestCrippledOrSpaceliftShipCannotUseRestrictedLane(t *testing.T) {
	crippled := &Ship{CombatState: Crippled}
	if crippled.CanUseRestrictedLane() {
		t.Error("crippled ship must not use Restricted lanes")
	}
	spacelift := &Ship{Cargo: &Cargo{Capacity: 10}}
	if spacelift.CanUseRestrictedLane() {
		t.Error("spacelift ship must not use Restricted lanes")
	}
	intact := &Ship{}
	if !intact.CanUseRestrictedLane() {
		t.Error("intact, non-spacelift ship should be able to use Restricted lanes")
	}
}

func TestCargoLoadUnloadRoundTrip(t *testing.T) {
	c := &Cargo{Capacity: 100}
	c.Load(CargoMarines, 40)
	if c.Quantity != 40 || c.Type != CargoMarines {
		t.Fatalf("after Load: %+v", c)
	}
	kind, qty := c.Unload()
	if kind != CargoMarines || qty != 40 {
		t.Fatalf("Unload() = %v,%d, want Marines,40", kind, qty)
	}
	if c.Quantity != 0 || c.Type != CargoNone {
		t.Fatalf("cargo not emptied after Unload: %+v", c)
	}
}
