package orders

import (
	"testing"

	"github.com/greenm01/ec4x/colonies"
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/ships"
	"github.com/greenm01/ec4x/store"
)

func TestReserveBudgetSequentialPriority(t *testing.T) {
	cfg := config.Default()
	builds := []BuildOrder{
		{ColonyID: 1, Cost: 50},
		{ColonyID: 1, Cost: 1_000_000},
	}
	r := ReserveBudget(cfg, 1000, 1000, 1000, builds)

	if r.ResearchClaimed <= 0 {
		t.Error("expected a nonzero research claim out of a 1000pp projected treasury")
	}
	if len(r.AcceptedBuilds) != 1 || r.AcceptedBuilds[0] != 0 {
		t.Errorf("expected only the cheap build accepted, got %v", r.AcceptedBuilds)
	}
	if len(r.RejectedBuilds) != 1 {
		t.Errorf("expected the oversized build rejected, got %v", r.RejectedBuilds)
	}
	if r.RejectedBuilds[0].Reason != ReasonInsufficientTreasury {
		t.Errorf("rejection reason = %v, want InsufficientTreasury", r.RejectedBuilds[0].Reason)
	}
}

func TestReserveBudgetTerraformRequiresHeadroom(t *testing.T) {
	cfg := config.Default()
	r := ReserveBudget(cfg, 100, 0, 0, nil)
	if r.TerraformAllowed {
		t.Error("should not allow terraform with a 100pp projected treasury below the configured threshold")
	}

	big := ReserveBudget(cfg, 1_000_000, 0, 0, nil)
	if !big.TerraformAllowed {
		t.Error("should allow terraform with ample remaining treasury")
	}
}

func TestValidateBuildOrderChecksOwnershipAndDocks(t *testing.T) {
	cfg := config.Default()
	g := store.New("game-1")
	owner := houses.House{ID: 1}
	other := houses.House{ID: 2}
	_ = g.PutColony(&colonies.Colony{ID: 10, Owner: 1, Shipyards: 1})

	if r := ValidateBuildOrder(cfg, g, other, BuildOrder{ColonyID: 10, Kind: BuildShip}); r == nil || r.Reason != ReasonOwnershipViolation {
		t.Errorf("expected ownership rejection, got %v", r)
	}
	if r := ValidateBuildOrder(cfg, g, owner, BuildOrder{ColonyID: 10, Kind: BuildFacility}); r == nil || r.Reason != ReasonInsufficientDocks {
		t.Errorf("expected insufficient-docks rejection for a colony with no spaceport, got %v", r)
	}
	if r := ValidateBuildOrder(cfg, g, owner, BuildOrder{ColonyID: 10, Kind: BuildShip}); r != nil {
		t.Errorf("expected ship build against a shipyard slot to pass, got %v", r)
	}
}

func TestValidateCargoOrderRequiresSpaceliftHull(t *testing.T) {
	g := store.New("game-1")
	owner := houses.House{ID: 1}
	_ = g.PutShip(&ships.Ship{ID: 1, Owner: 1, Class: ships.ShipClass{Name: "Cruiser"}})

	if r := ValidateCargoOrder(g, owner, CargoOrder{ShipID: 1}); r == nil || r.Reason != ReasonCapabilityMissing {
		t.Errorf("expected capability-missing rejection for a non-spacelift hull, got %v", r)
	}
}

func TestValidateDiplomaticOrderRejectsSelfTarget(t *testing.T) {
	g := store.New("game-1")
	owner := houses.House{ID: 1}
	_ = g.PutHouse(houses.New(1, "Self", 0))

	if r := ValidateDiplomaticOrder(g, owner, DiplomaticOrder{Kind: DiplomaticPropose, Target: 1}); r == nil || r.Reason != ReasonTargetInvalid {
		t.Errorf("expected target-invalid rejection for self-targeting, got %v", r)
	}
}

func TestValidateEspionageOrderRejectsUnknownAction(t *testing.T) {
	cfg := config.Default()
	g := store.New("game-1")
	_ = g.PutHouse(houses.New(2, "Target", 0))

	if r := ValidateEspionageOrder(cfg, g, EspionageOrder{Action: "NotARealAction", Target: 2}); r == nil || r.Reason != ReasonPrerequisiteMissing {
		t.Errorf("expected prerequisite-missing rejection for an unconfigured action, got %v", r)
	}
}

func TestProjectedTreasuryClampsAtZero(t *testing.T) {
	if p := ProjectedTreasury(10, 5, 100); p != 0 {
		t.Errorf("ProjectedTreasury = %d, want 0 (clamped)", p)
	}
	if p := ProjectedTreasury(100, 50, 20); p != 130 {
		t.Errorf("ProjectedTreasury = %d, want 130", p)
	}
}
