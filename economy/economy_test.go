package economy

import (
	"testing"

	"github.com/greenm01/ec4x/colonies"
	"github.com/greenm01/ec4x/config"
)

// TestIncomeBasicScenario matches spec.md §8 scenario 1 exactly.
func TestIncomeBasicScenario(t *testing.T) {
	cfg := config.Default()
	c := &colonies.Colony{
		PopulationUnits: 100,
		IndustrialUnits: 50,
		PlanetClass:     config.PlanetEden,
		ResourceRating:  config.ResourceAbundant,
		TaxRate:         50,
	}
	gco := GrossColonialOutput(cfg, c, 1)
	if gco != 152 {
		t.Errorf("GCO = %d, want 152", gco)
	}
	ncv := NetColonyValue(gco, c.TaxRate)
	if ncv != 76 {
		t.Errorf("NCV = %d, want 76", ncv)
	}
}

func TestELModifierCapsAt150(t *testing.T) {
	cfg := config.Default()
	if v := ELModifier(cfg, 1); v != 1.05 {
		t.Errorf("ELModifier(1) = %v, want 1.05", v)
	}
	if v := ELModifier(cfg, 100); v != 1.50 {
		t.Errorf("ELModifier(100) = %v, want 1.50 (capped)", v)
	}
}

func TestRawIndexBoundaries(t *testing.T) {
	cfg := config.Default()
	if v := cfg.Economy.RawIndex[config.PlanetEden][config.ResourceAbundant]; v != 1.00 {
		t.Errorf("RAW_INDEX(Eden,Abundant) = %v, want 1.00", v)
	}
	if v := cfg.Economy.RawIndex[config.PlanetExtreme][config.ResourceVeryPoor]; v != 0.60 {
		t.Errorf("RAW_INDEX(Extreme,VeryPoor) = %v, want 0.60", v)
	}
}

func TestTechUpgradeCostBoundaries(t *testing.T) {
	cfg := config.Default()
	if c := TechUpgradeCost(cfg, 5); c != 90 {
		t.Errorf("TechUpgradeCost(5) = %d, want 90", c)
	}
	if c := TechUpgradeCost(cfg, 6); c != 105 {
		t.Errorf("TechUpgradeCost(6) = %d, want 105", c)
	}
}

// TestMaintenanceShortfallScenario matches spec.md §8 scenario 2 exactly.
func TestMaintenanceShortfallScenario(t *testing.T) {
	cfg := config.Default()
	fleets := []FleetMaintenanceInfo{
		{ID: 1, MaintenanceCost: 30, ProductionCost: 200, CreatedTurn: 1},
	}
	result := RunShortfallCascade(cfg, 100, 50, fleets, nil)
	if len(result.DisbandedFleetIDs) != 1 {
		t.Fatalf("expected fleet F disbanded, got %v", result.DisbandedFleetIDs)
	}
	if result.TreasuryAfter != 50 {
		t.Errorf("TreasuryAfter = %d, want 50 (25%% of 200 PC salvage)", result.TreasuryAfter)
	}
	if result.RemainingShortfall != 20 {
		t.Errorf("RemainingShortfall = %d, want 20", result.RemainingShortfall)
	}
}

func TestShortfallPrestigePenaltyGracePeriod(t *testing.T) {
	cfg := config.Default()
	if p := ConsecutiveShortfallPrestigePenalty(cfg, 1); p != 0 {
		t.Errorf("turn 1 penalty = %d, want 0 (grace period)", p)
	}
	if p := ConsecutiveShortfallPrestigePenalty(cfg, 2); p != 0 {
		t.Errorf("turn 2 penalty = %d, want 0 (grace period)", p)
	}
	if p := ConsecutiveShortfallPrestigePenalty(cfg, 3); p != -8 {
		t.Errorf("turn 3 penalty = %d, want -8", p)
	}
	if p := ConsecutiveShortfallPrestigePenalty(cfg, 4); p != -11 {
		t.Errorf("turn 4 penalty = %d, want -11", p)
	}
}

func TestPTUCostScalesWithJumps(t *testing.T) {
	cfg := config.Default()
	one := PTUCost(cfg, config.PlanetEden, 1)
	three := PTUCost(cfg, config.PlanetEden, 3)
	if one != 5 {
		t.Errorf("PTUCost(1 jump) = %v, want 5", one)
	}
	// (1 + 0.20*2) * 5 = 7.0
	if three != 7 {
		t.Errorf("PTUCost(3 jumps) = %v, want 7", three)
	}
}
