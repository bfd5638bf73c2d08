package prestige

import (
	"testing"

	"github.com/greenm01/ec4x/config"
)

func TestBuildReportSumsEventsFromStart(t *testing.T) {
	cfg := config.Default()
	events := []Event{
		Record(cfg, 10, 1, "CombatVictory"),
		Record(cfg, 10, 1, "MaintenanceShortfall"),
	}
	report := BuildReport(1, 10, 100, events)
	if report.End != 100+50-8 {
		t.Errorf("report.End = %d, want %d", report.End, 100+50-8)
	}
}

func TestHasWonAtThreshold(t *testing.T) {
	cfg := config.Default()
	if HasWon(cfg, cfg.Prestige.VictoryThreshold-1) {
		t.Error("should not have won one below threshold")
	}
	if !HasWon(cfg, cfg.Prestige.VictoryThreshold) {
		t.Error("should have won exactly at threshold")
	}
}

func TestDefensiveCollapseRequiresConsecutiveNegativeTurns(t *testing.T) {
	cfg := config.Default()
	streak := 0
	streak = ConsecutiveNegativeTurns(streak, -10)
	if IsDefensiveCollapse(cfg, streak) {
		t.Error("one negative turn should not trigger collapse")
	}
	streak = ConsecutiveNegativeTurns(streak, -5)
	streak = ConsecutiveNegativeTurns(streak, -1)
	if !IsDefensiveCollapse(cfg, streak) {
		t.Error("three consecutive negative turns should trigger DefensiveCollapse")
	}
}

func TestConsecutiveNegativeTurnsResetsOnPositive(t *testing.T) {
	streak := ConsecutiveNegativeTurns(2, 5)
	if streak != 0 {
		t.Errorf("streak after a positive turn = %d, want 0", streak)
	}
}

func TestMoraleLevelLaddersByPrestige(t *testing.T) {
	cfg := config.Default()
	if lvl := MoraleLevel(cfg, 5000); lvl.Name != "Exalted" {
		t.Errorf("MoraleLevel(5000) = %s, want Exalted", lvl.Name)
	}
	if lvl := MoraleLevel(cfg, 0); lvl.Name != "Neutral" {
		t.Errorf("MoraleLevel(0) = %s, want Neutral", lvl.Name)
	}
	if lvl := MoraleLevel(cfg, -5000); lvl.Name != "Reviled" {
		t.Errorf("MoraleLevel(-5000) = %s, want Reviled", lvl.Name)
	}
}
