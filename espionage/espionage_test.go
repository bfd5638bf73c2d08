package espionage

import (
	"testing"

	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/houses"
)

func TestInvestSplitsByShare(t *testing.T) {
	cfg := config.Default()
	budget := &houses.EspionageBudget{}
	Invest(cfg, budget, 100, 0.75)
	points := int(100 * cfg.Espionage.InvestmentConversionRate)
	wantEBP := int(float64(points) * 0.75)
	if budget.EBP != wantEBP {
		t.Errorf("EBP = %d, want %d", budget.EBP, wantEBP)
	}
	if budget.EBP+budget.CIP != points {
		t.Errorf("EBP+CIP = %d, want %d total points", budget.EBP+budget.CIP, points)
	}
}

func TestOverInvestmentPenaltyOnlyAboveCap(t *testing.T) {
	cfg := config.Default()
	budget := &houses.EspionageBudget{InvestedThisTurn: 10}
	if p := OverInvestmentPenalty(cfg, budget, 1000); p != 0 {
		t.Errorf("penalty below cap = %d, want 0", p)
	}
	budget.InvestedThisTurn = 500
	if p := OverInvestmentPenalty(cfg, budget, 1000); p <= 0 {
		t.Error("expected a positive penalty once investment exceeds the budget share")
	}
}

func TestActionCostLooksUpConfiguredActions(t *testing.T) {
	cfg := config.Default()
	cost, _, ok := ActionCost(cfg, "Assassination")
	if !ok || cost != 80 {
		t.Errorf("ActionCost(Assassination) = (%d,%v), want (80,true)", cost, ok)
	}
	if _, _, ok := ActionCost(cfg, "NotARealAction"); ok {
		t.Error("expected ok=false for an unrecognized action name")
	}
}

func TestDetectionProbabilityStarbaseBonusRaisesDefenderTier(t *testing.T) {
	cfg := config.Default()
	without := DetectionProbability(cfg, 3, 1, false)
	with := DetectionProbability(cfg, 3, 1, true)
	if with < without {
		t.Errorf("starbase bonus lowered detection chance (%v < %v); it should raise it by strengthening the defender's tier", with, without)
	}
}

func TestResolveDetectionAppliesPrestigePenaltyOnlyWhenDetected(t *testing.T) {
	cfg := config.Default()
	if o := ResolveDetection(cfg, false); o.Detected || o.PrestigeDelta != 0 {
		t.Errorf("undetected action should have no consequence, got %+v", o)
	}
	if o := ResolveDetection(cfg, true); !o.Detected || o.PrestigeDelta >= 0 {
		t.Errorf("detected action should carry a negative prestige delta, got %+v", o)
	}
}
