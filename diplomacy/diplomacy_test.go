package diplomacy

import (
	"testing"

	"github.com/greenm01/ec4x/ids"
)

func TestUnlistedPairDefaultsToNeutral(t *testing.T) {
	s := NewState("game-1")
	if r := s.Get(1, 2); r != RelationNeutral {
		t.Errorf("Get(unlisted pair) = %v, want RelationNeutral", r)
	}
}

func TestSetIsOrderIndependent(t *testing.T) {
	s := NewState("game-1")
	s.Set(1, 2, RelationEnemy)
	if r := s.Get(2, 1); r != RelationEnemy {
		t.Errorf("Get(2,1) after Set(1,2) = %v, want RelationEnemy", r)
	}
}

func TestDishonoredRequiresThresholdWithinWindow(t *testing.T) {
	s := NewState("game-1")
	s.RecordViolation(1, 5, 1, "UnprovokedAttack")
	s.RecordViolation(3, 5, 1, "PactBreak")

	if IsDishonored(s, 5, 2, 10, 2) {
		t.Error("should not be dishonored before the second violation has even occurred")
	}
	if !IsDishonored(s, 5, 6, 10, 2) {
		t.Error("expected Dishonored once both violations are inside the rolling window")
	}
	if IsDishonored(s, 5, 20, 10, 2) {
		t.Error("violations outside the rolling window should no longer count")
	}
}

func TestDiplomaticIsolationRequiresEnemyWithEveryone(t *testing.T) {
	s := NewState("game-1")
	active := []ids.HouseId{1, 2, 3}
	s.Set(1, 2, RelationEnemy)
	s.Set(1, 3, RelationNonAggression)
	if IsDiplomaticallyIsolated(s, 1, active) {
		t.Error("should not be isolated while a NonAggression partner remains")
	}
	s.Set(1, 3, RelationEnemy)
	if !IsDiplomaticallyIsolated(s, 1, active) {
		t.Error("expected isolation once every relation is Enemy")
	}
}
