package intel

import (
	"testing"

	"github.com/greenm01/ec4x/config"
)

func TestMissingRecordIsAlwaysStale(t *testing.T) {
	cfg := config.Default()
	db := NewDB(1)
	if !db.IsStale(cfg, 10, TargetKey{Kind: TargetSystem, ID: 5}) {
		t.Error("a target never observed must be stale")
	}
}

func TestRecordBecomesStaleAfterDecayThreshold(t *testing.T) {
	cfg := config.Default()
	db := NewDB(1)
	key := TargetKey{Kind: TargetFleet, ID: 1} // Fleet decays after 2 turns
	db.Update(cfg, 1, key, QualityVisual, Payload{})

	if db.IsStale(cfg, 2, key) {
		t.Error("should not be stale immediately within the window")
	}
	if !db.IsStale(cfg, 4, key) {
		t.Error("should be stale once the decay threshold is exceeded")
	}
}

func TestUpdateDoesNotDowngradeFreshHigherQuality(t *testing.T) {
	cfg := config.Default()
	db := NewDB(1)
	key := TargetKey{Kind: TargetColony, ID: 1}
	db.Update(cfg, 1, key, QualityScouted, Payload{ResourceRating: "Abundant"})
	db.Update(cfg, 2, key, QualityInferred, Payload{})

	rec, ok := db.Get(key)
	if !ok || rec.Quality != QualityScouted {
		t.Errorf("fresh Scouted record should not be downgraded by a later Inferred update, got %+v", rec)
	}
}

func TestUpdateReplacesStaleRecordRegardlessOfQuality(t *testing.T) {
	cfg := config.Default()
	db := NewDB(1)
	key := TargetKey{Kind: TargetFleet, ID: 1}
	db.Update(cfg, 1, key, QualityScouted, Payload{})
	db.Update(cfg, 10, key, QualityInferred, Payload{LastCombatSummary: "ambush"})

	rec, _ := db.Get(key)
	if rec.Quality != QualityInferred || rec.LastIntelTurn != 10 {
		t.Errorf("stale record should be replaced even by a lower quality, got %+v", rec)
	}
}
