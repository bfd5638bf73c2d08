package combat

import (
	"testing"

	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/diplomacy"
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/rng"
	"github.com/greenm01/ec4x/ships"
)

func destroyer(id ids.ShipId) *ships.Ship {
	return &ships.Ship{ID: id, Class: ships.ShipClass{Name: "Destroyer", Role: ships.RoleEscort, AS: 6, DS: 6}}
}

func scout(id ids.ShipId) *ships.Ship {
	return &ships.Ship{ID: id, Class: ships.ShipClass{Name: "Scout", Role: ships.RoleAuxiliary, AS: 2, DS: 3}}
}

func raider(id ids.ShipId) *ships.Ship {
	return &ships.Ship{ID: id, Class: ships.ShipClass{Name: "Raider", Role: ships.RoleEscort, AS: 5, DS: 4}}
}

type alwaysEnemyProvider struct{}

func (alwaysEnemyProvider) Relation(a, b ids.HouseId) diplomacy.Relation {
	return diplomacy.RelationEnemy
}

var alwaysEnemy = alwaysEnemyProvider{}

// TestNoContactWhenOneSideEmpty matches spec.md §4.6's failure semantics.
func TestNoContactWhenOneSideEmpty(t *testing.T) {
	cfg := config.Default()
	stream := rng.New("game-1", 1)
	sides := []*Side{
		{House: 1, Units: nil},
		{House: 2, Units: []*Unit{{Ship: destroyer(1), Owner: 2, Role: ships.RoleEscort}}},
	}
	result := Resolve(cfg, stream, alwaysEnemy, sides, 10)
	if !result.NoContact {
		t.Fatal("expected NoContact with an empty side")
	}
}

// TestAmbushRaidersActBeforeMainEngagement exercises the phase ordering
// (the first hit is an Ambush hit) and that no unit targets its own house.
func TestAmbushRaidersActBeforeMainEngagement(t *testing.T) {
	cfg := config.Default()
	stream := rng.New("ambush-scenario", 1)

	attacker := &Side{
		House: 1,
		Units: []*Unit{
			{Ship: raider(1), Owner: 1, Role: ships.RoleEscort, IsRaider: true, InsertionOrder: 0},
			{Ship: raider(2), Owner: 1, Role: ships.RoleEscort, IsRaider: true, InsertionOrder: 1},
		},
	}
	defender := &Side{
		House: 2,
		Units: []*Unit{
			{Ship: scout(3), Owner: 2, Role: ships.RoleAuxiliary, InsertionOrder: 0},
			{Ship: destroyer(4), Owner: 2, Role: ships.RoleEscort, InsertionOrder: 1},
		},
	}
	sides := []*Side{attacker, defender}

	result := Resolve(cfg, stream, alwaysEnemy, sides, 1)

	if len(result.Hits) == 0 {
		t.Fatal("expected at least one combat roll to be recorded")
	}
	if result.Hits[0].Phase != PhaseAmbush {
		t.Errorf("first hit recorded in phase %v, want PhaseAmbush (raiders act first)", result.Hits[0].Phase)
	}
	for _, h := range result.Hits {
		if h.AttackerOwner == h.TargetOwner {
			t.Errorf("hit %+v targets attacker's own house", h)
		}
	}
}

// TestCombatStateNeverSkipsAStepUnderRepeatedHits hammers one ship with
// hits and checks it passes through Crippled before Destroyed.
func TestCombatStateNeverSkipsAStepUnderRepeatedHits(t *testing.T) {
	cfg := config.Default()
	stream := rng.New("grind-scenario", 1)

	target := scout(9)
	attacker := &Side{House: 1, Units: []*Unit{
		{Ship: raider(1), Owner: 1, Role: ships.RoleEscort},
		{Ship: raider(2), Owner: 1, Role: ships.RoleEscort},
		{Ship: raider(3), Owner: 1, Role: ships.RoleEscort},
	}}
	defender := &Side{House: 2, Units: []*Unit{{Ship: target, Owner: 2, Role: ships.RoleAuxiliary}}}

	seenCrippled := false
	for round := 0; round < 20 && target.CombatState != ships.Destroyed; round++ {
		Resolve(cfg, stream, alwaysEnemy, []*Side{attacker, defender}, 1)
		if target.CombatState == ships.Crippled {
			seenCrippled = true
		}
	}
	if target.CombatState == ships.Destroyed && !seenCrippled {
		t.Error("target reached Destroyed without passing through Crippled")
	}
}

func TestBuildReportsMirrorsOwnVsEnemyVisibility(t *testing.T) {
	result := &Result{
		Rounds: 1,
		Hits: []Hit{
			{Target: 9, TargetOwner: 2, TargetRole: ships.RoleAuxiliary, Destroyed: true},
		},
	}
	sides := []*Side{
		{House: 1, Units: []*Unit{{Ship: raider(1), Owner: 1}}},
		{House: 2, Units: []*Unit{{Ship: &ships.Ship{ID: 9, CombatState: ships.Destroyed}, Owner: 2}}},
	}
	reports := BuildReports(result, sides)

	if len(reports[2].OwnLosses) != 1 || reports[2].OwnLosses[0] != 9 {
		t.Errorf("house 2 should see its own loss by ShipId, got %v", reports[2].OwnLosses)
	}
	if reports[1].EnemyLossesByClass[string(ships.RoleAuxiliary)] != 1 {
		t.Errorf("house 1 should see enemy loss aggregated by class, got %v", reports[1].EnemyLossesByClass)
	}
	if len(reports[1].OwnLosses) != 0 {
		t.Errorf("house 1 should not see the enemy's ShipId in OwnLosses, got %v", reports[1].OwnLosses)
	}
}

func TestRetreatNeverAppliesToColonyOwnedFighter(t *testing.T) {
	side := &Side{ROE: 10, MoraleCER: -2}
	u := &Unit{ColonyOwnedFighter: true}
	if EvaluateRetreat(side, u, 50) {
		t.Error("colony-owned fighter must never retreat")
	}
}

func TestBombardPlanetBreakerBypassesShield(t *testing.T) {
	cfg := config.Default()
	stream := rng.New("bombard-scenario", 1)
	target := &BombardmentTarget{ShieldLevel: 5, IUPresent: 100, PUPresent: 100, HasPlanetBreaker: true}
	result := Bombard(cfg, stream, target, 50)
	if result.ShieldBlocks != 0 {
		t.Errorf("Planet-Breaker must bypass shields, got %d blocks", result.ShieldBlocks)
	}
	if result.IULost == 0 && result.PULost == 0 {
		t.Error("expected bombardment to register some damage")
	}
}

func TestResolveGroundBlitzResolvesInOneCall(t *testing.T) {
	cfg := config.Default()
	stream := rng.New("ground-scenario", 1)
	attacker := GroundForce{Armies: 10, Marines: 5}
	defender := GroundForce{Armies: 3}
	result := ResolveGround(cfg, stream, ModeBlitz, attacker, defender)
	if result.InfrastructureLossPct != cfg.Combat.BlitzInfrastructureLossPct {
		t.Errorf("blitz infrastructure loss = %v, want %v", result.InfrastructureLossPct, cfg.Combat.BlitzInfrastructureLossPct)
	}
}
