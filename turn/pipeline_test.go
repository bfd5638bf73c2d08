package turn

import (
	"testing"

	"github.com/greenm01/ec4x/colonies"
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/diplomacy"
	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/orders"
	"github.com/greenm01/ec4x/starmap"
	"github.com/greenm01/ec4x/store"
)

func newTestGame(t *testing.T) (*store.GameState, *Pipeline) {
	t.Helper()
	g := store.New("game-1")
	h := houses.New(1, "House Atreides", 1000)
	h.TechTree[config.TechEL] = 1
	if err := g.PutHouse(h); err != nil {
		t.Fatalf("PutHouse: %v", err)
	}
	colony := &colonies.Colony{
		ID: 1, Owner: 1, PopulationUnits: 10, IndustrialUnits: 10,
		TaxRate: 20, ResourceRating: config.ResourceAbundant, PlanetClass: config.PlanetTemperate,
		Shipyards: 1,
	}
	if err := g.PutColony(colony); err != nil {
		t.Fatalf("PutColony: %v", err)
	}

	m := starmap.NewMap()
	m.AddSystem(&starmap.System{ID: 1})
	dip := diplomacy.NewState("game-1")
	return g, NewPipeline(config.Default(), m, dip)
}

func TestAdvanceTurnCreditsIncomeToTreasury(t *testing.T) {
	g, p := newTestGame(t)
	before, _ := g.GetHouse(1)

	result, err := p.AdvanceTurn(g, 1, nil)
	if err != nil {
		t.Fatalf("AdvanceTurn: %v", err)
	}
	after, _ := g.GetHouse(1)
	if after.Treasury <= before.Treasury {
		t.Errorf("Treasury after = %d, want > %d (income phase should credit NCV)", after.Treasury, before.Treasury)
	}
	if result.Turn != 1 {
		t.Errorf("result.Turn = %d, want 1", result.Turn)
	}
}

func TestAdvanceTurnDoesNotDeclareVictoryAtBaselinePrestige(t *testing.T) {
	g, p := newTestGame(t)

	result, err := p.AdvanceTurn(g, 1, nil)
	if err != nil {
		t.Fatalf("AdvanceTurn: %v", err)
	}
	if result.Won {
		t.Error("should not win from a single turn of baseline income/prestige")
	}
}

func TestAdvanceTurnAppliesQueuedBuildOrder(t *testing.T) {
	g, p := newTestGame(t)
	packets := map[ids.HouseId]orders.ValidatedOrderSet{
		1: {
			HouseID: 1,
			Turn:    1,
			BuildOrders: []orders.BuildOrder{
				{ColonyID: 1, Kind: orders.BuildShip, ItemName: "Scout", Cost: 50},
			},
		},
	}
	if _, err := p.AdvanceTurn(g, 1, packets); err != nil {
		t.Fatalf("AdvanceTurn: %v", err)
	}
	colony, _ := g.GetColony(1)
	if len(colony.ConstructionQueue.Projects) != 1 {
		t.Fatalf("expected 1 queued project after command phase+funding, got %d", len(colony.ConstructionQueue.Projects))
	}
}

func TestSchedulerRejectsConcurrentAdvanceForSameGame(t *testing.T) {
	g, p := newTestGame(t)
	s := NewScheduler()
	s.Register("game-1", p, g)

	s.mu.Lock()
	s.inUse["game-1"] = true
	s.mu.Unlock()

	_, err := s.AdvanceTurn("game-1", 1, nil)
	if err == nil {
		t.Fatal("expected ErrTurnInProgress while a turn is marked in-use")
	}
	if _, ok := err.(*ErrTurnInProgress); !ok {
		t.Errorf("error type = %T, want *ErrTurnInProgress", err)
	}
}
