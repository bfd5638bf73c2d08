package orders

import (
	"github.com/greenm01/ec4x/colonies"
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/espionage"
	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/ships"
	"github.com/greenm01/ec4x/starmap"
	"github.com/greenm01/ec4x/store"
)

// ValidateFleetOrder runs the authorization/shape/capability checks for one
// fleet order (spec.md §4.4). m supplies lane/path validity for Move
// orders (restricted-lane traversal requires no crippled/spacelift ships).
func ValidateFleetOrder(state *store.GameState, m *starmap.Map, houseID houses.House, order FleetOrder) *Rejection {
	fleet, err := state.GetFleet(order.FleetID)
	if err != nil {
		return &Rejection{Reason: ReasonTargetInvalid, Detail: "fleet does not exist"}
	}
	if fleet.Owner != houseID.ID {
		return &Rejection{Reason: ReasonOwnershipViolation, Detail: "fleet not owned by house"}
	}
	if order.Kind == FleetOrderMove {
		if m.System(order.Destination) == nil {
			return &Rejection{Reason: ReasonTargetInvalid, Detail: "destination system does not exist"}
		}
		cap := fleetCapability(state, fleet)
		path, ok := m.FindPath(fleet.Location, order.Destination, cap)
		if !ok || path == nil {
			return &Rejection{Reason: ReasonCapabilityMissing, Detail: "no viable path (restricted lane or crippled/spacelift ship)"}
		}
	}
	return nil
}

// fleetCapability resolves a fleet's ships into the starmap.FleetCapability
// the pathfinder needs, without requiring every caller to do so by hand.
func fleetCapability(state *store.GameState, fleet *ships.Fleet) starmap.FleetCapability {
	view := resolveFleetView(state, fleet)
	return view
}

func resolveFleetView(state *store.GameState, fleet *ships.Fleet) *ships.FleetView {
	view := &ships.FleetView{Fleet: fleet}
	for _, sqID := range fleet.SquadronIDs {
		sq, err := state.Squadrons.Get(sqID)
		if err != nil {
			continue
		}
		view.Squadrons = append(view.Squadrons, sq.Squadron)
		for _, shipID := range sq.Squadron.Members() {
			if s, err := state.GetShip(shipID); err == nil {
				view.Ships = append(view.Ships, s)
			}
		}
	}
	for _, shipID := range fleet.SpaceliftIDs {
		if s, err := state.GetShip(shipID); err == nil {
			view.Ships = append(view.Ships, s)
		}
	}
	return view
}

// ValidateBuildOrder checks colony ownership and that the colony has at
// least one dock slot of the requested kind (spec.md §4.4 "insufficient
// docks"); projects already queued are not counted, since extra projects
// wait in the construction queue.
func ValidateBuildOrder(cfg *config.Config, state *store.GameState, houseID houses.House, order BuildOrder) *Rejection {
	colony, err := state.GetColony(order.ColonyID)
	if err != nil {
		return &Rejection{Reason: ReasonTargetInvalid, Detail: "colony does not exist"}
	}
	if colony.Owner != houseID.ID {
		return &Rejection{Reason: ReasonOwnershipViolation, Detail: "colony not owned by house"}
	}
	slot := dockSlotFor(order.Kind)
	slots := colony.SlotsByKind(cfg)
	if slots[slot] == 0 {
		return &Rejection{Reason: ReasonInsufficientDocks, Detail: "colony has no slots of the required kind"}
	}
	return nil
}

func dockSlotFor(kind BuildOrderKind) colonies.FacilityKind {
	if kind == BuildFacility {
		return colonies.FacilitySpaceport
	}
	return colonies.FacilityShipyard
}

// ValidateCargoOrder checks that the ship exists, is owned by the house,
// and is a spacelift hull (spec.md §4.4: only spacelift ships carry cargo).
func ValidateCargoOrder(state *store.GameState, houseID houses.House, order CargoOrder) *Rejection {
	ship, err := state.GetShip(order.ShipID)
	if err != nil {
		return &Rejection{Reason: ReasonTargetInvalid, Detail: "ship does not exist"}
	}
	if ship.Owner != houseID.ID {
		return &Rejection{Reason: ReasonOwnershipViolation, Detail: "ship not owned by house"}
	}
	if !ship.IsSpacelift() {
		return &Rejection{Reason: ReasonCapabilityMissing, Detail: "only spacelift ships carry cargo"}
	}
	return nil
}

// ValidateDiplomaticOrder rejects a pact action targeting the issuing house
// itself or a house that does not exist (spec.md §4.7).
func ValidateDiplomaticOrder(state *store.GameState, houseID houses.House, order DiplomaticOrder) *Rejection {
	if order.Target == houseID.ID {
		return &Rejection{Reason: ReasonTargetInvalid, Detail: "cannot target own house"}
	}
	if _, err := state.GetHouse(order.Target); err != nil {
		return &Rejection{Reason: ReasonTargetInvalid, Detail: "target house does not exist"}
	}
	return nil
}

// ValidateEspionageOrder checks the action name is one of the configured
// offensive actions and that the target house exists (spec.md §4.8).
func ValidateEspionageOrder(cfg *config.Config, state *store.GameState, order EspionageOrder) *Rejection {
	if _, _, ok := espionage.ActionCost(cfg, order.Action); !ok {
		return &Rejection{Reason: ReasonPrerequisiteMissing, Detail: "unknown espionage action"}
	}
	if _, err := state.GetHouse(order.Target); err != nil {
		return &Rejection{Reason: ReasonTargetInvalid, Detail: "target house does not exist"}
	}
	return nil
}

// ProjectedTreasury computes treasury + expectedIncome - expectedMaintenance,
// clamped to zero (spec.md §4.4's budget-reservation basis).
func ProjectedTreasury(treasury, expectedIncome, expectedMaintenance int) int {
	projected := treasury + expectedIncome - expectedMaintenance
	if projected < 0 {
		return 0
	}
	return projected
}

// BudgetReservation is the sequential, per-house claim against a projected
// treasury (spec.md §4.4 steps 1-4): research first, then espionage at a
// fixed share of the *projected* total (not of what research left
// behind), then builds in submission order, then terraform only if
// headroom remains.
type BudgetReservation struct {
	Projected       int
	ResearchClaimed int
	EspionageClaimed int
	BuildsClaimed   int
	Remaining       int
	AcceptedBuilds  []int // indices into the BuildOrders slice
	RejectedBuilds  []Rejection
	TerraformAllowed bool
}

// ReserveBudget runs the four-step sequential reservation.
func ReserveBudget(cfg *config.Config, projected int, researchPP int, espionagePP int, builds []BuildOrder) BudgetReservation {
	r := BudgetReservation{Projected: projected}

	researchCap := int(float64(projected) * cfg.Tech.TechPriorityWeight)
	if capPct := int(float64(projected) * cfg.Tech.ResearchCapPct); capPct < researchCap {
		researchCap = capPct
	}
	r.ResearchClaimed = min(researchPP, researchCap)

	r.EspionageClaimed = min(espionagePP, int(float64(projected)*cfg.Espionage.BudgetSharePct))

	remaining := projected - r.ResearchClaimed - r.EspionageClaimed
	if remaining < 0 {
		remaining = 0
	}
	for i, b := range builds {
		if b.Cost > remaining {
			r.RejectedBuilds = append(r.RejectedBuilds, Rejection{
				OrderKind: "Build", Index: i, Reason: ReasonInsufficientTreasury,
				Detail: "build cost exceeds remaining projected treasury",
			})
			continue
		}
		remaining -= b.Cost
		r.BuildsClaimed += b.Cost
		r.AcceptedBuilds = append(r.AcceptedBuilds, i)
	}

	r.Remaining = remaining
	r.TerraformAllowed = remaining >= cfg.Gameplay.TerraformThreshold
	return r
}
