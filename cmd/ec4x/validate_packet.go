package main

import (
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/orders"
	"github.com/greenm01/ec4x/starmap"
	"github.com/greenm01/ec4x/store"
)

// validatePacket runs every per-order-kind validator against the live
// state and sequential budget reservation (spec.md §4.4), returning the
// accepted subset plus every rejection. It is the CLI-side counterpart of
// what a live server would run inline at order-intake time.
func validatePacket(cfg *config.Config, state *store.GameState, m *starmap.Map, packet orders.OrderPacket) (orders.ValidatedOrderSet, []orders.Rejection) {
	house, err := state.GetHouse(packet.HouseID)
	if err != nil {
		return orders.ValidatedOrderSet{}, []orders.Rejection{{OrderKind: "Packet", Reason: orders.ReasonTargetInvalid, Detail: "submitting house does not exist"}}
	}

	var rejections []orders.Rejection
	out := orders.ValidatedOrderSet{HouseID: packet.HouseID, Turn: packet.Turn}

	for i, fo := range packet.FleetOrders {
		if r := orders.ValidateFleetOrder(state, m, *house, fo); r != nil {
			r.OrderKind, r.Index = "Fleet", i
			rejections = append(rejections, *r)
			continue
		}
		out.FleetOrders = append(out.FleetOrders, fo)
	}

	researchPP := 0
	for _, ro := range packet.Research {
		researchPP += ro.PP
	}
	// Order intake runs before the Income Phase computes this turn's actual
	// income/maintenance, so the projection here is conservative: current
	// treasury only, no forecast.
	projected := orders.ProjectedTreasury(house.Treasury, 0, 0)
	reservation := orders.ReserveBudget(cfg, projected, researchPP, packet.EBPInvestment, packet.BuildOrders)
	for _, i := range reservation.AcceptedBuilds {
		bo := packet.BuildOrders[i]
		if r := orders.ValidateBuildOrder(cfg, state, *house, bo); r != nil {
			r.OrderKind, r.Index = "Build", i
			rejections = append(rejections, *r)
			continue
		}
		out.BuildOrders = append(out.BuildOrders, bo)
	}
	for _, r := range reservation.RejectedBuilds {
		rejections = append(rejections, r)
	}
	out.Research = packet.Research

	for i, do := range packet.Diplomatic {
		if r := orders.ValidateDiplomaticOrder(state, *house, do); r != nil {
			r.OrderKind, r.Index = "Diplomatic", i
			rejections = append(rejections, *r)
			continue
		}
		out.Diplomatic = append(out.Diplomatic, do)
	}

	for i, eo := range packet.Espionage {
		if r := orders.ValidateEspionageOrder(cfg, state, eo); r != nil {
			r.OrderKind, r.Index = "Espionage", i
			rejections = append(rejections, *r)
			continue
		}
		out.Espionage = append(out.Espionage, eo)
	}

	for i, co := range packet.CargoManagement {
		if r := orders.ValidateCargoOrder(state, *house, co); r != nil {
			r.OrderKind, r.Index = "Cargo", i
			rejections = append(rejections, *r)
			continue
		}
		out.CargoManagement = append(out.CargoManagement, co)
	}

	out.EBPInvestment = reservation.EspionageClaimed
	out.PopulationTransfers = packet.PopulationTransfers

	return out, rejections
}
