package economy

import (
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/ids"
)

// TransferStatus is a population transfer's lifecycle stage.
type TransferStatus string

const (
	TransferInTransit TransferStatus = "InTransit"
	TransferDelivered  TransferStatus = "Delivered"
	TransferLost       TransferStatus = "Lost"
)

// PopulationTransfer is one Space-Guild PTU shipment in flight (spec.md
// §4.5 "Space-Guild population transfers").
type PopulationTransfer struct {
	ID            int
	House         ids.HouseId
	Origin        ids.ColonyId
	Destination   ids.ColonyId
	FallbackColony ids.ColonyId // nearest owned colony if Destination is lost
	PTU           int
	Jumps         int
	TurnsRemaining int
	Status        TransferStatus
}

// PTUCost returns the cost per PTU for a transfer of the given jump count
// from a colony of originClass, per spec.md §4.5:
//
//	cost_per_PTU = base(planetClass) * (1 + 0.20*(jumps-1))
func PTUCost(cfg *config.Config, originClass config.PlanetClass, jumps int) float64 {
	base := cfg.Economy.PTUBaseCost[originClass]
	if jumps < 1 {
		jumps = 1
	}
	return base * (1 + cfg.Economy.PTUJumpSurcharge*float64(jumps-1))
}

// TransitTurns returns the number of turns a transfer spends in flight:
// transit = max(1, jumps).
func TransitTurns(jumps int) int {
	if jumps < 1 {
		return 1
	}
	return jumps
}

// NewTransfer starts a transfer, grounded on spec.md §4.5's arrival and
// loss rules: destination defaults to Destination, with FallbackColony used
// if the destination is unreachable (conquered/blockaded) on delivery.
func NewTransfer(id int, house ids.HouseId, origin, destination, fallback ids.ColonyId, ptu, jumps int) *PopulationTransfer {
	turns := TransitTurns(jumps)
	return &PopulationTransfer{
		ID: id, House: house, Origin: origin, Destination: destination,
		FallbackColony: fallback, PTU: ptu, Jumps: jumps,
		TurnsRemaining: turns, Status: TransferInTransit,
	}
}

// Advance ticks one turn of transit; when TurnsRemaining reaches zero the
// transfer is ready for delivery resolution by the caller (which checks
// endpoint ownership/blockade state and applies loss rules).
func (t *PopulationTransfer) Advance() (arrived bool) {
	if t.Status != TransferInTransit {
		return false
	}
	t.TurnsRemaining--
	return t.TurnsRemaining <= 0
}

// Deliver resolves an arrived transfer. If destinationReachable is false
// (conquered or blockaded mid-flight per spec.md §4.5), the PTU is
// redirected to FallbackColony when one is known, otherwise lost.
func (t *PopulationTransfer) Deliver(destinationReachable bool) (colony ids.ColonyId, ptu int) {
	switch {
	case destinationReachable:
		t.Status = TransferDelivered
		return t.Destination, t.PTU
	case t.FallbackColony != 0:
		t.Status = TransferDelivered
		return t.FallbackColony, t.PTU
	default:
		t.Status = TransferLost
		return 0, 0
	}
}

// ActiveTransferCount reports how many of the given transfers are still
// in flight for a house, enforcing spec.md §4.5's concurrent-transfer cap.
func ActiveTransferCount(transfers []*PopulationTransfer, house ids.HouseId) int {
	n := 0
	for _, t := range transfers {
		if t.House == house && t.Status == TransferInTransit {
			n++
		}
	}
	return n
}
