// Package orders implements the C4 Order Validator (spec.md §4.4): it
// takes a raw per-house OrderPacket, runs authorization/shape/capability
// checks against the entity store, and reserves budget sequentially
// (research -> espionage -> builds -> terraform) against a projected
// treasury, producing a ValidatedOrderSet plus a per-order rejection
// report. Grounded on the teacher's two-step "parse, then validate against
// live state" pattern in diplomacy's Provider (decoupled read interface)
// generalized to order validation's store-backed checks.
package orders

import (
	"github.com/greenm01/ec4x/ids"
)

// RejectionReason is a specific, actionable failure-mode code (spec.md
// §4.4/§7).
type RejectionReason string

const (
	ReasonOwnershipViolation    RejectionReason = "OwnershipViolation"
	ReasonTargetInvalid         RejectionReason = "TargetInvalid"
	ReasonInsufficientTreasury  RejectionReason = "InsufficientTreasury"
	ReasonInsufficientDocks     RejectionReason = "InsufficientDocks"
	ReasonInsufficientCapacity  RejectionReason = "InsufficientCapacity"
	ReasonCapabilityMissing     RejectionReason = "CapabilityMissing"
	ReasonPrerequisiteMissing   RejectionReason = "PrerequisiteMissing"
)

// FleetOrderKind is the closed set of fleet-order tags (spec.md §9:
// "Order kinds are closed variants resolved by tagged dispatch").
type FleetOrderKind string

const (
	FleetOrderMove      FleetOrderKind = "Move"
	FleetOrderColonize  FleetOrderKind = "Colonize"
	FleetOrderInvade    FleetOrderKind = "Invade"
	FleetOrderBlockade  FleetOrderKind = "Blockade"
	FleetOrderPatrol    FleetOrderKind = "Patrol"
)

// FleetOrder is one fleet-scoped order within a packet.
type FleetOrder struct {
	FleetID     ids.FleetId
	Kind        FleetOrderKind
	Destination ids.SystemId
}

// BuildOrderKind distinguishes ship, facility, and ground-unit builds.
type BuildOrderKind string

const (
	BuildShip       BuildOrderKind = "Ship"
	BuildFacility   BuildOrderKind = "Facility"
	BuildGroundUnit BuildOrderKind = "GroundUnit"
)

// BuildOrder is one construction-queue submission.
type BuildOrder struct {
	ColonyID ids.ColonyId
	Kind     BuildOrderKind
	ItemName string
	Cost     int
}

// ResearchOrder allocates PP toward one tech field's next level.
type ResearchOrder struct {
	Field string
	PP    int
}

// DiplomaticOrderKind is the closed set of pact actions spec.md §4.7 names.
type DiplomaticOrderKind string

const (
	DiplomaticPropose   DiplomaticOrderKind = "Propose"
	DiplomaticAccept    DiplomaticOrderKind = "Accept"
	DiplomaticBreak     DiplomaticOrderKind = "Break"
	DiplomaticDeclare   DiplomaticOrderKind = "Declare"
	DiplomaticNormalize DiplomaticOrderKind = "Normalize"
)

// DiplomaticOrder targets another house with a pact action.
type DiplomaticOrder struct {
	Kind   DiplomaticOrderKind
	Target ids.HouseId
}

// EspionageOrder launches one named offensive action against a target
// house.
type EspionageOrder struct {
	Action string
	Target ids.HouseId
}

// PopulationTransferOrder initiates a Space-Guild PTU shipment.
type PopulationTransferOrder struct {
	Origin      ids.ColonyId
	Destination ids.ColonyId
	PTU         int
}

// SquadronManagementOrder reshapes a squadron's flagship/escort makeup.
type SquadronManagementOrder struct {
	SquadronID ids.SquadronId
	NewEscorts []ids.ShipId
}

// CargoOrder loads or unloads a spacelift ship's cargo.
type CargoOrder struct {
	ShipID ids.ShipId
	Load   bool
	Kind   string
	Qty    int
}

// TerraformOrder requests a planet-class improvement at a colony.
type TerraformOrder struct {
	ColonyID ids.ColonyId
}

// OrderPacket is one house's complete set of submitted orders for a turn
// (spec.md §4.4).
type OrderPacket struct {
	HouseID              ids.HouseId
	Turn                 int
	FleetOrders          []FleetOrder
	BuildOrders          []BuildOrder
	Research             []ResearchOrder
	Diplomatic           []DiplomaticOrder
	Espionage            []EspionageOrder
	EBPInvestment        int
	CIPInvestment        int
	PopulationTransfers  []PopulationTransferOrder
	SquadronManagement   []SquadronManagementOrder
	CargoManagement      []CargoOrder
	TerraformOrders      []TerraformOrder
}

// Rejection records one per-order failure; rejection never aborts the
// whole packet (spec.md §4.4 "Rejection is per-order; the packet is not
// atomic").
type Rejection struct {
	OrderKind string
	Index     int
	Reason    RejectionReason
	Detail    string
}

// ValidatedOrderSet is the subset of a packet's orders that passed every
// check, in the same per-kind slice shape as the input packet so the
// Command Phase can apply them directly.
type ValidatedOrderSet struct {
	HouseID             ids.HouseId
	Turn                int
	FleetOrders         []FleetOrder
	BuildOrders         []BuildOrder
	Research            []ResearchOrder
	Diplomatic          []DiplomaticOrder
	Espionage           []EspionageOrder
	EBPInvestment       int
	CIPInvestment       int
	PopulationTransfers []PopulationTransferOrder
	SquadronManagement  []SquadronManagementOrder
	CargoManagement     []CargoOrder
	TerraformOrders     []TerraformOrder

	Rejections []Rejection
}
