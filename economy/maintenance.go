package economy

import (
	"sort"

	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/ids"
)

// FleetMaintenanceInfo is the minimal per-fleet data the shortfall cascade
// needs; callers (the turn pipeline) resolve it from the entity store.
type FleetMaintenanceInfo struct {
	ID              ids.FleetId
	MaintenanceCost int
	ProductionCost  int // PC, the fleet's total build-cost value, salvage basis
	CreatedTurn     int // lower = older; disbanded oldest-first
}

// AssetStripInfo is one strippable asset kind present on a house's colonies,
// in the fixed strip order spec.md §4.5 specifies.
type AssetStripInfo struct {
	Kind  string
	Value int
}

// ShortfallResult is the outcome of one maintenance-shortfall cascade run.
type ShortfallResult struct {
	TreasuryAfter      int
	DisbandedFleetIDs  []ids.FleetId
	StrippedAssetKinds []string
	RemainingShortfall int
	ConstructionCancelled bool
	ResearchCancelled     bool
}

// stripOrder is the fixed asset-stripping sequence (spec.md §4.5): IU ->
// Spaceport -> Shipyard -> Starbase -> GroundBattery -> Army -> Marine ->
// PlanetaryShield.
var stripOrder = []string{
	"IU", "Spaceport", "Shipyard", "Starbase",
	"GroundBattery", "Army", "Marine", "PlanetaryShield",
}

func stripPct(cfg *config.Config, kind string) float64 {
	s := cfg.Economy.ShortfallSalvage
	switch kind {
	case "IU":
		return s.IUPct
	case "Spaceport":
		return s.SpaceportPct
	case "Shipyard":
		return s.ShipyardPct
	case "Starbase":
		return s.StarbasePct
	case "GroundBattery":
		return s.GroundBatteryPct
	case "Army":
		return s.ArmyPct
	case "Marine":
		return s.MarinePct
	case "PlanetaryShield":
		return s.PlanetaryShieldPct
	default:
		return 0
	}
}

// RunShortfallCascade applies spec.md §4.5's maintenance shortfall cascade
// when treasury < totalMaintenance:
//
//  1. Zero treasury, cancel active construction and research.
//  2. Disband fleets for 25% PC salvage, oldest first, until break-even or
//     all fleets disbanded.
//  3. If still short, strip assets in the fixed order, each recovering its
//     configured salvage percentage.
//
// Matches spec.md §8 scenario 2 exactly: treasury 50, maintenance 100, one
// fleet (maintenance 30, PC 200) -> salvage 50, remaining shortfall 20.
func RunShortfallCascade(cfg *config.Config, totalMaintenance, treasuryBefore int, fleets []FleetMaintenanceInfo, assets []AssetStripInfo) ShortfallResult {
	result := ShortfallResult{ConstructionCancelled: true, ResearchCancelled: true}

	required := totalMaintenance
	treasury := 0 // zeroed per step 1

	ordered := append([]FleetMaintenanceInfo(nil), fleets...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].CreatedTurn < ordered[j].CreatedTurn })

	shortfall := required - treasury
	for _, f := range ordered {
		if shortfall <= 0 {
			break
		}
		salvage := int(float64(f.ProductionCost) * cfg.Economy.FleetDisbandSalvagePct)
		treasury += salvage
		required -= f.MaintenanceCost
		result.DisbandedFleetIDs = append(result.DisbandedFleetIDs, f.ID)
		shortfall = required - treasury
	}

	assetByKind := make(map[string]int)
	for _, a := range assets {
		assetByKind[a.Kind] += a.Value
	}
	for _, kind := range stripOrder {
		if shortfall <= 0 {
			break
		}
		value, ok := assetByKind[kind]
		if !ok || value <= 0 {
			continue
		}
		salvage := int(float64(value) * stripPct(cfg, kind))
		treasury += salvage
		result.StrippedAssetKinds = append(result.StrippedAssetKinds, kind)
		shortfall = required - treasury
	}

	result.TreasuryAfter = treasury
	if shortfall < 0 {
		shortfall = 0
	}
	result.RemainingShortfall = shortfall
	return result
}

// ConsecutiveShortfallPrestigePenalty returns the prestige penalty for the
// nth consecutive turn (1-indexed) a house has run a maintenance shortfall,
// after the configured grace period has elapsed (spec.md §4.5: "Two-turn
// grace period before full effects engage").
func ConsecutiveShortfallPrestigePenalty(cfg *config.Config, consecutiveTurns int) int {
	if consecutiveTurns <= cfg.Economy.ShortfallGraceTurns {
		return 0
	}
	idx := consecutiveTurns - cfg.Economy.ShortfallGraceTurns - 1
	penalties := cfg.Economy.ShortfallPrestigePenalties
	if idx < 0 {
		idx = 0
	}
	if idx >= len(penalties) {
		idx = len(penalties) - 1
	}
	if idx < 0 {
		return 0
	}
	return penalties[idx]
}
