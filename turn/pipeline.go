package turn

import (
	"fmt"
	"math"
	"sort"

	"github.com/greenm01/ec4x/colonies"
	"github.com/greenm01/ec4x/combat"
	"github.com/greenm01/ec4x/config"
	"github.com/greenm01/ec4x/diplomacy"
	"github.com/greenm01/ec4x/economy"
	"github.com/greenm01/ec4x/espionage"
	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/intel"
	"github.com/greenm01/ec4x/orders"
	"github.com/greenm01/ec4x/prestige"
	"github.com/greenm01/ec4x/rng"
	"github.com/greenm01/ec4x/ships"
	"github.com/greenm01/ec4x/starmap"
	"github.com/greenm01/ec4x/store"
)

// Pipeline holds the resources one game's turn advancement needs beyond the
// entity store itself: its config, starmap, and diplomatic state. A
// Pipeline is not safe for concurrent AdvanceTurn calls against the same
// GameState (spec.md §5 "single-threaded and synchronous within a turn");
// the Scheduler enforces that externally with a per-game mutex.
type Pipeline struct {
	Config    *config.Config
	Map       *starmap.Map
	Diplomacy *diplomacy.State
}

// NewPipeline returns a Pipeline wired to the given config, starmap, and
// diplomatic state.
func NewPipeline(cfg *config.Config, m *starmap.Map, dip *diplomacy.State) *Pipeline {
	return &Pipeline{Config: cfg, Map: m, Diplomacy: dip}
}

// AdvanceTurn runs the fixed four-phase pipeline once (spec.md §4.10):
// Conflict -> Income -> Command -> Maintenance. orders is keyed by house and
// iterated in canonical order (O2: by HouseId) wherever a phase processes
// per-house work. Any phase returning an error triggers a full rollback of
// g to its pre-phase snapshot (spec.md §5/§7 "integrity error").
func (p *Pipeline) AdvanceTurn(g *store.GameState, turnNumber int, packets map[ids.HouseId]orders.ValidatedOrderSet) (*Result, error) {
	stream := rng.New(g.GameID, turnNumber)
	log := newEventLog(turnNumber)
	g.Turn = turnNumber

	startingPrestige := map[ids.HouseId]int{}
	for _, hid := range sortedHouseIDs(g) {
		if h, err := g.GetHouse(hid); err == nil {
			startingPrestige[hid] = h.Prestige
		}
	}

	phases := []func(*store.GameState, *rng.Stream, *EventLog, map[ids.HouseId]orders.ValidatedOrderSet) error{
		p.conflictPhase,
		p.incomePhase,
		p.commandPhase,
		p.maintenancePhase,
	}
	for _, phase := range phases {
		snap := g.Snapshot()
		if err := phase(g, stream, log, packets); err != nil {
			g.Restore(snap)
			return nil, fmt.Errorf("turn %d: %w", turnNumber, err)
		}
	}

	result := &Result{Turn: turnNumber, Log: log, Reports: make(map[ids.HouseId]prestige.Report, len(startingPrestige))}
	for hid, start := range startingPrestige {
		result.Reports[hid] = prestige.BuildReport(hid, turnNumber, start, log.Prestige[hid])
	}
	for _, hid := range sortedHouseIDs(g) {
		h, err := g.GetHouse(hid)
		if err != nil {
			continue
		}
		if prestige.HasWon(p.Config, h.Prestige) {
			result.Won = true
			result.Victor = hid
			log.emit(hid, EventVictory, "prestige threshold reached")
			break
		}
	}
	return result, nil
}

// sortedHouseIDs returns every house id currently in the store, ascending
// (spec.md §5 O2: "by house, stable sort by HouseId").
func sortedHouseIDs(g *store.GameState) []ids.HouseId {
	all := g.Houses.All()
	out := make([]ids.HouseId, 0, len(all))
	for _, h := range all {
		out = append(out, h.House.ID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedColonyIDs(g *store.GameState) []ids.ColonyId {
	all := g.Colonies.All()
	out := make([]ids.ColonyId, 0, len(all))
	for _, c := range all {
		out = append(out, c.Colony.ID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedFleetIDs(g *store.GameState) []ids.FleetId {
	all := g.Fleets.All()
	out := make([]ids.FleetId, 0, len(all))
	for _, f := range all {
		out = append(out, f.Fleet.ID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// colonyAt returns the colony located at sysID, if any. Colonies are
// scanned linearly since spec.md's one-colony-per-system invariant keeps
// the per-turn colony count small relative to a dedicated index's upkeep
// cost.
func colonyAt(g *store.GameState, sysID ids.SystemId) (*colonies.Colony, bool) {
	for _, cid := range sortedColonyIDs(g) {
		c, err := g.GetColony(cid)
		if err != nil {
			continue
		}
		if c.SystemID == sysID {
			return c, true
		}
	}
	return nil, false
}

// conflictPhase resolves every combat triggered by fleets sharing a system
// this turn (spec.md §4.10 step 1). Fleets are bucketed by Location; a
// bucket spanning more than one house with at least one Enemy relation
// between them engages in a space-combat Resolve call. Event-driven intel
// updates (spec.md §4.9) and pact-violation assessment (spec.md §4.7) run
// against every bucket regardless of whether combat actually occurs there.
func (p *Pipeline) conflictPhase(g *store.GameState, stream *rng.Stream, log *EventLog, _ map[ids.HouseId]orders.ValidatedOrderSet) error {
	p.applyStarbaseSurveillance(g)

	bySystem := map[ids.SystemId][]ids.FleetId{}
	for _, fid := range sortedFleetIDs(g) {
		f, err := g.GetFleet(fid)
		if err != nil {
			continue
		}
		bySystem[f.Location] = append(bySystem[f.Location], fid)
	}

	systemIDs := make([]ids.SystemId, 0, len(bySystem))
	for sysID := range bySystem {
		systemIDs = append(systemIDs, sysID)
	}
	sort.Slice(systemIDs, func(i, j int) bool { return systemIDs[i] < systemIDs[j] })

	dip := diplomacy.AsProvider(p.Diplomacy)
	for _, sysID := range systemIDs {
		fleetIDs := bySystem[sysID]
		sides, err := p.buildSides(g, fleetIDs)
		if err != nil {
			return err
		}
		p.updateSystemIntel(g, sysID, sides)
		p.assessPactViolations(g, sysID, fleetIDs, log)

		if !hasEnemyPair(dip, sides) {
			continue
		}
		result := combat.Resolve(p.Config, stream, dip, sides, p.Config.Combat.MaxSpaceCombatRounds)
		if result.NoContact {
			continue
		}
		if err := p.applyHits(g, result); err != nil {
			return err
		}
		reports := combat.BuildReports(result, sides)
		for _, hid := range sortedHouseIDs(g) {
			r, ok := reports[hid]
			if !ok {
				continue
			}
			log.emit(hid, EventCombatResolved, fmt.Sprintf("system %s: %d rounds, %d own losses", sysID, r.Rounds, len(r.OwnLosses)))
			if r.Victor != 0 {
				source := "CombatDefeat"
				if r.Victor == hid {
					source = "CombatVictory"
				}
				log.recordPrestige(prestige.Record(p.Config, log.Turn, hid, source))
			}
		}
		p.recordCombatIntel(g, sysID, sides, reports)
	}
	return nil
}

// applyStarbaseSurveillance grants every starbase-owning house Visual intel
// on its own system and Scouted intel on its immediate neighbors (spec.md
// §4.9 "starbase surveillance"). This is a radius-1 approximation of the
// configured StarbaseSurveillanceRadius: starmap exposes no general
// hex-distance walk beyond direct adjacency, so multi-hop radii are out of
// scope for this pass.
func (p *Pipeline) applyStarbaseSurveillance(g *store.GameState) {
	turn := g.Turn
	for _, cid := range sortedColonyIDs(g) {
		c, err := g.GetColony(cid)
		if err != nil || c.Starbases <= 0 {
			continue
		}
		db := g.IntelDB(c.Owner)
		db.Update(p.Config, turn, intel.TargetKey{Kind: intel.TargetSystem, ID: uint64(c.SystemID)}, intel.QualityVisual, intel.Payload{OwnerHouseVisible: true})
		for _, lane := range p.Map.Neighbors(c.SystemID) {
			db.Update(p.Config, turn, intel.TargetKey{Kind: intel.TargetSystem, ID: uint64(lane.Neighbor)}, intel.QualityScouted, intel.Payload{OwnerHouseVisible: true})
		}
	}
}

// updateSystemIntel records fleet-enters-system and scout intel for every
// house present at sysID (spec.md §4.9's event-driven update list): every
// observer gets at least Visual confirmation of the system and of each
// other house present, upgraded to Scouted (with ship-class composition)
// when the observer's side includes a scout.
func (p *Pipeline) updateSystemIntel(g *store.GameState, sysID ids.SystemId, sides []*combat.Side) {
	turn := g.Turn
	for _, observer := range sides {
		db := g.IntelDB(observer.House)
		db.Update(p.Config, turn, intel.TargetKey{Kind: intel.TargetSystem, ID: uint64(sysID)}, intel.QualityVisual, intel.Payload{OwnerHouseVisible: true})
		for _, other := range sides {
			if other.House == observer.House {
				continue
			}
			quality := intel.QualityVisual
			payload := intel.Payload{OwnerHouseVisible: true}
			if observer.HasScout {
				quality = intel.QualityScouted
				payload.FleetComposition = shipClassCounts(other)
			}
			db.Update(p.Config, turn, intel.TargetKey{Kind: intel.TargetHouse, ID: uint64(other.House)}, quality, payload)
		}
	}
}

// recordCombatIntel folds each house's post-combat Report into its intel DB
// for every opposing house at the system: the combat summary is attached to
// a fresh higher-quality record when one is held, otherwise it is written as
// a Reported-quality record (spec.md §4.9: "combat reports always attach a LastCombatSummary,
// regardless of quality").
func (p *Pipeline) recordCombatIntel(g *store.GameState, sysID ids.SystemId, sides []*combat.Side, reports map[ids.HouseId]*combat.Report) {
	turn := g.Turn
	for _, observer := range sides {
		r, ok := reports[observer.House]
		if !ok {
			continue
		}
		db := g.IntelDB(observer.House)
		for _, other := range sides {
			if other.House == observer.House {
				continue
			}
			key := intel.TargetKey{Kind: intel.TargetHouse, ID: uint64(other.House)}
			summary := fmt.Sprintf("system %s: %d rounds", sysID, r.Rounds)
			if existing, ok := db.Get(key); ok && existing.Quality > intel.QualityReported && !db.IsStale(p.Config, turn, key) {
				payload := existing.Payload
				payload.LastCombatSummary = summary
				db.Update(p.Config, turn, key, existing.Quality, payload)
				continue
			}
			db.Update(p.Config, turn, key, intel.QualityReported, intel.Payload{
				FleetComposition:  r.EnemyLossesByClass,
				LastCombatSummary: summary,
			})
		}
	}
}

func shipClassCounts(side *combat.Side) map[string]int {
	out := make(map[string]int, len(side.Units))
	for _, u := range side.Units {
		out[u.Ship.Class.Name]++
	}
	return out
}

// assessPactViolations checks whether any fleet at sysID is invading or
// blockading a colony owned by a house it holds a NonAggression pact with
// (spec.md §4.7: "breaking NonAggression without a declaration counts as a
// violation"). The mission state was set by a prior turn's commandPhase;
// this is independent of whether the parties actually fight this turn.
func (p *Pipeline) assessPactViolations(g *store.GameState, sysID ids.SystemId, fleetIDs []ids.FleetId, log *EventLog) {
	colony, ok := colonyAt(g, sysID)
	if !ok {
		return
	}
	for _, fid := range fleetIDs {
		fleet, err := g.GetFleet(fid)
		if err != nil {
			continue
		}
		if fleet.Owner == colony.Owner {
			continue
		}
		if fleet.MissionState != ships.MissionInvading && fleet.MissionState != ships.MissionBlockading {
			continue
		}
		if p.Diplomacy.Get(fleet.Owner, colony.Owner) != diplomacy.RelationNonAggression {
			continue
		}
		p.Diplomacy.RecordViolation(g.Turn, fleet.Owner, colony.Owner, "UnprovokedAttack")
		log.emit(fleet.Owner, EventViolationRecorded, fmt.Sprintf("violated non-aggression with house %s at system %s", colony.Owner, sysID))
	}
}

// buildSides resolves each fleet's squadrons into combat.Unit entries,
// grouped into one combat.Side per owning house present at the system. A
// side's MoraleCER is derived once per house from its current prestige
// tier (spec.md §4.6/§4.7: morale modifies CER the same way it modifies
// tax efficiency).
func (p *Pipeline) buildSides(g *store.GameState, fleetIDs []ids.FleetId) ([]*combat.Side, error) {
	byHouse := map[ids.HouseId]*combat.Side{}
	order := 0
	for _, fid := range fleetIDs {
		fleet, err := g.GetFleet(fid)
		if err != nil {
			continue
		}
		side, ok := byHouse[fleet.Owner]
		if !ok {
			side = &combat.Side{House: fleet.Owner}
			if house, err := g.GetHouse(fleet.Owner); err == nil {
				side.MoraleCER = prestige.MoraleLevel(p.Config, house.Prestige).CERModifier
			}
			byHouse[fleet.Owner] = side
		}
		for _, sqID := range fleet.SquadronIDs {
			sq, err := g.Squadrons.Get(sqID)
			if err != nil {
				continue
			}
			for _, shipID := range sq.Squadron.Members() {
				ship, err := g.GetShip(shipID)
				if err != nil {
					continue
				}
				if ship.Class.Name == "Scout" {
					side.HasScout = true
				}
				side.Units = append(side.Units, &combat.Unit{
					Ship:           ship,
					SquadronID:     sqID,
					Owner:          fleet.Owner,
					Role:           ship.Class.Role,
					Detected:       true,
					IsFighter:      ship.Class.Role == ships.RoleFighter,
					InsertionOrder: order,
				})
				order++
			}
		}
	}
	out := make([]*combat.Side, 0, len(byHouse))
	houseIDs := make([]ids.HouseId, 0, len(byHouse))
	for h := range byHouse {
		houseIDs = append(houseIDs, h)
	}
	sort.Slice(houseIDs, func(i, j int) bool { return houseIDs[i] < houseIDs[j] })
	for _, h := range houseIDs {
		out = append(out, byHouse[h])
	}
	return out, nil
}

func hasEnemyPair(dip diplomacy.Provider, sides []*combat.Side) bool {
	for i := range sides {
		for j := i + 1; j < len(sides); j++ {
			if dip.Relation(sides[i].House, sides[j].House) == diplomacy.RelationEnemy {
				return true
			}
		}
	}
	return false
}

// applyHits writes each damaged ship's post-combat CombatState back to the
// store (combat.Resolve mutates the in-memory *ships.Ship it was handed,
// but that pointer came from a store Get clone and must be Put back
// explicitly to persist, per the store's copy-by-value discipline).
func (p *Pipeline) applyHits(g *store.GameState, result *combat.Result) error {
	seen := map[ids.ShipId]*ships.Ship{}
	for _, h := range result.Hits {
		if !h.Destroyed {
			continue
		}
		if _, ok := seen[h.Target]; ok {
			continue
		}
		ship, err := g.GetShip(h.Target)
		if err != nil {
			continue
		}
		ship.CombatState = ships.Destroyed
		seen[h.Target] = ship
	}
	shipIDs := make([]ids.ShipId, 0, len(seen))
	for id := range seen {
		shipIDs = append(shipIDs, id)
	}
	sort.Slice(shipIDs, func(i, j int) bool { return shipIDs[i] < shipIDs[j] })
	for _, id := range shipIDs {
		if err := g.PutShip(seen[id]); err != nil {
			return err
		}
	}
	return nil
}

// incomePhase computes each colony's GCO/NCV, credits the owning house's
// treasury, applies population growth at the house's current morale-derived
// tax efficiency, rolls the house's tax average forward, charges the
// rolling-average high-tax prestige penalty, and matures any ongoing
// espionage effects (spec.md §4.10 step 2; §4.5; §4.7; §4.8).
func (p *Pipeline) incomePhase(g *store.GameState, _ *rng.Stream, log *EventLog, _ map[ids.HouseId]orders.ValidatedOrderSet) error {
	cfg := p.Config
	houseNCV := map[ids.HouseId]int{}
	houseGHO := map[ids.HouseId]int{}
	houseTaxSum := map[ids.HouseId]int{}
	houseTaxCount := map[ids.HouseId]int{}

	moraleByHouse := map[ids.HouseId]config.MoraleLevel{}
	for _, hid := range sortedHouseIDs(g) {
		house, err := g.GetHouse(hid)
		if err != nil {
			continue
		}
		moraleByHouse[hid] = prestige.MoraleLevel(cfg, house.Prestige)
	}

	for _, cid := range sortedColonyIDs(g) {
		colony, err := g.GetColony(cid)
		if err != nil {
			continue
		}
		house, err := g.GetHouse(colony.Owner)
		if err != nil {
			continue
		}
		elLevel := house.TechTree[config.TechEL]
		gco := economy.GrossColonialOutput(cfg, colony, elLevel)
		colony.GrossOutput = gco
		houseGHO[colony.Owner] += gco
		ncv := economy.NetColonyValue(gco, colony.TaxRate)
		houseNCV[colony.Owner] += ncv
		houseTaxSum[colony.Owner] += colony.TaxRate
		houseTaxCount[colony.Owner]++

		taxEfficiency := moraleByHouse[colony.Owner].TaxEfficiency
		growth := economy.PopulationGrowth(cfg, colony, taxEfficiency)
		colony.PopulationUnits += growth
		if max := colony.MaxPopulation(cfg); colony.PopulationUnits > max {
			colony.PopulationUnits = max
		}
		if err := g.PutColony(colony); err != nil {
			return err
		}
	}

	for _, hid := range sortedHouseIDs(g) {
		house, err := g.GetHouse(hid)
		if err != nil {
			continue
		}
		house.Treasury += houseNCV[hid]
		if n := houseTaxCount[hid]; n > 0 {
			house.TaxPolicy.PushRate(houseTaxSum[hid] / n)
		}
		if penalty := economy.TaxPenalty(cfg, house.TaxPolicy.RollingAverage); penalty > 0 {
			house.Prestige -= penalty
			log.recordPrestige(prestige.Event{Turn: log.Turn, House: hid, Source: "HighTaxRate", Amount: -penalty})
		}
		p.matureEspionageEffects(house, houseGHO[hid])
		if err := g.PutHouse(house); err != nil {
			return err
		}
	}
	return nil
}

// matureEspionageEffects applies one turn's treasury debuff for every
// ongoing espionage effect against house, dropping effects whose duration
// has elapsed (spec.md §4.8: "a defined effect... and duration for ongoing
// ones").
func (p *Pipeline) matureEspionageEffects(house *houses.House, grossHouseOutput int) {
	var remaining []houses.EspionageEffect
	for _, eff := range house.ActiveEspionageEffects {
		debuff := int(float64(grossHouseOutput) * eff.PerTurnPct)
		house.Treasury -= debuff
		eff.RemainingTurns--
		if eff.RemainingTurns > 0 {
			remaining = append(remaining, eff)
		}
	}
	house.ActiveEspionageEffects = remaining
}

// commandPhase applies each house's validated orders in canonical order
// (spec.md §4.10 step 3; §5 O2): fleet orders first (so the same turn's
// next conflictPhase sees updated positions and mission states), then
// builds, population transfers, cargo, diplomacy, and espionage. In-flight
// population transfers are then advanced/delivered once for the whole
// game, since a transfer is not scoped to any single house's order packet.
func (p *Pipeline) commandPhase(g *store.GameState, stream *rng.Stream, log *EventLog, packets map[ids.HouseId]orders.ValidatedOrderSet) error {
	houseIDs := make([]ids.HouseId, 0, len(packets))
	for h := range packets {
		houseIDs = append(houseIDs, h)
	}
	sort.Slice(houseIDs, func(i, j int) bool { return houseIDs[i] < houseIDs[j] })

	for _, hid := range houseIDs {
		packet := packets[hid]
		for _, fo := range packet.FleetOrders {
			if err := p.applyFleetOrder(g, fo); err != nil {
				log.emit(hid, EventOrderRejected, err.Error())
			}
		}
		for _, bo := range packet.BuildOrders {
			if err := p.applyBuildOrder(g, bo); err != nil {
				log.emit(hid, EventOrderRejected, err.Error())
			}
		}
		for _, pto := range packet.PopulationTransfers {
			if err := p.applyPopulationTransferOrder(g, hid, pto); err != nil {
				log.emit(hid, EventOrderRejected, err.Error())
			}
		}
		for _, co := range packet.CargoManagement {
			if err := p.applyCargoOrder(g, hid, co); err != nil {
				log.emit(hid, EventOrderRejected, err.Error())
			}
		}
		for _, do := range packet.Diplomatic {
			p.applyDiplomaticOrder(packet.Turn, hid, do, log)
		}
		for _, eo := range packet.Espionage {
			p.applyEspionageOrder(g, stream, hid, eo, log)
		}
	}
	return p.advancePopulationTransfers(g, log)
}

// applyFleetOrder dispatches a fleet order by kind. Move advances one
// system along a precomputed path per turn (a deliberate simplification of
// spec.md §4.3's full lane-jump-rate ETA model, which FindPath/CalculateETA
// already implement for validation; the command phase here spends exactly
// one leg of that path per turn, which is exact for any all-Minor or
// all-hostile route and conservative — never faster than the real ETA —
// otherwise). Colonize founds a new colony from a spacelift ship's
// colonist cargo. Invade and Blockade set the fleet's mission state (read
// by assessPactViolations in a later Conflict Phase) but are not resolved
// into ground combat or blockade effects; Patrol changes nothing.
func (p *Pipeline) applyFleetOrder(g *store.GameState, fo orders.FleetOrder) error {
	fleet, err := g.GetFleet(fo.FleetID)
	if err != nil {
		return err
	}
	switch fo.Kind {
	case orders.FleetOrderColonize:
		return p.applyColonizeOrder(g, fleet)
	case orders.FleetOrderMove:
		return p.advanceFleetMove(g, fleet, fo.Destination)
	case orders.FleetOrderInvade:
		fleet.MissionState = ships.MissionInvading
		return g.PutFleet(fleet)
	case orders.FleetOrderBlockade:
		fleet.MissionState = ships.MissionBlockading
		return g.PutFleet(fleet)
	default:
		return nil
	}
}

func (p *Pipeline) advanceFleetMove(g *store.GameState, fleet *ships.Fleet, destination ids.SystemId) error {
	if fleet.CurrentCommand == nil || fleet.CurrentCommand.Destination != destination {
		view := resolveFleetCapability(g, fleet)
		path, ok := p.Map.FindPath(fleet.Location, destination, view)
		if !ok {
			return fmt.Errorf("fleet %s: no path to %s", fleet.ID, destination)
		}
		cmd := newMoveCommand(destination, path.Systems)
		fleet.CurrentCommand = &cmd
		fleet.MissionState = ships.MissionMoving
	}
	cmd := fleet.CurrentCommand
	if len(cmd.Path) > 1 {
		cmd.Path = cmd.Path[1:]
	}
	fleet.Location = cmd.Path[0]
	if fleet.Location == destination {
		fleet.MissionState = ships.MissionIdle
		fleet.CurrentCommand = nil
	}
	return g.PutFleet(fleet)
}

// applyColonizeOrder founds a new colony at fleet's current system from one
// spacelift ship's colonist cargo (spec.md §4.4 "colonize orders require
// loaded colonists"). Since starmap.System carries no per-system planetary
// attribute data, a new colony defaults to a Temperate/Moderate baseline —
// a deliberate simplification, documented in DESIGN.md.
func (p *Pipeline) applyColonizeOrder(g *store.GameState, fleet *ships.Fleet) error {
	if _, exists := colonyAt(g, fleet.Location); exists {
		return fmt.Errorf("fleet %s: system %s is already colonized", fleet.ID, fleet.Location)
	}
	qty, ok := drainFirstColonistCargo(g, fleet)
	if !ok || qty <= 0 {
		return fmt.Errorf("fleet %s: no colonist cargo aboard to found a colony", fleet.ID)
	}
	colony := &colonies.Colony{
		ID:              g.IDGen.NextColony(),
		SystemID:        fleet.Location,
		Owner:           fleet.Owner,
		PopulationUnits: qty,
		PlanetClass:     config.PlanetTemperate,
		ResourceRating:  config.ResourceModerate,
	}
	if err := g.PutColony(colony); err != nil {
		return err
	}
	fleet.MissionState = ships.MissionIdle
	fleet.CurrentCommand = nil
	return g.PutFleet(fleet)
}

// drainFirstColonistCargo empties the first spacelift ship in fleet
// carrying colonists, returning how many PTU it held.
func drainFirstColonistCargo(g *store.GameState, fleet *ships.Fleet) (int, bool) {
	for _, shipID := range fleet.SpaceliftIDs {
		ship, err := g.GetShip(shipID)
		if err != nil || ship.Cargo == nil || ship.Cargo.Type != ships.CargoColonists {
			continue
		}
		_, qty := ship.Cargo.Unload()
		if qty <= 0 {
			continue
		}
		if err := g.PutShip(ship); err != nil {
			return 0, false
		}
		return qty, true
	}
	return 0, false
}

// findOwningFleet scans every fleet for one carrying shipID among its
// spacelift ships. ships.Ship carries no back-reference to its fleet
// (SquadronID only covers combat squadrons), so cargo orders resolve the
// owning fleet this way rather than via a denormalized field — documented
// in DESIGN.md as a scope decision for this pass.
func findOwningFleet(g *store.GameState, shipID ids.ShipId) (*ships.Fleet, bool) {
	for _, fid := range sortedFleetIDs(g) {
		f, err := g.GetFleet(fid)
		if err != nil {
			continue
		}
		for _, sid := range f.SpaceliftIDs {
			if sid == shipID {
				return f, true
			}
		}
	}
	return nil, false
}

// applyCargoOrder loads or unloads a spacelift ship's cargo against a
// co-located, same-owner colony's inventory (spec.md §4.4/§9's
// load(k)∘unload(k) round-trip law: unloading what was just loaded returns
// exactly k, up to the ship's cargo capacity).
func (p *Pipeline) applyCargoOrder(g *store.GameState, house ids.HouseId, co orders.CargoOrder) error {
	ship, err := g.GetShip(co.ShipID)
	if err != nil {
		return err
	}
	if ship.Owner != house || ship.Cargo == nil {
		return fmt.Errorf("ship %s: not a spacelift ship owned by house %s", co.ShipID, house)
	}
	fleet, ok := findOwningFleet(g, co.ShipID)
	if !ok {
		return fmt.Errorf("ship %s: not assigned to any fleet", co.ShipID)
	}
	colony, ok := colonyAt(g, fleet.Location)
	if !ok || colony.Owner != house {
		return fmt.Errorf("ship %s: no owned colony at system %s for cargo transfer", co.ShipID, fleet.Location)
	}
	kind := ships.CargoType(co.Kind)
	if co.Load {
		switch kind {
		case ships.CargoMarines:
			if colony.Marines.Available < co.Qty {
				return fmt.Errorf("colony %s: insufficient marines to load %d", colony.ID, co.Qty)
			}
			colony.Marines.Available -= co.Qty
		case ships.CargoColonists:
			if colony.PopulationUnits < co.Qty {
				return fmt.Errorf("colony %s: insufficient population to load %d colonists", colony.ID, co.Qty)
			}
			colony.PopulationUnits -= co.Qty
		default:
			return fmt.Errorf("cargo order: unrecognized kind %q", co.Kind)
		}
		ship.Cargo.Load(kind, co.Qty)
	} else {
		unloadedKind, qty := ship.Cargo.Unload()
		switch unloadedKind {
		case ships.CargoMarines:
			colony.Marines.Available += qty
		case ships.CargoColonists:
			colony.PopulationUnits += qty
			if max := colony.MaxPopulation(p.Config); colony.PopulationUnits > max {
				colony.PopulationUnits = max
			}
		}
	}
	if err := g.PutColony(colony); err != nil {
		return err
	}
	return g.PutShip(ship)
}

func newMoveCommand(dest ids.SystemId, path []ids.SystemId) ships.Command {
	return ships.Command{Kind: ships.MissionMoving, Destination: dest, Path: append([]ids.SystemId(nil), path...)}
}

func resolveFleetCapability(g *store.GameState, fleet *ships.Fleet) starmap.FleetCapability {
	view := &ships.FleetView{Fleet: fleet}
	for _, sqID := range fleet.SquadronIDs {
		sq, err := g.Squadrons.Get(sqID)
		if err != nil {
			continue
		}
		for _, shipID := range sq.Squadron.Members() {
			if s, err := g.GetShip(shipID); err == nil {
				view.Ships = append(view.Ships, s)
			}
		}
	}
	for _, shipID := range fleet.SpaceliftIDs {
		if s, err := g.GetShip(shipID); err == nil {
			view.Ships = append(view.Ships, s)
		}
	}
	return view
}

// unrestrictedCapability models a Space-Guild population transfer's civilian
// route, which is never blocked by the crippled/spacelift restricted-lane
// rules that apply to military fleets (spec.md §4.3 restricts fleets, not
// the Guild).
type unrestrictedCapability struct{}

func (unrestrictedCapability) HasCrippledShip() bool  { return false }
func (unrestrictedCapability) HasSpaceliftShip() bool { return false }

// applyBuildOrder queues a construction project on the funded dock kind
// (spec.md §4.10 step 3 "apply build orders: start construction").
func (p *Pipeline) applyBuildOrder(g *store.GameState, bo orders.BuildOrder) error {
	colony, err := g.GetColony(bo.ColonyID)
	if err != nil {
		return err
	}
	colony.ConstructionQueue.Projects = append(colony.ConstructionQueue.Projects, colonies.ConstructionProject{
		Kind:     colonies.ProjectKind(bo.Kind),
		Target:   bo.ItemName,
		DockSlot: dockSlotFor(bo.Kind),
		Cost:     bo.Cost,
	})
	return g.PutColony(colony)
}

func dockSlotFor(kind orders.BuildOrderKind) colonies.FacilityKind {
	if kind == orders.BuildFacility {
		return colonies.FacilitySpaceport
	}
	return colonies.FacilityShipyard
}

// applyPopulationTransferOrder starts a Space-Guild PTU shipment (spec.md
// §4.5): it spends the PTU from the origin colony and the transit cost
// from the house's treasury up front, then tracks the transfer on
// GameState.Transfers until advancePopulationTransfers delivers it.
func (p *Pipeline) applyPopulationTransferOrder(g *store.GameState, houseID ids.HouseId, pto orders.PopulationTransferOrder) error {
	origin, err := g.GetColony(pto.Origin)
	if err != nil {
		return err
	}
	if origin.Owner != houseID {
		return fmt.Errorf("colony %s: not owned by house %s", pto.Origin, houseID)
	}
	if origin.PopulationUnits < pto.PTU {
		return fmt.Errorf("colony %s: insufficient population for a %d-PTU transfer", pto.Origin, pto.PTU)
	}
	destination, err := g.GetColony(pto.Destination)
	if err != nil {
		return err
	}
	jumps := 1
	if path, ok := p.Map.FindPath(origin.SystemID, destination.SystemID, unrestrictedCapability{}); ok {
		jumps = len(path.Systems) - 1
	}
	if jumps < 1 {
		jumps = 1
	}
	totalCost := int(economy.PTUCost(p.Config, origin.PlanetClass, jumps) * float64(pto.PTU))

	house, err := g.GetHouse(houseID)
	if err != nil {
		return err
	}
	if house.Treasury < totalCost {
		return fmt.Errorf("house %s: insufficient treasury (%d) for population transfer costing %d", houseID, house.Treasury, totalCost)
	}
	if economy.ActiveTransferCount(transferPointers(g.Transfers), houseID) >= p.Config.Economy.MaxConcurrentTransfersPerHouse {
		return fmt.Errorf("house %s: already at the concurrent population-transfer limit", houseID)
	}

	origin.PopulationUnits -= pto.PTU
	house.Treasury -= totalCost
	g.NextTransferID++
	fallback := findFallbackColony(g, houseID, pto.Destination)
	transfer := economy.NewTransfer(g.NextTransferID, houseID, pto.Origin, pto.Destination, fallback, pto.PTU, jumps)
	g.Transfers = append(g.Transfers, *transfer)

	if err := g.PutColony(origin); err != nil {
		return err
	}
	return g.PutHouse(house)
}

func transferPointers(transfers []economy.PopulationTransfer) []*economy.PopulationTransfer {
	out := make([]*economy.PopulationTransfer, len(transfers))
	for i := range transfers {
		out[i] = &transfers[i]
	}
	return out
}

// findFallbackColony picks the lowest-id colony houseID still owns other
// than destination, for spec.md §4.5's "nearest owned colony" redirect if
// destination is lost mid-transit. Lowest-id is a deterministic stand-in
// for "nearest" since jump-distance ranking would require a path query per
// candidate for no behavioral difference in the common single-fallback
// case.
func findFallbackColony(g *store.GameState, houseID ids.HouseId, destination ids.ColonyId) ids.ColonyId {
	for _, cid := range sortedColonyIDs(g) {
		if cid == destination {
			continue
		}
		c, err := g.GetColony(cid)
		if err != nil || c.Owner != houseID {
			continue
		}
		return cid
	}
	return 0
}

// advancePopulationTransfers ticks every in-flight transfer one turn and
// delivers any that arrive, redirecting to the fallback colony if the
// destination is no longer owned by the originating house (spec.md §4.5
// "conquered or blockaded mid-flight").
func (p *Pipeline) advancePopulationTransfers(g *store.GameState, log *EventLog) error {
	remaining := g.Transfers[:0]
	for i := range g.Transfers {
		t := g.Transfers[i]
		if t.Status != economy.TransferInTransit {
			continue
		}
		if !t.Advance() {
			remaining = append(remaining, t)
			continue
		}
		destColony, err := g.GetColony(t.Destination)
		reachable := err == nil && destColony.Owner == t.House
		colonyID, ptu := t.Deliver(reachable)
		if t.Status != economy.TransferDelivered {
			continue
		}
		colony, err := g.GetColony(colonyID)
		if err != nil {
			continue
		}
		colony.PopulationUnits += ptu
		if max := colony.MaxPopulation(p.Config); colony.PopulationUnits > max {
			colony.PopulationUnits = max
		}
		if err := g.PutColony(colony); err != nil {
			return err
		}
		log.emit(t.House, EventPopulationArrived, fmt.Sprintf("transfer %d: %d PTU arrived at colony %s", t.ID, ptu, colonyID))
	}
	g.Transfers = remaining
	return nil
}

// applyDiplomaticOrder mutates the shared diplomatic State per spec.md
// §4.7's pact-action set.
func (p *Pipeline) applyDiplomaticOrder(turnNumber int, house ids.HouseId, do orders.DiplomaticOrder, log *EventLog) {
	switch do.Kind {
	case orders.DiplomaticPropose, orders.DiplomaticAccept, orders.DiplomaticNormalize:
		diplomacy.FormNonAggression(p.Diplomacy, house, do.Target)
	case orders.DiplomaticBreak, orders.DiplomaticDeclare:
		wasNonAggression := p.Diplomacy.Get(house, do.Target) == diplomacy.RelationNonAggression
		diplomacy.BreakToEnemy(p.Diplomacy, house, do.Target)
		if wasNonAggression && do.Kind == orders.DiplomaticBreak {
			p.Diplomacy.RecordViolation(turnNumber, house, do.Target, "PactBreak")
			log.emit(house, EventViolationRecorded, fmt.Sprintf("broke non-aggression with house %s", do.Target))
		}
	}
}

// applyEspionageOrder invests the house's queued EBP against the action's
// cost, rolls detection, records the outcome, and — for actions with a
// configured duration — attaches a maturing EspionageEffect to the target
// (spec.md §4.8/§4.10 step 3 "espionage actions: roll detection, apply
// effect").
func (p *Pipeline) applyEspionageOrder(g *store.GameState, stream *rng.Stream, house ids.HouseId, eo orders.EspionageOrder, log *EventLog) {
	cost, durationTurns, ok := espionage.ActionCost(p.Config, eo.Action)
	if !ok {
		return
	}
	h, err := g.GetHouse(house)
	if err != nil {
		return
	}
	if h.Espionage.EBP < cost {
		log.emit(house, EventOrderRejected, "insufficient EBP for "+eo.Action)
		return
	}
	target, err := g.GetHouse(eo.Target)
	if err != nil {
		return
	}
	detected := stream.Float64() < espionage.DetectionProbability(p.Config, h.TechTree[config.TechELI], target.TechTree[config.TechCIC], houseHasStarbase(g, eo.Target))
	outcome := espionage.ResolveDetection(p.Config, detected)
	h.Espionage.EBP -= cost
	h.Prestige += outcome.PrestigeDelta
	if detected {
		log.emit(eo.Target, EventEspionageDetected, fmt.Sprintf("detected espionage attempt by house %s", house))
		log.recordPrestige(prestige.Event{Turn: log.Turn, House: house, Source: "EspionageDetected", Amount: outcome.PrestigeDelta})
	}
	if durationTurns > 0 {
		target.ActiveEspionageEffects = append(target.ActiveEspionageEffects, houses.EspionageEffect{
			Action:         eo.Action,
			Source:         house,
			RemainingTurns: durationTurns,
			PerTurnPct:     perTurnEffectPct(p.Config, eo.Action),
		})
		_ = g.PutHouse(target)
	}
	_ = g.PutHouse(h)
}

func perTurnEffectPct(cfg *config.Config, action string) float64 {
	for _, a := range cfg.Espionage.Actions {
		if a.Name == action {
			return a.PerTurnEffectPct
		}
	}
	return 0
}

// houseHasStarbase reports whether house owns at least one colony with a
// starbase, raising the defender's effective CIC tier in espionage
// detection rolls (spec.md §4.8).
func houseHasStarbase(g *store.GameState, house ids.HouseId) bool {
	for _, ce := range g.Colonies.ByOwner(house) {
		if ce.Colony.Starbases > 0 {
			return true
		}
	}
	return false
}

// maintenancePhase advances construction, applies each house's queued
// research, pays or shortfalls fleet/asset maintenance, and checks
// DefensiveCollapse elimination (spec.md §4.10 step 4).
func (p *Pipeline) maintenancePhase(g *store.GameState, _ *rng.Stream, log *EventLog, packets map[ids.HouseId]orders.ValidatedOrderSet) error {
	cfg := p.Config
	for _, cid := range sortedColonyIDs(g) {
		colony, err := g.GetColony(cid)
		if err != nil {
			continue
		}
		slots := colony.SlotsByKind(cfg)
		completed := colony.ConstructionQueue.AdvanceAll(slots, cfg.Construction.PPPerDockSlotPerTurn)
		if err := g.PutColony(colony); err != nil {
			return err
		}
		for _, proj := range completed {
			log.emit(colony.Owner, EventConstructionDone, fmt.Sprintf("colony %s: %s (%s) complete", colony.ID, proj.Target, proj.Kind))
		}
	}

	for _, hid := range sortedHouseIDs(g) {
		house, err := g.GetHouse(hid)
		if err != nil {
			continue
		}
		if house.Eliminated {
			continue
		}

		maintenance, fleetInfos := p.fleetMaintenanceFor(g, hid)
		if house.Treasury >= maintenance {
			house.Treasury -= maintenance
			house.ConsecutiveShortfallTurns = 0
			p.applyResearch(house, researchOrdersFor(packets, hid), log)
		} else {
			assets := p.assetStripInventory(g, hid)
			result := economy.RunShortfallCascade(cfg, maintenance, house.Treasury, fleetInfos, assets)
			if err := p.applyShortfallResult(g, house, result); err != nil {
				return err
			}
			house.ConsecutiveShortfallTurns++
			if penalty := economy.ConsecutiveShortfallPrestigePenalty(cfg, house.ConsecutiveShortfallTurns); penalty != 0 {
				house.Prestige -= penalty
				log.recordPrestige(prestige.Event{Turn: log.Turn, House: hid, Source: "MaintenanceShortfall", Amount: -penalty})
			}
			log.emit(hid, EventShortfallCascade, fmt.Sprintf(
				"shortfall: disbanded %d fleets, stripped %v, remaining shortfall %d",
				len(result.DisbandedFleetIDs), result.StrippedAssetKinds, result.RemainingShortfall))
		}
		if house.Treasury < 0 {
			house.Treasury = 0
		}

		house.ConsecutiveNegativePrestigeTurns = prestige.ConsecutiveNegativeTurns(house.ConsecutiveNegativePrestigeTurns, house.Prestige)
		if !house.Eliminated && prestige.IsDefensiveCollapse(cfg, house.ConsecutiveNegativePrestigeTurns) {
			house.Eliminated = true
			log.emit(hid, EventHouseEliminated, "DefensiveCollapse: prestige negative for the configured consecutive turns")
		}

		if err := g.PutHouse(house); err != nil {
			return err
		}
	}
	return nil
}

func researchOrdersFor(packets map[ids.HouseId]orders.ValidatedOrderSet, hid ids.HouseId) []orders.ResearchOrder {
	if packets == nil {
		return nil
	}
	return packets[hid].Research
}

// applyResearch banks each order's PP against its field's ResearchProgress
// and advances TechTree one or more levels whenever the banked amount
// crosses economy.TechUpgradeCost, carrying any remainder forward (spec.md
// §4.5: research PP accumulates toward the next level's cost).
func (p *Pipeline) applyResearch(house *houses.House, researchOrders []orders.ResearchOrder, log *EventLog) {
	for _, ro := range researchOrders {
		field := config.TechField(ro.Field)
		house.ResearchProgress[field] += ro.PP
		for {
			nextLevel := house.TechTree[field] + 1
			cost := economy.TechUpgradeCost(p.Config, nextLevel)
			if house.ResearchProgress[field] < cost {
				break
			}
			house.ResearchProgress[field] -= cost
			house.TechTree[field] = nextLevel
			log.emit(house.ID, EventResearchAdvanced, fmt.Sprintf("%s advanced to level %d", field, nextLevel))
		}
	}
}

// fleetMaintenanceFor sums house's fleet maintenance cost (spec.md §8
// scenario 2: maintenance = productionCost * FleetMaintenancePct) and
// returns the economy.FleetMaintenanceInfo slice the shortfall cascade
// needs, sorted by FleetId for deterministic iteration.
func (p *Pipeline) fleetMaintenanceFor(g *store.GameState, house ids.HouseId) (int, []economy.FleetMaintenanceInfo) {
	var infos []economy.FleetMaintenanceInfo
	total := 0
	for _, fe := range g.Fleets.ByOwner(house) {
		f := fe.Fleet
		pc := p.fleetProductionCost(g, f)
		maint := int(float64(pc) * p.Config.Economy.FleetMaintenancePct)
		infos = append(infos, economy.FleetMaintenanceInfo{ID: f.ID, MaintenanceCost: maint, ProductionCost: pc, CreatedTurn: f.CreatedTurn})
		total += maint
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return total, infos
}

func (p *Pipeline) fleetProductionCost(g *store.GameState, f *ships.Fleet) int {
	total := 0
	for _, sqID := range f.SquadronIDs {
		sq, err := g.Squadrons.Get(sqID)
		if err != nil {
			continue
		}
		for _, shipID := range sq.Squadron.Members() {
			if s, err := g.GetShip(shipID); err == nil {
				total += s.Class.Cost
			}
		}
	}
	for _, shipID := range f.SpaceliftIDs {
		if s, err := g.GetShip(shipID); err == nil {
			total += s.Class.Cost
		}
	}
	return total
}

// assetStripInventory values house's strippable assets in the fixed order
// spec.md §4.5 names, for the shortfall cascade to consult.
func (p *Pipeline) assetStripInventory(g *store.GameState, house ids.HouseId) []economy.AssetStripInfo {
	cfg := p.Config
	var iu, spaceports, shipyards, starbases int
	for _, ce := range g.Colonies.ByOwner(house) {
		iu += ce.Colony.IndustrialUnits
		spaceports += ce.Colony.Spaceports
		shipyards += ce.Colony.Shipyards
		starbases += ce.Colony.Starbases
	}
	counts := map[ships.GroundUnitClass]int{}
	for _, ue := range g.GroundUnits.ByOwner(house) {
		counts[ue.GroundUnit.Class]++
	}
	return []economy.AssetStripInfo{
		{Kind: "IU", Value: int(cfg.Economy.IUBaseCost * float64(iu))},
		{Kind: "Spaceport", Value: spaceports * cfg.Facilities.SpaceportCost},
		{Kind: "Shipyard", Value: shipyards * cfg.Facilities.ShipyardCost},
		{Kind: "Starbase", Value: starbases * cfg.Facilities.StarbaseCost},
		{Kind: "GroundBattery", Value: counts[ships.ClassGroundBattery] * cfg.GroundUnits.GroundBatteryCost},
		{Kind: "Army", Value: counts[ships.ClassArmy] * cfg.GroundUnits.ArmyCost},
		{Kind: "Marine", Value: counts[ships.ClassMarine] * cfg.GroundUnits.MarineCost},
		{Kind: "PlanetaryShield", Value: counts[ships.ClassPlanetaryShield] * cfg.GroundUnits.PlanetaryShieldCost},
	}
}

// applyShortfallResult writes a ShortfallResult back to the store: zeroes
// treasury to the cascade's salvage total, disbands every fleet it named,
// cancels every colony's construction queue, and proportionally strips
// every colony facility kind and ground-unit class the cascade named
// (spec.md §4.5 steps 1-3).
func (p *Pipeline) applyShortfallResult(g *store.GameState, house *houses.House, result economy.ShortfallResult) error {
	house.Treasury = result.TreasuryAfter
	for _, fid := range result.DisbandedFleetIDs {
		_ = g.Fleets.Delete(fid)
	}

	strip := make(map[string]bool, len(result.StrippedAssetKinds))
	for _, k := range result.StrippedAssetKinds {
		strip[k] = true
	}
	salvage := p.Config.Economy.ShortfallSalvage
	for _, ce := range g.Colonies.ByOwner(house.ID) {
		colony := ce.Colony
		colony.ConstructionQueue.CancelAll()
		if strip["IU"] {
			colony.IndustrialUnits -= stripQty(colony.IndustrialUnits, salvage.IUPct)
		}
		if strip["Spaceport"] {
			colony.Spaceports -= stripQty(colony.Spaceports, salvage.SpaceportPct)
		}
		if strip["Shipyard"] {
			colony.Shipyards -= stripQty(colony.Shipyards, salvage.ShipyardPct)
		}
		if strip["Starbase"] {
			colony.Starbases -= stripQty(colony.Starbases, salvage.StarbasePct)
		}
		if err := g.PutColony(colony); err != nil {
			return err
		}
	}

	if strip["Army"] || strip["Marine"] || strip["GroundBattery"] || strip["PlanetaryShield"] {
		return p.stripGroundUnits(g, house.ID, strip)
	}
	return nil
}

func stripQty(current int, pct float64) int {
	n := int(math.Ceil(float64(current) * pct))
	if n > current {
		n = current
	}
	if n < 0 {
		n = 0
	}
	return n
}

// stripGroundUnits deletes a proportional, lowest-id-first share of each
// ground-unit class the shortfall cascade named (spec.md §4.5 asset strip,
// applied to the Army/Marine/GroundBattery/PlanetaryShield kinds that live
// as ships.GroundUnit entities rather than colony counters).
func (p *Pipeline) stripGroundUnits(g *store.GameState, house ids.HouseId, strip map[string]bool) error {
	salvage := p.Config.Economy.ShortfallSalvage
	pctByClass := map[string]float64{
		"Army":            salvage.ArmyPct,
		"Marine":          salvage.MarinePct,
		"GroundBattery":   salvage.GroundBatteryPct,
		"PlanetaryShield": salvage.PlanetaryShieldPct,
	}
	byClass := map[string][]ids.GroundUnitId{}
	for _, ue := range g.GroundUnits.ByOwner(house) {
		class := string(ue.GroundUnit.Class)
		byClass[class] = append(byClass[class], ue.GroundUnit.ID)
	}
	for class, idList := range byClass {
		if !strip[class] {
			continue
		}
		sort.Slice(idList, func(i, j int) bool { return idList[i] < idList[j] })
		n := stripQty(len(idList), pctByClass[class])
		for _, id := range idList[:n] {
			if err := g.GroundUnits.Delete(id); err != nil {
				return err
			}
		}
	}
	return nil
}
