package persist

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/greenm01/ec4x/diplomacy"
	"github.com/greenm01/ec4x/economy"
	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/ids"
	"github.com/greenm01/ec4x/intel"
	"github.com/greenm01/ec4x/store"
)

// Store is the persistence boundary over one Mongo database, holding the
// five collections below (turn snapshots, player states, the event dedup
// index, slots, diplomacy). Grounded on players.PlayerGameState's
// direct bson.ObjectID/collection-per-kind layout, wired here against a
// real *mongo.Database handle instead of galaxyCore's implicit one.
type Store struct {
	snapshots    *mongo.Collection
	playerStates *mongo.Collection
	eventIndex   *mongo.Collection
	slots        *mongo.Collection
	diplomacy    *mongo.Collection
}

// NewStore returns a Store backed by db, creating no collections eagerly —
// Mongo creates them lazily on first write.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		snapshots:    db.Collection("game_snapshots"),
		playerStates: db.Collection("player_snapshots"),
		eventIndex:   db.Collection("event_index"),
		slots:        db.Collection("slot_mappings"),
		diplomacy:    db.Collection("diplomacy_state"),
	}
}

// Connect dials a Mongo deployment and returns the Store bound to dbName, a
// thin convenience wrapper since every CLI command needs the same
// connect-then-select-database sequence.
func Connect(ctx context.Context, uri, dbName string) (*Store, *mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("persist: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("persist: ping: %w", err)
	}
	return NewStore(client.Database(dbName)), client, nil
}

// SaveSnapshot writes g's complete state as one GameSnapshotDoc keyed
// (gameId, turn), upserting over any prior write for the same key (a retry
// of the same turn's persistence must be idempotent).
func (s *Store) SaveSnapshot(ctx context.Context, g *store.GameState, turn int) error {
	doc := GameSnapshotDoc{GameID: g.GameID, Turn: turn, CapturedAt: time.Now()}

	for _, h := range sortedHouses(g) {
		doc.Houses = append(doc.Houses, *h)
	}
	for _, c := range g.Colonies.All() {
		doc.Colonies = append(doc.Colonies, *c.Colony)
	}
	for _, f := range g.Fleets.All() {
		doc.Fleets = append(doc.Fleets, *f.Fleet)
	}
	for _, sq := range g.Squadrons.All() {
		doc.Squadrons = append(doc.Squadrons, *sq.Squadron)
	}
	for _, sh := range g.Ships.All() {
		doc.Ships = append(doc.Ships, *sh.Ship)
	}
	for _, u := range g.GroundUnits.All() {
		doc.GroundUnits = append(doc.GroundUnits, *u.GroundUnit)
	}

	doc.Transfers = append([]economy.PopulationTransfer(nil), g.Transfers...)
	doc.NextTransferID = g.NextTransferID
	doc.Intel = flattenIntel(g.Intel)

	filter := bson.M{"gameId": g.GameID, "turn": turn}
	opts := options.Replace().SetUpsert(true)
	_, err := s.snapshots.ReplaceOne(ctx, filter, doc, opts)
	if err != nil {
		return fmt.Errorf("persist: save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reconstructs a *store.GameState from the snapshot stored for
// (gameId, turn).
func (s *Store) LoadSnapshot(ctx context.Context, gameID string, turn int) (*store.GameState, error) {
	var doc GameSnapshotDoc
	filter := bson.M{"gameId": gameID, "turn": turn}
	if err := s.snapshots.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, fmt.Errorf("persist: load snapshot (%s, turn %d): %w", gameID, turn, err)
	}

	g := store.New(gameID)
	g.Turn = turn
	for i := range doc.Houses {
		if err := g.PutHouse(&doc.Houses[i]); err != nil {
			return nil, fmt.Errorf("persist: restore house: %w", err)
		}
	}
	for i := range doc.Colonies {
		if err := g.PutColony(&doc.Colonies[i]); err != nil {
			return nil, fmt.Errorf("persist: restore colony: %w", err)
		}
	}
	for i := range doc.Fleets {
		if err := g.PutFleet(&doc.Fleets[i]); err != nil {
			return nil, fmt.Errorf("persist: restore fleet: %w", err)
		}
	}
	for i := range doc.Squadrons {
		if err := g.PutSquadron(&doc.Squadrons[i]); err != nil {
			return nil, fmt.Errorf("persist: restore squadron: %w", err)
		}
	}
	for i := range doc.Ships {
		if err := g.PutShip(&doc.Ships[i]); err != nil {
			return nil, fmt.Errorf("persist: restore ship: %w", err)
		}
	}
	for i := range doc.GroundUnits {
		if err := g.PutGroundUnit(&doc.GroundUnits[i]); err != nil {
			return nil, fmt.Errorf("persist: restore ground unit: %w", err)
		}
	}
	g.Transfers = append([]economy.PopulationTransfer(nil), doc.Transfers...)
	g.NextTransferID = doc.NextTransferID
	g.Intel = inflateIntel(doc.Intel)
	return g, nil
}

// flattenIntel converts every house's intel.DB into its BSON-safe document
// form, sorted by house id and then by target kind/id so repeated saves of
// an unchanged DB produce an identical document (store.Table's iteration
// order is otherwise a Go map's, which is unspecified).
func flattenIntel(dbs map[ids.HouseId]*intel.DB) []IntelDBDoc {
	houseIDs := make([]ids.HouseId, 0, len(dbs))
	for h := range dbs {
		houseIDs = append(houseIDs, h)
	}
	sort.Slice(houseIDs, func(i, j int) bool { return houseIDs[i] < houseIDs[j] })

	out := make([]IntelDBDoc, 0, len(houseIDs))
	for _, h := range houseIDs {
		db := dbs[h]
		records := db.All()
		keys := make([]intel.TargetKey, 0, len(records))
		for k := range records {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Kind != keys[j].Kind {
				return keys[i].Kind < keys[j].Kind
			}
			return keys[i].ID < keys[j].ID
		})

		doc := IntelDBDoc{House: db.House}
		for _, k := range keys {
			r := records[k]
			doc.Records = append(doc.Records, IntelRecordDoc{
				TargetKind:    string(r.Target.Kind),
				TargetID:      r.Target.ID,
				Quality:       int(r.Quality),
				LastIntelTurn: r.LastIntelTurn,
				Payload: IntelPayloadDoc{
					OwnerHouseVisible: r.Payload.OwnerHouseVisible,
					FleetComposition:  r.Payload.FleetComposition,
					ResourceRating:    r.Payload.ResourceRating,
					GarrisonStrength:  r.Payload.GarrisonStrength,
					LastCombatSummary: r.Payload.LastCombatSummary,
				},
			})
		}
		out = append(out, doc)
	}
	return out
}

// inflateIntel reconstructs GameState.Intel from its flattened document
// form, the mirror of flattenIntel.
func inflateIntel(docs []IntelDBDoc) map[ids.HouseId]*intel.DB {
	out := make(map[ids.HouseId]*intel.DB, len(docs))
	for _, doc := range docs {
		db := intel.NewDB(doc.House)
		for _, r := range doc.Records {
			key := intel.TargetKey{Kind: intel.TargetKind(r.TargetKind), ID: r.TargetID}
			payload := intel.Payload{
				OwnerHouseVisible: r.Payload.OwnerHouseVisible,
				FleetComposition:  r.Payload.FleetComposition,
				ResourceRating:    r.Payload.ResourceRating,
				GarrisonStrength:  r.Payload.GarrisonStrength,
				LastCombatSummary: r.Payload.LastCombatSummary,
			}
			db.Update(nil, r.LastIntelTurn, key, intel.Quality(r.Quality), payload)
		}
		out[ids.HouseId(doc.House)] = db
	}
	return out
}

// LoadSnapshotDoc returns the raw stored document for (gameId, turn),
// for callers (dump-state) that want the persisted shape directly rather
// than a reconstructed *store.GameState.
func (s *Store) LoadSnapshotDoc(ctx context.Context, gameID string, turn int) (*GameSnapshotDoc, error) {
	var doc GameSnapshotDoc
	filter := bson.M{"gameId": gameID, "turn": turn}
	if err := s.snapshots.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, fmt.Errorf("persist: load snapshot doc (%s, turn %d): %w", gameID, turn, err)
	}
	return &doc, nil
}

func sortedHouses(g *store.GameState) []*houses.House {
	all := g.Houses.All()
	out := make([]*houses.House, 0, len(all))
	for _, h := range all {
		out = append(out, h.House)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MarkProcessed records that (gameId, kind, eventId, direction) has been
// handled, returning whether it was already recorded (a duplicate to
// silently drop per spec.md §6).
func (s *Store) MarkProcessed(ctx context.Context, gameID, kind, eventID, direction string) (alreadyProcessed bool, err error) {
	filter := bson.M{"gameId": gameID, "kind": kind, "eventId": eventID, "direction": direction}
	var existing EventIndexDoc
	err = s.eventIndex.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		return true, nil
	}
	if err != mongo.ErrNoDocuments {
		return false, fmt.Errorf("persist: check event index: %w", err)
	}
	doc := EventIndexDoc{GameID: gameID, Kind: kind, EventID: eventID, Direction: direction, ProcessedAt: time.Now()}
	if _, err := s.eventIndex.InsertOne(ctx, doc); err != nil {
		return false, fmt.Errorf("persist: insert event index: %w", err)
	}
	return false, nil
}

// SaveSlotMapping upserts house's transport pubkey for gameId.
func (s *Store) SaveSlotMapping(ctx context.Context, gameID string, house ids.HouseId, pubkey []byte) error {
	filter := bson.M{"gameId": gameID, "houseId": uint64(house)}
	doc := SlotMappingDoc{GameID: gameID, HouseID: uint64(house), Pubkey: pubkey}
	opts := options.Replace().SetUpsert(true)
	_, err := s.slots.ReplaceOne(ctx, filter, doc, opts)
	if err != nil {
		return fmt.Errorf("persist: save slot mapping: %w", err)
	}
	return nil
}

// GetSlotMapping returns house's registered pubkey for gameId.
func (s *Store) GetSlotMapping(ctx context.Context, gameID string, house ids.HouseId) ([]byte, error) {
	var doc SlotMappingDoc
	filter := bson.M{"gameId": gameID, "houseId": uint64(house)}
	if err := s.slots.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, fmt.Errorf("persist: get slot mapping: %w", err)
	}
	return doc.Pubkey, nil
}

// SavePlayerSnapshot stores a house's formatted state payload for diffing
// against the following turn.
func (s *Store) SavePlayerSnapshot(ctx context.Context, gameID string, house ids.HouseId, turn int, payload []byte) error {
	filter := bson.M{"gameId": gameID, "houseId": uint64(house), "turn": turn}
	doc := PlayerSnapshotDoc{GameID: gameID, HouseID: uint64(house), Turn: turn, Payload: payload}
	opts := options.Replace().SetUpsert(true)
	_, err := s.playerStates.ReplaceOne(ctx, filter, doc, opts)
	if err != nil {
		return fmt.Errorf("persist: save player snapshot: %w", err)
	}
	return nil
}

// GetPlayerSnapshot returns the payload saved for (gameId, house, turn).
func (s *Store) GetPlayerSnapshot(ctx context.Context, gameID string, house ids.HouseId, turn int) ([]byte, error) {
	var doc PlayerSnapshotDoc
	filter := bson.M{"gameId": gameID, "houseId": uint64(house), "turn": turn}
	if err := s.playerStates.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, fmt.Errorf("persist: get player snapshot: %w", err)
	}
	return doc.Payload, nil
}

// SaveDiplomacyState upserts the game's full relation graph, flattening
// diplomacy.State.Relations (keyed by the non-string diplomacy.Pair) into
// RelationEntryDoc rows sorted by (A, B) so the write is deterministic.
func (s *Store) SaveDiplomacyState(ctx context.Context, d *diplomacy.State) error {
	doc := DiplomacyStateDoc{GameID: d.GameID}

	type pair struct {
		a, b ids.HouseId
		rel  diplomacy.Relation
	}
	pairs := make([]pair, 0, len(d.Relations))
	for p, rel := range d.Relations {
		pairs = append(pairs, pair{a: p.A, b: p.B, rel: rel})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})
	for _, p := range pairs {
		doc.Relations = append(doc.Relations, RelationEntryDoc{A: uint64(p.a), B: uint64(p.b), Relation: int(p.rel)})
	}

	for _, v := range d.Violations {
		doc.Violations = append(doc.Violations, ViolationDoc{
			Turn:     v.Turn,
			Violator: uint64(v.Violator),
			Victim:   uint64(v.Victim),
			Kind:     v.Kind,
		})
	}

	filter := bson.M{"gameId": d.GameID}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.diplomacy.ReplaceOne(ctx, filter, doc, opts); err != nil {
		return fmt.Errorf("persist: save diplomacy state: %w", err)
	}
	return nil
}

// LoadDiplomacyState returns gameId's relation graph, or a fresh empty
// state if none has been saved yet (a game's first turn has no diplomatic
// history).
func (s *Store) LoadDiplomacyState(ctx context.Context, gameID string) (*diplomacy.State, error) {
	var doc DiplomacyStateDoc
	filter := bson.M{"gameId": gameID}
	err := s.diplomacy.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return diplomacy.NewState(gameID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: load diplomacy state: %w", err)
	}

	d := diplomacy.NewState(gameID)
	for _, r := range doc.Relations {
		d.Set(ids.HouseId(r.A), ids.HouseId(r.B), diplomacy.Relation(r.Relation))
	}
	for _, v := range doc.Violations {
		d.RecordViolation(v.Turn, ids.HouseId(v.Violator), ids.HouseId(v.Victim), v.Kind)
	}
	return d, nil
}
