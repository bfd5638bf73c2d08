// Package persist implements spec.md §6's "Persisted state layout": turn
// snapshots, per-house player-state snapshots, the processed-event dedup
// index, and the slot/pubkey mapping, all stored as BSON documents via
// go.mongodb.org/mongo-driver/v2. Grounded on players.PlayerGameState and
// maps.MongoMap's bson-tagged, denormalized document shape (ID
// bson.ObjectID, FK-style cross references, `omitempty` optional fields),
// generalized from "one player's state in one map" to "one full
// GameState/turn snapshot" and "one house's intel snapshot per turn".
// Construction queues have no document type of their own: each is stored
// inline in its colonies.Colony.
package persist

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/greenm01/ec4x/colonies"
	"github.com/greenm01/ec4x/economy"
	"github.com/greenm01/ec4x/houses"
	"github.com/greenm01/ec4x/intel"
	"github.com/greenm01/ec4x/ships"
)

// GameSnapshotDoc is one turn's full GameState, keyed (gameId, turn) per
// spec.md §6. Entity collections are stored denormalized inline rather than
// as separate documents, since a snapshot is always read or written as one
// atomic unit (never partially).
type GameSnapshotDoc struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	GameID     string        `bson:"gameId"`
	Turn       int           `bson:"turn"`
	CapturedAt time.Time     `bson:"capturedAt"`

	Houses      []houses.House     `bson:"houses"`
	Colonies    []colonies.Colony  `bson:"colonies"`
	Fleets      []ships.Fleet      `bson:"fleets"`
	Squadrons   []ships.Squadron   `bson:"squadrons"`
	Ships       []ships.Ship       `bson:"ships"`
	GroundUnits []ships.GroundUnit `bson:"groundUnits"`

	// Transfers mirrors GameState.Transfers verbatim; PopulationTransfer has
	// no non-string keys so it needs no flattening.
	Transfers      []economy.PopulationTransfer `bson:"transfers"`
	NextTransferID int                          `bson:"nextTransferId"`

	// Intel holds every house's C9 Intelligence DB, flattened the same way
	// DiplomacyStateDoc flattens diplomacy.State's relation map: intel.DB's
	// records are keyed by intel.TargetKey, a struct, which can't be a BSON
	// map key either.
	Intel []IntelDBDoc `bson:"intel"`
}

// IntelRecordDoc mirrors intel.Record verbatim, with its TargetKey inlined
// since both of its fields are already BSON-safe scalars.
type IntelRecordDoc struct {
	TargetKind    string         `bson:"targetKind"`
	TargetID      uint64         `bson:"targetId"`
	Quality       int            `bson:"quality"`
	LastIntelTurn int            `bson:"lastIntelTurn"`
	Payload       IntelPayloadDoc `bson:"payload"`
}

// IntelPayloadDoc mirrors intel.Payload verbatim.
type IntelPayloadDoc struct {
	OwnerHouseVisible bool           `bson:"ownerHouseVisible"`
	FleetComposition  map[string]int `bson:"fleetComposition"`
	ResourceRating    string         `bson:"resourceRating"`
	GarrisonStrength  int            `bson:"garrisonStrength"`
	LastCombatSummary string         `bson:"lastCombatSummary"`
}

// IntelDBDoc is one house's flattened intel.DB.
type IntelDBDoc struct {
	House   uint64           `bson:"house"`
	Records []IntelRecordDoc `bson:"records"`
}

// PlayerSnapshotDoc is one house's filtered view as of a turn, kept to diff
// against next turn's view (spec.md §6 "PlayerStateSnapshot per (gameId,
// houseId, turn)"). The payload is the already-formatted delta-ready bytes
// (fog.FormatDeltaPayload's predecessor full-state encoding), not a second
// copy of the domain structs, since persist never needs to query inside it.
type PlayerSnapshotDoc struct {
	ID       bson.ObjectID `bson:"_id,omitempty"`
	GameID   string        `bson:"gameId"`
	HouseID  uint64        `bson:"houseId"`
	Turn     int           `bson:"turn"`
	Payload  []byte        `bson:"payload"`
}

// EventIndexDoc is one entry in the processed-event dedup index (spec.md §6
// "(gameId, kind, eventId, direction)"), grounded on maps.PlayerAction's
// timestamped action-log envelope, generalized from "a player's queued
// action" to "an event this adapter has already processed."
type EventIndexDoc struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	GameID      string        `bson:"gameId"`
	Kind        string        `bson:"kind"`
	EventID     string        `bson:"eventId"`
	Direction   string        `bson:"direction"`
	ProcessedAt time.Time     `bson:"processedAt"`
}

// SlotMappingDoc is one (gameId, houseId) -> pubkey assignment (spec.md §6
// "Slot/pubkey mapping"), grounded on maps.PlayerConfig's
// {PlayerID, SetID} seat-assignment shape, generalized from "player's chosen
// ship set" to "house's transport pubkey."
type SlotMappingDoc struct {
	ID      bson.ObjectID `bson:"_id,omitempty"`
	GameID  string        `bson:"gameId"`
	HouseID uint64        `bson:"houseId"`
	Pubkey  []byte        `bson:"pubkey"`
}

// RelationEntryDoc is one recorded pair relation. diplomacy.Pair{A, B} can't
// be a BSON map key (BSON keys are strings), so the map is flattened to a
// slice of entries here, the same way buildings.Queue flattens a schedule
// into an ordered slice rather than a keyed map.
type RelationEntryDoc struct {
	A        uint64 `bson:"a"`
	B        uint64 `bson:"b"`
	Relation int    `bson:"relation"`
}

// ViolationDoc mirrors diplomacy.Violation verbatim; it has no non-string
// keys so it needs no flattening.
type ViolationDoc struct {
	Turn     int    `bson:"turn"`
	Violator uint64 `bson:"violator"`
	Victim   uint64 `bson:"victim"`
	Kind     string `bson:"kind"`
}

// DiplomacyStateDoc is one game's full diplomacy.State, keyed by gameId
// (diplomacy state is not per-turn: it is the live relation graph as of the
// most recently persisted turn).
type DiplomacyStateDoc struct {
	ID         bson.ObjectID       `bson:"_id,omitempty"`
	GameID     string              `bson:"gameId"`
	Relations  []RelationEntryDoc  `bson:"relations"`
	Violations []ViolationDoc      `bson:"violations"`
}
