// Package intel implements the C9 Intelligence DB (spec.md §4.9): a
// per-house authoritative store of what that house currently knows about
// a target (system/colony/fleet/house), with quality-graded, event-driven
// updates and turn-based staleness. Grounded on store.Table's
// owner-indexed generic container, specialized here to a single-target-key
// map per house since intel records are not separately versioned entities
// shared across houses the way store.Table's contents are.
package intel

import "github.com/greenm01/ec4x/config"

// Quality ranks how reliable/rich an intel record's payload is, from
// weakest to strongest (spec.md §4.9).
type Quality int

const (
	QualityInferred Quality = iota
	QualityReported
	QualityVisual
	QualityScouted
)

// TargetKind identifies what a Record's Target refers to, used to select
// the staleness threshold from config.GameplayConfig.IntelDecayTurns.
type TargetKind string

const (
	TargetSystem TargetKind = "System"
	TargetFleet  TargetKind = "Fleet"
	TargetColony TargetKind = "Colony"
	TargetHouse  TargetKind = "House"
)

// TargetKey identifies one intel record within a house's DB.
type TargetKey struct {
	Kind TargetKind
	ID   uint64 // the target's ids.*Id value, widened for a uniform key
}

// Payload carries whatever fields the current Quality unlocks; fields a
// lower quality hasn't earned stay at their zero value and must not be
// surfaced by callers (spec.md §4.9: "only intel with appropriate quality
// surfaces the corresponding payload fields").
type Payload struct {
	OwnerHouseVisible   bool // Visual: an enemy presence was merely observed
	FleetComposition    map[string]int // Scouted+: ship counts by class
	ResourceRating      string         // Scouted+: requires direct survey
	GarrisonStrength    int            // Reported+: secondhand accounts
	LastCombatSummary   string         // any quality: combat reports always attach
}

// Record is one (target, house) intel entry.
type Record struct {
	Target       TargetKey
	Quality      Quality
	LastIntelTurn int
	Payload      Payload
}

// DB is one house's intelligence store.
type DB struct {
	House   uint64
	records map[TargetKey]Record
}

// NewDB returns an empty intel DB for house.
func NewDB(house uint64) *DB {
	return &DB{House: house, records: make(map[TargetKey]Record)}
}

// Update records new intel on a target, replacing any existing record only
// if the new quality is at least as good, or the existing record is stale
// relative to the current turn. This keeps a higher-quality older
// observation from being clobbered by a lower-quality newer one within the
// same staleness window (spec.md §4.9's event-driven update list implies
// layered sources of differing quality arriving independently).
func (db *DB) Update(cfg *config.Config, turn int, key TargetKey, quality Quality, payload Payload) {
	existing, ok := db.records[key]
	if ok && quality < existing.Quality && !db.IsStale(cfg, turn, key) {
		return
	}
	db.records[key] = Record{Target: key, Quality: quality, LastIntelTurn: turn, Payload: payload}
}

// Clone returns a deep copy, so the GameState snapshot/restore pair can
// roll back intel writes made during a failed phase the same way every
// other entity table does.
func (db *DB) Clone() *DB {
	cp := &DB{House: db.House, records: make(map[TargetKey]Record, len(db.records))}
	for k, v := range db.records {
		cp.records[k] = v
	}
	return cp
}

// Get returns the current record for key, if any.
func (db *DB) Get(key TargetKey) (Record, bool) {
	r, ok := db.records[key]
	return r, ok
}

// All returns every known target key, in no particular order; callers that
// need a stable order (e.g. fog's snapshot builder) sort the result
// themselves.
func (db *DB) All() map[TargetKey]Record {
	return db.records
}

// IsStale reports whether the record for key has aged past its kind's
// configured decay threshold as of turn. A missing record is always stale.
func (db *DB) IsStale(cfg *config.Config, turn int, key TargetKey) bool {
	r, ok := db.records[key]
	if !ok {
		return true
	}
	threshold, ok := cfg.Gameplay.IntelDecayTurns[string(key.Kind)]
	if !ok {
		return false
	}
	return turn-r.LastIntelTurn > threshold
}
