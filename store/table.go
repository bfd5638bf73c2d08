// Package store implements the C2 Entity Store (spec.md §4.2): a generic,
// owner-indexed, optimistic-concurrency table for every entity kind the
// engine tracks, plus the per-game GameState aggregate the turn pipeline
// snapshots and restores around each phase. Grounded on the teacher's
// players.PlayerGameState (denormalized owner-indexed collections per
// player) generalized into a single reusable generic container, since
// EC4X's spec requires the same read-modify-write discipline across many
// entity kinds rather than one bespoke per-player struct.
package store

import (
	"fmt"

	"github.com/greenm01/ec4x/ids"
)

// Entity is anything storable in a Table: it carries its own id, owner, and
// optimistic-concurrency version (spec.md §9 "every mutable entity carries
// a monotonic Version; a write that doesn't match the expected Version is
// rejected").
type Entity[ID comparable] interface {
	EntityID() ID
	OwnerID() ids.HouseId
	EntityVersion() int64
	SetVersion(int64)
	Clone() Entity[ID] // concrete implementations return themselves typed
}

// ErrVersionConflict is returned by Table.Update when the caller's expected
// version does not match the stored version.
type ErrVersionConflict struct {
	Expected, Actual int64
}

func (e *ErrVersionConflict) Error() string {
	return fmt.Sprintf("store: version conflict: expected %d, have %d", e.Expected, e.Actual)
}

// ErrNotFound is returned when an id has no entry.
type ErrNotFound struct {
	ID any
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("store: entity %v not found", e.ID)
}

// Table is a generic owner-indexed collection of one entity kind. All reads
// return clones; callers mutate the clone and call Update to write it back,
// enforcing spec.md §4.2's "copy-by-value discipline, no aliasing."
type Table[ID comparable, T Entity[ID]] struct {
	byID    map[ID]T
	byOwner map[ids.HouseId]map[ID]struct{}
}

// NewTable returns an empty table.
func NewTable[ID comparable, T Entity[ID]]() *Table[ID, T] {
	return &Table[ID, T]{
		byID:    make(map[ID]T),
		byOwner: make(map[ids.HouseId]map[ID]struct{}),
	}
}

// Insert adds a new entity, starting its version at 1. It is an error to
// insert over an existing id; use Update for that.
func (t *Table[ID, T]) Insert(e T) error {
	id := e.EntityID()
	if _, exists := t.byID[id]; exists {
		return fmt.Errorf("store: entity %v already exists", id)
	}
	e.SetVersion(1)
	t.byID[id] = e
	t.indexOwner(e)
	return nil
}

func (t *Table[ID, T]) indexOwner(e T) {
	owner := e.OwnerID()
	if t.byOwner[owner] == nil {
		t.byOwner[owner] = make(map[ID]struct{})
	}
	t.byOwner[owner][e.EntityID()] = struct{}{}
}

// Get returns a clone of the stored entity, safe for the caller to mutate
// without affecting the table until Update is called.
func (t *Table[ID, T]) Get(id ID) (T, error) {
	var zero T
	e, ok := t.byID[id]
	if !ok {
		return zero, &ErrNotFound{ID: id}
	}
	return e.Clone().(T), nil
}

// Update performs an optimistic-concurrency read-modify-write: the caller's
// entity must carry the version it last read via Get. On success the stored
// version is incremented.
func (t *Table[ID, T]) Update(e T) error {
	id := e.EntityID()
	existing, ok := t.byID[id]
	if !ok {
		return &ErrNotFound{ID: id}
	}
	if e.EntityVersion() != existing.EntityVersion() {
		return &ErrVersionConflict{Expected: existing.EntityVersion(), Actual: e.EntityVersion()}
	}
	if existing.OwnerID() != e.OwnerID() {
		t.removeOwnerIndex(existing)
		t.indexOwner(e)
	}
	e.SetVersion(e.EntityVersion() + 1)
	t.byID[id] = e
	return nil
}

func (t *Table[ID, T]) removeOwnerIndex(e T) {
	if set, ok := t.byOwner[e.OwnerID()]; ok {
		delete(set, e.EntityID())
	}
}

// Delete removes an entity outright (disbanded fleet, destroyed ship, lost
// colony).
func (t *Table[ID, T]) Delete(id ID) error {
	e, ok := t.byID[id]
	if !ok {
		return &ErrNotFound{ID: id}
	}
	t.removeOwnerIndex(e)
	delete(t.byID, id)
	return nil
}

// ByOwner returns clones of every entity owned by house, in no particular
// order.
func (t *Table[ID, T]) ByOwner(house ids.HouseId) []T {
	ids := t.byOwner[house]
	out := make([]T, 0, len(ids))
	for id := range ids {
		out = append(out, t.byID[id].Clone().(T))
	}
	return out
}

// All returns a clone of every entity in the table.
func (t *Table[ID, T]) All() []T {
	out := make([]T, 0, len(t.byID))
	for _, e := range t.byID {
		out = append(out, e.Clone().(T))
	}
	return out
}

// Len reports the number of entities currently stored.
func (t *Table[ID, T]) Len() int { return len(t.byID) }

// Contains reports whether id already has an entry.
func (t *Table[ID, T]) Contains(id ID) bool {
	_, ok := t.byID[id]
	return ok
}

// snapshot returns a new map holding a clone of every entity, for use by
// the package-level GameState snapshot/restore pair.
func (t *Table[ID, T]) snapshot() map[ID]T {
	out := make(map[ID]T, len(t.byID))
	for id, e := range t.byID {
		out[id] = e.Clone().(T)
	}
	return out
}

func (t *Table[ID, T]) restore(data map[ID]T) {
	t.byID = make(map[ID]T, len(data))
	t.byOwner = make(map[ids.HouseId]map[ID]struct{})
	for id, e := range data {
		t.byID[id] = e
		t.indexOwner(e)
	}
}
