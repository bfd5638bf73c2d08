package ships

import "github.com/greenm01/ec4x/ids"

// Squadron is the combat unit of engagement: a flagship plus its escorts
// (spec.md §3). The teacher's equivalent (ships/stack.go ShipStack) buckets
// identical ship types by HP bracket for performance at MMO scale; EC4X
// keeps individual Ship identity since spec.md requires invariants over
// "every ship s" by id.
type Squadron struct {
	ID        ids.SquadronId
	Owner     ids.HouseId
	FleetID   ids.FleetId
	FlagshipID ids.ShipId
	EscortIDs []ids.ShipId

	Version int64
}

// Members returns the flagship id followed by the escort ids, the
// canonical ordering used for insertion-order tie-breaks in combat (spec.md
// §4.6 "then insertion order").
func (sq *Squadron) Members() []ids.ShipId {
	out := make([]ids.ShipId, 0, 1+len(sq.EscortIDs))
	out = append(out, sq.FlagshipID)
	out = append(out, sq.EscortIDs...)
	return out
}

// Clone returns a deep copy for the entity store.
func (sq *Squadron) Clone() *Squadron {
	cp := *sq
	cp.EscortIDs = append([]ids.ShipId(nil), sq.EscortIDs...)
	return &cp
}
