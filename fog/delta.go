package fog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/greenm01/ec4x/ids"
)

// Delta is the minimal change set between two consecutive snapshots for one
// house (spec.md §4.11 diffPlayerState). Every field lists only entities
// that changed, were added, or were removed — never the full roster.
type Delta struct {
	GameID string
	Turn   int
	House  ids.HouseId

	TreasuryDelta int
	PrestigeDelta int

	ColoniesChanged []ids.ColonyId
	ColoniesLost    []ids.ColonyId
	FleetsChanged   []ids.FleetId
	FleetsLost      []ids.FleetId

	ForeignColoniesRevealed []ids.ColonyId
	ForeignColoniesHidden   []ids.ColonyId
	ForeignFleetsRevealed   []ids.FleetId
	ForeignFleetsHidden     []ids.FleetId

	SystemsRevealed []ids.SystemId
}

// diffPlayerState computes the minimal change set between two consecutive
// PlayerStateSnapshots for the same house (spec.md §4.11). prev may be nil
// (first turn the house is observed), in which case every entity in
// current is reported as newly changed/revealed.
func diffPlayerState(prev, current *PlayerStateSnapshot) *Delta {
	d := &Delta{GameID: current.GameID, Turn: current.Turn, House: current.House}

	if prev != nil && prev.OwnHouse != nil && current.OwnHouse != nil {
		d.TreasuryDelta = current.OwnHouse.Treasury - prev.OwnHouse.Treasury
		d.PrestigeDelta = current.OwnHouse.Prestige - prev.OwnHouse.Prestige
	} else if current.OwnHouse != nil {
		d.TreasuryDelta = current.OwnHouse.Treasury
		d.PrestigeDelta = current.OwnHouse.Prestige
	}

	prevColonies := make(map[ids.ColonyId]int64)
	if prev != nil {
		for _, c := range prev.OwnColonies {
			prevColonies[c.ID] = c.Version
		}
	}
	for _, c := range current.OwnColonies {
		if v, ok := prevColonies[c.ID]; !ok || v != c.Version {
			d.ColoniesChanged = append(d.ColoniesChanged, c.ID)
		}
		delete(prevColonies, c.ID)
	}
	for lost := range prevColonies {
		d.ColoniesLost = append(d.ColoniesLost, lost)
	}

	prevFleets := make(map[ids.FleetId]int64)
	if prev != nil {
		for _, f := range prev.OwnFleets {
			prevFleets[f.ID] = f.Version
		}
	}
	for _, f := range current.OwnFleets {
		if v, ok := prevFleets[f.ID]; !ok || v != f.Version {
			d.FleetsChanged = append(d.FleetsChanged, f.ID)
		}
		delete(prevFleets, f.ID)
	}
	for lost := range prevFleets {
		d.FleetsLost = append(d.FleetsLost, lost)
	}

	prevForeignColonies := map[ids.ColonyId]bool{}
	if prev != nil {
		for id := range prev.ForeignColonies {
			prevForeignColonies[id] = true
		}
	}
	for id := range current.ForeignColonies {
		if !prevForeignColonies[id] {
			d.ForeignColoniesRevealed = append(d.ForeignColoniesRevealed, id)
		}
		delete(prevForeignColonies, id)
	}
	for id := range prevForeignColonies {
		d.ForeignColoniesHidden = append(d.ForeignColoniesHidden, id)
	}

	prevForeignFleets := map[ids.FleetId]bool{}
	if prev != nil {
		for id := range prev.ForeignFleets {
			prevForeignFleets[id] = true
		}
	}
	for id := range current.ForeignFleets {
		if !prevForeignFleets[id] {
			d.ForeignFleetsRevealed = append(d.ForeignFleetsRevealed, id)
		}
		delete(prevForeignFleets, id)
	}
	for id := range prevForeignFleets {
		d.ForeignFleetsHidden = append(d.ForeignFleetsHidden, id)
	}

	prevSystems := map[ids.SystemId]bool{}
	if prev != nil {
		for id := range prev.Systems {
			prevSystems[id] = true
		}
	}
	for id := range current.Systems {
		if !prevSystems[id] {
			d.SystemsRevealed = append(d.SystemsRevealed, id)
		}
	}

	sortFleetIDs(d.FleetsChanged)
	sortFleetIDs(d.FleetsLost)
	sortFleetIDs(d.ForeignFleetsRevealed)
	sortFleetIDs(d.ForeignFleetsHidden)
	sortColonyIDs(d.ColoniesChanged)
	sortColonyIDs(d.ColoniesLost)
	sortColonyIDs(d.ForeignColoniesRevealed)
	sortColonyIDs(d.ForeignColoniesHidden)
	sortSystemIDs(d.SystemsRevealed)

	return d
}

func sortFleetIDs(s []ids.FleetId)   { sort.Slice(s, func(i, j int) bool { return s[i] < s[j] }) }
func sortColonyIDs(s []ids.ColonyId) { sort.Slice(s, func(i, j int) bool { return s[i] < s[j] }) }
func sortSystemIDs(s []ids.SystemId) { sort.Slice(s, func(i, j int) bool { return s[i] < s[j] }) }

// formatDeltaPayload serializes a Delta to the declarative, order-stable
// textual format spec.md §4.11 requires before transport encryption: one
// `key=value` line per field, list fields space-joined, sorted ascending so
// two runs of the same Delta always produce byte-identical bytes.
func formatDeltaPayload(gameID string, d *Delta) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "gameId=%s\n", gameID)
	fmt.Fprintf(&b, "turn=%d\n", d.Turn)
	fmt.Fprintf(&b, "house=%d\n", uint64(d.House))
	fmt.Fprintf(&b, "treasuryDelta=%d\n", d.TreasuryDelta)
	fmt.Fprintf(&b, "prestigeDelta=%d\n", d.PrestigeDelta)
	writeFleetList(&b, "coloniesChanged", idsToUint64Colony(d.ColoniesChanged))
	writeFleetList(&b, "coloniesLost", idsToUint64Colony(d.ColoniesLost))
	writeFleetList(&b, "fleetsChanged", idsToUint64Fleet(d.FleetsChanged))
	writeFleetList(&b, "fleetsLost", idsToUint64Fleet(d.FleetsLost))
	writeFleetList(&b, "foreignColoniesRevealed", idsToUint64Colony(d.ForeignColoniesRevealed))
	writeFleetList(&b, "foreignColoniesHidden", idsToUint64Colony(d.ForeignColoniesHidden))
	writeFleetList(&b, "foreignFleetsRevealed", idsToUint64Fleet(d.ForeignFleetsRevealed))
	writeFleetList(&b, "foreignFleetsHidden", idsToUint64Fleet(d.ForeignFleetsHidden))
	writeFleetList(&b, "systemsRevealed", idsToUint64System(d.SystemsRevealed))
	return []byte(b.String())
}

func writeFleetList(b *strings.Builder, key string, vals []uint64) {
	fmt.Fprintf(b, "%s=", key)
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "%d", v)
	}
	b.WriteByte('\n')
}

func idsToUint64Colony(s []ids.ColonyId) []uint64 {
	out := make([]uint64, len(s))
	for i, v := range s {
		out[i] = uint64(v)
	}
	return out
}

func idsToUint64Fleet(s []ids.FleetId) []uint64 {
	out := make([]uint64, len(s))
	for i, v := range s {
		out[i] = uint64(v)
	}
	return out
}

func idsToUint64System(s []ids.SystemId) []uint64 {
	out := make([]uint64, len(s))
	for i, v := range s {
		out[i] = uint64(v)
	}
	return out
}

// DiffPlayerState and FormatDeltaPayload are the exported entry points for
// diffPlayerState/formatDeltaPayload (spec.md §4.11 names them lowerCamel as
// internal operations; exported here since transport calls them directly).
func DiffPlayerState(prev, current *PlayerStateSnapshot) *Delta { return diffPlayerState(prev, current) }
func FormatDeltaPayload(gameID string, d *Delta) []byte         { return formatDeltaPayload(gameID, d) }
